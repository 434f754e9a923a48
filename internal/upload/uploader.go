package upload

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"recipehub/internal/config"
	"recipehub/internal/model"
	"recipehub/internal/storage"
)

// Uploader mirrors generated media (images/audio) from their source URLs into
// object storage. All mirroring is best-effort: failures degrade to a
// not-uploaded result instead of propagating.
type Uploader struct {
	store       storage.Storage
	client      *http.Client
	maxAttempts int
	retryDelay  time.Duration
	concurrency int
	logf        func(format string, args ...any)
}

// New builds an Uploader from configuration.
func New(store storage.Storage, cfg config.UploadConfig) *Uploader {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Uploader{
		store: store,
		client: &http.Client{
			Timeout: time.Duration(cfg.FetchTimeoutSec) * time.Second,
		},
		maxAttempts: maxAttempts,
		retryDelay:  cfg.RetryDelay,
		concurrency: concurrency,
		logf:        log.Printf,
	}
}

// fetch performs an HTTP GET against srcURL, retrying on transport errors and
// non-2xx statuses up to maxAttempts with a fixed delay between attempts.
// The caller owns the response body on success.
func (u *Uploader) fetch(ctx context.Context, srcURL string) (*http.Response, error) {
	var lastErr error
	for attempt := 1; attempt <= u.maxAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(u.retryDelay)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
		if err != nil {
			return nil, err
		}
		resp, err := u.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}
		resp.Body.Close()
		lastErr = fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil, fmt.Errorf("fetch %s after %d attempts: %w", srcURL, u.maxAttempts, lastErr)
}

// Mirror downloads a single asset and uploads it under keyPrefix. A DNS
// resolution failure is treated as non-fatal and returns a not-uploaded
// result without logging; every other failure is logged and also downgraded
// to a not-uploaded result.
func (u *Uploader) Mirror(ctx context.Context, srcURL, keyPrefix string) model.MediaUpload {
	degraded := model.MediaUpload{SourceURL: srcURL, Uploaded: false}

	resp, err := u.fetch(ctx, srcURL)
	if err != nil {
		if isDNSError(err) {
			return degraded
		}
		u.logf("mirror %s: %v", srcURL, err)
		return degraded
	}
	defer resp.Body.Close()

	key := objectKey(srcURL, keyPrefix, resp.Header.Get("Content-Type"))
	info, err := u.store.Put(ctx, key, resp.Body, storage.PutObjectOptions{
		Size:        resp.ContentLength,
		ContentType: resp.Header.Get("Content-Type"),
		Metadata:    map[string]string{"source-url": srcURL},
	})
	if err != nil {
		u.logf("mirror %s: upload: %v", srcURL, err)
		return degraded
	}

	return model.MediaUpload{
		SourceURL: srcURL,
		Location:  u.store.ObjectURL(info.Key),
		Uploaded:  true,
		Key:       info.Key,
	}
}

// MirrorAll mirrors every URL in parallel, bounded by the configured
// concurrency. Items are independent; results keep input order but uploads
// complete in any order.
func (u *Uploader) MirrorAll(ctx context.Context, srcURLs []string, keyPrefix string) []model.MediaUpload {
	results := make([]model.MediaUpload, len(srcURLs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(u.concurrency)
	for i, srcURL := range srcURLs {
		i, srcURL := i, srcURL
		g.Go(func() error {
			results[i] = u.Mirror(ctx, srcURL, keyPrefix)
			return nil
		})
	}
	// Mirror never returns an error; Wait only joins the goroutines.
	_ = g.Wait()
	return results
}

// isDNSError reports whether the error chain contains a DNS resolution failure.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// objectKey derives a storage key from the source URL's extension, falling
// back to the response content type for extension-less URLs.
func objectKey(srcURL, keyPrefix, contentType string) string {
	ext := ""
	if parsed, err := url.Parse(srcURL); err == nil {
		ext = path.Ext(parsed.Path)
	}
	if ext == "" {
		ext = extForContentType(contentType)
	}
	return keyPrefix + "/" + uuid.NewString() + ext
}

func extForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "audio/mpeg":
		return ".mp3"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	default:
		return ""
	}
}
