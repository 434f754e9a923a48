package config

import (
	"os"
	"strconv"
	"time"
)

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI               string
	Database          string
	ConnectTimeoutSec int
	MaxPoolSize       int
}

// MinIOConfig holds object storage settings for S3-compatible backends.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// OAuthConfig holds credentials for the external identity provider.
type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// SessionConfig holds session token settings.
type SessionConfig struct {
	Secret     string
	Issuer     string
	TTL        time.Duration
	CookieName string
}

// UploadConfig holds settings for best-effort media mirroring.
type UploadConfig struct {
	MaxAttempts     int
	RetryDelay      time.Duration
	Concurrency     int
	FetchTimeoutSec int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost string
	Port    string
	Mongo   MongoConfig
	MinIO   MinIOConfig
	OAuth   OAuthConfig
	Session SessionConfig
	Upload  UploadConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Mongo: MongoConfig{
			URI:               getEnv("MONGO_URI", ""),
			Database:          getEnv("MONGO_DATABASE", "recipehub"),
			ConnectTimeoutSec: getEnvInt("MONGO_CONNECT_TIMEOUT_SEC", 10),
			MaxPoolSize:       getEnvInt("MONGO_MAX_POOL_SIZE", 20),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", ""),
			Issuer:     getEnv("SESSION_ISSUER", "recipehub"),
			TTL:        time.Duration(getEnvInt("SESSION_TTL_SEC", 86400)) * time.Second,
			CookieName: getEnv("SESSION_COOKIE_NAME", "recipehub_session"),
		},
		Upload: UploadConfig{
			MaxAttempts:     getEnvInt("UPLOAD_MAX_ATTEMPTS", 3),
			RetryDelay:      time.Duration(getEnvInt("UPLOAD_RETRY_DELAY_MS", 500)) * time.Millisecond,
			Concurrency:     getEnvInt("UPLOAD_CONCURRENCY", 4),
			FetchTimeoutSec: getEnvInt("UPLOAD_FETCH_TIMEOUT_SEC", 30),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
