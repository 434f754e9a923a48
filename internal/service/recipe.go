package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"recipehub/internal/model"
	"recipehub/internal/repository"
	"recipehub/internal/storage"
)

var (
	ErrIDRequired    = errors.New("id is required")
	ErrUserRequired  = errors.New("user id is required")
	ErrTitleRequired = errors.New("title is required")
	ErrNotFound      = errors.New("recipe not found")
)

// MediaMirrorer mirrors generated media URLs into object storage,
// returning one best-effort upload record per URL.
type MediaMirrorer interface {
	MirrorAll(ctx context.Context, srcURLs []string, keyPrefix string) []model.MediaUpload
}

// CreateRecipeInput carries a generated recipe plus the source URLs of its
// generated assets.
type CreateRecipeInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	MediaURLs   []string `json:"media_urls"`
}

// RecipeListResult is the service-level DTO for paginated recipes.
type RecipeListResult struct {
	Items []model.Recipe `json:"data"`
	Total int            `json:"total"`
}

// RecipeService defines the use cases for handling recipes.
type RecipeService interface {
	// Create mirrors the recipe's media into object storage (best-effort) and
	// persists the recipe for the user. Media failures never fail the call.
	Create(ctx context.Context, userID string, in CreateRecipeInput) (*model.Recipe, error)

	// List returns the user's recipes using limit/offset and a total count.
	List(ctx context.Context, userID string, limit, offset int) (*RecipeListResult, error)

	// Get returns a single recipe by ID, restricted to its owner.
	Get(ctx context.Context, userID, id string) (*model.Recipe, error)

	// Delete removes the user's recipe and best-effort cleans up its mirrored
	// media objects.
	Delete(ctx context.Context, userID, id string) error
}

// recipeService is a concrete implementation of RecipeService.
type recipeService struct {
	repo     repository.RecipeRepository
	store    storage.Storage
	mirrorer MediaMirrorer
}

// NewRecipeService constructs a new RecipeService.
func NewRecipeService(repo repository.RecipeRepository, store storage.Storage, mirrorer MediaMirrorer) RecipeService {
	return &recipeService{repo: repo, store: store, mirrorer: mirrorer}
}

const mediaKeyPrefix = "recipes/media"

func (s *recipeService) Create(ctx context.Context, userID string, in CreateRecipeInput) (*model.Recipe, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if in.Title == "" {
		return nil, ErrTitleRequired
	}

	var media []model.MediaUpload
	if len(in.MediaURLs) > 0 {
		media = s.mirrorer.MirrorAll(ctx, in.MediaURLs, mediaKeyPrefix)
	}

	rec := &model.Recipe{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Ingredients: in.Ingredients,
		Steps:       in.Steps,
		Media:       media,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// List returns paginated recipes without exposing repository types.
func (s *recipeService) List(ctx context.Context, userID string, limit, offset int) (*RecipeListResult, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.ListByUser(ctx, userID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &RecipeListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a recipe by ID. Recipes of other users surface as not found.
func (s *recipeService) Get(ctx context.Context, userID, id string) (*model.Recipe, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rec.UserID != userID {
		return nil, ErrNotFound
	}
	return rec, nil
}

// Delete removes mirrored media objects best-effort, then deletes the record.
func (s *recipeService) Delete(ctx context.Context, userID, id string) error {
	rec, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	for _, m := range rec.Media {
		if !m.Uploaded || m.Key == "" {
			continue
		}
		if err := s.store.Delete(ctx, m.Key); err != nil {
			log.Printf("delete media %s: %v", m.Key, err)
		}
	}
	return s.repo.Delete(ctx, id)
}
