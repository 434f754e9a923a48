package service

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"recipehub/internal/model"
	"recipehub/internal/repository"
	repoMocks "recipehub/internal/repository/mocks"
	storeMocks "recipehub/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockMirrorer is a testify mock for MediaMirrorer. It lives here because the
// mocks subpackage imports service and cannot be used from in-package tests.
type mockMirrorer struct {
	mock.Mock
}

func (m *mockMirrorer) MirrorAll(ctx context.Context, srcURLs []string, keyPrefix string) []model.MediaUpload {
	args := m.Called(ctx, srcURLs, keyPrefix)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.MediaUpload)
}

func TestRecipeService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		userID     string
		input      CreateRecipeInput
		setupMocks func(mRepo *repoMocks.MockRecipeRepository, mMirror *mockMirrorer)
		wantErr    error
		wantErrMsg string
		checkRec   func(t *testing.T, rec *model.Recipe)
	}{
		{
			name:   "happy path with media",
			userID: "user-1",
			input: CreateRecipeInput{
				Title:       "Pad Thai",
				Ingredients: []string{"noodles", "tamarind"},
				Steps:       []string{"soak", "fry"},
				MediaURLs:   []string{"https://cdn.example.com/pic.png"},
			},
			setupMocks: func(mRepo *repoMocks.MockRecipeRepository, mMirror *mockMirrorer) {
				mMirror.On("MirrorAll", ctx, []string{"https://cdn.example.com/pic.png"}, "recipes/media").
					Return([]model.MediaUpload{{
						SourceURL: "https://cdn.example.com/pic.png",
						Location:  "http://store.local/bucket/recipes/media/x.png",
						Uploaded:  true,
					}})
				mRepo.On("Create", ctx, mock.MatchedBy(func(rec *model.Recipe) bool {
					return rec.UserID == "user-1" && rec.Title == "Pad Thai" && len(rec.Media) == 1
				})).Return(&model.Recipe{Title: "Pad Thai"}, nil)
			},
			checkRec: func(t *testing.T, rec *model.Recipe) {
				assert.Equal(t, "Pad Thai", rec.Title)
			},
		},
		{
			name:   "media failure is degraded, recipe still saved",
			userID: "user-1",
			input: CreateRecipeInput{
				Title:     "Ramen",
				MediaURLs: []string{"https://cdn.example.com/gone.png"},
			},
			setupMocks: func(mRepo *repoMocks.MockRecipeRepository, mMirror *mockMirrorer) {
				mMirror.On("MirrorAll", ctx, mock.Anything, mock.Anything).
					Return([]model.MediaUpload{{
						SourceURL: "https://cdn.example.com/gone.png",
						Uploaded:  false,
					}})
				mRepo.On("Create", ctx, mock.MatchedBy(func(rec *model.Recipe) bool {
					return len(rec.Media) == 1 && !rec.Media[0].Uploaded
				})).Return(&model.Recipe{Title: "Ramen"}, nil)
			},
		},
		{
			name:   "no media skips mirroring",
			userID: "user-1",
			input:  CreateRecipeInput{Title: "Toast"},
			setupMocks: func(mRepo *repoMocks.MockRecipeRepository, mMirror *mockMirrorer) {
				mRepo.On("Create", ctx, mock.Anything).Return(&model.Recipe{Title: "Toast"}, nil)
			},
		},
		{
			name:       "validation - missing user",
			userID:     "",
			input:      CreateRecipeInput{Title: "Toast"},
			setupMocks: func(mRepo *repoMocks.MockRecipeRepository, mMirror *mockMirrorer) {},
			wantErr:    ErrUserRequired,
		},
		{
			name:       "validation - missing title",
			userID:     "user-1",
			input:      CreateRecipeInput{},
			setupMocks: func(mRepo *repoMocks.MockRecipeRepository, mMirror *mockMirrorer) {},
			wantErr:    ErrTitleRequired,
		},
		{
			name:   "repository error",
			userID: "user-1",
			input:  CreateRecipeInput{Title: "Toast"},
			setupMocks: func(mRepo *repoMocks.MockRecipeRepository, mMirror *mockMirrorer) {
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErrMsg: "db save failed: db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockRecipeRepository)
			mMirror := new(mockMirrorer)
			svc := NewRecipeService(mRepo, nil, mMirror)

			tt.setupMocks(mRepo, mMirror)

			rec, err := svc.Create(ctx, tt.userID, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, rec)
				if tt.checkRec != nil {
					tt.checkRec(t, rec)
				}
			}

			mRepo.AssertExpectations(t)
			mMirror.AssertExpectations(t)
		})
	}
}

func TestRecipeService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		userID     string
		limit      int
		offset     int
		setupMocks func(mRepo *repoMocks.MockRecipeRepository)
		wantErr    error
		checkRes   func(t *testing.T, res *RecipeListResult)
	}{
		{
			name:   "happy path",
			userID: "user-1",
			limit:  10,
			offset: 0,
			setupMocks: func(mRepo *repoMocks.MockRecipeRepository) {
				mRepo.On("ListByUser", ctx, "user-1", repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Recipe]{
						Items: []model.Recipe{{Title: "a"}, {Title: "b"}},
						Total: 2,
					}, nil)
			},
			checkRes: func(t *testing.T, res *RecipeListResult) {
				assert.Len(t, res.Items, 2)
				assert.Equal(t, 2, res.Total)
			},
		},
		{
			name:   "pagination boundary - zero limit uses default",
			userID: "user-1",
			limit:  0,
			offset: -1,
			setupMocks: func(mRepo *repoMocks.MockRecipeRepository) {
				mRepo.On("ListByUser", ctx, "user-1", repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Recipe]{Items: []model.Recipe{}, Total: 0}, nil)
			},
		},
		{
			name:       "validation - missing user",
			userID:     "",
			setupMocks: func(mRepo *repoMocks.MockRecipeRepository) {},
			wantErr:    ErrUserRequired,
		},
		{
			name:   "repository error",
			userID: "user-1",
			limit:  10,
			setupMocks: func(mRepo *repoMocks.MockRecipeRepository) {
				mRepo.On("ListByUser", ctx, "user-1", mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockRecipeRepository)
			svc := NewRecipeService(mRepo, nil, nil)

			tt.setupMocks(mRepo)

			res, err := svc.List(ctx, tt.userID, tt.limit, tt.offset)

			if tt.wantErr != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.checkRes != nil {
					tt.checkRes(t, res)
				}
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestRecipeService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		userID     string
		id         string
		setupMocks func(mRepo *repoMocks.MockRecipeRepository)
		wantErr    error
	}{
		{
			name:   "happy path",
			userID: "user-1",
			id:     "valid-id",
			setupMocks: func(mRepo *repoMocks.MockRecipeRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Recipe{UserID: "user-1"}, nil)
			},
		},
		{
			name:       "validation - empty id",
			userID:     "user-1",
			id:         "",
			setupMocks: func(mRepo *repoMocks.MockRecipeRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name:   "not found - mapping mongo.ErrNoDocuments",
			userID: "user-1",
			id:     "missing-id",
			setupMocks: func(mRepo *repoMocks.MockRecipeRepository) {
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, mongo.ErrNoDocuments)
			},
			wantErr: ErrNotFound,
		},
		{
			name:   "other user's recipe surfaces as not found",
			userID: "user-1",
			id:     "foreign-id",
			setupMocks: func(mRepo *repoMocks.MockRecipeRepository) {
				mRepo.On("FindByID", ctx, "foreign-id").Return(&model.Recipe{UserID: "user-2"}, nil)
			},
			wantErr: ErrNotFound,
		},
		{
			name:   "generic repository error",
			userID: "user-1",
			id:     "error-id",
			setupMocks: func(mRepo *repoMocks.MockRecipeRepository) {
				mRepo.On("FindByID", ctx, "error-id").Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockRecipeRepository)
			svc := NewRecipeService(mRepo, nil, nil)

			tt.setupMocks(mRepo)

			rec, err := svc.Get(ctx, tt.userID, tt.id)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrIDRequired) || errors.Is(tt.wantErr, ErrNotFound) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
				}
				assert.Nil(t, rec)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, rec)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestRecipeService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		userID     string
		id         string
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRecipeRepository)
		wantErr    error
	}{
		{
			name:   "happy path with media cleanup",
			userID: "user-1",
			id:     "valid-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRecipeRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Recipe{
					UserID: "user-1",
					Media: []model.MediaUpload{
						{Uploaded: true, Key: "recipes/media/a.png"},
						{Uploaded: false},
					},
				}, nil)
				mStore.On("Delete", ctx, "recipes/media/a.png").Return(nil)
				mRepo.On("Delete", ctx, "valid-id").Return(nil)
			},
		},
		{
			name:   "storage cleanup error is best-effort",
			userID: "user-1",
			id:     "valid-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRecipeRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Recipe{
					UserID: "user-1",
					Media:  []model.MediaUpload{{Uploaded: true, Key: "recipes/media/a.png"}},
				}, nil)
				mStore.On("Delete", ctx, "recipes/media/a.png").Return(errors.New("storage fail"))
				mRepo.On("Delete", ctx, "valid-id").Return(nil)
			},
		},
		{
			name:   "not found",
			userID: "user-1",
			id:     "missing-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRecipeRepository) {
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, mongo.ErrNoDocuments)
			},
			wantErr: ErrNotFound,
		},
		{
			name:   "repository delete error",
			userID: "user-1",
			id:     "repo-fail-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRecipeRepository) {
				mRepo.On("FindByID", ctx, "repo-fail-id").Return(&model.Recipe{UserID: "user-1"}, nil)
				mRepo.On("Delete", ctx, "repo-fail-id").Return(errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockRecipeRepository)
			svc := NewRecipeService(mRepo, mStore, nil)

			tt.setupMocks(mStore, mRepo)

			err := svc.Delete(ctx, tt.userID, tt.id)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrNotFound) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
				}
			} else {
				assert.NoError(t, err)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}
