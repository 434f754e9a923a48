// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., mongodb) inside this directory.
package repository

import (
	"context"

	"recipehub/internal/model"
)

// RecipeRepository defines data access for recipes.
// No business logic here, strictly persistence operations.
type RecipeRepository interface {
	// Create inserts a new recipe document and returns the stored record
	// (including the id assigned by the database).
	Create(ctx context.Context, rec *model.Recipe) (*model.Recipe, error)

	// FindByID returns a recipe by its ID.
	FindByID(ctx context.Context, id string) (*model.Recipe, error)

	// ListByUser returns a paginated list of a user's recipes and a total count.
	ListByUser(ctx context.Context, userID string, pq PageQuery) (*PageResult[model.Recipe], error)

	// Delete removes a recipe by ID. It returns nil if the document was deleted
	// or did not exist.
	Delete(ctx context.Context, id string) error
}

// UserRepository defines data access for users created from identity
// provider profiles.
type UserRepository interface {
	// Upsert creates or updates the user matched by provider and subject,
	// returning the stored record.
	Upsert(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by its ID.
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
