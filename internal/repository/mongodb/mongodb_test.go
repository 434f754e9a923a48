package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Invalid hex ids fail before any database round-trip.
func TestRecipeMongo_InvalidID(t *testing.T) {
	repo := &RecipeMongo{}

	_, err := repo.FindByID(context.Background(), "not-a-hex-id")
	assert.ErrorContains(t, err, "invalid recipe id")

	err = repo.Delete(context.Background(), "not-a-hex-id")
	assert.ErrorContains(t, err, "invalid recipe id")
}

func TestUserMongo_InvalidID(t *testing.T) {
	repo := &UserMongo{}

	_, err := repo.FindByID(context.Background(), "not-a-hex-id")
	assert.ErrorContains(t, err, "invalid user id")
}
