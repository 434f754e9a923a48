package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaUpload records the outcome of mirroring a single generated asset
// (image or audio) into object storage. Location is empty when the upload
// did not happen; Uploaded reports whether the asset landed in storage.
type MediaUpload struct {
	SourceURL string `bson:"source_url" json:"source_url"`
	Location  string `bson:"location" json:"location"`
	Uploaded  bool   `bson:"uploaded" json:"uploaded"`
	// Key is the storage key behind Location, kept for cleanup on delete.
	Key string `bson:"key,omitempty" json:"-"`
}

// Recipe represents a generated recipe stored for a user.
type Recipe struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Ingredients []string           `bson:"ingredients" json:"ingredients"`
	Steps       []string           `bson:"steps" json:"steps"`
	Media       []MediaUpload      `bson:"media,omitempty" json:"media,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
