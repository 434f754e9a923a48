package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"recipehub/internal/model"
	"recipehub/internal/repository"
)

const userCollection = "users"

// UserMongo is a MongoDB implementation of repository.UserRepository.
type UserMongo struct {
	coll *mongo.Collection
}

// NewUserMongo creates a new UserMongo repository.
func NewUserMongo(db *mongo.Database) *UserMongo {
	return &UserMongo{coll: db.Collection(userCollection)}
}

var _ repository.UserRepository = (*UserMongo)(nil)

// Upsert creates or updates the user matched by provider and subject.
// Profile fields are refreshed on every login; created_at is set once.
func (r *UserMongo) Upsert(ctx context.Context, u *model.User) (*model.User, error) {
	filter := bson.M{"provider": u.Provider, "subject": u.Subject}
	update := bson.M{
		"$set": bson.M{
			"email":   u.Email,
			"name":    u.Name,
			"picture": u.Picture,
		},
		"$setOnInsert": bson.M{
			"provider":   u.Provider,
			"subject":    u.Subject,
			"created_at": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out model.User
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a user by its hex object id.
func (r *UserMongo) FindByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	var u model.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}
