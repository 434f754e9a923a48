package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"recipehub/internal/model"
	"recipehub/internal/repository"
)

const recipeCollection = "recipes"

// RecipeMongo is a MongoDB implementation of repository.RecipeRepository.
// It contains no business logic.
type RecipeMongo struct {
	coll *mongo.Collection
}

// NewRecipeMongo creates a new RecipeMongo repository.
func NewRecipeMongo(db *mongo.Database) *RecipeMongo {
	return &RecipeMongo{coll: db.Collection(recipeCollection)}
}

var _ repository.RecipeRepository = (*RecipeMongo)(nil)

// Create inserts a new recipe document and returns the stored record.
func (r *RecipeMongo) Create(ctx context.Context, rec *model.Recipe) (*model.Recipe, error) {
	res, err := r.coll.InsertOne(ctx, rec)
	if err != nil {
		return nil, err
	}
	out := *rec
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid
	}
	return &out, nil
}

// FindByID fetches a single recipe by its hex object id.
func (r *RecipeMongo) FindByID(ctx context.Context, id string) (*model.Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid recipe id: %w", err)
	}
	var rec model.Recipe
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByUser returns a user's recipes with limit/offset pagination and a total count.
func (r *RecipeMongo) ListByUser(ctx context.Context, userID string, pq repository.PageQuery) (*repository.PageResult[model.Recipe], error) {
	filter := bson.M{"user_id": userID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(pq.Limit)).
		SetSkip(int64(pq.Offset))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := make([]model.Recipe, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Recipe]{
		Items: items,
		Total: int(total),
	}, nil
}

// Delete removes a recipe by ID. Missing documents are not an error.
func (r *RecipeMongo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid recipe id: %w", err)
	}
	_, err = r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
