package repository

import (
	"context"
	"errors"

	"testbank-service/internal/engine"
	"testbank-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TestRepository struct {
	Col *mongo.Collection
}

func NewTestRepository(db *mongo.Database) *TestRepository {
	return &TestRepository{Col: db.Collection("tests")}
}

// ResolveTest implements engine.TestResolver.
func (r *TestRepository) ResolveTest(ctx context.Context, id string) (*models.TestDefinition, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, engine.ErrNotFound
	}
	var def models.TestDefinition
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&def)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &def, nil
}

func (r *TestRepository) List(ctx context.Context) ([]models.TestDefinition, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var defs []models.TestDefinition
	for cur.Next(ctx) {
		var def models.TestDefinition
		if err := cur.Decode(&def); err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, cur.Err()
}

func (r *TestRepository) Create(ctx context.Context, def *models.TestDefinition) error {
	res, err := r.Col.InsertOne(ctx, def)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		def.ID = oid.Hex()
	}
	return nil
}

func (r *TestRepository) Update(ctx context.Context, id string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return engine.ErrNotFound
	}
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return engine.ErrNotFound
	}
	return nil
}

func (r *TestRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return engine.ErrNotFound
	}
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return engine.ErrNotFound
	}
	return nil
}
