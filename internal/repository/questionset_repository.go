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

type QuestionSetRepository struct {
	Col *mongo.Collection
}

func NewQuestionSetRepository(db *mongo.Database) *QuestionSetRepository {
	return &QuestionSetRepository{Col: db.Collection("question_sets")}
}

// ResolveSet implements engine.QuestionSetResolver. A malformed or unknown
// id both come back as engine.ErrNotFound so the assembler treats them as
// dangling references.
func (r *QuestionSetRepository) ResolveSet(ctx context.Context, id string) (*models.QuestionSet, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, engine.ErrNotFound
	}
	var set models.QuestionSet
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&set)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *QuestionSetRepository) List(ctx context.Context) ([]models.QuestionSet, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var sets []models.QuestionSet
	for cur.Next(ctx) {
		var set models.QuestionSet
		if err := cur.Decode(&set); err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, cur.Err()
}

func (r *QuestionSetRepository) Create(ctx context.Context, set *models.QuestionSet) error {
	res, err := r.Col.InsertOne(ctx, set)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		set.ID = oid.Hex()
	}
	return nil
}

func (r *QuestionSetRepository) Update(ctx context.Context, id string, update bson.M) error {
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

func (r *QuestionSetRepository) Delete(ctx context.Context, id string) error {
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
