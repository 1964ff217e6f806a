package repository

import (
	"context"

	"testbank-service/internal/engine"
	"testbank-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// maxUpsertRetries bounds the retry loop for upsert-create races. With the
// unique (user_id, test_id) index, only the first submission for a pair can
// ever collide, so one retry normally suffices.
const maxUpsertRetries = 3

type RecordRepository struct {
	Col *mongo.Collection
}

func NewRecordRepository(db *mongo.Database) *RecordRepository {
	return &RecordRepository{Col: db.Collection("user_test_records")}
}

// EnsureIndexes creates the unique (user_id, test_id) index the upsert
// relies on. Called once at startup.
func (r *RecordRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "test_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// UpsertAppend implements engine.AttemptHistoryStore as a single
// FindOneAndUpdate: $push the attempt, $max the best score, $set the
// snapshot and last-attempted time, upserting the record on first
// submission. Two racing submissions for the same pair each land their own
// array element and the max, with no read-modify-write window to lose
// either. The one race Mongo leaves open is both requests upserting a
// not-yet-existing record; the loser gets a duplicate-key error from the
// unique index and is retried, at which point it matches the winner's
// document.
func (r *RecordRepository) UpsertAppend(ctx context.Context, userID, testID string, attempt models.Attempt, snapshot models.TestSnapshot) (*models.UserTestRecord, error) {
	if userID == "" || testID == "" {
		return nil, engine.ErrNotFound
	}

	filter := bson.M{"user_id": userID, "test_id": testID}
	update := upsertAppendUpdate(attempt, snapshot)
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var lastErr error
	for i := 0; i < maxUpsertRetries; i++ {
		var rec models.UserTestRecord
		err := r.Col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rec)
		if err == nil {
			return &rec, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, engine.NewStorageError("upsert attempt record", err)
		}
		lastErr = err
	}
	return nil, engine.NewStorageError("upsert attempt record: retry budget exhausted", lastErr)
}

// upsertAppendUpdate builds the atomic update document. Kept separate so the
// append/max/overwrite semantics can be tested without a live store.
func upsertAppendUpdate(attempt models.Attempt, snapshot models.TestSnapshot) bson.M {
	return bson.M{
		"$push": bson.M{"attempts": attempt},
		"$max":  bson.M{"best_score": attempt.Score},
		"$set": bson.M{
			"test_details":   snapshot,
			"last_attempted": attempt.Timestamp,
		},
	}
}

func (r *RecordRepository) FindByUser(ctx context.Context, userID string) ([]models.UserTestRecord, error) {
	if userID == "" {
		return nil, engine.ErrNotFound
	}
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, engine.NewStorageError("find attempt records", err)
	}
	defer cur.Close(ctx)
	var records []models.UserTestRecord
	for cur.Next(ctx) {
		var rec models.UserTestRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, engine.NewStorageError("decode attempt record", err)
		}
		records = append(records, rec)
	}
	if err := cur.Err(); err != nil {
		return nil, engine.NewStorageError("iterate attempt records", err)
	}
	return records, nil
}
