package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"testbank-service/internal/engine"
	"testbank-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestUpsertAppendUpdateShape(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	attempt := models.Attempt{
		Score:          70,
		CorrectAnswers: 7,
		TotalQuestions: 10,
		Timestamp:      ts,
	}
	snapshot := models.TestSnapshot{TestName: "Final", TotalQuestions: 10, PassingScore: 60}

	update := upsertAppendUpdate(attempt, snapshot)

	push, ok := update["$push"].(bson.M)
	if !ok {
		t.Fatal("update must $push the attempt")
	}
	if got := push["attempts"]; !equalAttempt(got, attempt) {
		t.Errorf("pushed attempt mismatch: %+v", got)
	}

	max, ok := update["$max"].(bson.M)
	if !ok {
		t.Fatal("update must take $max of best_score")
	}
	if max["best_score"] != 70 {
		t.Errorf("best_score max must be the attempt score, got %v", max["best_score"])
	}

	set, ok := update["$set"].(bson.M)
	if !ok {
		t.Fatal("update must $set the snapshot")
	}
	if set["test_details"] != snapshot {
		t.Errorf("snapshot mismatch: %v", set["test_details"])
	}
	if set["last_attempted"] != ts {
		t.Errorf("last_attempted must be the attempt timestamp, got %v", set["last_attempted"])
	}

	// $max, not $set: a single update document is what makes the write
	// atomic and bestScore monotonic under concurrent submissions.
	if _, found := set["best_score"]; found {
		t.Error("best_score must never be written via $set")
	}
	if _, found := set["attempts"]; found {
		t.Error("attempts must never be written via $set")
	}
}

func equalAttempt(got interface{}, want models.Attempt) bool {
	a, ok := got.(models.Attempt)
	return ok && a.Score == want.Score && a.Timestamp.Equal(want.Timestamp)
}

func TestUpsertAppendRejectsMissingKeys(t *testing.T) {
	r := &RecordRepository{}

	if _, err := r.UpsertAppend(context.Background(), "", "t1", models.Attempt{}, models.TestSnapshot{}); !errors.Is(err, engine.ErrNotFound) {
		t.Errorf("missing user id must be ErrNotFound, got %v", err)
	}
	if _, err := r.UpsertAppend(context.Background(), "u1", "", models.Attempt{}, models.TestSnapshot{}); !errors.Is(err, engine.ErrNotFound) {
		t.Errorf("missing test id must be ErrNotFound, got %v", err)
	}
	if _, err := r.FindByUser(context.Background(), ""); !errors.Is(err, engine.ErrNotFound) {
		t.Errorf("missing user id must be ErrNotFound, got %v", err)
	}
}
