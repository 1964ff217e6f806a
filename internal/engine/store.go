package engine

import (
	"context"

	"testbank-service/internal/models"
)

// AttemptHistoryStore records graded attempts. UpsertAppend must behave as a
// single atomic upsert: create the (user, test) record if absent, append the
// attempt, take the max of bestScore, and overwrite the snapshot plus
// lastAttempted — all in one read-modify-write, so that two racing
// submissions can never lose an attempt or a bestScore bump. Stores that
// cannot express this atomically must retry optimistically up to a cap and
// then fail with a StorageError.
type AttemptHistoryStore interface {
	UpsertAppend(ctx context.Context, userID, testID string, attempt models.Attempt, snapshot models.TestSnapshot) (*models.UserTestRecord, error)
	FindByUser(ctx context.Context, userID string) ([]models.UserTestRecord, error)
}
