package service

import (
	"context"

	"testbank-service/internal/engine"
	"testbank-service/internal/models"
)

type RecordService struct {
	Store engine.AttemptHistoryStore
}

func NewRecordService(store engine.AttemptHistoryStore) *RecordService {
	return &RecordService{Store: store}
}

// GetRecordsByUser lists a user's attempt histories. A user with no
// attempts gets an empty list, not an error.
func (s *RecordService) GetRecordsByUser(ctx context.Context, userID string) ([]models.UserTestRecord, error) {
	records, err := s.Store.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.UserTestRecord{}
	}
	return records, nil
}
