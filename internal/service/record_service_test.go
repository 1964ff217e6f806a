package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRecordsByUserEmptyIsNotAnError(t *testing.T) {
	svc := NewRecordService(newMemStore())

	records, err := svc.GetRecordsByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Len(t, records, 0)
}

func TestGetRecordsByUserReturnsAllTests(t *testing.T) {
	store := newMemStore()
	svc := newFixtureService(store)

	_, _, err := svc.SubmitTest(context.Background(), "exam", "u1", answersScoring(5))
	require.NoError(t, err)
	_, _, err = svc.SubmitTest(context.Background(), "locked", "u1", answersScoring(2))
	require.NoError(t, err)

	records, err := NewRecordService(store).GetRecordsByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
