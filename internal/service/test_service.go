package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"testbank-service/internal/engine"
	"testbank-service/internal/models"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

// ErrAccessDenied is returned when a private test is started without the
// matching passcode. It is deliberately distinct from engine.ErrNotFound so
// the handler can answer 403 instead of 404.
var ErrAccessDenied = errors.New("access denied")

// StartedTest is the client-facing view of an assembled test. The question
// views carry no correct answers.
type StartedTest struct {
	TestName    string                `json:"testName"`
	Description string                `json:"description"`
	Questions   []models.QuestionView `json:"questions"`
}

// SubmissionResult is what a submit call returns to the client. Score and
// Percentage are the same number; Score is kept for wire compatibility.
type SubmissionResult struct {
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	CorrectAnswers int    `json:"correctAnswers"`
	Percentage     int    `json:"percentage"`
	Passed         bool   `json:"passed"`
	TestID         string `json:"testId"`
}

// TestRepo is the persistence surface the test service needs beyond the
// engine's resolver view.
type TestRepo interface {
	engine.TestResolver
	List(ctx context.Context) ([]models.TestDefinition, error)
	Create(ctx context.Context, def *models.TestDefinition) error
	Update(ctx context.Context, id string, update bson.M) error
	Delete(ctx context.Context, id string) error
}

// TestService drives the assemble, grade, record flow and the admin CRUD
// around test definitions.
type TestService struct {
	Engine *engine.Engine
	Tests  TestRepo
	Store  engine.AttemptHistoryStore
}

func NewTestService(eng *engine.Engine, tests TestRepo, store engine.AttemptHistoryStore) *TestService {
	return &TestService{Engine: eng, Tests: tests, Store: store}
}

// StartTest assembles the test a taker sees. Private tests require the
// matching passcode; an empty assembly is returned as-is, degenerate tests
// only fail at grading time.
func (s *TestService) StartTest(ctx context.Context, testID, passcode string) (*StartedTest, error) {
	def, questions, err := s.Engine.Assemble(ctx, testID)
	if err != nil {
		return nil, err
	}
	if !def.IsPublic && def.AccessPasscode != "" && passcode != def.AccessPasscode {
		return nil, ErrAccessDenied
	}
	return &StartedTest{
		TestName:    def.Name,
		Description: def.Description,
		Questions:   questions,
	}, nil
}

// SubmitTest grades a submission and records the attempt. The attempt's
// stored score and the record's bestScore are percentages, matching the
// percentage-based passing threshold.
func (s *TestService) SubmitTest(ctx context.Context, testID, userID string, answers map[string]string) (*SubmissionResult, *models.UserTestRecord, error) {
	if userID == "" {
		return nil, nil, fmt.Errorf("user reference missing: %w", engine.ErrNotFound)
	}

	def, result, err := s.Engine.Grade(ctx, testID, answers)
	if err != nil {
		return nil, nil, err
	}

	attempt := models.Attempt{
		QuestionsAttempted: result.Attempted,
		Score:              result.Percentage,
		CorrectAnswers:     result.CorrectAnswers,
		TotalQuestions:     result.TotalQuestions,
		Timestamp:          time.Now().UTC(),
	}
	snapshot := models.TestSnapshot{
		TestName:       def.Name,
		TotalQuestions: result.TotalQuestions,
		PassingScore:   def.PassingScore,
	}

	record, err := s.Store.UpsertAppend(ctx, userID, testID, attempt, snapshot)
	if err != nil {
		return nil, nil, err
	}

	log.Info().
		Str("test_id", testID).
		Str("user_id", userID).
		Int("percentage", result.Percentage).
		Bool("passed", result.Passed).
		Int("best_score", record.BestScore).
		Msg("test submission recorded")

	return &SubmissionResult{
		Score:          result.Percentage,
		TotalQuestions: result.TotalQuestions,
		CorrectAnswers: result.CorrectAnswers,
		Percentage:     result.Percentage,
		Passed:         result.Passed,
		TestID:         testID,
	}, record, nil
}

func (s *TestService) ListTests(ctx context.Context) ([]models.TestDefinition, error) {
	return s.Tests.List(ctx)
}

func (s *TestService) GetTest(ctx context.Context, id string) (*models.TestDefinition, error) {
	return s.Tests.ResolveTest(ctx, id)
}

func (s *TestService) CreateTest(ctx context.Context, def *models.TestDefinition) error {
	if err := validateDefinition(def); err != nil {
		return err
	}
	def.CreatedAt = time.Now().UTC()
	return s.Tests.Create(ctx, def)
}

func (s *TestService) UpdateTest(ctx context.Context, id string, update bson.M) error {
	return s.Tests.Update(ctx, id, update)
}

func (s *TestService) DeleteTest(ctx context.Context, id string) error {
	return s.Tests.Delete(ctx, id)
}

func validateDefinition(def *models.TestDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("test name is required: %w", engine.ErrInvalidState)
	}
	if def.PassingScore < 0 || def.PassingScore > 100 {
		return fmt.Errorf("passing score %d out of range: %w", def.PassingScore, engine.ErrInvalidState)
	}
	for _, pick := range def.QuestionSets {
		if pick.SetID == "" {
			return fmt.Errorf("question set reference is required: %w", engine.ErrInvalidState)
		}
		if pick.NumToPick < 0 {
			return fmt.Errorf("numToPick %d is negative: %w", pick.NumToPick, engine.ErrInvalidState)
		}
	}
	return nil
}
