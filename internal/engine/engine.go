package engine

import (
	"context"
	"errors"
	"fmt"
	"math"

	"testbank-service/internal/models"
)

// TestResolver fetches a test definition by id. Implementations return
// ErrNotFound (possibly wrapped) when the id does not resolve.
type TestResolver interface {
	ResolveTest(ctx context.Context, testID string) (*models.TestDefinition, error)
}

// QuestionSetResolver fetches a question set by id. Implementations return
// ErrNotFound (possibly wrapped) when the id does not resolve.
type QuestionSetResolver interface {
	ResolveSet(ctx context.Context, setID string) (*models.QuestionSet, error)
}

// AttemptResult is the grader's output for one submission. Attempted holds
// only answered questions; TotalQuestions counts every assembled question,
// answered or not.
type AttemptResult struct {
	TotalQuestions int
	CorrectAnswers int
	Percentage     int
	Passed         bool
	Attempted      []models.AttemptedQuestion
}

// Engine assembles tests and grades submissions. Both operations are
// read-only and derive the question list from the current definition on
// every call, so they are safe to run concurrently without locking.
type Engine struct {
	tests TestResolver
	sets  QuestionSetResolver
}

func New(tests TestResolver, sets QuestionSetResolver) *Engine {
	return &Engine{tests: tests, sets: sets}
}

// Assemble builds the ordered question list for a test: for each
// (set, numToPick) pair in definition order it takes the first numToPick
// questions of the set in stored order, clamped to the set size. A pair
// whose set no longer resolves contributes nothing rather than failing the
// assembly. The returned views carry no correct answers.
func (e *Engine) Assemble(ctx context.Context, testID string) (*models.TestDefinition, []models.QuestionView, error) {
	def, questions, err := e.assemble(ctx, testID)
	if err != nil {
		return nil, nil, err
	}
	views := make([]models.QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, q.View())
	}
	return def, views, nil
}

// Grade scores a submission against the test's current assembly. Unanswered
// questions count toward the denominator but produce no breakdown row, and
// correctness is exact equality between the submitted value and the stored
// correct option value. The percentage is rounded half-up and the pass
// threshold is inclusive.
func (e *Engine) Grade(ctx context.Context, testID string, answers map[string]string) (*models.TestDefinition, *AttemptResult, error) {
	def, questions, err := e.assemble(ctx, testID)
	if err != nil {
		return nil, nil, err
	}
	if len(questions) == 0 {
		return nil, nil, fmt.Errorf("test %s assembled zero questions: %w", testID, ErrInvalidState)
	}

	result := &AttemptResult{
		TotalQuestions: len(questions),
		Attempted:      []models.AttemptedQuestion{},
	}
	for _, q := range questions {
		selected, ok := answers[q.ID]
		if !ok {
			continue
		}
		correct := selected == q.CorrectAnswer
		if correct {
			result.CorrectAnswers++
		}
		result.Attempted = append(result.Attempted, models.AttemptedQuestion{
			QuestionID:     q.ID,
			QuestionText:   q.QuestionText,
			SelectedOption: selected,
			IsCorrect:      correct,
		})
	}

	result.Percentage = int(math.Round(100 * float64(result.CorrectAnswers) / float64(result.TotalQuestions)))
	result.Passed = result.Percentage >= def.PassingScore
	return def, result, nil
}

// assemble is the canonical selection rule shared by Assemble and Grade; the
// two must never diverge, since a submission is graded against a fresh
// re-derivation of what Assemble produced.
func (e *Engine) assemble(ctx context.Context, testID string) (*models.TestDefinition, []models.Question, error) {
	def, err := e.tests.ResolveTest(ctx, testID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, fmt.Errorf("test %s: %w", testID, ErrNotFound)
		}
		return nil, nil, NewStorageError("resolve test", err)
	}

	var questions []models.Question
	for _, pick := range def.QuestionSets {
		set, err := e.sets.ResolveSet(ctx, pick.SetID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				// Dangling reference from a deleted set: a shorter test
				// beats a hard failure for someone mid-test.
				continue
			}
			return nil, nil, NewStorageError("resolve question set", err)
		}
		n := pick.NumToPick
		if n > len(set.Questions) {
			n = len(set.Questions)
		}
		if n < 0 {
			n = 0
		}
		questions = append(questions, set.Questions[:n]...)
	}
	return def, questions, nil
}
