package engine

import (
	"context"
	"errors"
	"testing"

	"testbank-service/internal/models"
)

func gradeFixture(passingScore int) (*Engine, string) {
	sets := stubSets{
		"s1": {
			ID: "s1",
			Questions: []models.Question{
				q("q1", "Capital of France?", "Paris"),
				q("q2", "2+2?", "4"),
			},
		},
	}
	tests := stubTests{
		"t1": {
			ID:           "t1",
			Name:         "Basics",
			PassingScore: passingScore,
			QuestionSets: []models.SetPick{{SetID: "s1", NumToPick: 2}},
		},
	}
	return New(tests, sets), "t1"
}

func TestGradeScoresByValue(t *testing.T) {
	eng, testID := gradeFixture(50)

	_, result, err := eng.Grade(context.Background(), testID, map[string]string{
		"q1": "Paris",
		"q2": "5",
	})
	if err != nil {
		t.Fatalf("Grade failed: %v", err)
	}
	if result.TotalQuestions != 2 {
		t.Errorf("expected totalQuestions=2, got %d", result.TotalQuestions)
	}
	if result.CorrectAnswers != 1 {
		t.Errorf("expected correctAnswers=1, got %d", result.CorrectAnswers)
	}
	if result.Percentage != 50 {
		t.Errorf("expected percentage=50, got %d", result.Percentage)
	}
	if len(result.Attempted) != 2 {
		t.Errorf("expected 2 breakdown rows, got %d", len(result.Attempted))
	}
	if !result.Attempted[0].IsCorrect || result.Attempted[1].IsCorrect {
		t.Errorf("unexpected correctness flags: %+v", result.Attempted)
	}
}

func TestGradeUnansweredCountsInDenominatorOnly(t *testing.T) {
	eng, testID := gradeFixture(50)

	_, result, err := eng.Grade(context.Background(), testID, map[string]string{"q1": "Paris"})
	if err != nil {
		t.Fatalf("Grade failed: %v", err)
	}
	if result.TotalQuestions != 2 {
		t.Errorf("expected totalQuestions=2, got %d", result.TotalQuestions)
	}
	if result.CorrectAnswers != 1 {
		t.Errorf("expected correctAnswers=1, got %d", result.CorrectAnswers)
	}
	if result.Percentage != 50 {
		t.Errorf("expected percentage=50, got %d", result.Percentage)
	}
	if len(result.Attempted) != 1 {
		t.Errorf("unanswered question must not appear in the breakdown, got %d rows", len(result.Attempted))
	}
}

func TestGradePassThresholdIsInclusive(t *testing.T) {
	eng, testID := gradeFixture(50)

	_, result, err := eng.Grade(context.Background(), testID, map[string]string{"q1": "Paris", "q2": "5"})
	if err != nil {
		t.Fatalf("Grade failed: %v", err)
	}
	if result.Percentage != 50 || !result.Passed {
		t.Errorf("percentage == passingScore must pass; got percentage=%d passed=%v", result.Percentage, result.Passed)
	}

	eng, testID = gradeFixture(51)
	_, result, err = eng.Grade(context.Background(), testID, map[string]string{"q1": "Paris", "q2": "5"})
	if err != nil {
		t.Fatalf("Grade failed: %v", err)
	}
	if result.Passed {
		t.Errorf("percentage below passingScore must not pass; got passed=%v", result.Passed)
	}
}

func TestGradeRoundsHalfUp(t *testing.T) {
	cases := []struct {
		name      string
		questions int
		correct   int
		want      int
	}{
		{"one of three", 3, 1, 33},
		{"two of three", 3, 2, 67},
		{"one of eight is half", 8, 1, 13}, // 12.5 rounds up
		{"one of six", 6, 1, 17},
		{"all", 4, 4, 100},
		{"none", 4, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set := &models.QuestionSet{ID: "s"}
			answers := map[string]string{}
			for i := 0; i < tc.questions; i++ {
				id := string(rune('a' + i))
				set.Questions = append(set.Questions, q(id, "prompt", "yes"))
				if i < tc.correct {
					answers[id] = "yes"
				} else {
					answers[id] = "no"
				}
			}
			eng := New(
				stubTests{"t": {ID: "t", PassingScore: 100, QuestionSets: []models.SetPick{{SetID: "s", NumToPick: tc.questions}}}},
				stubSets{"s": set},
			)

			_, result, err := eng.Grade(context.Background(), "t", answers)
			if err != nil {
				t.Fatalf("Grade failed: %v", err)
			}
			if result.Percentage != tc.want {
				t.Errorf("%d/%d: expected percentage=%d, got %d", tc.correct, tc.questions, tc.want, result.Percentage)
			}
		})
	}
}

func TestGradeZeroQuestionsIsInvalidState(t *testing.T) {
	tests := stubTests{
		"t1": {
			ID:           "t1",
			QuestionSets: []models.SetPick{{SetID: "gone", NumToPick: 5}},
		},
	}
	eng := New(tests, stubSets{})

	_, _, err := eng.Grade(context.Background(), "t1", map[string]string{})
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState for a zero-question test, got %v", err)
	}
}

func TestGradeIgnoresAnswersForUnassembledQuestions(t *testing.T) {
	eng, testID := gradeFixture(50)

	_, result, err := eng.Grade(context.Background(), testID, map[string]string{
		"q1":      "Paris",
		"q2":      "4",
		"unknown": "whatever",
	})
	if err != nil {
		t.Fatalf("Grade failed: %v", err)
	}
	if result.TotalQuestions != 2 || result.CorrectAnswers != 2 {
		t.Errorf("answers outside the assembly must be ignored; got %+v", result)
	}
	if len(result.Attempted) != 2 {
		t.Errorf("expected 2 breakdown rows, got %d", len(result.Attempted))
	}
}

func TestGradeUnknownTest(t *testing.T) {
	eng := New(stubTests{}, stubSets{})

	_, _, err := eng.Grade(context.Background(), "missing", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
