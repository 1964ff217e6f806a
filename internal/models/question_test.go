package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestQuestionViewStripsAnswerFields(t *testing.T) {
	q := Question{
		ID:                "q1",
		QuestionText:      "Capital of France?",
		Options:           []string{"Paris", "Lyon", "Nice"},
		CorrectAnswer:     "Paris",
		AnswerExplanation: "Paris has been the capital since 508.",
	}

	view := q.View()
	if view.ID != "q1" || view.Prompt != "Capital of France?" {
		t.Errorf("unexpected view: %+v", view)
	}
	if len(view.Options) != 3 {
		t.Errorf("expected 3 options, got %d", len(view.Options))
	}

	data, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "Paris has been") || strings.Contains(string(data), "correctAnswer") {
		t.Errorf("serialized view leaks answer data: %s", data)
	}
}

func TestTestDefinitionHidesPasscode(t *testing.T) {
	def := TestDefinition{
		Name:           "Private",
		AccessPasscode: "sesame",
		PassingScore:   60,
	}
	data, err := json.Marshal(def)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "sesame") {
		t.Errorf("serialized definition leaks the passcode: %s", data)
	}
}
