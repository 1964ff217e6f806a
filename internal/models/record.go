package models

import "time"

// AttemptedQuestion is one row of an attempt's per-question breakdown. Only
// answered questions appear here; unanswered ones still count toward the
// attempt's denominator but have no row.
type AttemptedQuestion struct {
	QuestionID     string `bson:"question_id" json:"questionId"`
	QuestionText   string `bson:"question_text" json:"questionText"`
	SelectedOption string `bson:"selected_option" json:"selectedOption"`
	IsCorrect      bool   `bson:"is_correct" json:"isCorrect"`
}

// Attempt is one scored submission. It is a historical record and is never
// edited after insertion.
type Attempt struct {
	QuestionsAttempted []AttemptedQuestion `bson:"questions_attempted" json:"questionsAttempted"`
	Score              int                 `bson:"score" json:"score"`
	CorrectAnswers     int                 `bson:"correct_answers" json:"correctAnswers"`
	TotalQuestions     int                 `bson:"total_questions" json:"totalQuestions"`
	Timestamp          time.Time           `bson:"timestamp" json:"timestamp"`
}

// TestSnapshot is the denormalized test metadata kept on a record. It is
// overwritten on every submission so it always reflects the most recent
// grading run.
type TestSnapshot struct {
	TestName       string `bson:"test_name" json:"testName"`
	TotalQuestions int    `bson:"total_questions" json:"totalQuestions"`
	PassingScore   int    `bson:"passing_score" json:"passingScore"`
}

// UserTestRecord holds the full attempt history for one (user, test) pair.
// Attempts only grows and BestScore never decreases; both are maintained by
// a single atomic upsert in the record repository.
type UserTestRecord struct {
	ID            string       `bson:"_id,omitempty" json:"id"`
	UserID        string       `bson:"user_id" json:"userId"`
	TestID        string       `bson:"test_id" json:"testId"`
	TestDetails   TestSnapshot `bson:"test_details" json:"testDetails"`
	Attempts      []Attempt    `bson:"attempts" json:"attempts"`
	BestScore     int          `bson:"best_score" json:"bestScore"`
	LastAttempted time.Time    `bson:"last_attempted" json:"lastAttempted"`
}
