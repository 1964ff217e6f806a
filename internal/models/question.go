package models

import "time"

// Question is embedded in its QuestionSet; it never moves between sets.
// CorrectAnswer holds the option value itself, not an index, so it must use
// the same representation the client is shown.
type Question struct {
	ID                string   `bson:"id" json:"id"`
	QuestionText      string   `bson:"question_text" json:"questionText"`
	Options           []string `bson:"options" json:"options"`
	CorrectAnswer     string   `bson:"correct_answer" json:"correctAnswer,omitempty"`
	AnswerExplanation string   `bson:"answer_explanation,omitempty" json:"answerExplanation,omitempty"`
	Difficulty        string   `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Tags              []string `bson:"tags,omitempty" json:"tags,omitempty"`
}

// QuestionSet is a named, ordered bank of questions. The stored order is
// stable and defines selection order during assembly.
type QuestionSet struct {
	ID             string     `bson:"_id,omitempty" json:"id"`
	Name           string     `bson:"name" json:"name"`
	Subject        string     `bson:"subject" json:"subject"`
	Subcategory    string     `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	Questions      []Question `bson:"questions" json:"questions"`
	TotalQuestions int        `bson:"total_questions" json:"totalQuestions"`
	CreatedAt      time.Time  `bson:"created_at" json:"createdAt"`
}

// QuestionView is what a test-taker sees: the correct answer and the
// explanation are stripped.
type QuestionView struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// View projects a question into its client-facing shape.
func (q Question) View() QuestionView {
	return QuestionView{
		ID:      q.ID,
		Prompt:  q.QuestionText,
		Options: q.Options,
	}
}
