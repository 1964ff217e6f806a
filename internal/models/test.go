package models

import "time"

// SetPick references a question set and how many of its leading questions a
// test draws. NumToPick greater than the set size is clamped at assembly
// time, never rejected.
type SetPick struct {
	SetID     string `bson:"set_id" json:"setId"`
	NumToPick int    `bson:"num_to_pick" json:"numToPick"`
}

// TestDefinition describes a deliverable test: which sets it draws from, in
// which order, and the passing threshold as a percentage.
type TestDefinition struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Description    string    `bson:"description,omitempty" json:"description,omitempty"`
	IsPublic       bool      `bson:"is_public" json:"isPublic"`
	AccessPasscode string    `bson:"access_passcode,omitempty" json:"-"`
	QuestionSets   []SetPick `bson:"question_sets" json:"questionSets"`
	PassingScore   int       `bson:"passing_score" json:"passingScore"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}
