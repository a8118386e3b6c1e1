package domain

import "time"

// Questionnaire is an onboarding questionnaire submitted by a user.
type Questionnaire struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	Description  string    `db:"description"`
	Goals        string    `db:"goals"`
	Challenges   string    `db:"challenges"`
	Expectations string    `db:"expectations"`
	Completed    bool      `db:"completed"`
	CreatedAt    time.Time `db:"created_at"`
}

// NewQuestionnaire holds the input for submitting a questionnaire.
// Submitted questionnaires are always stored as completed.
type NewQuestionnaire struct {
	UserID       int64
	Description  string
	Goals        string
	Challenges   string
	Expectations string
}
