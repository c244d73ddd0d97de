package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionSummary identifies one past interview session in the history list.
type SessionSummary struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Interaction is one question/answer/score/feedback unit within a session.
// Answer, Score and Feedback are nil until an answer has been submitted
// and scored; a single feedback response populates score and feedback
// together, never one without the other.
type Interaction struct {
	Question  string    `json:"question"`
	Answer    *string   `json:"answer"`
	Score     *float64  `json:"score"`
	Feedback  *string   `json:"feedback"`
	Timestamp time.Time `json:"timestamp"`
}

// Answered reports whether an answer has been submitted for this interaction.
func (i Interaction) Answered() bool {
	return i.Answer != nil
}
