package domain

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

// AnonymousName is displayed for feedback submitted without a name.
const AnonymousName = "Anonymous"

const (
	// MinRating is the lowest accepted feedback rating.
	MinRating = 1
	// MaxRating is the highest accepted feedback rating.
	MaxRating = 5
)

// FeedbackID uniquely identifies a feedback entry.
type FeedbackID uuid.UUID

// String returns the canonical UUID representation.
func (id FeedbackID) String() string {
	return uuid.UUID(id).String()
}

// Compare orders IDs by their bytes, which matches both the canonical string
// order and the postgres uuid order.
func (id FeedbackID) Compare(other FeedbackID) int {
	return bytes.Compare(id[:], other[:])
}

// FeedbackInput is what a user submits from the feedback screen.
type FeedbackInput struct {
	Name     string `json:"name"`
	Rating   int    `json:"rating"`
	Comments string `json:"comments"`
}

// Feedback is a stored feedback entry.
type Feedback struct {
	ID       FeedbackID `json:"id"`
	Name     string     `json:"name"`
	Rating   int        `json:"rating"`
	Comments string     `json:"comments"`

	CreatedAt time.Time `json:"createdAt"`
}

// DisplayName returns the submitter name, or AnonymousName when none was given.
func (f Feedback) DisplayName() string {
	if f.Name == "" {
		return AnonymousName
	}

	return f.Name
}
