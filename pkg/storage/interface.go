// Package storage defines the persistence the service relies on. Postgres and
// in-memory implementations live in the sub packages.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import (
	"context"
	"time"

	"loanchecker/pkg/domain"
)

// FeedbackCursor is the position of the last entry of a page. Feedback is
// listed by CreatedAt, then ID, both descending.
type FeedbackCursor struct {
	CreatedAt time.Time
	ID        domain.FeedbackID
}

// CursorOf returns the cursor positioned at f.
func CursorOf(f domain.Feedback) FeedbackCursor {
	return FeedbackCursor{CreatedAt: f.CreatedAt, ID: f.ID}
}

// IsZero reports whether the cursor points before the newest entry.
func (c FeedbackCursor) IsZero() bool {
	return c.CreatedAt.IsZero()
}

// Admits reports whether f is listed after the cursor.
func (c FeedbackCursor) Admits(f domain.Feedback) bool {
	if c.IsZero() {
		return true
	}
	if !f.CreatedAt.Equal(c.CreatedAt) {
		return f.CreatedAt.Before(c.CreatedAt)
	}

	return f.ID.Compare(c.ID) < 0
}

// FeedbackPage is one page of feedback, newest first.
type FeedbackPage struct {
	Feedback []domain.Feedback
	// NextCursor points at the last entry when more entries exist.
	NextCursor *FeedbackCursor
}

// FeedbackStorage persists user feedback.
type FeedbackStorage interface {
	// StoreFeedback stores a new entry and returns it with its ID and creation time set.
	StoreFeedback(ctx context.Context, feedback domain.Feedback) (*domain.Feedback, error)
	// ListFeedback returns up to limit entries listed after cursor, or the
	// newest entries when cursor is zero.
	ListFeedback(ctx context.Context, cursor FeedbackCursor, limit uint) (FeedbackPage, error)
}

// Storage is a storage backend with lifecycle management.
type Storage interface {
	FeedbackStorage

	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases the backend. The instance must not be used afterwards.
	Close() error
}
