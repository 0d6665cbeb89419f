package checker

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"loanchecker/pkg/domain"
	"loanchecker/pkg/logger"
	"loanchecker/pkg/serrors"
	"loanchecker/pkg/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultFeedbackLimit is the page size when none is requested.
	DefaultFeedbackLimit = 20
	// MaxFeedbackLimit caps the page size.
	MaxFeedbackLimit = 100

	maxNameLength     = 100
	maxCommentsLength = 2000
)

func (c *checker) SubmitFeedback(ctx context.Context, input domain.FeedbackInput) (*domain.Feedback, error) {
	if input.Rating < domain.MinRating || input.Rating > domain.MaxRating {
		return nil, serrors.With(serrors.ErrBadRequest, "rating must be between %d and %d", domain.MinRating, domain.MaxRating)
	}

	name := strings.TrimSpace(input.Name)
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, serrors.With(serrors.ErrBadRequest, "name must be at most %d characters", maxNameLength)
	}
	comments := strings.TrimSpace(input.Comments)
	if utf8.RuneCountInString(comments) > maxCommentsLength {
		return nil, serrors.With(serrors.ErrBadRequest, "comments must be at most %d characters", maxCommentsLength)
	}

	feedback, err := c.storage.StoreFeedback(ctx, domain.Feedback{
		Name:     name,
		Rating:   input.Rating,
		Comments: comments,
	})
	if err != nil {
		return nil, fmt.Errorf("could not store feedback: %w", err)
	}
	logger.Info(ctx, "feedback stored", zap.Stringer("id", feedback.ID), zap.Int("rating", feedback.Rating))

	return feedback, nil
}

func (c *checker) ListFeedback(ctx context.Context, cursor string, limit uint) ([]domain.Feedback, string, error) {
	after, err := decodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	switch {
	case limit == 0:
		limit = DefaultFeedbackLimit
	case limit > MaxFeedbackLimit:
		limit = MaxFeedbackLimit
	}

	page, err := c.storage.ListFeedback(ctx, after, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not list feedback: %w", err)
	}

	next := ""
	if page.NextCursor != nil {
		next = encodeCursor(*page.NextCursor)
	}

	return page.Feedback, next, nil
}

// cursorSeparator joins the RFC 3339 creation time and the ID of a cursor.
const cursorSeparator = "_"

func encodeCursor(cursor storage.FeedbackCursor) string {
	return cursor.CreatedAt.UTC().Format(time.RFC3339Nano) + cursorSeparator + cursor.ID.String()
}

func decodeCursor(cursor string) (storage.FeedbackCursor, error) {
	if cursor == "" {
		return storage.FeedbackCursor{}, nil
	}

	createdAt, id, ok := strings.Cut(cursor, cursorSeparator)
	if !ok {
		return storage.FeedbackCursor{}, serrors.With(serrors.ErrBadRequest, "invalid cursor")
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return storage.FeedbackCursor{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return storage.FeedbackCursor{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
	}

	return storage.FeedbackCursor{CreatedAt: t, ID: domain.FeedbackID(u)}, nil
}
