package postgres

import (
	"context"
	"fmt"

	"loanchecker/pkg/domain"
	"loanchecker/pkg/storage"

	"github.com/doug-martin/goqu/v9"
)

const (
	feedbackTable = "feedback"
)

func (p *PgSQL) StoreFeedback(ctx context.Context, feedback domain.Feedback) (*domain.Feedback, error) {
	var row PgFeedback
	row.FromDomain(feedback)

	var stored PgFeedback
	found, err := p.Builder.Insert(feedbackTable).
		Rows(row).
		Returning(&PgFeedback{}).
		Executor().ScanStructContext(ctx, &stored)
	if err != nil {
		return nil, fmt.Errorf("could not store feedback into pg: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("could not store feedback into pg: no row returned")
	}

	out := stored.ToDomain()

	return &out, nil
}

// ListFeedback orders by created_at DESC, id DESC, continues after the
// (created_at, id) cursor and fetches one extra row to detect a next page.
func (p *PgSQL) ListFeedback(ctx context.Context, cursor storage.FeedbackCursor, limit uint) (storage.FeedbackPage, error) {
	ds := p.Builder.From(feedbackTable).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(limit + 1)
	if !cursor.IsZero() {
		ds = ds.Where(goqu.L("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID.String()))
	}

	var rows []PgFeedback
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.FeedbackPage{}, fmt.Errorf("could not fetch feedback from pg: %w", err)
	}

	more := uint(len(rows)) > limit
	if more {
		rows = rows[:limit]
	}
	feedback := pgFeedbackToDomain(rows)

	var nextCursor *storage.FeedbackCursor
	if more && limit > 0 {
		last := storage.CursorOf(feedback[len(feedback)-1])
		nextCursor = &last
	}

	return storage.FeedbackPage{
		Feedback:   feedback,
		NextCursor: nextCursor,
	}, nil
}
