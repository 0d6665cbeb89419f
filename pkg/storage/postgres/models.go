package postgres

import (
	"database/sql"
	"time"

	"loanchecker/pkg/domain"

	"github.com/google/uuid"
)

type PgFeedback struct {
	ID uuid.UUID `db:"id" goqu:"skipinsert"`

	Name     sql.NullString `db:"name"`
	Rating   int            `db:"rating"`
	Comments string         `db:"comments"`

	CreatedAt time.Time `db:"created_at" goqu:"skipinsert"`
}

func (p *PgFeedback) ToDomain() domain.Feedback {
	return domain.Feedback{
		ID:        domain.FeedbackID(p.ID),
		Name:      p.Name.String,
		Rating:    p.Rating,
		Comments:  p.Comments,
		CreatedAt: p.CreatedAt,
	}
}

func (p *PgFeedback) FromDomain(feedback domain.Feedback) {
	*p = PgFeedback{
		ID: uuid.UUID(feedback.ID),
		Name: sql.NullString{
			String: feedback.Name,
			Valid:  feedback.Name != "",
		},
		Rating:    feedback.Rating,
		Comments:  feedback.Comments,
		CreatedAt: feedback.CreatedAt,
	}
}

func pgFeedbackToDomain(rows []PgFeedback) []domain.Feedback {
	out := make([]domain.Feedback, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}

	return out
}
