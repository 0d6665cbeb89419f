// Package checker is the application service behind every screen: score
// previews, single and batch loan approval checks, and user feedback.
package checker

import (
	"context"
	"io"

	"loanchecker/pkg/domain"
)

//go:generate mockgen -package mockchecker -source=interface.go -destination=mock/mockchecker.go *
type Checker interface {
	// Score derives the loan-to-income ratio and the credit score of a form.
	Score(ctx context.Context, form domain.ApplicantForm) domain.ScoreEstimate
	// Check validates a form and predicts its approval.
	Check(ctx context.Context, form domain.ApplicantForm) (*domain.CheckResult, error)
	// CheckBatch predicts every row of a CSV upload.
	CheckBatch(ctx context.Context, r io.Reader) (*BatchResult, error)
	SubmitFeedback(ctx context.Context, input domain.FeedbackInput) (*domain.Feedback, error)
	// ListFeedback returns a page of feedback, newest first, and the cursor of
	// the next page ("" on the last page).
	ListFeedback(ctx context.Context, cursor string, limit uint) ([]domain.Feedback, string, error)
}
