// Package inference turns an applicant into an approval prediction using the
// fitted preprocessing artifacts and the boosted tree classifier.
package inference

import (
	"context"

	"loanchecker/pkg/domain"
)

//go:generate mockgen -destination=mock/mockinference.go -package=mockinference . Predictor

// Result is the outcome of predicting one row of a batch.
type Result struct {
	Prediction domain.Prediction
	Err        error
}

// Predictor predicts loan approval for applicants.
type Predictor interface {
	// Predict returns the prediction for one applicant.
	Predict(ctx context.Context, applicant domain.Applicant) (domain.Prediction, error)
	// PredictBatch predicts every applicant independently. The result has the
	// same length and order as the input; a failed row carries its error.
	PredictBatch(ctx context.Context, applicants []domain.Applicant) []Result
	// Version identifies the loaded artifact set.
	Version() string
}
