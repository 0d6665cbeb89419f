package checker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"loanchecker/internal/config"
	"loanchecker/pkg/cache"
	"loanchecker/pkg/creditscore"
	"loanchecker/pkg/domain"
	"loanchecker/pkg/inference"
	"loanchecker/pkg/logger"
	"loanchecker/pkg/metrics"
	"loanchecker/pkg/serrors"
	"loanchecker/pkg/storage"

	"go.uber.org/zap"
)

const predictionNamespace = "prediction"

// Options tune caching of predictions.
type Options struct {
	// CacheTTL is how long a single check prediction is reused.
	CacheTTL time.Duration
}

// NewOptions maps the application config to Options.
func NewOptions(cfg *config.Config) Options {
	return Options{
		CacheTTL: cfg.Cache.TTL,
	}
}

type checker struct {
	options   Options
	predictor inference.Predictor
	storage   storage.FeedbackStorage
	cache     cache.Cache
}

var _ Checker = (*checker)(nil)

// New creates a Checker. A nil cache disables prediction caching.
func New(predictor inference.Predictor,
	feedbackStorage storage.FeedbackStorage,
	predictionCache cache.Cache,
	options Options) Checker {
	if predictionCache == nil {
		predictionCache = cache.Noop{}
	}

	return &checker{
		options:   options,
		predictor: predictor,
		storage:   feedbackStorage,
		cache:     predictionCache,
	}
}

func (c *checker) Score(_ context.Context, form domain.ApplicantForm) domain.ScoreEstimate {
	return creditscore.Estimate(form)
}

func (c *checker) Check(ctx context.Context, form domain.ApplicantForm) (*domain.CheckResult, error) {
	if err := ValidateForm(form); err != nil {
		return nil, err
	}

	applicant := creditscore.Derive(form)
	key := cache.Key(predictionNamespace, []byte(c.predictor.Version()), encodeApplicant(applicant))

	if prediction, ok := c.cachedPrediction(ctx, key); ok {
		return &domain.CheckResult{Applicant: applicant, Prediction: prediction, Cached: true}, nil
	}

	prediction, err := c.predictor.Predict(ctx, applicant)
	if err != nil {
		if errors.Is(err, inference.ErrUnknownCategory) {
			return nil, serrors.Wrap(serrors.ErrUnprocessable, err, "")
		}

		return nil, fmt.Errorf("could not predict approval: %w", err)
	}

	if err := c.cache.Set(ctx, key, string(encodePrediction(prediction)), c.options.CacheTTL); err != nil {
		logger.Warn(ctx, "could not cache prediction", zap.Error(err))
	}

	return &domain.CheckResult{Applicant: applicant, Prediction: prediction}, nil
}

// cachedPrediction never fails a check, lookup errors count as misses.
func (c *checker) cachedPrediction(ctx context.Context, key string) (domain.Prediction, bool) {
	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		logger.Warn(ctx, "could not read prediction cache", zap.Error(err))
		metrics.CacheLookups.WithLabelValues("error").Inc()

		return domain.Prediction{}, false
	}
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()

		return domain.Prediction{}, false
	}

	prediction, err := decodePrediction([]byte(raw))
	if err != nil {
		logger.Warn(ctx, "could not decode cached prediction", zap.Error(err))
		metrics.CacheLookups.WithLabelValues("error").Inc()

		return domain.Prediction{}, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()

	return prediction, true
}

func (c *checker) CheckBatch(ctx context.Context, r io.Reader) (*BatchResult, error) {
	batch, err := ReadBatch(r)
	if err != nil {
		return nil, err
	}

	applicants := make([]domain.Applicant, len(batch.rows))
	for i, row := range batch.rows {
		applicants[i] = row.Applicant
	}
	results := c.predictor.PredictBatch(ctx, applicants)
	if len(results) != len(applicants) {
		return nil, fmt.Errorf("predictor returned %d results for %d rows", len(results), len(applicants))
	}

	out := &BatchResult{Header: batch.header, Failures: batch.failures}
	for i, res := range results {
		row := batch.rows[i]
		if res.Err != nil {
			out.Failures = append(out.Failures, RowFailure{Row: row.Number, Reason: res.Err.Error()})

			continue
		}
		row.Prediction = res.Prediction
		out.Rows = append(out.Rows, row)
	}
	out.sortFailures()

	metrics.BatchRows.WithLabelValues("predicted").Add(float64(len(out.Rows)))
	metrics.BatchRows.WithLabelValues("failed").Add(float64(len(out.Failures)))
	logger.Info(ctx, "batch checked",
		zap.Int("rows", len(out.Rows)),
		zap.Int("failures", len(out.Failures)))

	return out, nil
}
