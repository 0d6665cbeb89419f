package inference

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"loanchecker/pkg/domain"
)

const instrumentationName = "loanchecker/pkg/inference"

// Options configures the telemetry of a Pipeline. Nil providers fall back to no-ops.
type Options struct {
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

// Pipeline runs encode -> assemble -> scale -> classify -> label on applicants.
type Pipeline struct {
	artifacts *Artifacts
	tracer    trace.Tracer

	predictions metric.Int64Counter
	failures    metric.Int64Counter
	duration    metric.Float64Histogram
}

var _ Predictor = (*Pipeline)(nil)

// New creates a pipeline over loaded artifacts.
func New(artifacts *Artifacts, opts Options) (*Pipeline, error) {
	if artifacts == nil {
		return nil, fmt.Errorf("artifacts are required")
	}
	if opts.MeterProvider == nil {
		opts.MeterProvider = metricnoop.NewMeterProvider()
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = tracenoop.NewTracerProvider()
	}

	meter := opts.MeterProvider.Meter(instrumentationName)
	predictions, err := meter.Int64Counter("inference.predictions",
		metric.WithDescription("Number of predictions by label"))
	if err != nil {
		return nil, fmt.Errorf("could not create predictions counter: %w", err)
	}
	failures, err := meter.Int64Counter("inference.failures",
		metric.WithDescription("Number of applicants that could not be predicted"))
	if err != nil {
		return nil, fmt.Errorf("could not create failures counter: %w", err)
	}
	duration, err := meter.Float64Histogram("inference.duration",
		metric.WithDescription("Prediction duration"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("could not create duration histogram: %w", err)
	}

	return &Pipeline{
		artifacts:   artifacts,
		tracer:      opts.TracerProvider.Tracer(instrumentationName),
		predictions: predictions,
		failures:    failures,
		duration:    duration,
	}, nil
}

// Version implements Predictor.
func (p *Pipeline) Version() string {
	return p.artifacts.Version
}

// Features assembles the scaled model input of an applicant.
func (p *Pipeline) Features(applicant domain.Applicant) ([]float64, error) {
	encoded, err := p.artifacts.Encoders.Encode(applicant.Categorical())
	if err != nil {
		return nil, err
	}
	numeric := applicant.Numeric()

	x := make([]float64, len(p.artifacts.Features))
	for i, name := range p.artifacts.Features {
		if v, ok := encoded[name]; ok {
			x[i] = v

			continue
		}
		v, ok := numeric[name]
		if !ok {
			return nil, fmt.Errorf("model feature %s has no applicant value", name)
		}
		x[i] = v
	}

	return p.artifacts.Scaler.Transform(x)
}

// Predict implements Predictor.
func (p *Pipeline) Predict(ctx context.Context, applicant domain.Applicant) (domain.Prediction, error) {
	ctx, span := p.tracer.Start(ctx, "inference.Predict")
	defer span.End()

	start := time.Now()
	prediction, err := p.predict(applicant)
	p.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.failures.Add(ctx, 1)

		return domain.Prediction{}, err
	}

	span.SetAttributes(
		attribute.String("prediction.label", string(prediction.Label)),
		attribute.Float64("prediction.probability", prediction.Probability),
	)
	p.predictions.Add(ctx, 1, metric.WithAttributes(attribute.String("label", string(prediction.Label))))

	return prediction, nil
}

func (p *Pipeline) predict(applicant domain.Applicant) (domain.Prediction, error) {
	x, err := p.Features(applicant)
	if err != nil {
		return domain.Prediction{}, err
	}

	class, probability, err := p.artifacts.Model.Predict(x)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("could not run classifier: %w", err)
	}

	return domain.Prediction{
		Label:       domain.LabelForClass(class),
		Class:       class,
		Probability: probability,
	}, nil
}

// PredictBatch implements Predictor.
func (p *Pipeline) PredictBatch(ctx context.Context, applicants []domain.Applicant) []Result {
	ctx, span := p.tracer.Start(ctx, "inference.PredictBatch",
		trace.WithAttributes(attribute.Int("batch.size", len(applicants))))
	defer span.End()

	results := make([]Result, len(applicants))
	for i, a := range applicants {
		if err := ctx.Err(); err != nil {
			results[i] = Result{Err: err}

			continue
		}
		prediction, err := p.Predict(ctx, a)
		results[i] = Result{Prediction: prediction, Err: err}
	}

	return results
}
