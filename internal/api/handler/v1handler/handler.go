// Package v1handler implements the v1 HTTP API: score previews, single and
// batch checks, feedback and screen content.
package v1handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"loanchecker/internal/checker"
	"loanchecker/internal/config"
	"loanchecker/pkg/logger"
	"loanchecker/pkg/serrors"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// DefaultLimit is the feedback page size when none is requested.
const DefaultLimit = checker.DefaultFeedbackLimit

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 64 << 10

type Deps struct {
	Checker checker.Checker
}

// Options are the request defaults of the batch endpoint.
type Options struct {
	// Threshold is the default approval probability filter of a batch preview.
	Threshold float64
	// PreviewLimit is the default number of preview rows.
	PreviewLimit int
	// MaxUploadBytes caps the size of a batch upload.
	MaxUploadBytes int64
}

func NewOptions(cfg *config.Config) Options {
	return Options{
		Threshold:      cfg.Checker.Threshold,
		PreviewLimit:   cfg.Checker.PreviewLimit,
		MaxUploadBytes: cfg.Checker.MaxUploadBytes,
	}
}

type Handler struct {
	deps    Deps
	options Options
	schemas *schemas
}

func New(deps Deps, options Options) *Handler {
	return &Handler{
		deps:    deps,
		options: options,
		schemas: mustLoadSchemas(),
	}
}

// Error is the body of a failed request.
type Error struct {
	Code    string
	Message string
}

// ErrorStatusCode is an Error with its HTTP status.
type ErrorStatusCode struct {
	StatusCode int
	Response   Error
}

var defaultMessages = map[serrors.Kind]string{ //nolint: gochecknoglobals
	serrors.ErrNotFound:      "resource not found",
	serrors.ErrUnauthorized:  "unauthorized",
	serrors.ErrForbidden:     "forbidden",
	serrors.ErrBadRequest:    "bad request",
	serrors.ErrConflict:      "conflict",
	serrors.ErrUnprocessable: "unprocessable request",
	serrors.ErrInternal:      "internal error",
	serrors.ErrTimeout:       "request timed out",
	serrors.ErrUnavailable:   "service unavailable",
	serrors.ErrRateLimited:   "rate limit exceeded",
}

// NewError maps err to a status and a client safe message. Internal errors
// never expose their cause.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorStatusCode {
	kind := serrors.KindOf(err)
	status := serrors.StatusCode(err)

	message := ""
	var se *serrors.Error
	if kind != serrors.ErrInternal && errors.As(err, &se) {
		message = se.Message()
		if message == "" && se.Cause() != nil && !errors.Is(se.Cause(), kind) {
			message = se.Cause().Error()
		}
	}
	if message == "" {
		message = defaultMessages[kind]
	}

	if status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
	} else {
		logger.Debug(ctx, "request rejected", zap.Error(err))
	}

	return &ErrorStatusCode{
		StatusCode: status,
		Response:   Error{Code: kind.Error(), Message: message},
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)

	writeJSON(w, res.StatusCode, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("error", func(e *jx.Encoder) { e.Str(res.Response.Message) })
			e.Field("code", func(e *jx.Encoder) { e.Str(res.Response.Code) })
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	var e jx.Encoder
	encode(&e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// readJSON reads a bounded JSON body and validates it against schema.
func readJSON(w http.ResponseWriter, r *http.Request, schema *schema) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, serrors.With(serrors.ErrBadRequest, "request body exceeds %d bytes", maxErr.Limit)
		}

		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not read request body")
	}
	if err := schema.validate(data); err != nil {
		return nil, err
	}

	return data, nil
}
