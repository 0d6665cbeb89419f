package v1handler_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"loanchecker/internal/api/handler/v1handler"
	"loanchecker/pkg/inference"
	"loanchecker/pkg/logger"
	"loanchecker/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment, "error")
	m.Run()
}

func newTestHandler() *v1handler.Handler {
	return v1handler.New(v1handler.Deps{}, v1handler.Options{Threshold: 0.5, PreviewLimit: 10, MaxUploadBytes: 1 << 20})
}

func TestNewError_InternalOnPlainError(t *testing.T) {
	h := newTestHandler()

	res := h.NewError(context.Background(), errors.New("boom"))
	require.NotNil(t, res)
	require.Equal(t, 500, res.StatusCode)
	require.Equal(t, serrors.ErrInternal.Error(), res.Response.Code)
	require.Equal(t, "internal error", res.Response.Message)
}

func TestNewError_KindSentinelDirect_NotFound(t *testing.T) {
	h := newTestHandler()

	res := h.NewError(context.Background(), serrors.ErrNotFound)
	require.Equal(t, 404, res.StatusCode)
	require.Equal(t, serrors.ErrNotFound.Error(), res.Response.Code)
	require.Equal(t, "resource not found", res.Response.Message)
}

func TestNewError_SemanticWithMessage_BadRequest(t *testing.T) {
	h := newTestHandler()

	err := serrors.With(serrors.ErrBadRequest, "invalid form: age must be between 18 and 100")
	res := h.NewError(context.Background(), err)
	require.Equal(t, 400, res.StatusCode)
	require.Equal(t, serrors.ErrBadRequest.Error(), res.Response.Code)
	require.Equal(t, "invalid form: age must be between 18 and 100", res.Response.Message)
}

func TestNewError_SemanticWrap_Unauthorized(t *testing.T) {
	h := newTestHandler()

	err := serrors.Wrap(serrors.ErrUnauthorized, errors.New("bad token"), "unauthorized")
	res := h.NewError(context.Background(), err)
	require.Equal(t, 401, res.StatusCode)
	// the message, not the cause
	require.Equal(t, "unauthorized", res.Response.Message)
}

func TestNewError_UnknownCategory_Unprocessable(t *testing.T) {
	h := newTestHandler()

	cause := &inference.UnknownCategoryError{Column: "person_gender", Value: "robot"}
	err := fmt.Errorf("check: %w", serrors.Wrap(serrors.ErrUnprocessable, cause, ""))
	res := h.NewError(context.Background(), err)
	require.Equal(t, 422, res.StatusCode)
	require.Equal(t, serrors.ErrUnprocessable.Error(), res.Response.Code)
	require.Equal(t, `unknown category "robot" for column person_gender`, res.Response.Message)
}

func TestNewError_InternalKind_HidesMessage(t *testing.T) {
	h := newTestHandler()

	res := h.NewError(context.Background(), serrors.With(serrors.ErrInternal, "db password is hunter2"))
	require.Equal(t, 500, res.StatusCode)
	require.Equal(t, "internal error", res.Response.Message)
}
