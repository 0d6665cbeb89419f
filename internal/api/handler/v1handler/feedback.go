package v1handler

import (
	"net/http"
	"strconv"

	"loanchecker/pkg/serrors"

	"github.com/go-faster/jx"
)

// SubmitFeedback stores a feedback entry and echoes it back.
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	data, err := readJSON(w, r, h.schemas.feedback)
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	in, err := decodeFeedback(data)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	fb, err := h.deps.Checker.SubmitFeedback(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) { encodeFeedback(e, fb) })
}

// ListFeedback returns a page of feedback, newest first.
func (h *Handler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := uint(DefaultLimit)
	if v := query.Get("limit"); v != "" {
		l, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "limit must be a non-negative integer"))

			return
		}
		limit = uint(l)
	}

	items, next, err := h.deps.Checker.ListFeedback(r.Context(), query.Get("cursor"), limit)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeFeedbackList(e, items, next) })
}
