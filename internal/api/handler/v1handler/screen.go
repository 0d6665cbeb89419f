package v1handler

import (
	"bytes"
	"net/http"

	"loanchecker/internal/ui"

	"github.com/go-faster/jx"
)

// Screen returns the content of a screen as JSON.
func (h *Handler) Screen(w http.ResponseWriter, r *http.Request) {
	s, err := ui.ParseScreen(r.PathValue("screen"))
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodePage(e, ui.Render(s)) })
}

// ScreenHTML renders a screen as an HTML page. The root path is the overview.
func (h *Handler) ScreenHTML(w http.ResponseWriter, r *http.Request) {
	s, err := ui.ParseScreen(r.PathValue("screen"))
	if err != nil {
		http.NotFound(w, r)

		return
	}

	var buf bytes.Buffer
	if err := ui.WriteHTML(&buf, ui.Render(s)); err != nil {
		h.writeError(w, r, err)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
