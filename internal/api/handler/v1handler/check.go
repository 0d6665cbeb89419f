package v1handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"loanchecker/internal/checker"
	"loanchecker/pkg/serrors"

	"github.com/go-faster/jx"
)

// FailedRowsHeader lists the failed row numbers of a CSV download.
const FailedRowsHeader = "X-Failed-Rows"

// Score previews the derived ratio and credit score of a form.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	data, err := readJSON(w, r, h.schemas.score)
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	form, err := decodeForm(data)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	estimate := h.deps.Checker.Score(r.Context(), form)
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeScore(e, estimate) })
}

// Check predicts approval of a single applicant form.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	data, err := readJSON(w, r, h.schemas.form)
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	form, err := decodeForm(data)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	res, err := h.deps.Checker.Check(r.Context(), form)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeCheckResult(e, res) })
}

// CheckBatch predicts every row of a CSV upload, sent either as the "file"
// part of a multipart form or as a text/csv body. It answers with a JSON
// summary, or with the predicted CSV when format=csv.
func (h *Handler) CheckBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.options.MaxUploadBytes)

	upload, closeUpload, err := h.openUpload(r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	defer closeUpload()

	threshold, limit, asCSV, err := h.batchParams(r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	res, err := h.deps.Checker.CheckBatch(r.Context(), upload)
	if err != nil {
		h.writeError(w, r, uploadError(err, h.options.MaxUploadBytes))

		return
	}

	if asCSV {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": checker.BatchFileName}))
		if len(res.Failures) > 0 {
			w.Header().Set(FailedRowsHeader, joinInts(res.FailedRows()))
		}
		w.WriteHeader(http.StatusOK)
		_ = res.WriteCSV(w)

		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeBatchSummary(e, batchSummary{result: res, threshold: threshold, limit: limit})
	})
}

func (h *Handler) openUpload(r *http.Request) (io.Reader, func(), error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid content type")
	}

	switch mediaType {
	case "text/csv", "application/csv", "text/plain":
		return r.Body, func() {}, nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(h.options.MaxUploadBytes); err != nil {
			return nil, nil, uploadError(serrors.Wrap(serrors.ErrBadRequest, err, "could not read upload"),
				h.options.MaxUploadBytes)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, nil, serrors.Wrap(serrors.ErrBadRequest, err, "missing file part")
		}

		return file, func() {
			_ = file.Close()
			_ = r.MultipartForm.RemoveAll()
		}, nil
	default:
		return nil, nil, serrors.With(serrors.ErrBadRequest, "unsupported content type %q", mediaType)
	}
}

// batchParams reads threshold, limit and format from the query or the form.
func (h *Handler) batchParams(r *http.Request) (float64, int, bool, error) {
	threshold := h.options.Threshold
	if v := r.FormValue("threshold"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil || t < 0 || t > 1 {
			return 0, 0, false, serrors.With(serrors.ErrBadRequest, "threshold must be a number between 0 and 1")
		}
		threshold = t
	}

	limit := h.options.PreviewLimit
	if v := r.FormValue("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 0 {
			return 0, 0, false, serrors.With(serrors.ErrBadRequest, "limit must be a non-negative integer")
		}
		limit = l
	}

	asCSV := false
	switch format := r.FormValue("format"); format {
	case "", "json":
	case "csv":
		asCSV = true
	default:
		return 0, 0, false, serrors.With(serrors.ErrBadRequest, "unsupported format %q", format)
	}

	return threshold, limit, asCSV, nil
}

func uploadError(err error, limit int64) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return serrors.With(serrors.ErrBadRequest, "upload exceeds %d bytes", limit)
	}

	return err
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}

	return strings.Join(parts, ",")
}

