package v1handler_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-faster/jx"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"loanchecker/internal/api/handler/v1handler"
	"loanchecker/internal/checker"
	mockchecker "loanchecker/internal/checker/mock"
	"loanchecker/pkg/domain"
	"loanchecker/pkg/serrors"
)

const validForm = `{"age":30,"gender":"female","education":"Bachelor","homeOwnership":"OWN",` +
	`"previousDefault":"No","income":50000000,"loanAmount":10000000,"interestRate":15,"loanIntent":"EDUCATION"}`

// jsonField returns the raw JSON of a top level field.
func jsonField(t *testing.T, data []byte, field string) string {
	t.Helper()

	var raw jx.Raw
	err := jx.DecodeBytes(data).ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != field {
			return d.Skip()
		}
		var err error
		raw, err = d.Raw()

		return err
	})
	require.NoError(t, err)
	require.NotNil(t, raw, "field %s not found in %s", field, data)

	return raw.String()
}

func newMockHandler(t *testing.T) (*mockchecker.MockChecker, *v1handler.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mockchecker.NewMockChecker(ctrl)

	return m, v1handler.New(v1handler.Deps{Checker: m},
		v1handler.Options{Threshold: 0.5, PreviewLimit: 1, MaxUploadBytes: 1 << 20})
}

func serve(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler(rec, req)

	return rec
}

func TestHandler_Check(t *testing.T) {
	m, h := newMockHandler(t)

	m.EXPECT().Check(gomock.Any(), domain.ApplicantForm{
		Age: 30, Gender: "female", Education: "Bachelor", HomeOwnership: "OWN", PreviousDefault: "No",
		Income: 50_000_000, LoanAmount: 10_000_000, InterestRate: 15, LoanIntent: "EDUCATION",
	}).DoAndReturn(func(_ context.Context, form domain.ApplicantForm) (*domain.CheckResult, error) {
		return &domain.CheckResult{
			Applicant:  domain.Applicant{ApplicantForm: form, LoanPercentIncome: 0.2, CreditScore: 770},
			Prediction: domain.Prediction{Label: domain.LabelApproved, Class: 1, Probability: 0.7342},
		}, nil
	})

	rec := serve(h.Check, httptest.NewRequest(http.MethodPost, "/v1/checks", strings.NewReader(validForm)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := rec.Body.Bytes()
	require.JSONEq(t, `"approved"`, jsonField(t, body, "label"))
	require.JSONEq(t, `"73.42 %"`, jsonField(t, body, "percent"))
	require.JSONEq(t, `1`, jsonField(t, body, "class"))
	applicant := []byte(jsonField(t, body, "applicant"))
	require.JSONEq(t, `770`, jsonField(t, applicant, "creditScore"))
	require.JSONEq(t, `0.2`, jsonField(t, applicant, "loanPercentIncome"))
}

func TestHandler_Check_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"missing fields", `{"age":30}`},
		{"age out of range", strings.Replace(validForm, `"age":30`, `"age":17`, 1)},
		{"fractional age", strings.Replace(validForm, `"age":30`, `"age":30.5`, 1)},
		{"income as string", strings.Replace(validForm, `"income":50000000`, `"income":"50M"`, 1)},
		{"derived field sent", strings.Replace(validForm, `{`, `{"creditScore":850,`, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newMockHandler(t)

			rec := serve(h.Check, httptest.NewRequest(http.MethodPost, "/v1/checks", strings.NewReader(tt.body)))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.JSONEq(t, `"BAD_REQUEST"`, jsonField(t, rec.Body.Bytes(), "code"))
		})
	}
}

func TestHandler_Check_Unprocessable(t *testing.T) {
	m, h := newMockHandler(t)

	m.EXPECT().Check(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrUnprocessable, `unknown category "robot" for column person_gender`))

	body := strings.Replace(validForm, `"female"`, `"robot"`, 1)
	rec := serve(h.Check, httptest.NewRequest(http.MethodPost, "/v1/checks", strings.NewReader(body)))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, jsonField(t, rec.Body.Bytes(), "error"), "robot")
}

func TestHandler_Score(t *testing.T) {
	m, h := newMockHandler(t)

	m.EXPECT().Score(gomock.Any(), gomock.Any()).Return(domain.ScoreEstimate{
		LoanPercentIncome: 0.2,
		CreditScore:       770,
		Adjustments:       []domain.ScoreAdjustment{{Rule: "base", Delta: 650}},
	})

	body := `{"income":50000000,"loanAmount":10000000,"previousDefault":"No","homeOwnership":"OWN"}`
	rec := serve(h.Score, httptest.NewRequest(http.MethodPost, "/v1/scores", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"loanPercentIncome":0.2,"creditScore":770,"adjustments":[{"rule":"base","delta":650}]}`,
		rec.Body.String())
}

func sampleBatch() *checker.BatchResult {
	return &checker.BatchResult{
		Header: []string{"id", "person_age"},
		Rows: []checker.BatchRow{
			{Number: 1, Values: []string{"a", "30"}, Prediction: domain.Prediction{Class: 1, Probability: 0.9}},
			{Number: 2, Values: []string{"b", "24"}, Prediction: domain.Prediction{Class: 0, Probability: 0.1}},
			{Number: 4, Values: []string{"d", "40"}, Prediction: domain.Prediction{Class: 1, Probability: 0.7}},
		},
		Failures: []checker.RowFailure{{Row: 3, Reason: "bad"}, {Row: 5, Reason: "worse"}},
	}
}

func TestHandler_CheckBatch_CSVBodySummary(t *testing.T) {
	m, h := newMockHandler(t)

	m.EXPECT().CheckBatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r io.Reader) (*checker.BatchResult, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			require.Equal(t, "id,person_age\n", string(data))

			return sampleBatch(), nil
		})

	req := httptest.NewRequest(http.MethodPost, "/v1/checks/batch?threshold=0.6&limit=5",
		strings.NewReader("id,person_age\n"))
	req.Header.Set("Content-Type", "text/csv")
	rec := serve(h.CheckBatch, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.Bytes()
	require.JSONEq(t, `5`, jsonField(t, body, "total"))
	require.JSONEq(t, `3`, jsonField(t, body, "predicted"))
	require.JSONEq(t, `2`, jsonField(t, body, "failed"))
	require.JSONEq(t, `2`, jsonField(t, body, "matching"))
	require.JSONEq(t, `[
		{"row":1,"values":{"id":"a","person_age":"30"},"prediction":1,"approvalProb":0.9},
		{"row":4,"values":{"id":"d","person_age":"40"},"prediction":1,"approvalProb":0.7}
	]`, jsonField(t, body, "rows"))
	require.JSONEq(t, `[{"row":3,"reason":"bad"},{"row":5,"reason":"worse"}]`, jsonField(t, body, "failures"))
}

func TestHandler_CheckBatch_PreviewLimitDefault(t *testing.T) {
	m, h := newMockHandler(t)

	m.EXPECT().CheckBatch(gomock.Any(), gomock.Any()).Return(sampleBatch(), nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/checks/batch", strings.NewReader("x"))
	req.Header.Set("Content-Type", "text/csv")
	rec := serve(h.CheckBatch, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.Bytes()
	require.JSONEq(t, `0.5`, jsonField(t, body, "threshold"))
	require.JSONEq(t, `[{"row":1,"values":{"id":"a","person_age":"30"},"prediction":1,"approvalProb":0.9}]`,
		jsonField(t, body, "rows"))
}

func multipartUpload(t *testing.T, target string, fields map[string]string, file string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != "" {
		fw, err := mw.CreateFormFile("file", "applicants.csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(file))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func TestHandler_CheckBatch_MultipartCSVDownload(t *testing.T) {
	m, h := newMockHandler(t)

	m.EXPECT().CheckBatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r io.Reader) (*checker.BatchResult, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			require.Equal(t, "id,person_age\n", string(data))

			return sampleBatch(), nil
		})

	req := multipartUpload(t, "/v1/checks/batch", map[string]string{"format": "csv"}, "id,person_age\n")
	rec := serve(h.CheckBatch, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename=loan_predictions.csv`, rec.Header().Get("Content-Disposition"))
	require.Equal(t, "3,5", rec.Header().Get(v1handler.FailedRowsHeader))
	require.Equal(t, "id,person_age,prediction,approval_prob\n"+
		"a,30,1,0.9\n"+
		"b,24,0,0.1\n"+
		"d,40,1,0.7\n", rec.Body.String())
}

func TestHandler_CheckBatch_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		req  func(t *testing.T) *http.Request
	}{
		{"no content type", func(*testing.T) *http.Request {
			return httptest.NewRequest(http.MethodPost, "/v1/checks/batch", strings.NewReader("x"))
		}},
		{"json body", func(*testing.T) *http.Request {
			req := httptest.NewRequest(http.MethodPost, "/v1/checks/batch", strings.NewReader("{}"))
			req.Header.Set("Content-Type", "application/json")

			return req
		}},
		{"multipart without file", func(t *testing.T) *http.Request {
			return multipartUpload(t, "/v1/checks/batch", map[string]string{"threshold": "0.5"}, "")
		}},
		{"threshold out of range", func(t *testing.T) *http.Request {
			return multipartUpload(t, "/v1/checks/batch?threshold=2", nil, "a\n")
		}},
		{"negative limit", func(t *testing.T) *http.Request {
			return multipartUpload(t, "/v1/checks/batch?limit=-1", nil, "a\n")
		}},
		{"unknown format", func(t *testing.T) *http.Request {
			return multipartUpload(t, "/v1/checks/batch?format=xlsx", nil, "a\n")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newMockHandler(t)

			rec := serve(h.CheckBatch, tt.req(t))
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_CheckBatch_UploadTooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mockchecker.NewMockChecker(ctrl)
	h := v1handler.New(v1handler.Deps{Checker: m}, v1handler.Options{Threshold: 0.5, MaxUploadBytes: 8})

	m.EXPECT().CheckBatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r io.Reader) (*checker.BatchResult, error) {
			_, err := io.ReadAll(r)

			return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not read csv")
		})

	req := httptest.NewRequest(http.MethodPost, "/v1/checks/batch", strings.NewReader(strings.Repeat("a", 64)))
	req.Header.Set("Content-Type", "text/csv")
	rec := serve(h.CheckBatch, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, jsonField(t, rec.Body.Bytes(), "error"), "upload exceeds 8 bytes")
}

func TestHandler_CheckBatch_MissingColumns(t *testing.T) {
	m, h := newMockHandler(t)

	m.EXPECT().CheckBatch(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrBadRequest, "missing required columns: credit_score"))

	req := httptest.NewRequest(http.MethodPost, "/v1/checks/batch", strings.NewReader("x\n"))
	req.Header.Set("Content-Type", "text/csv")
	rec := serve(h.CheckBatch, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `"missing required columns: credit_score"`, jsonField(t, rec.Body.Bytes(), "error"))
}
