package checker

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"loanchecker/pkg/creditscore"
	"loanchecker/pkg/domain"
	"loanchecker/pkg/serrors"
)

// BatchFileName is the default name of a batch download.
const BatchFileName = "loan_predictions.csv"

// Columns appended to the batch download.
const (
	ColumnPrediction   = "prediction"
	ColumnApprovalProb = "approval_prob"
)

// BatchRow is one successfully predicted upload row.
type BatchRow struct {
	// Number is the 1-based data row number, not counting the header.
	Number int
	// Values are the uploaded cells in header order, with the derived
	// columns replaced by their recomputed values.
	Values     []string
	Applicant  domain.Applicant
	Prediction domain.Prediction
}

// RowFailure is an upload row that could not be predicted.
type RowFailure struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// BatchResult is the outcome of a batch check. Rows keep upload order.
type BatchResult struct {
	Header   []string
	Rows     []BatchRow
	Failures []RowFailure
}

// Total is the number of uploaded data rows.
func (b *BatchResult) Total() int {
	return len(b.Rows) + len(b.Failures)
}

// Filter returns the rows whose approval probability is strictly above
// threshold, in upload order.
func (b *BatchResult) Filter(threshold float64) []BatchRow {
	out := make([]BatchRow, 0, len(b.Rows))
	for _, row := range b.Rows {
		if row.Prediction.Probability > threshold {
			out = append(out, row)
		}
	}

	return out
}

// FailedRows returns the failed row numbers in ascending order.
func (b *BatchResult) FailedRows() []int {
	out := make([]int, len(b.Failures))
	for i, f := range b.Failures {
		out[i] = f.Row
	}

	return out
}

// WriteCSV writes every predicted row with its uploaded columns followed by
// prediction (0 or 1) and approval_prob. Failed rows are left out.
func (b *BatchResult) WriteCSV(w io.Writer) error {
	return b.writeCSV(w, b.Rows)
}

// WriteFilteredCSV is WriteCSV restricted to Filter(threshold).
func (b *BatchResult) WriteFilteredCSV(w io.Writer, threshold float64) error {
	return b.writeCSV(w, b.Filter(threshold))
}

func (b *BatchResult) writeCSV(w io.Writer, rows []BatchRow) error {
	cw := csv.NewWriter(w)

	header := append(append([]string(nil), b.Header...), ColumnPrediction, ColumnApprovalProb)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("could not write csv header: %w", err)
	}
	for _, row := range rows {
		record := append(append([]string(nil), row.Values...),
			strconv.Itoa(row.Prediction.Class),
			strconv.FormatFloat(row.Prediction.Probability, 'f', -1, 64))
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("could not write csv row %d: %w", row.Number, err)
		}
	}
	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("could not write csv: %w", err)
	}

	return nil
}

func (b *BatchResult) sortFailures() {
	sort.SliceStable(b.Failures, func(i, j int) bool { return b.Failures[i].Row < b.Failures[j].Row })
}

// Batch is a parsed upload: the rows that parsed, and the ones that did not.
type Batch struct {
	header   []string
	rows     []BatchRow
	failures []RowFailure
}

// ReadBatch parses a CSV upload. The header must name every applicant column;
// a missing column rejects the whole upload. A row that cannot be parsed,
// malformed quoting included, is recorded as a failure and the remaining rows
// are still read. Only read errors of the upload itself abort.
func ReadBatch(r io.Reader) (*Batch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, serrors.With(serrors.ErrBadRequest, "upload is empty")
	}
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not read csv header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		if _, ok := index[col]; !ok {
			index[col] = i
		}
	}
	var missing []string
	for _, col := range domain.ApplicantColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, serrors.With(serrors.ErrBadRequest, "missing required columns: %s", strings.Join(missing, ", "))
	}

	batch := &Batch{header: header}
	for number := 1; ; number++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			// the reader resumes on the next record
			batch.failures = append(batch.failures, RowFailure{
				Row:    number,
				Reason: fmt.Sprintf("malformed csv: %v", parseErr.Err),
			})

			continue
		}
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not read csv")
		}
		if len(record) != len(header) {
			batch.failures = append(batch.failures, RowFailure{
				Row:    number,
				Reason: fmt.Sprintf("expected %d fields, got %d", len(header), len(record)),
			})

			continue
		}

		applicant, err := parseApplicant(record, index)
		if err != nil {
			batch.failures = append(batch.failures, RowFailure{Row: number, Reason: err.Error()})

			continue
		}

		record[index[domain.ColumnLoanPercentIncome]] = strconv.FormatFloat(applicant.LoanPercentIncome, 'f', -1, 64)
		record[index[domain.ColumnCreditScore]] = strconv.Itoa(applicant.CreditScore)
		batch.rows = append(batch.rows, BatchRow{Number: number, Values: record, Applicant: applicant})
	}

	return batch, nil
}

// Len is the number of data rows read, parsed or not.
func (b *Batch) Len() int {
	return len(b.rows) + len(b.failures)
}

// parseApplicant reads the applicant columns of a record. The uploaded
// loan_percent_income and credit_score are ignored and derived again.
func parseApplicant(record []string, index map[string]int) (domain.Applicant, error) {
	get := func(col string) string { return strings.TrimSpace(record[index[col]]) }

	number := func(col string) (float64, error) {
		v, err := strconv.ParseFloat(get(col), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%s: %q is not a number", col, get(col))
		}

		return v, nil
	}

	age, err := number(domain.ColumnAge)
	if err != nil {
		return domain.Applicant{}, err
	}
	if age != math.Trunc(age) {
		return domain.Applicant{}, fmt.Errorf("%s: %q is not a whole number", domain.ColumnAge, get(domain.ColumnAge))
	}
	income, err := number(domain.ColumnIncome)
	if err != nil {
		return domain.Applicant{}, err
	}
	loan, err := number(domain.ColumnLoanAmount)
	if err != nil {
		return domain.Applicant{}, err
	}
	interest, err := number(domain.ColumnInterestRate)
	if err != nil {
		return domain.Applicant{}, err
	}

	return creditscore.Derive(domain.ApplicantForm{
		Age:             int(age),
		Gender:          domain.Gender(get(domain.ColumnGender)),
		Education:       domain.Education(get(domain.ColumnEducation)),
		HomeOwnership:   domain.HomeOwnership(get(domain.ColumnHomeOwnership)),
		PreviousDefault: domain.DefaultHistory(get(domain.ColumnPreviousDefault)),
		Income:          income,
		LoanAmount:      loan,
		InterestRate:    interest,
		LoanIntent:      domain.LoanIntent(get(domain.ColumnLoanIntent)),
	}), nil
}
