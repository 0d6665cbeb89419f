package domain

import "fmt"

// Label is the human readable outcome of a prediction.
type Label string

const (
	// LabelApproved is the outcome for class 1.
	LabelApproved Label = "approved"
	// LabelRejected is the outcome for class 0.
	LabelRejected Label = "rejected"
)

// LabelForClass maps a classifier class to its label. Any class other than 1 is a rejection.
func LabelForClass(class int) Label {
	if class == 1 {
		return LabelApproved
	}

	return LabelRejected
}

// Prediction is the result of running one applicant through the classifier.
type Prediction struct {
	Label Label `json:"label"`
	// Class is the raw classifier output, 1 for approved and 0 for rejected.
	Class int `json:"class"`
	// Probability is the estimated probability of class 1, in [0, 1].
	Probability float64 `json:"probability"`
}

// Percent formats the approval probability the way the check screen shows it, e.g. "73.42 %".
func (p Prediction) Percent() string {
	return fmt.Sprintf("%.2f %%", p.Probability*100)
}

// ScoreAdjustment is a single rule contribution to a credit score.
type ScoreAdjustment struct {
	Rule  string `json:"rule"`
	Delta int    `json:"delta"`
}

// ScoreEstimate is the derived part of an applicant as shown by the form preview.
type ScoreEstimate struct {
	LoanPercentIncome float64           `json:"loanPercentIncome"`
	CreditScore       int               `json:"creditScore"`
	Adjustments       []ScoreAdjustment `json:"adjustments"`
}

// CheckResult is the outcome of a single check: the derived applicant and its prediction.
type CheckResult struct {
	Applicant  Applicant  `json:"applicant"`
	Prediction Prediction `json:"prediction"`
	// Cached reports whether the prediction was served from the prediction cache.
	Cached bool `json:"cached"`
}
