package ui

import (
	"strconv"
	"strings"

	"loanchecker/internal/checker"
	"loanchecker/pkg/creditscore"
	"loanchecker/pkg/domain"
)

// Page is the content of a rendered screen.
type Page struct {
	Screen   Screen
	Slug     string
	Title    string
	Sections []Section
}

// Section is a titled block of a page. Only the set parts are shown.
type Section struct {
	Heading    string
	Paragraphs []string
	Items      []string
	Table      *Table
	Code       string
	Form       *Form
}

type Table struct {
	Columns []string
	Rows    [][]string
}

// Form posts its fields to Action from the page script. Download, when set,
// is a second action submitted natively so the browser saves the response.
type Form struct {
	Action   string
	Download string
	Method   string
	Encoding string
	Submit   string
	Fields   []Field
}

// Form encodings.
const (
	EncodingJSON      = "application/json"
	EncodingMultipart = "multipart/form-data"
)

// Field kinds.
const (
	FieldNumber   = "number"
	FieldRange    = "range"
	FieldSelect   = "select"
	FieldText     = "text"
	FieldTextArea = "textarea"
	FieldFile     = "file"
)

type Field struct {
	Name     string
	Label    string
	Kind     string
	Default  string
	Options  []string
	Min      string
	Max      string
	Step     string
	ReadOnly bool
	Help     string
}

// Render returns the content of a screen. Unknown screens render the overview.
func Render(s Screen) Page {
	var sections []Section
	switch s {
	case UserGuide:
		sections = userGuide()
	case SingleCheck:
		sections = singleCheck(checker.DefaultForm())
	case BatchCheck:
		sections = batchCheck()
	case Feedback:
		sections = feedback()
	case Overview:
		fallthrough
	default:
		s = Overview
		sections = overview()
	}

	return Page{Screen: s, Slug: s.Slug(), Title: s.Title(), Sections: sections}
}

func overview() []Section {
	return []Section{
		{
			Heading: "Smart Loan Approval Checker",
			Paragraphs: []string{
				"Predicts whether a loan application is likely to be approved or rejected, " +
					"based on the applicant's financial and personal data.",
			},
		},
		{
			Heading: "Features",
			Items: []string{
				"Single Check: check one loan application instantly",
				"Batch Check: predict many applicants from a CSV file",
				"User Guide: learn what every input means",
				"Feedback: send us your suggestions",
			},
		},
		{
			Paragraphs: []string{"Built for analysts, finance staff and everyone else."},
		},
	}
}

func userGuide() []Section {
	return []Section{
		{
			Heading:    "Single Check",
			Paragraphs: []string{"Fill in the form with the following information:"},
			Table: &Table{
				Columns: []string{"Field", "Meaning"},
				Rows: [][]string{
					{"Age", "Age of the applicant (18 to 100 years)"},
					{"Gender", "male or female"},
					{"Education", "High School, Bachelor, Master, Associate"},
					{"Home ownership", "RENT, MORTGAGE, OWN"},
					{"Previous default", "Has the applicant defaulted before? Yes/No"},
					{"Annual income", "Total yearly income"},
					{"Loan amount", "Requested loan amount"},
					{"Interest rate (%)", "Yearly loan interest rate"},
					{"Loan to income ratio", "Loan amount divided by income, computed"},
					{"Credit score", "Between 300 and 850, computed"},
					{"Loan intent", "VENTURE, MEDICAL and others"},
				},
			},
		},
		{
			Heading:    "Batch Check",
			Paragraphs: []string{"Upload a CSV file with the following columns:"},
			Code:       strings.Join(domain.ApplicantColumns, ", "),
		},
		{
			Heading:    "Feedback",
			Paragraphs: []string{"Send criticism, suggestions or reviews from the Feedback screen."},
		},
	}
}

func options[T ~string](values ...T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}

	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func singleCheck(form domain.ApplicantForm) []Section {
	estimate := creditscore.Estimate(form)

	fields := []Field{
		{Name: "age", Label: "Age", Kind: FieldRange, Default: strconv.Itoa(form.Age),
			Min: strconv.Itoa(checker.MinAge), Max: strconv.Itoa(checker.MaxAge), Step: "1"},
		{Name: "gender", Label: "Gender", Kind: FieldSelect, Default: string(form.Gender),
			Options: options(domain.GenderMale, domain.GenderFemale)},
		{Name: "education", Label: "Education", Kind: FieldSelect, Default: string(form.Education),
			Options: options(domain.EducationHighSchool, domain.EducationBachelor,
				domain.EducationMaster, domain.EducationAssociate)},
		{Name: "homeOwnership", Label: "Home ownership", Kind: FieldSelect, Default: string(form.HomeOwnership),
			Options: options(domain.HomeRent, domain.HomeMortgage, domain.HomeOwn)},
		{Name: "previousDefault", Label: "Previous default?", Kind: FieldSelect, Default: string(form.PreviousDefault),
			Options: options(domain.DefaultYes, domain.DefaultNo)},
		{Name: "income", Label: "Annual income", Kind: FieldNumber, Default: formatFloat(form.Income),
			Min: strconv.Itoa(checker.MinIncome), Max: strconv.Itoa(checker.MaxIncome), Step: "1000000"},
		{Name: "loanAmount", Label: "Loan amount", Kind: FieldNumber, Default: formatFloat(form.LoanAmount),
			Min: strconv.Itoa(checker.MinLoanAmount), Max: strconv.Itoa(checker.MaxLoanAmount), Step: "1000000"},
		{Name: "interestRate", Label: "Interest rate (%)", Kind: FieldRange, Default: formatFloat(form.InterestRate),
			Min: formatFloat(checker.MinInterestRate), Max: formatFloat(checker.MaxInterestRate), Step: "0.1"},
		{Name: "loanPercentIncome", Label: "Loan to income ratio", Kind: FieldRange,
			Default: formatFloat(estimate.LoanPercentIncome), Min: "0", Max: "1", Step: "0.01", ReadOnly: true},
		{Name: "creditScore", Label: "Credit score (computed)", Kind: FieldRange,
			Default: strconv.Itoa(estimate.CreditScore), Min: "300", Max: "850", Step: "1", ReadOnly: true},
		{Name: "loanIntent", Label: "Loan intent", Kind: FieldSelect, Default: string(form.LoanIntent),
			Options: options(domain.IntentEducation, domain.IntentMedical, domain.IntentVenture,
				domain.IntentPersonal, domain.IntentDebtConsolidation)},
	}

	return []Section{
		{
			Heading: "Applicant form",
			Form: &Form{
				Action:   "/v1/checks",
				Method:   "POST",
				Encoding: EncodingJSON,
				Submit:   "Predict now",
				Fields:   fields,
			},
		},
		{
			Paragraphs: []string{"Example: income 50 million, loan 10 million gives a loan to income ratio of 0.2."},
		},
	}
}

func batchCheck() []Section {
	return []Section{
		{
			Heading:    "Check many applicants at once",
			Paragraphs: []string{"Upload a CSV file with the columns listed in the user guide."},
			Form: &Form{
				Action:   "/v1/checks/batch",
				Download: "/v1/checks/batch?format=csv",
				Method:   "POST",
				Encoding: EncodingMultipart,
				Submit:   "Check",
				Fields: []Field{
					{Name: "file", Label: "CSV file", Kind: FieldFile},
					{Name: "threshold", Label: "Show rows with approval probability above", Kind: FieldRange,
						Default: "0.5", Min: "0", Max: "1", Step: "0.01"},
				},
			},
		},
		{
			Paragraphs: []string{
				"The download holds every uploaded column plus prediction (1 approved, 0 rejected) and approval_prob.",
			},
		},
	}
}

func feedback() []Section {
	return []Section{
		{
			Heading: "Tell us what you think",
			Form: &Form{
				Action:   "/v1/feedback",
				Method:   "POST",
				Encoding: EncodingJSON,
				Submit:   "Send",
				Fields: []Field{
					{Name: "name", Label: "Your name (optional)", Kind: FieldText},
					{Name: "rating", Label: "Rate the application", Kind: FieldRange, Default: "4",
						Min: strconv.Itoa(domain.MinRating), Max: strconv.Itoa(domain.MaxRating), Step: "1"},
					{Name: "comments", Label: "Suggestions, criticism or impressions", Kind: FieldTextArea},
				},
			},
		},
	}
}
