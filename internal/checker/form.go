package checker

import (
	"strings"

	"loanchecker/pkg/domain"
	"loanchecker/pkg/serrors"
)

// Accepted ranges of the check form.
const (
	MinAge          = 18
	MaxAge          = 100
	MinIncome       = 1_000
	MaxIncome       = 1_000_000_000
	MinLoanAmount   = 1_000
	MaxLoanAmount   = 100_000_000
	MinInterestRate = 5.0
	MaxInterestRate = 30.0
)

// DefaultForm is the form as first shown to a user.
func DefaultForm() domain.ApplicantForm {
	return domain.ApplicantForm{
		Age:             30,
		Gender:          domain.GenderMale,
		Education:       domain.EducationHighSchool,
		HomeOwnership:   domain.HomeRent,
		PreviousDefault: domain.DefaultYes,
		Income:          50_000_000,
		LoanAmount:      10_000_000,
		InterestRate:    15.0,
		LoanIntent:      domain.IntentEducation,
	}
}

// ValidateForm checks that every field is present and within range.
// Categorical values are not checked against a vocabulary here; the fitted
// encoders decide what they accept.
func ValidateForm(form domain.ApplicantForm) error {
	var problems []string

	if form.Age < MinAge || form.Age > MaxAge {
		problems = append(problems, "age must be between 18 and 100")
	}
	if form.Income < MinIncome || form.Income > MaxIncome {
		problems = append(problems, "income must be between 1000 and 1000000000")
	}
	if form.LoanAmount < MinLoanAmount || form.LoanAmount > MaxLoanAmount {
		problems = append(problems, "loanAmount must be between 1000 and 100000000")
	}
	if form.InterestRate < MinInterestRate || form.InterestRate > MaxInterestRate {
		problems = append(problems, "interestRate must be between 5 and 30")
	}

	required := []struct {
		name  string
		value string
	}{
		{"gender", string(form.Gender)},
		{"education", string(form.Education)},
		{"homeOwnership", string(form.HomeOwnership)},
		{"previousDefault", string(form.PreviousDefault)},
		{"loanIntent", string(form.LoanIntent)},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			problems = append(problems, r.name+" is required")
		}
	}

	if len(problems) > 0 {
		return serrors.With(serrors.ErrBadRequest, "invalid form: %s", strings.Join(problems, "; "))
	}

	return nil
}
