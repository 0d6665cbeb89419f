// Package creditscore derives the synthetic credit score and the loan-to-income
// ratio of an applicant. The score is a fixed additive rule table evaluated from
// a base value and clamped to [MinScore, MaxScore]; it is not a bureau score.
package creditscore

import (
	"loanchecker/pkg/domain"
	"math"
)

const (
	// BaseScore is the starting point every adjustment is applied to.
	BaseScore = 650
	// MinScore is the lowest score an applicant can get.
	MinScore = 300
	// MaxScore is the highest score an applicant can get.
	MaxScore = 850

	// HighIncome is the income above which the income bonus applies.
	HighIncome = 150_000_000
	// LowIncome is the income below which the income penalty applies.
	LowIncome = 30_000_000
)

// Rule names reported by Breakdown.
const (
	RuleDefaultHistory = "default_history"
	RuleLoanToIncome   = "loan_to_income"
	RuleHomeOwnership  = "home_ownership"
	RuleIncomeLevel    = "income_level"
)

// round2 rounds a float64 to two decimals.
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// LoanPercentIncome returns loanAmount/income rounded to two decimals.
// A non-positive income yields 0.
func LoanPercentIncome(loanAmount, income float64) float64 {
	if income <= 0 {
		return 0
	}

	return round2(loanAmount / income)
}

func defaultHistoryDelta(previousDefault domain.DefaultHistory) int {
	if previousDefault == domain.DefaultYes {
		return -150
	}

	return 50
}

// loanToIncomeDelta evaluates the ratio bands in priority order. Ratios in
// (0.40, 0.50] match no band and get no adjustment.
func loanToIncomeDelta(ratio float64) int {
	switch {
	case ratio <= 0.20:
		return 40
	case ratio <= 0.40:
		return 15
	case ratio > 0.50:
		return -70
	default:
		return 0
	}
}

func homeOwnershipDelta(home domain.HomeOwnership) int {
	if home == domain.HomeOwn || home == domain.HomeMortgage {
		return 30
	}

	return -20
}

func incomeLevelDelta(income float64) int {
	switch {
	case income > HighIncome:
		return 30
	case income < LowIncome:
		return -25
	default:
		return 0
	}
}

// Breakdown returns every rule contribution, in evaluation order, including
// the ones contributing zero.
func Breakdown(income, loanPercentIncome float64,
	previousDefault domain.DefaultHistory,
	home domain.HomeOwnership) []domain.ScoreAdjustment {
	return []domain.ScoreAdjustment{
		{Rule: RuleDefaultHistory, Delta: defaultHistoryDelta(previousDefault)},
		{Rule: RuleLoanToIncome, Delta: loanToIncomeDelta(loanPercentIncome)},
		{Rule: RuleHomeOwnership, Delta: homeOwnershipDelta(home)},
		{Rule: RuleIncomeLevel, Delta: incomeLevelDelta(income)},
	}
}

// EstimateScore returns the clamped sum of BaseScore and all rule adjustments.
func EstimateScore(income, loanPercentIncome float64,
	previousDefault domain.DefaultHistory,
	home domain.HomeOwnership) int {
	score := BaseScore
	for _, adj := range Breakdown(income, loanPercentIncome, previousDefault, home) {
		score += adj.Delta
	}

	return min(max(score, MinScore), MaxScore)
}

// Derive builds the complete Applicant for a form, always recomputing the
// ratio and the credit score.
func Derive(form domain.ApplicantForm) domain.Applicant {
	ratio := LoanPercentIncome(form.LoanAmount, form.Income)

	return domain.Applicant{
		ApplicantForm:     form,
		LoanPercentIncome: ratio,
		CreditScore:       EstimateScore(form.Income, ratio, form.PreviousDefault, form.HomeOwnership),
	}
}

// Estimate returns the derived ratio, score and the per-rule breakdown for a form.
func Estimate(form domain.ApplicantForm) domain.ScoreEstimate {
	a := Derive(form)

	return domain.ScoreEstimate{
		LoanPercentIncome: a.LoanPercentIncome,
		CreditScore:       a.CreditScore,
		Adjustments:       Breakdown(a.Income, a.LoanPercentIncome, a.PreviousDefault, a.HomeOwnership),
	}
}
