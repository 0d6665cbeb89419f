package creditscore_test

import (
	"loanchecker/pkg/creditscore"
	"loanchecker/pkg/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoanPercentIncome(t *testing.T) {
	tests := []struct {
		name   string
		loan   float64
		income float64
		want   float64
	}{
		{name: "form example", loan: 10_000_000, income: 50_000_000, want: 0.2},
		{name: "rounds to two decimals", loan: 1_000, income: 3_000, want: 0.33},
		{name: "rounds half up", loan: 1_250, income: 10_000, want: 0.13},
		{name: "zero income", loan: 10_000, income: 0, want: 0},
		{name: "negative income", loan: 10_000, income: -5, want: 0},
		{name: "ratio above one", loan: 100_000_000, income: 1_000, want: 100_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, creditscore.LoanPercentIncome(tt.loan, tt.income), 1e-9)
		})
	}
}

func TestEstimateScore_WorkedExamples(t *testing.T) {
	tests := []struct {
		name   string
		income float64
		ratio  float64
		dflt   domain.DefaultHistory
		home   domain.HomeOwnership
		want   int
	}{
		{name: "healthy owner", income: 50_000_000, ratio: 0.20, dflt: domain.DefaultNo, home: domain.HomeOwn, want: 770},
		{name: "risky renter", income: 20_000_000, ratio: 0.60, dflt: domain.DefaultYes, home: domain.HomeRent, want: 385},
		{
			name: "mid band gap", income: 200_000_000, ratio: 0.45, dflt: domain.DefaultNo,
			home: domain.HomeMortgage, want: 760,
		},
		{name: "second band", income: 50_000_000, ratio: 0.35, dflt: domain.DefaultNo, home: domain.HomeRent, want: 695},
		{name: "band edge 0.40", income: 50_000_000, ratio: 0.40, dflt: domain.DefaultNo, home: domain.HomeRent, want: 695},
		{name: "band edge 0.50", income: 50_000_000, ratio: 0.50, dflt: domain.DefaultNo, home: domain.HomeRent, want: 680},
		{name: "income bounds are exclusive", income: 150_000_000, ratio: 0.1, dflt: domain.DefaultNo, home: domain.HomeOwn, want: 770},
		{name: "unknown home is treated as rent", income: 30_000_000, ratio: 0.1, dflt: domain.DefaultNo, home: "OTHER", want: 720},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, creditscore.EstimateScore(tt.income, tt.ratio, tt.dflt, tt.home))
		})
	}
}

func TestEstimateScore_AlwaysInRange(t *testing.T) {
	incomes := []float64{-1, 0, 1_000, 29_999_999, 30_000_000, 150_000_001, 1e12}
	ratios := []float64{-1, 0, 0.2, 0.3, 0.45, 0.51, 2.0, 1e9}
	defaults := []domain.DefaultHistory{domain.DefaultYes, domain.DefaultNo, ""}
	homes := []domain.HomeOwnership{domain.HomeOwn, domain.HomeMortgage, domain.HomeRent, "OTHER"}

	for _, income := range incomes {
		for _, ratio := range ratios {
			for _, d := range defaults {
				for _, h := range homes {
					score := creditscore.EstimateScore(income, ratio, d, h)
					require.GreaterOrEqual(t, score, creditscore.MinScore)
					require.LessOrEqual(t, score, creditscore.MaxScore)
				}
			}
		}
	}

	// the rule table alone spans [385, 800]
	require.Equal(t, 385, creditscore.EstimateScore(0, 2.0, domain.DefaultYes, domain.HomeRent))
}

func TestBreakdown_SumsToScore(t *testing.T) {
	adjs := creditscore.Breakdown(200_000_000, 0.45, domain.DefaultNo, domain.HomeMortgage)
	require.Equal(t, []domain.ScoreAdjustment{
		{Rule: creditscore.RuleDefaultHistory, Delta: 50},
		{Rule: creditscore.RuleLoanToIncome, Delta: 0},
		{Rule: creditscore.RuleHomeOwnership, Delta: 30},
		{Rule: creditscore.RuleIncomeLevel, Delta: 30},
	}, adjs)

	sum := creditscore.BaseScore
	for _, a := range adjs {
		sum += a.Delta
	}
	require.Equal(t, 760, sum)
}

func TestDerive_RecomputesDerivedFields(t *testing.T) {
	form := domain.ApplicantForm{
		Age:             30,
		Gender:          domain.GenderMale,
		Education:       domain.EducationBachelor,
		HomeOwnership:   domain.HomeOwn,
		PreviousDefault: domain.DefaultNo,
		Income:          50_000_000,
		LoanAmount:      10_000_000,
		InterestRate:    15,
		LoanIntent:      domain.IntentEducation,
	}

	a := creditscore.Derive(form)
	require.Equal(t, form, a.ApplicantForm)
	require.InDelta(t, 0.2, a.LoanPercentIncome, 1e-9)
	require.Equal(t, 770, a.CreditScore)

	est := creditscore.Estimate(form)
	require.Equal(t, a.CreditScore, est.CreditScore)
	require.InDelta(t, a.LoanPercentIncome, est.LoanPercentIncome, 1e-9)
	require.Len(t, est.Adjustments, 4)
}
