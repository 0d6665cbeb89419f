package main

import (
	"fmt"
	"text/tabwriter"

	"loanchecker/pkg/creditscore"
	"loanchecker/pkg/domain"

	"github.com/spf13/cobra"
)

// scoreCommand prints the credit score estimate and its rule breakdown.
func scoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Estimates the credit score for the given applicant figures",
		RunE: func(cmd *cobra.Command, _ []string) error {
			income, _ := cmd.Flags().GetFloat64("income")
			loan, _ := cmd.Flags().GetFloat64("loan")
			previousDefault, _ := cmd.Flags().GetString("default")
			home, _ := cmd.Flags().GetString("home")

			if previousDefault != string(domain.DefaultYes) && previousDefault != string(domain.DefaultNo) {
				return fmt.Errorf("default must be Yes or No, got %q", previousDefault)
			}

			estimate := creditscore.Estimate(domain.ApplicantForm{
				Income:          income,
				LoanAmount:      loan,
				PreviousDefault: domain.DefaultHistory(previousDefault),
				HomeOwnership:   domain.HomeOwnership(home),
			})

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintf(w, "base\t%d\n", creditscore.BaseScore)
			for _, adj := range estimate.Adjustments {
				_, _ = fmt.Fprintf(w, "%s\t%+d\n", adj.Rule, adj.Delta)
			}
			_, _ = fmt.Fprintf(w, "loan_percent_income\t%.2f\n", estimate.LoanPercentIncome)
			_, _ = fmt.Fprintf(w, "credit_score\t%d\n", estimate.CreditScore)

			return w.Flush()
		},
	}

	cmd.Flags().Float64("income", 50_000_000, "Annual income")
	cmd.Flags().Float64("loan", 10_000_000, "Requested loan amount")
	cmd.Flags().String("default", string(domain.DefaultYes), "Previous loan default on file, Yes or No")
	cmd.Flags().String("home", string(domain.HomeRent), "Home ownership, RENT, MORTGAGE or OWN")

	return cmd
}
