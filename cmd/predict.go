package main

import (
	"fmt"
	"io"
	"os"

	"loanchecker/internal/checker"
	"loanchecker/internal/config"
	"loanchecker/pkg/logger"
	"loanchecker/pkg/storage/memory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// predictCommand checks a CSV file offline and writes the predictions as CSV.
func predictCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predicts approvals for every row of a CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			inputPath, _ := cmd.Flags().GetString("input")
			outputPath, _ := cmd.Flags().GetString("output")

			predictor, closePredictor := getPredictor(ctx, cfg)
			defer closePredictor()

			input, err := os.Open(inputPath)
			if err != nil {
				return fmt.Errorf("could not open input: %w", err)
			}
			defer input.Close()

			res, err := checker.New(predictor, memory.New(), nil, checker.Options{}).CheckBatch(ctx, input)
			if err != nil {
				return fmt.Errorf("could not check %s: %w", inputPath, err)
			}
			for _, failure := range res.Failures {
				logger.Warn(ctx, "row skipped", zap.Int("row", failure.Row), zap.String("reason", failure.Reason))
			}

			var threshold float64
			filtered := cmd.Flags().Changed("threshold")
			if filtered {
				threshold, _ = cmd.Flags().GetFloat64("threshold")
				if threshold < 0 || threshold > 1 {
					return fmt.Errorf("threshold %v outside [0, 1]", threshold)
				}
			}

			err = writeOutput(outputPath, cmd.OutOrStdout(), func(w io.Writer) error {
				if filtered {
					return res.WriteFilteredCSV(w, threshold)
				}

				return res.WriteCSV(w)
			})
			if err != nil {
				return err
			}

			logger.Info(ctx, "predictions written",
				zap.Int("rows", len(res.Rows)),
				zap.Int("failures", len(res.Failures)),
				zap.String("output", outputPath))

			return nil
		},
	}

	cmd.Flags().StringP("input", "i", "", "CSV file with applicant rows")
	cmd.Flags().StringP("output", "o", checker.BatchFileName, "Output CSV file, - for stdout")
	cmd.Flags().Float64("threshold", 0, "Only write rows whose approval probability is above threshold")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// writeOutput runs write against path, or against stdout when path is "-".
// The file is closed before returning so a failed flush is reported.
func writeOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "-" {
		if err := write(stdout); err != nil {
			return fmt.Errorf("could not write predictions: %w", err)
		}

		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create output: %w", err)
	}

	if err := write(file); err != nil {
		_ = file.Close()

		return fmt.Errorf("could not write predictions: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("could not close output: %w", err)
	}

	return nil
}
