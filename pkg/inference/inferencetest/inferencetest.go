// Package inferencetest provides a small fitted artifact set for tests.
//
// The classifier has two trees: one approves applicants without a default
// history (+1.5) and rejects the others (-2.0), the other adds +0.5 above a
// credit score of 650 and -0.5 below it. The scaler is stored in reverse
// feature order to exercise alignment.
package inferencetest

import (
	"embed"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"loanchecker/pkg/domain"
	"loanchecker/pkg/inference"
	"loanchecker/pkg/xgboost"
)

//go:embed testdata
var files embed.FS

// Expected probabilities of the fixture applicants.
const (
	// ApprovedProbability is sigmoid(1.5 + 0.5).
	ApprovedProbability = 0.8807970779778823
	// RejectedProbability is sigmoid(-2.0 - 0.5).
	RejectedProbability = 0.07585818002124355
)

func read(t testing.TB, name string) []byte {
	t.Helper()

	data, err := files.ReadFile("testdata/" + name)
	require.NoError(t, err)

	return data
}

// Artifacts returns the decoded fixture artifacts.
func Artifacts(t testing.TB) *inference.Artifacts {
	t.Helper()

	model, err := xgboost.Decode(read(t, inference.ModelFile))
	require.NoError(t, err)
	encoders, err := inference.ParseEncoders(read(t, inference.EncodersFile))
	require.NoError(t, err)
	scaler, err := inference.ParseScaler(read(t, inference.ScalerFile))
	require.NoError(t, err)

	artifacts, err := inference.NewArtifacts(model, encoders, scaler)
	require.NoError(t, err)

	return artifacts
}

// Pipeline returns a pipeline over the fixture artifacts.
func Pipeline(t testing.TB) *inference.Pipeline {
	t.Helper()

	p, err := inference.New(Artifacts(t), inference.Options{})
	require.NoError(t, err)

	return p
}

// Dir writes the fixture artifacts to a temporary directory and returns it.
func Dir(t testing.TB) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{inference.ModelFile, inference.EncodersFile, inference.ScalerFile} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), read(t, name), 0o600))
	}

	return dir
}

// ApprovedForm is a healthy owner: ratio 0.2, credit score 770.
func ApprovedForm() domain.ApplicantForm {
	return domain.ApplicantForm{
		Age:             30,
		Gender:          domain.GenderFemale,
		Education:       domain.EducationBachelor,
		HomeOwnership:   domain.HomeOwn,
		PreviousDefault: domain.DefaultNo,
		Income:          50_000_000,
		LoanAmount:      10_000_000,
		InterestRate:    15,
		LoanIntent:      domain.IntentEducation,
	}
}

// RejectedForm is a risky renter: ratio 0.6, credit score 385.
func RejectedForm() domain.ApplicantForm {
	return domain.ApplicantForm{
		Age:             24,
		Gender:          domain.GenderMale,
		Education:       domain.EducationHighSchool,
		HomeOwnership:   domain.HomeRent,
		PreviousDefault: domain.DefaultYes,
		Income:          20_000_000,
		LoanAmount:      12_000_000,
		InterestRate:    21.5,
		LoanIntent:      domain.IntentVenture,
	}
}
