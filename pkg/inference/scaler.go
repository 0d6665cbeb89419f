package inference

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scaler standardizes a feature vector per feature: (x - mean) / scale.
type Scaler struct {
	features []string
	mean     []float64
	scale    []float64
}

type scalerFile struct {
	Features []string  `yaml:"features"`
	Mean     []float64 `yaml:"mean"`
	Scale    []float64 `yaml:"scale"`
}

// NewScaler builds a scaler. A zero scale is treated as 1, the way a constant
// feature is left unscaled at fit time.
func NewScaler(features []string, mean, scale []float64) (*Scaler, error) {
	if len(mean) == 0 {
		return nil, errors.New("scaler has no features")
	}
	if len(mean) != len(scale) {
		return nil, fmt.Errorf("scaler has %d means and %d scales", len(mean), len(scale))
	}
	if len(features) > 0 && len(features) != len(mean) {
		return nil, fmt.Errorf("scaler has %d feature names and %d means", len(features), len(mean))
	}

	s := &Scaler{
		features: append([]string(nil), features...),
		mean:     append([]float64(nil), mean...),
		scale:    make([]float64, len(scale)),
	}
	for i, v := range scale {
		if v == 0 {
			v = 1
		}
		s.scale[i] = v
	}

	return s, nil
}

// LoadScaler reads the YAML scaler artifact.
func LoadScaler(path string) (*Scaler, error) {
	data, err := os.ReadFile(path) //nolint: gosec
	if err != nil {
		return nil, fmt.Errorf("could not read scaler: %w", err)
	}

	return ParseScaler(data)
}

// ParseScaler decodes a YAML scaler artifact.
func ParseScaler(data []byte) (*Scaler, error) {
	var f scalerFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("could not parse scaler: %w", err)
	}

	return NewScaler(f.Features, f.Mean, f.Scale)
}

// Features returns the feature names the scaler was fitted with, or nil.
func (s *Scaler) Features() []string {
	return append([]string(nil), s.features...)
}

// Align returns a scaler whose parameters follow the given feature order.
// A scaler fitted without names is assumed to already be in that order.
func (s *Scaler) Align(features []string) (*Scaler, error) {
	if len(s.features) == 0 {
		if len(features) != len(s.mean) {
			return nil, fmt.Errorf("scaler has %d features, model has %d", len(s.mean), len(features))
		}

		return &Scaler{features: append([]string(nil), features...), mean: s.mean, scale: s.scale}, nil
	}

	index := make(map[string]int, len(s.features))
	for i, f := range s.features {
		index[f] = i
	}

	out := &Scaler{
		features: append([]string(nil), features...),
		mean:     make([]float64, len(features)),
		scale:    make([]float64, len(features)),
	}
	for i, f := range features {
		j, ok := index[f]
		if !ok {
			return nil, fmt.Errorf("scaler was not fitted on feature %s", f)
		}
		out.mean[i] = s.mean[j]
		out.scale[i] = s.scale[j]
	}

	return out, nil
}

// Transform returns the scaled copy of x.
func (s *Scaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.mean) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.mean), len(x))
	}

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - s.mean[i]) / s.scale[i]
	}

	return out, nil
}
