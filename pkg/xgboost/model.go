// Package xgboost evaluates gradient boosted tree classifiers stored in the
// XGBoost JSON model format. Only tree boosters with a binary logistic
// objective are supported; training is out of scope.
package xgboost

import (
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Supported objectives.
const (
	ObjectiveLogistic = "binary:logistic"
	ObjectiveLogitRaw = "binary:logitraw"

	boosterTree = "gbtree"
)

// DecisionThreshold is the probability above which the positive class is predicted.
const DecisionThreshold = 0.5

// ErrFeatureCount is returned when a feature vector does not match the model input size.
var ErrFeatureCount = errors.New("feature count mismatch")

// Model is an immutable, decoded boosted tree ensemble.
type Model struct {
	// FeatureNames is the ordered feature list the model was fitted with.
	// It is empty when the model was trained without named features.
	FeatureNames []string
	// NumFeature is the number of input features.
	NumFeature int
	// BaseScore is the global bias in probability space.
	BaseScore float64
	// Objective is the learning objective name, e.g. binary:logistic.
	Objective string
	// Version is the XGBoost version that wrote the model, e.g. "2.0.3".
	Version string

	trees      []tree
	treeLimit  int
	baseMargin float64
	checksum   uint64
}

// Load reads and decodes a JSON model file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path) //nolint: gosec
	if err != nil {
		return nil, errors.Wrap(err, "read model file")
	}

	m, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}

	return m, nil
}

// Decode parses a JSON model document.
func Decode(data []byte) (*Model, error) {
	m := &Model{checksum: xxhash.Sum64(data)}
	bestIteration := -1

	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "learner":
			return m.decodeLearner(d, &bestIteration)
		case "version":
			v, err := decodeVersion(d)
			if err != nil {
				return errors.Wrap(err, "version")
			}
			m.Version = v

			return nil
		default:
			return d.Skip()
		}
	}); err != nil {
		return nil, errors.Wrap(err, "decode")
	}

	if err := m.validate(); err != nil {
		return nil, err
	}

	m.treeLimit = len(m.trees)
	if bestIteration >= 0 && bestIteration+1 < m.treeLimit {
		m.treeLimit = bestIteration + 1
	}

	switch m.Objective {
	case ObjectiveLogistic:
		m.baseMargin = logit(m.BaseScore)
	case ObjectiveLogitRaw:
		m.baseMargin = m.BaseScore
	}

	return m, nil
}

func (m *Model) decodeLearner(d *jx.Decoder, bestIteration *int) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "attributes":
			return d.Obj(func(d *jx.Decoder, key string) error {
				if key != "best_iteration" {
					return d.Skip()
				}
				s, err := d.Str()
				if err != nil {
					return errors.Wrap(err, "best_iteration")
				}
				n, err := strconv.Atoi(s)
				if err != nil {
					return errors.Wrap(err, "best_iteration")
				}
				*bestIteration = n

				return nil
			})
		case "feature_names":
			names, err := decodeStrings(d)
			if err != nil {
				return errors.Wrap(err, "feature_names")
			}
			m.FeatureNames = names

			return nil
		case "gradient_booster":
			return m.decodeBooster(d)
		case "learner_model_param":
			return m.decodeModelParam(d)
		case "objective":
			return d.Obj(func(d *jx.Decoder, key string) error {
				if key != "name" {
					return d.Skip()
				}
				name, err := d.Str()
				if err != nil {
					return errors.Wrap(err, "objective name")
				}
				m.Objective = name

				return nil
			})
		default:
			return d.Skip()
		}
	})
}

func (m *Model) decodeModelParam(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "base_score":
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "base_score")
			}
			// newer writers store a vector, e.g. "[5E-1]"
			v, err := strconv.ParseFloat(strings.Trim(s, "[]"), 64)
			if err != nil {
				return errors.Wrap(err, "base_score")
			}
			m.BaseScore = v

			return nil
		case "num_feature":
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "num_feature")
			}
			n, err := strconv.Atoi(s)
			if err != nil {
				return errors.Wrap(err, "num_feature")
			}
			m.NumFeature = n

			return nil
		case "num_class":
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "num_class")
			}
			if n, err := strconv.Atoi(s); err != nil || n > 2 {
				return errors.Errorf("unsupported num_class %q", s)
			}

			return nil
		default:
			return d.Skip()
		}
	})
}

func (m *Model) decodeBooster(d *jx.Decoder) error {
	var name string
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "name":
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "booster name")
			}
			name = s

			return nil
		case "model":
			return d.Obj(func(d *jx.Decoder, key string) error {
				if key != "trees" {
					return d.Skip()
				}

				return d.Arr(func(d *jx.Decoder) error {
					t, err := decodeTree(d)
					if err != nil {
						return errors.Wrapf(err, "tree %d", len(m.trees))
					}
					m.trees = append(m.trees, t)

					return nil
				})
			})
		default:
			return d.Skip()
		}
	}); err != nil {
		return err
	}

	if name != boosterTree {
		return errors.Errorf("unsupported booster %q", name)
	}

	return nil
}

func decodeVersion(d *jx.Decoder) (string, error) {
	var parts []string
	if err := d.Arr(func(d *jx.Decoder) error {
		n, err := d.Int()
		if err != nil {
			return err
		}
		parts = append(parts, strconv.Itoa(n))

		return nil
	}); err != nil {
		return "", err
	}

	return strings.Join(parts, "."), nil
}

func decodeStrings(d *jx.Decoder) ([]string, error) {
	out := []string{}
	err := d.Arr(func(d *jx.Decoder) error {
		s, err := d.Str()
		if err != nil {
			return err
		}
		out = append(out, s)

		return nil
	})

	return out, err
}

func (m *Model) validate() error {
	switch m.Objective {
	case ObjectiveLogistic, ObjectiveLogitRaw:
	default:
		return errors.Errorf("unsupported objective %q", m.Objective)
	}
	if len(m.trees) == 0 {
		return errors.New("model has no trees")
	}
	if len(m.FeatureNames) > 0 {
		if m.NumFeature == 0 {
			m.NumFeature = len(m.FeatureNames)
		}
		if len(m.FeatureNames) != m.NumFeature {
			return errors.Errorf("%d feature names for %d features", len(m.FeatureNames), m.NumFeature)
		}
	}
	if m.Objective == ObjectiveLogistic && (m.BaseScore <= 0 || m.BaseScore >= 1) {
		return errors.Errorf("base_score %v outside (0, 1)", m.BaseScore)
	}
	for i := range m.trees {
		if err := m.trees[i].validate(m.NumFeature); err != nil {
			return errors.Wrapf(err, "tree %d", i)
		}
	}

	return nil
}

// Trees returns the number of trees used for prediction.
func (m *Model) Trees() int {
	return m.treeLimit
}

// Checksum identifies the exact model document the model was decoded from.
func (m *Model) Checksum() uint64 {
	return m.checksum
}

// Margin returns the raw, untransformed ensemble output for a feature vector.
// NaN entries are treated as missing values.
func (m *Model) Margin(features []float64) (float64, error) {
	if m.NumFeature > 0 && len(features) != m.NumFeature {
		return 0, errors.Wrapf(ErrFeatureCount, "got %d, want %d", len(features), m.NumFeature)
	}

	sum := m.baseMargin
	for i := range m.trees[:m.treeLimit] {
		sum += m.trees[i].leaf(features)
	}

	return sum, nil
}

// PredictProba returns the probability of the positive class.
func (m *Model) PredictProba(features []float64) (float64, error) {
	margin, err := m.Margin(features)
	if err != nil {
		return 0, err
	}

	return sigmoid(margin), nil
}

// Predict returns the predicted class (0 or 1) and the probability of class 1.
func (m *Model) Predict(features []float64) (int, float64, error) {
	p, err := m.PredictProba(features)
	if err != nil {
		return 0, 0, err
	}
	if p > DecisionThreshold {
		return 1, p, nil
	}

	return 0, p, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func logit(p float64) float64 {
	return math.Log(p / (1 - p))
}
