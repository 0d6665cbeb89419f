package inference

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"loanchecker/pkg/xgboost"
)

// Default artifact file names inside an artifacts directory.
const (
	ModelFile    = "xgboost_model.json"
	EncodersFile = "encoders.yaml"
	ScalerFile   = "scaler.yaml"
)

// Artifacts bundles the fitted encoders, scaler and classifier. It is loaded
// once at startup and shared read-only.
type Artifacts struct {
	Encoders *Encoders
	Scaler   *Scaler
	Model    *xgboost.Model

	// Features is the model's input order.
	Features []string
	// Version identifies this exact artifact set. It changes whenever any of
	// the artifacts change.
	Version string
}

// ArtifactPaths locates the artifact files.
type ArtifactPaths struct {
	Model    string
	Encoders string
	Scaler   string
}

// DirPaths returns the default artifact paths inside dir.
func DirPaths(dir string) ArtifactPaths {
	return ArtifactPaths{
		Model:    filepath.Join(dir, ModelFile),
		Encoders: filepath.Join(dir, EncodersFile),
		Scaler:   filepath.Join(dir, ScalerFile),
	}
}

// LoadArtifacts reads and cross-checks the three artifacts.
func LoadArtifacts(paths ArtifactPaths) (*Artifacts, error) {
	model, err := xgboost.Load(paths.Model)
	if err != nil {
		return nil, fmt.Errorf("could not load model: %w", err)
	}

	encoders, err := LoadEncoders(paths.Encoders)
	if err != nil {
		return nil, fmt.Errorf("could not load encoders: %w", err)
	}

	scaler, err := LoadScaler(paths.Scaler)
	if err != nil {
		return nil, fmt.Errorf("could not load scaler: %w", err)
	}

	return NewArtifacts(model, encoders, scaler)
}

// NewArtifacts cross-checks already loaded artifacts. The model must carry
// feature names, otherwise the scaler's feature list is used as input order.
func NewArtifacts(model *xgboost.Model, encoders *Encoders, scaler *Scaler) (*Artifacts, error) {
	features := model.FeatureNames
	if len(features) == 0 {
		features = scaler.Features()
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("neither model nor scaler carry feature names")
	}
	if len(features) != model.NumFeature {
		return nil, fmt.Errorf("model expects %d features, %d names known", model.NumFeature, len(features))
	}

	aligned, err := scaler.Align(features)
	if err != nil {
		return nil, fmt.Errorf("could not align scaler: %w", err)
	}

	known := make(map[string]bool, len(features))
	for _, f := range features {
		known[f] = true
	}
	for _, col := range encoders.Columns() {
		if !known[col] {
			return nil, fmt.Errorf("encoder column %s is not a model feature", col)
		}
	}

	return &Artifacts{
		Encoders: encoders,
		Scaler:   aligned,
		Model:    model,
		Features: append([]string(nil), features...),
		Version:  artifactVersion(model, encoders, aligned),
	}, nil
}

func artifactVersion(model *xgboost.Model, encoders *Encoders, scaler *Scaler) string {
	h := xxhash.New()
	_, _ = h.WriteString(strconv.FormatUint(model.Checksum(), 16))
	for _, col := range encoders.Columns() {
		_, _ = h.WriteString(col)
		for _, c := range encoders.Column(col).Classes() {
			_, _ = h.WriteString("\x00" + c)
		}
	}
	for i := range scaler.mean {
		_, _ = h.WriteString(strconv.FormatFloat(scaler.mean[i], 'g', -1, 64))
		_, _ = h.WriteString(strconv.FormatFloat(scaler.scale[i], 'g', -1, 64))
	}

	return strconv.FormatUint(h.Sum64(), 16)
}
