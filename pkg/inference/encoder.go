package inference

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrUnknownCategory is returned when a categorical value is not part of the
// vocabulary an encoder was fitted with.
var ErrUnknownCategory = errors.New("unknown category")

// UnknownCategoryError reports the column and value that could not be encoded.
type UnknownCategoryError struct {
	Column string
	Value  string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %q for column %s", e.Value, e.Column)
}

// Unwrap makes errors.Is(err, ErrUnknownCategory) hold.
func (e *UnknownCategoryError) Unwrap() error { return ErrUnknownCategory }

// LabelEncoder maps the classes of one categorical column to integer codes.
// The code of a class is its position in the fitted class list.
type LabelEncoder struct {
	classes []string
	codes   map[string]int
}

// NewLabelEncoder builds an encoder from the fitted class list.
func NewLabelEncoder(classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, errors.New("encoder has no classes")
	}

	codes := make(map[string]int, len(classes))
	for i, c := range classes {
		if _, ok := codes[c]; ok {
			return nil, fmt.Errorf("duplicate class %q", c)
		}
		codes[c] = i
	}

	return &LabelEncoder{classes: append([]string(nil), classes...), codes: codes}, nil
}

// Classes returns a copy of the fitted class list.
func (e *LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

// Encode returns the code of value and whether the value is known.
func (e *LabelEncoder) Encode(value string) (int, bool) {
	code, ok := e.codes[value]

	return code, ok
}

// Encoders is the fitted encoder set, keyed by column name.
type Encoders struct {
	columns map[string]*LabelEncoder
}

// encodersFile is the on-disk layout of the encoder artifact.
type encodersFile struct {
	Columns map[string][]string `yaml:"columns"`
}

// NewEncoders builds an encoder set from column -> classes.
func NewEncoders(columns map[string][]string) (*Encoders, error) {
	out := &Encoders{columns: make(map[string]*LabelEncoder, len(columns))}
	for col, classes := range columns {
		enc, err := NewLabelEncoder(classes)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
		out.columns[col] = enc
	}

	return out, nil
}

// LoadEncoders reads the YAML encoder artifact.
func LoadEncoders(path string) (*Encoders, error) {
	data, err := os.ReadFile(path) //nolint: gosec
	if err != nil {
		return nil, fmt.Errorf("could not read encoders: %w", err)
	}

	return ParseEncoders(data)
}

// ParseEncoders decodes a YAML encoder artifact.
func ParseEncoders(data []byte) (*Encoders, error) {
	var f encodersFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("could not parse encoders: %w", err)
	}
	if len(f.Columns) == 0 {
		return nil, errors.New("encoders have no columns")
	}

	return NewEncoders(f.Columns)
}

// Columns returns the encoded column names in sorted order.
func (e *Encoders) Columns() []string {
	out := make([]string, 0, len(e.columns))
	for c := range e.columns {
		out = append(out, c)
	}
	sort.Strings(out)

	return out
}

// Column returns the encoder of a column, or nil.
func (e *Encoders) Column(name string) *LabelEncoder {
	return e.columns[name]
}

// Encode encodes every column of row that has an encoder. Columns of row
// without an encoder and encoders without a value in row are skipped.
func (e *Encoders) Encode(row map[string]string) (map[string]float64, error) {
	out := make(map[string]float64, len(row))
	for _, col := range e.Columns() {
		v, ok := row[col]
		if !ok {
			continue
		}
		code, ok := e.columns[col].Encode(v)
		if !ok {
			return nil, &UnknownCategoryError{Column: col, Value: v}
		}
		out[col] = float64(code)
	}

	return out, nil
}
