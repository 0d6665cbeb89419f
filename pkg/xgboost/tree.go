package xgboost

import (
	"math"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// tree is a single regression tree in array form. Node 0 is the root; a node
// is a leaf when its left child is -1, in which case its split condition holds
// the leaf value. Split conditions are float32 and features are compared at
// float32 precision, so values on a cut go right as they do in XGBoost.
type tree struct {
	left        []int32
	right       []int32
	splitIndex  []int32
	splitCond   []float32
	defaultLeft []bool
}

func decodeTree(d *jx.Decoder) (tree, error) {
	var t tree
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "left_children":
			t.left, err = decodeInt32s(d)
		case "right_children":
			t.right, err = decodeInt32s(d)
		case "split_indices":
			t.splitIndex, err = decodeInt32s(d)
		case "split_conditions":
			t.splitCond, err = decodeFloats(d)
		case "default_left":
			t.defaultLeft, err = decodeFlags(d)
		default:
			return d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, key)
		}

		return nil
	})

	return t, err
}

func decodeInt32s(d *jx.Decoder) ([]int32, error) {
	var out []int32
	err := d.Arr(func(d *jx.Decoder) error {
		v, err := d.Int32()
		if err != nil {
			return err
		}
		out = append(out, v)

		return nil
	})

	return out, err
}

func decodeFloats(d *jx.Decoder) ([]float32, error) {
	var out []float32
	err := d.Arr(func(d *jx.Decoder) error {
		v, err := d.Float32()
		if err != nil {
			return err
		}
		out = append(out, v)

		return nil
	})

	return out, err
}

// decodeFlags accepts both 0/1 numbers and JSON booleans.
func decodeFlags(d *jx.Decoder) ([]bool, error) {
	var out []bool
	err := d.Arr(func(d *jx.Decoder) error {
		if d.Next() == jx.Bool {
			v, err := d.Bool()
			if err != nil {
				return err
			}
			out = append(out, v)

			return nil
		}
		v, err := d.Int()
		if err != nil {
			return err
		}
		out = append(out, v != 0)

		return nil
	})

	return out, err
}

func (t *tree) validate(numFeature int) error {
	n := len(t.left)
	if n == 0 {
		return errors.New("empty tree")
	}
	if len(t.right) != n || len(t.splitIndex) != n || len(t.splitCond) != n || len(t.defaultLeft) != n {
		return errors.New("node arrays differ in length")
	}
	for i := range n {
		if t.left[i] == -1 {
			continue
		}
		// children always come after their parent, which also rules out cycles
		if int(t.left[i]) <= i || int(t.left[i]) >= n || int(t.right[i]) <= i || int(t.right[i]) >= n {
			return errors.Errorf("node %d has invalid children", i)
		}
		if t.splitIndex[i] < 0 || (numFeature > 0 && int(t.splitIndex[i]) >= numFeature) {
			return errors.Errorf("node %d splits on unknown feature %d", i, t.splitIndex[i])
		}
	}

	return nil
}

func (t *tree) leaf(features []float64) float64 {
	i := int32(0)
	for t.left[i] != -1 {
		idx := t.splitIndex[i]
		var v float64
		if int(idx) < len(features) {
			v = features[idx]
		} else {
			v = math.NaN()
		}

		switch {
		case math.IsNaN(v):
			if t.defaultLeft[i] {
				i = t.left[i]
			} else {
				i = t.right[i]
			}
		case float32(v) < t.splitCond[i]:
			i = t.left[i]
		default:
			i = t.right[i]
		}
	}

	return float64(t.splitCond[i])
}
