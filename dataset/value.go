package dataset

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

// ============================================================================
// VALUE — Scalar cell (number or string)
// ============================================================================

// Kind tells whether a Value holds a number or a string.
type Kind int

const (
	KindString Kind = iota
	KindNumber
)

func (k Kind) String() string {
	if k == KindNumber {
		return "number"
	}
	return "string"
}

// Value is a single scalar cell of a Record.
// The zero Value is the empty string. A number parsed from text keeps that
// text in str when it differs from the canonical formatting.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Number wraps a numeric scalar.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// NumberText wraps a number parsed from text. String returns text unchanged,
// so "007", "1e3" and "45.0" keep their source spelling.
func NumberText(f float64, text string) Value {
	v := Number(f)
	if text != strconv.FormatFloat(f, 'f', -1, 64) {
		v.str = text
	}
	return v
}

// String wraps a string scalar.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Kind reports whether v is a number or a string.
func (v Value) Kind() Kind { return v.kind }

// IsNumber is shorthand for v.Kind() == KindNumber.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// Float returns the numeric value and true, or 0 and false for strings.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// String formats the value verbatim: strings unchanged, numbers as their
// source text when they have one, otherwise in the shortest form that
// round-trips ("45", "45.5", "0.125").
func (v Value) String() string {
	if v.kind == KindNumber && v.str == "" {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

// Interface returns the value as float64 or string, for encoders.
func (v Value) Interface() interface{} {
	if v.kind == KindNumber {
		return v.num
	}
	return v.str
}

// ValueOf converts a decoded JSON/YAML scalar into a Value.
func ValueOf(x interface{}) (Value, error) {
	switch t := x.(type) {
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	default:
		return Value{}, fmt.Errorf("unsupported scalar type %T", x)
	}
}

// MarshalJSON encodes numbers as JSON numbers and strings as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON accepts a JSON number or string. Numbers keep their source
// text.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	if f, ok := parsed.Float(); ok {
		parsed = NumberText(f, string(bytes.TrimSpace(data)))
	}
	*v = parsed
	return nil
}

// MarshalYAML encodes the underlying scalar.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.Interface(), nil
}

// UnmarshalYAML accepts !!int, !!float and !!str scalars.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	switch node.Tag {
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("line %d: %q is not a finite number", node.Line, node.Value)
		}
		*v = NumberText(f, node.Value)
	default:
		*v = String(node.Value)
	}
	return nil
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary
