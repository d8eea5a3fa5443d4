package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/tangent/internal/scalar"
)

// ValidScalars lists the scalar types selectable with --scalar.
var ValidScalars = []string{"float64", "float32", "decimal"}

// numeric parses and formats one scalar type.
type numeric[T any] struct {
	name   string
	parse  func(string) (T, error)
	format func(T) string
}

var (
	float64Numeric = numeric[scalar.Float64]{
		name: "float64",
		parse: func(s string) (scalar.Float64, error) {
			v, err := strconv.ParseFloat(s, 64)
			return scalar.Float64(v), err
		},
		format: func(v scalar.Float64) string {
			return strconv.FormatFloat(float64(v), 'g', 12, 64)
		},
	}

	float32Numeric = numeric[scalar.Float32]{
		name: "float32",
		parse: func(s string) (scalar.Float32, error) {
			v, err := strconv.ParseFloat(s, 32)
			return scalar.Float32(v), err
		},
		format: func(v scalar.Float32) string {
			return strconv.FormatFloat(float64(v), 'g', 6, 32)
		},
	}

	decimalNumeric = numeric[scalar.Decimal]{
		name:   "decimal",
		parse:  scalar.ParseDecimal,
		format: scalar.Decimal.String,
	}
)

// parseList parses a comma-separated list such as "0.7,0.3".
func (n numeric[T]) parseList(s string) ([]T, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty %s list", n.name)
	}
	parts := strings.Split(s, ",")
	out := make([]T, len(parts))
	for i, p := range parts {
		v, err := n.parse(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// fromFloats converts float64 literals (as read from a chain file) into T
// through their shortest decimal representation.
func (n numeric[T]) fromFloats(values []float64) ([]T, error) {
	out := make([]T, len(values))
	for i, v := range values {
		t, err := n.parse(strconv.FormatFloat(v, 'g', -1, 64))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = t
	}
	return out, nil
}

func isValidScalar(name string) bool {
	for _, s := range ValidScalars {
		if s == name {
			return true
		}
	}
	return false
}
