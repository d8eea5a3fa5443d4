// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package scalar defines the numeric contracts that dual numbers and
// reverse-mode rules are generic over, plus the concrete scalar types
// shipped with tangent.
//
// A scalar type T satisfies the contracts through methods on T itself, so
// user types plug in without registration. Field covers arithmetic, Analytic
// adds the elementary functions and Ordered adds comparison.
//
// # Concrete types
//
//   - Float64, Float32: machine floats
//   - Decimal: arbitrary-precision decimals backed by cockroachdb/apd
//
// Symbolic expressions live in package symbolic and satisfy Analytic.
package scalar

import (
	"github.com/born-ml/tangent/internal/scalar"
)

// Field is the arithmetic contract.
type Field[T any] = scalar.Field[T]

// Analytic is a Field with elementary functions.
type Analytic[T any] = scalar.Analytic[T]

// Ordered is an Analytic type with a total order.
type Ordered[T any] = scalar.Ordered[T]

// Float64 is a float64 scalar.
type Float64 = scalar.Float64

// Float32 is a float32 scalar.
type Float32 = scalar.Float32

// Decimal is an arbitrary-precision decimal scalar.
type Decimal = scalar.Decimal

// DefaultDecimalPrecision is the initial Decimal precision in significant digits.
const DefaultDecimalPrecision = scalar.DefaultDecimalPrecision

// Zero returns the additive identity of T.
func Zero[T Field[T]]() T { return scalar.Zero[T]() }

// One returns the multiplicative identity of T.
func One[T Field[T]]() T { return scalar.One[T]() }

// FromFloat converts a float64 literal into T.
func FromFloat[T Field[T]](v float64) T { return scalar.FromFloat[T](v) }

// NewDecimal returns the Decimal closest to the shortest representation of f.
func NewDecimal(f float64) Decimal { return scalar.NewDecimal(f) }

// ParseDecimal parses a decimal literal such as "0.1" or "-3e-5".
func ParseDecimal(s string) (Decimal, error) { return scalar.ParseDecimal(s) }

// SetDecimalPrecision sets the significant digits used by Decimal arithmetic.
func SetDecimalPrecision(digits uint32) { scalar.SetDecimalPrecision(digits) }

// DecimalPrecision returns the significant digits used by Decimal arithmetic.
func DecimalPrecision() uint32 { return scalar.DecimalPrecision() }
