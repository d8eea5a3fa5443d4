// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dual provides forward-mode automatic differentiation.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/tangent/dual"
//	    "github.com/born-ml/tangent/scalar"
//	)
//
//	func main() {
//	    x := dual.Variable(scalar.Float64(3))
//	    y := x.Mul(x)             // y.Value == 9, y.Derivative == 6
//	    z := dual.Sin(y).Add(x)   // chain rule applied per operation
//	}
//
// # Higher derivatives
//
// Number satisfies scalar.Analytic, so Number[Number[T]] carries second
// derivatives. SecondDerivative wraps the seeding.
package dual

import (
	"github.com/born-ml/tangent/internal/dual"
	"github.com/born-ml/tangent/internal/parallel"
	"github.com/born-ml/tangent/scalar"
)

// Number is a value paired with its derivative.
type Number[T scalar.Analytic[T]] = dual.Number[T]

// New creates a Number from a value and a derivative.
func New[T scalar.Analytic[T]](value, derivative T) Number[T] { return dual.New(value, derivative) }

// Variable returns x as the independent variable (derivative 1).
func Variable[T scalar.Analytic[T]](x T) Number[T] { return dual.Variable(x) }

// Constant lifts v into a Number with zero derivative.
func Constant[T scalar.Analytic[T]](v T) Number[T] { return dual.Constant(v) }

// Sin returns sin(a).
func Sin[T scalar.Analytic[T]](a Number[T]) Number[T] { return dual.Sin(a) }

// Cos returns cos(a).
func Cos[T scalar.Analytic[T]](a Number[T]) Number[T] { return dual.Cos(a) }

// Tan returns tan(a).
func Tan[T scalar.Analytic[T]](a Number[T]) Number[T] { return dual.Tan(a) }

// Exp returns e^a.
func Exp[T scalar.Analytic[T]](a Number[T]) Number[T] { return dual.Exp(a) }

// Log returns the natural logarithm of a.
func Log[T scalar.Analytic[T]](a Number[T]) Number[T] { return dual.Log(a) }

// Sqrt returns the square root of a.
func Sqrt[T scalar.Analytic[T]](a Number[T]) Number[T] { return dual.Sqrt(a) }

// Abs returns |a|.
func Abs[T scalar.Analytic[T]](a Number[T]) Number[T] { return dual.Abs(a) }

// Inv returns 1/a.
func Inv[T scalar.Analytic[T]](a Number[T]) Number[T] { return dual.Inv(a) }

// Pow returns a^b.
func Pow[T scalar.Analytic[T]](a, b Number[T]) Number[T] { return dual.Pow(a, b) }

// PowReal returns a^p for a constant exponent.
func PowReal[T scalar.Analytic[T]](a Number[T], p float64) Number[T] { return dual.PowReal(a, p) }

// Step returns 0 for a < 0 and 1 otherwise, with zero derivative.
func Step[T scalar.Ordered[T]](a Number[T]) Number[T] { return dual.Step(a) }

// ReLU returns max(a, 0).
func ReLU[T scalar.Ordered[T]](a Number[T]) Number[T] { return dual.ReLU(a) }

// Less reports whether a.Value < b.Value.
func Less[T scalar.Ordered[T]](a, b Number[T]) bool { return dual.Less(a, b) }

// Greater reports whether a.Value > b.Value.
func Greater[T scalar.Ordered[T]](a, b Number[T]) bool { return dual.Greater(a, b) }

// Derivative evaluates f and f' at x.
func Derivative[T scalar.Analytic[T]](f func(Number[T]) Number[T], x T) (value, derivative T) {
	return dual.Derivative(f, x)
}

// SecondDerivative evaluates f, f' and f'' at x with hyper-dual numbers.
func SecondDerivative[T scalar.Analytic[T]](f func(Number[Number[T]]) Number[Number[T]], x T) (value, first, second T) {
	return dual.SecondDerivative(f, x)
}

// Gradient evaluates f and its gradient at x with one forward sweep per
// coordinate.
func Gradient[T scalar.Analytic[T]](f func([]Number[T]) Number[T], x []T) (value T, grad []T) {
	return dual.Gradient(f, x)
}

// GradientParallel is Gradient with the coordinate sweeps spread over
// workers goroutines (the CPU count when workers <= 0). f must be safe for
// concurrent use.
func GradientParallel[T scalar.Analytic[T]](f func([]Number[T]) Number[T], x []T, workers int) (value T, grad []T) {
	return dual.GradientParallel(f, x, parallel.WithWorkers(workers))
}
