// Package dual implements forward-mode automatic differentiation with dual
// numbers.
//
// A Number carries a value and its derivative with respect to one designated
// independent variable. Every operation applies the matching differentiation
// rule to the derivative part, so evaluating an expression on Variable(x)
// yields f(x) and f'(x) in one pass.
//
// Number is generic over any scalar.Analytic type and itself satisfies
// scalar.Analytic, which makes Number[Number[T]] a hyper-dual number that
// carries second derivatives.
//
// Domain faults (division by zero, log or sqrt of a negative value) are not
// intercepted: they surface as whatever the scalar type produces.
package dual

import (
	"fmt"

	"github.com/born-ml/tangent/internal/scalar"
)

// Number is a value paired with its derivative.
type Number[T scalar.Analytic[T]] struct {
	Value      T
	Derivative T
}

// New creates a Number from a value and a derivative.
func New[T scalar.Analytic[T]](value, derivative T) Number[T] {
	return Number[T]{Value: value, Derivative: derivative}
}

// Variable returns x as the independent variable (derivative 1).
func Variable[T scalar.Analytic[T]](x T) Number[T] {
	return Number[T]{Value: x, Derivative: x.One()}
}

// Constant lifts v into a Number with zero derivative.
func Constant[T scalar.Analytic[T]](v T) Number[T] {
	return Number[T]{Value: v, Derivative: v.Zero()}
}

// Zero returns the dual zero.
func Zero[T scalar.Analytic[T]]() Number[T] {
	return Constant(scalar.Zero[T]())
}

// One returns the dual one with zero derivative.
func One[T scalar.Analytic[T]]() Number[T] {
	return Constant(scalar.One[T]())
}

// String formats the number as value + derivative·ϵ.
func (a Number[T]) String() string {
	return fmt.Sprintf("(%v + %vϵ)", a.Value, a.Derivative)
}

// Add returns a + b.
func (a Number[T]) Add(b Number[T]) Number[T] {
	return Number[T]{
		Value:      a.Value.Add(b.Value),
		Derivative: a.Derivative.Add(b.Derivative),
	}
}

// Sub returns a - b.
func (a Number[T]) Sub(b Number[T]) Number[T] {
	return Number[T]{
		Value:      a.Value.Sub(b.Value),
		Derivative: a.Derivative.Sub(b.Derivative),
	}
}

// Mul returns a * b using the product rule.
func (a Number[T]) Mul(b Number[T]) Number[T] {
	return Number[T]{
		Value:      a.Value.Mul(b.Value),
		Derivative: a.Derivative.Mul(b.Value).Add(a.Value.Mul(b.Derivative)),
	}
}

// Neg returns -a.
func (a Number[T]) Neg() Number[T] {
	return Number[T]{Value: a.Value.Neg(), Derivative: a.Derivative.Neg()}
}

// Div returns a * Inv(b).
func (a Number[T]) Div(b Number[T]) Number[T] {
	return a.Mul(b.Inv())
}

// Inv returns a^(-1). The exponent is the float literal -1 converted into
// T, so exact scalar types go through floating-point exponentiation here.
func (a Number[T]) Inv() Number[T] {
	return PowReal(a, -1)
}

// Pow returns a^b with the generalized power rule:
//
//	d(a^b) = b·a^(b-1)·da + a^b·ln(a)·db
//
// For a constant exponent and a negative base the second term is 0·NaN;
// use PowReal there.
func (a Number[T]) Pow(b Number[T]) Number[T] {
	one := a.Value.One()
	value := a.Value.Pow(b.Value)
	return Number[T]{
		Value: value,
		Derivative: b.Value.Mul(a.Value.Pow(b.Value.Sub(one))).Mul(a.Derivative).
			Add(value.Mul(a.Value.Log()).Mul(b.Derivative)),
	}
}

func (Number[T]) Zero() Number[T] { return Zero[T]() }
func (Number[T]) One() Number[T]  { return One[T]() }

// FromFloat lifts a float literal into a constant Number.
func (Number[T]) FromFloat(v float64) Number[T] {
	return Constant(scalar.FromFloat[T](v))
}

// Sin returns sin(a), with d = cos(a)·da.
func (a Number[T]) Sin() Number[T] {
	return Number[T]{Value: a.Value.Sin(), Derivative: a.Value.Cos().Mul(a.Derivative)}
}

// Cos returns cos(a), with d = -sin(a)·da.
func (a Number[T]) Cos() Number[T] {
	return Number[T]{Value: a.Value.Cos(), Derivative: a.Value.Sin().Neg().Mul(a.Derivative)}
}

// Exp returns exp(a), reusing the exponential for the derivative.
func (a Number[T]) Exp() Number[T] {
	y := a.Value.Exp()
	return Number[T]{Value: y, Derivative: y.Mul(a.Derivative)}
}

// Log returns ln(a), with d = da/a.
func (a Number[T]) Log() Number[T] {
	minusOne := a.Value.FromFloat(-1)
	return Number[T]{Value: a.Value.Log(), Derivative: a.Value.Pow(minusOne).Mul(a.Derivative)}
}

// Sqrt returns sqrt(a), with d = da/(2·sqrt(a)).
func (a Number[T]) Sqrt() Number[T] {
	y := a.Value.Sqrt()
	twoY := y.Add(y)
	return Number[T]{Value: y, Derivative: twoY.Pow(y.FromFloat(-1)).Mul(a.Derivative)}
}

// Abs returns |a|, with d = sign(a)·da. The derivative at 0 is whatever
// sign(0) is for T (0 for floats) and is not otherwise special-cased.
func (a Number[T]) Abs() Number[T] {
	return Number[T]{Value: a.Value.Abs(), Derivative: a.Value.Sign().Mul(a.Derivative)}
}

// Sign returns sign(a) with zero derivative.
func (a Number[T]) Sign() Number[T] {
	return Constant(a.Value.Sign())
}

// Compile-time check that duals nest.
var _ scalar.Analytic[Number[scalar.Float64]] = Number[scalar.Float64]{}
