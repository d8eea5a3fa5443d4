package dual

import "github.com/born-ml/tangent/internal/scalar"

func Add[T scalar.Analytic[T]](a, b Number[T]) Number[T] { return a.Add(b) }
func Sub[T scalar.Analytic[T]](a, b Number[T]) Number[T] { return a.Sub(b) }
func Mul[T scalar.Analytic[T]](a, b Number[T]) Number[T] { return a.Mul(b) }
func Div[T scalar.Analytic[T]](a, b Number[T]) Number[T] { return a.Div(b) }
func Inv[T scalar.Analytic[T]](a Number[T]) Number[T]    { return a.Inv() }
func Pow[T scalar.Analytic[T]](a, b Number[T]) Number[T] { return a.Pow(b) }
func Sin[T scalar.Analytic[T]](a Number[T]) Number[T]    { return a.Sin() }
func Cos[T scalar.Analytic[T]](a Number[T]) Number[T]    { return a.Cos() }
func Exp[T scalar.Analytic[T]](a Number[T]) Number[T]    { return a.Exp() }
func Log[T scalar.Analytic[T]](a Number[T]) Number[T]    { return a.Log() }
func Sqrt[T scalar.Analytic[T]](a Number[T]) Number[T]   { return a.Sqrt() }
func Abs[T scalar.Analytic[T]](a Number[T]) Number[T]    { return a.Abs() }

// Tan returns sin(a)/cos(a).
func Tan[T scalar.Analytic[T]](a Number[T]) Number[T] {
	return a.Sin().Div(a.Cos())
}

// PowReal returns a^p for a constant exponent p, with d = p·a^(p-1)·da.
func PowReal[T scalar.Analytic[T]](a Number[T], p float64) Number[T] {
	exp := a.Value.FromFloat(p)
	expMinusOne := a.Value.FromFloat(p - 1)
	return Number[T]{
		Value:      a.Value.Pow(exp),
		Derivative: exp.Mul(a.Value.Pow(expMinusOne)).Mul(a.Derivative),
	}
}

// Less compares values only; derivatives are ignored.
func Less[T scalar.Ordered[T]](a, b Number[T]) bool {
	return a.Value.Less(b.Value)
}

// Greater compares values only; derivatives are ignored.
func Greater[T scalar.Ordered[T]](a, b Number[T]) bool {
	return b.Value.Less(a.Value)
}

// Step is the Heaviside function: 0 for a < 0, 1 otherwise. Both branches
// are constants, so the derivative is 0 everywhere it is defined.
func Step[T scalar.Ordered[T]](a Number[T]) Number[T] {
	if Less(a, Zero[T]()) {
		return Zero[T]()
	}
	return One[T]()
}

// ReLU returns 0 for a < 0 and a otherwise.
func ReLU[T scalar.Ordered[T]](a Number[T]) Number[T] {
	if Less(a, Zero[T]()) {
		return Zero[T]()
	}
	return a
}
