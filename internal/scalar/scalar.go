// Package scalar defines the arithmetic capability sets a value type must
// provide to take part in forward- and reverse-mode differentiation.
//
// The contracts are self-referential generic interfaces: a type T satisfies
// Field[T] when its methods take and return T. Rules in the dual and ops
// packages are written only against these methods, so the same rule code
// runs over Float64, Float32, Decimal, symbolic expressions, or dual numbers
// themselves.
//
// Capability levels:
//   - Field: Add, Sub, Mul, Neg, Pow, Zero, One, FromFloat
//   - Analytic: Field plus Sin, Cos, Exp, Log, Sqrt, Abs, Sign
//   - Ordered: Analytic plus Less (required by branch functions)
//
// A type lacking a capability fails to instantiate the generic function that
// needs it; there is no runtime check.
package scalar

// Field is the minimal arithmetic contract.
//
// Zero, One and FromFloat are called on the zero value of T and must not
// depend on the receiver's contents.
type Field[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Neg() T
	// Pow raises the receiver to the given power.
	Pow(T) T
	Zero() T
	One() T
	// FromFloat converts a float64 literal into T. Exact types may lose
	// nothing here, but the literal itself is a binary float.
	FromFloat(float64) T
}

// Analytic adds the elementary functions used by differentiation rules.
type Analytic[T any] interface {
	Field[T]
	Sin() T
	Cos() T
	Exp() T
	// Log is the natural logarithm.
	Log() T
	Sqrt() T
	Abs() T
	// Sign returns -1, 0 or 1 in T.
	Sign() T
}

// Ordered adds a total order. Branch functions (step, relu) require it.
type Ordered[T any] interface {
	Analytic[T]
	Less(T) bool
}

// Zero returns the additive identity of T.
func Zero[T Field[T]]() T {
	var z T
	return z.Zero()
}

// One returns the multiplicative identity of T.
func One[T Field[T]]() T {
	var z T
	return z.One()
}

// FromFloat converts v into T.
func FromFloat[T Field[T]](v float64) T {
	var z T
	return z.FromFloat(v)
}
