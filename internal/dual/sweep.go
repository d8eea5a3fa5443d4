package dual

import (
	"github.com/born-ml/tangent/internal/parallel"
	"github.com/born-ml/tangent/internal/scalar"
)

// Derivative evaluates f at x and returns f(x) and f'(x).
func Derivative[T scalar.Analytic[T]](f func(Number[T]) Number[T], x T) (value, derivative T) {
	y := f(Variable(x))
	return y.Value, y.Derivative
}

// SecondDerivative evaluates f on a hyper-dual number and returns f(x),
// f'(x) and f''(x). f must be written generically so it can be instantiated
// at Number[T].
func SecondDerivative[T scalar.Analytic[T]](f func(Number[Number[T]]) Number[Number[T]], x T) (value, first, second T) {
	// x + ϵ₁ + ϵ₂ with ϵ₁ and ϵ₂ nested in that order.
	in := Number[Number[T]]{
		Value:      Variable(x),
		Derivative: One[T](),
	}
	y := f(in)
	return y.Value.Value, y.Value.Derivative, y.Derivative.Derivative
}

// Gradient evaluates a function of several variables and returns its value
// together with the gradient. It performs one forward sweep per coordinate,
// seeding that coordinate with derivative 1 and all others with 0.
func Gradient[T scalar.Analytic[T]](f func([]Number[T]) Number[T], x []T) (value T, grad []T) {
	return GradientParallel(f, x, parallel.Sequential())
}

// GradientParallel is Gradient with the coordinate sweeps spread over the
// workers in cfg. f must be safe for concurrent use.
func GradientParallel[T scalar.Analytic[T]](f func([]Number[T]) Number[T], x []T, cfg parallel.Config) (value T, grad []T) {
	grad = make([]T, len(x))
	if len(x) == 0 {
		return f(nil).Value, grad
	}
	values := make([]T, len(x))
	parallel.For(len(x), func(i int) {
		args := make([]Number[T], len(x))
		for j, xj := range x {
			if i == j {
				args[j] = Variable(xj)
			} else {
				args[j] = Constant(xj)
			}
		}
		y := f(args)
		values[i] = y.Value
		grad[i] = y.Derivative
	}, cfg)
	return values[0], grad
}
