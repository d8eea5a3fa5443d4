package ops

import (
	"github.com/born-ml/tangent/internal/scalar"
	"github.com/born-ml/tangent/internal/tensor"
)

// SqrtRule implements y = sqrt(x).
//
// Since d(sqrt(x))/dx = 1 / (2 * sqrt(x)), and we have sqrt(x) as output:
// grad_input = grad_output / (2 * output). The square root is computed once,
// on the forward call.
func SqrtRule[T scalar.Analytic[T]](x tensor.Dense[T], _ Op) (tensor.Dense[T], Pullback[T], error) {
	return elementwise(x, func(v T) T { return v.Sqrt() }, func(_, y T) T {
		return y.Add(y).Pow(y.FromFloat(-1))
	})
}
