package ops

import (
	"github.com/born-ml/tangent/internal/scalar"
	"github.com/born-ml/tangent/internal/tensor"
)

// ExpRule implements y = exp(x).
//
// Since d(exp(x))/dx = exp(x), and we already have exp(x) as output:
// grad_input = grad_output * output.
func ExpRule[T scalar.Analytic[T]](x tensor.Dense[T], _ Op) (tensor.Dense[T], Pullback[T], error) {
	return elementwise(x, func(v T) T { return v.Exp() }, func(_, y T) T { return y })
}
