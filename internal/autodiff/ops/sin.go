package ops

import (
	"github.com/born-ml/tangent/internal/scalar"
	"github.com/born-ml/tangent/internal/tensor"
)

// SinRule implements y = sin(x).
//
// Backward pass:
//   - d(sin(x))/dx = cos(x)
//   - grad_input = grad_output * cos(x)
func SinRule[T scalar.Analytic[T]](x tensor.Dense[T], _ Op) (tensor.Dense[T], Pullback[T], error) {
	return elementwise(x, func(v T) T { return v.Sin() }, func(x, _ T) T { return x.Cos() })
}
