package ops

import (
	"github.com/born-ml/tangent/internal/scalar"
	"github.com/born-ml/tangent/internal/tensor"
)

// CosRule implements y = cos(x).
//
// Backward pass:
//   - d(cos(x))/dx = -sin(x)
//   - grad_input = grad_output * (-sin(x))
func CosRule[T scalar.Analytic[T]](x tensor.Dense[T], _ Op) (tensor.Dense[T], Pullback[T], error) {
	return elementwise(x, func(v T) T { return v.Cos() }, func(x, _ T) T { return x.Sin().Neg() })
}
