package ops

import (
	"github.com/born-ml/tangent/internal/scalar"
	"github.com/born-ml/tangent/internal/tensor"
)

// InvRule implements y = 1/x, computed as x^(-1).
//
// Backward pass:
//   - d(1/x)/dx = -1/x² = -y²
//   - grad_input = grad_output * (-output²)
func InvRule[T scalar.Analytic[T]](x tensor.Dense[T], _ Op) (tensor.Dense[T], Pullback[T], error) {
	inverse := func(v T) T { return v.Pow(v.FromFloat(-1)) }
	return elementwise(x, inverse, func(_, y T) T { return y.Mul(y).Neg() })
}
