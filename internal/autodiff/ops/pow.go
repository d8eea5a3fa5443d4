package ops

import (
	"github.com/born-ml/tangent/internal/scalar"
	"github.com/born-ml/tangent/internal/tensor"
)

// PowRule implements elementwise y = x^p for the op's fixed exponent p.
//
// Backward pass:
//   - d(x^p)/dx = p * x^(p-1)
//   - grad_input = grad_output * p * x^(p-1)
func PowRule[T scalar.Analytic[T]](x tensor.Dense[T], op Op) (tensor.Dense[T], Pullback[T], error) {
	p := scalar.FromFloat[T](op.exponent)
	pMinusOne := scalar.FromFloat[T](op.exponent - 1)
	return elementwise(x,
		func(v T) T { return v.Pow(p) },
		func(v, _ T) T { return p.Mul(v.Pow(pMinusOne)) },
	)
}
