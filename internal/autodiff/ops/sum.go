package ops

import (
	"fmt"

	"github.com/born-ml/tangent/internal/scalar"
	"github.com/born-ml/tangent/internal/tensor"
)

// SumRule reduces x to the scalar Σx.
//
// The local Jacobian of a sum is all ones, so the pullback broadcasts the
// scalar cotangent to every entry of x's shape.
func SumRule[T scalar.Analytic[T]](x tensor.Dense[T], _ Op) (tensor.Dense[T], Pullback[T], error) {
	total := tensor.Reduce(x, scalar.Zero[T](), func(acc, v T) T { return acc.Add(v) })
	shape := x.Shape()
	pullback := func(g tensor.Dense[T]) tensor.Dense[T] {
		if g.Len() != 1 {
			panic(fmt.Sprintf("ops: sum pullback expects a scalar cotangent, got shape %v", g.Shape()))
		}
		return tensor.Full(shape, g.Item())
	}
	return tensor.Scalar(total), pullback, nil
}
