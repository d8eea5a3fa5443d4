package ops

import (
	"fmt"

	"github.com/born-ml/tangent/internal/scalar"
	"github.com/born-ml/tangent/internal/tensor"
)

// mapRule applies fns[i] to element i by recursing into the registry with a
// scalar input per index.
//
// The pullback asks each per-index pullback for its local derivative
// (seeded with 1), collects them into a vector and multiplies the incoming
// cotangent by it elementwise.
func (r *Registry[T]) mapRule(x tensor.Dense[T], op Op) (tensor.Dense[T], Pullback[T], error) {
	if len(op.fns) != x.Len() {
		return tensor.Dense[T]{}, nil, fmt.Errorf("%w: %s has %d functions for %d elements",
			ErrShape, op.String(), len(op.fns), x.Len())
	}

	outputs := make([]T, x.Len())
	pullbacks := make([]Pullback[T], x.Len())
	for i, fn := range op.fns {
		y, pb, err := r.Apply(fn, tensor.Scalar(x.At(i)))
		if err != nil {
			return tensor.Dense[T]{}, nil, fmt.Errorf("map index %d: %w", i, err)
		}
		if y.Len() != 1 {
			return tensor.Dense[T]{}, nil, fmt.Errorf("%w: map index %d: %s is not scalar-valued",
				ErrShape, i, fn.String())
		}
		outputs[i] = y.Item()
		pullbacks[i] = pb
	}

	y, err := tensor.New(x.Shape(), outputs)
	if err != nil {
		return tensor.Dense[T]{}, nil, fmt.Errorf("map: %w", err)
	}

	pullback := func(g tensor.Dense[T]) tensor.Dense[T] {
		one := tensor.Scalar(scalar.One[T]())
		locals := make([]T, len(pullbacks))
		for i, pb := range pullbacks {
			locals[i] = pb(one).Item()
		}
		return tensor.MapIndex(g, func(i int, gi T) T { return gi.Mul(locals[i]) })
	}
	return y, pullback, nil
}
