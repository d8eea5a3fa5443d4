package autodiff

import (
	"fmt"

	"github.com/born-ml/tangent/internal/autodiff/ops"
	"github.com/born-ml/tangent/internal/tensor"
)

// Tape records one pullback per executed step during the forward pass and
// runs them during the reverse pass.
//
// Usage:
//
//	tape := NewTape[scalar.Float64]()
//	y, pb, _ := registry.Apply(op, x)
//	tape.Record(op, x.Shape(), pb)
//	// ... more steps ...
//	grad, err := tape.Backward(seed)
//
// A tape belongs to exactly one chain execution.
type Tape[T any] struct {
	operations []ops.Op          // Recorded operations (in execution order)
	inputs     []tensor.Shape    // inputs[i] is the primal input shape of operations[i]
	pullbacks  []ops.Pullback[T] // pullbacks[i] belongs to operations[i]
}

// NewTape creates an empty tape.
func NewTape[T any]() *Tape[T] {
	return &Tape[T]{
		operations: make([]ops.Op, 0, 8),
		inputs:     make([]tensor.Shape, 0, 8),
		pullbacks:  make([]ops.Pullback[T], 0, 8),
	}
}

// Record appends a step's pullback together with the shape of the input it
// was evaluated on.
func (t *Tape[T]) Record(op ops.Op, input tensor.Shape, pullback ops.Pullback[T]) {
	t.operations = append(t.operations, op)
	t.inputs = append(t.inputs, input.Clone())
	t.pullbacks = append(t.pullbacks, pullback)
}

// NumOps returns the number of recorded steps.
func (t *Tape[T]) NumOps() int {
	return len(t.operations)
}

// Operations returns the recorded operations in execution order.
func (t *Tape[T]) Operations() []ops.Op {
	return append([]ops.Op(nil), t.operations...)
}

// Clear resets the tape.
func (t *Tape[T]) Clear() {
	t.operations = t.operations[:0]
	t.inputs = t.inputs[:0]
	t.pullbacks = t.pullbacks[:0]
}

// Backward applies the recorded pullbacks to seed, last step first. Every
// cotangent a pullback returns must have the shape of that step's input;
// otherwise Backward stops with ops.ErrShape before the next pullback runs.
func (t *Tape[T]) Backward(seed tensor.Dense[T]) (tensor.Dense[T], error) {
	g := seed
	for i := len(t.pullbacks) - 1; i >= 0; i-- {
		g = t.pullbacks[i](g)
		if want := t.inputs[i]; !g.Shape().Equal(want) {
			return tensor.Dense[T]{}, fmt.Errorf("autodiff: step %d (%s) pullback: %w: cotangent %v, input %v",
				i, t.operations[i].String(), ops.ErrShape, g.Shape(), want)
		}
	}
	return g, nil
}

// Compose folds the recorded pullbacks into one end-to-end pullback. The
// last recorded step is applied first. An empty tape composes to the
// identity. Unlike Backward, the composed function does not check shapes.
func (t *Tape[T]) Compose() ops.Pullback[T] {
	composed := ops.Pullback[T](func(g tensor.Dense[T]) tensor.Dense[T] { return g })
	for _, pb := range t.pullbacks {
		inner, step := composed, pb
		composed = func(g tensor.Dense[T]) tensor.Dense[T] {
			return inner(step(g))
		}
	}
	return composed
}
