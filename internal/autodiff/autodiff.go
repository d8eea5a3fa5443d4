// Package autodiff implements the naive reverse-mode engine: a fixed,
// caller-supplied chain of operations is evaluated forward while each step's
// pullback is recorded on a Tape, then the pullbacks are composed in reverse
// and applied once to a seed cotangent.
//
// Architecture:
//   - Chain: ordered ops.Op descriptors, f = opN ∘ … ∘ op1
//   - Tape: one pullback per executed step, composed last-to-first
//   - Engine: runs chains against an ops.Registry
//
// One forward and one backward pass per execution, whatever the input size,
// which suits scalar-output, many-input functions. Chains are strictly
// linear: no branching, fan-in or fan-out.
//
// Usage:
//
//	engine := autodiff.New[scalar.Float64](nil)
//	chain := autodiff.Chain{ops.Pow(2), ops.Sum, ops.Sqrt, ops.Inv, ops.Exp}
//	x := tensor.Vector[scalar.Float64](0.7, 0.3)
//	value, grad, err := engine.ValueAndGradient(chain, x)
package autodiff

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/born-ml/tangent/internal/autodiff/ops"
	"github.com/born-ml/tangent/internal/scalar"
	"github.com/born-ml/tangent/internal/tensor"
)

var (
	// ErrNonScalarOutput is returned by ValueAndGradient when the chain's
	// output has more than one element. Use VJP with an explicit seed.
	ErrNonScalarOutput = errors.New("autodiff: gradient requires a scalar output")

	// ErrSeedShape is returned when a VJP seed does not match the output.
	ErrSeedShape = errors.New("autodiff: seed shape does not match output")
)

// Chain is an ordered list of operations applied left to right.
type Chain []ops.Op

// String renders the chain as "op1 -> op2 -> ...".
func (c Chain) String() string {
	parts := make([]string, len(c))
	for i, op := range c {
		parts[i] = op.String()
	}
	return strings.Join(parts, " -> ")
}

// Option configures an Engine.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets the logger for per-step debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Engine executes chains against a rule registry.
//
// An Engine holds no per-execution state; separate executions may run
// concurrently.
type Engine[T scalar.Analytic[T]] struct {
	registry *ops.Registry[T]
	logger   *slog.Logger
}

// New creates an Engine. A nil registry means the built-in rules only.
func New[T scalar.Analytic[T]](registry *ops.Registry[T], opts ...Option) *Engine[T] {
	if registry == nil {
		registry = ops.NewRegistry[T]()
	}
	cfg := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine[T]{registry: registry, logger: cfg.logger}
}

// Registry returns the engine's rule registry, e.g. to Register new rules.
func (e *Engine[T]) Registry() *ops.Registry[T] {
	return e.registry
}

// Forward evaluates the chain on x, recording every step on a fresh tape.
// It returns the chain's output and the tape; on error neither is usable.
func (e *Engine[T]) Forward(chain Chain, x tensor.Dense[T]) (tensor.Dense[T], *Tape[T], error) {
	tape := NewTape[T]()
	current := x
	for i, op := range chain {
		y, pullback, err := e.registry.Apply(op, current)
		if err != nil {
			return tensor.Dense[T]{}, nil, fmt.Errorf("autodiff: step %d (%s): %w", i, op.String(), err)
		}
		tape.Record(op, current.Shape(), pullback)
		e.logger.Debug("forward step",
			"step", i,
			"op", op.String(),
			"shape", y.Shape(),
		)
		current = y
	}
	return current, tape, nil
}

// VJP evaluates the chain on x and returns its output together with the
// vector-Jacobian product seed·J, where J is the chain's Jacobian at x.
// The seed must have the output's shape.
func (e *Engine[T]) VJP(chain Chain, x, seed tensor.Dense[T]) (tensor.Dense[T], tensor.Dense[T], error) {
	y, tape, err := e.Forward(chain, x)
	if err != nil {
		return tensor.Dense[T]{}, tensor.Dense[T]{}, err
	}
	if !seed.Shape().Equal(y.Shape()) {
		return tensor.Dense[T]{}, tensor.Dense[T]{}, fmt.Errorf("%w: seed %v, output %v", ErrSeedShape, seed.Shape(), y.Shape())
	}
	grad, err := e.backward(tape, seed)
	if err != nil {
		return tensor.Dense[T]{}, tensor.Dense[T]{}, err
	}
	return y, grad, nil
}

// VJPFlat is VJP with the seed given as row-major elements, which are
// shaped like the chain's output once it is known. A seed whose length
// differs from the output's element count fails with ErrSeedShape.
func (e *Engine[T]) VJPFlat(chain Chain, x tensor.Dense[T], seed []T) (tensor.Dense[T], tensor.Dense[T], error) {
	y, tape, err := e.Forward(chain, x)
	if err != nil {
		return tensor.Dense[T]{}, tensor.Dense[T]{}, err
	}
	if len(seed) != y.Len() {
		return tensor.Dense[T]{}, tensor.Dense[T]{}, fmt.Errorf("%w: seed has %d elements, output %v has %d",
			ErrSeedShape, len(seed), y.Shape(), y.Len())
	}
	shaped, err := tensor.New(y.Shape(), seed)
	if err != nil {
		return tensor.Dense[T]{}, tensor.Dense[T]{}, fmt.Errorf("%w: %w", ErrSeedShape, err)
	}
	grad, err := e.backward(tape, shaped)
	if err != nil {
		return tensor.Dense[T]{}, tensor.Dense[T]{}, err
	}
	return y, grad, nil
}

// ValueAndGradient evaluates a scalar-valued chain and returns its value and
// gradient, seeding the reverse pass with the multiplicative identity. The
// gradient has the shape of x.
func (e *Engine[T]) ValueAndGradient(chain Chain, x tensor.Dense[T]) (T, tensor.Dense[T], error) {
	var zero T
	y, tape, err := e.Forward(chain, x)
	if err != nil {
		return zero, tensor.Dense[T]{}, err
	}
	if y.Len() != 1 {
		return zero, tensor.Dense[T]{}, fmt.Errorf("%w: output shape %v", ErrNonScalarOutput, y.Shape())
	}

	grad, err := e.backward(tape, tensor.Full(y.Shape(), scalar.One[T]()))
	if err != nil {
		return zero, tensor.Dense[T]{}, err
	}
	return y.Item(), grad, nil
}

func (e *Engine[T]) backward(tape *Tape[T], seed tensor.Dense[T]) (tensor.Dense[T], error) {
	grad, err := tape.Backward(seed)
	if err != nil {
		return tensor.Dense[T]{}, err
	}
	e.logger.Debug("reverse pass complete",
		"steps", tape.NumOps(),
		"shape", grad.Shape(),
	)
	return grad, nil
}

// ValueAndGradient runs chain on x with the built-in rules.
func ValueAndGradient[T scalar.Analytic[T]](chain Chain, x tensor.Dense[T]) (T, tensor.Dense[T], error) {
	return New[T](nil).ValueAndGradient(chain, x)
}

// VJP runs chain on x with the built-in rules.
func VJP[T scalar.Analytic[T]](chain Chain, x, seed tensor.Dense[T]) (tensor.Dense[T], tensor.Dense[T], error) {
	return New[T](nil).VJP(chain, x, seed)
}
