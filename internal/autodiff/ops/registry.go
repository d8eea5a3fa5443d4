package ops

import (
	"fmt"
	"sort"
	"sync"

	"github.com/born-ml/tangent/internal/scalar"
	"github.com/born-ml/tangent/internal/tensor"
)

// Pullback maps an output cotangent to an input cotangent.
//
// A pullback closes over values captured by exactly one forward call and is
// meant to be applied once, during that call's reverse pass.
type Pullback[T any] func(cotangent tensor.Dense[T]) tensor.Dense[T]

// Rule computes an operation's output and pullback for a primal input.
// The descriptor is passed so parameterized rules can read their fixed
// parameters.
//
// The pullback must return a cotangent shaped like x. The engine checks
// this after every pullback and aborts the reverse pass with ErrShape.
type Rule[T any] func(x tensor.Dense[T], op Op) (tensor.Dense[T], Pullback[T], error)

// Registry maps operation descriptors to rules. Built-in kinds are handled
// by a switch; rules added with Register take precedence by name.
//
// A Registry is safe for concurrent use.
type Registry[T scalar.Analytic[T]] struct {
	mu    sync.RWMutex
	rules map[string]Rule[T]
}

// NewRegistry creates a registry with only the built-in rules.
func NewRegistry[T scalar.Analytic[T]]() *Registry[T] {
	return &Registry[T]{rules: make(map[string]Rule[T])}
}

// Register adds a rule under name. Registering a built-in name ("sqrt",
// "pow", ...) replaces the built-in rule for this registry.
func (r *Registry[T]) Register(name string, rule Rule[T]) error {
	if name == "" {
		return fmt.Errorf("ops: register: empty operation name")
	}
	if rule == nil {
		return fmt.Errorf("ops: register %q: nil rule", name)
	}
	r.mu.Lock()
	r.rules[name] = rule
	r.mu.Unlock()
	return nil
}

// Registered returns the names of rules added with Register, sorted.
func (r *Registry[T]) Registered() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtins returns the names of the built-in operations.
func Builtins() []string {
	return []string{"sin", "cos", "exp", "sqrt", "inv", "sum", "pow", "map"}
}

func (r *Registry[T]) lookup(name string) (Rule[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[name]
	return rule, ok
}

// Apply runs op's rule on x and returns the output and its pullback.
// Unknown operations fail with ErrUnknownOp; no partial result is returned.
func (r *Registry[T]) Apply(op Op, x tensor.Dense[T]) (tensor.Dense[T], Pullback[T], error) {
	if rule, ok := r.lookup(op.Name()); ok {
		return rule(x, op)
	}

	switch op.kind {
	case KindSin:
		return SinRule(x, op)
	case KindCos:
		return CosRule(x, op)
	case KindExp:
		return ExpRule(x, op)
	case KindSqrt:
		return SqrtRule(x, op)
	case KindInv:
		return InvRule(x, op)
	case KindSum:
		return SumRule(x, op)
	case KindPow:
		return PowRule(x, op)
	case KindMap:
		return r.mapRule(x, op)
	}

	return tensor.Dense[T]{}, nil, fmt.Errorf("%w %q", ErrUnknownOp, op.String())
}

// elementwise builds a unary rule from a forward function and a local
// derivative computed from the primal input and the cached output.
func elementwise[T scalar.Analytic[T]](
	x tensor.Dense[T],
	forward func(T) T,
	local func(x, y T) T,
) (tensor.Dense[T], Pullback[T], error) {
	y := tensor.Map(x, forward)
	pullback := func(g tensor.Dense[T]) tensor.Dense[T] {
		return tensor.MapIndex(g, func(i int, gi T) T {
			return gi.Mul(local(x.At(i), y.At(i)))
		})
	}
	return y, pullback, nil
}
