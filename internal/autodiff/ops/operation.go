// Package ops defines the elementary operations of reverse-mode chains and
// the registry that maps each one to its forward value and pullback.
//
// Each rule returns the operation's output together with a pullback: a
// closure from an output cotangent to an input cotangent that reuses values
// computed on the forward call instead of recomputing them.
//
// Supported operations:
//   - Sin: pullback g·cos(x)
//   - Cos: pullback g·(-sin(x))
//   - Exp: y = exp(x), pullback g·y
//   - Sqrt: y = sqrt(x), pullback g/(2y)
//   - Inv: y = 1/x, pullback g·(-y²)
//   - Sum: scalar Σx, pullback broadcasts g to x's shape
//   - Pow(p): elementwise x^p, pullback g·p·x^(p-1)
//   - Map(f₀, f₁, ...): fᵢ applied at index i, pullback g ⊙ [fᵢ'(xᵢ)]
//   - Named(name, params...): dispatched to a rule added with Register
package ops

import (
	"fmt"
	"strings"
)

// Kind identifies an operation variant.
type Kind uint8

// Operation kinds.
const (
	KindSin Kind = iota + 1
	KindCos
	KindExp
	KindSqrt
	KindInv
	KindSum
	KindPow
	KindMap
	KindNamed
)

var kindNames = map[Kind]string{
	KindSin:  "sin",
	KindCos:  "cos",
	KindExp:  "exp",
	KindSqrt: "sqrt",
	KindInv:  "inv",
	KindSum:  "sum",
	KindPow:  "pow",
	KindMap:  "map",
}

// String returns the operation name for built-in kinds.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	if k == KindNamed {
		return "named"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Op describes one step of a chain: a kind plus its fixed parameters.
// Op values are immutable.
type Op struct {
	kind     Kind
	exponent float64
	fns      []Op
	name     string
	params   []float64
}

// Parameterless built-in operations.
var (
	Sin  = Op{kind: KindSin}
	Cos  = Op{kind: KindCos}
	Exp  = Op{kind: KindExp}
	Sqrt = Op{kind: KindSqrt}
	Inv  = Op{kind: KindInv}
	Sum  = Op{kind: KindSum}
)

// Pow returns the elementwise power operation with a fixed exponent.
func Pow(exponent float64) Op {
	return Op{kind: KindPow, exponent: exponent}
}

// Map returns the elementwise dispatch operation: fns[i] is applied to
// element i. Each function must map a scalar to a scalar.
func Map(fns ...Op) Op {
	return Op{kind: KindMap, fns: append([]Op(nil), fns...)}
}

// Named returns a descriptor for a rule added with Registry.Register.
func Named(name string, params ...float64) Op {
	return Op{kind: KindNamed, name: name, params: append([]float64(nil), params...)}
}

// Kind returns the operation variant.
func (o Op) Kind() Kind { return o.kind }

// Name returns the registry key of the operation.
func (o Op) Name() string {
	if o.kind == KindNamed {
		return o.name
	}
	return kindNames[o.kind]
}

// Exponent returns the fixed exponent of a Pow operation.
func (o Op) Exponent() float64 { return o.exponent }

// Funcs returns a copy of the per-index functions of a Map operation.
func (o Op) Funcs() []Op { return append([]Op(nil), o.fns...) }

// Params returns a copy of the parameters of a Named operation.
func (o Op) Params() []float64 { return append([]float64(nil), o.params...) }

// String renders the operation, e.g. "pow(2)" or "map(sin, cos)".
func (o Op) String() string {
	switch o.kind {
	case KindPow:
		return fmt.Sprintf("pow(%g)", o.exponent)
	case KindMap:
		parts := make([]string, len(o.fns))
		for i, fn := range o.fns {
			parts[i] = fn.String()
		}
		return "map(" + strings.Join(parts, ", ") + ")"
	case KindNamed:
		if len(o.params) == 0 {
			return o.name
		}
		parts := make([]string, len(o.params))
		for i, p := range o.params {
			parts[i] = fmt.Sprintf("%g", p)
		}
		return o.name + "(" + strings.Join(parts, ", ") + ")"
	}
	if o.kind == 0 {
		return "<invalid>"
	}
	return o.Name()
}
