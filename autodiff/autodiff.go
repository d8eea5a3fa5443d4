// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over
// linear chains of operations.
//
// A chain is evaluated forward once. Each step records a pullback, and the
// pullbacks are composed last-to-first into a single vector-Jacobian
// product.
//
// Example:
//
//	import (
//	    "github.com/born-ml/tangent/autodiff"
//	    "github.com/born-ml/tangent/scalar"
//	    "github.com/born-ml/tangent/tensor"
//	)
//
//	func main() {
//	    chain := autodiff.Chain{autodiff.Pow(2), autodiff.Sum, autodiff.Sqrt, autodiff.Inv, autodiff.Exp}
//	    x := tensor.Vector[scalar.Float64](0.7, 0.3)
//
//	    // exp(1/‖x‖) and its gradient
//	    value, grad, err := autodiff.ValueAndGradient(chain, x)
//	}
//
// Custom operations are added to a Registry under a name and referenced
// with Named:
//
//	reg := autodiff.NewRegistry[scalar.Float64]()
//	_ = reg.Register("scale", scaleRule)
//	engine := autodiff.New(reg)
//	y, grad, err := engine.ValueAndGradient(autodiff.Chain{autodiff.Named("scale", 3), autodiff.Sum}, x)
package autodiff

import (
	"github.com/born-ml/tangent/internal/autodiff"
	"github.com/born-ml/tangent/internal/autodiff/ops"
	"github.com/born-ml/tangent/scalar"
	"github.com/born-ml/tangent/tensor"
)

// Op describes one differentiable step of a chain.
type Op = ops.Op

// Kind is the variant of an Op.
type Kind = ops.Kind

// Built-in operations.
var (
	Sin  = ops.Sin
	Cos  = ops.Cos
	Exp  = ops.Exp
	Sqrt = ops.Sqrt
	Inv  = ops.Inv
	Sum  = ops.Sum
)

// Pow raises every element to a constant exponent.
func Pow(exponent float64) Op { return ops.Pow(exponent) }

// Map applies fns[i] to element i of the input.
func Map(fns ...Op) Op { return ops.Map(fns...) }

// Named refers to a rule registered under name.
func Named(name string, params ...float64) Op { return ops.Named(name, params...) }

// Errors reported by execution.
var (
	ErrUnknownOp       = ops.ErrUnknownOp
	ErrShape           = ops.ErrShape
	ErrNonScalarOutput = autodiff.ErrNonScalarOutput
	ErrSeedShape       = autodiff.ErrSeedShape
)

// Pullback maps an output cotangent to an input cotangent.
type Pullback[T any] = ops.Pullback[T]

// Rule evaluates one operation and returns its pullback.
type Rule[T any] = ops.Rule[T]

// Registry resolves operations to rules.
type Registry[T scalar.Analytic[T]] = ops.Registry[T]

// NewRegistry creates a registry holding only the built-in rules.
func NewRegistry[T scalar.Analytic[T]]() *Registry[T] { return ops.NewRegistry[T]() }

// Chain is an ordered list of operations applied left to right.
type Chain = autodiff.Chain

// Tape holds the pullbacks recorded by one forward pass.
type Tape[T any] = autodiff.Tape[T]

// Engine executes chains against a registry.
type Engine[T scalar.Analytic[T]] = autodiff.Engine[T]

// Option configures an Engine.
type Option = autodiff.Option

// WithLogger sets the logger for per-step debug records.
var WithLogger = autodiff.WithLogger

// New creates an Engine. A nil registry means the built-in rules only.
func New[T scalar.Analytic[T]](registry *Registry[T], opts ...Option) *Engine[T] {
	return autodiff.New(registry, opts...)
}

// ValueAndGradient evaluates a scalar-output chain and its gradient with
// the built-in rules.
func ValueAndGradient[T scalar.Analytic[T]](chain Chain, x tensor.Dense[T]) (T, tensor.Dense[T], error) {
	return autodiff.ValueAndGradient(chain, x)
}

// VJP evaluates the chain and the vector-Jacobian product with seed.
func VJP[T scalar.Analytic[T]](chain Chain, x, seed tensor.Dense[T]) (tensor.Dense[T], tensor.Dense[T], error) {
	return autodiff.VJP(chain, x, seed)
}
