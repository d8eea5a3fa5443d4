// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense values that reverse-mode chains consume
// and produce.
//
// # Overview
//
// A Dense[T] is an immutable, row-major block of scalars with a Shape. The
// element type is unconstrained, so the same container holds machine floats,
// decimals or symbolic expressions.
//
// # Basic Usage
//
//	import "github.com/born-ml/tangent/tensor"
//
//	func main() {
//	    x := tensor.Vector(0.7, 0.3)          // shape [2]
//	    s := tensor.Scalar(1.0)               // shape []
//	    m, err := tensor.New(tensor.Shape{2, 2}, []float64{1, 2, 3, 4})
//	}
//
// # Shapes
//
// The empty shape is a scalar with exactly one element. Every dimension
// must be positive; New rejects anything else.
package tensor
