// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/tangent/internal/tensor"
)

// Shape is a tensor's dimensions.
type Shape = tensor.Shape

// Dense is an immutable row-major tensor.
type Dense[T any] = tensor.Dense[T]

// New creates a tensor from shape and a copy of data.
func New[T any](shape Shape, data []T) (Dense[T], error) { return tensor.New(shape, data) }

// Scalar creates a zero-dimensional tensor holding v.
func Scalar[T any](v T) Dense[T] { return tensor.Scalar(v) }

// Vector creates a one-dimensional tensor.
func Vector[T any](values ...T) Dense[T] { return tensor.Vector(values...) }

// Full creates a tensor of the given shape with every element set to v.
func Full[T any](shape Shape, v T) Dense[T] { return tensor.Full(shape, v) }

// Map applies f to every element.
func Map[T, U any](d Dense[T], f func(T) U) Dense[U] { return tensor.Map(d, f) }

// Zip combines two tensors of equal shape element by element.
func Zip[T any](a, b Dense[T], f func(T, T) T) Dense[T] { return tensor.Zip(a, b, f) }
