// Package tensor holds the dense values that flow through reverse-mode
// chains: primal inputs and outputs as well as cotangents.
//
// Dense is generic over any element type; arithmetic is supplied by the
// caller through Map and Zip, so the package has no opinion on scalars.
package tensor

import "fmt"

// Dense is an immutable row-major array of T with a shape.
type Dense[T any] struct {
	shape Shape
	data  []T
}

// New creates a Dense value, copying data.
func New[T any](shape Shape, data []T) (Dense[T], error) {
	if err := shape.Validate(); err != nil {
		return Dense[T]{}, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != len(data) {
		return Dense[T]{}, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	buf := make([]T, len(data))
	copy(buf, data)
	return Dense[T]{shape: shape.Clone(), data: buf}, nil
}

// Scalar wraps a single value as a rank-0 Dense.
func Scalar[T any](v T) Dense[T] {
	return Dense[T]{shape: Shape{}, data: []T{v}}
}

// Vector creates a rank-1 Dense from values.
// Panics if values is empty: every dimension of a shape must be positive.
func Vector[T any](values ...T) Dense[T] {
	if len(values) == 0 {
		panic("tensor: Vector needs at least one value")
	}
	buf := make([]T, len(values))
	copy(buf, values)
	return Dense[T]{shape: Shape{len(values)}, data: buf}
}

// Full creates a Dense of the given shape where every element is v.
// Panics if shape is invalid.
func Full[T any](shape Shape, v T) Dense[T] {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("tensor: Full: %v", err))
	}
	buf := make([]T, shape.NumElements())
	for i := range buf {
		buf[i] = v
	}
	return Dense[T]{shape: shape.Clone(), data: buf}
}

// Shape returns a copy of the shape.
func (d Dense[T]) Shape() Shape {
	return d.shape.Clone()
}

// Len returns the number of elements.
func (d Dense[T]) Len() int {
	return len(d.data)
}

// At returns the element at flat index i.
func (d Dense[T]) At(i int) T {
	return d.data[i]
}

// Item returns the only element of a single-element value.
// Panics if d holds more than one element.
func (d Dense[T]) Item() T {
	if len(d.data) != 1 {
		panic(fmt.Sprintf("tensor: Item called on shape %v", d.shape))
	}
	return d.data[0]
}

// Data returns a copy of the flat elements.
func (d Dense[T]) Data() []T {
	buf := make([]T, len(d.data))
	copy(buf, d.data)
	return buf
}

// String formats the elements.
func (d Dense[T]) String() string {
	if d.shape.IsScalar() && len(d.data) == 1 {
		return fmt.Sprint(d.data[0])
	}
	return fmt.Sprint(d.data)
}

// Map applies f to every element.
func Map[T, U any](d Dense[T], f func(T) U) Dense[U] {
	buf := make([]U, len(d.data))
	for i, v := range d.data {
		buf[i] = f(v)
	}
	return Dense[U]{shape: d.shape.Clone(), data: buf}
}

// MapIndex applies f to every element along with its flat index.
func MapIndex[T, U any](d Dense[T], f func(int, T) U) Dense[U] {
	buf := make([]U, len(d.data))
	for i, v := range d.data {
		buf[i] = f(i, v)
	}
	return Dense[U]{shape: d.shape.Clone(), data: buf}
}

// Zip combines two values of equal shape element by element.
// Panics on shape mismatch.
func Zip[T any](a, b Dense[T], f func(T, T) T) Dense[T] {
	if !a.shape.Equal(b.shape) {
		panic(fmt.Sprintf("tensor: zip shape mismatch %v vs %v", a.shape, b.shape))
	}
	buf := make([]T, len(a.data))
	for i := range a.data {
		buf[i] = f(a.data[i], b.data[i])
	}
	return Dense[T]{shape: a.shape.Clone(), data: buf}
}

// Reduce folds all elements into one value starting from init.
func Reduce[T any](d Dense[T], init T, f func(T, T) T) T {
	acc := init
	for _, v := range d.data {
		acc = f(acc, v)
	}
	return acc
}
