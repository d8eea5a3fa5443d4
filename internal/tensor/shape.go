package tensor

import "fmt"

// Shape lists the dimensions of a Dense value in row-major order. The empty
// shape is rank 0 and holds a single scalar.
type Shape []int

// NumElements returns the product of the dimensions, 1 for rank 0.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// IsScalar reports whether s is the rank-0 shape.
func (s Shape) IsScalar() bool {
	return len(s) == 0
}

// Validate rejects zero and negative dimensions, so every valid shape
// describes at least one element.
func (s Shape) Validate() error {
	for axis, dim := range s {
		if dim < 1 {
			return fmt.Errorf("dimension %d is %d, want a positive size", axis, dim)
		}
	}
	return nil
}

// Equal reports whether s and other have the same rank and dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for axis, dim := range s {
		if other[axis] != dim {
			return false
		}
	}
	return true
}

// Clone returns an independent copy, so callers can keep a shape without
// aliasing the value it came from.
func (s Shape) Clone() Shape {
	return append(Shape{}, s...)
}
