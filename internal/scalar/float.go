package scalar

import "math"

// Float64 is a double-precision scalar.
type Float64 float64

func (a Float64) Add(b Float64) Float64     { return a + b }
func (a Float64) Sub(b Float64) Float64     { return a - b }
func (a Float64) Mul(b Float64) Float64     { return a * b }
func (a Float64) Neg() Float64              { return -a }
func (a Float64) Pow(b Float64) Float64     { return Float64(math.Pow(float64(a), float64(b))) }
func (Float64) Zero() Float64               { return 0 }
func (Float64) One() Float64                { return 1 }
func (Float64) FromFloat(v float64) Float64 { return Float64(v) }
func (a Float64) Sin() Float64              { return Float64(math.Sin(float64(a))) }
func (a Float64) Cos() Float64              { return Float64(math.Cos(float64(a))) }
func (a Float64) Exp() Float64              { return Float64(math.Exp(float64(a))) }
func (a Float64) Log() Float64              { return Float64(math.Log(float64(a))) }
func (a Float64) Sqrt() Float64             { return Float64(math.Sqrt(float64(a))) }
func (a Float64) Abs() Float64              { return Float64(math.Abs(float64(a))) }
func (a Float64) Less(b Float64) bool       { return a < b }

// Sign returns -1, 0 or 1. NaN maps to NaN.
func (a Float64) Sign() Float64 {
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	}
	return a
}

// Float32 is a single-precision scalar. Elementary functions are evaluated
// in float64 and rounded back, so every result carries float32 precision.
type Float32 float32

func (a Float32) Add(b Float32) Float32     { return a + b }
func (a Float32) Sub(b Float32) Float32     { return a - b }
func (a Float32) Mul(b Float32) Float32     { return a * b }
func (a Float32) Neg() Float32              { return -a }
func (a Float32) Pow(b Float32) Float32     { return Float32(math.Pow(float64(a), float64(b))) }
func (Float32) Zero() Float32               { return 0 }
func (Float32) One() Float32                { return 1 }
func (Float32) FromFloat(v float64) Float32 { return Float32(v) }
func (a Float32) Sin() Float32              { return Float32(math.Sin(float64(a))) }
func (a Float32) Cos() Float32              { return Float32(math.Cos(float64(a))) }
func (a Float32) Exp() Float32              { return Float32(math.Exp(float64(a))) }
func (a Float32) Log() Float32              { return Float32(math.Log(float64(a))) }
func (a Float32) Sqrt() Float32             { return Float32(math.Sqrt(float64(a))) }
func (a Float32) Abs() Float32              { return Float32(math.Abs(float64(a))) }
func (a Float32) Less(b Float32) bool       { return a < b }

// Sign returns -1, 0 or 1. NaN maps to NaN.
func (a Float32) Sign() Float32 {
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	}
	return a
}
