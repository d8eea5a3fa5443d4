package scalar

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentities(t *testing.T) {
	assert.Equal(t, Float64(0), Zero[Float64]())
	assert.Equal(t, Float64(1), One[Float64]())
	assert.Equal(t, Float32(1), One[Float32]())
	assert.Equal(t, "0", Zero[Decimal]().String())
	assert.Equal(t, "1", One[Decimal]().String())
	assert.Equal(t, Float64(2.5), FromFloat[Float64](2.5))
}

func TestFloatSign(t *testing.T) {
	assert.Equal(t, Float64(1), Float64(3).Sign())
	assert.Equal(t, Float64(-1), Float64(-0.1).Sign())
	assert.Equal(t, Float64(0), Float64(0).Sign())
	assert.True(t, math.IsNaN(float64(Float64(math.NaN()).Sign())))
	assert.Equal(t, Float32(-1), Float32(-7).Sign())
}

func TestFloatDomainFaultsPropagate(t *testing.T) {
	assert.True(t, math.IsNaN(float64(Float64(-1).Sqrt())))
	assert.True(t, math.IsNaN(float64(Float64(-1).Log())))
	assert.True(t, math.IsInf(float64(Float64(0).Pow(-1)), 1))
}

func TestFloat32RoundsToSinglePrecision(t *testing.T) {
	got := Float32(3).Exp()
	assert.Equal(t, float32(math.Exp(3)), float32(got))
}

func TestDecimalArithmetic(t *testing.T) {
	a, err := ParseDecimal("0.1")
	require.NoError(t, err)
	b, err := ParseDecimal("0.2")
	require.NoError(t, err)

	assert.Equal(t, "0.3", a.Add(b).String())
	assert.Equal(t, "-0.1", a.Sub(b).String())
	assert.Equal(t, "0.02", a.Mul(b).String())
	assert.Equal(t, "-0.1", a.Neg().String())
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
}

func TestDecimalElementary(t *testing.T) {
	x := NewDecimal(3)

	tests := []struct {
		name string
		got  Decimal
		want float64
	}{
		{"sin", x.Sin(), math.Sin(3)},
		{"cos", x.Cos(), math.Cos(3)},
		{"sin18", NewDecimal(18).Sin(), math.Sin(18)},
		{"cos18", NewDecimal(18).Cos(), math.Cos(18)},
		{"exp", x.Exp(), math.Exp(3)},
		{"log", x.Log(), math.Log(3)},
		{"sqrt", x.Sqrt(), math.Sqrt(3)},
		{"pow", x.Pow(NewDecimal(-1)), 1.0 / 3},
		{"abs", x.Neg().Abs(), 3},
		{"sign", x.Neg().Sign(), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.got.Float64(), 1e-14)
		})
	}
}

func TestDecimalTrigLargeArguments(t *testing.T) {
	for _, v := range []float64{100, 2000, 8000, 20000, 1e5, -1e5, 1e9} {
		x := NewDecimal(v)
		assert.InDelta(t, math.Sin(v), x.Sin().Float64(), 1e-12, "sin(%g)", v)
		assert.InDelta(t, math.Cos(v), x.Cos().Float64(), 1e-12, "cos(%g)", v)
	}
}

func TestDecimalTrigPythagorean(t *testing.T) {
	x := NewDecimal(1e5)
	s, c := x.Sin(), x.Cos()
	residual := s.Mul(s).Add(c.Mul(c)).Sub(One[Decimal]()).Abs()
	assert.True(t, residual.Less(NewDecimal(1e-30)), residual.String())
}

func TestDecimalPi(t *testing.T) {
	pi, err := decimalPi(40)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(pi.String(), "3.14159265358979323846264338327950288"), pi.String())

	again, err := decimalPi(33)
	require.NoError(t, err)
	assert.Same(t, pi, again)
}

func TestDecimalSinOfZero(t *testing.T) {
	assert.Zero(t, NewDecimal(0).Sin().Float64())
	assert.Equal(t, 1.0, NewDecimal(0).Cos().Float64())
}

func TestDecimalZeroValueIsZero(t *testing.T) {
	var z Decimal
	assert.Equal(t, "0", z.String())
	assert.Equal(t, "2", z.Add(NewDecimal(2)).String())
}

func TestDecimalDomainFaultIsNaN(t *testing.T) {
	assert.True(t, NewDecimal(-1).Log().IsNaN())
	assert.True(t, NewDecimal(-4).Sqrt().IsNaN())
	assert.True(t, math.IsNaN(NewDecimal(-4).Sqrt().Float64()))
}

func TestDecimalPrecision(t *testing.T) {
	defer SetDecimalPrecision(DefaultDecimalPrecision)

	SetDecimalPrecision(50)
	assert.Equal(t, uint32(50), DecimalPrecision())
	third := NewDecimal(3).Pow(NewDecimal(-1))
	assert.Greater(t, len(third.String()), DefaultDecimalPrecision+2)

	SetDecimalPrecision(0)
	assert.Equal(t, uint32(DefaultDecimalPrecision), DecimalPrecision())
}

func TestParseDecimalRejectsGarbage(t *testing.T) {
	_, err := ParseDecimal("zero point seven")
	assert.Error(t, err)
}
