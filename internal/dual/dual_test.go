package dual

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gonum "gonum.org/v1/gonum/num/dual"

	"github.com/born-ml/tangent/internal/parallel"
	"github.com/born-ml/tangent/internal/scalar"
	"github.com/born-ml/tangent/internal/symbolic"
)

type f64 = scalar.Float64

// mixed is exp(x)·sin(x²+3x)/(1+x²)², written once for every scalar type.
func mixed[T scalar.Analytic[T]](x Number[T]) Number[T] {
	x2 := PowReal(x, 2)
	three := x.FromFloat(3)
	one := x.One()
	return Exp(x).Mul(Sin(x2.Add(three.Mul(x)))).Div(PowReal(one.Add(x2), 2))
}

const (
	mixedAt3      = -0.1508398207387555
	mixedPrimeAt3 = 1.22382137034683
)

func TestScenarioSumAndProduct(t *testing.T) {
	x := New[f64](3.0, 1.0)

	assert.Equal(t, f64(2.0), x.Add(x).Derivative)
	assert.Equal(t, f64(6.0), x.Mul(x).Derivative)
	assert.Equal(t, f64(9.0), x.Mul(x).Value)
	assert.Equal(t, f64(0.0), x.Sub(x).Derivative)
}

func TestConstantHasZeroDerivative(t *testing.T) {
	c := Constant[f64](4)
	x := Variable[f64](2)

	assert.Equal(t, f64(0), c.Derivative)
	assert.Equal(t, f64(1), x.Derivative)
	assert.Equal(t, f64(4), c.Mul(x).Derivative)
	assert.Equal(t, f64(1), c.Add(x).Derivative)
}

func TestProductRule(t *testing.T) {
	pairs := [][2]Number[f64]{
		{New[f64](2, 0.5), New[f64](-3, 0.25)},
		{New[f64](0.1, -4), New[f64](7, 2)},
		{New[f64](-1.5, 0), New[f64](0, 1)},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		got := a.Mul(b)
		assert.Equal(t, a.Derivative*b.Value+a.Value*b.Derivative, got.Derivative)
		assert.Equal(t, a.Value*b.Value, got.Value)
	}
}

func TestGeneralizedPowerRule(t *testing.T) {
	a := New[f64](2, 0.5)
	b := New[f64](3, 0.25)

	got := a.Pow(b)

	want := 3*math.Pow(2, 2)*0.5 + math.Pow(2, 3)*math.Log(2)*0.25
	assert.InDelta(t, 8.0, float64(got.Value), 1e-12)
	assert.InDelta(t, want, float64(got.Derivative), 1e-12)

	// The constant-exponent simplification would miss the ln term.
	assert.NotEqual(t, 3*math.Pow(2, 2)*0.5, float64(got.Derivative))
}

func TestPowRealNegativeBase(t *testing.T) {
	x := Variable[f64](-2)
	cube := PowReal(x, 3)

	assert.Equal(t, f64(-8), cube.Value)
	assert.Equal(t, f64(12), cube.Derivative)
}

func TestDivideAndInverse(t *testing.T) {
	x := Variable[f64](4)

	inv := x.Inv()
	assert.InDelta(t, 0.25, float64(inv.Value), 1e-15)
	assert.InDelta(t, -1.0/16, float64(inv.Derivative), 1e-15)

	// d(1/x) at 0 is left to the scalar type.
	z := Inv(Variable[f64](0))
	assert.True(t, math.IsInf(float64(z.Value), 1))

	q := Div(Constant[f64](1).Add(x), x) // (1+x)/x
	assert.InDelta(t, 1.25, float64(q.Value), 1e-15)
	assert.InDelta(t, -1.0/16, float64(q.Derivative), 1e-15)
}

func TestUnaryRules(t *testing.T) {
	const v = 0.8
	x := Variable[f64](v)

	tests := []struct {
		name           string
		got            Number[f64]
		value, derivat float64
	}{
		{"sin", Sin(x), math.Sin(v), math.Cos(v)},
		{"cos", Cos(x), math.Cos(v), -math.Sin(v)},
		{"tan", Tan(x), math.Tan(v), 1 / (math.Cos(v) * math.Cos(v))},
		{"exp", Exp(x), math.Exp(v), math.Exp(v)},
		{"log", Log(x), math.Log(v), 1 / v},
		{"sqrt", Sqrt(x), math.Sqrt(v), 0.5 / math.Sqrt(v)},
		{"abs", Abs(x), v, 1},
		{"abs-neg", Abs(x.Neg()), v, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.value, float64(tt.got.Value), 1e-12)
			assert.InDelta(t, tt.derivat, float64(tt.got.Derivative), 1e-12)
		})
	}
}

func TestDomainFaultsPropagate(t *testing.T) {
	s := Sqrt(Variable[f64](-1))
	assert.True(t, math.IsNaN(float64(s.Value)))

	l := Log(Variable[f64](-1))
	assert.True(t, math.IsNaN(float64(l.Value)))
}

func TestBranchFunctions(t *testing.T) {
	s := Step(New[f64](3.0, 1.0))
	assert.Equal(t, f64(1.0), s.Value)
	assert.Equal(t, f64(0.0), s.Derivative)

	s = Step(New[f64](-3.0, 1.0))
	assert.Equal(t, f64(0.0), s.Value)
	assert.Equal(t, f64(0.0), s.Derivative)

	r := ReLU(New[f64](-2.0, 1.0))
	assert.Equal(t, f64(0.0), r.Value)
	assert.Equal(t, f64(0.0), r.Derivative)

	r = ReLU(New[f64](3.0, 1.0))
	assert.Equal(t, f64(3.0), r.Value)
	assert.Equal(t, f64(1.0), r.Derivative)

	assert.True(t, Less(New[f64](1, 5), New[f64](2, -5)))
	assert.True(t, Greater(New[f64](2, 0), New[f64](1, 9)))
}

func TestMixedFloat64(t *testing.T) {
	v, d := Derivative(mixed[f64], 3)
	assert.InDelta(t, mixedAt3, float64(v), 1e-12)
	assert.InDelta(t, mixedPrimeAt3, float64(d), 1e-12)
}

func TestMixedAcrossScalarTypes(t *testing.T) {
	v32, d32 := Derivative(mixed[scalar.Float32], 3)
	assert.InEpsilon(t, mixedAt3, float64(v32), 1e-5)
	assert.InEpsilon(t, mixedPrimeAt3, float64(d32), 1e-5)

	vd, dd := Derivative(mixed[scalar.Decimal], scalar.NewDecimal(3))
	assert.InDelta(t, mixedAt3, vd.Float64(), 1e-13)
	assert.InDelta(t, mixedPrimeAt3, dd.Float64(), 1e-13)
}

func TestMixedSymbolic(t *testing.T) {
	// Exact constant input: the derivative is an unevaluated closed form.
	_, d := Derivative(mixed[symbolic.Expr], symbolic.Int(3))
	_, isConst := d.IsConst()
	require.False(t, isConst)
	got, err := d.Eval(nil)
	require.NoError(t, err)
	assert.InDelta(t, mixedPrimeAt3, got, 1e-10)

	// Symbolic input: the derivative is a formula in x.
	_, dx := Derivative(mixed[symbolic.Expr], symbolic.Var("x"))
	got, err = dx.Eval(map[string]float64{"x": 3})
	require.NoError(t, err)
	assert.InDelta(t, mixedPrimeAt3, got, 1e-10)
}

func TestSymbolicRuleShape(t *testing.T) {
	x := Variable(symbolic.Var("x"))
	assert.Equal(t, "cos(x)", Sin(x).Derivative.String())
	assert.Equal(t, "exp(x)", Exp(x).Derivative.String())
	assert.Equal(t, "(x + x)", x.Mul(x).Derivative.String())
}

func TestAgainstGonumDual(t *testing.T) {
	ref := func(x gonum.Number) gonum.Number {
		x2 := gonum.PowReal(x, 2)
		arg := gonum.Add(x2, gonum.Mul(gonum.Number{Real: 3}, x))
		den := gonum.PowReal(gonum.Add(gonum.Number{Real: 1}, x2), 2)
		return gonum.Mul(gonum.Mul(gonum.Exp(x), gonum.Sin(arg)), gonum.Inv(den))
	}

	for _, x := range []float64{-1.2, 0.3, 1.5, 3} {
		want := ref(gonum.Number{Real: x, Emag: 1})
		v, d := Derivative(mixed[f64], f64(x))
		assert.InDelta(t, want.Real, float64(v), 1e-12, "value at %v", x)
		assert.InDelta(t, want.Emag, float64(d), 1e-12, "derivative at %v", x)
	}
}

func TestSecondDerivative(t *testing.T) {
	// f(x) = x·sin(x), f'' = 2cos(x) - x·sin(x)
	f := func(x Number[Number[f64]]) Number[Number[f64]] {
		return x.Mul(x.Sin())
	}
	const v = 1.3
	y, d1, d2 := SecondDerivative(f, v)

	assert.InDelta(t, v*math.Sin(v), float64(y), 1e-12)
	assert.InDelta(t, math.Sin(v)+v*math.Cos(v), float64(d1), 1e-12)
	assert.InDelta(t, 2*math.Cos(v)-v*math.Sin(v), float64(d2), 1e-12)
}

func TestGradientSweep(t *testing.T) {
	// f(x, y) = x²·y + sin(y)
	f := func(v []Number[f64]) Number[f64] {
		return PowReal(v[0], 2).Mul(v[1]).Add(Sin(v[1]))
	}
	value, grad := Gradient(f, []f64{1.5, 0.5})

	assert.InDelta(t, 1.5*1.5*0.5+math.Sin(0.5), float64(value), 1e-12)
	require.Len(t, grad, 2)
	assert.InDelta(t, 2*1.5*0.5, float64(grad[0]), 1e-12)
	assert.InDelta(t, 1.5*1.5+math.Cos(0.5), float64(grad[1]), 1e-12)
}

func TestGradientParallelMatchesSequential(t *testing.T) {
	// f(x) = Σ sin(xᵢ)·xᵢ₊₁
	f := func(v []Number[f64]) Number[f64] {
		acc := Zero[f64]()
		for i := 0; i+1 < len(v); i++ {
			acc = acc.Add(Sin(v[i]).Mul(v[i+1]))
		}
		return acc
	}
	x := make([]f64, 100)
	for i := range x {
		x[i] = f64(0.01 * float64(i))
	}

	wantValue, want := Gradient(f, x)
	gotValue, got := GradientParallel(f, x, parallel.WithWorkers(4))

	assert.Equal(t, wantValue, gotValue)
	assert.Equal(t, want, got)
	assert.InDelta(t, math.Cos(0.5)*0.51+math.Sin(0.49), float64(got[50]), 1e-12)
}

func TestString(t *testing.T) {
	assert.Equal(t, "(3 + 1ϵ)", Variable[f64](3).String())
}
