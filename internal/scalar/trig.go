package scalar

import (
	"sync"

	"github.com/cockroachdb/apd/v3"
)

// trigGuardDigits is added to the working precision on top of the digits
// consumed by reducing the argument modulo 2π.
const trigGuardDigits = 10

// piBlock rounds cached π precisions up so nearby working precisions share
// one entry.
const piBlock = 16

// maxSeriesTerms bounds the Maclaurin loop. On [-π, π] it converges long
// before this at any practical precision.
const maxSeriesTerms = 100000

var (
	piMu    sync.Mutex
	piCache = make(map[uint32]*apd.Decimal)
)

// decimalPi returns π to at least digits significant digits. Values are
// computed once per precision block and shared; callers must not modify
// the result.
func decimalPi(digits uint32) (*apd.Decimal, error) {
	digits = (digits + piBlock - 1) / piBlock * piBlock

	piMu.Lock()
	defer piMu.Unlock()
	if pi, ok := piCache[digits]; ok {
		return pi, nil
	}
	pi, err := machinPi(digits)
	if err != nil {
		return nil, err
	}
	piCache[digits] = pi
	return pi, nil
}

// machinPi evaluates π = 16·atan(1/5) - 4·atan(1/239).
func machinPi(digits uint32) (*apd.Decimal, error) {
	ctx := newDecimalContext(digits + trigGuardDigits)

	a, err := atanInv(ctx, 5)
	if err != nil {
		return nil, err
	}
	b, err := atanInv(ctx, 239)
	if err != nil {
		return nil, err
	}
	if _, err := ctx.Mul(a, a, apd.New(16, 0)); err != nil {
		return nil, err
	}
	if _, err := ctx.Mul(b, b, apd.New(4, 0)); err != nil {
		return nil, err
	}
	pi := new(apd.Decimal)
	if _, err := ctx.Sub(pi, a, b); err != nil {
		return nil, err
	}
	out := newDecimalContext(digits)
	if _, err := out.Round(pi, pi); err != nil {
		return nil, err
	}
	return pi, nil
}

// atanInv sums atan(1/n) = Σ (-1)^k / ((2k+1)·n^(2k+1)).
func atanInv(ctx *apd.Context, n int64) (*apd.Decimal, error) {
	power := new(apd.Decimal)
	if _, err := ctx.Quo(power, apd.New(1, 0), apd.New(n, 0)); err != nil {
		return nil, err
	}
	n2 := apd.New(n*n, 0)
	sum := new(apd.Decimal).Set(power)
	prev := new(apd.Decimal)
	term := new(apd.Decimal)

	for k := int64(1); ; k++ {
		if _, err := ctx.Quo(power, power, n2); err != nil {
			return nil, err
		}
		if _, err := ctx.Quo(term, power, apd.New(2*k+1, 0)); err != nil {
			return nil, err
		}
		prev.Set(sum)
		if k%2 == 1 {
			_, err := ctx.Sub(sum, sum, term)
			if err != nil {
				return nil, err
			}
		} else {
			_, err := ctx.Add(sum, sum, term)
			if err != nil {
				return nil, err
			}
		}
		if sum.Cmp(prev) == 0 {
			return sum, nil
		}
	}
}

// reduceAngle returns x - 2πk with k the integer nearest x/(2π), so the
// result lies in [-π, π]. work must carry enough digits to absorb the
// cancellation, which grows with the integer digits of x.
func reduceAngle(work *apd.Context, x *apd.Decimal) (*apd.Decimal, error) {
	pi, err := decimalPi(work.Precision)
	if err != nil {
		return nil, err
	}
	twoPi := new(apd.Decimal)
	if _, err := work.Mul(twoPi, pi, apd.New(2, 0)); err != nil {
		return nil, err
	}
	k := new(apd.Decimal)
	if _, err := work.Quo(k, x, twoPi); err != nil {
		return nil, err
	}
	if _, err := work.RoundToIntegralValue(k, k); err != nil {
		return nil, err
	}
	if k.IsZero() {
		return new(apd.Decimal).Set(x), nil
	}
	r := new(apd.Decimal)
	if _, err := work.Mul(r, k, twoPi); err != nil {
		return nil, err
	}
	if _, err := work.Sub(r, x, r); err != nil {
		return nil, err
	}
	return r, nil
}

// integerDigits returns the number of digits left of the decimal point.
func integerDigits(x *apd.Decimal) uint32 {
	n := x.NumDigits() + int64(x.Exponent)
	if n < 0 {
		return 0
	}
	return uint32(n)
}

// trig reduces a modulo 2π and sums the Maclaurin series of sin or cos on
// the reduced argument.
func (a Decimal) trig(cosine bool) Decimal {
	x := a.raw()
	if x.Form != apd.Finite {
		return decimalNaN()
	}
	base := decimalContext()
	work := base.WithPrecision(base.Precision + integerDigits(x) + trigGuardDigits)

	r, err := reduceAngle(work, x)
	if err != nil {
		return decimalNaN()
	}

	r2 := new(apd.Decimal)
	if _, err := work.Mul(r2, r, r); err != nil {
		return decimalNaN()
	}

	term := apd.New(1, 0)
	n := int64(0)
	if !cosine {
		term.Set(r)
		n = 1
	}
	sum := new(apd.Decimal).Set(term)
	prev := new(apd.Decimal)
	denom := new(apd.Decimal)

	for i := 0; i < maxSeriesTerms; i++ {
		// term *= -r² / ((n+1)(n+2))
		if _, err := work.Mul(term, term, r2); err != nil {
			return decimalNaN()
		}
		term.Neg(term)
		denom.SetInt64((n + 1) * (n + 2))
		if _, err := work.Quo(term, term, denom); err != nil {
			return decimalNaN()
		}
		n += 2

		prev.Set(sum)
		if _, err := work.Add(sum, sum, term); err != nil {
			return decimalNaN()
		}
		if sum.Cmp(prev) == 0 || term.IsZero() {
			break
		}
	}

	return apply(func(ctx *apd.Context, d *apd.Decimal) (apd.Condition, error) {
		return ctx.Round(d, sum)
	})
}
