package scalar

import (
	"fmt"
	"math"
	"sync"

	"github.com/cockroachdb/apd/v3"
)

// DefaultDecimalPrecision is the number of significant digits used by
// Decimal arithmetic unless changed with SetDecimalPrecision.
const DefaultDecimalPrecision = 34

var (
	decimalMu  sync.RWMutex
	decimalCtx = newDecimalContext(DefaultDecimalPrecision)
)

// newDecimalContext builds a context without traps: invalid operations
// yield NaN instead of errors.
func newDecimalContext(digits uint32) *apd.Context {
	ctx := apd.BaseContext.WithPrecision(digits)
	ctx.Traps = 0
	return ctx
}

// SetDecimalPrecision sets the number of significant digits for all
// subsequent Decimal operations.
func SetDecimalPrecision(digits uint32) {
	if digits == 0 {
		digits = DefaultDecimalPrecision
	}
	decimalMu.Lock()
	decimalCtx = newDecimalContext(digits)
	decimalMu.Unlock()
}

// DecimalPrecision returns the current number of significant digits.
func DecimalPrecision() uint32 {
	return decimalContext().Precision
}

func decimalContext() *apd.Context {
	decimalMu.RLock()
	defer decimalMu.RUnlock()
	return decimalCtx
}

// Decimal is an arbitrary-precision decimal scalar. The zero value is 0.
//
// Values are immutable: every operation allocates its result.
type Decimal struct {
	d *apd.Decimal
}

// NewDecimal converts f through its shortest decimal representation, so
// NewDecimal(0.7) is exactly 0.7.
func NewDecimal(f float64) Decimal {
	d := new(apd.Decimal)
	if _, err := d.SetFloat64(f); err != nil {
		return decimalNaN()
	}
	return Decimal{d: d}
}

// ParseDecimal parses a decimal literal such as "0.7" or "1e-30".
func ParseDecimal(s string) (Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return Decimal{d: d}, nil
}

func decimalNaN() Decimal {
	return Decimal{d: &apd.Decimal{Form: apd.NaN}}
}

func (a Decimal) raw() *apd.Decimal {
	if a.d == nil {
		return apd.New(0, 0)
	}
	return a.d
}

// apply runs a context operation into a fresh result. Errors surface as NaN.
func apply(op func(ctx *apd.Context, d *apd.Decimal) (apd.Condition, error)) Decimal {
	d := new(apd.Decimal)
	if _, err := op(decimalContext(), d); err != nil {
		return decimalNaN()
	}
	return Decimal{d: d}
}

func (a Decimal) Add(b Decimal) Decimal {
	return apply(func(ctx *apd.Context, d *apd.Decimal) (apd.Condition, error) {
		return ctx.Add(d, a.raw(), b.raw())
	})
}

func (a Decimal) Sub(b Decimal) Decimal {
	return apply(func(ctx *apd.Context, d *apd.Decimal) (apd.Condition, error) {
		return ctx.Sub(d, a.raw(), b.raw())
	})
}

func (a Decimal) Mul(b Decimal) Decimal {
	return apply(func(ctx *apd.Context, d *apd.Decimal) (apd.Condition, error) {
		return ctx.Mul(d, a.raw(), b.raw())
	})
}

func (a Decimal) Neg() Decimal {
	return Decimal{d: new(apd.Decimal).Neg(a.raw())}
}

func (a Decimal) Pow(b Decimal) Decimal {
	return apply(func(ctx *apd.Context, d *apd.Decimal) (apd.Condition, error) {
		return ctx.Pow(d, a.raw(), b.raw())
	})
}

func (Decimal) Zero() Decimal { return Decimal{d: apd.New(0, 0)} }
func (Decimal) One() Decimal  { return Decimal{d: apd.New(1, 0)} }

func (Decimal) FromFloat(v float64) Decimal { return NewDecimal(v) }

func (a Decimal) Exp() Decimal {
	return apply(func(ctx *apd.Context, d *apd.Decimal) (apd.Condition, error) {
		return ctx.Exp(d, a.raw())
	})
}

func (a Decimal) Log() Decimal {
	return apply(func(ctx *apd.Context, d *apd.Decimal) (apd.Condition, error) {
		return ctx.Ln(d, a.raw())
	})
}

func (a Decimal) Sqrt() Decimal {
	return apply(func(ctx *apd.Context, d *apd.Decimal) (apd.Condition, error) {
		return ctx.Sqrt(d, a.raw())
	})
}

func (a Decimal) Abs() Decimal {
	return Decimal{d: new(apd.Decimal).Abs(a.raw())}
}

func (a Decimal) Sign() Decimal {
	x := a.raw()
	if x.Form == apd.NaN || x.Form == apd.NaNSignaling {
		return decimalNaN()
	}
	return Decimal{d: apd.New(int64(x.Sign()), 0)}
}

func (a Decimal) Less(b Decimal) bool {
	return a.raw().Cmp(b.raw()) < 0
}

func (a Decimal) Sin() Decimal { return a.trig(false) }
func (a Decimal) Cos() Decimal { return a.trig(true) }

// Float64 returns the nearest float64, or NaN for a NaN decimal.
func (a Decimal) Float64() float64 {
	x := a.raw()
	if x.Form == apd.NaN || x.Form == apd.NaNSignaling {
		return math.NaN()
	}
	f, err := x.Float64()
	if err != nil {
		return math.NaN()
	}
	return f
}

// String returns the decimal in scientific-or-plain notation chosen by apd.
func (a Decimal) String() string {
	return a.raw().String()
}

// IsNaN reports whether a is a NaN decimal.
func (a Decimal) IsNaN() bool {
	x := a.raw()
	return x.Form == apd.NaN || x.Form == apd.NaNSignaling
}
