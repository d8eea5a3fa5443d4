// Package symbolic provides a small exact symbolic-expression scalar.
//
// Expr satisfies scalar.Analytic[Expr], so it can be plugged behind dual
// numbers to see the derivative a rule produces as a formula instead of a
// number. Constants are exact rationals (math/big.Rat); elementary functions
// of constants stay unevaluated. Simplification is limited to constant
// folding and the 0/1 identities; there is no symbolic differentiation here.
//
// Expr does not implement an order, so branch functions such as step and
// relu do not accept it.
package symbolic

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Expr is an immutable expression tree. The zero value is the constant 0.
type Expr struct {
	n node
}

type node interface {
	eval(env map[string]float64) (float64, error)
	str() string
}

type (
	num struct {
		r *big.Rat // nil when the constant is not finite
		f float64
	}
	sym struct{ name string }
	sum struct{ terms []node }
	prod struct{ factors []node }
	power struct{ base, exp node }
	call struct {
		name string
		arg  node
	}
)

// Var returns the symbol with the given name.
func Var(name string) Expr { return Expr{n: sym{name: name}} }

// Int returns the exact integer constant v.
func Int(v int64) Expr { return Expr{n: ratNum(new(big.Rat).SetInt64(v))} }

// Rat returns the exact rational constant p/q.
func Rat(p, q int64) Expr { return Expr{n: ratNum(big.NewRat(p, q))} }

// Const converts a float64 exactly (as a binary fraction) into a constant.
// NaN and infinities are kept as inexact constants.
func Const(v float64) Expr {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Expr{n: num{f: v}}
	}
	return Expr{n: ratNum(new(big.Rat).SetFloat64(v))}
}

func ratNum(r *big.Rat) num {
	f, _ := r.Float64()
	return num{r: r, f: f}
}

func (e Expr) root() node {
	if e.n == nil {
		return ratNum(new(big.Rat))
	}
	return e.n
}

// Eval evaluates e in float64 with the given symbol binding.
func (e Expr) Eval(env map[string]float64) (float64, error) {
	return e.root().eval(env)
}

// String renders e deterministically.
func (e Expr) String() string { return e.root().str() }

// IsConst reports whether e is a constant, and returns its exact value.
func (e Expr) IsConst() (*big.Rat, bool) {
	c, ok := e.root().(num)
	if !ok || c.r == nil {
		return nil, false
	}
	return new(big.Rat).Set(c.r), true
}

func asNum(n node) (num, bool) {
	c, ok := n.(num)
	return c, ok && c.r != nil
}

func isInt(n node, v int64) bool {
	c, ok := asNum(n)
	return ok && c.r.IsInt() && c.r.Num().IsInt64() && c.r.Num().Int64() == v
}

func (a Expr) Add(b Expr) Expr { return Expr{n: makeSum(a.root(), b.root())} }
func (a Expr) Sub(b Expr) Expr { return Expr{n: makeSum(a.root(), makeProd(ratNum(big.NewRat(-1, 1)), b.root()))} }
func (a Expr) Mul(b Expr) Expr { return Expr{n: makeProd(a.root(), b.root())} }
func (a Expr) Neg() Expr       { return Expr{n: makeProd(ratNum(big.NewRat(-1, 1)), a.root())} }
func (a Expr) Pow(b Expr) Expr { return Expr{n: makePow(a.root(), b.root())} }

func (Expr) Zero() Expr                 { return Int(0) }
func (Expr) One() Expr                  { return Int(1) }
func (Expr) FromFloat(v float64) Expr   { return Const(v) }
func (a Expr) Sin() Expr                { return Expr{n: makeCall("sin", a.root())} }
func (a Expr) Cos() Expr                { return Expr{n: makeCall("cos", a.root())} }
func (a Expr) Exp() Expr                { return Expr{n: makeCall("exp", a.root())} }
func (a Expr) Log() Expr                { return Expr{n: makeCall("log", a.root())} }
func (a Expr) Abs() Expr                { return Expr{n: makeCall("abs", a.root())} }
func (a Expr) Sign() Expr               { return Expr{n: makeCall("sign", a.root())} }
func (a Expr) Sqrt() Expr               { return Expr{n: makePow(a.root(), ratNum(big.NewRat(1, 2)))} }

func makeSum(terms ...node) node {
	acc := new(big.Rat)
	var out []node
	for i := 0; i < len(terms); i++ {
		t := terms[i]
		if s, ok := t.(sum); ok {
			terms = append(terms, s.terms...)
			continue
		}
		if c, ok := asNum(t); ok {
			acc.Add(acc, c.r)
			continue
		}
		out = append(out, t)
	}
	if acc.Sign() != 0 || len(out) == 0 {
		out = append(out, ratNum(acc))
	}
	if len(out) == 1 {
		return out[0]
	}
	return sum{terms: out}
}

func makeProd(factors ...node) node {
	acc := big.NewRat(1, 1)
	var out []node
	for i := 0; i < len(factors); i++ {
		f := factors[i]
		if p, ok := f.(prod); ok {
			factors = append(factors, p.factors...)
			continue
		}
		if c, ok := asNum(f); ok {
			acc.Mul(acc, c.r)
			continue
		}
		out = append(out, f)
	}
	if acc.Sign() == 0 {
		return ratNum(acc)
	}
	if acc.Cmp(big.NewRat(1, 1)) != 0 || len(out) == 0 {
		out = append([]node{ratNum(acc)}, out...)
	}
	if len(out) == 1 {
		return out[0]
	}
	return prod{factors: out}
}

// maxFoldExponent bounds exact folding of c^k for integer k.
const maxFoldExponent = 64

func makePow(base, exp node) node {
	switch {
	case isInt(exp, 0):
		return ratNum(big.NewRat(1, 1))
	case isInt(exp, 1):
		return base
	case isInt(base, 1):
		return base
	}
	b, bok := asNum(base)
	e, eok := asNum(exp)
	if bok && eok && e.r.IsInt() && e.r.Num().IsInt64() {
		k := e.r.Num().Int64()
		if k < 0 && b.r.Sign() == 0 {
			return power{base: base, exp: exp}
		}
		if k >= -maxFoldExponent && k <= maxFoldExponent {
			return ratNum(ratPow(b.r, k))
		}
	}
	return power{base: base, exp: exp}
}

func ratPow(r *big.Rat, k int64) *big.Rat {
	neg := k < 0
	if neg {
		k = -k
	}
	n := new(big.Int).Exp(r.Num(), big.NewInt(k), nil)
	d := new(big.Int).Exp(r.Denom(), big.NewInt(k), nil)
	if neg {
		n, d = d, n
	}
	return new(big.Rat).SetFrac(n, d)
}

func makeCall(name string, arg node) node {
	if c, ok := asNum(arg); ok {
		switch name {
		case "abs":
			return ratNum(new(big.Rat).Abs(c.r))
		case "sign":
			return ratNum(big.NewRat(int64(c.r.Sign()), 1))
		}
		if c.r.Sign() == 0 {
			switch name {
			case "sin":
				return ratNum(new(big.Rat))
			case "cos", "exp":
				return ratNum(big.NewRat(1, 1))
			}
		}
		if name == "log" && isInt(arg, 1) {
			return ratNum(new(big.Rat))
		}
	}
	return call{name: name, arg: arg}
}

var elementary = map[string]func(float64) float64{
	"sin": math.Sin,
	"cos": math.Cos,
	"exp": math.Exp,
	"log": math.Log,
	"abs": math.Abs,
	"sign": func(v float64) float64 {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		}
		return v
	},
}

func (c num) eval(map[string]float64) (float64, error) { return c.f, nil }

func (s sym) eval(env map[string]float64) (float64, error) {
	v, ok := env[s.name]
	if !ok {
		return 0, fmt.Errorf("symbolic: unbound symbol %q", s.name)
	}
	return v, nil
}

func (s sum) eval(env map[string]float64) (float64, error) {
	var acc float64
	for _, t := range s.terms {
		v, err := t.eval(env)
		if err != nil {
			return 0, err
		}
		acc += v
	}
	return acc, nil
}

func (p prod) eval(env map[string]float64) (float64, error) {
	acc := 1.0
	for _, f := range p.factors {
		v, err := f.eval(env)
		if err != nil {
			return 0, err
		}
		acc *= v
	}
	return acc, nil
}

func (p power) eval(env map[string]float64) (float64, error) {
	b, err := p.base.eval(env)
	if err != nil {
		return 0, err
	}
	e, err := p.exp.eval(env)
	if err != nil {
		return 0, err
	}
	return math.Pow(b, e), nil
}

func (c call) eval(env map[string]float64) (float64, error) {
	v, err := c.arg.eval(env)
	if err != nil {
		return 0, err
	}
	return elementary[c.name](v), nil
}

func (c num) str() string {
	if c.r == nil {
		return fmt.Sprint(c.f)
	}
	return c.r.RatString()
}

func (s sym) str() string { return s.name }

func (s sum) str() string {
	parts := make([]string, len(s.terms))
	for i, t := range s.terms {
		parts[i] = t.str()
	}
	return "(" + strings.Join(parts, " + ") + ")"
}

func (p prod) str() string {
	parts := make([]string, len(p.factors))
	for i, f := range p.factors {
		parts[i] = f.str()
	}
	return strings.Join(parts, "*")
}

func (p power) str() string {
	return wrap(p.base) + "^" + wrap(p.exp)
}

func (c call) str() string { return c.name + "(" + c.arg.str() + ")" }

func wrap(n node) string {
	switch v := n.(type) {
	case prod, power:
		return "(" + v.str() + ")"
	case num:
		if v.r != nil && (!v.r.IsInt() || v.r.Sign() < 0) {
			return "(" + v.str() + ")"
		}
	}
	return n.str()
}
