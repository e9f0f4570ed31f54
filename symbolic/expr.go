// Package symbolic provides a small deterministic symbolic math kernel:
// exact rational constants, named symbols, sums, products, powers, and
// calls to registered functions. Expressions are immutable; constructors
// simplify eagerly so that structurally equal inputs produce identical
// trees with stable String output.
package symbolic

import (
	"math/big"
	"sort"
	"strings"
)

// Expr is a simplified, immutable symbolic expression.
type Expr interface {
	// Simplify returns a canonical form of the expression.
	// Expressions built through the package constructors are
	// already simplified.
	Simplify() Expr

	// String renders the expression in source form with stable
	// ordering, suitable for comparison and display.
	String() string

	// Equal reports structural equality with another expression.
	Equal(other Expr) bool

	exprType() string
}

// ----------------------------------------------------------------------------
// Num

// Num is an exact rational constant.
type Num struct{ val *big.Rat }

// N returns the integer constant n.
func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// F returns the exact fraction p/q.
func F(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: zero denominator")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// ParseNum converts decimal literal text such as "2", "0.5" or "1e-3"
// into an exact rational constant.
func ParseNum(lit string) (*Num, bool) {
	r, ok := new(big.Rat).SetString(lit)
	if !ok {
		return nil, false
	}
	return &Num{val: r}, true
}

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) exprType() string      { return "num" }

// Float64 returns the nearest float64 value.
func (n *Num) Float64() float64 { f, _ := n.val.Float64(); return f }

// Rat returns a copy of the exact rational value.
func (n *Num) Rat() *big.Rat { return new(big.Rat).Set(n.val) }

func (n *Num) IsZero() bool     { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool      { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsNegative() bool { return n.val.Sign() < 0 }
func (n *Num) IsInteger() bool  { return n.val.IsInt() }

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

var ratOne = new(big.Rat).SetInt64(1)

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("symbolic: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}

// ----------------------------------------------------------------------------
// Sym

// Sym is a named symbol: a species, a parameter, or a free variable.
type Sym struct{ name string }

// S returns the symbol with the given name.
func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Simplify() Expr        { return s }
func (s *Sym) String() string        { return s.name }
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.name == o.name }
func (s *Sym) exprType() string      { return "sym" }

// Name returns the symbol's name.
func (s *Sym) Name() string { return s.name }

// ----------------------------------------------------------------------------
// Add

// Add is a sum of terms.
type Add struct{ terms []Expr }

// AddOf returns the simplified sum of the given terms.
func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// Terms returns the term list of the sum.
func (a *Add) Terms() []Expr { return a.terms }

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	// Fold numeric terms and collect like terms by the string key of
	// the coefficient-stripped part, so k*X + k*X becomes 2*k*X.
	numAccum := N(0)
	coeffs := map[string]*Num{}
	parts := map[string]Expr{}
	var order []string
	for _, t := range flat {
		if v, ok := t.(*Num); ok {
			numAccum = numAdd(numAccum, v)
			continue
		}
		coeff, rest := splitCoeff(t)
		key := rest.String()
		if _, seen := coeffs[key]; !seen {
			order = append(order, key)
			coeffs[key] = N(0)
			parts[key] = rest
		}
		coeffs[key] = numAdd(coeffs[key], coeff)
	}

	sort.Strings(order)
	result := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		coeff := coeffs[key]
		switch {
		case coeff.IsZero():
			// canceled
		case coeff.IsOne():
			result = append(result, parts[key])
		default:
			result = append(result, MulOf(coeff, parts[key]))
		}
	}
	if !numAccum.IsZero() {
		result = append(result, numAccum)
	}

	switch len(result) {
	case 0:
		return N(0)
	case 1:
		return result[0]
	}
	return &Add{terms: result}
}

// splitCoeff splits a simplified term into its numeric coefficient and
// the remaining factor.
func splitCoeff(e Expr) (*Num, Expr) {
	m, ok := e.(*Mul)
	if !ok || len(m.factors) == 0 {
		return N(1), e
	}
	head, ok := m.factors[0].(*Num)
	if !ok {
		return N(1), e
	}
	rest := m.factors[1:]
	if len(rest) == 1 {
		return head, rest[0]
	}
	return head, &Mul{factors: rest}
}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) exprType() string { return "add" }

// ----------------------------------------------------------------------------
// Mul

// Mul is a product of factors. In simplified form the numeric
// coefficient, if any, is the first factor and the remaining factors
// are sorted by their string keys.
type Mul struct{ factors []Expr }

// MulOf returns the simplified product of the given factors.
func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// Factors returns the factor list of the product.
func (m *Mul) Factors() []Expr { return m.factors }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	coeff := N(1)
	others := make([]Expr, 0, len(flat))
	for _, f := range flat {
		if v, ok := f.(*Num); ok {
			coeff = numMul(coeff, v)
		} else {
			others = append(others, f)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}
	if len(others) == 0 {
		return coeff
	}

	// Merge repeated bases into powers: X*X -> X^2, X*X^-1 -> 1.
	others = mergePowers(others)
	if len(others) == 0 {
		return coeff
	}
	for _, f := range others {
		if _, ok := f.(*Mul); ok {
			// A merged power collapsed to a product; reflatten.
			return MulOf(append([]Expr{coeff}, others...)...)
		}
	}

	sort.Slice(others, func(i, j int) bool {
		return others[i].String() < others[j].String()
	})

	if coeff.IsOne() {
		if len(others) == 1 {
			return others[0]
		}
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{coeff}, others...)}
}

// mergePowers combines factors with equal bases, summing exponents.
func mergePowers(factors []Expr) []Expr {
	type entry struct {
		base Expr
		exp  []Expr
	}
	var entries []entry
	keys := map[string]int{}
	for _, f := range factors {
		base, exp := Expr(f), Expr(nil)
		if p, ok := f.(*Pow); ok {
			base, exp = p.base, p.exp
		}
		if exp == nil {
			exp = N(1)
		}
		key := base.String()
		i, seen := keys[key]
		if !seen {
			keys[key] = len(entries)
			entries = append(entries, entry{base: base})
			i = len(entries) - 1
		}
		entries[i].exp = append(entries[i].exp, exp)
	}

	out := make([]Expr, 0, len(entries))
	for _, e := range entries {
		if len(e.exp) == 1 {
			if n, ok := e.exp[0].(*Num); ok && n.IsOne() {
				out = append(out, e.base)
				continue
			}
			out = append(out, PowOf(e.base, e.exp[0]))
			continue
		}
		p := PowOf(e.base, AddOf(e.exp...))
		if n, ok := p.(*Num); ok && n.IsOne() {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) exprType() string { return "mul" }

// ----------------------------------------------------------------------------
// Pow

// Pow is base raised to an exponent.
type Pow struct{ base, exp Expr }

// PowOf returns the simplified power base^exp.
func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

// Base returns the base of the power.
func (p *Pow) Base() Expr { return p.base }

// Exp returns the exponent of the power.
func (p *Pow) Exp() Expr { return p.exp }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok {
		if en.IsZero() {
			return N(1)
		}
		if en.IsOne() {
			return base
		}
	}
	if bn, ok := base.(*Num); ok {
		if bn.IsZero() {
			// 0^negative is a division by zero; keep it unevaluated.
			if en, ok := exp.(*Num); ok && en.IsNegative() {
				return &Pow{base: base, exp: exp}
			}
			return N(0)
		}
		if bn.IsOne() {
			return N(1)
		}
		if en, ok := exp.(*Num); ok && en.IsInteger() {
			if e := en.val.Num().Int64(); e >= -16 && e <= 16 {
				return numIntPow(bn, e)
			}
		}
	}
	if inner, ok := base.(*Pow); ok {
		return PowOf(inner.base, MulOf(inner.exp, exp))
	}
	return &Pow{base: base, exp: exp}
}

func numIntPow(b *Num, e int64) *Num {
	neg := e < 0
	if neg {
		e = -e
	}
	r := N(1)
	for i := int64(0); i < e; i++ {
		r = numMul(r, b)
	}
	if neg {
		r = numRecip(r)
	}
	return r
}

func (p *Pow) String() string {
	baseStr := p.base.String()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "(" + baseStr + ")"
	}
	expStr := p.exp.String()
	switch x := p.exp.(type) {
	case *Add, *Mul, *Pow:
		expStr = "(" + expStr + ")"
	case *Num:
		if x.IsNegative() || !x.IsInteger() {
			expStr = "(" + expStr + ")"
		}
	}
	return baseStr + "^" + expStr
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) exprType() string { return "pow" }

// ----------------------------------------------------------------------------
// Convenience constructors

// SubOf returns a - b.
func SubOf(a, b Expr) Expr { return AddOf(a, MulOf(N(-1), b)) }

// DivOf returns a / b as a * b^-1.
func DivOf(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

// NegOf returns -a.
func NegOf(a Expr) Expr { return MulOf(N(-1), a) }

// SqrtOf returns the square root of a as a^(1/2).
func SqrtOf(a Expr) Expr { return PowOf(a, F(1, 2)) }

// FreeSymbols returns the set of symbol names occurring in e.
func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectSymbols(e, out)
	return out
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch x := e.(type) {
	case *Sym:
		out[x.name] = struct{}{}
	case *Add:
		for _, t := range x.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range x.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(x.base, out)
		collectSymbols(x.exp, out)
	case *Call:
		for _, a := range x.args {
			collectSymbols(a, out)
		}
	}
}
