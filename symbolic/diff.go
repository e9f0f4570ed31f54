package symbolic

import "fmt"

// UnknownFunctionError reports a call to a function that is not in the
// registry.
type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function %q", e.Name)
}

// DifferentiationError reports that an expression could not be
// differentiated.
type DifferentiationError struct {
	Name string // function involved, if any
	Msg  string
}

func (e *DifferentiationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("cannot differentiate %s: %s", e.Name, e.Msg)
	}
	return "cannot differentiate: " + e.Msg
}

// Diff returns the partial derivative of e with respect to the named
// symbol. Function calls are differentiated by the chain rule using
// the partial derivatives registered in reg.
func Diff(e Expr, name string, reg *Registry) (Expr, error) {
	switch x := e.(type) {
	case *Num:
		return N(0), nil

	case *Sym:
		if x.name == name {
			return N(1), nil
		}
		return N(0), nil

	case *Add:
		dts := make([]Expr, len(x.terms))
		for i, t := range x.terms {
			dt, err := Diff(t, name, reg)
			if err != nil {
				return nil, err
			}
			dts[i] = dt
		}
		return AddOf(dts...), nil

	case *Mul:
		// Product rule: sum over factors of dfi times the rest.
		terms := make([]Expr, len(x.factors))
		for i, fi := range x.factors {
			dfi, err := Diff(fi, name, reg)
			if err != nil {
				return nil, err
			}
			factors := make([]Expr, 0, len(x.factors))
			factors = append(factors, dfi)
			for j, fj := range x.factors {
				if j != i {
					factors = append(factors, fj)
				}
			}
			terms[i] = MulOf(factors...)
		}
		return AddOf(terms...), nil

	case *Pow:
		return diffPow(x, name, reg)

	case *Call:
		return diffCall(x, name, reg)
	}

	return nil, &DifferentiationError{Msg: fmt.Sprintf("unsupported expression %T", e)}
}

func diffPow(p *Pow, name string, reg *Registry) (Expr, error) {
	du, err := Diff(p.base, name, reg)
	if err != nil {
		return nil, err
	}
	dv, err := Diff(p.exp, name, reg)
	if err != nil {
		return nil, err
	}

	// u^c -> c*u^(c-1)*u' when the exponent does not depend on name.
	if isZero(dv) {
		return MulOf(p.exp, PowOf(p.base, SubOf(p.exp, N(1))), du), nil
	}
	// u constant in name: u^v -> u^v * ln(u) * v'.
	if isZero(du) {
		return MulOf(PowOf(p.base, p.exp), CallOf("ln", p.base), dv), nil
	}
	// General case: u^v * (v'*ln(u) + v*u'/u).
	return MulOf(
		PowOf(p.base, p.exp),
		AddOf(
			MulOf(dv, CallOf("ln", p.base)),
			MulOf(p.exp, du, PowOf(p.base, N(-1))),
		),
	), nil
}

func diffCall(c *Call, name string, reg *Registry) (Expr, error) {
	fn, ok := reg.Lookup(c.name)
	if !ok {
		return nil, &UnknownFunctionError{Name: c.name}
	}
	if len(c.args) != fn.Arity {
		return nil, &DifferentiationError{
			Name: c.name,
			Msg:  fmt.Sprintf("expects %d arguments, got %d", fn.Arity, len(c.args)),
		}
	}
	if fn.Partial == nil {
		return nil, &DifferentiationError{Name: c.name, Msg: "no derivative registered"}
	}

	// Chain rule over all arguments.
	var terms []Expr
	for i, arg := range c.args {
		da, err := Diff(arg, name, reg)
		if err != nil {
			return nil, err
		}
		if isZero(da) {
			continue
		}
		pd, err := fn.Partial(c.args, i)
		if err != nil {
			return nil, &DifferentiationError{Name: c.name, Msg: err.Error()}
		}
		terms = append(terms, MulOf(pd, da))
	}
	return AddOf(terms...), nil
}

func isZero(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.IsZero()
}
