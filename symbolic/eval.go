package symbolic

import (
	"fmt"
	"math"
)

// UnboundSymbolError reports a symbol with no value during numeric
// evaluation.
type UnboundSymbolError struct {
	Name string
}

func (e *UnboundSymbolError) Error() string {
	return fmt.Sprintf("unbound symbol %q", e.Name)
}

// EvalFloat evaluates e numerically with the given symbol values.
// Function calls are evaluated through reg.
func EvalFloat(e Expr, vars map[string]float64, reg *Registry) (float64, error) {
	switch x := e.(type) {
	case *Num:
		return x.Float64(), nil

	case *Sym:
		v, ok := vars[x.name]
		if !ok {
			return 0, &UnboundSymbolError{Name: x.name}
		}
		return v, nil

	case *Add:
		sum := 0.0
		for _, t := range x.terms {
			v, err := EvalFloat(t, vars, reg)
			if err != nil {
				return 0, err
			}
			sum += v
		}
		return sum, nil

	case *Mul:
		prod := 1.0
		for _, f := range x.factors {
			v, err := EvalFloat(f, vars, reg)
			if err != nil {
				return 0, err
			}
			prod *= v
		}
		return prod, nil

	case *Pow:
		b, err := EvalFloat(x.base, vars, reg)
		if err != nil {
			return 0, err
		}
		p, err := EvalFloat(x.exp, vars, reg)
		if err != nil {
			return 0, err
		}
		return math.Pow(b, p), nil

	case *Call:
		fn, ok := reg.Lookup(x.name)
		if !ok {
			return 0, &UnknownFunctionError{Name: x.name}
		}
		if len(x.args) != fn.Arity {
			return 0, fmt.Errorf("%s expects %d arguments, got %d", x.name, fn.Arity, len(x.args))
		}
		if fn.Eval == nil {
			return 0, fmt.Errorf("no numeric evaluator registered for %s", x.name)
		}
		args := make([]float64, len(x.args))
		for i, a := range x.args {
			v, err := EvalFloat(a, vars, reg)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		return fn.Eval(args)
	}

	return 0, fmt.Errorf("cannot evaluate expression %T", e)
}

// Substitute replaces every occurrence of the named symbol in e with
// value, resimplifying the result.
func Substitute(e Expr, name string, value Expr) Expr {
	switch x := e.(type) {
	case *Num:
		return x

	case *Sym:
		if x.name == name {
			return value
		}
		return x

	case *Add:
		terms := make([]Expr, len(x.terms))
		for i, t := range x.terms {
			terms[i] = Substitute(t, name, value)
		}
		return AddOf(terms...)

	case *Mul:
		factors := make([]Expr, len(x.factors))
		for i, f := range x.factors {
			factors[i] = Substitute(f, name, value)
		}
		return MulOf(factors...)

	case *Pow:
		return PowOf(Substitute(x.base, name, value), Substitute(x.exp, name, value))

	case *Call:
		args := make([]Expr, len(x.args))
		for i, a := range x.args {
			args[i] = Substitute(a, name, value)
		}
		return CallOf(x.name, args...)
	}

	return e
}
