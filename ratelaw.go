package crn

import (
	"fmt"
	"sort"

	"github.com/crnkit/crn/internal/syntax"
	"github.com/crnkit/crn/symbolic"
)

// lowerRate translates a rate syntax tree into a symbolic expression,
// checking every call against the function registry.
func lowerRate(e syntax.Expr, reg *symbolic.Registry) (symbolic.Expr, error) {
	switch x := e.(type) {
	case *syntax.Name:
		return symbolic.S(x.Value), nil

	case *syntax.Number:
		n, ok := symbolic.ParseNum(x.Value)
		if !ok {
			return nil, &ConfigurationError{Pos: x.Pos(), Msg: "malformed numeric literal " + x.Value}
		}
		return n, nil

	case *syntax.Operation:
		return lowerOperation(x, reg)

	case *syntax.CallExpr:
		fn, ok := reg.Lookup(x.Fun.Value)
		if !ok {
			return nil, fmt.Errorf("%s: %w", x.Pos(), &symbolic.UnknownFunctionError{Name: x.Fun.Value})
		}
		if len(x.Args) != fn.Arity {
			return nil, &ConfigurationError{
				Pos: x.Pos(),
				Msg: fmt.Sprintf("%s expects %d arguments, got %d", x.Fun.Value, fn.Arity, len(x.Args)),
			}
		}
		args := make([]symbolic.Expr, len(x.Args))
		for i, a := range x.Args {
			la, err := lowerRate(a, reg)
			if err != nil {
				return nil, err
			}
			args[i] = la
		}
		return symbolic.CallOf(x.Fun.Value, args...), nil

	case *syntax.ParenExpr:
		return lowerRate(x.X, reg)
	}

	return nil, &ConfigurationError{Pos: e.Pos(), Msg: "expected a scalar rate expression"}
}

func lowerOperation(op *syntax.Operation, reg *symbolic.Registry) (symbolic.Expr, error) {
	x, err := lowerRate(op.X, reg)
	if err != nil {
		return nil, err
	}
	if op.Y == nil {
		if op.Op != syntax.OpSub {
			return nil, &ConfigurationError{Pos: op.Pos(), Msg: "unsupported unary operator " + op.Op.String()}
		}
		return symbolic.NegOf(x), nil
	}
	y, err := lowerRate(op.Y, reg)
	if err != nil {
		return nil, err
	}
	switch op.Op {
	case syntax.OpAdd:
		return symbolic.AddOf(x, y), nil
	case syntax.OpSub:
		return symbolic.SubOf(x, y), nil
	case syntax.OpMul:
		return symbolic.MulOf(x, y), nil
	case syntax.OpDiv:
		return symbolic.DivOf(x, y), nil
	case syntax.OpPow:
		return symbolic.PowOf(x, y), nil
	}
	return nil, &ConfigurationError{Pos: op.Pos(), Msg: "unsupported operator " + op.Op.String()}
}

// continuousRate is the ODE/SDE form of a reaction's rate law. For a
// mass-action reaction with substrate stoichiometries n_i it is
// rate * prod_i X_i^n_i / n_i!; a literal-rate reaction contributes
// its declared rate unchanged.
func continuousRate(r Reaction, species []string) symbolic.Expr {
	if !r.MassAction {
		return r.Rate
	}
	factors := []symbolic.Expr{r.Rate}
	for _, idx := range sortedKeys(r.Substrates) {
		n := r.Substrates[idx]
		x := symbolic.S(species[idx])
		factors = append(factors, symbolic.PowOf(x, symbolic.N(int64(n))))
		factors = append(factors, invFactorial(n))
	}
	return symbolic.MulOf(factors...)
}

// discreteRate is the jump-propensity form: the falling-factorial
// product rate * prod_i X_i(X_i-1)...(X_i-n_i+1) / n_i!.
func discreteRate(r Reaction, species []string) symbolic.Expr {
	if !r.MassAction {
		return r.Rate
	}
	factors := []symbolic.Expr{r.Rate}
	for _, idx := range sortedKeys(r.Substrates) {
		n := r.Substrates[idx]
		x := symbolic.S(species[idx])
		for k := 0; k < n; k++ {
			factors = append(factors, symbolic.AddOf(x, symbolic.N(int64(-k))))
		}
		factors = append(factors, invFactorial(n))
	}
	return symbolic.MulOf(factors...)
}

// invFactorial returns 1/n! as an exact rational, built as a product
// of reciprocals so it never overflows machine integers.
func invFactorial(n int) symbolic.Expr {
	factors := make([]symbolic.Expr, 0, n)
	for k := int64(2); k <= int64(n); k++ {
		factors = append(factors, symbolic.F(1, k))
	}
	if len(factors) == 0 {
		return symbolic.N(1)
	}
	return symbolic.MulOf(factors...)
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
