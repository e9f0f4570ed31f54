package symbolic

import (
	"fmt"
	"math"
)

// Function describes a registered function: its arity, a numeric
// evaluator, and its partial derivatives.
type Function struct {
	Name  string
	Arity int

	// Eval computes the function numerically. It receives exactly
	// Arity arguments.
	Eval func(args []float64) (float64, error)

	// Partial returns the partial derivative of the function with
	// respect to its i-th argument, as an expression in the given
	// argument expressions. A nil Partial makes the function opaque
	// to differentiation.
	Partial func(args []Expr, i int) (Expr, error)
}

// Registry maps function names to their definitions.
type Registry struct {
	funcs map[string]Function
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: map[string]Function{}}
}

// Register adds or replaces a function definition.
func (r *Registry) Register(f Function) error {
	if f.Name == "" {
		return fmt.Errorf("symbolic: register: empty function name")
	}
	if f.Arity < 1 {
		return fmt.Errorf("symbolic: register %s: arity must be positive", f.Name)
	}
	r.funcs[f.Name] = f
	return nil
}

// Lookup returns the definition of the named function.
func (r *Registry) Lookup(name string) (Function, bool) {
	f, ok := r.funcs[name]
	return f, ok
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	for name, f := range r.funcs {
		c.funcs[name] = f
	}
	return c
}

// DefaultRegistry returns a registry with the standard function set:
// exp, ln, sin, cos, sqrt, the Michaelis-Menten form mm(X, v, K), and
// the Hill form hill(X, v, K, n).
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(Function{
		Name:  "exp",
		Arity: 1,
		Eval:  func(a []float64) (float64, error) { return math.Exp(a[0]), nil },
		Partial: func(args []Expr, i int) (Expr, error) {
			return CallOf("exp", args[0]), nil
		},
	})

	r.Register(Function{
		Name:  "ln",
		Arity: 1,
		Eval: func(a []float64) (float64, error) {
			if a[0] <= 0 {
				return 0, fmt.Errorf("ln of non-positive value %g", a[0])
			}
			return math.Log(a[0]), nil
		},
		Partial: func(args []Expr, i int) (Expr, error) {
			return PowOf(args[0], N(-1)), nil
		},
	})

	r.Register(Function{
		Name:  "sin",
		Arity: 1,
		Eval:  func(a []float64) (float64, error) { return math.Sin(a[0]), nil },
		Partial: func(args []Expr, i int) (Expr, error) {
			return CallOf("cos", args[0]), nil
		},
	})

	r.Register(Function{
		Name:  "cos",
		Arity: 1,
		Eval:  func(a []float64) (float64, error) { return math.Cos(a[0]), nil },
		Partial: func(args []Expr, i int) (Expr, error) {
			return NegOf(CallOf("sin", args[0])), nil
		},
	})

	r.Register(Function{
		Name:  "sqrt",
		Arity: 1,
		Eval: func(a []float64) (float64, error) {
			if a[0] < 0 {
				return 0, fmt.Errorf("sqrt of negative value %g", a[0])
			}
			return math.Sqrt(a[0]), nil
		},
		Partial: func(args []Expr, i int) (Expr, error) {
			return MulOf(F(1, 2), PowOf(args[0], F(-1, 2))), nil
		},
	})

	r.Register(Function{
		Name:  "mm",
		Arity: 3,
		Eval: func(a []float64) (float64, error) {
			x, v, k := a[0], a[1], a[2]
			return v * x / (x + k), nil
		},
		Partial: mmPartial,
	})

	r.Register(Function{
		Name:  "hill",
		Arity: 4,
		Eval: func(a []float64) (float64, error) {
			x, v, k, n := a[0], a[1], a[2], a[3]
			xn := math.Pow(x, n)
			return v * xn / (xn + math.Pow(k, n)), nil
		},
		Partial: hillPartial,
	})

	return r
}

// mm(X, v, K) = v*X/(X+K)
func mmPartial(args []Expr, i int) (Expr, error) {
	x, v, k := args[0], args[1], args[2]
	den := AddOf(x, k)
	switch i {
	case 0:
		return MulOf(v, k, PowOf(den, N(-2))), nil
	case 1:
		return MulOf(x, PowOf(den, N(-1))), nil
	case 2:
		return MulOf(N(-1), v, x, PowOf(den, N(-2))), nil
	}
	return nil, fmt.Errorf("mm: argument index %d out of range", i)
}

// hill(X, v, K, n) = v*X^n/(X^n+K^n)
func hillPartial(args []Expr, i int) (Expr, error) {
	x, v, k, n := args[0], args[1], args[2], args[3]
	xn := PowOf(x, n)
	kn := PowOf(k, n)
	den2 := PowOf(AddOf(xn, kn), N(-2))
	switch i {
	case 0:
		return MulOf(v, n, PowOf(x, SubOf(n, N(1))), kn, den2), nil
	case 1:
		return MulOf(xn, PowOf(AddOf(xn, kn), N(-1))), nil
	case 2:
		return MulOf(N(-1), v, xn, n, PowOf(k, SubOf(n, N(1))), den2), nil
	case 3:
		return MulOf(v, xn, kn, SubOf(CallOf("ln", x), CallOf("ln", k)), den2), nil
	}
	return nil, fmt.Errorf("hill: argument index %d out of range", i)
}
