package symbolic

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestNumString(t *testing.T) {
	tests := []struct {
		e    Expr
		want string
	}{
		{N(0), "0"},
		{N(42), "42"},
		{N(-3), "-3"},
		{F(1, 2), "1/2"},
		{F(4, 2), "2"},
	}
	for _, test := range tests {
		if got := test.e.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}

func TestParseNum(t *testing.T) {
	tests := []struct {
		lit  string
		want *Num
	}{
		{"2", N(2)},
		{"2.0", N(2)},
		{"0.5", F(1, 2)},
		{"1e3", N(1000)},
		{"2.5e-1", F(1, 4)},
	}
	for _, test := range tests {
		got, ok := ParseNum(test.lit)
		if !ok {
			t.Errorf("ParseNum(%q) failed", test.lit)
			continue
		}
		if !got.Equal(test.want) {
			t.Errorf("ParseNum(%q) = %s, want %s", test.lit, got, test.want)
		}
	}
	if _, ok := ParseNum("abc"); ok {
		t.Error("ParseNum accepted non-numeric text")
	}
}

func TestAddSimplify(t *testing.T) {
	tests := []struct {
		name string
		e    Expr
		want string
	}{
		{"fold numbers", AddOf(N(1), N(2), N(3)), "6"},
		{"collect symbols", AddOf(S("x"), S("x")), "2*x"},
		{"collect products", AddOf(MulOf(S("k"), S("x")), MulOf(S("k"), S("x"))), "2*k*x"},
		{"cancel", AddOf(S("x"), MulOf(N(-1), S("x"))), "0"},
		{"drop zero", AddOf(S("x"), N(0)), "x"},
		{"flatten", AddOf(S("x"), AddOf(S("y"), S("z"))), "x + y + z"},
		{"stable order", AddOf(S("z"), S("a"), S("m")), "a + m + z"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.e.String(); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestMulSimplify(t *testing.T) {
	tests := []struct {
		name string
		e    Expr
		want string
	}{
		{"fold numbers", MulOf(N(2), N(3)), "6"},
		{"zero annihilates", MulOf(N(0), S("x"), S("y")), "0"},
		{"drop one", MulOf(N(1), S("x")), "x"},
		{"coefficient first", MulOf(S("x"), N(3)), "3*x"},
		{"sorted factors", MulOf(S("z"), S("a")), "a*z"},
		{"merge powers", MulOf(S("x"), S("x")), "x^2"},
		{"cancel inverse", MulOf(S("x"), PowOf(S("x"), N(-1))), "1"},
		{"paren sums", MulOf(S("k"), AddOf(S("x"), S("y"))), "k*(x + y)"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.e.String(); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestPowSimplify(t *testing.T) {
	tests := []struct {
		name string
		e    Expr
		want string
	}{
		{"exp zero", PowOf(S("x"), N(0)), "1"},
		{"exp one", PowOf(S("x"), N(1)), "x"},
		{"numeric fold", PowOf(N(2), N(10)), "1024"},
		{"negative exponent", PowOf(N(2), N(-2)), "1/4"},
		{"nested", PowOf(PowOf(S("x"), N(2)), N(3)), "x^6"},
		{"negative exp parens", PowOf(S("x"), N(-1)), "x^(-1)"},
		{"fraction exp parens", SqrtOf(S("x")), "x^(1/2)"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.e.String(); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestDeterministicConstruction(t *testing.T) {
	a := MulOf(S("k1"), S("A"), S("B"))
	b := MulOf(S("B"), S("k1"), S("A"))
	if !a.Equal(b) {
		t.Errorf("different construction orders gave %q and %q", a, b)
	}
}

func TestDiffBasics(t *testing.T) {
	reg := DefaultRegistry()
	tests := []struct {
		name string
		e    Expr
		wrt  string
		want string
	}{
		{"constant", N(5), "x", "0"},
		{"self", S("x"), "x", "1"},
		{"other symbol", S("y"), "x", "0"},
		{"linear", MulOf(S("k"), S("x")), "x", "k"},
		{"sum", AddOf(S("x"), MulOf(S("k"), S("x"))), "x", "k + 1"},
		{"power rule", PowOf(S("x"), N(3)), "x", "3*x^2"},
		{"product rule", MulOf(S("x"), S("y")), "y", "x"},
		{"reciprocal", PowOf(S("x"), N(-1)), "x", "-1*x^(-2)"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Diff(test.e, test.wrt, reg)
			if err != nil {
				t.Fatalf("Diff: %v", err)
			}
			if got.String() != test.want {
				t.Errorf("d/d%s %q = %q, want %q", test.wrt, test.e, got, test.want)
			}
		})
	}
}

func TestDiffChainRule(t *testing.T) {
	reg := DefaultRegistry()

	// d/dx exp(2x) = 2*exp(2x)
	e := CallOf("exp", MulOf(N(2), S("x")))
	d, err := Diff(e, "x", reg)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	want := MulOf(N(2), CallOf("exp", MulOf(N(2), S("x"))))
	if !d.Equal(want) {
		t.Errorf("got %q, want %q", d, want)
	}

	// d/dx ln(x) = x^-1
	d, err = Diff(CallOf("ln", S("x")), "x", reg)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !d.Equal(PowOf(S("x"), N(-1))) {
		t.Errorf("d/dx ln(x) = %q, want x^(-1)", d)
	}
}

func TestDiffErrors(t *testing.T) {
	reg := DefaultRegistry()

	_, err := Diff(CallOf("nosuch", S("x")), "x", reg)
	var unknown *UnknownFunctionError
	if !errors.As(err, &unknown) || unknown.Name != "nosuch" {
		t.Errorf("got %v, want UnknownFunctionError for nosuch", err)
	}

	_, err = Diff(CallOf("mm", S("x")), "x", reg)
	var diffErr *DifferentiationError
	if !errors.As(err, &diffErr) {
		t.Errorf("got %v, want DifferentiationError for wrong arity", err)
	}

	reg.Register(Function{
		Name:  "opaque",
		Arity: 1,
		Eval:  func(a []float64) (float64, error) { return a[0], nil },
	})
	_, err = Diff(CallOf("opaque", S("x")), "x", reg)
	if !errors.As(err, &diffErr) {
		t.Errorf("got %v, want DifferentiationError for missing derivative", err)
	}
}

// numericalDiff estimates the partial derivative of e with respect to
// name by central difference.
func numericalDiff(t *testing.T, e Expr, name string, vars map[string]float64, reg *Registry) float64 {
	t.Helper()
	h := 1e-6
	up := map[string]float64{}
	dn := map[string]float64{}
	for k, v := range vars {
		up[k], dn[k] = v, v
	}
	up[name] += h
	dn[name] -= h
	fu, err := EvalFloat(e, up, reg)
	if err != nil {
		t.Fatalf("EvalFloat: %v", err)
	}
	fd, err := EvalFloat(e, dn, reg)
	if err != nil {
		t.Fatalf("EvalFloat: %v", err)
	}
	return (fu - fd) / (2 * h)
}

func TestRegisteredPartials(t *testing.T) {
	reg := DefaultRegistry()
	vars := map[string]float64{"X": 1.7, "v": 2.3, "K": 0.9, "n": 2.5}

	tests := []struct {
		name string
		e    Expr
		wrt  string
	}{
		{"mm dX", CallOf("mm", S("X"), S("v"), S("K")), "X"},
		{"mm dv", CallOf("mm", S("X"), S("v"), S("K")), "v"},
		{"mm dK", CallOf("mm", S("X"), S("v"), S("K")), "K"},
		{"hill dX", CallOf("hill", S("X"), S("v"), S("K"), S("n")), "X"},
		{"hill dv", CallOf("hill", S("X"), S("v"), S("K"), S("n")), "v"},
		{"hill dK", CallOf("hill", S("X"), S("v"), S("K"), S("n")), "K"},
		{"hill dn", CallOf("hill", S("X"), S("v"), S("K"), S("n")), "n"},
		{"exp", CallOf("exp", MulOf(S("K"), S("X"))), "X"},
		{"sin", CallOf("sin", S("X")), "X"},
		{"cos", CallOf("cos", S("X")), "X"},
		{"sqrt", CallOf("sqrt", S("X")), "X"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, err := Diff(test.e, test.wrt, reg)
			if err != nil {
				t.Fatalf("Diff: %v", err)
			}
			got, err := EvalFloat(d, vars, reg)
			if err != nil {
				t.Fatalf("EvalFloat: %v", err)
			}
			want := numericalDiff(t, test.e, test.wrt, vars, reg)
			if math.Abs(got-want) > 1e-5*(1+math.Abs(want)) {
				t.Errorf("symbolic %g, numeric %g", got, want)
			}
		})
	}
}

func TestEvalFloat(t *testing.T) {
	reg := DefaultRegistry()
	e := MulOf(S("k"), PowOf(S("X"), N(2)))
	got, err := EvalFloat(e, map[string]float64{"k": 3, "X": 2}, reg)
	if err != nil {
		t.Fatalf("EvalFloat: %v", err)
	}
	if got != 12 {
		t.Errorf("k*X^2 = %g, want 12", got)
	}

	_, err = EvalFloat(e, map[string]float64{"k": 3}, reg)
	var unbound *UnboundSymbolError
	if !errors.As(err, &unbound) || unbound.Name != "X" {
		t.Errorf("got %v, want UnboundSymbolError for X", err)
	}
}

func TestEvalFloatSymbolicOnlyFunction(t *testing.T) {
	reg := DefaultRegistry().Clone()
	reg.Register(Function{
		Name:    "f",
		Arity:   1,
		Partial: func(args []Expr, i int) (Expr, error) { return N(1), nil },
	})
	_, err := EvalFloat(CallOf("f", N(1)), nil, reg)
	if err == nil || !strings.Contains(err.Error(), "no numeric evaluator") {
		t.Errorf("got %v, want missing-evaluator error", err)
	}
}

func TestSubstitute(t *testing.T) {
	e := MulOf(S("k"), S("X"))
	got := Substitute(e, "X", N(0))
	if !got.Equal(N(0)) {
		t.Errorf("substituting X=0 gave %q, want 0", got)
	}

	got = Substitute(e, "k", AddOf(S("a"), S("b")))
	want := MulOf(AddOf(S("a"), S("b")), S("X"))
	if !got.Equal(want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFreeSymbols(t *testing.T) {
	e := AddOf(MulOf(S("k"), S("X")), CallOf("hill", S("Y"), S("v"), S("K"), N(2)))
	got := FreeSymbols(e)
	for _, name := range []string{"k", "X", "Y", "v", "K"} {
		if _, ok := got[name]; !ok {
			t.Errorf("missing free symbol %q", name)
		}
	}
	if _, ok := got["hill"]; ok {
		t.Error("function name reported as free symbol")
	}
	if len(got) != 5 {
		t.Errorf("got %d free symbols, want 5", len(got))
	}
}

func TestRegistryCloneIsolation(t *testing.T) {
	base := DefaultRegistry()
	clone := base.Clone()
	clone.Register(Function{
		Name:  "extra",
		Arity: 1,
		Eval:  func(a []float64) (float64, error) { return a[0], nil },
	})
	if _, ok := base.Lookup("extra"); ok {
		t.Error("registering in clone mutated the base registry")
	}
	if _, ok := clone.Lookup("hill"); !ok {
		t.Error("clone lost inherited function")
	}
}
