package symbolic

import "strings"

// Call applies a registered function to argument expressions. The call
// itself carries only the function name; arity checking, evaluation,
// and differentiation consult a Registry.
type Call struct {
	name string
	args []Expr
}

// CallOf returns a call of the named function with simplified arguments.
func CallOf(name string, args ...Expr) Expr {
	return (&Call{name: name, args: args}).Simplify()
}

// Name returns the called function's name.
func (c *Call) Name() string { return c.name }

// Args returns the argument expressions.
func (c *Call) Args() []Expr { return c.args }

func (c *Call) Simplify() Expr {
	args := make([]Expr, len(c.args))
	for i, a := range c.args {
		args[i] = a.Simplify()
	}
	return &Call{name: c.name, args: args}
}

func (c *Call) String() string {
	parts := make([]string, len(c.args))
	for i, a := range c.args {
		parts[i] = a.String()
	}
	return c.name + "(" + strings.Join(parts, ", ") + ")"
}

func (c *Call) Equal(other Expr) bool {
	o, ok := other.(*Call)
	if !ok || c.name != o.name || len(c.args) != len(o.args) {
		return false
	}
	for i := range c.args {
		if !c.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

func (c *Call) exprType() string { return "call" }
