package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented tree dump of the AST rooted at node to w.
func Fprint(w io.Writer, node Node) (err error) {
	p := printer{output: w}

	defer func() {
		if e := recover(); e != nil {
			err = e.(writeError).err
		}
	}()

	p.print(node, 0)
	p.write("\n")
	return
}

// String returns the source form of a rate expression.
func String(e Expr) string {
	var sb strings.Builder
	exprString(&sb, e)
	return sb.String()
}

type printer struct {
	output io.Writer
}

type writeError struct {
	err error
}

func (p *printer) write(s string) {
	if _, err := io.WriteString(p.output, s); err != nil {
		panic(writeError{err})
	}
}

func (p *printer) writef(format string, args ...interface{}) {
	p.write(fmt.Sprintf(format, args...))
}

func (p *printer) indent(depth int) {
	p.write(strings.Repeat("  ", depth))
}

func (p *printer) print(node Node, depth int) {
	switch n := node.(type) {
	case nil:
		p.write("<nil>")

	case *Unit:
		p.writef("Unit %q", n.Name)
		for _, line := range n.Lines {
			p.write("\n")
			p.indent(depth + 1)
			p.print(line, depth+1)
		}
		if len(n.Params) > 0 {
			p.write("\n")
			p.indent(depth + 1)
			names := make([]string, len(n.Params))
			for i, name := range n.Params {
				names[i] = name.Value
			}
			p.writef("Parameters %s", strings.Join(names, " "))
		}
		if n.Noise != nil {
			p.write("\n")
			p.indent(depth + 1)
			p.writef("Noise %s", n.Noise.Value)
		}

	case *ReactionLine:
		p.writef("Reaction %q", n.Glyph)
		p.write("\n")
		p.indent(depth + 1)
		p.writef("Rate %s", String(n.Rate))
		p.write("\n")
		p.indent(depth + 1)
		p.write("LHS ")
		p.print(n.LHS, depth+1)
		p.write("\n")
		p.indent(depth + 1)
		p.write("RHS ")
		p.print(n.RHS, depth+1)

	case *Side:
		if n.Tuple {
			p.write("Tuple")
			for _, list := range n.Lists {
				p.write("\n")
				p.indent(depth + 1)
				p.print(list, depth+1)
			}
		} else {
			p.print(n.Lists[0], depth)
		}

	case *TermList:
		parts := make([]string, len(n.Terms))
		for i, t := range n.Terms {
			parts[i] = termString(t)
		}
		p.write(strings.Join(parts, " + "))

	default:
		p.writef("<unexpected node %T>", n)
	}
}

func termString(t *Term) string {
	var atom string
	switch a := t.Atom.(type) {
	case *SpeciesRef:
		atom = a.Name
	case *NothingTerm:
		atom = "0"
	case *Group:
		parts := make([]string, len(a.List.Terms))
		for i, inner := range a.List.Terms {
			parts[i] = termString(inner)
		}
		atom = "(" + strings.Join(parts, " + ") + ")"
	}
	if t.HasCoeff {
		return fmt.Sprintf("%d*%s", t.Coeff, atom)
	}
	return atom
}

func exprString(sb *strings.Builder, e Expr) {
	switch x := e.(type) {
	case *Name:
		sb.WriteString(x.Value)
	case *Number:
		sb.WriteString(x.Value)
	case *Operation:
		if x.Y == nil {
			sb.WriteString(tokenNames[x.Op])
			exprString(sb, x.X)
			return
		}
		exprString(sb, x.X)
		sb.WriteString(tokenNames[x.Op])
		exprString(sb, x.Y)
	case *CallExpr:
		sb.WriteString(x.Fun.Value)
		sb.WriteString("(")
		for i, a := range x.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, a)
		}
		sb.WriteString(")")
	case *ParenExpr:
		sb.WriteString("(")
		exprString(sb, x.X)
		sb.WriteString(")")
	case *TupleExpr:
		sb.WriteString("(")
		for i, el := range x.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, el)
		}
		sb.WriteString(")")
	}
}
