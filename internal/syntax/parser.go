package syntax

import (
	"io"
	"strconv"
	"strings"
)

// Maximum number of errors before aborting parse.
const maxErrors = 10

// SyntaxError represents a syntax error in a network source.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Parser performs syntax analysis on reaction network notation.
type Parser struct {
	scanner *Scanner

	// Current token info (cached from scanner)
	tok Token
	lit string
	pos Pos

	// Error handling
	errh   func(pos Pos, msg string)
	errcnt int
	first  error // first error encountered
	abort  bool  // set when the error limit is reached
}

// NewParser creates a new Parser for the given source.
// Scanner errors are reported through the same error path as parse
// errors, so FirstError sees them too.
func NewParser(filename string, src io.Reader, errh func(pos Pos, msg string)) *Parser {
	p := &Parser{errh: errh}
	p.scanner = NewScanner(filename, src, func(line, col uint32, msg string) {
		p.syntaxErrorAt(NewPos(filename, line, col), msg)
	})
	p.next() // prime the parser with first token
	return p
}

// ----------------------------------------------------------------------------
// Token navigation

// next advances to the next token.
func (p *Parser) next() {
	p.scanner.Next()
	p.tok = p.scanner.Token()
	p.lit = p.scanner.Literal()
	p.pos = p.scanner.Pos()
}

// got reports whether the current token is tok.
// If so, it consumes the token and returns true.
func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it matches tok.
// Otherwise, reports an error.
func (p *Parser) want(tok Token) {
	if !p.got(tok) {
		p.syntaxError("expected " + tok.String())
		p.advance()
	}
}

// ----------------------------------------------------------------------------
// Error handling

// syntaxError reports a syntax error at the current position.
func (p *Parser) syntaxError(msg string) {
	p.syntaxErrorAt(p.pos, msg)
}

// syntaxErrorAt reports a syntax error at a specific position.
func (p *Parser) syntaxErrorAt(pos Pos, msg string) {
	if p.abort {
		return
	}
	if p.errcnt == 0 {
		p.first = &SyntaxError{Pos: pos, Msg: msg}
	}
	p.errcnt++

	if p.errh != nil {
		p.errh(pos, msg)
	}

	if p.errcnt >= maxErrors {
		p.abort = true
		if p.errh != nil {
			p.errh(pos, "too many errors; aborting parse")
		}
		p.tok = _EOF
	}
}

// advance skips tokens until the next statement terminator.
// This is used for error recovery.
func (p *Parser) advance() {
	for p.tok != _EOF && p.tok != _Semi {
		p.next()
	}
	if p.tok != _EOF {
		p.next()
	}
}

// Errors returns the number of errors encountered during parsing.
func (p *Parser) Errors() int {
	return p.errcnt
}

// FirstError returns the first error encountered, or nil if none.
func (p *Parser) FirstError() error {
	return p.first
}

// ----------------------------------------------------------------------------
// Parsing entry point

// Parse parses a complete compile unit and returns its AST.
func (p *Parser) Parse() *Unit {
	u := &Unit{}
	u.pos = p.pos

	for !p.abort && p.tok != _EOF {
		// Skip terminators between statements.
		for p.tok == _Semi {
			p.next()
		}
		if p.tok == _EOF {
			break
		}

		if p.tok == _Name {
			// "network", "parameters" and "noise" are contextual
			// keywords: they introduce directives only at the start
			// of a statement.
			switch p.lit {
			case "network":
				p.networkDirective(u)
				continue
			case "parameters":
				p.parametersDirective(u)
				continue
			case "noise":
				p.noiseDirective(u)
				continue
			}
		}

		if line := p.reactionLine(); line != nil {
			u.Lines = append(u.Lines, line)
		}
	}

	return u
}

// ----------------------------------------------------------------------------
// Directives

// networkDirective parses: network Name
func (p *Parser) networkDirective(u *Unit) {
	pos := p.pos
	p.next() // consume "network"

	if p.tok != _Name {
		p.syntaxError("expected network name")
		p.advance()
		return
	}
	if u.Name != "" {
		p.syntaxErrorAt(pos, "duplicate network directive")
	}
	if len(u.Lines) > 0 {
		p.syntaxErrorAt(pos, "network directive must precede reactions")
	}
	u.Name = p.lit
	p.next()
	p.want(_Semi)
}

// parametersDirective parses: parameters p1 [,] p2 [,] ...
func (p *Parser) parametersDirective(u *Unit) {
	p.next() // consume "parameters"

	if p.tok != _Name {
		p.syntaxError("expected parameter name")
		p.advance()
		return
	}
	for p.tok == _Name {
		u.Params = append(u.Params, p.name())
		if p.tok == _Comma {
			p.next()
		}
	}
	p.want(_Semi)
}

// noiseDirective parses: noise Name
func (p *Parser) noiseDirective(u *Unit) {
	pos := p.pos
	p.next() // consume "noise"

	if p.tok != _Name {
		p.syntaxError("expected noise parameter name")
		p.advance()
		return
	}
	if u.Noise != nil {
		p.syntaxErrorAt(pos, "duplicate noise directive")
	}
	u.Noise = p.name()
	p.want(_Semi)
}

// name parses an identifier and returns a Name node.
func (p *Parser) name() *Name {
	if p.tok != _Name {
		p.syntaxError("expected identifier")
		n := &Name{Value: "_"} // placeholder for error recovery
		n.pos = p.pos
		return n
	}
	n := &Name{Value: p.lit}
	n.pos = p.pos
	p.next()
	return n
}

// ----------------------------------------------------------------------------
// Reaction lines

// reactionLine parses: rateTerm , side arrow side
func (p *Parser) reactionLine() *ReactionLine {
	line := &ReactionLine{}
	line.pos = p.pos

	line.Rate = p.rateTerm()
	p.want(_Comma)
	line.LHS = p.side()

	if p.tok != _Arrow {
		p.syntaxError("expected reaction arrow")
		p.advance()
		return nil
	}
	arr, ok := Classify(p.lit)
	if !ok {
		p.syntaxError("unknown arrow " + strconv.Quote(p.lit))
		p.advance()
		return nil
	}
	line.Glyph = p.lit
	line.Arrow = arr
	p.next()

	line.RHS = p.side()
	p.want(_Semi)
	return line
}

// ----------------------------------------------------------------------------
// Rate terms

// rateTerm parses a rate term: a single expression, or a parenthesized
// tuple of rate terms (whose elements may themselves be tuples).
func (p *Parser) rateTerm() Expr {
	if p.tok != _Lparen {
		return p.expr()
	}

	pos := p.pos
	p.next()
	first := p.rateTerm()

	if p.tok == _Comma {
		t := &TupleExpr{Elems: []Expr{first}}
		t.pos = pos
		for p.got(_Comma) {
			t.Elems = append(t.Elems, p.rateTerm())
		}
		p.want(_Rparen)
		return t
	}

	p.want(_Rparen)
	if _, isTuple := first.(*TupleExpr); isTuple {
		return first
	}

	// Plain parenthesized expression: it may continue as the left
	// operand of a larger expression, e.g. (a+b)*c.
	paren := &ParenExpr{X: first}
	paren.pos = pos
	return p.binaryExprFrom(paren, 0)
}

// expr parses a rate expression.
func (p *Parser) expr() Expr {
	return p.binaryExpr(0)
}

// binaryExpr parses a binary expression with minimum precedence prec.
// Implements precedence climbing; ^ is right-associative.
func (p *Parser) binaryExpr(prec int) Expr {
	return p.binaryExprFrom(p.unaryExpr(), prec)
}

// binaryExprFrom continues precedence climbing with a given left operand.
func (p *Parser) binaryExprFrom(x Expr, prec int) Expr {
	for {
		oprec := p.tok.Precedence()
		if oprec <= prec {
			return x
		}

		op := &Operation{Op: p.tok, X: x}
		op.pos = x.Pos()
		p.next()

		if op.Op == _Pow {
			op.Y = p.binaryExpr(oprec - 1) // right associative
		} else {
			op.Y = p.binaryExpr(oprec)
		}
		x = op
	}
}

// unaryExpr parses a unary expression (negation) or a primary.
func (p *Parser) unaryExpr() Expr {
	if p.tok == _Sub {
		op := &Operation{Op: _Sub}
		op.pos = p.pos
		p.next()
		// Negation binds below ^ so -X^2 means -(X^2).
		op.X = p.binaryExpr(_Pow.Precedence() - 1)
		return op
	}
	return p.primaryExpr()
}

// primaryExpr parses an operand: a number, an identifier or call,
// or a parenthesized expression.
func (p *Parser) primaryExpr() Expr {
	switch p.tok {
	case _Number:
		n := &Number{Value: p.lit}
		n.pos = p.pos
		p.next()
		return n

	case _Name:
		name := &Name{Value: p.lit}
		name.pos = p.pos
		p.next()
		if p.tok == _Lparen {
			return p.callExpr(name)
		}
		return name

	case _Lparen:
		pos := p.pos
		p.next()
		x := p.expr()
		p.want(_Rparen)
		paren := &ParenExpr{X: x}
		paren.pos = pos
		return paren

	default:
		p.syntaxError("expected rate expression")
		n := &Name{Value: "_"} // error recovery
		n.pos = p.pos
		return n
	}
}

// callExpr parses Fun(args...).
func (p *Parser) callExpr(fun *Name) Expr {
	call := &CallExpr{Fun: fun}
	call.pos = fun.Pos()

	p.want(_Lparen)
	if p.tok != _Rparen {
		call.Args = append(call.Args, p.expr())
		for p.got(_Comma) {
			call.Args = append(call.Args, p.expr())
		}
	}
	p.want(_Rparen)

	return call
}

// ----------------------------------------------------------------------------
// Reaction sides

// side parses one side of a reaction: a tuple of term lists, or a
// single term list. A leading parenthesis is ambiguous between the two
// and between a coefficient-1 group; the first top-level comma commits
// to a tuple.
func (p *Parser) side() *Side {
	s := &Side{}
	s.pos = p.pos

	if p.tok == _Lparen {
		pos := p.pos
		p.next()
		first := p.termList()

		if p.tok == _Comma {
			s.Tuple = true
			s.Lists = append(s.Lists, first)
			for p.got(_Comma) {
				s.Lists = append(s.Lists, p.termList())
			}
			p.want(_Rparen)
			for _, list := range s.Lists {
				p.checkNothing(list)
			}
			return s
		}

		p.want(_Rparen)

		// Parenthesized group as the first term (coefficient 1);
		// the term list may continue with +.
		p.checkGroupList(first)
		g := &Group{List: first}
		g.pos = pos
		t := &Term{Atom: g}
		t.pos = pos
		list := &TermList{Terms: []*Term{t}}
		list.pos = pos
		for p.got(_Add) {
			list.Terms = append(list.Terms, p.term())
		}
		p.checkNothing(list)
		s.Lists = []*TermList{list}
		return s
	}

	list := p.termList()
	p.checkNothing(list)
	s.Lists = []*TermList{list}
	return s
}

// termList parses: term { + term }
func (p *Parser) termList() *TermList {
	list := &TermList{}
	list.pos = p.pos

	list.Terms = append(list.Terms, p.term())
	for p.got(_Add) {
		list.Terms = append(list.Terms, p.term())
	}

	return list
}

// checkNothing rejects the nothing sentinel combined with other terms;
// it may only stand as the entire term list. Group bodies are checked
// by checkGroupList instead.
func (p *Parser) checkNothing(list *TermList) {
	if len(list.Terms) < 2 {
		return
	}
	for _, t := range list.Terms {
		if _, isNothing := t.Atom.(*NothingTerm); isNothing {
			p.syntaxErrorAt(t.Pos(), "nothing sentinel cannot be combined with +")
		}
	}
}

// term parses: [ coefficient [*] ] atom
func (p *Parser) term() *Term {
	t := &Term{}
	t.pos = p.pos

	if p.tok == _Number {
		lit := p.lit
		litPos := p.pos
		p.next()

		// Optional explicit * between coefficient and atom.
		star := p.got(_Mul)

		if p.tok == _Name || p.tok == _Nothing || p.tok == _Lparen {
			n, err := strconv.ParseUint(lit, 10, 32)
			if err != nil || strings.ContainsAny(lit, ".eE") {
				p.syntaxErrorAt(litPos, "stoichiometric coefficient must be a positive integer, got "+strconv.Quote(lit))
				n = 1
			}
			t.Coeff = n
			t.HasCoeff = true
			t.Atom = p.atomNode()
			if _, isNothing := t.Atom.(*NothingTerm); isNothing {
				p.syntaxErrorAt(litPos, "nothing sentinel cannot take a coefficient")
			}
			return t
		}

		if star {
			p.syntaxError("expected species after coefficient")
		}

		// A bare 0 is the nothing sentinel.
		if lit == "0" {
			n := &NothingTerm{}
			n.pos = litPos
			t.Atom = n
			return t
		}

		p.syntaxErrorAt(litPos, "unexpected number "+strconv.Quote(lit)+" in reactant list")
		n := &NothingTerm{} // error recovery
		n.pos = litPos
		t.Atom = n
		return t
	}

	t.Atom = p.atomNode()
	return t
}

// atomNode parses a species reference, the nothing sentinel, or a
// parenthesized group.
func (p *Parser) atomNode() TermAtom {
	switch p.tok {
	case _Name:
		a := &SpeciesRef{Name: p.lit}
		a.pos = p.pos
		p.next()
		return a

	case _Nothing:
		a := &NothingTerm{}
		a.pos = p.pos
		p.next()
		return a

	case _Lparen:
		pos := p.pos
		p.next()
		list := p.termList()
		p.want(_Rparen)
		p.checkGroupList(list)
		g := &Group{List: list}
		g.pos = pos
		return g

	default:
		p.syntaxError("expected species, group, or nothing sentinel")
		a := &NothingTerm{} // error recovery
		a.pos = p.pos
		return a
	}
}

// checkGroupList rejects the nothing sentinel inside a parenthesized
// group; distributing a coefficient over nothing is not meaningful.
func (p *Parser) checkGroupList(list *TermList) {
	for _, t := range list.Terms {
		if _, isNothing := t.Atom.(*NothingTerm); isNothing {
			p.syntaxErrorAt(t.Pos(), "nothing sentinel not allowed inside a group")
		}
	}
}
