package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are three classes of nodes: rate expressions (Expr), reactant
// term atoms (TermAtom), and the structural nodes of a compile unit.
// All nodes implement the Node interface.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all rate-expression nodes.
type Expr interface {
	Node
	aExpr()
}

// TermAtom is the interface for the payload of a reactant term:
// a species reference, the nothing sentinel, or a parenthesized group.
type TermAtom interface {
	Node
	aAtom()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// expr is embedded in all rate-expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// atom is embedded in all term-atom nodes.
type atom struct{ node }

func (*atom) aAtom() {}

// ----------------------------------------------------------------------------
// Compile unit

// Unit represents a complete compile unit: an optional network name,
// the reaction lines, and the trailing parameter/noise declarations.
type Unit struct {
	node
	Name   string          // custom network name ("" if none)
	Lines  []*ReactionLine // reaction statements in source order
	Params []*Name         // declared parameter identifiers
	Noise  *Name           // noise-scaling parameter (nil if none)
}

// ReactionLine represents one reaction statement:
// rate, substrates arrow products.
type ReactionLine struct {
	node
	Rate  Expr   // rate term (may be a TupleExpr)
	LHS   *Side  // substrate side
	Glyph string // arrow glyph as written
	Arrow Arrow  // classification of the glyph
	RHS   *Side  // product side
}

// Side represents one side of a reaction: a single term list, or a
// parenthesized tuple of term lists requesting expansion into multiple
// parallel reactions.
type Side struct {
	node
	Tuple bool        // whether the side was written as a tuple
	Lists []*TermList // exactly one list unless Tuple
}

// TermList is a +-separated list of reactant terms.
type TermList struct {
	node
	Terms []*Term
}

// Term is one reactant term: an optional positive integer
// stoichiometric coefficient applied to an atom.
type Term struct {
	node
	Coeff    uint64 // stoichiometric coefficient (valid if HasCoeff)
	HasCoeff bool
	Atom     TermAtom
}

// SpeciesRef is a bare identifier used as a reactant.
type SpeciesRef struct {
	atom
	Name string
}

// NothingTerm is the nothing sentinel (`0` or `∅`): no reactant.
type NothingTerm struct {
	atom
}

// Group is a parenthesized sub-list; a coefficient on the enclosing
// term distributes over every member independently.
type Group struct {
	atom
	List *TermList
}

// ----------------------------------------------------------------------------
// Rate expressions

// Name represents an identifier in a rate expression.
type Name struct {
	expr
	Value string
}

// Number represents a numeric literal. The text is kept verbatim so
// the compiler can convert it to an exact rational.
type Number struct {
	expr
	Value string
}

// Operation represents a unary or binary arithmetic operation.
// For unary operations (negation), Y is nil.
type Operation struct {
	expr
	Op Token // _Add, _Sub, _Mul, _Div, or _Pow
	X  Expr  // left operand (or only operand for unary)
	Y  Expr  // right operand (nil for unary)
}

// CallExpr represents a named function call: Fun(Args...).
type CallExpr struct {
	expr
	Fun  *Name
	Args []Expr
}

// ParenExpr represents a parenthesized expression: (X).
type ParenExpr struct {
	expr
	X Expr
}

// TupleExpr represents a parenthesized tuple of rate terms,
// used by combined lines and bidirectional rate pairs.
// Elements may themselves be tuples.
type TupleExpr struct {
	expr
	Elems []Expr
}

// Exported operator tokens for use by the compiler when lowering
// rate expressions.
const (
	OpAdd Token = _Add
	OpSub Token = _Sub
	OpMul Token = _Mul
	OpDiv Token = _Div
	OpPow Token = _Pow
)
