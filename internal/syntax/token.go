// Package syntax implements lexical and syntactic analysis for the
// reaction network notation.
package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF   Token = iota // end of input
	_Error              // lexical error

	// Literals
	_Name    // identifier: X, k_on, mRNA
	_Number  // numeric literal: 2, 1.5, 2.5e-3
	_Nothing // empty-set glyph ∅

	// Operators
	_Add // +
	_Sub // -
	_Mul // *
	_Div // /
	_Pow // ^

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Comma  // ,
	_Semi   // ; or newline (statement terminator)

	// Reaction arrow (literal holds the glyph, classified by Classify)
	_Arrow

	tokenCount
)

// tokenNames maps tokens to their string representation.
var tokenNames = [...]string{
	_EOF:   "EOF",
	_Error: "ERROR",

	_Name:    "NAME",
	_Number:  "NUMBER",
	_Nothing: "∅",

	_Add: "+",
	_Sub: "-",
	_Mul: "*",
	_Div: "/",
	_Pow: "^",

	_Lparen: "(",
	_Rparen: ")",
	_Comma:  ",",
	_Semi:   ";",

	_Arrow: "ARROW",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Precedence returns the operator precedence for binary operators
// in rate expressions. Returns 0 for non-operators.
// Precedence levels (higher = binds tighter):
//
//	1: + -
//	2: * /
//	3: ^
func (t Token) Precedence() int {
	switch t {
	case _Add, _Sub:
		return 1
	case _Mul, _Div:
		return 2
	case _Pow:
		return 3
	}
	return 0
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// ----------------------------------------------------------------------------
// Arrow classification

// ArrowDir is the direction of a reaction arrow.
type ArrowDir uint8

const (
	Forward ArrowDir = iota
	Backward
	Bidirectional
)

// String returns the direction name.
func (d ArrowDir) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Bidirectional:
		return "bidirectional"
	}
	return fmt.Sprintf("ArrowDir(%d)", d)
}

// Arrow is the classification of one arrow glyph: its direction and
// whether the declared rate is subject to mass-action kinetics.
type Arrow struct {
	Dir        ArrowDir
	MassAction bool
}

// Swap reports whether substrates and products must be swapped to
// normalize the reaction to forward form. Backward arrows are purely
// notational sugar for the swapped forward reaction.
func (a Arrow) Swap() bool {
	return a.Dir == Backward
}

// arrows is the fixed table of every accepted arrow glyph.
// Filled glyphs denote mass-action kinetics; double-struck ("unfilled")
// glyphs pass the declared rate through as the full reaction rate.
var arrows = map[string]Arrow{
	// forward, mass action
	"-->": {Forward, true},
	">":   {Forward, true},
	"→":   {Forward, true},
	"↣":   {Forward, true},
	"↦":   {Forward, true},
	"⇾":   {Forward, true},
	"⟶":   {Forward, true},
	"⟼":   {Forward, true},
	"⥟":   {Forward, true},
	"⇀":   {Forward, true},
	"⇁":   {Forward, true},

	// backward, mass action
	"<--": {Backward, true},
	"<":   {Backward, true},
	"←":   {Backward, true},
	"↢":   {Backward, true},
	"↤":   {Backward, true},
	"⇽":   {Backward, true},
	"⟵":   {Backward, true},
	"⟻":   {Backward, true},
	"⥚":   {Backward, true},
	"↼":   {Backward, true},
	"↽":   {Backward, true},

	// bidirectional, mass action
	"<-->": {Bidirectional, true},
	"↔":    {Bidirectional, true},
	"⟷":    {Bidirectional, true},
	"⇄":    {Bidirectional, true},
	"⇆":    {Bidirectional, true},
	"⇌":    {Bidirectional, true},
	"⇋":    {Bidirectional, true},

	// forward, literal rate
	"=>": {Forward, false},
	"⇒":  {Forward, false},
	"⟾":  {Forward, false},

	// backward, literal rate
	"<=": {Backward, false},
	"⇐":  {Backward, false},
	"⟽":  {Backward, false},

	// bidirectional, literal rate
	"<=>": {Bidirectional, false},
	"⇔":   {Bidirectional, false},
	"⟺":   {Bidirectional, false},
}

// Classify returns the classification for an arrow glyph.
// The second result reports whether the glyph is in the accepted set.
func Classify(glyph string) (Arrow, bool) {
	a, ok := arrows[glyph]
	return a, ok
}

// isArrowRune reports whether r is one of the single-rune arrow glyphs.
func isArrowRune(r rune) bool {
	_, ok := arrows[string(r)]
	return ok && r >= 0x80 // ASCII '<' and '>' are handled by scanOperator
}
