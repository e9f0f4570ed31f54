package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Scanner performs lexical analysis on reaction network notation.
type Scanner struct {
	source // embedded character reader

	// Current token info
	tok    Token  // token type
	lit    string // token literal (identifier, number text, arrow glyph)
	tokPos Pos    // token start position

	// Statement termination state: whether to insert a terminator
	// at the next newline or EOF.
	nlsemi bool

	// Literal accumulation
	litBuf strings.Builder
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for each lexical error; if nil, errors
// are silently ignored.
func NewScanner(filename string, src io.Reader, errh func(line, col uint32, msg string)) *Scanner {
	return &Scanner{source: *newSource(filename, src, errh)}
}

// Next advances to the next token.
func (s *Scanner) Next() {
	nlsemi := s.nlsemi
	s.nlsemi = false

redo:
	s.skipWhitespace()

	// Terminate the statement before a newline or EOF if the previous
	// token could end a reaction line.
	if nlsemi && (s.ch == '\n' || s.ch < 0) {
		s.tokPos = s.pos()
		s.tok = _Semi
		if s.ch == '\n' {
			s.lit = "newline"
			s.nextch()
		} else {
			s.lit = "EOF"
		}
		return
	}

	// Skip newlines when no terminator is pending.
	if s.ch == '\n' {
		s.nextch()
		goto redo
	}

	// Line comments run to end of line.
	if s.ch == '#' {
		for s.ch != '\n' && s.ch >= 0 {
			s.nextch()
		}
		goto redo
	}

	s.tokPos = s.pos()

	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber()

	case s.ch == '∅':
		s.tok = _Nothing
		s.lit = "∅"
		s.nextch()

	case isArrowRune(s.ch):
		s.tok = _Arrow
		s.lit = string(s.ch)
		s.nextch()

	default:
		if !s.scanOperator() {
			s.error(fmt.Sprintf("unexpected character %q", s.ch))
			s.nextch()
			goto redo
		}
	}

	s.nlsemi = s.shouldInsertSemi()
}

// Token returns the current token type.
func (s *Scanner) Token() Token {
	return s.tok
}

// Literal returns the current token's literal value.
func (s *Scanner) Literal() string {
	return s.lit
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

// skipWhitespace skips space, tab, and carriage return.
// Newline is handled separately because it terminates statements.
func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// shouldInsertSemi reports whether a statement terminator should be
// inserted after the current token when followed by a newline.
func (s *Scanner) shouldInsertSemi() bool {
	switch s.tok {
	case _Name, _Number, _Nothing, _Rparen:
		return true
	}
	return false
}

// scanIdent scans an identifier.
func (s *Scanner) scanIdent() {
	s.litBuf.Reset()
	s.litBuf.WriteRune(s.ch)
	s.nextch()

	for isLetter(s.ch) || isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}

	s.lit = s.litBuf.String()
	s.tok = _Name
}

// scanNumber scans a decimal number literal (integer or float, with an
// optional exponent).
func (s *Scanner) scanNumber() {
	s.litBuf.Reset()

	for isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}

	if s.ch == '.' {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
		for isDigit(s.ch) {
			s.litBuf.WriteRune(s.ch)
			s.nextch()
		}
	}

	if lower(s.ch) == 'e' {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
		if s.ch == '+' || s.ch == '-' {
			s.litBuf.WriteRune(s.ch)
			s.nextch()
		}
		if !isDigit(s.ch) {
			s.error("exponent has no digits")
		}
		for isDigit(s.ch) {
			s.litBuf.WriteRune(s.ch)
			s.nextch()
		}
	}

	s.lit = s.litBuf.String()
	s.tok = _Number
}

// scanOperator scans an operator, delimiter, or ASCII arrow.
// Returns false if the current character starts none of them.
func (s *Scanner) scanOperator() bool {
	ch := s.ch

	switch ch {
	case '+':
		s.nextch()
		s.tok = _Add
		s.lit = "+"
	case '*':
		s.nextch()
		s.tok = _Mul
		s.lit = "*"
	case '/':
		s.nextch()
		s.tok = _Div
		s.lit = "/"
	case '^':
		s.nextch()
		s.tok = _Pow
		s.lit = "^"
	case '(':
		s.nextch()
		s.tok = _Lparen
		s.lit = "("
	case ')':
		s.nextch()
		s.tok = _Rparen
		s.lit = ")"
	case ',':
		s.nextch()
		s.tok = _Comma
		s.lit = ","
	case ';':
		s.nextch()
		s.tok = _Semi
		s.lit = ";"

	case '-':
		// Either subtraction or the "-->" arrow.
		if s.peekch() == '-' {
			s.nextch() // first -
			s.nextch() // second -
			if s.ch != '>' {
				s.error("malformed arrow: expected '-->'")
				s.tok = _Error
				s.lit = "--"
				return true
			}
			s.nextch()
			s.tok = _Arrow
			s.lit = "-->"
			return true
		}
		s.nextch()
		s.tok = _Sub
		s.lit = "-"

	case '>':
		s.nextch()
		s.tok = _Arrow
		s.lit = ">"

	case '<':
		s.nextch()
		switch s.ch {
		case '-':
			// "<--" or "<-->"
			s.nextch()
			if s.ch != '-' {
				s.error("malformed arrow: expected '<--'")
				s.tok = _Error
				s.lit = "<-"
				return true
			}
			s.nextch()
			if s.ch == '>' {
				s.nextch()
				s.tok = _Arrow
				s.lit = "<-->"
			} else {
				s.tok = _Arrow
				s.lit = "<--"
			}
		case '=':
			// "<=" or "<=>"
			s.nextch()
			if s.ch == '>' {
				s.nextch()
				s.tok = _Arrow
				s.lit = "<=>"
			} else {
				s.tok = _Arrow
				s.lit = "<="
			}
		default:
			s.tok = _Arrow
			s.lit = "<"
		}

	case '=':
		s.nextch()
		if s.ch != '>' {
			s.error("malformed arrow: expected '=>'")
			s.tok = _Error
			s.lit = "="
			return true
		}
		s.nextch()
		s.tok = _Arrow
		s.lit = "=>"

	default:
		return false
	}

	return true
}
