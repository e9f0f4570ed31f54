package syntax

import "fmt"

// Pos locates a token or node within a reaction listing. The zero
// value is invalid.
type Pos struct {
	filename string // listing name, may be empty
	line     uint32 // 1-based
	col      uint32 // 1-based, counted in runes
}

// NewPos creates a Pos with 1-based line and column numbers.
func NewPos(filename string, line, col uint32) Pos {
	return Pos{filename: filename, line: line, col: col}
}

// String renders "filename:line:col", dropping the filename when it
// is empty.
func (p Pos) String() string {
	if p.filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
	}
	return fmt.Sprintf("%d:%d", p.line, p.col)
}

// IsValid reports whether p refers to an actual line.
func (p Pos) IsValid() bool {
	return p.line > 0
}

func (p Pos) Line() uint32 { return p.line }

func (p Pos) Col() uint32 { return p.col }

func (p Pos) Filename() string { return p.filename }
