package syntax

import (
	"strings"
	"testing"
)

type tokInfo struct {
	tok Token
	lit string
}

func scanAll(t *testing.T, src string) []tokInfo {
	t.Helper()
	var toks []tokInfo
	s := NewScanner("scan_test", strings.NewReader(src), func(line, col uint32, msg string) {
		t.Fatalf("scan error at %d:%d: %s", line, col, msg)
	})
	for {
		s.Next()
		if s.Token() == _EOF {
			break
		}
		toks = append(toks, tokInfo{s.Token(), s.Literal()})
	}
	return toks
}

func TestScanBasic(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []tokInfo
	}{
		{
			"reaction line",
			"1.0, X --> Y",
			[]tokInfo{
				{_Number, "1.0"},
				{_Comma, ","},
				{_Name, "X"},
				{_Arrow, "-->"},
				{_Name, "Y"},
			},
		},
		{
			"coefficients and plus",
			"k1, 2*A + B > C",
			[]tokInfo{
				{_Name, "k1"},
				{_Comma, ","},
				{_Number, "2"},
				{_Mul, "*"},
				{_Name, "A"},
				{_Add, "+"},
				{_Name, "B"},
				{_Arrow, ">"},
				{_Name, "C"},
			},
		},
		{
			"rate expression operators",
			"v*X^2/(K+X)",
			[]tokInfo{
				{_Name, "v"},
				{_Mul, "*"},
				{_Name, "X"},
				{_Pow, "^"},
				{_Number, "2"},
				{_Div, "/"},
				{_Lparen, "("},
				{_Name, "K"},
				{_Add, "+"},
				{_Name, "X"},
				{_Rparen, ")"},
			},
		},
		{
			"nothing sentinel",
			"d, X --> ∅",
			[]tokInfo{
				{_Name, "d"},
				{_Comma, ","},
				{_Name, "X"},
				{_Arrow, "-->"},
				{_Nothing, "∅"},
			},
		},
		{
			"numbers",
			"1 2.5 1e3 2.5e-4 1E+2",
			[]tokInfo{
				{_Number, "1"},
				{_Number, "2.5"},
				{_Number, "1e3"},
				{_Number, "2.5e-4"},
				{_Number, "1E+2"},
			},
		},
		{
			"minus is not an arrow",
			"k1-k2",
			[]tokInfo{
				{_Name, "k1"},
				{_Sub, "-"},
				{_Name, "k2"},
			},
		},
		{
			"comment to end of line",
			"k1 # trailing --> ignored",
			[]tokInfo{
				{_Name, "k1"},
				{_Semi, "EOF"},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := scanAll(t, test.src)
			// Trailing semicolons from line termination are not part of
			// the expectation unless listed.
			for len(got) > len(test.want) && got[len(got)-1].tok == _Semi {
				got = got[:len(got)-1]
			}
			if len(got) != len(test.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(got), len(test.want), got)
			}
			for i, w := range test.want {
				if got[i] != w {
					t.Errorf("token %d: got {%s %q}, want {%s %q}", i, got[i].tok, got[i].lit, w.tok, w.lit)
				}
			}
		})
	}
}

func TestScanArrows(t *testing.T) {
	for glyph, want := range arrows {
		t.Run(glyph, func(t *testing.T) {
			toks := scanAll(t, "A "+glyph+" B")
			if len(toks) < 3 {
				t.Fatalf("got %d tokens, want at least 3", len(toks))
			}
			if toks[1].tok != _Arrow || toks[1].lit != glyph {
				t.Fatalf("middle token: got {%s %q}, want arrow %q", toks[1].tok, toks[1].lit, glyph)
			}
			arrow, ok := Classify(toks[1].lit)
			if !ok {
				t.Fatalf("Classify(%q) failed", toks[1].lit)
			}
			if arrow != want {
				t.Errorf("Classify(%q) = %+v, want %+v", glyph, arrow, want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		glyph      string
		dir        ArrowDir
		massAction bool
	}{
		{"-->", Forward, true},
		{">", Forward, true},
		{"→", Forward, true},
		{"↦", Forward, true},
		{"<--", Backward, true},
		{"<", Backward, true},
		{"←", Backward, true},
		{"<-->", Bidirectional, true},
		{"↔", Bidirectional, true},
		{"⇌", Bidirectional, true},
		{"=>", Forward, false},
		{"⇒", Forward, false},
		{"⟾", Forward, false},
		{"<=", Backward, false},
		{"⇐", Backward, false},
		{"<=>", Bidirectional, false},
		{"⇔", Bidirectional, false},
		{"⟺", Bidirectional, false},
	}

	for _, test := range tests {
		t.Run(test.glyph, func(t *testing.T) {
			arrow, ok := Classify(test.glyph)
			if !ok {
				t.Fatalf("Classify(%q) failed", test.glyph)
			}
			if arrow.Dir != test.dir || arrow.MassAction != test.massAction {
				t.Errorf("Classify(%q) = %+v, want dir=%v massAction=%v",
					test.glyph, arrow, test.dir, test.massAction)
			}
		})
	}

	if _, ok := Classify("==>"); ok {
		t.Error("Classify accepted unknown glyph")
	}
}

func TestScanSemiInsertion(t *testing.T) {
	tests := []struct {
		name string
		src  string
		semi bool
	}{
		{"after name", "X\nY", true},
		{"after number", "1.0\n2.0", true},
		{"after rparen", "(X)\nY", true},
		{"after nothing", "∅\nX", true},
		{"after plus", "X +\nY", false},
		{"after comma", "k1,\nX", false},
		{"after arrow", "X -->\nY", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			toks := scanAll(t, test.src)
			sawSemi := false
			for _, tk := range toks[:len(toks)-1] {
				if tk.tok == _Semi && tk.lit == "newline" {
					sawSemi = true
				}
			}
			if sawSemi != test.semi {
				t.Errorf("semicolon insertion = %v, want %v (tokens %v)", sawSemi, test.semi, toks)
			}
		})
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"lone equals", "k = 1", "=>"},
		{"dash pair", "X -- Y", "-->"},
		{"stray rune", "k1, X @ Y", "unexpected character"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var got string
			s := NewScanner("scan_test", strings.NewReader(test.src), func(line, col uint32, msg string) {
				if got == "" {
					got = msg
				}
			})
			for {
				s.Next()
				if s.Token() == _EOF {
					break
				}
			}
			if got == "" {
				t.Fatal("no error reported")
			}
			if !strings.Contains(got, test.msg) {
				t.Errorf("error %q does not mention %q", got, test.msg)
			}
		})
	}
}
