package main

import (
	"path/filepath"
	"testing"
)

func TestRunCompile(t *testing.T) {
	tests := []struct {
		name string
		file string
		want int
	}{
		{"birth death", "birthdeath.crn", 0},
		{"michaelis", "michaelis.crn", 0},
		{"repressilator", "repressilator.crn", 0},
		{"tuple mismatch", "bad.crn", 1},
		{"missing file", "nosuch.crn", 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := runCompile(filepath.Join("testdata", test.file)); got != test.want {
				t.Errorf("runCompile(%s) = %d, want %d", test.file, got, test.want)
			}
		})
	}
}

func TestRunEmitTokens(t *testing.T) {
	if got := runEmitTokens(filepath.Join("testdata", "birthdeath.crn")); got != 0 {
		t.Errorf("runEmitTokens = %d, want 0", got)
	}
}

func TestRunEmitAST(t *testing.T) {
	if got := runEmitAST(filepath.Join("testdata", "repressilator.crn")); got != 0 {
		t.Errorf("runEmitAST = %d, want 0", got)
	}
}

func TestFormatLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", `""`},
		{"X", `"X"`},
		{"newline", `"newline"`},
		{"a\nb", `"a\nb"`},
	}
	for _, test := range tests {
		if got := formatLiteral(test.in); got != test.want {
			t.Errorf("formatLiteral(%q) = %s, want %s", test.in, got, test.want)
		}
	}
}
