package crn

import (
	"github.com/crnkit/crn/internal/syntax"
)

// NameConflictError reports an identifier used in conflicting roles:
// declared as a parameter yet used as a substrate or product, or a
// collision with the noise-scaling parameter.
type NameConflictError struct {
	Pos  syntax.Pos
	Name string
	Msg  string
}

func (e *NameConflictError) Error() string {
	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + e.Name + ": " + e.Msg
	}
	return e.Name + ": " + e.Msg
}

// ConfigurationError reports structurally valid input that cannot be
// compiled: mismatched tuple lengths, a zero stoichiometric
// coefficient, or a reaction count over the configured maximum.
type ConfigurationError struct {
	Pos syntax.Pos
	Msg string
}

func (e *ConfigurationError) Error() string {
	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + e.Msg
	}
	return e.Msg
}
