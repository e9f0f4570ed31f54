// Package crn compiles compact textual chemical reaction notation into
// a fully resolved symbolic kinetic model: ordered species and
// parameter tables, per-reaction stoichiometry, deterministic
// rate-of-change expressions, Langevin noise terms, discrete jump
// propensities, and the symbolic Jacobian of the deterministic system.
//
// Compilation is a pure transformation: source text in, an immutable
// *Network out, or the first error encountered. A compiled Network may
// be read concurrently without synchronization.
package crn

import (
	"github.com/crnkit/crn/symbolic"
)

// Model is the capability set exposed by a compiled reaction network.
// External solvers depend on this interface rather than the concrete
// Network type.
type Model interface {
	// Name returns the declared network name, or "".
	Name() string

	// Species returns the ordered species names; the index of a
	// species here is its index in every derived view.
	Species() []string

	// Parameters returns the ordered parameter names. The
	// noise-scaling parameter, if configured, is last.
	Parameters() []string

	// Reactions returns the canonical elementary reactions.
	Reactions() []Reaction

	// Stoichiometry returns the net stoichiometry matrix,
	// species rows by reaction columns.
	Stoichiometry() [][]int

	// RateOfChange returns the deterministic rate-of-change
	// expression per species.
	RateOfChange() []symbolic.Expr

	// Noise returns the Langevin noise matrix, species rows by
	// reaction columns.
	Noise() [][]symbolic.Expr

	// Jumps returns per-reaction discrete propensities paired with
	// net stoichiometry vectors.
	Jumps() []Jump

	// Jacobian returns the species-by-species matrix of partial
	// derivatives of the deterministic rates of change.
	Jacobian() [][]symbolic.Expr
}

// Reaction is one canonical forward elementary reaction. Substrates
// and products map species index to positive integer stoichiometry.
// A species may appear on both sides (catalysts); it still enters the
// mass-action rate as a reactant.
type Reaction struct {
	Substrates map[int]int
	Products   map[int]int

	// Rate is the declared rate expression, before any mass-action
	// combinatorial factor.
	Rate symbolic.Expr

	// MassAction reports whether the rate law multiplies in the
	// substrate concentration factors.
	MassAction bool
}

// Jump pairs a reaction's discrete (falling-factorial) propensity with
// its net stoichiometry vector, for jump-process simulation.
type Jump struct {
	Propensity symbolic.Expr
	Net        []int
}

// Network is the compiled artifact. It is immutable once returned by
// Compile; accessors return internal slices that callers must treat as
// read-only.
type Network struct {
	name    string
	species []string
	params  []string

	reactions []Reaction

	stoich [][]int
	rhs    []symbolic.Expr
	noise  [][]symbolic.Expr
	jumps  []Jump
	jac    [][]symbolic.Expr
}

var _ Model = (*Network)(nil)

func (n *Network) Name() string                  { return n.name }
func (n *Network) Species() []string             { return n.species }
func (n *Network) Parameters() []string          { return n.params }
func (n *Network) Reactions() []Reaction         { return n.reactions }
func (n *Network) Stoichiometry() [][]int        { return n.stoich }
func (n *Network) RateOfChange() []symbolic.Expr { return n.rhs }
func (n *Network) Noise() [][]symbolic.Expr      { return n.noise }
func (n *Network) Jumps() []Jump                 { return n.jumps }
func (n *Network) Jacobian() [][]symbolic.Expr   { return n.jac }

// SpeciesIndex returns the index of the named species, or -1.
func (n *Network) SpeciesIndex(name string) int {
	for i, s := range n.species {
		if s == name {
			return i
		}
	}
	return -1
}
