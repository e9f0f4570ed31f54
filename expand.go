package crn

import (
	"fmt"

	"github.com/crnkit/crn/internal/syntax"
)

// draft is one canonical forward reaction before symbol resolution:
// named substrate/product counts and a scalar rate syntax tree.
type draft struct {
	pos        syntax.Pos
	rate       syntax.Expr
	subs       []nameCount
	prods      []nameCount
	massAction bool

	// Names that appeared inside parenthesized groups on this line.
	// A rate free variable naming one of them is rejected during
	// resolution.
	groupNames map[string]bool
}

// nameCount is a species name with accumulated stoichiometry,
// preserving first-occurrence order within a side.
type nameCount struct {
	name  string
	count int
}

// expandUnit turns parsed reaction lines into a flat ordered sequence
// of canonical forward drafts: source line order, then tuple index,
// then forward before backward for bidirectional lines.
func expandUnit(u *syntax.Unit, maxReactions int) ([]draft, error) {
	var drafts []draft

	for _, line := range u.Lines {
		expanded, err := expandLine(line)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, expanded...)
		if len(drafts) > maxReactions {
			return nil, &ConfigurationError{
				Pos: line.Pos(),
				Msg: fmt.Sprintf("reaction count exceeds maximum %d", maxReactions),
			}
		}
	}

	return drafts, nil
}

func expandLine(line *syntax.ReactionLine) ([]draft, error) {
	bidi := line.Arrow.Dir == syntax.Bidirectional

	fwdRate, bwdRate, err := splitRate(line, bidi)
	if err != nil {
		return nil, err
	}

	// All tuples on the line must agree on one length N; scalars
	// broadcast.
	n := 1
	lengths := []int{sideLen(line.LHS), sideLen(line.RHS), rateLen(fwdRate)}
	if bidi {
		lengths = append(lengths, rateLen(bwdRate))
	}
	for _, l := range lengths {
		if l > 1 {
			if n > 1 && l != n {
				return nil, &ConfigurationError{
					Pos: line.Pos(),
					Msg: fmt.Sprintf("mismatched tuple lengths %d and %d", n, l),
				}
			}
			n = l
		}
	}

	var drafts []draft
	for i := 0; i < n; i++ {
		lhs, lhsGroups, err := flattenList(sideElem(line.LHS, i))
		if err != nil {
			return nil, err
		}
		rhs, rhsGroups, err := flattenList(sideElem(line.RHS, i))
		if err != nil {
			return nil, err
		}
		groups := lhsGroups
		for name := range rhsGroups {
			groups[name] = true
		}

		subs, prods := lhs, rhs
		if line.Arrow.Swap() {
			subs, prods = prods, subs
		}

		fr, err := rateElem(fwdRate, i, line.Pos())
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft{
			pos:        line.Pos(),
			rate:       fr,
			subs:       subs,
			prods:      prods,
			massAction: line.Arrow.MassAction,
			groupNames: groups,
		})

		if bidi {
			br, err := rateElem(bwdRate, i, line.Pos())
			if err != nil {
				return nil, err
			}
			drafts = append(drafts, draft{
				pos:        line.Pos(),
				rate:       br,
				subs:       prods,
				prods:      subs,
				massAction: line.Arrow.MassAction,
				groupNames: groups,
			})
		}
	}

	return drafts, nil
}

// splitRate resolves the forward and backward rate terms of a line.
// For a bidirectional line a top-level rate tuple must have exactly
// two elements, forward then backward; each element may itself be a
// tuple for combined-line expansion. Without a second element the
// backward rate defaults to the forward rate.
func splitRate(line *syntax.ReactionLine, bidi bool) (fwd, bwd syntax.Expr, err error) {
	rate := line.Rate
	if !bidi {
		return rate, nil, nil
	}

	tup, ok := rate.(*syntax.TupleExpr)
	if !ok {
		return rate, rate, nil
	}
	if len(tup.Elems) != 2 {
		return nil, nil, &ConfigurationError{
			Pos: line.Pos(),
			Msg: fmt.Sprintf("bidirectional rate tuple must have 2 elements, got %d", len(tup.Elems)),
		}
	}
	return tup.Elems[0], tup.Elems[1], nil
}

func rateLen(e syntax.Expr) int {
	if tup, ok := e.(*syntax.TupleExpr); ok {
		return len(tup.Elems)
	}
	return 1
}

// rateElem selects tuple element i, broadcasting scalars. The result
// must be a scalar expression; deeper tuple nesting than the line's
// expansion is an error.
func rateElem(e syntax.Expr, i int, pos syntax.Pos) (syntax.Expr, error) {
	if tup, ok := e.(*syntax.TupleExpr); ok {
		e = tup.Elems[i]
	}
	if _, ok := e.(*syntax.TupleExpr); ok {
		return nil, &ConfigurationError{Pos: pos, Msg: "rate tuple nested deeper than the line expands"}
	}
	return e, nil
}

func sideLen(s *syntax.Side) int {
	if s.Tuple {
		return len(s.Lists)
	}
	return 1
}

func sideElem(s *syntax.Side, i int) *syntax.TermList {
	if s.Tuple {
		return s.Lists[i]
	}
	return s.Lists[0]
}

// flattenList resolves a term list to accumulated per-species counts,
// distributing coefficients over parenthesized groups. It also
// reports the set of names that appeared inside groups.
func flattenList(list *syntax.TermList) ([]nameCount, map[string]bool, error) {
	groups := map[string]bool{}
	var out []nameCount
	idx := map[string]int{}

	add := func(name string, count int) {
		if i, ok := idx[name]; ok {
			out[i].count += count
			return
		}
		idx[name] = len(out)
		out = append(out, nameCount{name: name, count: count})
	}

	for _, term := range list.Terms {
		coeff := 1
		if term.HasCoeff {
			if term.Coeff == 0 {
				return nil, nil, &ConfigurationError{
					Pos: term.Pos(),
					Msg: "stoichiometric coefficient must be positive",
				}
			}
			coeff = int(term.Coeff)
		}

		switch atom := term.Atom.(type) {
		case *syntax.SpeciesRef:
			add(atom.Name, coeff)

		case *syntax.NothingTerm:
			// No reactant; the parser guarantees it stands alone.

		case *syntax.Group:
			// The coefficient distributes over every member.
			for _, inner := range atom.List.Terms {
				innerCoeff := 1
				if inner.HasCoeff {
					if inner.Coeff == 0 {
						return nil, nil, &ConfigurationError{
							Pos: inner.Pos(),
							Msg: "stoichiometric coefficient must be positive",
						}
					}
					innerCoeff = int(inner.Coeff)
				}
				ref, ok := inner.Atom.(*syntax.SpeciesRef)
				if !ok {
					return nil, nil, &ConfigurationError{
						Pos: inner.Pos(),
						Msg: "groups may contain only species terms",
					}
				}
				groups[ref.Name] = true
				add(ref.Name, coeff*innerCoeff)
			}
		}
	}

	return out, groups, nil
}
