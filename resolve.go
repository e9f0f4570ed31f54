package crn

import (
	"github.com/crnkit/crn/internal/syntax"
)

// symtab holds the canonical species and parameter tables built during
// resolution. Species indices are assigned in first-occurrence order;
// parameters keep declaration order with the noise-scaling parameter,
// if any, appended last.
type symtab struct {
	species    []string
	speciesIdx map[string]int
	params     []string
	paramIdx   map[string]int
	noise      string
}

func newSymtab(params []string, noise string) (*symtab, error) {
	t := &symtab{
		speciesIdx: map[string]int{},
		paramIdx:   map[string]int{},
		noise:      noise,
	}
	for _, p := range params {
		if _, dup := t.paramIdx[p]; dup {
			return nil, &ConfigurationError{Msg: "parameter " + p + " declared twice"}
		}
		if p == noise {
			return nil, &NameConflictError{
				Name: p,
				Msg:  "declared both as parameter and noise-scaling parameter",
			}
		}
		t.paramIdx[p] = len(t.params)
		t.params = append(t.params, p)
	}
	if noise != "" {
		t.paramIdx[noise] = len(t.params)
		t.params = append(t.params, noise)
	}
	return t, nil
}

func (t *symtab) isParam(name string) bool {
	_, ok := t.paramIdx[name]
	return ok
}

// internSpecies returns the index of the named species, assigning the
// next unused index on first occurrence.
func (t *symtab) internSpecies(name string) int {
	if i, ok := t.speciesIdx[name]; ok {
		return i
	}
	i := len(t.species)
	t.speciesIdx[name] = i
	t.species = append(t.species, name)
	return i
}

// resolve partitions every identifier in the drafts into species and
// parameters and rewrites substrate/product names to index references.
// Scan order per draft: rate free variables first (in source order,
// call names excluded), then substrates, then products, so a rate-only
// species still receives an index.
func resolve(drafts []draft, t *symtab) ([]Reaction, error) {
	reactions := make([]Reaction, 0, len(drafts))

	for _, d := range drafts {
		for _, name := range rateIdents(d.rate) {
			if name == t.noise {
				return nil, &NameConflictError{
					Pos:  d.pos,
					Name: name,
					Msg:  "noise-scaling parameter used in a rate expression",
				}
			}
			if d.groupNames[name] {
				return nil, &ConfigurationError{
					Pos: d.pos,
					Msg: "identifier " + name + " is both a rate free variable and a group member",
				}
			}
			if t.isParam(name) {
				continue
			}
			t.internSpecies(name)
		}

		r := Reaction{
			Substrates: map[int]int{},
			Products:   map[int]int{},
			MassAction: d.massAction,
		}
		if err := t.resolveSide(d.pos, d.subs, r.Substrates, "substrate"); err != nil {
			return nil, err
		}
		if err := t.resolveSide(d.pos, d.prods, r.Products, "product"); err != nil {
			return nil, err
		}
		reactions = append(reactions, r)
	}

	return reactions, nil
}

func (t *symtab) resolveSide(pos syntax.Pos, side []nameCount, out map[int]int, role string) error {
	for _, nc := range side {
		if nc.name == t.noise {
			return &NameConflictError{
				Pos:  pos,
				Name: nc.name,
				Msg:  "noise-scaling parameter used as a " + role,
			}
		}
		if t.isParam(nc.name) {
			return &NameConflictError{
				Pos:  pos,
				Name: nc.name,
				Msg:  "declared as a parameter but used as a " + role,
			}
		}
		out[t.internSpecies(nc.name)] += nc.count
	}
	return nil
}

// rateIdents collects the free identifiers of a rate expression in
// source order. Function names in calls are not free variables.
func rateIdents(e syntax.Expr) []string {
	var names []string
	var walk func(e syntax.Expr)
	walk = func(e syntax.Expr) {
		switch x := e.(type) {
		case *syntax.Name:
			names = append(names, x.Value)
		case *syntax.Operation:
			walk(x.X)
			if x.Y != nil {
				walk(x.Y)
			}
		case *syntax.CallExpr:
			for _, a := range x.Args {
				walk(a)
			}
		case *syntax.ParenExpr:
			walk(x.X)
		case *syntax.TupleExpr:
			for _, el := range x.Elems {
				walk(el)
			}
		}
	}
	walk(e)
	return names
}
