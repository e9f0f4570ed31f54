package crn

import (
	"io"
	"strings"

	"github.com/crnkit/crn/internal/syntax"
	"github.com/crnkit/crn/symbolic"
)

// DefaultMaxReactions bounds tuple expansion; past it compilation
// fails rather than hangs.
const DefaultMaxReactions = 16384

// Options configures a compile. Text-level directives (network,
// parameters, noise) and option-level settings are merged; declaring
// the same thing both ways is an error.
type Options struct {
	// Name of the network; merged with the network directive.
	Name string

	// Parameters declared programmatically, prepended in order to
	// any parameters directive in the source.
	Parameters []string

	// NoiseScaling names a parameter that multiplies every noise
	// matrix entry uniformly. It is appended last to the parameter
	// table and may not appear anywhere in a reaction line.
	NoiseScaling string

	// MaxReactions caps the expanded reaction count.
	// Zero means DefaultMaxReactions.
	MaxReactions int

	// Functions is the symbolic-function registry used to check and
	// differentiate rate-law calls. Nil means
	// symbolic.DefaultRegistry (hill, mm, exp, ln, sin, cos, sqrt).
	Functions *symbolic.Registry
}

// Compile parses reaction notation from src and builds the resolved
// kinetic model. The first error encountered aborts the compile; no
// partial network is ever returned.
func Compile(filename string, src io.Reader, opts Options) (*Network, error) {
	p := syntax.NewParser(filename, src, nil)
	unit := p.Parse()
	if err := p.FirstError(); err != nil {
		return nil, err
	}
	return build(unit, opts)
}

// CompileString is Compile for in-memory source text.
func CompileString(src string, opts Options) (*Network, error) {
	return Compile("<input>", strings.NewReader(src), opts)
}

func build(unit *syntax.Unit, opts Options) (*Network, error) {
	name := opts.Name
	if unit.Name != "" {
		if name != "" {
			return nil, &ConfigurationError{Msg: "network name declared both in source and options"}
		}
		name = unit.Name
	}

	params := append([]string{}, opts.Parameters...)
	for _, p := range unit.Params {
		params = append(params, p.Value)
	}

	max := opts.MaxReactions
	if max <= 0 {
		max = DefaultMaxReactions
	}

	reg := opts.Functions
	if reg == nil {
		reg = symbolic.DefaultRegistry()
	}

	noise := opts.NoiseScaling
	if unit.Noise != nil {
		if noise != "" {
			return nil, &ConfigurationError{Msg: "noise-scaling parameter declared both in source and options"}
		}
		noise = unit.Noise.Value
	}

	drafts, err := expandUnit(unit, max)
	if err != nil {
		return nil, err
	}

	tab, err := newSymtab(params, noise)
	if err != nil {
		return nil, err
	}

	reactions, err := resolve(drafts, tab)
	if err != nil {
		return nil, err
	}

	for i := range reactions {
		rate, err := lowerRate(drafts[i].rate, reg)
		if err != nil {
			return nil, err
		}
		reactions[i].Rate = rate
	}

	n := &Network{
		name:      name,
		species:   tab.species,
		params:    tab.params,
		reactions: reactions,
	}
	if err := assemble(n, reg, noise); err != nil {
		return nil, err
	}
	return n, nil
}
