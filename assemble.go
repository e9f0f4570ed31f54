package crn

import (
	"github.com/crnkit/crn/symbolic"
)

// assemble builds the derived views of a compiled network: the net
// stoichiometry matrix, deterministic rate-of-change expressions,
// Langevin noise matrix, jump propensities, and the symbolic Jacobian.
func assemble(n *Network, reg *symbolic.Registry, noiseParam string) error {
	ns := len(n.species)
	nr := len(n.reactions)

	// Net stoichiometry: products minus substrates per species.
	n.stoich = make([][]int, ns)
	for i := range n.stoich {
		n.stoich[i] = make([]int, nr)
	}
	for j, r := range n.reactions {
		for idx, c := range r.Products {
			n.stoich[idx][j] += c
		}
		for idx, c := range r.Substrates {
			n.stoich[idx][j] -= c
		}
	}

	cont := make([]symbolic.Expr, nr)
	disc := make([]symbolic.Expr, nr)
	for j, r := range n.reactions {
		cont[j] = continuousRate(r, n.species)
		disc[j] = discreteRate(r, n.species)
	}

	// Deterministic rate of change: sum over reactions of net
	// stoichiometry times the continuous rate.
	n.rhs = make([]symbolic.Expr, ns)
	for i := 0; i < ns; i++ {
		var terms []symbolic.Expr
		for j := 0; j < nr; j++ {
			if s := n.stoich[i][j]; s != 0 {
				terms = append(terms, symbolic.MulOf(symbolic.N(int64(s)), cont[j]))
			}
		}
		n.rhs[i] = symbolic.AddOf(terms...)
	}

	// Langevin noise: one column per reaction, entries
	// stoichiometry times sqrt(rate), scaled uniformly by the noise
	// parameter when configured.
	n.noise = make([][]symbolic.Expr, ns)
	for i := 0; i < ns; i++ {
		n.noise[i] = make([]symbolic.Expr, nr)
		for j := 0; j < nr; j++ {
			s := n.stoich[i][j]
			if s == 0 {
				n.noise[i][j] = symbolic.N(0)
				continue
			}
			factors := []symbolic.Expr{symbolic.N(int64(s)), symbolic.SqrtOf(cont[j])}
			if noiseParam != "" {
				factors = append(factors, symbolic.S(noiseParam))
			}
			n.noise[i][j] = symbolic.MulOf(factors...)
		}
	}

	// Jump propensities in discrete form, paired with net
	// stoichiometry vectors.
	n.jumps = make([]Jump, nr)
	for j := 0; j < nr; j++ {
		net := make([]int, ns)
		for i := 0; i < ns; i++ {
			net[i] = n.stoich[i][j]
		}
		n.jumps[j] = Jump{Propensity: disc[j], Net: net}
	}

	// Jacobian by structural differentiation of the deterministic
	// rates of change.
	n.jac = make([][]symbolic.Expr, ns)
	for i := 0; i < ns; i++ {
		n.jac[i] = make([]symbolic.Expr, ns)
		for k := 0; k < ns; k++ {
			d, err := symbolic.Diff(n.rhs[i], n.species[k], reg)
			if err != nil {
				return err
			}
			n.jac[i][k] = d
		}
	}

	return nil
}
