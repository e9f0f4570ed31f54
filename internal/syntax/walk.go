package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Unit:
		for _, line := range n.Lines {
			Walk(line, v)
		}
		for _, p := range n.Params {
			Walk(p, v)
		}
		if n.Noise != nil {
			Walk(n.Noise, v)
		}

	case *ReactionLine:
		Walk(n.Rate, v)
		Walk(n.LHS, v)
		Walk(n.RHS, v)

	case *Side:
		for _, list := range n.Lists {
			Walk(list, v)
		}

	case *TermList:
		for _, t := range n.Terms {
			Walk(t, v)
		}

	case *Term:
		Walk(n.Atom, v)

	case *Group:
		Walk(n.List, v)

	case *Operation:
		Walk(n.X, v)
		if n.Y != nil {
			Walk(n.Y, v)
		}

	case *CallExpr:
		Walk(n.Fun, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *ParenExpr:
		Walk(n.X, v)

	case *TupleExpr:
		for _, e := range n.Elems {
			Walk(e, v)
		}

		// Name, Number, SpeciesRef, NothingTerm are leaves.
	}
}
