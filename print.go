package crn

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a readable dump of a compiled model: species and
// parameter tables, stoichiometry matrix, deterministic rates of
// change, noise matrix, jump propensities, and the Jacobian.
func Fprint(w io.Writer, m Model) error {
	if name := m.Name(); name != "" {
		if _, err := fmt.Fprintf(w, "network %s\n", name); err != nil {
			return err
		}
	}

	species := m.Species()
	if _, err := fmt.Fprintf(w, "species    %s\n", strings.Join(species, " ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "parameters %s\n", strings.Join(m.Parameters(), " ")); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "\nstoichiometry\n"); err != nil {
		return err
	}
	for i, row := range m.Stoichiometry() {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprintf("%3d", v)
		}
		if _, err := fmt.Fprintf(w, "  %-12s %s\n", species[i], strings.Join(cells, " ")); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, "\nrate of change\n"); err != nil {
		return err
	}
	for i, e := range m.RateOfChange() {
		if _, err := fmt.Fprintf(w, "  d%s/dt = %s\n", species[i], e); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, "\nnoise\n"); err != nil {
		return err
	}
	for i, row := range m.Noise() {
		for j, e := range row {
			if _, err := fmt.Fprintf(w, "  G[%s][%d] = %s\n", species[i], j, e); err != nil {
				return err
			}
		}
	}

	if _, err := io.WriteString(w, "\njumps\n"); err != nil {
		return err
	}
	for j, jump := range m.Jumps() {
		if _, err := fmt.Fprintf(w, "  %d: net %v propensity %s\n", j, jump.Net, jump.Propensity); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, "\njacobian\n"); err != nil {
		return err
	}
	for i, row := range m.Jacobian() {
		for k, e := range row {
			if _, err := fmt.Fprintf(w, "  d(d%s/dt)/d%s = %s\n", species[i], species[k], e); err != nil {
				return err
			}
		}
	}

	return nil
}
