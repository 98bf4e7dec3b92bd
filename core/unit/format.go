package unit

import (
	"strings"

	"github.com/measurekit/measurekit/core/rational"
)

// String renders the composite with abbreviations and powers, positive
// powers ahead of negative: "kg*m/s^2", "m^3", "1/s". Dimensionless
// renders as the empty string.
func (u Units) String() string {
	return formatAtoms(u.atoms, func(a Atom) string {
		abbr, err := AbbrOf(a)
		if err != nil {
			return rawAtomLabel(a)
		}
		return abbr
	})
}

// String renders the dimension composite: "L*M/T^2".
func (d Dims) String() string {
	return formatAtoms(d.atoms, func(a Atom) string {
		return DimAbbr(a.Name)
	})
}

// rawAtomLabel is the fallback label for atoms whose symbol cannot be
// resolved against the registry.
func rawAtomLabel(a Atom) string {
	if a.Tens == 0 {
		return a.Name
	}
	if p, ok := prefixSymbols[a.Tens]; ok {
		return p + a.Name
	}
	return a.Name
}

func formatAtoms(atoms []Atom, label func(Atom) string) string {
	if len(atoms) == 0 {
		return ""
	}
	var num, den []string
	for _, a := range atoms {
		p := a.Power
		neg := p.Sign() < 0
		if neg {
			p = p.Neg()
		}
		part := label(a) + powerSuffix(p)
		if neg {
			den = append(den, part)
		} else {
			num = append(num, part)
		}
	}

	n := strings.Join(num, "*")
	d := strings.Join(den, "*")
	switch {
	case d == "":
		return n
	case n == "" && len(den) == 1:
		return "1/" + d
	case n == "":
		return "1/(" + d + ")"
	case len(den) == 1:
		return n + "/" + d
	default:
		return n + "/(" + d + ")"
	}
}

func powerSuffix(p rational.Rational) string {
	if p.IsOne() {
		return ""
	}
	if p.IsInt() {
		return "^" + p.String()
	}
	return "^(" + p.String() + ")"
}
