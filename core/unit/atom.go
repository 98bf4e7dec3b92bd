// Package unit implements the symbolic unit and dimension algebra:
// named exponentiated atoms, canonical composites built by sort-and-merge,
// and the process-wide registry of declared dimensions and units.
//
// Atoms and composites are immutable values. All algebra here is purely
// symbolic: no conversion factor is ever applied implicitly.
package unit

import (
	"github.com/measurekit/measurekit/core/rational"
)

// Atom is an elementary named, exponentiated unit or dimension tag.
// For unit atoms, Tens carries the SI prefix as a power-of-ten exponent
// (3 for kilo, -2 for centi). Dimension atoms always have Tens == 0.
//
// A canonical atom never has Power == 0.
type Atom struct {
	Name  string
	Tens  int
	Power rational.Rational
}

// sameIdentity reports whether two atoms merge under canonicalization.
// Identity is (Name, Tens): a meter and a kilometer are distinct atoms.
func (a Atom) sameIdentity(b Atom) bool {
	return a.Name == b.Name && a.Tens == b.Tens
}

// less is the canonical total order: Name primary, Tens secondary,
// Power tertiary. Sorting by it groups mergeable atoms adjacently.
func (a Atom) less(b Atom) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	if a.Tens != b.Tens {
		return a.Tens < b.Tens
	}
	return a.Power.Cmp(b.Power) < 0
}

// pow returns the atom raised to p. Exponent arithmetic is exact; a
// rational exponent on a compatible power cancels without rounding.
func (a Atom) pow(p rational.Rational) (Atom, bool) {
	np, ok := a.Power.Mul(p)
	if !ok {
		return Atom{}, false
	}
	return Atom{Name: a.Name, Tens: a.Tens, Power: np}, true
}
