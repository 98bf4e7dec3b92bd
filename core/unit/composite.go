package unit

import (
	"sort"
	"strconv"
	"strings"

	"github.com/measurekit/measurekit/core/rational"
)

// Units is a canonical composite of unit atoms: sorted, power-merged,
// unique by (Name, Tens). The zero value is the dimensionless identity.
type Units struct {
	atoms []Atom
}

// Dims is a canonical composite of dimension atoms. The zero value is
// the dimensionless identity.
type Dims struct {
	atoms []Atom
}

// Dimensionless is the empty unit composite.
var Dimensionless = Units{}

// NoDims is the empty dimension composite.
var NoDims = Dims{}

// canonicalize concatenates atom lists, sorts them by the canonical
// order, merges adjacent atoms sharing (Name, Tens) by summing powers,
// and drops atoms whose merged power is zero. It is idempotent.
func canonicalize(lists ...[]Atom) []Atom {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	if n == 0 {
		return nil
	}
	all := make([]Atom, 0, n)
	for _, l := range lists {
		all = append(all, l...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].less(all[j]) })

	out := all[:0]
	for _, a := range all {
		if a.Power.IsZero() {
			continue
		}
		if k := len(out); k > 0 && out[k-1].sameIdentity(a) {
			sum, ok := out[k-1].Power.Add(a.Power)
			if !ok {
				// Exponents large enough to overflow int64 rationals do
				// not occur in physical unit expressions.
				panic("unit: exponent overflow during canonicalization")
			}
			if sum.IsZero() {
				out = out[:k-1]
			} else {
				out[k-1].Power = sum
			}
			continue
		}
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil
	}
	res := make([]Atom, len(out))
	copy(res, out)
	return res
}

// powAtoms raises every atom's power by p, dropping atoms that cancel.
func powAtoms(atoms []Atom, p rational.Rational) []Atom {
	if p.IsZero() {
		return nil
	}
	out := make([]Atom, 0, len(atoms))
	for _, a := range atoms {
		na, ok := a.pow(p)
		if !ok {
			panic("unit: exponent overflow during exponentiation")
		}
		if !na.Power.IsZero() {
			out = append(out, na)
		}
	}
	return out
}

// invAtoms negates every atom's power.
func invAtoms(atoms []Atom) []Atom {
	return powAtoms(atoms, rational.FromInt(-1))
}

// atomsKey renders a canonical composite as a stable string key,
// independent of display abbreviations.
func atomsKey(atoms []Atom) string {
	if len(atoms) == 0 {
		return ""
	}
	var b strings.Builder
	for i, a := range atoms {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(a.Name)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(a.Tens))
		b.WriteByte('^')
		b.WriteString(a.Power.String())
	}
	return b.String()
}

func atomsEqual(a, b []Atom) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].sameIdentity(b[i]) || !a[i].Power.Equal(b[i].Power) {
			return false
		}
	}
	return true
}

// NewUnits builds a canonical unit composite from atoms.
func NewUnits(atoms ...Atom) Units {
	return Units{atoms: canonicalize(atoms)}
}

// NewDims builds a canonical dimension composite from atoms.
func NewDims(atoms ...Atom) Dims {
	return Dims{atoms: canonicalize(atoms)}
}

// Atoms returns a copy of the composite's atoms in canonical order.
func (u Units) Atoms() []Atom {
	out := make([]Atom, len(u.atoms))
	copy(out, u.atoms)
	return out
}

// Atoms returns a copy of the composite's atoms in canonical order.
func (d Dims) Atoms() []Atom {
	out := make([]Atom, len(d.atoms))
	copy(out, d.atoms)
	return out
}

// IsDimensionless reports whether u is the identity composite.
func (u Units) IsDimensionless() bool { return len(u.atoms) == 0 }

// IsNone reports whether d is the identity composite.
func (d Dims) IsNone() bool { return len(d.atoms) == 0 }

// Mul returns the canonical product of the two composites.
func (u Units) Mul(o Units) Units {
	return Units{atoms: canonicalize(u.atoms, o.atoms)}
}

// Div returns the canonical quotient of the two composites.
func (u Units) Div(o Units) Units {
	return Units{atoms: canonicalize(u.atoms, invAtoms(o.atoms))}
}

// Pow raises the composite to an integer exponent.
func (u Units) Pow(n int64) Units {
	return u.PowRat(rational.FromInt(n))
}

// PowRat raises the composite to a rational exponent. Exponent
// arithmetic is exact: a square root of an even power cancels via
// rational arithmetic, never floating-point rounding.
func (u Units) PowRat(p rational.Rational) Units {
	return Units{atoms: powAtoms(u.atoms, p)}
}

// Inv returns the reciprocal composite.
func (u Units) Inv() Units {
	return Units{atoms: invAtoms(u.atoms)}
}

// Equal reports whether two composites are the same canonical value.
func (u Units) Equal(o Units) bool { return atomsEqual(u.atoms, o.atoms) }

// Key returns a stable canonical key for the composite, suitable for
// memoization of conversion factors.
func (u Units) Key() string { return atomsKey(u.atoms) }

// Mul returns the canonical product of the two composites.
func (d Dims) Mul(o Dims) Dims {
	return Dims{atoms: canonicalize(d.atoms, o.atoms)}
}

// Div returns the canonical quotient of the two composites.
func (d Dims) Div(o Dims) Dims {
	return Dims{atoms: canonicalize(d.atoms, invAtoms(o.atoms))}
}

// Pow raises the composite to an integer exponent.
func (d Dims) Pow(n int64) Dims {
	return d.PowRat(rational.FromInt(n))
}

// PowRat raises the composite to a rational exponent.
func (d Dims) PowRat(p rational.Rational) Dims {
	return Dims{atoms: powAtoms(d.atoms, p)}
}

// Inv returns the reciprocal composite.
func (d Dims) Inv() Dims {
	return Dims{atoms: invAtoms(d.atoms)}
}

// Equal reports whether two composites are the same canonical value.
func (d Dims) Equal(o Dims) bool { return atomsEqual(d.atoms, o.atoms) }

// Key returns a stable canonical key for the composite.
func (d Dims) Key() string { return atomsKey(d.atoms) }

// Dims returns the natural dimension of the unit composite: the product
// of each atom's registered dimension raised to the atom's power.
func (u Units) Dims() (Dims, error) {
	acc := NoDims
	for _, a := range u.atoms {
		d, err := DimsOf(a.Name)
		if err != nil {
			return NoDims, err
		}
		acc = acc.Mul(d.PowRat(a.Power))
	}
	return acc, nil
}
