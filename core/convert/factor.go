// Package convert synthesizes conversion factors between unit composites
// of equal dimension. Factors are exact rationals whenever the chain of
// base factors permits; exact-rational overflow silently and
// deterministically downgrades to a floating approximation.
package convert

import (
	"math"

	"github.com/measurekit/measurekit/core/rational"
	"github.com/measurekit/measurekit/core/unit"
)

// identityTolerance decides when a residual floating component counts
// as exactly one. Base factor ratios land here after catastrophic-free
// division, so the bound can be tight.
const identityTolerance = 1e-12

// Factor is a synthesized conversion factor: either an exact rational or
// a floating approximation. Construct one with Exact or Approximate.
type Factor struct {
	exact  rational.Rational
	approx float64
	inexct bool
}

// Identity is the exact factor 1.
var Identity = Exact(rational.One)

// Exact wraps an exact rational factor.
func Exact(r rational.Rational) Factor {
	return Factor{exact: r}
}

// Approximate wraps a floating factor.
func Approximate(f float64) Factor {
	return Factor{approx: f, inexct: true}
}

// IsExact reports whether the factor is an exact rational.
func (f Factor) IsExact() bool { return !f.inexct }

// Rat returns the exact rational component when the factor is exact.
func (f Factor) Rat() (rational.Rational, bool) {
	if f.inexct {
		return rational.Zero, false
	}
	return f.exact, true
}

// Float64 returns the factor as a float.
func (f Factor) Float64() float64 {
	if f.inexct {
		return f.approx
	}
	r, _ := f.Rat()
	return r.Float64()
}

// IsIdentity reports whether the factor is exactly one.
func (f Factor) IsIdentity() bool {
	r, ok := f.Rat()
	return ok && r.IsOne()
}

// Apply scales v by the factor. Exact factors multiply by the numerator
// and divide by the denominator separately, so integer-valued
// conversions stay exact in floating point.
func (f Factor) Apply(v float64) float64 {
	if f.inexct {
		return v * f.approx
	}
	r, _ := f.Rat()
	if r.IsOne() {
		return v
	}
	return v * float64(r.Num()) / float64(r.Den())
}

// Inv returns the reciprocal factor.
func (f Factor) Inv() Factor {
	if f.inexct {
		return Approximate(1 / f.approx)
	}
	r, _ := f.Rat()
	inv, ok := r.Inv()
	if !ok {
		return Approximate(math.Inf(1))
	}
	return Exact(inv)
}

// aggregate is the combined base factor of one composite: the product of
// every atom's base factor raised to the atom's power, with the
// power-of-ten component kept apart as an integer tens exponent. The
// full value is inexact * exact * 10^tens.
type aggregate struct {
	inexact float64
	exact   rational.Rational
	tens    int64
}

// aggregateOf combines the per-atom base factors of a composite.
// Rather than multiplying powers of ten into each factor (risking
// overflow), the tens exponents accumulate separately as
// sum(tens(atom) * power(atom)), with the -3 correction for the
// kilo-referenced mass base.
func aggregateOf(u unit.Units) (aggregate, error) {
	agg := aggregate{inexact: 1, exact: rational.One}

	for _, a := range u.Atoms() {
		bf, err := unit.BaseFactorOf(a.Name)
		if err != nil {
			return aggregate{}, err
		}

		p := a.Power
		agg.inexact *= math.Pow(bf.Inexact, p.Float64())

		// Exact component: exponentiate and merge while everything fits;
		// on overflow fold this atom's contribution into the float and
		// keep the exact side for the atoms that still fit.
		merged := false
		if e, ok := bf.Exact.PowRat(p); ok {
			if product, ok := agg.exact.Mul(e); ok {
				agg.exact = product
				merged = true
			}
		}
		if !merged {
			agg.inexact *= math.Pow(bf.Exact.Float64(), p.Float64())
		}

		// Tens exponent, corrected for the kilo-referenced mass base.
		t := int64(a.Tens)
		if unit.IsKiloReferenced(a.Name) {
			t -= 3
		}
		if t != 0 {
			contrib, ok := rational.FromInt(t).Mul(p)
			if ok && contrib.IsInt() {
				agg.tens += contrib.Num()
			} else {
				// Fractional power of ten (e.g. sqrt of a prefixed unit):
				// it cannot stay an integer exponent, fold into the float.
				agg.inexact *= math.Pow(10, float64(t)*p.Float64())
			}
		}
	}
	return agg, nil
}
