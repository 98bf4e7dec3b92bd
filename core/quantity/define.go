package quantity

import (
	"math"

	"github.com/measurekit/measurekit/core/convert"
	"github.com/measurekit/measurekit/core/rational"
	"github.com/measurekit/measurekit/core/unit"
)

// Define registers a derived unit equal to value * of. Integer values
// keep the base factor exact; fractional values fold into the inexact
// component (use DefineExact to keep a fractional scale exact). When
// prefixable is true the full SI prefix family is generated.
func Define(symbol, abbr, name string, value float64, of unit.Units, prefixable bool) (unit.Units, error) {
	scale := unit.BaseFactor{Inexact: 1, Exact: rational.One}
	if value == math.Trunc(value) {
		if r, ok := rational.FromFloat(value); ok {
			scale.Exact = r
		} else {
			scale.Inexact = value
		}
	} else {
		scale.Inexact = value
	}
	return define(symbol, abbr, name, scale, of, rational.Zero, prefixable)
}

// DefineExact registers a derived unit equal to value * of with an
// exact rational scale.
func DefineExact(symbol, abbr, name string, value rational.Rational, of unit.Units, prefixable bool) (unit.Units, error) {
	scale := unit.BaseFactor{Inexact: 1, Exact: value}
	return define(symbol, abbr, name, scale, of, rational.Zero, prefixable)
}

// DefineOffset registers an affine temperature scale: one new degree
// equals scale * of, and a reading of zero sits offset degrees above
// absolute zero on the new scale. Offset scales take no prefixes.
func DefineOffset(symbol, abbr, name string, scale rational.Rational, of unit.Units, offset rational.Rational) (unit.Units, error) {
	return define(symbol, abbr, name, unit.BaseFactor{Inexact: 1, Exact: scale}, of, offset, false)
}

// define resolves the defining composite to its combined base factor,
// merges in the new unit's own scale and registers the result. Exact
// scale components that overflow fold into the inexact side.
func define(symbol, abbr, name string, scale unit.BaseFactor, of unit.Units, offset rational.Rational, prefixable bool) (unit.Units, error) {
	dims, err := of.Dims()
	if err != nil {
		return unit.Units{}, err
	}
	base, err := convert.BaseOf(of)
	if err != nil {
		return unit.Units{}, err
	}

	factor := unit.BaseFactor{Inexact: base.Inexact * scale.Inexact, Exact: base.Exact}
	if merged, ok := base.Exact.Mul(scale.Exact); ok {
		factor.Exact = merged
	} else {
		factor.Inexact *= scale.Exact.Float64()
	}
	return unit.RegisterUnit(symbol, abbr, name, dims, factor, offset, prefixable)
}
