package convert

import (
	"math"

	"github.com/measurekit/measurekit/core/cache"
	apperrors "github.com/measurekit/measurekit/core/errors"
	"github.com/measurekit/measurekit/core/rational"
	"github.com/measurekit/measurekit/core/unit"
)

// pairKey identifies a source/destination composite pair by canonical key.
type pairKey struct {
	src, dst string
}

// factors memoizes synthesized factors for the process lifetime. The
// result set is bounded by pairs of declared composites, so the cache
// is unlimited.
var factors = cache.New[pairKey, Factor](cache.Config{})

// CacheStats reports the factor cache statistics.
func CacheStats() cache.Stats {
	return factors.Stats()
}

// Between synthesizes the factor that rescales a value expressed in src
// to the same quantity expressed in dst. Both composites must have equal
// dimensions. The result is memoized by canonical key.
func Between(src, dst unit.Units) (Factor, error) {
	if src.Equal(dst) {
		return Identity, nil
	}

	srcDims, err := src.Dims()
	if err != nil {
		return Factor{}, err
	}
	dstDims, err := dst.Dims()
	if err != nil {
		return Factor{}, err
	}
	if !srcDims.Equal(dstDims) {
		return Factor{}, apperrors.NewDimensionMismatch("convert", src.String(), dst.String())
	}

	return factors.GetOrCompute(pairKey{src: src.Key(), dst: dst.Key()}, func() (Factor, error) {
		return synthesize(src, dst)
	})
}

// ToBase returns the factor from u to the coherent base composite of its
// dimension, with all prefix powers of ten folded in. Used when deriving
// a new unit's base factor from a defining composite.
func ToBase(u unit.Units) (Factor, error) {
	agg, err := aggregateOf(u)
	if err != nil {
		return Factor{}, err
	}
	return combine(agg, aggregate{inexact: 1, exact: rational.One}), nil
}

// BaseOf returns u's combined base factor split into its inexact and
// exact components, with the tens exponent folded into whichever side
// can hold it exactly.
func BaseOf(u unit.Units) (unit.BaseFactor, error) {
	agg, err := aggregateOf(u)
	if err != nil {
		return unit.BaseFactor{}, err
	}

	bf := unit.BaseFactor{Inexact: agg.inexact, Exact: agg.exact}
	applied := false
	if p10, ok := rational.Pow10(int(agg.tens)); ok {
		if merged, ok := bf.Exact.Mul(p10); ok {
			bf.Exact = merged
			applied = true
		}
	}
	if !applied && agg.tens != 0 {
		bf.Inexact *= math.Pow(10, float64(agg.tens))
	}
	return bf, nil
}

func synthesize(src, dst unit.Units) (Factor, error) {
	s, err := aggregateOf(src)
	if err != nil {
		return Factor{}, err
	}
	d, err := aggregateOf(dst)
	if err != nil {
		return Factor{}, err
	}
	return combine(s, d), nil
}

// combine forms the ratio of two aggregates as a Factor. The power-of-ten
// exponents subtract before any magnitude enters a rational, so prefixed
// conversions stay exact wherever the residual exponent fits.
func combine(s, d aggregate) Factor {
	inexact := s.inexact / d.inexact

	exact, exactOK := s.exact.Div(d.exact)
	if !exactOK {
		inexact *= s.exact.Float64() / d.exact.Float64()
		exact = rational.One
	}

	if dt := s.tens - d.tens; dt != 0 {
		applied := false
		if exactOK {
			if p10, ok := rational.Pow10(int(dt)); ok {
				if merged, ok := exact.Mul(p10); ok {
					exact = merged
					applied = true
				}
			}
		}
		if !applied {
			inexact *= math.Pow(10, float64(dt))
		}
	}

	// Ratios of equal inexact components cancel to a float near one;
	// snap so the factor stays exact.
	if math.Abs(inexact-1) <= identityTolerance {
		inexact = 1
	}
	if inexact == 1 && exactOK {
		return Exact(exact)
	}
	return Approximate(inexact * exact.Float64())
}
