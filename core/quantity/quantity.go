// Package quantity pairs numeric values with unit composites and defines
// the arithmetic operators over them. Operators either combine composites
// symbolically (multiplication, division, powers) or require equal
// dimensions and rescale through synthesized conversion factors
// (addition, comparison, conversion). Temperature scales with an
// additive offset convert affinely; all other quantities convert by
// pure scale.
package quantity

import (
	"fmt"
	"math"

	"github.com/measurekit/measurekit/core/convert"
	apperrors "github.com/measurekit/measurekit/core/errors"
	"github.com/measurekit/measurekit/core/rational"
	"github.com/measurekit/measurekit/core/unit"
)

// Kind discriminates how a quantity converts between units.
type Kind int

const (
	// Linear quantities convert by pure multiplicative scale.
	Linear Kind = iota
	// Affine quantities convert by scale plus additive offset. Only
	// plain temperature-scale quantities are affine.
	Affine
)

func (k Kind) String() string {
	if k == Affine {
		return "affine"
	}
	return "linear"
}

// Quantity is an immutable numeric value tagged with a unit composite.
// Every operator returns a new Quantity. The zero value is the
// dimensionless number 0.
type Quantity struct {
	val   float64
	units unit.Units
	dims  unit.Dims
	kind  Kind
}

// New pairs a value with a composite of registered units.
func New(v float64, u unit.Units) (Quantity, error) {
	dims, err := u.Dims()
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{val: v, units: u, dims: dims, kind: kindFor(dims)}, nil
}

// Must is New for statically known units; it panics on error.
func Must(v float64, u unit.Units) Quantity {
	q, err := New(v, u)
	if err != nil {
		panic(err)
	}
	return q
}

// Dimensionless wraps a bare number.
func Dimensionless(v float64) Quantity {
	return Quantity{val: v}
}

func kindFor(d unit.Dims) Kind {
	if unit.IsTemperature(d) {
		return Affine
	}
	return Linear
}

// Value returns the raw numeric value in the quantity's own units.
func (q Quantity) Value() float64 { return q.val }

// Units returns the unit composite.
func (q Quantity) Units() unit.Units { return q.units }

// Dims returns the canonical dimensions.
func (q Quantity) Dims() unit.Dims { return q.dims }

// Kind reports whether the quantity converts linearly or affinely.
func (q Quantity) Kind() Kind { return q.kind }

// IsDimensionless reports whether the quantity carries no units.
func (q Quantity) IsDimensionless() bool { return q.units.IsDimensionless() }

func (q Quantity) String() string {
	if q.units.IsDimensionless() {
		return fmt.Sprintf("%g", q.val)
	}
	return fmt.Sprintf("%g %s", q.val, q.units)
}

// offsetOf returns the additive offset of a composite. Offsets only
// attach to plain single-atom temperature scales; any other shape has
// offset zero.
func offsetOf(u unit.Units) rational.Rational {
	atoms := u.Atoms()
	if len(atoms) != 1 || !atoms[0].Power.IsOne() {
		return rational.Zero
	}
	off, err := unit.OffsetOf(atoms[0].Name)
	if err != nil {
		return rational.Zero
	}
	return off
}

// Convert re-expresses the quantity in the given units. Affine
// quantities apply source and destination offsets around the scale
// factor; the offset delta is computed in exact rational arithmetic
// whenever the factor permits, so round-trip temperature conversions
// land on exact values.
func (q Quantity) Convert(to unit.Units) (Quantity, error) {
	if q.units.Equal(to) {
		return q, nil
	}

	f, err := convert.Between(q.units, to)
	if err != nil {
		return Quantity{}, err
	}

	out := Quantity{units: to, dims: q.dims, kind: q.kind}
	if q.kind == Affine {
		out.val = convertAffine(q.val, f, offsetOf(q.units), offsetOf(to))
	} else {
		out.val = f.Apply(q.val)
	}
	return out, nil
}

// convertAffine computes (v + srcOff) * f - dstOff, folding the two
// offset terms into a single delta so the exact-rational path can
// cancel them before any floating rounding.
func convertAffine(v float64, f convert.Factor, srcOff, dstOff rational.Rational) float64 {
	if fr, ok := f.Rat(); ok {
		if scaled, ok := srcOff.Mul(fr); ok {
			if delta, ok := scaled.Sub(dstOff); ok {
				return f.Apply(v) + delta.Float64()
			}
		}
	}
	return (v+srcOff.Float64())*f.Float64() - dstOff.Float64()
}

// Add returns q + o in q's units. Operands of differing units are
// reconciled by converting the right operand first.
func (q Quantity) Add(o Quantity) (Quantity, error) {
	r, err := q.reconcile("add", o)
	if err != nil {
		return Quantity{}, err
	}
	q.val += r.val
	return q, nil
}

// Sub returns q - o in q's units.
func (q Quantity) Sub(o Quantity) (Quantity, error) {
	r, err := q.reconcile("subtract", o)
	if err != nil {
		return Quantity{}, err
	}
	q.val -= r.val
	return q, nil
}

// reconcile converts o into q's units for a dimension-strict operator.
// Same-unit operands pass through untouched, so same-scale temperature
// arithmetic stays plain numeric addition with no offset involvement.
func (q Quantity) reconcile(op string, o Quantity) (Quantity, error) {
	if q.units.Equal(o.units) {
		return o, nil
	}
	if !q.dims.Equal(o.dims) {
		return Quantity{}, apperrors.NewDimensionMismatch(op, q.units.String(), o.units.String())
	}
	return o.Convert(q.units)
}

// Mul returns q * o. Values multiply and composites combine
// symbolically; no conversion factor is applied.
func (q Quantity) Mul(o Quantity) Quantity {
	return product(q.val*o.val, q.units.Mul(o.units), q.dims.Mul(o.dims))
}

// Div returns q / o.
func (q Quantity) Div(o Quantity) Quantity {
	return product(q.val/o.val, q.units.Div(o.units), q.dims.Div(o.dims))
}

// MulUnits multiplies the composite in without touching the value.
func (q Quantity) MulUnits(u unit.Units) (Quantity, error) {
	return New(q.val, q.units.Mul(u))
}

// DivUnits divides the composite out without touching the value.
func (q Quantity) DivUnits(u unit.Units) (Quantity, error) {
	return New(q.val, q.units.Div(u))
}

func product(v float64, u unit.Units, d unit.Dims) Quantity {
	return Quantity{val: v, units: u, dims: d, kind: kindFor(d)}
}

// MulScalar scales the value, units unchanged.
func (q Quantity) MulScalar(x float64) Quantity {
	q.val *= x
	return q
}

// DivScalar divides the value, units unchanged.
func (q Quantity) DivScalar(x float64) Quantity {
	q.val /= x
	return q
}

// MulBool gates the value: true leaves it unchanged, false zeroes it
// while preserving the value's sign.
func (q Quantity) MulBool(b bool) Quantity {
	if !b {
		q.val = math.Copysign(0, q.val)
	}
	return q
}

// Neg returns -q.
func (q Quantity) Neg() Quantity {
	q.val = -q.val
	return q
}

// Pow raises the quantity to an integer power: the value exponentiates
// and every atom's power multiplies by n.
func (q Quantity) Pow(n int64) Quantity {
	u := q.units.Pow(n)
	return product(math.Pow(q.val, float64(n)), u, q.dims.Pow(n))
}

// PowRat raises the quantity to a rational power. A square root of an
// even-powered composite cancels exactly in the exponents.
func (q Quantity) PowRat(p rational.Rational) Quantity {
	u := q.units.PowRat(p)
	return product(math.Pow(q.val, p.Float64()), u, q.dims.PowRat(p))
}

// Sqrt is PowRat(1/2).
func (q Quantity) Sqrt() Quantity {
	h, _ := rational.New(1, 2)
	u := q.units.PowRat(h)
	return product(math.Sqrt(q.val), u, q.dims.PowRat(h))
}

// Equal reports whether the two quantities denote the same physical
// value. It is total: mismatched dimensions compare unequal rather
// than failing.
func (q Quantity) Equal(o Quantity) bool {
	r, err := q.reconcile("compare", o)
	if err != nil {
		return false
	}
	return q.val == r.val
}

// Less reports whether q is strictly below o. Unlike Equal, comparing
// across dimensions is a hard failure.
func (q Quantity) Less(o Quantity) (bool, error) {
	r, err := q.reconcile("compare", o)
	if err != nil {
		return false, err
	}
	return q.val < r.val, nil
}

// Min returns whichever operand is smaller when compared in a common
// frame. The winner keeps its original units.
func Min(a, b Quantity) (Quantity, error) {
	less, err := b.Less(a)
	if err != nil {
		return Quantity{}, err
	}
	if less {
		return b, nil
	}
	return a, nil
}

// Max returns whichever operand is larger when compared in a common
// frame. The winner keeps its original units.
func Max(a, b Quantity) (Quantity, error) {
	greater, err := a.Less(b)
	if err != nil {
		return Quantity{}, err
	}
	if greater {
		return b, nil
	}
	return a, nil
}

// Quo converts q into o's units and returns the bare numeric ratio.
func (q Quantity) Quo(o Quantity) (float64, error) {
	c, err := q.Convert(o.units)
	if err != nil {
		return 0, err
	}
	return c.val / o.val, nil
}

// FloorDiv is Quo rounded toward negative infinity.
func (q Quantity) FloorDiv(o Quantity) (float64, error) {
	r, err := q.Quo(o)
	if err != nil {
		return 0, err
	}
	return math.Floor(r), nil
}

// CeilDiv is Quo rounded toward positive infinity.
func (q Quantity) CeilDiv(o Quantity) (float64, error) {
	r, err := q.Quo(o)
	if err != nil {
		return 0, err
	}
	return math.Ceil(r), nil
}

// Mod converts q into o's units and returns the remainder of floored
// division, wrapped in o's units. The result takes the divisor's sign.
func (q Quantity) Mod(o Quantity) (Quantity, error) {
	c, err := q.Convert(o.units)
	if err != nil {
		return Quantity{}, err
	}
	r := c.val - math.Floor(c.val/o.val)*o.val
	return Quantity{val: r, units: o.units, dims: o.dims, kind: o.kind}, nil
}

// Rem converts q into o's units and returns the remainder of truncated
// division, wrapped in o's units. The result takes the dividend's sign.
func (q Quantity) Rem(o Quantity) (Quantity, error) {
	c, err := q.Convert(o.units)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{val: math.Mod(c.val, o.val), units: o.units, dims: o.dims, kind: o.kind}, nil
}
