// Package rational implements exact rational arithmetic over bounded
// (int64) integers. Every operation that could leave the representable
// range reports failure instead of wrapping, so callers can fold an exact
// value into a floating-point approximation at a point of their choosing.
package rational

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
)

// Rational is a reduced fraction with a positive denominator. The zero
// value is 0.
type Rational struct {
	num int64
	den int64 // 0 is treated as 1 so that the zero value is usable
}

// Common values.
var (
	Zero = Rational{}
	One  = Rational{num: 1, den: 1}
)

// parts returns the numerator and denominator, normalizing the zero value.
func (r Rational) parts() (int64, int64) {
	if r.den == 0 {
		return r.num, 1
	}
	return r.num, r.den
}

// New returns num/den reduced to lowest terms. It reports false when
// den is zero or the reduced form does not fit.
func New(num, den int64) (Rational, bool) {
	if den == 0 {
		return Zero, false
	}
	if num == math.MinInt64 || den == math.MinInt64 {
		// abs would overflow; such inputs never appear in unit algebra.
		return Zero, false
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs(num), den)
	return Rational{num: num / g, den: den / g}, true
}

// FromInt returns n as a rational.
func FromInt(n int64) Rational {
	return Rational{num: n, den: 1}
}

// FromFloat converts f to the exact rational value of the float. It
// reports false when f is not finite or its dyadic form does not fit an
// int64 numerator and denominator (very large or very small magnitudes).
func FromFloat(f float64) (Rational, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Zero, false
	}
	if f == math.Trunc(f) && math.Abs(f) < float64(math.MaxInt64) {
		return FromInt(int64(f)), true
	}
	frac, exp := math.Frexp(f) // f = frac * 2^exp, |frac| in [0.5, 1)
	const mantBits = 53
	mant := int64(frac * (1 << mantBits))
	exp -= mantBits
	for mant != 0 && mant%2 == 0 {
		mant /= 2
		exp++
	}
	switch {
	case exp >= 0:
		if exp > 62 {
			return Zero, false
		}
		return checkedScale(mant, int64(1)<<exp)
	default:
		if exp < -62 {
			return Zero, false
		}
		return New(mant, int64(1)<<uint(-exp))
	}
}

func checkedScale(n, scale int64) (Rational, bool) {
	p, ok := mulInt64(n, scale)
	if !ok {
		return Zero, false
	}
	return Rational{num: p, den: 1}, true
}

// Num returns the numerator of the reduced form.
func (r Rational) Num() int64 { n, _ := r.parts(); return n }

// Den returns the denominator of the reduced form (always positive).
func (r Rational) Den() int64 { _, d := r.parts(); return d }

// IsZero reports whether r is zero.
func (r Rational) IsZero() bool { return r.Num() == 0 }

// IsOne reports whether r is exactly one.
func (r Rational) IsOne() bool { n, d := r.parts(); return n == d }

// IsInt reports whether r is an integer.
func (r Rational) IsInt() bool { _, d := r.parts(); return d == 1 }

// Sign returns -1, 0 or +1.
func (r Rational) Sign() int {
	switch n := r.Num(); {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// Float64 returns the nearest float64.
func (r Rational) Float64() float64 {
	n, d := r.parts()
	return float64(n) / float64(d)
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	n, d := r.parts()
	return Rational{num: -n, den: d}
}

// Inv returns 1/r. It reports false when r is zero.
func (r Rational) Inv() (Rational, bool) {
	n, d := r.parts()
	if n == 0 {
		return Zero, false
	}
	if n < 0 {
		return Rational{num: -d, den: -n}, true
	}
	return Rational{num: d, den: n}, true
}

// Add returns r + o, reporting false on overflow.
func (r Rational) Add(o Rational) (Rational, bool) {
	rn, rd := r.parts()
	on, od := o.parts()
	// a/b + c/d = (a*(d/g) + c*(b/g)) / (b*(d/g)) with g = gcd(b, d)
	g := gcd(rd, od)
	odr := od / g
	left, ok := mulInt64(rn, odr)
	if !ok {
		return Zero, false
	}
	right, ok := mulInt64(on, rd/g)
	if !ok {
		return Zero, false
	}
	num, ok := addInt64(left, right)
	if !ok {
		return Zero, false
	}
	den, ok := mulInt64(rd, odr)
	if !ok {
		return Zero, false
	}
	return New(num, den)
}

// Sub returns r - o, reporting false on overflow.
func (r Rational) Sub(o Rational) (Rational, bool) {
	return r.Add(o.Neg())
}

// Mul returns r * o, reporting false on overflow. Cross-reduction keeps
// intermediate products as small as possible.
func (r Rational) Mul(o Rational) (Rational, bool) {
	rn, rd := r.parts()
	on, od := o.parts()
	g1 := gcd(abs(rn), od)
	g2 := gcd(abs(on), rd)
	num, ok := mulInt64(rn/g1, on/g2)
	if !ok {
		return Zero, false
	}
	den, ok := mulInt64(rd/g2, od/g1)
	if !ok {
		return Zero, false
	}
	return New(num, den)
}

// Div returns r / o, reporting false when o is zero or on overflow.
func (r Rational) Div(o Rational) (Rational, bool) {
	inv, ok := o.Inv()
	if !ok {
		return Zero, false
	}
	return r.Mul(inv)
}

// PowInt returns r^n, reporting false on overflow.
func (r Rational) PowInt(n int64) (Rational, bool) {
	if n == 0 {
		return One, true
	}
	base := r
	if n < 0 {
		inv, ok := r.Inv()
		if !ok {
			return Zero, false
		}
		base = inv
		n = -n
	}
	acc := One
	for n > 0 {
		if n&1 == 1 {
			var ok bool
			acc, ok = acc.Mul(base)
			if !ok {
				return Zero, false
			}
		}
		n >>= 1
		if n > 0 {
			var ok bool
			base, ok = base.Mul(base)
			if !ok {
				return Zero, false
			}
		}
	}
	return acc, true
}

// PowRat returns r^p exactly when possible: p must be an integer, or r
// must be a perfect p.Den()-th power (this is what lets an even-power
// unit cancel exactly under a square root). It reports false otherwise,
// or on overflow.
func (r Rational) PowRat(p Rational) (Rational, bool) {
	pn, pd := p.parts()
	if pd == 1 {
		return r.PowInt(pn)
	}
	root, ok := r.Root(pd)
	if !ok {
		return Zero, false
	}
	return root.PowInt(pn)
}

// Root returns the exact k-th root of r when one exists.
func (r Rational) Root(k int64) (Rational, bool) {
	if k <= 0 {
		return Zero, false
	}
	if k == 1 {
		return r, true
	}
	n, d := r.parts()
	if n < 0 && k%2 == 0 {
		return Zero, false
	}
	neg := n < 0
	if neg {
		n = -n
	}
	rn, ok := intRoot(n, k)
	if !ok {
		return Zero, false
	}
	rd, ok := intRoot(d, k)
	if !ok {
		return Zero, false
	}
	if neg {
		rn = -rn
	}
	return Rational{num: rn, den: rd}, true
}

// Pow10 returns 10^n, reporting false when the result does not fit.
func Pow10(n int) (Rational, bool) {
	// 10^18 is the largest power of ten below 2^63.
	if n > 18 || n < -18 {
		return Zero, false
	}
	p := int64(1)
	for i := 0; i < abs64(n); i++ {
		p *= 10
	}
	if n < 0 {
		return Rational{num: 1, den: p}, true
	}
	return Rational{num: p, den: 1}, true
}

// Cmp compares r and o, returning -1, 0 or +1. The comparison is exact:
// cross products are evaluated in 128 bits.
func (r Rational) Cmp(o Rational) int {
	rn, rd := r.parts()
	on, od := o.parts()
	// Compare rn*od with on*rd. Denominators are positive.
	return cmp128(rn, od, on, rd)
}

// Equal reports whether r and o represent the same value.
func (r Rational) Equal(o Rational) bool { return r.Cmp(o) == 0 }

// String renders r as "n" or "n/d".
func (r Rational) String() string {
	n, d := r.parts()
	if d == 1 {
		return strconv.FormatInt(n, 10)
	}
	return fmt.Sprintf("%d/%d", n, d)
}

// cmp128 compares a*b against c*d without overflow. b and d must be
// positive.
func cmp128(a, b, c, d int64) int {
	sl, sr := sign64(a), sign64(c)
	if sl != sr {
		if sl < sr {
			return -1
		}
		return 1
	}
	if sl == 0 {
		return 0
	}
	hiL, loL := bits.Mul64(uint64(abs(a)), uint64(b))
	hiR, loR := bits.Mul64(uint64(abs(c)), uint64(d))
	cmp := 0
	switch {
	case hiL != hiR:
		if hiL < hiR {
			cmp = -1
		} else {
			cmp = 1
		}
	case loL != loR:
		if loL < loR {
			cmp = -1
		} else {
			cmp = 1
		}
	}
	return cmp * sl
}

func sign64(n int64) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func abs64(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

// addInt64 adds with overflow detection.
func addInt64(a, b int64) (int64, bool) {
	s := a + b
	if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) {
		return 0, false
	}
	return s, true
}

// mulInt64 multiplies with overflow detection.
func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}

// intRoot returns the exact k-th root of a non-negative n when n is a
// perfect k-th power.
func intRoot(n, k int64) (int64, bool) {
	if n == 0 || n == 1 {
		return n, true
	}
	guess := int64(math.Round(math.Pow(float64(n), 1/float64(k))))
	// Float guidance can be off by one either way.
	for c := guess - 1; c <= guess+1; c++ {
		if c < 1 {
			continue
		}
		p, ok := FromInt(c).PowInt(k)
		if ok && p.IsInt() && p.Num() == n {
			return c, true
		}
	}
	return 0, false
}
