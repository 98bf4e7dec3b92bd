package rational

import (
	"math"
	"testing"
)

func mustNew(t *testing.T, num, den int64) Rational {
	t.Helper()
	r, ok := New(num, den)
	if !ok {
		t.Fatalf("New(%d, %d) unexpectedly overflowed", num, den)
	}
	return r
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		num, den int64
		wantNum  int64
		wantDen  int64
		wantOK   bool
	}{
		{name: "already reduced", num: 3, den: 4, wantNum: 3, wantDen: 4, wantOK: true},
		{name: "reduces", num: 6, den: 8, wantNum: 3, wantDen: 4, wantOK: true},
		{name: "negative denominator", num: 1, den: -2, wantNum: -1, wantDen: 2, wantOK: true},
		{name: "double negative", num: -3, den: -9, wantNum: 1, wantDen: 3, wantOK: true},
		{name: "zero numerator", num: 0, den: 5, wantNum: 0, wantDen: 1, wantOK: true},
		{name: "zero denominator", num: 1, den: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := New(tt.num, tt.den)
			if ok != tt.wantOK {
				t.Fatalf("New(%d, %d) ok = %v, want %v", tt.num, tt.den, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Num() != tt.wantNum || got.Den() != tt.wantDen {
				t.Errorf("New(%d, %d) = %s, want %d/%d", tt.num, tt.den, got, tt.wantNum, tt.wantDen)
			}
		})
	}
}

func TestZeroValueIsZero(t *testing.T) {
	var r Rational
	if !r.IsZero() {
		t.Error("zero value should be zero")
	}
	if r.Den() != 1 {
		t.Errorf("zero value Den() = %d, want 1", r.Den())
	}
	sum, ok := r.Add(FromInt(7))
	if !ok || sum.Num() != 7 {
		t.Errorf("0 + 7 = %s (ok=%v), want 7", sum, ok)
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   string
		a, b Rational
		want Rational
	}{
		{name: "add halves", op: "add", a: mustNew(t, 1, 2), b: mustNew(t, 1, 2), want: FromInt(1)},
		{name: "add thirds", op: "add", a: mustNew(t, 1, 3), b: mustNew(t, 1, 6), want: mustNew(t, 1, 2)},
		{name: "sub to negative", op: "sub", a: mustNew(t, 1, 4), b: mustNew(t, 1, 2), want: mustNew(t, -1, 4)},
		{name: "mul cross reduce", op: "mul", a: mustNew(t, 2, 3), b: mustNew(t, 3, 4), want: mustNew(t, 1, 2)},
		{name: "div", op: "div", a: mustNew(t, 1, 2), b: mustNew(t, 1, 4), want: FromInt(2)},
		{name: "mul by zero", op: "mul", a: mustNew(t, 5, 7), b: Zero, want: Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Rational
			var ok bool
			switch tt.op {
			case "add":
				got, ok = tt.a.Add(tt.b)
			case "sub":
				got, ok = tt.a.Sub(tt.b)
			case "mul":
				got, ok = tt.a.Mul(tt.b)
			case "div":
				got, ok = tt.a.Div(tt.b)
			}
			if !ok {
				t.Fatalf("%s(%s, %s) unexpectedly overflowed", tt.op, tt.a, tt.b)
			}
			if !got.Equal(tt.want) {
				t.Errorf("%s(%s, %s) = %s, want %s", tt.op, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDivByZero(t *testing.T) {
	if _, ok := FromInt(1).Div(Zero); ok {
		t.Error("division by zero should report failure")
	}
	if _, ok := Zero.Inv(); ok {
		t.Error("Inv of zero should report failure")
	}
}

func TestOverflowDetection(t *testing.T) {
	huge := FromInt(math.MaxInt64)
	if _, ok := huge.Mul(FromInt(2)); ok {
		t.Error("MaxInt64 * 2 should overflow")
	}
	if _, ok := huge.Add(FromInt(1)); ok {
		t.Error("MaxInt64 + 1 should overflow")
	}
	if _, ok := huge.PowInt(2); ok {
		t.Error("MaxInt64^2 should overflow")
	}
	// Near the edge but representable.
	big := FromInt(3037000499) // floor(sqrt(MaxInt64))
	if _, ok := big.PowInt(2); !ok {
		t.Error("floor(sqrt(MaxInt64))^2 should fit")
	}
}

func TestPowInt(t *testing.T) {
	tests := []struct {
		name string
		base Rational
		exp  int64
		want Rational
	}{
		{name: "square", base: mustNew(t, 2, 3), exp: 2, want: mustNew(t, 4, 9)},
		{name: "cube", base: FromInt(10), exp: 3, want: FromInt(1000)},
		{name: "zeroth power", base: mustNew(t, 7, 11), exp: 0, want: One},
		{name: "negative power", base: FromInt(2), exp: -3, want: mustNew(t, 1, 8)},
		{name: "negative base odd", base: FromInt(-2), exp: 3, want: FromInt(-8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.base.PowInt(tt.exp)
			if !ok {
				t.Fatalf("%s^%d unexpectedly overflowed", tt.base, tt.exp)
			}
			if !got.Equal(tt.want) {
				t.Errorf("%s^%d = %s, want %s", tt.base, tt.exp, got, tt.want)
			}
		})
	}
}

func TestPowRat(t *testing.T) {
	tests := []struct {
		name   string
		base   Rational
		exp    Rational
		want   Rational
		wantOK bool
	}{
		{name: "integer exponent", base: mustNew(t, 3, 2), exp: FromInt(2), want: mustNew(t, 9, 4), wantOK: true},
		{name: "square root of perfect square", base: mustNew(t, 4, 9), exp: mustNew(t, 1, 2), want: mustNew(t, 2, 3), wantOK: true},
		{name: "cube root", base: FromInt(27), exp: mustNew(t, 1, 3), want: FromInt(3), wantOK: true},
		{name: "three halves", base: FromInt(4), exp: mustNew(t, 3, 2), want: FromInt(8), wantOK: true},
		{name: "inexact root", base: FromInt(2), exp: mustNew(t, 1, 2), wantOK: false},
		{name: "even root of negative", base: FromInt(-4), exp: mustNew(t, 1, 2), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.base.PowRat(tt.exp)
			if ok != tt.wantOK {
				t.Fatalf("%s^(%s) ok = %v, want %v", tt.base, tt.exp, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("%s^(%s) = %s, want %s", tt.base, tt.exp, got, tt.want)
			}
		})
	}
}

func TestPow10(t *testing.T) {
	tests := []struct {
		n      int
		want   Rational
		wantOK bool
	}{
		{n: 0, want: One, wantOK: true},
		{n: 3, want: FromInt(1000), wantOK: true},
		{n: -2, want: Rational{num: 1, den: 100}, wantOK: true},
		{n: 18, want: FromInt(1000000000000000000), wantOK: true},
		{n: 19, wantOK: false},
		{n: -19, wantOK: false},
	}

	for _, tt := range tests {
		got, ok := Pow10(tt.n)
		if ok != tt.wantOK {
			t.Errorf("Pow10(%d) ok = %v, want %v", tt.n, ok, tt.wantOK)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("Pow10(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}
}

func TestCmp(t *testing.T) {
	tests := []struct {
		name string
		a, b Rational
		want int
	}{
		{name: "equal", a: mustNew(t, 2, 4), b: mustNew(t, 1, 2), want: 0},
		{name: "less", a: mustNew(t, 1, 3), b: mustNew(t, 1, 2), want: -1},
		{name: "greater", a: mustNew(t, 3, 2), b: FromInt(1), want: 1},
		{name: "negative vs positive", a: FromInt(-1), b: FromInt(1), want: -1},
		{name: "both negative", a: mustNew(t, -1, 2), b: mustNew(t, -1, 3), want: -1},
		// Values whose cross products overflow int64: only a 128-bit
		// comparison orders these correctly.
		{name: "huge cross product", a: mustNew(t, math.MaxInt64, 3), b: mustNew(t, math.MaxInt64-1, 3), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cmp(tt.b); got != tt.want {
				t.Errorf("Cmp(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFromFloat(t *testing.T) {
	tests := []struct {
		name   string
		f      float64
		wantOK bool
	}{
		{name: "integer", f: 1000, wantOK: true},
		{name: "half", f: 0.5, wantOK: true},
		{name: "dyadic", f: 0.375, wantOK: true},
		// 0.1 the float is itself a dyadic rational that fits.
		{name: "decimal fraction", f: 0.1, wantOK: true},
		{name: "too large", f: 1e300, wantOK: false},
		{name: "nan", f: math.NaN(), wantOK: false},
		{name: "inf", f: math.Inf(1), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromFloat(tt.f)
			if ok != tt.wantOK {
				t.Fatalf("FromFloat(%v) ok = %v, want %v", tt.f, ok, tt.wantOK)
			}
			if ok && got.Float64() != tt.f {
				t.Errorf("FromFloat(%v).Float64() = %v, want exact roundtrip", tt.f, got.Float64())
			}
		})
	}
}

func TestString(t *testing.T) {
	if got := FromInt(5).String(); got != "5" {
		t.Errorf("String() = %q, want %q", got, "5")
	}
	if got := mustNew(t, -3, 4).String(); got != "-3/4" {
		t.Errorf("String() = %q, want %q", got, "-3/4")
	}
}

func TestFloat64Roundtrip(t *testing.T) {
	r := mustNew(t, 1, 4)
	if got := r.Float64(); got != 0.25 {
		t.Errorf("Float64() = %v, want 0.25", got)
	}
}
