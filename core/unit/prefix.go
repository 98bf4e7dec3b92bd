package unit

import (
	apperrors "github.com/measurekit/measurekit/core/errors"
)

// prefixSymbols maps registered power-of-ten prefix exponents to their
// SI symbols. Exponent 0 is the empty prefix.
var prefixSymbols = map[int]string{
	-24: "y",
	-21: "z",
	-18: "a",
	-15: "f",
	-12: "p",
	-9:  "n",
	-6:  "μ",
	-3:  "m",
	-2:  "c",
	-1:  "d",
	0:   "",
	1:   "da",
	2:   "h",
	3:   "k",
	6:   "M",
	9:   "G",
	12:  "T",
	15:  "P",
	18:  "E",
	21:  "Z",
	24:  "Y",
}

// prefixOrder lists the registered exponents smallest first, for
// deterministic symbol family generation.
var prefixOrder = []int{-24, -21, -18, -15, -12, -9, -6, -3, -2, -1, 0, 1, 2, 3, 6, 9, 12, 15, 18, 21, 24}

// PrefixSymbol returns the SI prefix symbol for a power-of-ten exponent.
// Unregistered exponents fail with an InvalidPrefix error.
func PrefixSymbol(tens int) (string, error) {
	s, ok := prefixSymbols[tens]
	if !ok {
		return "", apperrors.NewInvalidPrefix(tens, "", "no such prefix exponent")
	}
	return s, nil
}

// normalizePrefixInput maps ASCII-friendly spellings to the canonical
// prefix symbol ("u" for micro).
func normalizePrefixInput(symbol string) string {
	if len(symbol) > 1 && symbol[0] == 'u' {
		return "μ" + symbol[1:]
	}
	return symbol
}
