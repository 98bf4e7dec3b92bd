// Package unitdef loads declarative unit and dimension definitions from
// YAML and registers them. Definitions reference existing units and
// dimensions structurally (symbol plus rational power), so no expression
// parsing is involved.
package unitdef

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/measurekit/measurekit/core/quantity"
	"github.com/measurekit/measurekit/core/rational"
	"github.com/measurekit/measurekit/core/unit"
)

// File is the top-level definitions document.
type File struct {
	Dimensions []Dimension `yaml:"dimensions"`
	Units      []Unit      `yaml:"units"`
}

// Dimension declares a base dimension, or a derived one when Of is set.
type Dimension struct {
	Name string `yaml:"name"`
	Abbr string `yaml:"abbr"`
	Of   []Term `yaml:"of"`
}

// Unit declares a derived unit in terms of registered symbols. Exactly
// one of Value and Exact gives the scale (both absent means 1). Offset
// marks an affine temperature scale.
type Unit struct {
	Symbol   string  `yaml:"symbol"`
	Abbr     string  `yaml:"abbr"`
	Name     string  `yaml:"name"`
	Value    float64 `yaml:"value"`
	Exact    *Ratio  `yaml:"exact"`
	Of       []Term  `yaml:"of"`
	Offset   *Ratio  `yaml:"offset"`
	Prefixes bool    `yaml:"prefixes"`
}

// Term is one factor of a defining composite: a unit symbol (prefixed
// forms allowed) or a dimension name, raised to a rational power.
type Term struct {
	Unit      string `yaml:"unit"`
	Dimension string `yaml:"dimension"`
	Power     *Ratio `yaml:"power"`
}

// Ratio is a rational number in YAML: a plain integer, a float, or a
// "num/den" string.
type Ratio struct {
	r rational.Rational
}

// Rat returns the parsed rational.
func (r *Ratio) Rat() rational.Rational { return r.r }

// UnmarshalYAML accepts 3, 2.5 or "3/20".
func (r *Ratio) UnmarshalYAML(node *yaml.Node) error {
	var n int64
	if err := node.Decode(&n); err == nil {
		r.r = rational.FromInt(n)
		return nil
	}

	var f float64
	if err := node.Decode(&f); err == nil {
		v, ok := rational.FromFloat(f)
		if !ok {
			return fmt.Errorf("value %v is not representable as a rational", f)
		}
		r.r = v
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("ratio must be a number or \"num/den\" string: %w", err)
	}
	var num, den int64
	if _, err := fmt.Sscanf(s, "%d/%d", &num, &den); err != nil {
		return fmt.Errorf("malformed ratio %q: %w", s, err)
	}
	v, ok := rational.New(num, den)
	if !ok {
		return fmt.Errorf("malformed ratio %q: zero denominator", s)
	}
	r.r = v
	return nil
}

// Load parses a definitions document.
func Load(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse unit definitions: %w", err)
	}
	return &f, nil
}

// LoadFile parses a definitions file from disk.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open unit definitions: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Apply registers every dimension and unit in the document, in order.
// Dimensions register before units so units may reference them.
func Apply(f *File) error {
	for _, d := range f.Dimensions {
		if err := applyDimension(d); err != nil {
			return fmt.Errorf("dimension %s: %w", d.Name, err)
		}
	}
	for _, u := range f.Units {
		if err := applyUnit(u); err != nil {
			return fmt.Errorf("unit %s: %w", u.Symbol, err)
		}
	}
	return nil
}

func applyDimension(d Dimension) error {
	if len(d.Of) == 0 {
		_, err := unit.DeclareDimension(d.Name, d.Abbr)
		return err
	}
	of, err := dimsOfTerms(d.Of)
	if err != nil {
		return err
	}
	_, err = unit.DeclareDerivedDimension(d.Name, d.Abbr, of)
	return err
}

func applyUnit(u Unit) error {
	if len(u.Of) == 0 {
		return fmt.Errorf("defining composite is required")
	}
	of, err := unitsOfTerms(u.Of)
	if err != nil {
		return err
	}

	if u.Offset != nil {
		scale := rational.One
		if u.Exact != nil {
			scale = u.Exact.Rat()
		}
		_, err = quantity.DefineOffset(u.Symbol, u.Abbr, u.Name, scale, of, u.Offset.Rat())
		return err
	}
	if u.Exact != nil {
		_, err = quantity.DefineExact(u.Symbol, u.Abbr, u.Name, u.Exact.Rat(), of, u.Prefixes)
		return err
	}
	value := u.Value
	if value == 0 {
		value = 1
	}
	_, err = quantity.Define(u.Symbol, u.Abbr, u.Name, value, of, u.Prefixes)
	return err
}

func unitsOfTerms(terms []Term) (unit.Units, error) {
	out := unit.Dimensionless
	for _, t := range terms {
		if t.Unit == "" {
			return unit.Dimensionless, fmt.Errorf("term needs a unit symbol")
		}
		u, err := unit.Resolve(t.Unit)
		if err != nil {
			return unit.Dimensionless, err
		}
		out = out.Mul(u.PowRat(termPower(t)))
	}
	return out, nil
}

func dimsOfTerms(terms []Term) (unit.Dims, error) {
	out := unit.NoDims
	for _, t := range terms {
		if t.Dimension == "" {
			return unit.NoDims, fmt.Errorf("term needs a dimension name")
		}
		d, err := unit.DimensionByName(t.Dimension)
		if err != nil {
			return unit.NoDims, err
		}
		out = out.Mul(d.PowRat(termPower(t)))
	}
	return out, nil
}

func termPower(t Term) rational.Rational {
	if t.Power == nil {
		return rational.One
	}
	return t.Power.Rat()
}
