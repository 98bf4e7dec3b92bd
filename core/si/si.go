// Package si declares the standard catalog of dimensions and units:
// the seven SI base units with their prefix families, the common
// coherent derived units, accepted non-SI units of time and volume,
// the Celsius and Fahrenheit temperature scales and a handful of
// customary US units with exact definitions. Importing the package
// populates the process-wide registry.
package si

import (
	"fmt"

	"github.com/measurekit/measurekit/core/quantity"
	"github.com/measurekit/measurekit/core/rational"
	"github.com/measurekit/measurekit/core/unit"
)

// Base dimensions.
var (
	Length      unit.Dims
	Mass        unit.Dims
	Time        unit.Dims
	Current     unit.Dims
	Temperature unit.Dims
	Amount      unit.Dims
	Luminosity  unit.Dims
)

// Derived dimensions.
var (
	Area         unit.Dims
	Volume       unit.Dims
	Velocity     unit.Dims
	Acceleration unit.Dims
	Force        unit.Dims
	Energy       unit.Dims
	Power        unit.Dims
	Pressure     unit.Dims
	Frequency    unit.Dims
)

// Base units. Gram is the registry atom for mass; the coherent base of
// the mass dimension is nevertheless the kilogram.
var (
	Meter   unit.Units
	Gram    unit.Units
	Second  unit.Units
	Ampere  unit.Units
	Kelvin  unit.Units
	Mole    unit.Units
	Candela unit.Units
)

// Common prefixed forms.
var (
	Kilometer  unit.Units
	Centimeter unit.Units
	Millimeter unit.Units
	Kilogram   unit.Units
	Milligram  unit.Units
)

// Coherent derived units.
var (
	Hertz  unit.Units
	Newton unit.Units
	Pascal unit.Units
	Joule  unit.Units
	Watt   unit.Units
)

// Accepted non-SI units.
var (
	Liter  unit.Units
	Bar    unit.Units
	Minute unit.Units
	Hour   unit.Units
	Day    unit.Units
)

// Temperature scales.
var (
	Celsius    unit.Units
	Fahrenheit unit.Units
)

// Customary US units, defined exactly.
var (
	Inch  unit.Units
	Foot  unit.Units
	Yard  unit.Units
	Mile  unit.Units
	Pound unit.Units
)

func init() {
	Length = mustDim("Length", "L")
	Mass = mustDim("Mass", "M")
	Time = mustDim("Time", "T")
	Current = mustDim("Current", "I")
	Temperature = mustDim("Temperature", "Θ")
	Amount = mustDim("Amount", "N")
	Luminosity = mustDim("Luminosity", "J")
	if err := unit.SetTemperatureDimension(Temperature); err != nil {
		panic(fmt.Sprintf("si: temperature dimension: %v", err))
	}

	Area = mustDerivedDim("Area", "A", Length.Pow(2))
	Volume = mustDerivedDim("Volume", "V", Length.Pow(3))
	Velocity = mustDerivedDim("Velocity", "v", Length.Div(Time))
	Acceleration = mustDerivedDim("Acceleration", "a", Length.Div(Time.Pow(2)))
	Force = mustDerivedDim("Force", "F", Mass.Mul(Length).Div(Time.Pow(2)))
	Energy = mustDerivedDim("Energy", "E", Force.Mul(Length))
	Power = mustDerivedDim("Power", "P", Energy.Div(Time))
	Pressure = mustDerivedDim("Pressure", "p", Force.Div(Area))
	Frequency = mustDerivedDim("Frequency", "f", Time.Inv())

	Meter = mustBase("m", "m", "meter", Length)
	Gram = mustBase("g", "g", "gram", Mass, unit.KiloReferenced())
	Second = mustBase("s", "s", "second", Time)
	Ampere = mustBase("A", "A", "ampere", Current)
	Kelvin = mustBase("K", "K", "kelvin", Temperature)
	Mole = mustBase("mol", "mol", "mole", Amount)
	Candela = mustBase("cd", "cd", "candela", Luminosity)

	Kilometer = mustPrefixed(Meter, 3)
	Centimeter = mustPrefixed(Meter, -2)
	Millimeter = mustPrefixed(Meter, -3)
	Kilogram = mustPrefixed(Gram, 3)
	Milligram = mustPrefixed(Gram, -3)

	Hertz = mustDefine("Hz", "Hz", "hertz", 1, Second.Inv(), true)
	Newton = mustDefine("N", "N", "newton", 1, Kilogram.Mul(Meter).Div(Second.Pow(2)), true)
	Pascal = mustDefine("Pa", "Pa", "pascal", 1, Newton.Div(Meter.Pow(2)), true)
	Joule = mustDefine("J", "J", "joule", 1, Newton.Mul(Meter), true)
	Watt = mustDefine("W", "W", "watt", 1, Joule.Div(Second), true)

	Liter = mustDefineExact("L", "L", "liter", ratio(1, 1000), Meter.Pow(3), true)
	Bar = mustDefine("bar", "bar", "bar", 100000, Pascal, true)
	Minute = mustDefine("min", "min", "minute", 60, Second, false)
	Hour = mustDefine("hr", "hr", "hour", 60, Minute, false)
	Day = mustDefine("d", "d", "day", 24, Hour, false)

	Celsius = mustOffset("°C", "°C", "celsius", rational.One, Kelvin, ratio(5463, 20))
	Fahrenheit = mustOffset("°F", "°F", "fahrenheit", ratio(5, 9), Kelvin, ratio(45967, 100))

	Inch = mustDefineExact("in", "in", "inch", ratio(127, 5000), Meter, false)
	Foot = mustDefine("ft", "ft", "foot", 12, Inch, false)
	Yard = mustDefine("yd", "yd", "yard", 3, Foot, false)
	Mile = mustDefine("mi", "mi", "mile", 5280, Foot, false)
	Pound = mustDefineExact("lb", "lb", "pound", ratio(45359237, 100000000), Kilogram, false)
}

func ratio(num, den int64) rational.Rational {
	r, ok := rational.New(num, den)
	if !ok {
		panic(fmt.Sprintf("si: bad ratio %d/%d", num, den))
	}
	return r
}

func mustDim(name, abbr string) unit.Dims {
	d, err := unit.DeclareDimension(name, abbr)
	if err != nil {
		panic(fmt.Sprintf("si: dimension %s: %v", name, err))
	}
	return d
}

func mustDerivedDim(name, abbr string, of unit.Dims) unit.Dims {
	d, err := unit.DeclareDerivedDimension(name, abbr, of)
	if err != nil {
		panic(fmt.Sprintf("si: dimension %s: %v", name, err))
	}
	return d
}

func mustBase(symbol, abbr, name string, dim unit.Dims, opts ...unit.BaseUnitOption) unit.Units {
	u, err := unit.DeclareBaseUnit(symbol, abbr, name, dim, opts...)
	if err != nil {
		panic(fmt.Sprintf("si: unit %s: %v", symbol, err))
	}
	return u
}

func mustPrefixed(u unit.Units, tens int) unit.Units {
	p, err := unit.Prefixed(u, tens)
	if err != nil {
		panic(fmt.Sprintf("si: prefix 10^%d: %v", tens, err))
	}
	return p
}

func mustDefine(symbol, abbr, name string, value float64, of unit.Units, prefixable bool) unit.Units {
	u, err := quantity.Define(symbol, abbr, name, value, of, prefixable)
	if err != nil {
		panic(fmt.Sprintf("si: unit %s: %v", symbol, err))
	}
	return u
}

func mustDefineExact(symbol, abbr, name string, value rational.Rational, of unit.Units, prefixable bool) unit.Units {
	u, err := quantity.DefineExact(symbol, abbr, name, value, of, prefixable)
	if err != nil {
		panic(fmt.Sprintf("si: unit %s: %v", symbol, err))
	}
	return u
}

func mustOffset(symbol, abbr, name string, scale rational.Rational, of unit.Units, offset rational.Rational) unit.Units {
	u, err := quantity.DefineOffset(symbol, abbr, name, scale, of, offset)
	if err != nil {
		panic(fmt.Sprintf("si: unit %s: %v", symbol, err))
	}
	return u
}
