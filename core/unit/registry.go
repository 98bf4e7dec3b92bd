package unit

import (
	"sort"
	"sync"

	apperrors "github.com/measurekit/measurekit/core/errors"
	"github.com/measurekit/measurekit/core/rational"
)

// BaseFactor is the multiplicative factor from a unit atom to its base
// reference, split into an exact rational component and an inexact
// floating component so irrational constants never contaminate exact
// rational units. The full factor is Inexact * Exact.
type BaseFactor struct {
	Inexact float64
	Exact   rational.Rational
}

// UnityFactor is the base factor of a base unit.
var UnityFactor = BaseFactor{Inexact: 1, Exact: rational.One}

// unitEntry is the registry record for one declared unit.
type unitEntry struct {
	symbol     string
	abbr       string
	name       string
	dims       Dims
	factor     BaseFactor
	offset     rational.Rational
	prefixable bool
	// kiloReferenced marks the unit whose base reference carries a
	// built-in kilo prefix (the SI gram: the coherent mass base is the
	// kilogram). Factor synthesis compensates with a -3 tens correction.
	kiloReferenced bool
}

type dimEntry struct {
	name string
	abbr string
}

type derivedDimEntry struct {
	name string
	abbr string
	of   Dims
}

// registry holds the process-wide registration tables: populated once at
// initialization from declarative definitions, then read-only.
type registry struct {
	mu          sync.RWMutex
	dims        map[string]dimEntry
	derivedDims map[string]derivedDimEntry
	units       map[string]unitEntry
	symbols     map[string]Atom // every resolvable symbol, prefixed forms included
	tempDim     Dims
}

var reg = &registry{
	dims:        make(map[string]dimEntry),
	derivedDims: make(map[string]derivedDimEntry),
	units:       make(map[string]unitEntry),
	symbols:     make(map[string]Atom),
}

// resetForTest clears the registry. Test helper only.
func resetForTest() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.dims = make(map[string]dimEntry)
	reg.derivedDims = make(map[string]derivedDimEntry)
	reg.units = make(map[string]unitEntry)
	reg.symbols = make(map[string]Atom)
	reg.tempDim = NoDims
}

// DeclareDimension registers a new base dimension and returns its
// single-atom composite.
func DeclareDimension(name, abbr string) (Dims, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.dims[name]; ok {
		return NoDims, &apperrors.RegistrationError{
			Symbol: name,
			Reason: "dimension name in use",
			Err:    apperrors.ErrAlreadyRegistered,
		}
	}
	reg.dims[name] = dimEntry{name: name, abbr: abbr}
	return NewDims(Atom{Name: name, Power: rational.One}), nil
}

// DeclareDerivedDimension registers a named alias for a composite of
// existing dimensions (e.g. Velocity = Length/Time) and returns the
// composite itself.
func DeclareDerivedDimension(name, abbr string, of Dims) (Dims, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.dims[name]; ok {
		return NoDims, &apperrors.RegistrationError{
			Symbol: name,
			Reason: "dimension name in use",
			Err:    apperrors.ErrAlreadyRegistered,
		}
	}
	if _, ok := reg.derivedDims[name]; ok {
		return NoDims, &apperrors.RegistrationError{
			Symbol: name,
			Reason: "derived dimension name in use",
			Err:    apperrors.ErrAlreadyRegistered,
		}
	}
	for _, a := range of.Atoms() {
		if _, ok := reg.dims[a.Name]; !ok {
			return NoDims, apperrors.NewRegistration(name, "composite references unknown dimension "+a.Name)
		}
	}
	reg.derivedDims[name] = derivedDimEntry{name: name, abbr: abbr, of: of}
	return of, nil
}

// BaseUnitOption customizes a base unit declaration.
type BaseUnitOption func(*unitEntry)

// KiloReferenced marks the base unit whose coherent base reference
// carries a built-in kilo prefix. This is a definitional special case
// for the SI mass unit, not a pattern to extend.
func KiloReferenced() BaseUnitOption {
	return func(e *unitEntry) { e.kiloReferenced = true }
}

// DeclareBaseUnit registers a base unit for a dimension, implicitly
// generating the full SI-prefixed symbol family, and returns its
// single-atom composite.
func DeclareBaseUnit(symbol, abbr, name string, dim Dims, opts ...BaseUnitOption) (Units, error) {
	entry := unitEntry{
		symbol:     symbol,
		abbr:       abbr,
		name:       name,
		dims:       dim,
		factor:     UnityFactor,
		prefixable: true,
	}
	for _, opt := range opts {
		opt(&entry)
	}
	return register(entry)
}

// RegisterUnit registers a unit whose factor to its base reference has
// already been synthesized (see the convert package and quantity.Define
// for the declaration helpers that compute it). offset is the additive
// offset for affine (temperature) scales; zero for everything else.
func RegisterUnit(symbol, abbr, name string, dims Dims, factor BaseFactor, offset rational.Rational, prefixable bool) (Units, error) {
	return register(unitEntry{
		symbol:     symbol,
		abbr:       abbr,
		name:       name,
		dims:       dims,
		factor:     factor,
		offset:     offset,
		prefixable: prefixable,
	})
}

func register(entry unitEntry) (Units, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if entry.symbol == "" {
		return Dimensionless, apperrors.NewRegistration("", "empty unit symbol")
	}
	if _, ok := reg.units[entry.symbol]; ok {
		return Dimensionless, &apperrors.RegistrationError{
			Symbol: entry.symbol,
			Reason: "unit symbol in use",
			Err:    apperrors.ErrAlreadyRegistered,
		}
	}
	for _, a := range entry.dims.Atoms() {
		if _, ok := reg.dims[a.Name]; !ok {
			return Dimensionless, apperrors.NewRegistration(entry.symbol, "unknown dimension "+a.Name)
		}
	}

	// Reserve every symbol of the prefix family before committing, so a
	// collision leaves the registry untouched.
	family := []int{0}
	if entry.prefixable {
		family = prefixOrder
	}
	for _, tens := range family {
		s := prefixSymbols[tens] + entry.symbol
		if _, ok := reg.symbols[s]; ok {
			return Dimensionless, &apperrors.RegistrationError{
				Symbol: entry.symbol,
				Reason: "symbol " + s + " collides with an existing unit",
				Err:    apperrors.ErrAlreadyRegistered,
			}
		}
	}
	for _, tens := range family {
		s := prefixSymbols[tens] + entry.symbol
		reg.symbols[s] = Atom{Name: entry.symbol, Tens: tens, Power: rational.One}
	}
	reg.units[entry.symbol] = entry

	return NewUnits(Atom{Name: entry.symbol, Power: rational.One}), nil
}

// SetTemperatureDimension records which dimension composite tags
// quantities as affine. It must be a single dimension atom at power 1.
func SetTemperatureDimension(d Dims) error {
	atoms := d.Atoms()
	if len(atoms) != 1 || !atoms[0].Power.IsOne() {
		return apperrors.NewRegistration("", "temperature dimension must be a single atom at power 1")
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.tempDim = d
	return nil
}

// IsTemperature reports whether d is exactly the registered temperature
// dimension at power 1.
func IsTemperature(d Dims) bool {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return !reg.tempDim.IsNone() && d.Equal(reg.tempDim)
}

func lookup(name string) (unitEntry, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	e, ok := reg.units[name]
	if !ok {
		return unitEntry{}, apperrors.NewUnknownUnit(name)
	}
	return e, nil
}

// DimsOf returns the natural dimension of a declared unit.
func DimsOf(name string) (Dims, error) {
	e, err := lookup(name)
	if err != nil {
		return NoDims, err
	}
	return e.dims, nil
}

// BaseFactorOf returns the (inexact, exact) factor from a declared unit
// to its base reference.
func BaseFactorOf(name string) (BaseFactor, error) {
	e, err := lookup(name)
	if err != nil {
		return BaseFactor{}, err
	}
	return e.factor, nil
}

// OffsetOf returns the affine offset of a declared unit; zero for
// pure-scale units and absolute temperature scales.
func OffsetOf(name string) (rational.Rational, error) {
	e, err := lookup(name)
	if err != nil {
		return rational.Zero, err
	}
	return e.offset, nil
}

// IsKiloReferenced reports whether the named unit carries the built-in
// kilo base reference (the SI gram).
func IsKiloReferenced(name string) bool {
	e, err := lookup(name)
	return err == nil && e.kiloReferenced
}

// AbbrOf returns the display abbreviation for a unit atom, prefix
// included. Unregistered prefix exponents fail with InvalidPrefix.
func AbbrOf(a Atom) (string, error) {
	e, err := lookup(a.Name)
	if err != nil {
		return "", err
	}
	p, ok := prefixSymbols[a.Tens]
	if !ok {
		return "", apperrors.NewInvalidPrefix(a.Tens, a.Name, "no such prefix exponent")
	}
	if a.Tens != 0 && !e.prefixable {
		return "", apperrors.NewInvalidPrefix(a.Tens, a.Name, "unit does not take prefixes")
	}
	return p + e.abbr, nil
}

// DimAbbr returns the display abbreviation of a base dimension atom,
// falling back to the name when unregistered.
func DimAbbr(name string) string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	if e, ok := reg.dims[name]; ok && e.abbr != "" {
		return e.abbr
	}
	return name
}

// Resolve looks up a single unit symbol, prefixed forms included, and
// returns it as a one-atom composite. Micro may be spelled "μ" or "u".
// This resolves registered symbols only; it does not parse compound
// unit expressions.
func Resolve(symbol string) (Units, error) {
	reg.mu.RLock()
	a, ok := reg.symbols[symbol]
	if !ok {
		a, ok = reg.symbols[normalizePrefixInput(symbol)]
	}
	reg.mu.RUnlock()
	if !ok {
		return Dimensionless, apperrors.NewUnknownUnit(symbol)
	}
	return NewUnits(a), nil
}

// Prefixed applies a power-of-ten prefix to a single-unit composite.
func Prefixed(u Units, tens int) (Units, error) {
	atoms := u.Atoms()
	if len(atoms) != 1 {
		return Dimensionless, apperrors.NewInvalidPrefix(tens, u.String(), "prefix applies to a single unit")
	}
	a := atoms[0]
	if _, ok := prefixSymbols[a.Tens+tens]; !ok {
		return Dimensionless, apperrors.NewInvalidPrefix(a.Tens+tens, a.Name, "no such prefix exponent")
	}
	e, err := lookup(a.Name)
	if err != nil {
		return Dimensionless, err
	}
	if !e.prefixable {
		return Dimensionless, apperrors.NewInvalidPrefix(tens, a.Name, "unit does not take prefixes")
	}
	a.Tens += tens
	return NewUnits(a), nil
}

// Info describes one registered unit for enumeration.
type Info struct {
	Symbol     string
	Abbr       string
	Name       string
	Dims       Dims
	Factor     BaseFactor
	Offset     rational.Rational
	Prefixable bool
}

// List returns all registered units sorted by symbol.
func List() []Info {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]Info, 0, len(reg.units))
	for _, e := range reg.units {
		out = append(out, Info{
			Symbol:     e.symbol,
			Abbr:       e.abbr,
			Name:       e.name,
			Dims:       e.dims,
			Factor:     e.factor,
			Offset:     e.offset,
			Prefixable: e.prefixable,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// DimensionByName returns the composite of a registered base or derived
// dimension.
func DimensionByName(name string) (Dims, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	if _, ok := reg.dims[name]; ok {
		return NewDims(Atom{Name: name, Power: rational.One}), nil
	}
	if e, ok := reg.derivedDims[name]; ok {
		return e.of, nil
	}
	return NoDims, apperrors.NewUnknownUnit(name)
}

// DimInfo describes one registered dimension for enumeration.
type DimInfo struct {
	Name    string
	Abbr    string
	Derived bool
	Of      Dims
}

// ListDimensions returns all registered dimensions sorted by name,
// base dimensions first.
func ListDimensions() []DimInfo {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]DimInfo, 0, len(reg.dims)+len(reg.derivedDims))
	for _, e := range reg.dims {
		out = append(out, DimInfo{Name: e.name, Abbr: e.abbr})
	}
	for _, e := range reg.derivedDims {
		out = append(out, DimInfo{Name: e.name, Abbr: e.abbr, Derived: true, Of: e.of})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Derived != out[j].Derived {
			return !out[i].Derived
		}
		return out[i].Name < out[j].Name
	})
	return out
}
