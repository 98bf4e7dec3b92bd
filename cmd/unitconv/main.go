// Command unitconv converts quantities between units and inspects the
// unit catalog.
package main

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/measurekit/measurekit/core/convert"
	"github.com/measurekit/measurekit/core/quantity"
	"github.com/measurekit/measurekit/core/unit"
	"github.com/measurekit/measurekit/core/unitdef"
	"github.com/measurekit/measurekit/internal/logging"

	// Populate the registry with the standard catalog.
	_ "github.com/measurekit/measurekit/core/si"
)

const version = "0.1.0"

// CLI defines the command-line interface for unitconv.
var CLI struct {
	// Global flags
	Defs      string `name:"defs" short:"d" help:"Extra unit definitions file (YAML)" type:"existingfile"`
	LogLevel  string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format (text, json)"`

	Convert  ConvertCmd  `cmd:"" help:"Convert a value between units"`
	Factor   FactorCmd   `cmd:"" help:"Show the conversion factor between two units"`
	Units    UnitsGroup  `cmd:"" help:"Unit catalog operations"`
	Dims     DimsCmd     `cmd:"" help:"List registered dimensions"`
	Describe DescribeCmd `cmd:"" help:"Describe a unit symbol"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// UnitsGroup contains catalog enumeration operations.
type UnitsGroup struct {
	List UnitsListCmd `cmd:"" help:"List registered units"`
}

// ConvertCmd converts a value between two unit symbols.
type ConvertCmd struct {
	Value string `arg:"" help:"Numeric value"`
	From  string `arg:"" help:"Source unit symbol"`
	To    string `arg:"" required:"" help:"Destination unit symbol"`
}

func (c *ConvertCmd) Run() error {
	v, err := strconv.ParseFloat(c.Value, 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", c.Value, err)
	}
	from, err := unit.Resolve(c.From)
	if err != nil {
		return fmt.Errorf("unknown source unit: %w", err)
	}
	to, err := unit.Resolve(c.To)
	if err != nil {
		return fmt.Errorf("unknown destination unit: %w", err)
	}

	q, err := quantity.New(v, from)
	if err != nil {
		return err
	}
	out, err := q.Convert(to)
	if err != nil {
		return fmt.Errorf("failed to convert: %w", err)
	}
	logging.Debug("converted", "from", q.String(), "to", out.String(), "kind", q.Kind().String())
	fmt.Println(out)
	return nil
}

// FactorCmd prints the synthesized factor between two unit symbols.
type FactorCmd struct {
	From string `arg:"" help:"Source unit symbol"`
	To   string `arg:"" help:"Destination unit symbol"`
}

func (c *FactorCmd) Run() error {
	from, err := unit.Resolve(c.From)
	if err != nil {
		return fmt.Errorf("unknown source unit: %w", err)
	}
	to, err := unit.Resolve(c.To)
	if err != nil {
		return fmt.Errorf("unknown destination unit: %w", err)
	}
	f, err := convert.Between(from, to)
	if err != nil {
		return fmt.Errorf("failed to synthesize factor: %w", err)
	}
	if r, ok := f.Rat(); ok {
		fmt.Printf("%s (exact)\n", r)
		return nil
	}
	fmt.Printf("%g (approximate)\n", f.Float64())
	return nil
}

// UnitsListCmd lists registered units.
type UnitsListCmd struct {
	Dimension string `help:"Only units of this dimension (by name)"`
}

func (c *UnitsListCmd) Run() error {
	var filter unit.Dims
	if c.Dimension != "" {
		d, err := unit.DimensionByName(c.Dimension)
		if err != nil {
			return fmt.Errorf("unknown dimension: %w", err)
		}
		filter = d
	}

	for _, info := range unit.List() {
		if c.Dimension != "" && !info.Dims.Equal(filter) {
			continue
		}
		line := fmt.Sprintf("%-8s %s", info.Symbol, info.Name)
		if !info.Dims.IsNone() {
			line += fmt.Sprintf(" [%s]", info.Dims)
		}
		if info.Prefixable {
			line += " (prefixable)"
		}
		fmt.Println(line)
	}
	return nil
}

// DimsCmd lists registered dimensions.
type DimsCmd struct{}

func (c *DimsCmd) Run() error {
	for _, d := range unit.ListDimensions() {
		if d.Derived {
			fmt.Printf("%-16s %-4s = %s\n", d.Name, d.Abbr, d.Of)
		} else {
			fmt.Printf("%-16s %s\n", d.Name, d.Abbr)
		}
	}
	return nil
}

// DescribeCmd describes one unit symbol, prefixed forms included.
type DescribeCmd struct {
	Symbol string `arg:"" help:"Unit symbol to describe"`
}

func (c *DescribeCmd) Run() error {
	u, err := unit.Resolve(c.Symbol)
	if err != nil {
		return fmt.Errorf("unknown unit: %w", err)
	}
	dims, err := u.Dims()
	if err != nil {
		return err
	}
	fmt.Printf("symbol:    %s\n", u)
	fmt.Printf("dimension: %s\n", dims)

	f, err := convert.ToBase(u)
	if err != nil {
		return err
	}
	if r, ok := f.Rat(); ok {
		fmt.Printf("to base:   %s (exact)\n", r)
	} else {
		fmt.Printf("to base:   %g (approximate)\n", f.Float64())
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("unitconv %s\n", version)
	return nil
}

func setup() error {
	level, err := logging.ParseLevel(CLI.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(CLI.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)

	if CLI.Defs != "" {
		defs, err := unitdef.LoadFile(CLI.Defs)
		if err != nil {
			return err
		}
		if err := unitdef.Apply(defs); err != nil {
			return fmt.Errorf("failed to apply unit definitions: %w", err)
		}
		logging.Info("loaded unit definitions", "path", CLI.Defs,
			"units", len(defs.Units), "dimensions", len(defs.Dimensions))
	}
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("unitconv"),
		kong.Description("Unit-aware quantity conversion and catalog inspection"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	ctx.FatalIfErrorf(setup())
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
