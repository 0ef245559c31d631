package lattice

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
)

// ErrInvalidConfig reports a lattice configuration that cannot produce a grid.
var ErrInvalidConfig = errors.New("lattice: invalid config")

// Config describes the lattice geometry and randomization behaviour.
type Config struct {
	// CanvasSize is the half-extent of the lattice on both axes.
	CanvasSize int
	// CellSize is the edge length of a single cell.
	CellSize int
	// CellGap is the spacing between adjacent cells.
	CellGap int

	// Seed seeds the randomizer. Zero picks a time-based seed.
	Seed int64
	// AutoRandomize queues one randomize trigger right after construction.
	AutoRandomize bool
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		CanvasSize:    10,
		CellSize:      1,
		CellGap:       0,
		AutoRandomize: true,
	}
}

// Geometry limits. MaxAxisCells bounds the grid to MaxAxisCells² cells;
// maxExtent keeps the axis arithmetic in range on 32-bit ints.
const (
	MaxAxisCells = 2048
	maxExtent    = 1 << 24
)

// Step is the distance between adjacent lattice points.
func (c Config) Step() int { return c.CellSize + c.CellGap }

// Validate rejects geometry that would hang or silently produce no cells.
func (c Config) Validate() error {
	if c.CanvasSize <= 0 {
		return fmt.Errorf("%w: canvas size %d must be positive", ErrInvalidConfig, c.CanvasSize)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: cell size %d must be positive", ErrInvalidConfig, c.CellSize)
	}
	if c.CellGap < 0 {
		return fmt.Errorf("%w: cell gap %d must not be negative", ErrInvalidConfig, c.CellGap)
	}
	if c.CanvasSize > maxExtent || c.CellSize > maxExtent || c.CellGap > maxExtent {
		return fmt.Errorf("%w: canvas %d, cell %d and gap %d must not exceed %d",
			ErrInvalidConfig, c.CanvasSize, c.CellSize, c.CellGap, maxExtent)
	}
	if axis := c.AxisCells(); axis > MaxAxisCells {
		return fmt.Errorf("%w: %d cells per axis exceeds %d", ErrInvalidConfig, axis, MaxAxisCells)
	}
	return nil
}

// AxisCells returns the number of lattice points along each axis,
// ceil(2·CanvasSize / Step). Only meaningful for geometry within the limits.
func (c Config) AxisCells() int {
	step := c.Step()
	if step <= 0 || c.CanvasSize <= 0 {
		return 0
	}
	return (2*c.CanvasSize + step - 1) / step
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.CanvasSize, "canvas", c.CanvasSize, "lattice half-extent on both axes")
	fs.IntVar(&c.CellSize, "cell", c.CellSize, "cell edge length")
	fs.IntVar(&c.CellGap, "gap", c.CellGap, "gap between adjacent cells")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "randomizer seed (0 = time based)")
	fs.BoolVar(&c.AutoRandomize, "auto", c.AutoRandomize, "randomize the grid once after setup")
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
// Missing keys keep their defaults; a value that does not parse is reported
// as ErrInvalidConfig. Range checks are left to Validate.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	ints := []struct {
		key string
		dst *int
	}{
		{"canvas", &c.CanvasSize},
		{"cell", &c.CellSize},
		{"gap", &c.CellGap},
	}
	for _, f := range ints {
		v, ok := cfg[f.key]
		if !ok {
			continue
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("%w: %s %q: %v", ErrInvalidConfig, f.key, v, err)
		}
		*f.dst = parsed
	}
	if v, ok := cfg["seed"]; ok {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, fmt.Errorf("%w: seed %q: %v", ErrInvalidConfig, v, err)
		}
		c.Seed = parsed
	}
	if v, ok := cfg["auto_randomize"]; ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("%w: auto_randomize %q: %v", ErrInvalidConfig, v, err)
		}
		c.AutoRandomize = parsed
	}
	return c, nil
}

// Map renders the configuration back into FromMap's key/value form.
func (c Config) Map() map[string]string {
	return map[string]string{
		"canvas":         strconv.Itoa(c.CanvasSize),
		"cell":           strconv.Itoa(c.CellSize),
		"gap":            strconv.Itoa(c.CellGap),
		"seed":           strconv.FormatInt(c.Seed, 10),
		"auto_randomize": strconv.FormatBool(c.AutoRandomize),
	}
}
