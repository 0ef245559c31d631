package app

import (
	"flag"
	"fmt"
	"strconv"
	"time"

	"lattice-life/internal/core"
	"lattice-life/internal/lattice"
	"lattice-life/internal/render"
)

// Window defaults for the GUI build.
const (
	DefaultWindowWidth  = 700
	DefaultWindowHeight = 500
	DefaultHUDWidth     = 220
)

// Config collects the command-line options shared by the GUI and headless
// binaries.
type Config struct {
	Sim     string
	Lattice lattice.Config

	Scale    int
	Interval time.Duration
	Fade     time.Duration
	Alive    string
	Dead     string
	Ticks    uint64
	Workers  int
	NoAuto   bool
	HUDWidth int
}

// NewConfig returns the default configuration.
func NewConfig() Config {
	pal := render.DefaultPalette
	return Config{
		Sim:      lattice.Name,
		Lattice:  lattice.DefaultConfig(),
		Scale:    20,
		Interval: core.DefaultTickInterval,
		Fade:     150 * time.Millisecond,
		Alive:    render.Hex(pal.Alive),
		Dead:     render.Hex(pal.Dead),
		Workers:  1,
		HUDWidth: DefaultHUDWidth,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	c.Lattice.Bind(fs)
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "screen pixels per lattice unit")
	fs.DurationVar(&c.Interval, "interval", c.Interval, "tick period")
	fs.DurationVar(&c.Fade, "fade", c.Fade, "colour fade on state change (0 disables)")
	fs.StringVar(&c.Alive, "alive", c.Alive, "alive cell colour (#rrggbb)")
	fs.StringVar(&c.Dead, "dead", c.Dead, "dead cell colour (#rrggbb)")
	fs.Uint64Var(&c.Ticks, "ticks", c.Ticks, "stop after this many ticks (0 = unbounded)")
	fs.IntVar(&c.Workers, "workers", c.Workers, "neighbour resolver parallelism (1 = sequential)")
	fs.BoolVar(&c.NoAuto, "no-auto", c.NoAuto, "start from an all-dead grid instead of randomizing")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
}

// Validate checks the options that the lattice config does not cover.
func (c Config) Validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("%w: scale %d must be positive", lattice.ErrInvalidConfig, c.Scale)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval %v must be positive", lattice.ErrInvalidConfig, c.Interval)
	}
	if c.Fade < 0 {
		return fmt.Errorf("%w: fade %v must not be negative", lattice.ErrInvalidConfig, c.Fade)
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	return c.LatticeConfig().Validate()
}

// LatticeConfig returns the lattice configuration with -no-auto applied.
func (c Config) LatticeConfig() lattice.Config {
	lc := c.Lattice
	if c.NoAuto {
		lc.AutoRandomize = false
	}
	return lc
}

// Palette parses the configured colours.
func (c Config) Palette() (render.Palette, error) {
	alive, err := render.ParseHex(c.Alive)
	if err != nil {
		return render.Palette{}, fmt.Errorf("alive colour: %w", err)
	}
	dead, err := render.ParseHex(c.Dead)
	if err != nil {
		return render.Palette{}, fmt.Errorf("dead colour: %w", err)
	}
	return render.Palette{Alive: alive, Dead: dead}, nil
}

// NewSimulation builds the configured simulation through the registry.
func (c Config) NewSimulation() (*lattice.Simulation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	factory, ok := core.Sims()[c.Sim]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (available: %v)", c.Sim, core.Names())
	}
	params := c.LatticeConfig().Map()
	params["workers"] = strconv.Itoa(c.Workers)
	sim, err := factory(params)
	if err != nil {
		return nil, err
	}
	ls, ok := sim.(*lattice.Simulation)
	if !ok {
		return nil, fmt.Errorf("sim %q is not a lattice simulation", c.Sim)
	}
	return ls, nil
}
