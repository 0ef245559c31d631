//go:build ebiten

package app

import (
	"image/color"
	"strconv"
	"time"

	"lattice-life/internal/core"
	"lattice-life/internal/ecs"
	"lattice-life/internal/lattice"
	"lattice-life/internal/monitoring"
	"lattice-life/internal/render"
	"lattice-life/internal/timeutil"
	"lattice-life/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi"
)

const intervalKey = "interval_ms"

// Game adapts a lattice simulation to the ebiten.Game interface. Cell
// changes travel through a donburi event queue to the render surface, which
// is only touched from Update.
type Game struct {
	sim     *lattice.Simulation
	world   donburi.World
	surface *render.Surface
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	pacer   *core.FixedStep

	background color.RGBA
	scale      int
	hudWidth   int
	paused     bool
	tickOnce   bool
	last       time.Time
}

// New constructs a Game for sim.
func New(sim *lattice.Simulation, cfg Config) (*Game, error) {
	pal, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	world := donburi.NewWorld()
	surface := render.NewSurface(sim.Positions(), pal, cfg.Fade)
	ecs.CellChangedEvent.Subscribe(world, func(_ donburi.World, c lattice.Change) {
		surface.CellChanged(c)
	})
	sim.AddObserver(ecs.NewDonburiStore(world))
	sim.DrainTriggers()
	ecs.CellChangedEvent.ProcessEvents(world)

	layout := render.LayoutFor(cfg.LatticeConfig(), sim.Size().W)
	g := &Game{
		sim:        sim,
		world:      world,
		surface:    surface,
		painter:    render.NewGridPainter(layout),
		overlay:    ui.NewOverlay(sim, layout, cfg.Scale),
		pacer:      core.NewFixedStep(cfg.Interval, timeutil.RealClock{}),
		background: color.RGBA{R: 10, G: 10, B: 12, A: 255},
		scale:      cfg.Scale,
		hudWidth:   cfg.HUDWidth,
		last:       time.Now(),
	}
	_, h := g.viewSize()
	g.hud = ui.NewHUD(g, "Lattice Life", cfg.HUDWidth, h)
	return g, nil
}

func (g *Game) viewSize() (int, int) {
	w, h := g.painter.Size()
	return w * g.scale, h * g.scale
}

// Parameters combines the simulation snapshot with the runtime status.
func (g *Game) Parameters() core.ParameterSnapshot {
	snap := g.sim.Parameters()
	state := "running"
	if g.paused {
		state = "paused"
	}
	overlay := "off"
	if g.overlay.Visible() {
		overlay = "neighbours"
	}
	status := core.ParameterGroup{
		Name: "Status",
		Params: []core.Parameter{
			{Key: "state", Label: "State", Value: state},
			{Key: "generation", Label: "Generation", Type: core.ParamTypeInt, Value: strconv.FormatUint(g.sim.Generation(), 10)},
			{Key: "population", Label: "Population", Type: core.ParamTypeInt, Value: strconv.Itoa(g.sim.Population())},
			{Key: intervalKey, Label: "Interval (ms)", Type: core.ParamTypeInt, Value: strconv.FormatInt(g.pacer.Interval().Milliseconds(), 10)},
			{Key: "overlay", Label: "Overlay", Value: overlay},
		},
		Summary: "R rand  S reseed  N step",
	}
	snap.Groups = append([]core.ParameterGroup{status}, snap.Groups...)
	return snap
}

// ParameterControls exposes the tick interval on the HUD.
func (g *Game) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{{
		Key:    intervalKey,
		Label:  "Tick interval (ms)",
		Type:   core.ParamTypeInt,
		Step:   50,
		Min:    50,
		Max:    5000,
		HasMin: true,
		HasMax: true,
	}}
}

// SetIntParameter applies HUD adjustments.
func (g *Game) SetIntParameter(key string, value int) bool {
	if key != intervalKey || value <= 0 {
		return false
	}
	g.pacer.SetInterval(time.Duration(value) * time.Millisecond)
	return true
}

// Update handles input, advances the simulation on the fixed tick period and
// feeds queued changes to the surface.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		monitoring.Logf("app: paused=%v at generation %d", g.paused, g.sim.Generation())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.Trigger(lattice.SourceUser)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.sim.Reset(time.Now().UnixNano())
	}
	g.overlay.Update()
	w, _ := g.viewSize()
	g.hud.Update(w)

	due := g.pacer.ShouldStep()
	if (!g.paused && due) || g.tickOnce {
		g.sim.Tick()
		g.tickOnce = false
	} else if g.sim.Pending() > 0 {
		g.sim.DrainTriggers()
	}

	now := time.Now()
	dt := float32(now.Sub(g.last).Seconds())
	g.last = now
	ecs.CellChangedEvent.ProcessEvents(g.world)
	g.surface.Update(dt)
	return nil
}

// Draw renders the surface, overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.painter.Blit(screen, g.surface, g.background, g.scale)
	g.overlay.Draw(screen)
	w, _ := g.viewSize()
	g.hud.Draw(screen, w)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.viewSize()
	return w + g.hudWidth, h
}
