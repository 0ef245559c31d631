package app

import (
	"context"
	"fmt"
	"io"

	"lattice-life/internal/clock"
	"lattice-life/internal/lattice"
	"lattice-life/internal/monitoring"
	"lattice-life/internal/render"
	"lattice-life/internal/stats"
)

// RunHeadless applies pending setup triggers and prints generation 0, then
// drives the simulation from a clock runner and prints every generation to
// out as text. It returns when ctx is cancelled or the tick limit is reached.
func RunHeadless(ctx context.Context, cfg Config, out io.Writer, opts ...clock.Option) (stats.Summary, error) {
	sim, err := cfg.NewSimulation()
	if err != nil {
		return stats.Summary{}, err
	}
	defer sim.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	randomized := sim.DrainTriggers()
	header := fmt.Sprintf("generation 0  population %d", sim.Population())
	if randomized > 0 {
		header += fmt.Sprintf("  randomized %d", randomized)
	}
	if err := render.WriteASCII(out, header, sim.Size(), sim.Cells()); err != nil {
		return stats.Summary{}, fmt.Errorf("write frame: %w", err)
	}

	tracker := stats.NewTracker(sim.Len())
	var writeErr error
	onTick := func(res lattice.TickResult) {
		tracker.Record(res.Population)
		header := fmt.Sprintf("generation %d  population %d  changed %d", res.Generation, res.Population, res.Changed)
		if res.Randomized > 0 {
			header += fmt.Sprintf("  randomized %d", res.Randomized)
		}
		if err := render.WriteASCII(out, header, sim.Size(), sim.Cells()); err != nil && writeErr == nil {
			writeErr = err
			cancel()
		}
	}

	base := []clock.Option{
		clock.WithInterval(cfg.Interval),
		clock.WithMaxTicks(cfg.Ticks),
		clock.OnTick(onTick),
	}
	runner := clock.New(sim, append(base, opts...)...)
	runErr := runner.Run(ctx)

	summary := tracker.Summary()
	monitoring.Logf("headless %s: %s", runner.ID(), summary)
	if writeErr != nil {
		return summary, fmt.Errorf("write frame: %w", writeErr)
	}
	return summary, runErr
}
