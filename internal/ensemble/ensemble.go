// Package ensemble runs many independent walks in parallel and merges their
// checkpoint occupancy into one matrix.
//
// Particle i starts in the state given by the initial population's
// cumulative counts and draws from its own generator seeded with
// randsrc.ParticleSeed(seed, i). Because no stream depends on which worker
// runs the particle, the merged matrix is identical for any worker count and
// either merge strategy.
package ensemble

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/nvandessel/mlwalk/internal/constants"
	"github.com/nvandessel/mlwalk/internal/models"
	"github.com/nvandessel/mlwalk/internal/occupancy"
	"github.com/nvandessel/mlwalk/internal/randsrc"
	"github.com/nvandessel/mlwalk/internal/walk"
	"golang.org/x/sync/errgroup"
)

// ErrPopulationMismatch reports an initial population whose length differs
// from the number of states.
var ErrPopulationMismatch = errors.New("initial population does not match state count")

// Config describes one ensemble run.
type Config struct {
	Params     models.StateParams
	Schedule   models.Schedule
	Population models.Population

	// Workers is the number of goroutines simulating particles. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int

	// Seed is the base seed every particle seed is derived from.
	Seed uint64

	// Merge selects how increments reach the result. Empty means MergeLocal.
	Merge constants.MergeStrategy

	// Progress, if set, is called from worker goroutines each time roughly
	// another 1/constants.ProgressSteps of the particles has been dispatched.
	Progress func(dispatched, total int)
}

// Result is the outcome of a completed run.
type Result struct {
	Occupancy  *occupancy.Matrix
	Particles  int
	Workers    int
	Seed       uint64
	Elapsed    time.Duration
	Steps      int64
	Rejections int64
}

// Validate checks the configuration before any particle is simulated.
func (c Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return fmt.Errorf("state parameters: %w", err)
	}
	if err := c.Schedule.Validate(); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	if err := c.Population.Validate(); err != nil {
		return fmt.Errorf("population: %w", err)
	}
	if len(c.Population) != c.Params.States() {
		return fmt.Errorf("%w: %d entries for %d states", ErrPopulationMismatch, len(c.Population), c.Params.States())
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.Merge != "" && !c.Merge.Valid() {
		return fmt.Errorf("invalid merge strategy: %s (valid: local, shared)", c.Merge)
	}
	return nil
}

// Run simulates every particle of the population and returns the merged
// occupancy. On cancellation no partial result is returned.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	total := cfg.Population.Total()
	if workers > total {
		workers = total
	}
	rows, states := cfg.Schedule.Rows(), cfg.Params.States()
	assigner := models.NewAssigner(cfg.Population)

	var shared *occupancy.Shared
	if cfg.Merge == constants.MergeShared {
		shared = occupancy.NewShared(rows, states)
	}
	locals := make([]*occupancy.Matrix, workers)
	stats := make([]workerStats, workers)

	var claimed atomic.Int64
	reportEvery := max(total/constants.ProgressSteps, 1)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		var rec occupancy.Recorder
		if shared != nil {
			rec = shared
		} else {
			locals[w] = occupancy.NewMatrix(rows, states)
			rec = locals[w]
		}

		g.Go(func() error {
			src := randsrc.New(0)
			walker := walk.NewWalker(cfg.Params, cfg.Schedule, src)
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				i := int(claimed.Add(1) - 1)
				if i >= total {
					break
				}
				if cfg.Progress != nil && i%reportEvery == 0 {
					cfg.Progress(i, total)
				}

				src.Reseed(randsrc.ParticleSeed(cfg.Seed, i))
				p := walker.Run(assigner.StateOf(i), rec)
				stats[w].steps += p.Steps
				stats[w].particles++
			}
			stats[w].rejections = walker.Rejections()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ensemble run: %w", err)
	}
	elapsed := time.Since(start)

	res := &Result{
		Particles: total,
		Workers:   workers,
		Seed:      cfg.Seed,
		Elapsed:   elapsed,
	}
	if shared != nil {
		res.Occupancy = shared.Snapshot()
	} else {
		res.Occupancy = occupancy.NewMatrix(rows, states)
		for _, m := range locals {
			if err := res.Occupancy.Add(m); err != nil {
				return nil, err
			}
		}
	}
	for _, s := range stats {
		res.Steps += s.steps
		res.Rejections += s.rejections
	}
	return res, nil
}

type workerStats struct {
	particles  int
	steps      int64
	rejections int64
}
