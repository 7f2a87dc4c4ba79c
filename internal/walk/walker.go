package walk

import (
	"github.com/nvandessel/mlwalk/internal/mittag"
	"github.com/nvandessel/mlwalk/internal/models"
	"github.com/nvandessel/mlwalk/internal/occupancy"
)

// Source supplies the uniform variates a walk consumes.
type Source interface {
	Float64() float64
	Uniform(low, high float64) float64
}

// Particle is the mutable state of one walk.
type Particle struct {
	// State is the current state index.
	State int

	// Elapsed is the particle's clock.
	Elapsed float64

	// Previous is the time of the last event. Checkpoints up to and
	// including Previous have already been recorded.
	Previous float64

	// Steps counts the events taken so far.
	Steps int64
}

// Event describes one dwell-and-move step.
type Event struct {
	Dwell      float64
	Transition Transition
}

// Walker runs walks against fixed parameters. A Walker owns its Source and
// is used by one goroutine at a time.
type Walker struct {
	params   models.StateParams
	schedule models.Schedule
	src      Source
	sampler  *mittag.Sampler
}

// NewWalker creates a Walker. params and schedule must already be validated.
func NewWalker(params models.StateParams, schedule models.Schedule, src Source) *Walker {
	return &Walker{
		params:   params,
		schedule: schedule,
		src:      src,
		sampler:  mittag.NewSampler(src),
	}
}

// Rejections returns the number of degenerate residence-time draws this
// walker has discarded.
func (w *Walker) Rejections() int64 {
	return w.sampler.Rejections()
}

// Advance performs one event: draw a residence time in p.State, record every
// checkpoint in (p.Previous, new time] with the pre-transition state, then
// move. A particle's first event also records a checkpoint at exactly
// p.Previous, so the start state fills a checkpoint at t = 0.
func (w *Walker) Advance(p *Particle, rec occupancy.Recorder) Event {
	dwell := w.sampler.Sample(w.params.Shape[p.State], w.params.Scale[p.State])
	p.Elapsed += dwell

	crossed := w.schedule.Crossed(p.Previous, p.Elapsed)
	if p.Steps == 0 {
		crossed = w.schedule.From(w.schedule.AtOrAfter(p.Previous), p.Elapsed)
	}
	for c := range crossed {
		rec.Record(c, p.State)
	}
	p.Previous = p.Elapsed

	tr := Step(p.State, w.params.States(), w.src.Uniform(0, 1))
	p.State = tr.To
	p.Steps++
	return Event{Dwell: dwell, Transition: tr}
}

// Run walks a particle from start until its clock passes the end time and
// records its final state in the terminal row. A checkpoint at t = 0 is
// recorded with the start state.
func (w *Walker) Run(start int, rec occupancy.Recorder) Particle {
	p := Particle{State: start}
	for p.Elapsed <= w.schedule.End {
		w.Advance(&p, rec)
	}
	rec.Record(w.schedule.Terminal(), p.State)
	return p
}
