package anim

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/notekit/notekit/internal/surface"
)

// Clock is the host scheduling facility: it arranges for fn to run on
// the host loop after roughly d. Implementations must allow After to be
// called from inside the currently executing callback, since the
// scheduler re-arms itself at the end of every tick.
type Clock interface {
	After(d time.Duration, fn func())
}

// DefaultTickInterval is roughly half the frame interval of a 60fps
// animation; positions stay responsive without flooding the host loop.
const DefaultTickInterval = 8 * time.Millisecond

// Scheduler advances every in-flight animation by one step per tick,
// applies the collected frames to the surface in enqueue order, and
// fires drain callbacks on each busy-to-idle transition.
//
// The scheduler holds no locks. All of its methods, including the tick
// itself, must run on the same loop goroutine (see Loop); schedule work
// from other goroutines with Loop.Post.
type Scheduler struct {
	clock        Clock
	surf         surface.Surface
	tickInterval time.Duration

	pending  []*Animation
	inFlight []*Animation
	busy     bool

	drainFns    map[int]func()
	nextDrainID int
}

// NewScheduler builds a scheduler and arms its first tick immediately.
// It ticks for the life of the process; there is no stop. A
// non-positive tickInterval falls back to DefaultTickInterval.
func NewScheduler(clock Clock, surf surface.Surface, tickInterval time.Duration) *Scheduler {
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}
	s := &Scheduler{
		clock:        clock,
		surf:         surf,
		tickInterval: tickInterval,
		drainFns:     map[int]func(){},
	}
	s.clock.After(s.tickInterval, s.tick)
	return s
}

// Schedule appends animations to the pending queue. Each gets its first
// frame on the next tick. Safe to call from drain callbacks.
func (s *Scheduler) Schedule(animations ...*Animation) {
	s.pending = append(s.pending, animations...)
}

// AddDrainCallback registers fn to run once per transition from busy to
// idle and returns a function that removes the registration.
func (s *Scheduler) AddDrainCallback(fn func()) func() {
	id := s.nextDrainID
	s.nextDrainID++
	s.drainFns[id] = fn
	return func() { delete(s.drainFns, id) }
}

// Busy reports whether any animation was queued at the last tick.
func (s *Scheduler) Busy() bool { return s.busy }

func (s *Scheduler) tick() {
	// Perpetual: the next tick is armed no matter what this one does.
	defer s.clock.After(s.tickInterval, s.tick)

	if len(s.pending) == 0 && len(s.inFlight) == 0 {
		if s.busy {
			s.busy = false
			s.drain()
		}
		return
	}
	s.busy = true

	// Everything due this tick: last tick's in-flight set first, then
	// newly scheduled animations, preserving enqueue order.
	due := s.inFlight
	due = append(due, s.pending...)
	s.inFlight = nil
	s.pending = nil

	frames := make([]Frame, 0, len(due))
	for _, a := range due {
		f, ok := a.Advance()
		if !ok {
			// Finished or abandoned; never requeued.
			if !a.Completed() {
				log.Debug().
					Int("duration_ms", a.p.DurationMS).
					Int("frames", a.frameNumber).
					Msg("animation overran duration, abandoned")
			}
			continue
		}
		frames = append(frames, f)
		s.inFlight = append(s.inFlight, a)
	}

	// Apply best-effort per target: a frame against a deleted element
	// is skipped, the rest of the batch still lands.
	for _, f := range frames {
		if err := s.surf.PlaceAt(f.Target, f.Container, f.X, f.Y); err != nil {
			var perr *surface.PlacementError
			if errors.As(err, &perr) {
				log.Debug().Err(err).Msg("frame dropped")
				continue
			}
			log.Warn().Err(err).Msg("unexpected placement failure")
		}
	}
}

func (s *Scheduler) drain() {
	// Snapshot so callbacks may register or remove callbacks freely.
	fns := make([]func(), 0, len(s.drainFns))
	for _, fn := range s.drainFns {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn()
	}
}
