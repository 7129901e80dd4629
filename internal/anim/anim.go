// Package anim implements the incremental widget-animation engine: a
// per-animation linear interpolation state machine (Animation) and a
// cooperative tick scheduler (Scheduler) that applies frames to a
// placement surface.
package anim

import (
	"errors"
	"fmt"
	"math"

	"github.com/notekit/notekit/internal/surface"
)

// ErrInvalidParameter is returned by New for a non-positive fps or
// duration. Validated before any state is created, never clamped.
var ErrInvalidParameter = errors.New("invalid animation parameter")

// timeoutSlackMS is how far past the nominal duration an animation may
// run before it is abandoned. A safety valve, not a reported error.
const timeoutSlackMS = 1000

// Params describes one animation: move Target from (BeginX, BeginY) to
// (FinalX, FinalY) inside Container over DurationMS at TargetFPS.
type Params struct {
	Target    surface.Target
	Container surface.Container

	BeginX, BeginY int
	FinalX, FinalY int

	TargetFPS  int
	DurationMS int
}

// Frame is one interpolation step, produced by Advance and consumed
// exactly once by the scheduler.
type Frame struct {
	Target    surface.Target
	Container surface.Container

	X, Y           int
	FinalX, FinalY int

	TargetFPS   int
	DurationMS  int
	ElapsedMS   float64
	FrameNumber int
	Final       bool
}

// Animation interpolates one element linearly from a begin position to
// a final position. Positions are integer pixels; the fractional part
// of each per-frame displacement accumulates in a per-axis overflow and
// is carried into an extra pixel step once it reaches a whole pixel, so
// the path lands exactly on the final position without rounding drift.
//
// Animation is not safe for concurrent use; the scheduler advances it
// from a single loop goroutine.
type Animation struct {
	p Params

	x, y        int
	frameNumber int
	elapsedMS   float64
	xOverflow   float64
	yOverflow   float64
}

// New validates params and returns a ready Animation. An animation
// whose begin equals final on both axes is completed from the start and
// never produces a frame.
func New(p Params) (*Animation, error) {
	if p.TargetFPS <= 0 {
		return nil, fmt.Errorf("%w: target fps %d", ErrInvalidParameter, p.TargetFPS)
	}
	if p.DurationMS <= 0 {
		return nil, fmt.Errorf("%w: duration %dms", ErrInvalidParameter, p.DurationMS)
	}
	return &Animation{p: p, x: p.BeginX, y: p.BeginY}, nil
}

// Completed reports whether the animation has reached its final
// position. A completed animation never produces another frame.
func (a *Animation) Completed() bool {
	return a.x == a.p.FinalX && a.y == a.p.FinalY
}

// Advance computes the next frame. ok is false once the animation has
// completed or overrun its duration by more than a second; no frame is
// produced in that case and the animation should be discarded.
func (a *Animation) Advance() (Frame, bool) {
	if a.Completed() {
		return Frame{}, false
	}
	if a.elapsedMS > float64(a.p.DurationMS)+timeoutSlackMS {
		return Frame{}, false
	}

	a.x = clip(a.x+a.step(a.p.BeginX, a.p.FinalX, &a.xOverflow),
		min(a.p.BeginX, a.p.FinalX), max(a.p.BeginX, a.p.FinalX))
	a.y = clip(a.y+a.step(a.p.BeginY, a.p.FinalY, &a.yOverflow),
		min(a.p.BeginY, a.p.FinalY), max(a.p.BeginY, a.p.FinalY))

	a.frameNumber++
	a.elapsedMS += a.frameTimeMS()

	return Frame{
		Target:      a.p.Target,
		Container:   a.p.Container,
		X:           a.x,
		Y:           a.y,
		FinalX:      a.p.FinalX,
		FinalY:      a.p.FinalY,
		TargetFPS:   a.p.TargetFPS,
		DurationMS:  a.p.DurationMS,
		ElapsedMS:   a.elapsedMS,
		FrameNumber: a.frameNumber,
		Final:       a.Completed(),
	}, true
}

// step returns the integer pixel delta for one axis and folds the
// fractional remainder into the axis overflow accumulator.
func (a *Animation) step(begin, final int, overflow *float64) int {
	floatDelta := float64(final-begin) / a.totalFrames()
	pixels := int(floatDelta)
	*overflow += floatDelta - float64(pixels)
	if math.Abs(*overflow) >= 1 {
		carry := int(*overflow)
		*overflow -= float64(carry)
		pixels += carry
	}
	return pixels
}

func (a *Animation) totalFrames() float64 {
	return float64(a.p.DurationMS) / 1000 * float64(a.p.TargetFPS)
}

func (a *Animation) frameTimeMS() float64 {
	return 1000 / float64(a.p.TargetFPS)
}

// clip bounds v to [lo, hi]. Clip, not wrap: a large single step can
// never overshoot past the target.
func clip(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
