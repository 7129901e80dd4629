// Package app wires the animation engine to a simulated note list and
// keeps it moving: a conductor periodically reorders or deletes cards
// and schedules the reflow animations, the way the real list view does
// when notes change.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/notekit/notekit/internal/anim"
	diag "github.com/notekit/notekit/internal/diagnostics"
	"github.com/notekit/notekit/internal/layout"
	"github.com/notekit/notekit/internal/surface"
)

type Conductor struct {
	loop  *anim.Loop
	sched *anim.Scheduler
	surf  *surface.Sim
	col   layout.Column

	fps        int
	durationMS int
	itemHeight int

	// optional diagnostics sink (the ws preview, when running)
	Diag func(diag.Diagnostic)

	ids     []surface.Target // cards in list order
	heights []int
	nextID  int
	cycles  int
}

// NewConductor seeds the surface with items cards stacked in a column.
func NewConductor(loop *anim.Loop, sched *anim.Scheduler, surf *surface.Sim,
	col layout.Column, items, itemHeight, fps, durationMS int) *Conductor {

	c := &Conductor{
		loop:       loop,
		sched:      sched,
		surf:       surf,
		col:        col,
		fps:        fps,
		durationMS: durationMS,
		itemHeight: itemHeight,
	}
	for i := 0; i < items; i++ {
		c.appendCard()
	}
	for i, y := range col.Offsets(c.heights) {
		c.surf.Add(c.ids[i], 0, y)
	}
	return c
}

// Run mutates the list every interval until ctx is cancelled. Each
// mutation is posted onto the loop so all queue access stays on the
// scheduler's goroutine.
func (c *Conductor) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.loop.Post(c.cycle)
		}
	}
}

func (c *Conductor) cycle() {
	c.cycles++
	switch {
	case len(c.ids) < 3:
		id := c.appendCard()
		// new cards drop in from below the stack
		bottom := 0
		for _, h := range c.heights {
			bottom += h + c.col.Spacing
		}
		c.surf.Add(id, 0, bottom+c.itemHeight*2)
		log.Info().Any("card", id).Msg("card added")
	case c.cycles%3 == 0:
		// delete a card mid-list; in-flight frames against it are
		// dropped by the scheduler, everything else shifts up
		id := c.ids[1]
		c.surf.Remove(id)
		c.ids = append(c.ids[:1], c.ids[2:]...)
		c.heights = c.heights[:len(c.heights)-1]
		log.Info().Any("card", id).Msg("card deleted")
		c.pushDiag(diag.Diagnostic{
			Severity: diag.Info, Code: "LIST.DELETE", Summary: "card deleted",
			Evidence: map[string]any{"card": id},
		})
	default:
		// most recently touched note moves to the top
		last := c.ids[len(c.ids)-1]
		copy(c.ids[1:], c.ids[:len(c.ids)-1])
		c.ids[0] = last
	}
	c.scheduleReflow()
}

// scheduleReflow builds one animation per displaced card, exactly like
// the list view does after an insert or delete.
func (c *Conductor) scheduleReflow() {
	currentY := make([]int, len(c.ids))
	for i, id := range c.ids {
		p, ok := c.surf.Position(id)
		if !ok {
			continue
		}
		currentY[i] = p.Y
	}

	moves := c.col.Moves(currentY, c.heights)
	animations := make([]*anim.Animation, 0, len(moves))
	for _, m := range moves {
		a, err := anim.New(anim.Params{
			Target: c.ids[m.Index],
			BeginX: 0, BeginY: m.BeginY,
			FinalX: 0, FinalY: m.FinalY,
			TargetFPS:  c.fps,
			DurationMS: c.durationMS,
		})
		if err != nil {
			log.Warn().Err(err).Msg("bad animation params")
			continue
		}
		animations = append(animations, a)
	}
	c.sched.Schedule(animations...)

	log.Debug().Int("animations", len(animations)).Msg("reflow scheduled")
	c.pushDiag(diag.Diagnostic{
		Severity: diag.Info, Code: "ANIM.BATCH", Summary: "reflow scheduled",
		Evidence: map[string]any{"animations": len(animations)},
	})
}

func (c *Conductor) appendCard() surface.Target {
	id := fmt.Sprintf("card-%d", c.nextID)
	c.nextID++
	c.ids = append(c.ids, id)
	c.heights = append(c.heights, c.itemHeight)
	return id
}

func (c *Conductor) pushDiag(d diag.Diagnostic) {
	if c.Diag != nil {
		c.Diag(d)
	}
}
