package gallery

import (
	"fmt"
	"math"
	"time"

	"thesis-gallery/internal/dom"
	"thesis-gallery/internal/domain/session"
)

// gesturePhase tracks the per-card pointer state machine. Only one card can
// be mid-gesture at a time because pointer capture is exclusive per pointer
// id, so no cross-card coordination is needed.
type gesturePhase int

const (
	gestureIdle gesturePhase = iota
	// gestureDown: pointer is down but travel is still under the
	// threshold. Release from here is a click.
	gestureDown
	// gestureDragging: threshold exceeded, the card follows the pointer.
	gestureDragging
)

type gesture struct {
	phase     gesturePhase
	pointerID int
	downAt    time.Time

	startX, startY      float64
	startLeft, startTop float64
	suppressNextClick   bool
}

// consumeSuppressedClick reports whether the next click should be swallowed
// because the preceding gesture was a drag, resetting the flag so exactly
// one click is suppressed per drag.
func (g *gesture) consumeSuppressedClick() bool {
	was := g.suppressNextClick
	g.suppressNextClick = false
	return was
}

// attachDrag wires the freeform drag machine onto a card.
func (c *Controller) attachDrag(card *dom.Element, id string) {
	g := &gesture{}
	c.gestures[id] = g

	card.On(dom.EventPointerDown, func(ev *dom.Event) {
		c.guard("drag-down", func() { c.onPointerDown(g, card, ev) })
	})
	card.On(dom.EventPointerMove, func(ev *dom.Event) {
		c.guard("drag-move", func() { c.onPointerMove(g, card, ev) })
	})
	card.On(dom.EventPointerUp, func(ev *dom.Event) {
		c.guard("drag-up", func() { c.onPointerUp(g, card, id, ev) })
	})
}

func (c *Controller) onPointerDown(g *gesture, card *dom.Element, ev *dom.Event) {
	if ev.Button != 0 {
		return
	}
	g.phase = gestureDown
	g.pointerID = ev.PointerID
	g.downAt = time.Now()
	g.startX = ev.ClientX
	g.startY = ev.ClientY

	rect := card.Rect()
	g.startLeft = rect.Left
	g.startTop = rect.Top
	card.SetPosition(g.startLeft, g.startTop)
	card.SetPointerCapture(ev.PointerID)
	ev.PreventDefault()
}

func (c *Controller) onPointerMove(g *gesture, card *dom.Element, ev *dom.Event) {
	if g.phase == gestureIdle || !card.HasPointerCapture(ev.PointerID) {
		return
	}
	dx := ev.ClientX - g.startX
	dy := ev.ClientY - g.startY

	if g.phase == gestureDown {
		if math.Hypot(dx, dy) <= c.cfg.DragThreshold {
			return
		}
		if c.cfg.DragHoldDelay > 0 && time.Since(g.downAt) < c.cfg.DragHoldDelay {
			return
		}
		g.phase = gestureDragging
		card.AddClass("dragging")
	}

	bounds := c.containerBounds()
	rect := card.Rect()
	left := clamp(g.startLeft+dx, 0, math.Max(0, bounds.Width-rect.Width))
	top := clamp(g.startTop+dy, 0, math.Max(0, bounds.Height-rect.Height))
	card.SetPosition(left, top)
}

func (c *Controller) onPointerUp(g *gesture, card *dom.Element, id string, ev *dom.Event) {
	if g.phase == gestureIdle || !card.HasPointerCapture(ev.PointerID) {
		return
	}
	card.ReleasePointerCapture(ev.PointerID)
	phase := g.phase
	g.phase = gestureIdle
	card.RemoveClass("dragging")

	if phase == gestureDragging {
		rect := card.Rect()
		c.positions[id] = session.Position{Left: rect.Left, Top: rect.Top}
		c.persistPositions()
		// A slight tilt marks hand-placed cards.
		card.Style["transform"] = fmt.Sprintf("rotate(%.1fdeg)", c.rng.Float64()*6-3)
		// Browsers synthesize a click after a drag; swallow the next one.
		g.suppressNextClick = true
		return
	}

	// Below the threshold this was a click. Invoke the action directly;
	// the host is not expected to synthesize a separate click afterwards.
	c.OpenModal(id)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
