package dom

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeMutation(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	a := doc.CreateElement("span")
	b := doc.CreateElement("span")

	parent.AppendChild(a)
	parent.AppendChild(b)
	require.Len(t, parent.Children(), 2)
	assert.Equal(t, parent, a.Parent())

	// Reparenting detaches from the old parent.
	other := doc.CreateElement("div")
	other.AppendChild(a)
	assert.Len(t, parent.Children(), 1)
	assert.Equal(t, other, a.Parent())

	parent.RemoveChildren()
	assert.Empty(t, parent.Children())
	assert.Nil(t, b.Parent())
}

func TestClasses(t *testing.T) {
	doc := NewDocument()
	e := doc.CreateElement("div")

	e.AddClass("card")
	assert.True(t, e.HasClass("card"))
	assert.False(t, e.ToggleClass("card"))
	assert.True(t, e.ToggleClass("selected"))
	assert.True(t, e.HasClass("selected"))
}

func TestDispatchBubbles(t *testing.T) {
	doc := NewDocument()
	outer := doc.CreateElement("div")
	inner := doc.CreateElement("button")
	outer.AppendChild(inner)

	var order []string
	inner.On(EventClick, func(ev *Event) {
		order = append(order, "inner")
		assert.Equal(t, inner, ev.Target)
	})
	outer.On(EventClick, func(ev *Event) {
		order = append(order, "outer")
		assert.Equal(t, inner, ev.Target)
	})

	inner.Dispatch(&Event{Type: EventClick})
	assert.Equal(t, []string{"inner", "outer"}, order)
}

func TestStopPropagation(t *testing.T) {
	doc := NewDocument()
	outer := doc.CreateElement("div")
	inner := doc.CreateElement("button")
	outer.AppendChild(inner)

	var outerHit bool
	inner.On(EventClick, func(ev *Event) { ev.StopPropagation() })
	outer.On(EventClick, func(*Event) { outerHit = true })

	inner.Dispatch(&Event{Type: EventClick})
	assert.False(t, outerHit)
}

func TestPointerCapture(t *testing.T) {
	doc := NewDocument()
	card := doc.CreateElement("div")
	sibling := doc.CreateElement("div")
	doc.Body().AppendChild(card)
	doc.Body().AppendChild(sibling)

	var cardMoves, siblingMoves int
	card.On(EventPointerMove, func(*Event) { cardMoves++ })
	sibling.On(EventPointerMove, func(*Event) { siblingMoves++ })

	card.SetPointerCapture(7)
	require.True(t, card.HasPointerCapture(7))

	// The pointer wanders over the sibling, but capture routes to the card.
	doc.DispatchPointer(sibling, &Event{Type: EventPointerMove, PointerID: 7})
	assert.Equal(t, 1, cardMoves)
	assert.Zero(t, siblingMoves)

	card.ReleasePointerCapture(7)
	doc.DispatchPointer(sibling, &Event{Type: EventPointerMove, PointerID: 7})
	assert.Equal(t, 1, cardMoves)
	assert.Equal(t, 1, siblingMoves)
}

func TestFocusables(t *testing.T) {
	doc := NewDocument()
	modal := doc.CreateElement("div")

	link := doc.CreateElement("a")
	link.Attrs["href"] = "https://example.com"
	plainAnchor := doc.CreateElement("a")
	btn := doc.CreateElement("button")
	optedOut := doc.CreateElement("button")
	optedOut.Attrs["tabindex"] = "-1"
	div := doc.CreateElement("div")
	tabbableDiv := doc.CreateElement("div")
	tabbableDiv.Attrs["tabindex"] = "0"

	for _, e := range []*Element{link, plainAnchor, btn, optedOut, div, tabbableDiv} {
		modal.AppendChild(e)
	}

	got := modal.FocusableDescendants()
	require.Len(t, got, 3)
	assert.Equal(t, []*Element{link, btn, tabbableDiv}, got)

	btn.Focus()
	assert.Equal(t, btn, doc.ActiveElement())
}

func TestWindowFragment(t *testing.T) {
	w := NewWindow(NewDocument())

	var seen []string
	w.OnHashChange(func(f string) { seen = append(seen, f) })

	w.SetFragment("img-001")
	w.SetFragment("img-001") // no-op, no duplicate notification
	assert.Equal(t, []string{"img-001"}, seen)
	assert.Equal(t, "img-001", w.Location().Fragment)

	w.ScrollTo(420)
	w.ReplaceFragment("")
	assert.Equal(t, []string{"img-001"}, seen, "silent replace must not notify")
	assert.Equal(t, "", w.Location().Fragment)
	assert.Equal(t, 420.0, w.ScrollY())
}

func TestWindowReplaceQuery(t *testing.T) {
	w := NewWindow(NewDocument())

	q := url.Values{"cats": {"a,b"}}
	w.ReplaceQuery(q)
	q.Set("cats", "mutated")

	assert.Equal(t, "a,b", w.Location().Query.Get("cats"))
}

func TestManualScheduler(t *testing.T) {
	s := &ManualScheduler{}

	var calls []string
	s.RequestFrame(func() {
		calls = append(calls, "frame1")
		s.RequestFrame(func() { calls = append(calls, "frame2") })
	})
	s.After(300*time.Millisecond, func() { calls = append(calls, "timer300") })
	s.After(150*time.Millisecond, func() { calls = append(calls, "timer150") })

	s.FlushFrames()
	assert.Equal(t, []string{"frame1", "frame2"}, calls)

	s.Advance(100 * time.Millisecond)
	assert.Len(t, calls, 2)
	s.Advance(250 * time.Millisecond)
	assert.Equal(t, []string{"frame1", "frame2", "timer150", "timer300"}, calls)
	assert.Zero(t, s.PendingTimers())
}

func TestSetPositionMirrorsStyle(t *testing.T) {
	doc := NewDocument()
	e := doc.CreateElement("div")
	e.SetPosition(130, 260)

	assert.Equal(t, 130.0, e.Rect().Left)
	assert.Equal(t, "130px", e.Style["left"])
	assert.Equal(t, "260px", e.Style["top"])
}
