package dom

// Event types the engine listens for. Hosts deliver these; the dom package
// attaches no semantics beyond bubbling.
const (
	EventClick       = "click"
	EventInput       = "input"
	EventChange      = "change"
	EventKeyDown     = "keydown"
	EventPointerDown = "pointerdown"
	EventPointerMove = "pointermove"
	EventPointerUp   = "pointerup"
)

// Event is a dispatched DOM event. ClientX/ClientY are viewport coordinates
// for pointer events; Key and ShiftKey apply to keyboard events.
type Event struct {
	Type      string
	Target    *Element
	PointerID int
	ClientX   float64
	ClientY   float64
	Button    int
	Key       string
	ShiftKey  bool

	stopped          bool
	defaultPrevented bool
}

// StopPropagation halts bubbling after the current handler returns.
func (ev *Event) StopPropagation() { ev.stopped = true }

// PreventDefault marks the event's default action as cancelled.
func (ev *Event) PreventDefault() { ev.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (ev *Event) DefaultPrevented() bool { return ev.defaultPrevented }
