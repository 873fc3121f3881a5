// Package dom is the gallery engine's contract with its presentation host: a
// minimal retained element tree with bubbling event dispatch, pointer
// capture, focus, and a window surface (location, history, scroll, CSS
// custom properties, scheduling). It models just enough of the browser for
// the engine to be driven and asserted against headlessly.
package dom

// Rect is an element's layout box relative to its positioned ancestor, in
// layout pixels. The host (or test) is responsible for sizing; the engine
// positions.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Element is a retained DOM node.
type Element struct {
	tag      string
	id       string
	doc      *Document
	parent   *Element
	children []*Element

	Attrs   map[string]string
	Dataset map[string]string
	Style   map[string]string
	classes map[string]struct{}

	// Form-ish state for inputs, sliders, and checkboxes.
	Value   string
	Checked bool

	Text string
	rect Rect

	handlers map[string][]Handler
}

// Handler consumes a dispatched event.
type Handler func(*Event)

func newElement(doc *Document, tag string) *Element {
	return &Element{
		tag:      tag,
		doc:      doc,
		Attrs:    map[string]string{},
		Dataset:  map[string]string{},
		Style:    map[string]string{},
		classes:  map[string]struct{}{},
		handlers: map[string][]Handler{},
	}
}

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.tag }

// ID returns the element's identifier.
func (e *Element) ID() string { return e.id }

// Parent returns the element's parent, or nil at the root.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the child list. The returned slice is live; callers must
// not mutate it directly.
func (e *Element) Children() []*Element { return e.children }

// AppendChild attaches child as the last child, reparenting if needed.
func (e *Element) AppendChild(child *Element) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
}

// RemoveChild detaches child from this element.
func (e *Element) RemoveChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// RemoveChildren detaches every child. Used for full-replace renders.
func (e *Element) RemoveChildren() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
}

// AddClass adds a class name.
func (e *Element) AddClass(name string) { e.classes[name] = struct{}{} }

// RemoveClass removes a class name.
func (e *Element) RemoveClass(name string) { delete(e.classes, name) }

// HasClass reports whether the class is present.
func (e *Element) HasClass(name string) bool {
	_, ok := e.classes[name]
	return ok
}

// ToggleClass flips a class and reports the resulting presence.
func (e *Element) ToggleClass(name string) bool {
	if e.HasClass(name) {
		e.RemoveClass(name)
		return false
	}
	e.AddClass(name)
	return true
}

// Rect returns the element's layout box.
func (e *Element) Rect() Rect { return e.rect }

// SetRect replaces the layout box.
func (e *Element) SetRect(r Rect) { e.rect = r }

// SetPosition moves the layout box and mirrors the coordinates into the
// left/top style properties, the way absolute positioning does.
func (e *Element) SetPosition(left, top float64) {
	e.rect.Left = left
	e.rect.Top = top
	e.Style["left"] = px(left)
	e.Style["top"] = px(top)
}

// SetSize sets the layout box dimensions.
func (e *Element) SetSize(width, height float64) {
	e.rect.Width = width
	e.rect.Height = height
}

// On registers a handler for an event type.
func (e *Element) On(eventType string, h Handler) {
	e.handlers[eventType] = append(e.handlers[eventType], h)
}

// Dispatch delivers the event to this element and then bubbles it through
// the ancestor chain until stopped.
func (e *Element) Dispatch(ev *Event) {
	if ev.Target == nil {
		ev.Target = e
	}
	for node := e; node != nil; node = node.parent {
		for _, h := range node.handlers[ev.Type] {
			h(ev)
			if ev.stopped {
				return
			}
		}
		if ev.stopped {
			return
		}
	}
}

// SetPointerCapture routes subsequent events for the pointer to this element.
func (e *Element) SetPointerCapture(pointerID int) {
	if e.doc != nil {
		e.doc.capture[pointerID] = e
	}
}

// ReleasePointerCapture ends capture for the pointer.
func (e *Element) ReleasePointerCapture(pointerID int) {
	if e.doc != nil && e.doc.capture[pointerID] == e {
		delete(e.doc.capture, pointerID)
	}
}

// HasPointerCapture reports whether this element holds capture for the
// pointer.
func (e *Element) HasPointerCapture(pointerID int) bool {
	return e.doc != nil && e.doc.capture[pointerID] == e
}

// Focus makes this element the document's active element.
func (e *Element) Focus() {
	if e.doc != nil {
		e.doc.active = e
	}
}

// Focusable reports whether the element participates in tab order.
func (e *Element) Focusable() bool {
	if tabindex, ok := e.Attrs["tabindex"]; ok {
		return tabindex != "-1"
	}
	switch e.tag {
	case "button", "input", "select", "textarea":
		return true
	case "a":
		_, ok := e.Attrs["href"]
		return ok
	}
	return false
}

// DescendantByClass returns the first descendant carrying the class, in
// tree order, or nil.
func (e *Element) DescendantByClass(name string) *Element {
	for _, c := range e.children {
		if c.HasClass(name) {
			return c
		}
		if found := c.DescendantByClass(name); found != nil {
			return found
		}
	}
	return nil
}

// FocusableDescendants returns the focusable descendants in tree order.
func (e *Element) FocusableDescendants() []*Element {
	var out []*Element
	var walk func(*Element)
	walk = func(node *Element) {
		for _, c := range node.children {
			if c.Focusable() {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(e)
	return out
}
