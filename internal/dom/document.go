package dom

import "fmt"

// Document owns an element tree: a root element (the documentElement, where
// CSS custom properties live), a body, pointer capture state, and the
// active (focused) element.
type Document struct {
	root    *Element
	body    *Element
	byID    map[string]*Element
	capture map[int]*Element
	active  *Element
}

// NewDocument builds an empty document with a root and a body.
func NewDocument() *Document {
	d := &Document{
		byID:    map[string]*Element{},
		capture: map[int]*Element{},
	}
	d.root = newElement(d, "html")
	d.body = newElement(d, "body")
	d.root.AppendChild(d.body)
	return d
}

// Root returns the document element.
func (d *Document) Root() *Element { return d.root }

// Body returns the body element.
func (d *Document) Body() *Element { return d.body }

// CreateElement builds a detached element owned by this document.
func (d *Document) CreateElement(tag string) *Element {
	return newElement(d, tag)
}

// CreateElementWithID builds a detached element and registers its id for
// ByID lookup.
func (d *Document) CreateElementWithID(tag, id string) *Element {
	e := newElement(d, tag)
	e.id = id
	d.byID[id] = e
	return e
}

// ByID returns the element registered under id, or nil.
func (d *Document) ByID(id string) *Element { return d.byID[id] }

// ActiveElement returns the focused element, or nil.
func (d *Document) ActiveElement() *Element { return d.active }

// PointerCaptureTarget returns the element holding capture for the pointer,
// or nil.
func (d *Document) PointerCaptureTarget(pointerID int) *Element {
	return d.capture[pointerID]
}

// DispatchPointer routes a pointer event: to the capture target if one
// holds the pointer, otherwise to the given target with normal bubbling.
// This mirrors setPointerCapture semantics, where moves and the final up
// land on the capturing element regardless of what is under the pointer.
func (d *Document) DispatchPointer(target *Element, ev *Event) {
	if captured, ok := d.capture[ev.PointerID]; ok {
		ev.Target = captured
		captured.Dispatch(ev)
		return
	}
	target.Dispatch(ev)
}

// SetCSSVar sets a custom property on the document element.
func (d *Document) SetCSSVar(name, value string) {
	d.root.Style[name] = value
}

// CSSVar reads a custom property from the document element.
func (d *Document) CSSVar(name string) string {
	return d.root.Style[name]
}

func px(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%dpx", int64(v))
	}
	return fmt.Sprintf("%gpx", v)
}
