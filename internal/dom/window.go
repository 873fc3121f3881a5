package dom

import "net/url"

// Location is the window's current address, split into the pieces the
// engine cares about.
type Location struct {
	Path     string
	Query    url.Values
	Fragment string
}

// Window carries the browsing context around a Document: location and
// history, scroll position, and fragment-change notification.
type Window struct {
	doc      *Document
	location Location
	scrollY  float64

	hashListeners []func(string)
}

// NewWindow wraps a document with a default location.
func NewWindow(doc *Document) *Window {
	return &Window{
		doc: doc,
		location: Location{
			Path:  "/",
			Query: url.Values{},
		},
	}
}

// Document returns the window's document.
func (w *Window) Document() *Document { return w.doc }

// Location returns a copy of the current location.
func (w *Window) Location() Location {
	loc := w.location
	loc.Query = cloneValues(w.location.Query)
	return loc
}

// ReplaceQuery swaps the location's query string without navigating and
// without notifying listeners, like history.replaceState.
func (w *Window) ReplaceQuery(q url.Values) {
	w.location.Query = cloneValues(q)
}

// SetFragment assigns the location fragment and notifies hash listeners,
// like assigning location.hash.
func (w *Window) SetFragment(fragment string) {
	if w.location.Fragment == fragment {
		return
	}
	w.location.Fragment = fragment
	for _, fn := range w.hashListeners {
		fn(fragment)
	}
}

// ReplaceFragment assigns the fragment silently, like a history.replaceState
// that strips or rewrites the hash. Scroll position is untouched.
func (w *Window) ReplaceFragment(fragment string) {
	w.location.Fragment = fragment
}

// OnHashChange registers a listener for SetFragment navigations.
func (w *Window) OnHashChange(fn func(fragment string)) {
	w.hashListeners = append(w.hashListeners, fn)
}

// ScrollY returns the vertical scroll offset.
func (w *Window) ScrollY() float64 { return w.scrollY }

// ScrollTo sets the vertical scroll offset.
func (w *Window) ScrollTo(y float64) { w.scrollY = y }

func cloneValues(q url.Values) url.Values {
	out := url.Values{}
	for k, vs := range q {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
