package gallery

import (
	"thesis-gallery/internal/dom"
	"thesis-gallery/internal/domain/catalog"
)

// modalPhase is the detail overlay's lifecycle.
type modalPhase int

const (
	modalClosed modalPhase = iota
	modalOpening
	modalOpen
	modalClosing
)

type modalState struct {
	phase       modalPhase
	itemID      string
	savedScroll float64
}

type modalElements struct {
	dialog *dom.Element
}

// wireModal attaches close controls and the focus trap. Skipped entirely
// when the page has no modal.
func (c *Controller) wireModal() {
	modal := c.bind.Modal
	if modal == nil {
		return
	}
	c.modalElements.dialog = modal.DescendantByClass("dialog")

	if c.bind.ModalClose != nil {
		c.bind.ModalClose.On(dom.EventClick, func(*dom.Event) {
			c.guard("modal-close", c.CloseModal)
		})
	}
	// Clicking the backdrop (the modal surface itself) closes; clicks
	// inside the dialog bubble up here but must not.
	modal.On(dom.EventClick, func(ev *dom.Event) {
		c.guard("modal-backdrop", func() {
			if ev.Target == modal || ev.Target.HasClass("modal-backdrop") {
				c.CloseModal()
			}
		})
	})
	modal.On(dom.EventKeyDown, func(ev *dom.Event) {
		c.guard("modal-trap", func() { c.trapFocus(ev) })
	})
}

// OpenModal populates and shows the detail overlay for an item. Unknown
// identifiers are ignored, as are opens arriving while a close animation is
// still running.
func (c *Controller) OpenModal(id string) {
	modal := c.bind.Modal
	if modal == nil || !c.ready {
		return
	}
	if c.modal.phase == modalClosing {
		return
	}
	if c.modal.itemID == id && c.modal.phase != modalClosed {
		return
	}
	item, err := catalog.Find(c.items, id)
	if err != nil {
		return
	}

	c.populateModal(item)

	c.modal.itemID = id
	c.modal.savedScroll = c.win.ScrollY()
	c.modal.phase = modalOpening

	modal.AddClass("open")
	modal.Attrs["aria-labelledby"] = "modal-title"
	c.doc.Body().Style["overflow"] = "hidden"
	c.win.SetFragment(id)

	// The slide-in starts one frame later so the transition actually runs.
	c.sched.RequestFrame(func() {
		c.guard("modal-open-frame", func() {
			if c.modal.phase != modalOpening {
				return
			}
			if c.modalElements.dialog != nil {
				c.modalElements.dialog.Style["transform"] = "translateX(0)"
			}
			c.modal.phase = modalOpen
		})
	})

	if focusables := modal.FocusableDescendants(); len(focusables) > 0 {
		focusables[0].Focus()
	}
}

// CloseModal starts the slide-out and defers scroll unlock, hash cleanup,
// and scroll restore until the animation duration has elapsed. Reentrant
// calls while already closing are no-ops.
func (c *Controller) CloseModal() {
	modal := c.bind.Modal
	if modal == nil {
		return
	}
	if c.modal.phase == modalClosed || c.modal.phase == modalClosing {
		return
	}
	c.modal.phase = modalClosing
	if c.modalElements.dialog != nil {
		c.modalElements.dialog.Style["transform"] = "translateX(-100%)"
	}

	c.sched.After(c.cfg.ModalCloseDelay, func() {
		c.guard("modal-close-timer", func() {
			modal.RemoveClass("open")
			delete(modal.Attrs, "aria-labelledby")
			c.doc.Body().Style["overflow"] = ""
			// Hash removal must not scroll, so this is a silent history
			// rewrite rather than a navigation.
			c.win.ReplaceFragment("")
			c.win.ScrollTo(c.modal.savedScroll)
			c.modal.phase = modalClosed
			c.modal.itemID = ""
		})
	})
}

// ModalItemID returns the identifier shown by the modal, or "" when closed.
func (c *Controller) ModalItemID() string {
	if c.modal.phase == modalClosed {
		return ""
	}
	return c.modal.itemID
}

func (c *Controller) populateModal(item catalog.Item) {
	if c.bind.ModalImage != nil {
		c.bind.ModalImage.Attrs["src"] = item.Src
		c.bind.ModalImage.Attrs["alt"] = item.DisplayTitle()
	}
	if c.bind.ModalTitle != nil {
		c.bind.ModalTitle.Text = item.DisplayTitle()
	}
	if c.bind.ModalCredit != nil {
		c.bind.ModalCredit.Text = item.DisplayCreator()
	}
	if c.bind.ModalYear != nil {
		c.bind.ModalYear.Text = item.DisplayYear()
	}
	if c.bind.ModalLink != nil {
		if item.CreditURL != "" {
			c.bind.ModalLink.Attrs["href"] = item.CreditURL
			c.bind.ModalLink.Style["display"] = "inline"
		} else {
			c.bind.ModalLink.Attrs["href"] = "#"
			c.bind.ModalLink.Style["display"] = "none"
		}
	}
	if c.bind.ModalCategories != nil {
		c.bind.ModalCategories.RemoveChildren()
		for _, cat := range item.Categories {
			c.bind.ModalCategories.AppendChild(c.buildPill(cat))
		}
	}
	if c.bind.ModalTags != nil {
		c.bind.ModalTags.RemoveChildren()
		for _, tag := range item.Tags {
			c.bind.ModalTags.AppendChild(c.buildPill(tag))
		}
	}
	if c.bind.ModalNotes != nil {
		c.bind.ModalNotes.Text = item.Notes
		if item.Notes != "" {
			c.bind.ModalNotes.Style["display"] = "block"
		} else {
			c.bind.ModalNotes.Style["display"] = "none"
		}
	}
}

// trapFocus keeps Tab cycling inside the modal, wrapping first to last.
func (c *Controller) trapFocus(ev *dom.Event) {
	if ev.Key != "Tab" || c.modal.phase == modalClosed {
		return
	}
	focusables := c.bind.Modal.FocusableDescendants()
	if len(focusables) == 0 {
		return
	}
	first, last := focusables[0], focusables[len(focusables)-1]
	active := c.doc.ActiveElement()

	if ev.ShiftKey && active == first {
		ev.PreventDefault()
		last.Focus()
	} else if !ev.ShiftKey && active == last {
		ev.PreventDefault()
		first.Focus()
	}
}
