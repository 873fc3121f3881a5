package gallery

import (
	"fmt"
	"math"

	"thesis-gallery/internal/dom"
	"thesis-gallery/internal/domain/catalog"
	"thesis-gallery/internal/domain/session"
)

// Card geometry used for freeform and stacked placement. Matches the
// stylesheet's card width; height is an approximation good enough for
// clamping.
const (
	cardWidth  = 120.0
	cardHeight = 120.0
	spreadStep = 130.0
)

// render is a full replace of the grid container's children from the
// current visible set. It is idempotent: unchanged inputs reproduce the
// same card set and order. Catalog sizes are in the hundreds, so no
// incremental diffing is attempted.
func (c *Controller) render() {
	grid := c.bind.Grid
	if grid == nil {
		return
	}

	grid.RemoveClass(string(session.ModeGrid))
	grid.RemoveClass(string(session.ModeFreeform))
	grid.RemoveClass(string(session.ModeStacked))
	grid.AddClass(string(c.prefs.Mode))

	grid.RemoveChildren()
	cards := make([]*dom.Element, 0, len(c.visible))
	for _, item := range c.visible {
		card := c.buildCard(item)
		grid.AppendChild(card)
		cards = append(cards, card)
	}

	switch c.prefs.Mode {
	case session.ModeFreeform:
		c.placeFreeform(cards)
	case session.ModeStacked:
		c.placeStacked(cards)
	}
}

func (c *Controller) buildCard(item catalog.Item) *dom.Element {
	card := c.doc.CreateElement("article")
	card.AddClass("card")
	card.Dataset["id"] = item.ID
	card.SetSize(cardWidth, cardHeight)

	card.AppendChild(c.buildMedia(item))

	meta := c.doc.CreateElement("div")
	meta.AddClass("meta")

	title := c.doc.CreateElement("div")
	title.AddClass("title")
	title.Text = item.DisplayTitle()
	meta.AppendChild(title)

	credit := c.doc.CreateElement("div")
	credit.AddClass("credit")
	if item.CreditURL != "" {
		link := c.doc.CreateElement("a")
		link.Attrs["href"] = item.CreditURL
		link.Attrs["target"] = "_blank"
		link.Attrs["rel"] = "noopener"
		link.Text = item.DisplayCreator()
		credit.AppendChild(link)
	} else {
		credit.Text = item.DisplayCreator()
	}
	year := c.doc.CreateElement("span")
	year.AddClass("year")
	year.Text = item.DisplayYear()
	credit.AppendChild(year)
	meta.AppendChild(credit)

	pills := c.doc.CreateElement("div")
	pills.AddClass("pills")
	for _, cat := range item.Categories {
		pills.AppendChild(c.buildPill(cat))
	}
	meta.AppendChild(pills)
	card.AppendChild(meta)

	id := item.ID
	card.On(dom.EventClick, func(*dom.Event) {
		c.guard("card-click", func() {
			if g := c.gestures[id]; g != nil && g.consumeSuppressedClick() {
				return
			}
			c.OpenModal(id)
		})
	})

	if c.prefs.Mode == session.ModeFreeform {
		c.attachDrag(card, id)
	}
	return card
}

func (c *Controller) buildMedia(item catalog.Item) *dom.Element {
	if item.Kind() == catalog.MediaVideo && c.cfg.VideoEnabled {
		video := c.doc.CreateElement("video")
		video.Attrs["src"] = item.Src
		video.Attrs["muted"] = ""
		video.Attrs["loop"] = ""
		video.Attrs["playsinline"] = ""
		return video
	}
	img := c.doc.CreateElement("img")
	img.Attrs["src"] = item.Src
	img.Attrs["alt"] = item.DisplayTitle()
	img.Attrs["loading"] = "lazy"
	img.Attrs["decoding"] = "async"
	return img
}

func (c *Controller) buildPill(text string) *dom.Element {
	pill := c.doc.CreateElement("span")
	pill.AddClass("pill")
	pill.Text = text
	return pill
}

// placeFreeform assigns each card its stored position, generating a
// deterministic spread-by-index fallback for cards seen for the first time.
// Fallback positions are persisted immediately so they stay stable.
func (c *Controller) placeFreeform(cards []*dom.Element) {
	bounds := c.containerBounds()
	maxLeft := math.Max(0, bounds.Width-cardWidth)
	maxTop := math.Max(0, bounds.Height-cardHeight)

	created := false
	for i, card := range cards {
		id := card.Dataset["id"]
		pos, ok := c.positions[id]
		if !ok {
			left := math.Min(maxLeft, math.Mod(float64(i)*spreadStep, maxLeft+1))
			top := math.Min(maxTop, math.Floor(float64(i)*spreadStep/(maxLeft+1))*spreadStep)
			pos = session.Position{Left: left, Top: top}
			c.positions[id] = pos
			created = true
		}
		card.SetPosition(pos.Left, pos.Top)
	}
	if created {
		c.persistPositions()
	}
}

// placeStacked piles cards near the container center with a small
// deterministic offset and tilt per index.
func (c *Controller) placeStacked(cards []*dom.Element) {
	bounds := c.containerBounds()
	centerLeft := math.Max(0, bounds.Width/2-cardWidth/2)
	centerTop := math.Max(0, bounds.Height/2-cardHeight/2)

	for i, card := range cards {
		offsetX := float64((i*7)%21) - 10
		offsetY := float64((i*5)%17) - 8
		card.SetPosition(centerLeft+offsetX, centerTop+offsetY)
		tilt := float64((i*11)%13) - 6
		card.Style["transform"] = fmt.Sprintf("rotate(%.0fdeg)", tilt)
	}
}

// scatterPositions randomizes every visible item's stored position within
// the container and repositions the rendered cards.
func (c *Controller) scatterPositions() {
	bounds := c.containerBounds()
	maxLeft := math.Max(0, bounds.Width-cardWidth)
	maxTop := math.Max(0, bounds.Height-cardHeight)

	byID := c.cardsByID()
	for _, item := range c.visible {
		pos := session.Position{
			Left: math.Round(c.rng.Float64() * maxLeft),
			Top:  math.Round(c.rng.Float64() * maxTop),
		}
		c.positions[item.ID] = pos
		if card := byID[item.ID]; card != nil {
			card.SetPosition(pos.Left, pos.Top)
		}
	}
	c.persistPositions()
}

func (c *Controller) cardsByID() map[string]*dom.Element {
	out := map[string]*dom.Element{}
	if c.bind.Grid == nil {
		return out
	}
	for _, card := range c.bind.Grid.Children() {
		if id := card.Dataset["id"]; id != "" {
			out[id] = card
		}
	}
	return out
}

// containerBounds reports the grid container's box, defaulting to a sane
// layout area when the host never sized it.
func (c *Controller) containerBounds() dom.Rect {
	if c.bind.Grid == nil {
		return dom.Rect{Width: 1024, Height: 768}
	}
	r := c.bind.Grid.Rect()
	if r.Width <= 0 {
		r.Width = 1024
	}
	if r.Height <= 0 {
		r.Height = 768
	}
	return r
}
