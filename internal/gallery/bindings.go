package gallery

import "thesis-gallery/internal/dom"

// Bindings holds the page elements the engine drives. Every field is
// optional: a missing element disables the feature it carries instead of
// failing, so the same engine runs against pages that omit controls.
type Bindings struct {
	Search          *dom.Element
	FilterButton    *dom.Element
	FilterPanel     *dom.Element
	CategoryFilters *dom.Element
	TagFilters      *dom.Element
	ClearFilters    *dom.Element
	ModeToggle      *dom.Element
	ColumnsSlider   *dom.Element
	ColumnsValue    *dom.Element
	LogicToggle     *dom.Element
	SortToggle      *dom.Element
	Grid            *dom.Element

	Modal           *dom.Element
	ModalClose      *dom.Element
	ModalImage      *dom.Element
	ModalTitle      *dom.Element
	ModalCredit     *dom.Element
	ModalYear       *dom.Element
	ModalLink       *dom.Element
	ModalCategories *dom.Element
	ModalTags       *dom.Element
	ModalNotes      *dom.Element
}

// Bind looks up the engine's elements by their page ids.
func Bind(doc *dom.Document) Bindings {
	return Bindings{
		Search:          doc.ByID("search"),
		FilterButton:    doc.ByID("filter-btn"),
		FilterPanel:     doc.ByID("filter-panel"),
		CategoryFilters: doc.ByID("category-filters"),
		TagFilters:      doc.ByID("tag-filters"),
		ClearFilters:    doc.ByID("clear-filters"),
		ModeToggle:      doc.ByID("mode-toggle"),
		ColumnsSlider:   doc.ByID("columns-slider"),
		ColumnsValue:    doc.ByID("columns-value"),
		LogicToggle:     doc.ByID("logic-toggle"),
		SortToggle:      doc.ByID("date-sort-toggle"),
		Grid:            doc.ByID("grid-container"),
		Modal:           doc.ByID("modal"),
		ModalClose:      doc.ByID("modal-close"),
		ModalImage:      doc.ByID("modal-image"),
		ModalTitle:      doc.ByID("modal-title"),
		ModalCredit:     doc.ByID("modal-image-credit"),
		ModalYear:       doc.ByID("modal-image-year"),
		ModalLink:       doc.ByID("modal-image-link"),
		ModalCategories: doc.ByID("modal-categories"),
		ModalTags:       doc.ByID("modal-tags"),
		ModalNotes:      doc.ByID("modal-notes"),
	}
}
