// Package store holds the page and selection state behind the table view
// as an explicit value, so the two view operations (page change, selection
// toggle) are testable without a rendering environment.
package store

import (
	"github.com/articat/articat/pkg/catalog"
	"github.com/articat/articat/pkg/selection"
)

// State is the shared view state: the currently displayed page, the
// cross-page selection, and the loading flag. Transitions return a new
// State and never mutate the receiver.
type State struct {
	Page      catalog.Page
	Selection *selection.Set
	Loading   bool
}

// NewState returns an empty state with no page loaded.
func NewState() State {
	return State{
		Selection: selection.NewSet(),
	}
}

// WithPage replaces the displayed page wholesale and clears the loading
// flag. There is no incremental patching.
func (s State) WithPage(page catalog.Page) State {
	s.Page = page
	s.Loading = false
	return s
}

// WithLoading marks a fetch in flight.
func (s State) WithLoading() State {
	s.Loading = true
	return s
}

// WithSelection replaces the selection set.
func (s State) WithSelection(sel *selection.Set) State {
	s.Selection = sel
	s.Loading = false
	return s
}

// WithToggle adds or removes a single record from the selection,
// cloning it first so prior states stay untouched.
func (s State) WithToggle(rec catalog.Artwork, included bool) State {
	sel := s.Selection.Clone()
	if included {
		sel.Add(rec)
	} else {
		sel.Remove(rec.ID)
	}
	s.Selection = sel
	return s
}

// CurrentPage returns the displayed page number, 0 when nothing is loaded.
func (s State) CurrentPage() int {
	return s.Page.Pagination.CurrentPage
}

// TotalPages returns the catalog's page count as of the last fetch.
func (s State) TotalPages() int {
	return s.Page.Pagination.TotalPages
}

// TotalRecords returns the catalog's record count as of the last fetch.
func (s State) TotalRecords() int {
	return s.Page.Pagination.Total
}

// PageSize returns the server-reported page size for the displayed page.
func (s State) PageSize() int {
	return s.Page.Pagination.Limit
}
