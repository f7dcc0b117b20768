package selection

import (
	"github.com/articat/articat/pkg/catalog"
)

// Set is an insertion-ordered set of artwork records keyed by ID.
// No ID ever appears twice; adding an existing ID keeps the original
// record and its position.
type Set struct {
	order []int
	byID  map[int]catalog.Artwork
}

// NewSet creates an empty selection set.
func NewSet() *Set {
	return &Set{
		byID: make(map[int]catalog.Artwork),
	}
}

// Add inserts a record. Returns false if the ID was already present.
func (s *Set) Add(rec catalog.Artwork) bool {
	if _, ok := s.byID[rec.ID]; ok {
		return false
	}
	s.byID[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	return true
}

// Remove deletes a record by ID. Returns false if the ID was not present.
func (s *Set) Remove(id int) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Has reports whether the ID is in the set.
func (s *Set) Has(id int) bool {
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of selected records.
func (s *Set) Len() int {
	return len(s.order)
}

// Records returns the selected records in insertion order.
func (s *Set) Records() []catalog.Artwork {
	records := make([]catalog.Artwork, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, s.byID[id])
	}
	return records
}

// IDs returns the selected IDs in insertion order.
func (s *Set) IDs() []int {
	ids := make([]int, len(s.order))
	copy(ids, s.order)
	return ids
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	clone := &Set{
		order: make([]int, len(s.order)),
		byID:  make(map[int]catalog.Artwork, len(s.byID)),
	}
	copy(clone.order, s.order)
	for id, rec := range s.byID {
		clone.byID[id] = rec
	}
	return clone
}
