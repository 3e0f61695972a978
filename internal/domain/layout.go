package domain

import "slices"

// SectionKey identifies a dashboard section.
type SectionKey string

// The closed set of dashboard sections.
const (
	SectionReadingStatus SectionKey = "reading-status"
	SectionMyLibrary     SectionKey = "my-library"
)

// knownSections is the canonical default ordering.
var knownSections = []SectionKey{SectionReadingStatus, SectionMyLibrary}

// SectionOrder is the persisted ordering of dashboard sections. It is mutated
// only by MoveBefore; hover/highlight states during a drag are transient UI
// concerns and never reach this type.
type SectionOrder []SectionKey

// DefaultSectionOrder returns the canonical section ordering.
func DefaultSectionOrder() SectionOrder {
	return slices.Clone(knownSections)
}

// MoveBefore removes dragged from its current position and reinserts it
// immediately before target's current position. It is a no-op when the keys
// are equal or either is absent. Returns true if the order changed.
func (o *SectionOrder) MoveBefore(dragged, target SectionKey) bool {
	if dragged == target {
		return false
	}
	order := *o
	from := slices.Index(order, dragged)
	if from == -1 || !slices.Contains(order, target) {
		return false
	}

	order = slices.Delete(order, from, from+1)
	// Target index is located after the removal so the insert lands directly
	// before target's position in the final order.
	to := slices.Index(order, target)
	order = slices.Insert(order, to, dragged)

	*o = order
	return true
}

// Normalize drops unknown section keys and appends any known keys that are
// missing, preserving the relative order of the rest. Handles orders
// persisted by older versions of the app.
func (o *SectionOrder) Normalize() {
	order := *o
	cleaned := make(SectionOrder, 0, len(knownSections))
	for _, key := range order {
		if slices.Contains(knownSections, key) && !slices.Contains(cleaned, key) {
			cleaned = append(cleaned, key)
		}
	}
	for _, key := range knownSections {
		if !slices.Contains(cleaned, key) {
			cleaned = append(cleaned, key)
		}
	}
	*o = cleaned
}
