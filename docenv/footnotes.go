package docenv

import (
	"github.com/yuin/goldmark/ast"
)

const unresolved = -1

// Footnote is one slot of the ordered footnote list.
type Footnote struct {
	// Label is empty for anonymous footnotes.
	Label string
	// Content holds the parsed body of an anonymous footnote.
	Content ast.Node
	// Count is the number of references that point at the slot.
	Count int
}

// Anonymous reports whether the slot came from an inline ^[...] note.
func (f *Footnote) Anonymous() bool {
	return f.Label == ""
}

// Backlinks returns how many back-references the slot renders.
func (f *Footnote) Backlinks() int {
	if f.Count > 0 {
		return f.Count
	}
	return 1
}

// Footnotes is the footnote registry of one document. Slots are allocated in
// first-use order; labels are registered by definitions before any reference
// is scanned.
type Footnotes struct {
	labels map[string]int
	slots  []*Footnote
}

// NewFootnotes returns an empty registry.
func NewFootnotes() *Footnotes {
	return &Footnotes{labels: make(map[string]int)}
}

// Define registers label as defined. It returns false when label already has
// a definition.
func (f *Footnotes) Define(label string) bool {
	if _, ok := f.labels[label]; ok {
		return false
	}
	f.labels[label] = unresolved
	return true
}

// Defined reports whether label has a definition.
func (f *Footnotes) Defined(label string) bool {
	_, ok := f.labels[label]
	return ok
}

// AddAnonymous allocates the next slot for an inline note and returns its
// index.
func (f *Footnotes) AddAnonymous(content ast.Node) int {
	f.slots = append(f.slots, &Footnote{Content: content, Count: 1})
	return len(f.slots) - 1
}

// Reference records one use of label. The first use allocates a slot. It
// returns the slot index and the sub-id of this use, or ok=false when label
// is not defined.
func (f *Footnotes) Reference(label string) (slot, sub int, ok bool) {
	slot, ok = f.labels[label]
	if !ok {
		return 0, 0, false
	}
	if slot == unresolved {
		f.slots = append(f.slots, &Footnote{Label: label})
		slot = len(f.slots) - 1
		f.labels[label] = slot
	}
	fn := f.slots[slot]
	sub = fn.Count
	fn.Count++
	return slot, sub, true
}

// Len returns the number of allocated slots.
func (f *Footnotes) Len() int {
	return len(f.slots)
}

// At returns slot i.
func (f *Footnotes) At(i int) *Footnote {
	return f.slots[i]
}

// Slots returns the allocated slots in order.
func (f *Footnotes) Slots() []*Footnote {
	return f.slots
}
