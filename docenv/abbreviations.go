package docenv

import (
	"sort"
)

// Abbreviations maps abbreviation labels to their expansions. The first
// definition of a label wins.
type Abbreviations struct {
	titles map[string]string
	order  []string
}

// NewAbbreviations returns an empty table.
func NewAbbreviations() *Abbreviations {
	return &Abbreviations{titles: make(map[string]string)}
}

// Define adds label unless it is already defined.
func (a *Abbreviations) Define(label, title string) bool {
	if _, ok := a.titles[label]; ok {
		return false
	}
	a.titles[label] = title
	a.order = append(a.order, label)
	return true
}

// Lookup returns the expansion of label.
func (a *Abbreviations) Lookup(label string) (string, bool) {
	t, ok := a.titles[label]
	return t, ok
}

// Labels returns every label, longest first. Labels of equal length keep
// definition order.
func (a *Abbreviations) Labels() []string {
	out := append([]string(nil), a.order...)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}

// Len returns the number of labels.
func (a *Abbreviations) Len() int {
	return len(a.order)
}
