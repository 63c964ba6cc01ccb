// Package docenv carries the per-render document environment shared by the
// syntax extensions: the abbreviation table, the footnote registry and the
// caller's render context.
//
// An Env is created for every render, stored in the goldmark parser context,
// and dropped when the render returns. It is not safe for concurrent use.
package docenv

import (
	"github.com/yuin/goldmark/parser"
)

var contextKey = parser.NewContextKey()

// Env is the mutable state threaded through every pass of one render.
type Env struct {
	// Streaming mirrors the caller's flag. Parsing never branches on it.
	Streaming bool
	// DocID prefixes footnote anchors when set.
	DocID string

	Abbreviations *Abbreviations
	Footnotes     *Footnotes

	depth int
}

// New returns an empty environment.
func New(streaming bool, docID string) *Env {
	return &Env{
		Streaming:     streaming,
		DocID:         docID,
		Abbreviations: NewAbbreviations(),
		Footnotes:     NewFootnotes(),
	}
}

// Attach stores e in pc.
func Attach(pc parser.Context, e *Env) {
	pc.Set(contextKey, e)
}

// From returns the environment stored in pc, creating an empty one when the
// document is parsed without a render context.
func From(pc parser.Context) *Env {
	v := pc.ComputeIfAbsent(contextKey, func() any {
		return New(false, "")
	})
	return v.(*Env)
}

// Nested returns an environment for a sub-parse that shares e's tables.
// Whole-document passes skip nested environments.
func (e *Env) Nested() *Env {
	n := *e
	n.depth++
	return &n
}

// IsNested reports whether e belongs to a sub-parse.
func (e *Env) IsNested() bool {
	return e.depth > 0
}

// AnchorPrefix returns the footnote anchor prefix for the document.
func (e *Env) AnchorPrefix() string {
	if e.DocID == "" {
		return ""
	}
	return "-" + e.DocID + "-"
}
