// Package math adds $inline$ and $$display$$ formulas to goldmark.
//
// Formulas are not typeset here. They render as placeholders carrying the raw
// LaTeX in a data-formula attribute:
//
//	<span class="math-formula math-inline" id="math-inline-1" data-formula="x^2">x^2</span>
//
// An opening $ followed by a space, or a closing $ preceded by a space or
// followed by a digit, is plain text. "$$" with nothing inside is plain text.
package math

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Extension wires the formula parsers and renderer into goldmark.
type Extension struct{}

// Math is the default math extension.
var Math = &Extension{}

// NewExtension returns a math extension.
func NewExtension() *Extension {
	return &Extension{}
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(NewBlockParser(), 801),
		),
		parser.WithInlineParsers(
			util.Prioritized(NewInlineParser(), 150),
		),
	)
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewRenderer(), 500),
	))
}
