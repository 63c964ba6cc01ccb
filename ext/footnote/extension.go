// Package footnote adds footnotes to goldmark.
//
// A definition is a block starting with [^label]: and continued by lines
// indented four spaces. [^label] references a defined label; ^[text] is an
// anonymous note written in place. Footnotes are numbered in the order they
// are first referenced and rendered as one section after the document body,
// each with a backlink per reference. A label without a definition is left
// as literal text.
//
// Definitions must be registered before references are scanned, which
// goldmark guarantees by finishing block parsing before inline parsing.
package footnote

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Extension wires the footnote parsers, the section pass and the renderer
// into goldmark.
type Extension struct{}

// Footnote is the default footnote extension.
var Footnote = &Extension{}

// NewExtension returns a footnote extension.
func NewExtension() *Extension {
	return &Extension{}
}

// Extend implements goldmark.Extender. The reference parser runs ahead of
// the link parser (200), which would otherwise take every "[".
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(NewDefinitionParser(), 99),
		),
		parser.WithInlineParsers(
			util.Prioritized(NewAnonymousParser(m.Parser()), 100),
			util.Prioritized(NewReferenceParser(), 101),
		),
		parser.WithASTTransformers(
			util.Prioritized(NewSectionTransformer(), 100),
		),
	)
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewRenderer(), 500),
	))
}

// HasContent reports whether src may contain footnote markup.
func HasContent(src string) bool {
	return strings.Contains(src, "[^") || strings.Contains(src, "^[")
}
