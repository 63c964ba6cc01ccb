// Package abbr adds abbreviations to goldmark.
//
// A line of the form
//
//	*[HTML]: Hyper Text Markup Language
//
// defines a label and disappears from the output. Every occurrence of the
// label in the document text that is bounded by whitespace, punctuation or
// the end of the text is rendered as <abbr title="...">. Longer labels win
// over shorter ones, and a label inside a longer word is left alone. The
// first definition of a label wins.
package abbr

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Extension wires the abbreviation parser, the replacement pass and the
// renderer into goldmark.
type Extension struct{}

// Abbr is the default abbreviation extension.
var Abbr = &Extension{}

// NewExtension returns an abbreviation extension.
func NewExtension() *Extension {
	return &Extension{}
}

// Extend implements goldmark.Extender. The replacement pass runs after the
// footnote section is assembled so footnote bodies are covered too.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(NewDefinitionParser(), 90),
		),
		parser.WithASTTransformers(
			util.Prioritized(NewReplaceTransformer(), 200),
		),
	)
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewRenderer(), 500),
	))
}

// HasContent reports whether src may define abbreviations.
func HasContent(src string) bool {
	return strings.Contains(src, "*[")
}
