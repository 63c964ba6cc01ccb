// Package subsup adds ~subscript~ and ^superscript^ to goldmark.
//
// Content runs to the next delimiter on the same line and may not contain
// unescaped whitespace: H~2~O and E=mc^2^ work, x^a b^ stays literal.
// Backslash-escaped punctuation and spaces inside are unescaped.
package subsup

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Extension wires the sub/sup parsers and renderer into goldmark.
type Extension struct{}

// SubSup is the default sub/sup extension.
var SubSup = &Extension{}

// NewExtension returns a sub/sup extension.
func NewExtension() *Extension {
	return &Extension{}
}

// Extend implements goldmark.Extender. Subscript runs before strikethrough
// (500) so single tildes never strike through; superscript runs after the
// anonymous footnote parser.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(NewSubscriptParser(), 490),
		util.Prioritized(NewSuperscriptParser(), 510),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewRenderer(), 500),
	))
}

// HasContent reports whether src may contain sub/sup markup.
func HasContent(src string) bool {
	return strings.ContainsAny(src, "~^")
}
