// Package diagram turns ```mermaid fences into diagram placeholders:
//
//	<div class="mermaid-diagram" id="mermaid-1-x8k2m0q9z" data-mermaid-content="graph TD; A-->B">graph TD; A--&gt;B</div>
//
// The placeholder carries the escaped diagram source. Turning it into a
// drawing is left to the materialize package.
package diagram

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Mermaid is the fence language handled by default.
const Mermaid = "mermaid"

// Extension wires the fence transformer and renderer into goldmark.
type Extension struct {
	languages []string
}

// NewExtension returns a diagram extension for the given fence languages,
// mermaid when none are given.
func NewExtension(languages ...string) *Extension {
	if len(languages) == 0 {
		languages = []string{Mermaid}
	}
	return &Extension{languages: languages}
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(NewFenceTransformer(e.languages...), 50),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewRenderer(), 500),
	))
}

// HasContent reports whether src may contain a mermaid fence.
func HasContent(src string) bool {
	return strings.Contains(src, "```mermaid")
}
