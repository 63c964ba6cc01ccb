package math

import (
	"strconv"
	"sync/atomic"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// sequence numbers formula placeholders across every render in the process.
var sequence atomic.Uint64

// Renderer writes formula placeholders. The formula source is kept verbatim
// in data-formula for a typesetter to pick up later.
type Renderer struct {
	html.Config
}

// The embedded html.Config takes the options given to
// goldmark.WithRendererOptions.
var _ renderer.SetOptioner = (*Renderer)(nil)

// NewRenderer returns a placeholder renderer.
func NewRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &Renderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *Renderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindInline, r.renderInline)
	reg.Register(KindBlock, r.renderBlock)
}

func (r *Renderer) renderInline(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		writePlaceholder(w, "span", "math-inline", node.(*Inline).Formula)
	}
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		writePlaceholder(w, "div", "math-block", node.(*Block).Formula(source))
		_ = w.WriteByte('\n')
	}
	return ast.WalkSkipChildren, nil
}

func writePlaceholder(w util.BufWriter, tag, class string, formula []byte) {
	escaped := util.EscapeHTML(formula)
	_ = w.WriteByte('<')
	_, _ = w.WriteString(tag)
	_, _ = w.WriteString(` class="math-formula `)
	_, _ = w.WriteString(class)
	_, _ = w.WriteString(`" id="`)
	_, _ = w.WriteString(class)
	_ = w.WriteByte('-')
	_, _ = w.WriteString(strconv.FormatUint(sequence.Add(1), 10))
	_, _ = w.WriteString(`" data-formula="`)
	_, _ = w.Write(escaped)
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(escaped)
	_, _ = w.WriteString("</")
	_, _ = w.WriteString(tag)
	_ = w.WriteByte('>')
}
