package diagram

import (
	"math/rand/v2"
	"strconv"
	"sync/atomic"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

var sequence atomic.Uint64

// NextID returns a fresh placeholder id such as "mermaid-3-k2j9x0a1b".
func NextID(lang string) string {
	n := sequence.Add(1)
	suffix := strconv.FormatUint(rand.Uint64(), 36)
	if len(suffix) > 9 {
		suffix = suffix[:9]
	}
	return lang + "-" + strconv.FormatUint(n, 10) + "-" + suffix
}

// Renderer renders diagram blocks as placeholders.
type Renderer struct {
	html.Config
}

// The embedded html.Config takes the options given to
// goldmark.WithRendererOptions.
var _ renderer.SetOptioner = (*Renderer)(nil)

// NewRenderer returns a diagram renderer.
func NewRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &Renderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *Renderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindBlock, r.renderBlock)
}

func (r *Renderer) renderBlock(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	b := n.(*Block)
	content := util.EscapeHTML(b.Source(source))
	_, _ = w.WriteString(`<div class="`)
	_, _ = w.WriteString(b.Language)
	_, _ = w.WriteString(`-diagram" id="`)
	_, _ = w.WriteString(NextID(b.Language))
	_, _ = w.WriteString(`" data-`)
	_, _ = w.WriteString(b.Language)
	_, _ = w.WriteString(`-content="`)
	_, _ = w.Write(content)
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(content)
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}
