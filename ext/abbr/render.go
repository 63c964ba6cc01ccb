package abbr

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Renderer renders abbreviations as <abbr> elements.
type Renderer struct {
	html.Config
}

// The embedded html.Config takes the options given to
// goldmark.WithRendererOptions.
var _ renderer.SetOptioner = (*Renderer)(nil)

// NewRenderer returns an abbreviation renderer.
func NewRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &Renderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *Renderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindDefinition, r.renderDefinition)
	reg.Register(KindAbbreviation, r.renderAbbreviation)
}

func (r *Renderer) renderDefinition(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderAbbreviation(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<abbr title="`)
		_, _ = w.Write(util.EscapeHTML(n.(*Abbreviation).Title))
		_, _ = w.WriteString(`">`)
	} else {
		_, _ = w.WriteString("</abbr>")
	}
	return ast.WalkContinue, nil
}
