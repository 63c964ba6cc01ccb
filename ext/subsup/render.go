package subsup

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Renderer renders Subscript and Superscript nodes.
type Renderer struct {
	html.Config
}

// The embedded html.Config takes the options given to
// goldmark.WithRendererOptions.
var _ renderer.SetOptioner = (*Renderer)(nil)

// NewRenderer returns a sub/sup renderer.
func NewRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &Renderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *Renderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindSubscript, r.tag("sub"))
	reg.Register(KindSuperscript, r.tag("sup"))
}

func (r *Renderer) tag(name string) renderer.NodeRendererFunc {
	return func(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			_ = w.WriteByte('<')
			_, _ = w.WriteString(name)
			if n.Attributes() != nil {
				html.RenderAttributes(w, n, html.GlobalAttributeFilter)
			}
			_ = w.WriteByte('>')
		} else {
			_, _ = w.WriteString("</")
			_, _ = w.WriteString(name)
			_ = w.WriteByte('>')
		}
		return ast.WalkContinue, nil
	}
}
