package container

import (
	"strconv"
	"sync/atomic"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
	"golang.org/x/text/language"
)

// sequence numbers container ids across every render in the process.
var sequence atomic.Uint64

// Renderer renders Container nodes as alert boxes.
type Renderer struct {
	html.Config
	locale language.Tag
}

// The embedded html.Config takes the options given to
// goldmark.WithRendererOptions.
var _ renderer.SetOptioner = (*Renderer)(nil)

// NewRenderer returns a renderer using locale for default titles.
func NewRenderer(locale language.Tag, opts ...html.Option) renderer.NodeRenderer {
	r := &Renderer{
		Config: html.NewConfig(),
		locale: locale,
	}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *Renderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindContainer, r.renderContainer)
}

func (r *Renderer) renderContainer(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</div>\n</div>\n")
		return ast.WalkContinue, nil
	}
	n := node.(*Container)
	kind, ok := Lookup(n.Label)
	if !ok {
		return ast.WalkContinue, nil
	}
	title := n.Title
	if len(title) == 0 {
		title = []byte(kind.Title(r.locale))
	}
	id := strconv.FormatUint(sequence.Add(1), 10)

	_, _ = w.WriteString(`<div class="alert `)
	_, _ = w.WriteString(kind.Class)
	_, _ = w.WriteString(` container-`)
	_, _ = w.WriteString(kind.Name)
	_, _ = w.WriteString(`" id="container-`)
	_, _ = w.WriteString(kind.Name)
	_ = w.WriteByte('-')
	_, _ = w.WriteString(id)
	_, _ = w.WriteString(`" role="alert">` + "\n")
	_, _ = w.WriteString(`<div class="d-flex align-items-center mb-2"><i class="bi `)
	_, _ = w.WriteString(kind.Icon)
	_, _ = w.WriteString(` me-2"></i><strong>`)
	_, _ = w.Write(util.EscapeHTML(title))
	_, _ = w.WriteString("</strong></div>\n")
	_, _ = w.WriteString(`<div class="container-content">` + "\n")
	return ast.WalkContinue, nil
}
