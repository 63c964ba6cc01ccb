package footnote

import (
	"strconv"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Renderer renders footnote references and the footnote section.
type Renderer struct {
	html.Config
}

// The embedded html.Config takes the options given to
// goldmark.WithRendererOptions.
var _ renderer.SetOptioner = (*Renderer)(nil)

// NewRenderer returns a footnote renderer.
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
	reg.Register(KindReference, r.renderReference)
	reg.Register(KindList, r.renderList)
	reg.Register(KindItem, r.renderItem)
	reg.Register(KindBacklink, r.renderBacklink)
}

// anchor returns the anchor name of slot, for example "-chat1-2".
func anchor(prefix string, slot int) string {
	return prefix + strconv.Itoa(slot+1)
}

// refID returns the id of reference sub of slot. The first reference has no
// suffix.
func refID(prefix string, slot, sub int) string {
	id := anchor(prefix, slot)
	if sub > 0 {
		id += ":" + strconv.Itoa(sub)
	}
	return id
}

func caption(slot, sub int) string {
	c := "[" + strconv.Itoa(slot+1)
	if sub > 0 {
		c += ":" + strconv.Itoa(sub)
	}
	return c + "]"
}

// renderDefinition drops definitions left in place when the section pass did
// not run.
func (r *Renderer) renderDefinition(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderReference(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	ref := n.(*Reference)
	_, _ = w.WriteString(`<sup class="footnote-ref"><a href="#fn`)
	_, _ = w.Write(util.EscapeHTML([]byte(anchor(ref.Prefix, ref.Slot))))
	_, _ = w.WriteString(`" id="fnref`)
	_, _ = w.Write(util.EscapeHTML([]byte(refID(ref.Prefix, ref.Slot, ref.Sub))))
	_, _ = w.WriteString(`">`)
	_, _ = w.WriteString(caption(ref.Slot, ref.Sub))
	_, _ = w.WriteString(`</a></sup>`)
	return ast.WalkContinue, nil
}

func (r *Renderer) renderList(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		if r.XHTML {
			_, _ = w.WriteString("<hr class=\"footnotes-sep\" />\n")
		} else {
			_, _ = w.WriteString("<hr class=\"footnotes-sep\">\n")
		}
		_, _ = w.WriteString("<section class=\"footnotes\">\n<ol class=\"footnotes-list\">\n")
	} else {
		_, _ = w.WriteString("</ol>\n</section>\n")
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderItem(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	item := n.(*Item)
	if entering {
		_, _ = w.WriteString(`<li id="fn`)
		_, _ = w.Write(util.EscapeHTML([]byte(anchor(item.Prefix, item.Slot))))
		_, _ = w.WriteString(`" class="footnote-item">`)
	} else {
		_, _ = w.WriteString("</li>\n")
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderBacklink(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	b := n.(*Backlink)
	_, _ = w.WriteString(` <a href="#fnref`)
	_, _ = w.Write(util.EscapeHTML([]byte(refID(b.Prefix, b.Slot, b.Sub))))
	_, _ = w.WriteString("\" class=\"footnote-backref\">↩︎</a>")
	return ast.WalkContinue, nil
}
