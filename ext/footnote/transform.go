package footnote

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"pkt.systems/chatmd/docenv"
)

type sectionTransformer struct{}

var defaultSectionTransformer = &sectionTransformer{}

// NewSectionTransformer returns a parser.ASTTransformer that removes the
// definitions from the document and appends the footnote section in
// first-use order.
func NewSectionTransformer() parser.ASTTransformer {
	return defaultSectionTransformer
}

func (t *sectionTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	env := docenv.From(pc)
	if env.IsNested() {
		return
	}

	var found []*Definition
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if d, ok := n.(*Definition); ok {
			found = append(found, d)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	defs := make(map[string]*Definition, len(found))
	for _, d := range found {
		d.Parent().RemoveChild(d.Parent(), d)
		if d.Duplicate {
			continue
		}
		if _, ok := defs[string(d.Label)]; !ok {
			defs[string(d.Label)] = d
		}
	}

	fns := env.Footnotes
	if fns.Len() == 0 {
		return
	}
	prefix := env.AnchorPrefix()
	list := NewList(prefix)
	for i, fn := range fns.Slots() {
		item := NewItem(i, prefix)
		switch {
		case fn.Anonymous():
			if fn.Content != nil {
				item.AppendChild(item, fn.Content)
			}
		default:
			if d := defs[fn.Label]; d != nil {
				moveChildren(item, d)
			}
		}
		var target ast.Node = item
		if last := item.LastChild(); last != nil && last.Kind() == ast.KindParagraph {
			target = last
		}
		for sub := 0; sub < fn.Backlinks(); sub++ {
			target.AppendChild(target, NewBacklink(i, sub, prefix))
		}
		list.AppendChild(list, item)
	}
	doc.AppendChild(doc, list)
}

func moveChildren(dst, src ast.Node) {
	for c := src.FirstChild(); c != nil; {
		next := c.NextSibling()
		dst.AppendChild(dst, c)
		c = next
	}
}
