package diagram

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

type fenceTransformer struct {
	languages map[string]bool
}

// NewFenceTransformer returns a parser.ASTTransformer that turns fenced code
// blocks whose info word is one of languages into diagram blocks.
func NewFenceTransformer(languages ...string) parser.ASTTransformer {
	t := &fenceTransformer{languages: make(map[string]bool, len(languages))}
	for _, l := range languages {
		t.languages[l] = true
	}
	return t
}

func (t *fenceTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	var fences []*ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fc, ok := n.(*ast.FencedCodeBlock); ok {
			if t.languages[string(infoWord(fc, source))] {
				fences = append(fences, fc)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	for _, fc := range fences {
		b := NewBlock(string(infoWord(fc, source)))
		b.SetLines(fc.Lines())
		parent := fc.Parent()
		parent.ReplaceChild(parent, fc, b)
	}
}

func infoWord(fc *ast.FencedCodeBlock, source []byte) []byte {
	if fc.Info == nil {
		return nil
	}
	info := bytes.TrimSpace(fc.Info.Segment.Value(source))
	if i := bytes.IndexAny(info, " \t"); i >= 0 {
		info = info[:i]
	}
	return info
}
