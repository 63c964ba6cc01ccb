package subsup

import (
	"github.com/yuin/goldmark/ast"
)

// KindSubscript is the node kind of ~subscript~ text.
var KindSubscript = ast.NewNodeKind("Subscript")

// KindSuperscript is the node kind of ^superscript^ text.
var KindSuperscript = ast.NewNodeKind("Superscript")

// Subscript wraps lowered text.
type Subscript struct {
	ast.BaseInline
}

// NewSubscript returns a subscript holding text.
func NewSubscript(text []byte) *Subscript {
	n := &Subscript{}
	n.AppendChild(n, rawString(text))
	return n
}

// Kind implements ast.Node.
func (n *Subscript) Kind() ast.NodeKind {
	return KindSubscript
}

// Dump implements ast.Node.
func (n *Subscript) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Superscript wraps raised text.
type Superscript struct {
	ast.BaseInline
}

// NewSuperscript returns a superscript holding text.
func NewSuperscript(text []byte) *Superscript {
	n := &Superscript{}
	n.AppendChild(n, rawString(text))
	return n
}

// Kind implements ast.Node.
func (n *Superscript) Kind() ast.NodeKind {
	return KindSuperscript
}

// Dump implements ast.Node.
func (n *Superscript) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// rawString returns a string node that is HTML-escaped on output but not
// unescaped a second time.
func rawString(text []byte) *ast.String {
	s := ast.NewString(text)
	s.SetRaw(true)
	return s
}
