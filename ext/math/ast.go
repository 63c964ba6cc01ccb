package math

import (
	"bytes"
	"strconv"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// KindInline is the node kind of an inline formula.
var KindInline = ast.NewNodeKind("MathInline")

// KindBlock is the node kind of a display formula.
var KindBlock = ast.NewNodeKind("MathBlock")

// Inline is a $...$ formula. Formula holds the raw LaTeX source.
type Inline struct {
	ast.BaseInline
	Formula []byte
}

// NewInline returns an inline formula node.
func NewInline(formula []byte) *Inline {
	return &Inline{Formula: formula}
}

// Kind implements ast.Node.
func (n *Inline) Kind() ast.NodeKind {
	return KindInline
}

// Dump implements ast.Node.
func (n *Inline) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Formula": string(n.Formula),
	}, nil)
}

// Block is a $$...$$ formula. Its lines hold the formula source.
type Block struct {
	ast.BaseBlock
	// Closed is false when the block ran to the end of its enclosing block.
	Closed bool

	raw *text.Segments
}

// NewBlock returns an empty display formula node.
func NewBlock() *Block {
	return &Block{raw: text.NewSegments()}
}

// Kind implements ast.Node.
func (n *Block) Kind() ast.NodeKind {
	return KindBlock
}

// IsRaw implements ast.Node. Formula lines are never inline-parsed.
func (n *Block) IsRaw() bool {
	return true
}

// Formula returns the formula source.
func (n *Block) Formula(source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return bytes.TrimRight(buf.Bytes(), " \t\r\n")
}

// Dump implements ast.Node.
func (n *Block) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Closed": strconv.FormatBool(n.Closed),
	}, nil)
}
