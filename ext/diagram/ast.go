package diagram

import (
	"github.com/yuin/goldmark/ast"
)

// KindBlock is the node kind of a diagram block.
var KindBlock = ast.NewNodeKind("Diagram")

// Block is a fenced diagram. Its lines are the diagram source.
type Block struct {
	ast.BaseBlock

	// Language is the fence info word, for example "mermaid".
	Language string
}

// NewBlock returns an empty diagram block.
func NewBlock(lang string) *Block {
	return &Block{Language: lang}
}

// IsRaw implements ast.Node.
func (n *Block) IsRaw() bool {
	return true
}

// Source returns the diagram text with surrounding whitespace trimmed.
func (n *Block) Source(source []byte) []byte {
	var out []byte
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		out = append(out, seg.Value(source)...)
	}
	return trim(out)
}

func trim(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && isSpace(b[start]) {
		start++
	}
	for end > start && isSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Kind implements ast.Node.
func (n *Block) Kind() ast.NodeKind {
	return KindBlock
}

// Dump implements ast.Node.
func (n *Block) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Language": n.Language,
	}, nil)
}
