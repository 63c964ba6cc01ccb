package math

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"pkt.systems/chatmd/internal/scan"
)

var blockDelim = []byte("$$")

// matchBlockOpen inspects a line that starts at the opening $$. A Match means
// the formula closes on the same line; Start and Stop then bound it. A
// Literal means the block continues on the following lines.
func matchBlockOpen(line []byte) scan.Result {
	if !bytes.HasPrefix(line, blockDelim) {
		return scan.None()
	}
	end := scan.ContentLen(line)
	rest := line[len(blockDelim):end]
	trimmed := bytes.TrimSpace(rest)
	if len(trimmed) >= len(blockDelim) && bytes.HasSuffix(trimmed, blockDelim) {
		start := len(blockDelim) + bytes.Index(rest, trimmed)
		stop := start + len(trimmed) - len(blockDelim)
		return scan.Matched(start, stop, end)
	}
	return scan.Lit(end)
}

// matchBlockClose reports whether line ends a multi-line formula and returns
// the offset of the closing $$.
func matchBlockClose(line []byte) (int, bool) {
	if !bytes.HasSuffix(bytes.TrimSpace(line), blockDelim) {
		return 0, false
	}
	return bytes.LastIndex(line, blockDelim), true
}

type blockParser struct{}

var defaultBlockParser = &blockParser{}

// NewBlockParser returns a parser.BlockParser for $$ display formulas.
func NewBlockParser() parser.BlockParser {
	return defaultBlockParser
}

func (b *blockParser) Trigger() []byte {
	return []byte{'$'}
}

func (b *blockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || line[pos] != '$' {
		return nil, parser.NoChildren
	}
	res := matchBlockOpen(line[pos:])
	if res.Kind == scan.NoMatch {
		return nil, parser.NoChildren
	}
	base := segment.Start - segment.Padding + pos
	node := NewBlock()
	node.raw.Append(text.NewSegment(base, segment.Stop))
	switch res.Kind {
	case scan.Match:
		node.Lines().Append(text.NewSegment(base+res.Start, base+res.Stop))
		node.Closed = true
	case scan.Literal:
		first := text.NewSegment(base+len(blockDelim), segment.Stop)
		if !util.IsBlank(first.Value(reader.Source())) {
			node.Lines().Append(first)
		}
	}
	reader.AdvanceToEOL()
	return node, parser.NoChildren
}

func (b *blockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	n := node.(*Block)
	if n.Closed {
		return parser.Close
	}
	line, segment := reader.PeekLine()
	if line == nil {
		return parser.Close
	}
	start := segment.Start - segment.Padding
	n.raw.Append(text.NewSegment(start, segment.Stop))
	if at, ok := matchBlockClose(line); ok {
		if !util.IsBlank(line[:at]) {
			n.Lines().Append(text.NewSegment(start, start+at))
		}
		n.Closed = true
		reader.AdvanceToEOL()
		return parser.Close
	}
	n.Lines().Append(segment)
	reader.AdvanceToEOL()
	return parser.Continue | parser.NoChildren
}

// Close turns a formula without content back into a paragraph so a lone $$
// stays literal text.
func (b *blockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	n := node.(*Block)
	if len(n.Formula(reader.Source())) != 0 {
		return
	}
	parent := n.Parent()
	if parent == nil {
		return
	}
	para := ast.NewParagraph()
	source := reader.Source()
	for i := 0; i < n.raw.Len(); i++ {
		seg := n.raw.At(i)
		para.Lines().Append(seg.TrimLeftSpace(source))
	}
	if last := para.Lines().Len() - 1; last >= 0 {
		seg := para.Lines().At(last)
		para.Lines().Set(last, seg.TrimRightSpace(source))
	}
	para.SetBlankPreviousLines(n.HasBlankPreviousLines())
	parent.ReplaceChild(parent, n, para)
}

func (b *blockParser) CanInterruptParagraph() bool {
	return true
}

func (b *blockParser) CanAcceptIndentedLine() bool {
	return false
}
