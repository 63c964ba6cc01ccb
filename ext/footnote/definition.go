package footnote

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"pkt.systems/chatmd/docenv"
	"pkt.systems/chatmd/internal/scan"
)

// bodyIndent is the indent continuation lines of a definition need.
const bodyIndent = 4

// matchLabel inspects src, which starts at "[^", for a label closed by "]".
// Labels may not contain spaces or line breaks.
func matchLabel(src []byte) scan.Result {
	if len(src) < 4 || src[0] != '[' || src[1] != '^' {
		return scan.None()
	}
	for pos := 2; pos < len(src); pos++ {
		switch src[pos] {
		case ' ', '\t', '\n', '\r':
			return scan.None()
		case ']':
			if pos == 2 {
				return scan.None()
			}
			return scan.Matched(2, pos, pos+1)
		}
	}
	return scan.None()
}

// matchDefinition inspects a line that starts at "[^" for "[^label]:".
// Next points just after the colon.
func matchDefinition(line []byte) scan.Result {
	res := matchLabel(line)
	if !res.Ok() || res.Next >= len(line) || line[res.Next] != ':' {
		return scan.None()
	}
	return scan.Matched(res.Start, res.Stop, res.Next+1)
}

type definitionParser struct{}

var defaultDefinitionParser = &definitionParser{}

// NewDefinitionParser returns a parser.BlockParser for [^label]: blocks.
func NewDefinitionParser() parser.BlockParser {
	return defaultDefinitionParser
}

func (b *definitionParser) Trigger() []byte {
	return []byte{'['}
}

func (b *definitionParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || line[pos] != '[' {
		return nil, parser.NoChildren
	}
	res := matchDefinition(line[pos:])
	if !res.Ok() {
		return nil, parser.NoChildren
	}
	body := pos + res.Next
	for body < len(line) && scan.IsSpaceOrTab(line[body]) {
		body++
	}
	inline := !util.IsBlank(line[body:])
	if !inline && !indentedBody(reader) {
		return nil, parser.NoChildren
	}

	label := append([]byte(nil), line[pos+res.Start:pos+res.Stop]...)
	node := NewDefinition(label)
	node.Duplicate = !docenv.From(pc).Footnotes.Define(string(label))
	if !inline {
		reader.AdvanceToEOL()
		return node, parser.HasChildren
	}
	reader.Advance(body)
	return node, parser.HasChildren
}

// indentedBody reports whether the line after the current one is an indented
// continuation. It reads ahead in the source and never moves the reader.
func indentedBody(reader text.Reader) bool {
	_, seg := reader.PeekLine()
	src := reader.Source()
	start := seg.Stop
	if start <= 0 || start > len(src) {
		return false
	}
	if src[start-1] != '\n' {
		nl := bytes.IndexByte(src[start:], '\n')
		if nl < 0 {
			return false
		}
		start += nl + 1
	}
	next := src[start:]
	if end := bytes.IndexByte(next, '\n'); end >= 0 {
		next = next[:end+1]
	}
	if util.IsBlank(next) {
		return false
	}
	w, _ := scan.Indent(next)
	return w >= bodyIndent
}

func (b *definitionParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, _ := reader.PeekLine()
	if line == nil {
		return parser.Close
	}
	if util.IsBlank(line) {
		return parser.Continue | parser.HasChildren
	}
	childpos, padding := util.IndentPosition(line, reader.LineOffset(), bodyIndent)
	if childpos < 0 {
		return parser.Close
	}
	reader.AdvanceAndSetPadding(childpos, padding)
	return parser.Continue | parser.HasChildren
}

func (b *definitionParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (b *definitionParser) CanInterruptParagraph() bool {
	return true
}

func (b *definitionParser) CanAcceptIndentedLine() bool {
	return false
}
