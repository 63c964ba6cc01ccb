package container

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"pkt.systems/chatmd/internal/scan"
)

const (
	marker     = ':'
	minMarkers = 3
	// maxIndent is the indent from which a closing fence is treated as
	// content.
	maxIndent = 4
)

type fence struct {
	kind  Kind
	title []byte
	run   int
}

// matchOpen inspects a line that starts at the fence. The result bounds the
// parameter text after the fence; Next is the end of the line content.
func matchOpen(line []byte) (fence, scan.Result) {
	run := scan.MarkerRun(line, 0, marker)
	if run < minMarkers {
		return fence{}, scan.None()
	}
	end := scan.ContentLen(line)
	params := bytes.TrimSpace(line[run:end])
	word, rest, _ := bytes.Cut(params, []byte{' '})
	kind, ok := Lookup(string(word))
	if !ok {
		return fence{}, scan.None()
	}
	return fence{
		kind:  kind,
		title: bytes.TrimSpace(rest),
		run:   run,
	}, scan.Matched(run, end, end)
}

// matchClose reports whether line closes a container opened with run markers.
func matchClose(line []byte, run int) bool {
	w, off := scan.Indent(line)
	if w >= maxIndent {
		return false
	}
	n := scan.MarkerRun(line, off, marker)
	return n >= run && scan.IsBlankFrom(line, off+n)
}

type blockParser struct{}

var defaultBlockParser = &blockParser{}

// NewParser returns a parser.BlockParser for titled containers.
func NewParser() parser.BlockParser {
	return defaultBlockParser
}

func (b *blockParser) Trigger() []byte {
	return []byte{marker}
}

func (b *blockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || line[pos] != marker {
		return nil, parser.NoChildren
	}
	f, res := matchOpen(line[pos:])
	if !res.Ok() {
		return nil, parser.NoChildren
	}
	node := NewContainer(f.kind.Name, f.title, marker, f.run)
	reader.AdvanceToEOL()
	return node, parser.HasChildren
}

func (b *blockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	c := node.(*Container)
	line, _ := reader.PeekLine()
	if line == nil {
		return parser.Close
	}
	if matchClose(line, c.Run) {
		reader.AdvanceToEOL()
		c.Closed = true
		return parser.Close
	}
	return parser.Continue | parser.HasChildren
}

func (b *blockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (b *blockParser) CanInterruptParagraph() bool {
	return true
}

func (b *blockParser) CanAcceptIndentedLine() bool {
	return false
}
