package subsup

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"pkt.systems/chatmd/internal/scan"
)

// matchSpan inspects src, which starts at delim, for a delim...delim span on the
// current line. Nested constructs are skipped whole. Empty content and
// content with unescaped whitespace are rejected.
func matchSpan(src []byte, delim byte) scan.Result {
	if len(src) < 3 || src[0] != delim {
		return scan.None()
	}
	pos := 1
	found := false
	for pos < len(src) {
		c := src[pos]
		if c == delim {
			found = true
			break
		}
		if c == '\n' {
			break
		}
		pos = scan.SkipNested(src, pos)
	}
	if !found || pos == 1 {
		return scan.None()
	}
	if scan.HasUnescapedSpace(src[1:pos]) {
		return scan.None()
	}
	return scan.Matched(1, pos, pos+1)
}

type subscriptParser struct{}

var defaultSubscriptParser = &subscriptParser{}

// NewSubscriptParser returns a parser.InlineParser for ~subscript~.
//
// A "~~" run is left to the strikethrough parser. A lone "~" that does not
// form a subscript is consumed as text so it never pairs as a single-tilde
// strikethrough.
func NewSubscriptParser() parser.InlineParser {
	return defaultSubscriptParser
}

func (p *subscriptParser) Trigger() []byte {
	return []byte{'~'}
}

func (p *subscriptParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) == 0 || line[0] != '~' {
		return nil
	}
	if (len(line) > 1 && line[1] == '~') || block.PrecendingCharacter() == '~' {
		return nil
	}
	res := matchSpan(line, '~')
	if !res.Ok() {
		// Leave it to strikethrough, or to plain text when that is absent.
		return nil
	}
	node := NewSubscript(scan.Unescape(line[res.Start:res.Stop]))
	block.Advance(res.Next)
	return node
}

type superscriptParser struct{}

var defaultSuperscriptParser = &superscriptParser{}

// NewSuperscriptParser returns a parser.InlineParser for ^superscript^.
func NewSuperscriptParser() parser.InlineParser {
	return defaultSuperscriptParser
}

func (p *superscriptParser) Trigger() []byte {
	return []byte{'^'}
}

func (p *superscriptParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	res := matchSpan(line, '^')
	if !res.Ok() {
		return nil
	}
	node := NewSuperscript(scan.Unescape(line[res.Start:res.Stop]))
	block.Advance(res.Next)
	return node
}
