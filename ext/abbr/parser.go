package abbr

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"pkt.systems/chatmd/docenv"
	"pkt.systems/chatmd/internal/scan"
)

// matchDefinition inspects a line that starts at "*[" for
// "*[label]: title". The result bounds the raw label; Next points just after
// the colon.
func matchDefinition(line []byte) scan.Result {
	if len(line) < 5 || line[0] != '*' || line[1] != '[' {
		return scan.None()
	}
	for pos := 2; pos < len(line); pos++ {
		switch line[pos] {
		case '[', '\n':
			return scan.None()
		case '\\':
			pos++
		case ']':
			if pos+1 >= len(line) || line[pos+1] != ':' {
				return scan.None()
			}
			return scan.Matched(2, pos, pos+2)
		}
	}
	return scan.None()
}

type definitionParser struct{}

var defaultDefinitionParser = &definitionParser{}

// NewDefinitionParser returns a parser.BlockParser for *[label]: title
// lines. Definitions are single lines and register their label as soon as
// they are parsed.
func NewDefinitionParser() parser.BlockParser {
	return defaultDefinitionParser
}

func (b *definitionParser) Trigger() []byte {
	return []byte{'*'}
}

func (b *definitionParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || line[pos] != '*' {
		return nil, parser.NoChildren
	}
	res := matchDefinition(line[pos:])
	if !res.Ok() {
		return nil, parser.NoChildren
	}
	label := append([]byte(nil), scan.UnescapeAny(line[pos+res.Start:pos+res.Stop])...)
	title := bytes.TrimSpace(line[pos+res.Next:])
	if len(label) == 0 || len(title) == 0 {
		return nil, parser.NoChildren
	}
	title = append([]byte(nil), title...)
	docenv.From(pc).Abbreviations.Define(string(label), string(title))
	reader.AdvanceToEOL()
	return NewDefinition(label, title), parser.NoChildren
}

func (b *definitionParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	return parser.Close
}

func (b *definitionParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (b *definitionParser) CanInterruptParagraph() bool {
	return true
}

func (b *definitionParser) CanAcceptIndentedLine() bool {
	return false
}
