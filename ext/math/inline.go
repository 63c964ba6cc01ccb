package math

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"pkt.systems/chatmd/internal/scan"
)

// canOpen reports whether the $ at src[i] may open a formula.
func canOpen(src []byte, i int) bool {
	return i+1 >= len(src) || !scan.IsSpaceOrTab(src[i+1])
}

// canClose reports whether the $ at src[i] may close a formula. A closer
// preceded by whitespace or followed by a digit is rejected, so "$5 and $6"
// never pairs up.
func canClose(src []byte, i int) bool {
	if i > 0 && scan.IsSpaceOrTab(src[i-1]) {
		return false
	}
	return i+1 >= len(src) || !scan.IsDigit(src[i+1])
}

// matchInline inspects src, which starts at a $. A Literal result tells how
// many bytes to emit as plain text.
func matchInline(src []byte) scan.Result {
	if len(src) == 0 || src[0] != '$' {
		return scan.None()
	}
	if !canOpen(src, 0) {
		return scan.Lit(1)
	}
	end := scan.IndexUnescaped(src, 1, '$')
	switch {
	case end < 0:
		return scan.Lit(1)
	case end == 1:
		return scan.Lit(2)
	case !canClose(src, end):
		return scan.Lit(1)
	}
	return scan.Matched(1, end, end+1)
}

type inlineParser struct{}

var defaultInlineParser = &inlineParser{}

// NewInlineParser returns a parser.InlineParser for $ formulas.
func NewInlineParser() parser.InlineParser {
	return defaultInlineParser
}

func (p *inlineParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *inlineParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	if len(line) == 0 || line[0] != '$' {
		return nil
	}
	span := scan.CurrentLine(block)
	if canOpen(line, 0) && scan.IndexUnescaped(line, 1, '$') < 0 {
		span = scan.Gather(block)
	}
	res := matchInline(span.Bytes())
	switch res.Kind {
	case scan.Literal:
		block.Advance(res.Next)
		return ast.NewTextSegment(segment.WithStop(segment.Start + res.Next))
	case scan.Match:
		formula := append([]byte(nil), span.Bytes()[res.Start:res.Stop]...)
		span.Advance(block, res.Next)
		return NewInline(formula)
	}
	return nil
}

// HasContent reports whether src may contain a formula.
func HasContent(src string) bool {
	return strings.IndexByte(src, '$') >= 0
}
