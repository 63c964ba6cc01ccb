package footnote

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"pkt.systems/chatmd/docenv"
	"pkt.systems/chatmd/internal/scan"
)

type referenceParser struct{}

var defaultReferenceParser = &referenceParser{}

// NewReferenceParser returns a parser.InlineParser for [^label] references.
// Labels without a definition are left to the link parser.
func NewReferenceParser() parser.InlineParser {
	return defaultReferenceParser
}

func (p *referenceParser) Trigger() []byte {
	return []byte{'['}
}

func (p *referenceParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	res := matchLabel(line)
	if !res.Ok() {
		return nil
	}
	env := docenv.From(pc)
	label := string(line[res.Start:res.Stop])
	slot, sub, ok := env.Footnotes.Reference(label)
	if !ok {
		return nil
	}
	block.Advance(res.Next)
	return NewReference(slot, sub, label, env.AnchorPrefix())
}

// matchAnonymous inspects src, which starts at "^[", for a bracket-balanced
// note body. Nested constructs are skipped whole, so a "]" inside a code span
// does not close the note.
func matchAnonymous(src []byte) scan.Result {
	if len(src) < 3 || src[0] != '^' || src[1] != '[' {
		return scan.None()
	}
	level := 1
	for pos := 2; pos < len(src); {
		c := src[pos]
		if c == ']' {
			level--
			if level == 0 {
				return scan.Matched(2, pos, pos+1)
			}
		}
		next := scan.SkipNested(src, pos)
		if c == '[' && next == pos+1 {
			level++
		}
		pos = next
	}
	return scan.None()
}

type anonymousParser struct {
	parser parser.Parser
}

// NewAnonymousParser returns a parser.InlineParser for ^[inline notes]. The
// note body is parsed as inline markup by p.
func NewAnonymousParser(p parser.Parser) parser.InlineParser {
	return &anonymousParser{parser: p}
}

func (p *anonymousParser) Trigger() []byte {
	return []byte{'^'}
}

func (p *anonymousParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 3 || line[1] != '[' {
		return nil
	}
	span := scan.CurrentLine(block)
	res := matchAnonymous(span.Bytes())
	if !res.Ok() {
		span = scan.Gather(block)
		res = matchAnonymous(span.Bytes())
		if !res.Ok() {
			return nil
		}
	}
	if res.Start == res.Stop {
		return nil
	}

	env := docenv.From(pc)
	slot := env.Footnotes.AddAnonymous(nil)
	env.Footnotes.At(slot).Content = p.body(span, res, block.Source(), pc, env)
	span.Advance(block, res.Next)

	node := NewReference(slot, 0, "", env.AnchorPrefix())
	node.Anonymous = true
	return node
}

// body parses the note text into a paragraph. The sub-parse reads a copy of
// the source in which everything before the note is blanked, so the
// resulting text segments stay valid against the document source.
func (p *anonymousParser) body(span scan.Span, res scan.Result, source []byte, pc parser.Context, env *docenv.Env) ast.Node {
	raw := span.Bytes()[res.Start:res.Stop]
	if p.parser == nil || !span.Contiguous(source, res.Start, res.Stop) {
		return literalBody(raw)
	}
	start, stop := span.SourceOffset(res.Start), span.SourceOffset(res.Stop)
	if start < 0 || stop > len(source) || start > stop {
		return literalBody(raw)
	}
	buf := make([]byte, stop)
	for i := 0; i < start; i++ {
		buf[i] = '\n'
	}
	copy(buf[start:], source[start:stop])

	ctx := parser.NewContext()
	for _, ref := range pc.References() {
		ctx.AddReference(ref)
	}
	docenv.Attach(ctx, env.Nested())
	doc := p.parser.Parse(text.NewReader(buf), parser.WithContext(ctx))

	para, ok := doc.FirstChild().(*ast.Paragraph)
	if !ok || para.NextSibling() != nil {
		return literalBody(raw)
	}
	doc.RemoveChild(doc, para)
	return para
}

func literalBody(raw []byte) ast.Node {
	para := ast.NewParagraph()
	para.AppendChild(para, ast.NewString(append([]byte(nil), raw...)))
	return para
}
