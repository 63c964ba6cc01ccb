package abbr

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"pkt.systems/chatmd/docenv"
	"pkt.systems/chatmd/internal/scan"
)

// matcher finds defined labels bounded by punctuation, whitespace or the
// ends of a text run. At each position the longest label wins.
type matcher struct {
	table  *docenv.Abbreviations
	labels []string
	quick  *regexp.Regexp
}

func newMatcher(table *docenv.Abbreviations) *matcher {
	labels := table.Labels()
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = regexp.QuoteMeta(l)
	}
	return &matcher{
		table:  table,
		labels: labels,
		quick:  regexp.MustCompile(strings.Join(quoted, "|")),
	}
}

type match struct {
	start, stop int
	title       string
}

// find returns every non-overlapping labelled occurrence in b, left to right.
func (m *matcher) find(b []byte) []match {
	if !m.quick.Match(b) {
		return nil
	}
	var out []match
	// next is the first offset a label may start at. A label directly after
	// a previous match needs a boundary character of its own.
	next := 0
	for pos := 0; pos < len(b); pos++ {
		if pos < next || !scan.BoundaryBefore(b, pos) {
			continue
		}
		for _, l := range m.labels {
			stop := pos + len(l)
			if stop > len(b) || string(b[pos:stop]) != l || !scan.BoundaryAfter(b, stop) {
				continue
			}
			title, _ := m.table.Lookup(l)
			out = append(out, match{start: pos, stop: stop, title: title})
			next = stop + 1
			break
		}
	}
	return out
}

type replaceTransformer struct{}

var defaultReplaceTransformer = &replaceTransformer{}

// NewReplaceTransformer returns a parser.ASTTransformer that removes
// definition lines and wraps every defined label in the document's text in
// an Abbreviation.
func NewReplaceTransformer() parser.ASTTransformer {
	return defaultReplaceTransformer
}

func (t *replaceTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	env := docenv.From(pc)
	if env.IsNested() {
		return
	}

	var defs []ast.Node
	var texts []*ast.Text
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case KindDefinition:
			defs = append(defs, n)
			return ast.WalkSkipChildren, nil
		case ast.KindCodeSpan, ast.KindAutoLink, ast.KindRawHTML, KindAbbreviation:
			return ast.WalkSkipChildren, nil
		case ast.KindText:
			if tn := n.(*ast.Text); !tn.IsRaw() {
				texts = append(texts, tn)
			}
		}
		return ast.WalkContinue, nil
	})
	for _, d := range defs {
		d.Parent().RemoveChild(d.Parent(), d)
	}
	if env.Abbreviations.Len() == 0 {
		return
	}

	m := newMatcher(env.Abbreviations)
	source := reader.Source()
	for _, tn := range texts {
		replace(tn, m.find(tn.Segment.Value(source)))
	}
}

// replace splits tn around matches. Line break flags stay on the last piece.
func replace(tn *ast.Text, matches []match) {
	if len(matches) == 0 {
		return
	}
	parent := tn.Parent()
	seg := tn.Segment
	var last ast.Node
	insert := func(n ast.Node) {
		parent.InsertBefore(parent, tn, n)
		last = n
	}
	pos := 0
	for _, mt := range matches {
		if mt.start > pos {
			insert(ast.NewTextSegment(text.NewSegment(seg.Start+pos, seg.Start+mt.start)))
		}
		a := NewAbbreviation([]byte(mt.title))
		a.AppendChild(a, ast.NewTextSegment(text.NewSegment(seg.Start+mt.start, seg.Start+mt.stop)))
		insert(a)
		pos = mt.stop
	}
	if pos < seg.Len() {
		insert(ast.NewTextSegment(text.NewSegment(seg.Start+pos, seg.Stop)))
	}
	if lt, ok := last.(*ast.Text); ok {
		lt.SetSoftLineBreak(tn.SoftLineBreak())
		lt.SetHardLineBreak(tn.HardLineBreak())
	} else if tn.SoftLineBreak() || tn.HardLineBreak() {
		br := ast.NewTextSegment(text.NewSegment(seg.Stop, seg.Stop))
		br.SetSoftLineBreak(tn.SoftLineBreak())
		br.SetHardLineBreak(tn.HardLineBreak())
		insert(br)
	}
	parent.RemoveChild(parent, tn)
}
