// Package preview renders a parsed chat message as styled terminal text.
package preview

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"pkt.systems/chatmd/ext/abbr"
	"pkt.systems/chatmd/ext/container"
	"pkt.systems/chatmd/ext/diagram"
	"pkt.systems/chatmd/ext/footnote"
	"pkt.systems/chatmd/ext/math"
	"pkt.systems/chatmd/ext/subsup"
)

// Config configures Render.
type Config struct {
	// Width is the wrap width in columns; zero means 80.
	Width int
	Theme Theme
	// OSC8 emits links as terminal hyperlinks instead of "text (url)".
	OSC8 bool
	// Locale selects default container titles.
	Locale string
}

type renderer struct {
	cfg    Config
	styles Styles
	source []byte
}

// Render writes doc, parsed from source, to w.
func Render(w io.Writer, doc ast.Node, source []byte, cfg Config) error {
	if doc == nil {
		return fmt.Errorf("preview: document is nil")
	}
	if cfg.Width <= 0 {
		cfg.Width = 80
	}
	if cfg.Theme == nil {
		cfg.Theme = DefaultTheme()
	}
	r := &renderer{cfg: cfg, styles: cfg.Theme.Styles(), source: source}
	bw := bufio.NewWriter(w)
	for _, line := range r.blocks(doc, cfg.Width) {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

// blocks renders the block children of parent, separated by blank lines
// unless parent is a tight list item.
func (r *renderer) blocks(parent ast.Node, w int) []string {
	tight := false
	if item, ok := parent.(*ast.ListItem); ok {
		if list, ok := item.Parent().(*ast.List); ok {
			tight = list.IsTight
		}
	}
	var out []string
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		lines := r.block(c, w)
		if len(lines) == 0 {
			continue
		}
		if len(out) > 0 && !tight {
			out = append(out, "")
		}
		out = append(out, lines...)
	}
	return out
}

func (r *renderer) block(n ast.Node, w int) []string {
	s := r.styles
	switch n := n.(type) {
	case *ast.Heading:
		st := s.Heading[min(max(n.Level, 1), 6)-1]
		text := strings.Repeat("#", n.Level) + " " + r.inlines(n, st)
		return wrapLines(st.wrap(text, Style{}), w)
	case *ast.Paragraph, *ast.TextBlock:
		return wrapLines(s.Text.wrap(r.inlines(n, s.Text), Style{}), w)
	case *ast.ThematicBreak:
		return []string{s.ThematicBreak.wrap(strings.Repeat("─", w), Style{})}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return r.code(n, w)
	case *ast.Blockquote:
		return prefixLines(r.blocks(n, w-2), s.Quote.wrap("│", Style{})+" ", s.Quote.wrap("│", Style{})+" ")
	case *ast.List:
		return r.list(n, w)
	case *ast.HTMLBlock:
		return nil
	case *extast.Table:
		return r.table(n)
	case *container.Container:
		return r.container(n, w)
	case *math.Block:
		return prefixLines(r.raw(n.Formula(r.source)), "  ", "  ")
	case *diagram.Block:
		head := s.Diagram.wrap("["+n.Language+" diagram]", Style{})
		return append([]string{head}, prefixLines(r.raw(n.Source(r.source)), "  ", "  ")...)
	case *footnote.List:
		return r.footnotes(n, w)
	case *footnote.Definition, *abbr.Definition:
		return nil
	}
	if n.Type() == ast.TypeBlock && n.HasChildren() {
		return r.blocks(n, w)
	}
	return nil
}

func (r *renderer) raw(b []byte) []string {
	text := strings.TrimRight(string(b), "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = r.styles.Math.wrap(l, Style{})
	}
	return lines
}

func (r *renderer) code(n ast.Node, w int) []string {
	var lines []string
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		line := strings.TrimRight(string(seg.Value(r.source)), "\r\n")
		lines = append(lines, r.styles.CodeBlock.wrap(truncateWithEllipsis(line, w-2), Style{}))
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return prefixLines(lines, "  ", "  ")
}

func (r *renderer) list(n *ast.List, w int) []string {
	var out []string
	num := n.Start
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		marker := "• "
		if n.IsOrdered() {
			marker = strconv.Itoa(num) + string(n.Marker) + " "
			num++
		}
		body := r.blocks(c, w-width(marker))
		if len(body) == 0 {
			body = []string{""}
		}
		body = hangingIndent(body, uint(width(marker)))
		body[0] = r.styles.ListMarker.wrap(marker, Style{}) + body[0]
		if len(out) > 0 && !n.IsTight {
			out = append(out, "")
		}
		out = append(out, body...)
	}
	return out
}

func (r *renderer) container(n *container.Container, w int) []string {
	kind, ok := container.Lookup(n.Label)
	if !ok {
		return r.blocks(n, w)
	}
	title := string(n.Title)
	if title == "" {
		title = kind.Title(container.MatchLocale(r.cfg.Locale))
	}
	bar := r.styles.Container.wrap("┃", Style{}) + " "
	head := bar + r.styles.Container.wrap(strings.ToUpper(kind.Name)+": "+title, Style{})
	return append([]string{head}, prefixLines(r.blocks(n, w-2), bar, bar)...)
}

func (r *renderer) footnotes(n *footnote.List, w int) []string {
	out := []string{r.styles.ThematicBreak.wrap(strings.Repeat("─", min(w, 20)), Style{})}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*footnote.Item)
		if !ok {
			continue
		}
		marker := "[" + strconv.Itoa(item.Slot+1) + "] "
		body := r.blocks(item, w-width(marker))
		if len(body) == 0 {
			body = []string{""}
		}
		body = hangingIndent(body, uint(width(marker)))
		body[0] = r.styles.FootnoteRef.wrap(marker, Style{}) + body[0]
		out = append(out, body...)
	}
	return out
}

func (r *renderer) table(n *extast.Table) []string {
	var rows [][]string
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, r.inlines(cell, r.styles.Text))
		}
		rows = append(rows, cells)
	}
	var widths []int
	for _, cells := range rows {
		for i, c := range cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], width(c))
		}
	}
	var out []string
	for i, cells := range rows {
		padded := make([]string, len(cells))
		for j, c := range cells {
			padded[j] = c + strings.Repeat(" ", widths[j]-width(c))
		}
		out = append(out, strings.TrimRight(strings.Join(padded, " │ "), " "))
		if i == 0 {
			seps := make([]string, len(widths))
			for j, wd := range widths {
				seps[j] = strings.Repeat("─", wd)
			}
			out = append(out, strings.Join(seps, "─┼─"))
		}
	}
	return out
}

// inlines renders the inline children of n. outer is the style active
// around them, restored after every nested style.
func (r *renderer) inlines(n ast.Node, outer Style) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		b.WriteString(r.inline(c, outer))
	}
	return b.String()
}

func (r *renderer) inline(n ast.Node, outer Style) string {
	s := r.styles
	switch n := n.(type) {
	case *ast.Text:
		text := string(n.Segment.Value(r.source))
		switch {
		case n.HardLineBreak():
			text += "\n"
		case n.SoftLineBreak():
			text += " "
		}
		return text
	case *ast.String:
		return string(n.Value)
	case *ast.CodeSpan:
		return s.CodeInline.wrap(r.plain(n), outer)
	case *ast.Emphasis:
		st := s.Emphasis
		if n.Level > 1 {
			st = s.Strong
		}
		if inner, ok := n.FirstChild().(*ast.Emphasis); ok && n.ChildCount() == 1 && inner.Level != n.Level {
			return s.EmphasisStrong.wrap(r.inlines(inner, s.EmphasisStrong), outer)
		}
		return st.wrap(r.inlines(n, st), outer)
	case *extast.Strikethrough:
		return s.Strikethrough.wrap(r.inlines(n, s.Strikethrough), outer)
	case *ast.Link:
		return r.link(string(n.Destination), r.inlines(n, s.LinkText), outer)
	case *ast.AutoLink:
		url := string(n.URL(r.source))
		return r.link(url, string(n.Label(r.source)), outer)
	case *ast.Image:
		return "[" + r.plain(n) + "]"
	case *ast.RawHTML:
		return ""
	case *extast.TaskCheckBox:
		if n.IsChecked {
			return "[x] "
		}
		return "[ ] "
	case *math.Inline:
		return s.Math.wrap(string(n.Formula), outer)
	case *subsup.Subscript:
		return script(r.plain(n), subscripts, "_")
	case *subsup.Superscript:
		return script(r.plain(n), superscripts, "^")
	case *abbr.Abbreviation:
		return s.Abbreviation.wrap(r.plain(n), outer)
	case *footnote.Reference:
		caption := "[" + strconv.Itoa(n.Slot+1) + "]"
		return s.FootnoteRef.wrap(caption, outer)
	case *footnote.Backlink:
		return ""
	}
	return r.inlines(n, outer)
}

func (r *renderer) link(url, text string, outer Style) string {
	s := r.styles
	if r.cfg.OSC8 {
		return hyperlink(url, s.LinkText.wrap(text, outer))
	}
	if text == url || text == "" {
		return s.LinkURL.wrap(fitURL(url, r.cfg.Width), outer)
	}
	return s.LinkText.wrap(text, outer) + " (" + s.LinkURL.wrap(fitURL(url, r.cfg.Width/2), outer) + ")"
}

// plain returns the text of n without styles.
func (r *renderer) plain(n ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(r.source))
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

var (
	subscripts   = strings.NewReplacer("0", "₀", "1", "₁", "2", "₂", "3", "₃", "4", "₄", "5", "₅", "6", "₆", "7", "₇", "8", "₈", "9", "₉", "+", "₊", "-", "₋", "=", "₌", "(", "₍", ")", "₎")
	superscripts = strings.NewReplacer("0", "⁰", "1", "¹", "2", "²", "3", "³", "4", "⁴", "5", "⁵", "6", "⁶", "7", "⁷", "8", "⁸", "9", "⁹", "+", "⁺", "-", "⁻", "=", "⁼", "(", "⁽", ")", "⁾", "n", "ⁿ", "i", "ⁱ")
)

// script maps text to Unicode sub or superscript characters. Text with a
// character that has no such form is written as mark(text).
func script(text string, r *strings.Replacer, mark string) string {
	mapped := r.Replace(text)
	for _, c := range mapped {
		if c < 0x80 {
			return mark + "(" + text + ")"
		}
	}
	return mapped
}
