package preview

import (
	"sort"
	"strconv"
	"strings"
)

const (
	ansiReset     = "\x1b[0m"
	ansiBold      = "\x1b[1m"
	ansiItalic    = "\x1b[3m"
	ansiUnderline = "\x1b[4m"
	ansiStrike    = "\x1b[9m"
)

// Style describes a terminal style as an ANSI prefix sequence.
type Style struct {
	Prefix string
}

func (s Style) wrap(text string, outer Style) string {
	if s.Prefix == "" || text == "" {
		return text
	}
	return s.Prefix + text + ansiReset + outer.Prefix
}

// Styles groups the semantic styles used by the preview.
type Styles struct {
	Text           Style
	Heading        [6]Style
	Emphasis       Style
	Strong         Style
	EmphasisStrong Style
	Strikethrough  Style
	CodeInline     Style
	CodeBlock      Style
	Quote          Style
	ListMarker     Style
	LinkText       Style
	LinkURL        Style
	ThematicBreak  Style
	Math           Style
	Container      Style
	FootnoteRef    Style
	Abbreviation   Style
	Diagram        Style
}

// Theme provides named styles for the preview.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

// Boring returns a theme without any escape sequences.
func Boring() Theme {
	return NewTheme("boring", Styles{})
}

// palette holds 256-color indexes; zero leaves the terminal default.
type palette struct {
	text, h1, h2, h3, h4, h5, h6 int
	emphasis, strong, code       int
	quote, marker, link, url     int
	rule, math, container, note  int
}

func fg(n int) string {
	if n == 0 {
		return ""
	}
	return "\x1b[38;5;" + strconv.Itoa(n) + "m"
}

func style(prefixes ...string) Style {
	var b strings.Builder
	for _, p := range prefixes {
		b.WriteString(p)
	}
	return Style{Prefix: b.String()}
}

func stylesFromPalette(p palette) Styles {
	return Styles{
		Text: style(fg(p.text)),
		Heading: [6]Style{
			style(ansiBold, fg(p.h1)), style(ansiBold, fg(p.h2)), style(ansiBold, fg(p.h3)),
			style(fg(p.h4)), style(fg(p.h5)), style(fg(p.h6)),
		},
		Emphasis:       style(ansiItalic, fg(p.emphasis)),
		Strong:         style(ansiBold, fg(p.strong)),
		EmphasisStrong: style(ansiBold, ansiItalic, fg(p.strong)),
		Strikethrough:  style(ansiStrike, fg(p.text)),
		CodeInline:     style(fg(p.code)),
		CodeBlock:      style(fg(p.code)),
		Quote:          style(ansiItalic, fg(p.quote)),
		ListMarker:     style(fg(p.marker)),
		LinkText:       style(ansiUnderline, fg(p.link)),
		LinkURL:        style(fg(p.url)),
		ThematicBreak:  style(fg(p.rule)),
		Math:           style(fg(p.math)),
		Container:      style(ansiBold, fg(p.container)),
		FootnoteRef:    style(fg(p.note)),
		Abbreviation:   style(ansiUnderline, fg(p.text)),
		Diagram:        style(fg(p.math)),
	}
}

var builtinThemes = map[string]Theme{
	"default": NewTheme("default", stylesFromPalette(palette{
		h1: 39, h2: 45, h3: 51, h4: 87, h5: 123, h6: 159,
		emphasis: 223, strong: 231, code: 214, quote: 245, marker: 39,
		link: 81, url: 244, rule: 240, math: 177, container: 220, note: 110,
	})),
	"gruvbox": NewTheme("gruvbox", stylesFromPalette(palette{
		text: 223, h1: 208, h2: 214, h3: 142, h4: 108, h5: 109, h6: 175,
		emphasis: 175, strong: 229, code: 142, quote: 246, marker: 208,
		link: 109, url: 245, rule: 239, math: 175, container: 214, note: 108,
	})),
	"nord": NewTheme("nord", stylesFromPalette(palette{
		text: 253, h1: 110, h2: 109, h3: 116, h4: 152, h5: 146, h6: 139,
		emphasis: 180, strong: 255, code: 150, quote: 102, marker: 110,
		link: 116, url: 102, rule: 60, math: 139, container: 222, note: 109,
	})),
	"dracula": NewTheme("dracula", stylesFromPalette(palette{
		text: 253, h1: 212, h2: 141, h3: 117, h4: 84, h5: 228, h6: 215,
		emphasis: 228, strong: 231, code: 84, quote: 61, marker: 212,
		link: 117, url: 61, rule: 61, math: 141, container: 215, note: 117,
	})),
	"solarized-dark": NewTheme("solarized-dark", stylesFromPalette(palette{
		text: 244, h1: 33, h2: 37, h3: 64, h4: 136, h5: 166, h6: 125,
		emphasis: 136, strong: 230, code: 64, quote: 240, marker: 33,
		link: 37, url: 240, rule: 235, math: 61, container: 136, note: 37,
	})),
	"github-light": NewTheme("github-light", stylesFromPalette(palette{
		text: 235, h1: 25, h2: 25, h3: 30, h4: 30, h5: 240, h6: 240,
		emphasis: 236, strong: 232, code: 124, quote: 242, marker: 25,
		link: 26, url: 244, rule: 250, math: 90, container: 130, note: 26,
	})),
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	t, ok := builtinThemes[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}
