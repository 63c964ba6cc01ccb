package math

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func convert(t *testing.T, src string) *goquery.Document {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(NewExtension()))
	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte(src), &buf))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(buf.String()))
	require.NoError(t, err)
	return doc
}

func formulas(doc *goquery.Document, selector string) []string {
	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.AttrOr("data-formula", ""))
	})
	return out
}

func TestInlineMath(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		src  string
		want []string
		text string
	}{
		{name: "simple", src: "price is $5$", want: []string{"5"}},
		{name: "space after opener", src: "$ 5 and 3$", text: "$ 5 and 3$"},
		{name: "digits inside", src: "$5 and 3$", want: []string{"5 and 3"}},
		{name: "empty", src: "$$", text: "$$"},
		{name: "empty inline", src: "a $$ b", text: "a $$ b"},
		{name: "unmatched", src: "cost $5", text: "cost $5"},
		{name: "closer followed by digit", src: "$5 and $6", text: "$5 and $6"},
		{name: "closer after space", src: "$a $ b", text: "$a $ b"},
		{name: "escaped closer", src: `$a\$b$`, want: []string{`a\$b`}},
		{name: "two formulas", src: "$a$ and $b$", want: []string{"a", "b"}},
		{name: "spans lines", src: "x $a\nb$ y", want: []string{"a\nb"}},
		{name: "escaped opener", src: `\$a$`, text: "$a$"},
		{name: "code span wins", src: "`$x$`", text: "$x$"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc := convert(t, tc.src)
			assert.Equal(t, tc.want, formulas(doc, "span.math-formula.math-inline"))
			if tc.text != "" {
				assert.Equal(t, tc.text, strings.TrimSpace(doc.Find("p").Text()))
			}
		})
	}
}

func TestInlinePlaceholderMarkup(t *testing.T) {
	t.Parallel()
	doc := convert(t, "$a<b$")
	span := doc.Find("span.math-inline")
	require.Equal(t, 1, span.Length())
	assert.Equal(t, "a<b", span.AttrOr("data-formula", ""))
	assert.Equal(t, "a<b", span.Text())
	assert.Regexp(t, `^math-inline-\d+$`, span.AttrOr("id", ""))
}

func TestBlockMath(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		src   string
		want  []string
		after string
	}{
		{name: "single line", src: "$$x^2$$", want: []string{"x^2"}},
		{name: "single line padded", src: "$$ x^2 $$  ", want: []string{"x^2"}},
		{name: "multi line", src: "$$\na+b\n= c\n$$\nafter", want: []string{"a+b\n= c"}, after: "after"},
		{name: "closing prefix kept", src: "$$\na+b\nc $$\nafter", want: []string{"a+b\nc"}, after: "after"},
		{name: "unterminated", src: "$$\na\nb", want: []string{"a\nb"}},
		{name: "interrupts paragraph", src: "text\n$$x$$", want: []string{"x"}, after: "text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc := convert(t, tc.src)
			got := formulas(doc, "div.math-formula.math-block")
			for i := range got {
				got[i] = strings.TrimSpace(got[i])
			}
			assert.Equal(t, tc.want, got)
			if tc.after != "" {
				assert.Equal(t, tc.after, strings.TrimSpace(doc.Find("p").Text()))
			}
		})
	}
}

func TestBlockMathFirstLineContent(t *testing.T) {
	t.Parallel()
	doc := convert(t, "$$ a\nb $$")
	got := formulas(doc, "div.math-block")
	require.Len(t, got, 1)
	assert.Equal(t, "a\nb", strings.TrimSpace(got[0]))
	assert.Regexp(t, `^math-block-\d+$`, doc.Find("div.math-block").AttrOr("id", ""))
}

func TestEmptyBlockStaysLiteral(t *testing.T) {
	t.Parallel()
	for _, src := range []string{"$$$$", "$$\n$$"} {
		doc := convert(t, src)
		assert.Equal(t, 0, doc.Find(".math-formula").Length(), src)
		assert.Equal(t, strings.ReplaceAll(src, "\n", ""), strings.ReplaceAll(strings.TrimSpace(doc.Find("p").Text()), "\n", ""), src)
	}
}

func TestEmptyBlockTrimsLiteralParagraph(t *testing.T) {
	t.Parallel()
	doc := convert(t, "$$\n$$   ")
	assert.Equal(t, 0, doc.Find(".math-formula").Length())
	text := doc.Find("p").Text()
	assert.Equal(t, 2, strings.Count(text, "$$"))
	assert.Equal(t, strings.TrimRight(text, " \n"), strings.TrimRight(text, "\n"))
}

func TestMathInsideOtherBlocks(t *testing.T) {
	t.Parallel()
	doc := convert(t, "- item $x$\n\n> $$\n> y\n> $$")
	assert.Equal(t, []string{"x"}, formulas(doc, "li span.math-inline"))
	assert.Equal(t, []string{"y"}, formulas(doc, "blockquote div.math-block"))
}

func TestHasContent(t *testing.T) {
	t.Parallel()
	assert.True(t, HasContent("a $b$"))
	assert.False(t, HasContent("plain"))
}
