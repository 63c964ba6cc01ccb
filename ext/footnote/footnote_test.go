package footnote

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"

	"pkt.systems/chatmd/docenv"
)

func render(t *testing.T, src string, env *docenv.Env) string {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(NewExtension()))
	ctx := parser.NewContext()
	if env != nil {
		docenv.Attach(ctx, env)
	}
	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte(src), &buf, parser.WithContext(ctx)))
	return buf.String()
}

func parseHTML(t *testing.T, out string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	return doc
}

func TestFirstUseNumbering(t *testing.T) {
	t.Parallel()
	src := "A[^x] B[^y] C[^x]\n\n[^x]: ex\n[^y]: why\n"
	want := `<p>A<sup class="footnote-ref"><a href="#fn1" id="fnref1">[1]</a></sup>` +
		` B<sup class="footnote-ref"><a href="#fn2" id="fnref2">[2]</a></sup>` +
		` C<sup class="footnote-ref"><a href="#fn1" id="fnref1:1">[1:1]</a></sup></p>` + "\n" +
		"<hr class=\"footnotes-sep\">\n<section class=\"footnotes\">\n<ol class=\"footnotes-list\">\n" +
		`<li id="fn1" class="footnote-item"><p>ex <a href="#fnref1" class="footnote-backref">↩︎</a>` +
		` <a href="#fnref1:1" class="footnote-backref">↩︎</a></p>` + "\n</li>\n" +
		`<li id="fn2" class="footnote-item"><p>why <a href="#fnref2" class="footnote-backref">↩︎</a></p>` + "\n</li>\n" +
		"</ol>\n</section>\n"
	assert.Equal(t, want, render(t, src, nil))
}

func TestOrderFollowsReferencesNotDefinitions(t *testing.T) {
	t.Parallel()
	src := "[^b]: bee\n\n[^a]: ay\n\nfirst[^a] then[^b]\n"
	doc := parseHTML(t, render(t, src, nil))
	items := doc.Find("li.footnote-item")
	require.Equal(t, 2, items.Length())
	assert.Contains(t, items.Eq(0).Text(), "ay")
	assert.Contains(t, items.Eq(1).Text(), "bee")
}

func TestAnonymousNote(t *testing.T) {
	t.Parallel()
	src := "A[^x] D^[note *x*]\n\n[^x]: ex\n"
	doc := parseHTML(t, render(t, src, nil))

	refs := doc.Find("sup.footnote-ref a")
	require.Equal(t, 2, refs.Length())
	assert.Equal(t, "[2]", refs.Eq(1).Text())
	id, _ := refs.Eq(1).Attr("id")
	assert.Equal(t, "fnref2", id)

	item := doc.Find("li#fn2")
	require.Equal(t, 1, item.Length())
	assert.Equal(t, "x", item.Find("p em").Text())
	href, _ := item.Find("a.footnote-backref").Attr("href")
	assert.Equal(t, "#fnref2", href)
}

func TestAnonymousNoteReservesSlotBeforeBody(t *testing.T) {
	t.Parallel()
	src := "A^[see [^x]]\n\n[^x]: ex\n"
	doc := parseHTML(t, render(t, src, nil))
	items := doc.Find("li.footnote-item")
	require.Equal(t, 2, items.Length())
	href, _ := items.Eq(0).Find("sup.footnote-ref a").Attr("href")
	assert.Equal(t, "#fn2", href)
	assert.Contains(t, items.Eq(1).Text(), "ex")
}

func TestDocIDPrefixesAnchors(t *testing.T) {
	t.Parallel()
	out := render(t, "x[^n]\n\n[^n]: note\n", docenv.New(false, "chat1"))
	doc := parseHTML(t, out)
	href, _ := doc.Find("sup.footnote-ref a").Attr("href")
	assert.Equal(t, "#fn-chat1-1", href)
	id, _ := doc.Find("li.footnote-item").Attr("id")
	assert.Equal(t, "fn-chat1-1", id)
	assert.Equal(t, "[1]", doc.Find("sup.footnote-ref a").Text())
}

func TestUndefinedLabelStaysLiteral(t *testing.T) {
	t.Parallel()
	out := render(t, "see [^nope] here\n", nil)
	assert.Equal(t, "<p>see [^nope] here</p>\n", out)
	assert.NotContains(t, out, "footnotes")
}

func TestInvalidLabels(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "<p>x [^] y</p>\n", render(t, "x [^] y\n", nil))
	assert.Equal(t, "<p>x [^a b] y</p>\n", render(t, "x [^a b] y\n", nil))
}

func TestDuplicateDefinitionKeepsFirst(t *testing.T) {
	t.Parallel()
	out := render(t, "x[^a]\n\n[^a]: one\n\n[^a]: two\n", nil)
	assert.Contains(t, out, "one")
	assert.NotContains(t, out, "two")
	assert.Equal(t, 1, strings.Count(out, `class="footnote-item"`))
}

func TestUnreferencedDefinitionIsDropped(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "<p>body</p>\n", render(t, "body\n\n[^a]: unused\n", nil))
}

func TestMultiParagraphDefinition(t *testing.T) {
	t.Parallel()
	src := "x[^a]\n\n[^a]: first\n\n    second\n"
	doc := parseHTML(t, render(t, src, nil))
	paras := doc.Find("li#fn1 p")
	require.Equal(t, 2, paras.Length())
	assert.Equal(t, "first", paras.Eq(0).Text())
	assert.Equal(t, 1, paras.Eq(1).Find("a.footnote-backref").Length())
}

func TestDefinitionBodyOnNextLine(t *testing.T) {
	t.Parallel()
	doc := parseHTML(t, render(t, "x[^a]\n\n[^a]:\n    below\n", nil))
	assert.Contains(t, doc.Find("li#fn1").Text(), "below")
}

func TestDefinitionBodyOnNextLineKeepsInlineParsing(t *testing.T) {
	t.Parallel()
	doc := parseHTML(t, render(t, "Intro *text* x[^a]\n\n[^a]:\n    below\n", nil))
	assert.Equal(t, "text", doc.Find("em").Text())
	assert.Equal(t, 1, doc.Find("sup.footnote-ref").Length())
	assert.Contains(t, doc.Find("li#fn1").Text(), "below")
}

func TestEmptyDefinitionBeforeUnindentedLine(t *testing.T) {
	t.Parallel()
	out := render(t, "x[^a]\n\n[^a]:\nbelow\n", nil)
	assert.NotContains(t, out, "footnote-ref")
	assert.Contains(t, out, "below")
}

func TestEmptyDefinitionIsNotADefinition(t *testing.T) {
	t.Parallel()
	out := render(t, "x[^a]\n\n[^a]:\n", nil)
	assert.NotContains(t, out, "footnote-ref")
}

func TestMatchAnonymous(t *testing.T) {
	t.Parallel()
	res := matchAnonymous([]byte("^[a [b] c] tail"))
	require.True(t, res.Ok())
	assert.Equal(t, "a [b] c", string([]byte("^[a [b] c] tail")[res.Start:res.Stop]))

	res = matchAnonymous([]byte("^[code `]` here] tail"))
	require.True(t, res.Ok())
	assert.Equal(t, 15, res.Stop)

	assert.False(t, matchAnonymous([]byte("^[unclosed")).Ok())
}

func TestHasContent(t *testing.T) {
	t.Parallel()
	assert.True(t, HasContent("a[^1]"))
	assert.True(t, HasContent("a^[note]"))
	assert.False(t, HasContent("a^b [c]"))
}
