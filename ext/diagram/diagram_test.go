package diagram

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func render(t *testing.T, src string) string {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(NewExtension()))
	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte(src), &buf))
	return buf.String()
}

func TestMermaidPlaceholder(t *testing.T) {
	t.Parallel()
	out := render(t, "```mermaid\ngraph TD;\n  A-->B\n```\n")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)

	div := doc.Find("div.mermaid-diagram")
	require.Equal(t, 1, div.Length())
	content, ok := div.Attr("data-mermaid-content")
	require.True(t, ok)
	assert.Equal(t, "graph TD;\n  A-->B", content)
	assert.Equal(t, "graph TD;\n  A-->B", div.Text())
	assert.Contains(t, out, "A--&gt;B")

	id, _ := div.Attr("id")
	assert.Regexp(t, regexp.MustCompile(`^mermaid-\d+-[0-9a-z]{1,9}$`), id)
}

func TestOtherFencesUntouched(t *testing.T) {
	t.Parallel()
	out := render(t, "```go\nfmt.Println()\n```\n")
	assert.NotContains(t, out, "diagram")
	assert.Contains(t, out, "<pre><code class=\"language-go\">")
}

func TestInfoWordOnly(t *testing.T) {
	t.Parallel()
	out := render(t, "```mermaid title\nA\n```\n")
	assert.Contains(t, out, `class="mermaid-diagram"`)
}

func TestIDsAreUnique(t *testing.T) {
	t.Parallel()
	assert.NotEqual(t, NextID(Mermaid), NextID(Mermaid))
}

func TestHasContent(t *testing.T) {
	t.Parallel()
	assert.True(t, HasContent("x\n```mermaid\nA\n```"))
	assert.False(t, HasContent("```go\n```"))
}
