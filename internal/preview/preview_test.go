package preview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkt.systems/chatmd"
)

func preview(t *testing.T, src string, cfg Config) []string {
	t.Helper()
	doc, source, err := chatmd.New().Parse([]byte(src), chatmd.Context{})
	require.NoError(t, err)
	if cfg.Theme == nil {
		cfg.Theme = Boring()
	}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, doc, source, cfg))
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestRenderMessage(t *testing.T) {
	t.Parallel()
	src := "# Title\n\nH~2~O and E=mc^2^ with $x$[^1].\n\n[^1]: note\n"
	want := []string{
		"# Title",
		"",
		"H₂O and E=mc² with x[1].",
		"",
		strings.Repeat("─", 20),
		"[1] note",
	}
	assert.Equal(t, want, preview(t, src, Config{}))
}

func TestRenderContainer(t *testing.T) {
	t.Parallel()
	got := preview(t, "::: tip Hint\nbody\n:::\n\n::: warning\nx\n:::\n", Config{Locale: "en"})
	assert.Equal(t, []string{"┃ TIP: Hint", "┃ body", "", "┃ WARNING: Warning", "┃ x"}, got)
}

func TestRenderListsAndQuotes(t *testing.T) {
	t.Parallel()
	got := preview(t, "- a\n- b\n\n1. one\n2. two\n\n> quoted\n", Config{})
	assert.Equal(t, []string{"• a", "• b", "", "1. one", "2. two", "", "│ quoted"}, got)
}

func TestRenderWraps(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"aaa bbb", "ccc ddd"}, preview(t, "aaa bbb ccc ddd\n", Config{Width: 10}))
}

func TestRenderLinks(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"see go (https://go.dev)"}, preview(t, "see [go](https://go.dev)\n", Config{}))
	osc := preview(t, "[go](https://go.dev)\n", Config{OSC8: true})
	assert.Equal(t, []string{osc8Start + "https://go.dev\x1b\\go" + osc8End}, osc)
}

func TestRenderBlocks(t *testing.T) {
	t.Parallel()
	got := preview(t, "```mermaid\ngraph TD\n```\n\n$$\na+b\n$$\n\n```go\nx := 1\n```\n", Config{})
	assert.Equal(t, []string{"[mermaid diagram]", "  graph TD", "", "  a+b", "", "  x := 1"}, got)
}

func TestRenderTable(t *testing.T) {
	t.Parallel()
	got := preview(t, "| a | bb |\n|---|---|\n| ccc | d |\n", Config{})
	assert.Equal(t, []string{"a   │ bb", "────┼───", "ccc │ d"}, got)
}

func TestThemedOutputResets(t *testing.T) {
	t.Parallel()
	got := preview(t, "**bold**\n", Config{Theme: DefaultTheme()})
	require.Len(t, got, 1)
	assert.Contains(t, got[0], ansiBold)
	assert.True(t, strings.HasSuffix(got[0], ansiReset))
}

func TestRenderNilDocument(t *testing.T) {
	t.Parallel()
	require.Error(t, Render(&bytes.Buffer{}, nil, nil, Config{}))
}

func TestScript(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "₁₂", script("12", subscripts, "_"))
	assert.Equal(t, "^(ab)", script("ab", superscripts, "^"))
	assert.Equal(t, "ⁿ", script("n", superscripts, "^"))
}

func TestThemes(t *testing.T) {
	t.Parallel()
	names := AvailableThemes()
	assert.Contains(t, names, "default")
	assert.IsIncreasing(t, names)
	th, ok := ThemeByName(" Nord ")
	require.True(t, ok)
	assert.Equal(t, "nord", th.Name())
	_, ok = ThemeByName("missing")
	assert.False(t, ok)
	assert.Equal(t, Styles{}, Boring().Styles())
}

func TestDetectOSC8(t *testing.T) {
	t.Parallel()
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}
	assert.True(t, detectOSC8(env(map[string]string{"TERM_PROGRAM": "WezTerm"})))
	assert.True(t, detectOSC8(env(map[string]string{"VTE_VERSION": "6003"})))
	assert.False(t, detectOSC8(env(map[string]string{"VTE_VERSION": "4000"})))
	assert.False(t, detectOSC8(env(map[string]string{"OSC8": "0", "WT_SESSION": "1"})))
	assert.True(t, detectOSC8(env(map[string]string{"TERM": "xterm-kitty"})))
}

func TestFitURL(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "https://a.io", fitURL("https://a.io", 20))
	assert.Equal(t, "example.com/x", fitURL("https://example.com/x", 15))
	assert.Equal(t, "http…", fitURL("https://example.com/x", 5))
	assert.Equal(t, "", truncateWithEllipsis("abc", 0))
}
