package chatmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()
	cfg, err := ParseConfig([]byte(`
locale: en
highlight_style: monokai
front_matter: true
extensions:
  - name: abbr
    enabled: false
  - name: diagram
    options:
      languages: [mermaid, graphviz]
`))
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, "monokai", cfg.HighlightStyle)
	assert.True(t, cfg.FrontMatter)
	require.Len(t, cfg.Extensions, 2)
	require.NotNil(t, cfg.Extensions[0].Enabled)
	assert.False(t, *cfg.Extensions[0].Enabled)
	assert.Equal(t, []any{"mermaid", "graphviz"}, cfg.Extensions[1].Options["languages"])
}

func TestParseConfigEmpty(t *testing.T) {
	t.Parallel()
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Extensions)
}

func TestParseConfigRejects(t *testing.T) {
	t.Parallel()
	_, err := ParseConfig([]byte("extensions:\n  - name: emoji\n"))
	require.ErrorIs(t, err, ErrUnknownExtension)

	_, err = ParseConfig([]byte("colour: red\n"))
	require.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()
	cfg, err := ParseConfig([]byte(`
extensions:
  - name: abbr
    enabled: false
  - name: diagram
    options:
      languages: [graphviz]
`))
	require.NoError(t, err)
	e, err := NewFromConfig(cfg, WithLogger(quietLogger()))
	require.NoError(t, err)

	assert.NotContains(t, e.Status().Extensions, ExtAbbr)
	out := e.Render("*[CSS]: Cascading\n\nCSS\n\n```graphviz\ndigraph{}\n```\n\n```mermaid\ngraph TD\n```\n", Context{})
	assert.NotContains(t, out, "<abbr")
	assert.Contains(t, out, `class="graphviz-diagram"`)
	assert.NotContains(t, out, "mermaid-diagram")
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "chatmd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("locale: ru\n"), 0o644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "ru", cfg.Locale)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
