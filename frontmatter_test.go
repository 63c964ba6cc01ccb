package chatmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFrontMatter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"yaml", "---\ntitle: Post\ndate: 2026-02-09\n---\n\n# Hello\n", "\n# Hello\n"},
		{"toml", "+++\ntitle = \"Post\"\n+++\nBody\n", "Body\n"},
		{"json", ";;;\n{\"title\": \"Post\"}\n;;;\nBody\n", "Body\n"},
		{"crlf", "---\r\ntitle: Post\r\n---\r\nBody\r\n", "Body\r\n"},
		{"only at start", "# Intro\n\n+++\ntitle = \"Keep\"\n+++\n", "# Intro\n\n+++\ntitle = \"Keep\"\n+++\n"},
		{"unclosed", "---\ntitle: Post\n\n# Hello\n", "---\ntitle: Post\n\n# Hello\n"},
		{"no metadata", "---\n# Keep\n---\n\nTail\n", "---\n# Keep\n---\n\nTail\n"},
		{"second block kept", "---\na: 1\n---\nBody\n\n---\nkeep: yes\n---\n", "Body\n\n---\nkeep: yes\n---\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, string(StripFrontMatter([]byte(tc.src))))
		})
	}
}

func TestRenderStripsFrontMatterWhenEnabled(t *testing.T) {
	t.Parallel()
	src := "---\ntitle: Post\n---\nBody\n"
	assert.Equal(t, "<p>Body</p>\n", New(WithFrontMatter(true)).Render(src, Context{}))
	assert.Contains(t, New().Render(src, Context{}), "title: Post")
}
