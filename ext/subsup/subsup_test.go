package subsup

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

func render(t *testing.T, src string, exts ...goldmark.Extender) string {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(append([]goldmark.Extender{NewExtension()}, exts...)...))
	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte(src), &buf))
	return buf.String()
}

func TestSubSup(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"subscript", "H~2~O", "<p>H<sub>2</sub>O</p>\n"},
		{"superscript pair", "E^2^=mc^2^", "<p>E<sup>2</sup>=mc<sup>2</sup></p>\n"},
		{"space rejects superscript", "x^a b^", "<p>x^a b^</p>\n"},
		{"space rejects subscript", "x~a b~", "<p>x~a b~</p>\n"},
		{"escaped space", `x^a\ b^`, "<p>x<sup>a b</sup></p>\n"},
		{"escaped delimiter", `x~a\~b~`, "<p>x<sub>a~b</sub></p>\n"},
		{"empty", "x^^", "<p>x^^</p>\n"},
		{"unterminated", "x^2", "<p>x^2</p>\n"},
		{"html is escaped", "x^<b>^", "<p>x<sup>&lt;b&gt;</sup></p>\n"},
		{"code span skipped", "x^`a^b`^", "<p>x<sup>`a^b`</sup></p>\n"},
		{"no newline crossing", "x^a\nb^", "<p>x^a\nb^</p>\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, render(t, tc.src))
		})
	}
}

func TestSubscriptAndStrikethrough(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "<p><del>gone</del> H<sub>2</sub>O</p>\n",
		render(t, "~~gone~~ H~2~O", extension.Strikethrough))
	assert.Equal(t, "<p><del>a b</del></p>\n", render(t, "~a b~", extension.Strikethrough))
	assert.Equal(t, "<p>x <del>a b</del> H<sub>2</sub>O</p>\n",
		render(t, "x ~a b~ H~2~O", extension.Strikethrough))
}

func TestHasContent(t *testing.T) {
	t.Parallel()
	assert.True(t, HasContent("H~2~O"))
	assert.True(t, HasContent("x^2^"))
	assert.False(t, HasContent("plain"))
}
