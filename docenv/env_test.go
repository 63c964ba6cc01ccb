package docenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
)

func TestFootnotesFirstUseOrder(t *testing.T) {
	t.Parallel()
	f := NewFootnotes()
	require.True(t, f.Define("y"))
	require.True(t, f.Define("x"))
	assert.False(t, f.Define("x"), "duplicate definition must be rejected")

	slot, sub, ok := f.Reference("x")
	require.True(t, ok)
	assert.Equal(t, 0, slot)
	assert.Equal(t, 0, sub)

	slot, sub, ok = f.Reference("y")
	require.True(t, ok)
	assert.Equal(t, 1, slot)
	assert.Equal(t, 0, sub)

	slot, sub, ok = f.Reference("x")
	require.True(t, ok)
	assert.Equal(t, 0, slot)
	assert.Equal(t, 1, sub)

	anon := f.AddAnonymous(ast.NewParagraph())
	assert.Equal(t, 2, anon)
	assert.True(t, f.At(anon).Anonymous())
	assert.Equal(t, 1, f.At(anon).Backlinks())

	assert.Equal(t, 3, f.Len())
	assert.Equal(t, 2, f.At(0).Backlinks())
	assert.Equal(t, "x", f.Slots()[0].Label)
}

func TestFootnotesUndefinedReference(t *testing.T) {
	t.Parallel()
	f := NewFootnotes()
	_, _, ok := f.Reference("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, f.Len())
	assert.False(t, f.Defined("missing"))
}

func TestAbbreviationsLongestFirst(t *testing.T) {
	t.Parallel()
	a := NewAbbreviations()
	require.True(t, a.Define("HTML", "Hyper Text Markup Language"))
	require.True(t, a.Define("HTML5", "HTML version 5"))
	require.True(t, a.Define("CSS", "Cascading Style Sheets"))
	require.True(t, a.Define("W3C", "World Wide Web Consortium"))
	assert.False(t, a.Define("CSS", "other"))

	assert.Equal(t, []string{"HTML5", "HTML", "CSS", "W3C"}, a.Labels())
	title, ok := a.Lookup("CSS")
	require.True(t, ok)
	assert.Equal(t, "Cascading Style Sheets", title)
	assert.Equal(t, 4, a.Len())
}

func TestEnvContext(t *testing.T) {
	t.Parallel()
	pc := parser.NewContext()
	implicit := From(pc)
	require.NotNil(t, implicit)
	assert.Same(t, implicit, From(pc))

	pc = parser.NewContext()
	e := New(true, "chat1")
	Attach(pc, e)
	assert.Same(t, e, From(pc))
	assert.Equal(t, "-chat1-", e.AnchorPrefix())
	assert.Equal(t, "", New(false, "").AnchorPrefix())

	n := e.Nested()
	assert.True(t, n.IsNested())
	assert.False(t, e.IsNested())
	assert.Same(t, e.Footnotes, n.Footnotes)
	assert.Same(t, e.Abbreviations, n.Abbreviations)
}
