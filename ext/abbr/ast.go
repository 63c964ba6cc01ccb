package abbr

import (
	"github.com/yuin/goldmark/ast"
)

var (
	// KindDefinition is the node kind of a *[label]: title line.
	KindDefinition = ast.NewNodeKind("AbbreviationDefinition")
	// KindAbbreviation is the node kind of an expanded abbreviation.
	KindAbbreviation = ast.NewNodeKind("Abbreviation")
)

// Definition marks the place of a definition line until the replacement pass
// removes it.
type Definition struct {
	ast.BaseBlock

	Label []byte
	Title []byte
}

// NewDefinition returns a definition of label.
func NewDefinition(label, title []byte) *Definition {
	return &Definition{Label: label, Title: title}
}

// Kind implements ast.Node.
func (n *Definition) Kind() ast.NodeKind {
	return KindDefinition
}

// Dump implements ast.Node.
func (n *Definition) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Label": string(n.Label),
		"Title": string(n.Title),
	}, nil)
}

// Abbreviation wraps one occurrence of a defined label.
type Abbreviation struct {
	ast.BaseInline

	Title []byte
}

// NewAbbreviation returns an abbreviation expanding to title.
func NewAbbreviation(title []byte) *Abbreviation {
	return &Abbreviation{Title: title}
}

// Kind implements ast.Node.
func (n *Abbreviation) Kind() ast.NodeKind {
	return KindAbbreviation
}

// Dump implements ast.Node.
func (n *Abbreviation) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Title": string(n.Title),
	}, nil)
}
