package footnote

import (
	"strconv"

	"github.com/yuin/goldmark/ast"
)

var (
	// KindDefinition is the node kind of a [^label]: definition.
	KindDefinition = ast.NewNodeKind("FootnoteDefinition")
	// KindReference is the node kind of an inline footnote reference.
	KindReference = ast.NewNodeKind("FootnoteReference")
	// KindList is the node kind of the footnote section.
	KindList = ast.NewNodeKind("FootnoteList")
	// KindItem is the node kind of one footnote in the section.
	KindItem = ast.NewNodeKind("FootnoteItem")
	// KindBacklink is the node kind of a link back to a reference.
	KindBacklink = ast.NewNodeKind("FootnoteBacklink")
)

// Definition holds the body of a [^label]: block until the footnote section
// is assembled.
type Definition struct {
	ast.BaseBlock

	Label []byte
	// Duplicate marks a repeated label. Only the first definition is used.
	Duplicate bool
}

// NewDefinition returns a definition for label.
func NewDefinition(label []byte) *Definition {
	return &Definition{Label: label}
}

// Kind implements ast.Node.
func (n *Definition) Kind() ast.NodeKind {
	return KindDefinition
}

// Dump implements ast.Node.
func (n *Definition) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Label":     string(n.Label),
		"Duplicate": strconv.FormatBool(n.Duplicate),
	}, nil)
}

// Reference is a superscript link to footnote Slot. Sub numbers repeated
// references to the same footnote from zero.
type Reference struct {
	ast.BaseInline

	Slot      int
	Sub       int
	Label     string
	Anonymous bool
	Prefix    string
}

// NewReference returns a reference to slot.
func NewReference(slot, sub int, label, prefix string) *Reference {
	return &Reference{Slot: slot, Sub: sub, Label: label, Prefix: prefix}
}

// Kind implements ast.Node.
func (n *Reference) Kind() ast.NodeKind {
	return KindReference
}

// Dump implements ast.Node.
func (n *Reference) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Slot":      strconv.Itoa(n.Slot),
		"Sub":       strconv.Itoa(n.Sub),
		"Label":     n.Label,
		"Anonymous": strconv.FormatBool(n.Anonymous),
	}, nil)
}

// List is the footnote section appended to the document.
type List struct {
	ast.BaseBlock

	Prefix string
}

// NewList returns an empty footnote section.
func NewList(prefix string) *List {
	return &List{Prefix: prefix}
}

// Kind implements ast.Node.
func (n *List) Kind() ast.NodeKind {
	return KindList
}

// Dump implements ast.Node.
func (n *List) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Item is footnote Slot inside the section.
type Item struct {
	ast.BaseBlock

	Slot   int
	Prefix string
}

// NewItem returns an item for slot.
func NewItem(slot int, prefix string) *Item {
	return &Item{Slot: slot, Prefix: prefix}
}

// Kind implements ast.Node.
func (n *Item) Kind() ast.NodeKind {
	return KindItem
}

// Dump implements ast.Node.
func (n *Item) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Slot": strconv.Itoa(n.Slot),
	}, nil)
}

// Backlink points from footnote Slot back to reference Sub.
type Backlink struct {
	ast.BaseInline

	Slot   int
	Sub    int
	Prefix string
}

// NewBacklink returns a backlink to reference sub of slot.
func NewBacklink(slot, sub int, prefix string) *Backlink {
	return &Backlink{Slot: slot, Sub: sub, Prefix: prefix}
}

// Kind implements ast.Node.
func (n *Backlink) Kind() ast.NodeKind {
	return KindBacklink
}

// Dump implements ast.Node.
func (n *Backlink) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Slot": strconv.Itoa(n.Slot),
		"Sub":  strconv.Itoa(n.Sub),
	}, nil)
}
