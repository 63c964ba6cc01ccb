package container

import (
	"strconv"

	"github.com/yuin/goldmark/ast"
)

// KindContainer is the node kind of a titled container block.
var KindContainer = ast.NewNodeKind("Container")

// Container is a fenced, titled block such as ::: warning.
type Container struct {
	ast.BaseBlock

	// Label is the container label, for example "warning".
	Label string
	// Title is the custom title; empty means the localized default.
	Title []byte
	// Marker is the fence character and Run the opening fence length.
	Marker byte
	Run    int
	// Closed is false for a container that auto-closed at the end of its
	// enclosing block.
	Closed bool
}

var _ ast.Node = (*Container)(nil)

// NewContainer returns a container with the given label.
func NewContainer(label string, title []byte, marker byte, run int) *Container {
	return &Container{Label: label, Title: title, Marker: marker, Run: run}
}

// Kind implements ast.Node.
func (n *Container) Kind() ast.NodeKind {
	return KindContainer
}

// Dump implements ast.Node.
func (n *Container) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Label":  n.Label,
		"Title":  string(n.Title),
		"Run":    strconv.Itoa(n.Run),
		"Closed": strconv.FormatBool(n.Closed),
	}, nil)
}
