package materialize

import "context"

// Options is handed to a Typesetter.
type Options struct {
	// DisplayMode is set for block formulas.
	DisplayMode bool
}

// Typesetter turns a LaTeX formula into an HTML or MathML fragment.
type Typesetter interface {
	Typeset(latex string, opts Options) (string, error)
}

// TypesetterFunc adapts a function to Typesetter.
type TypesetterFunc func(latex string, opts Options) (string, error)

// Typeset calls f.
func (f TypesetterFunc) Typeset(latex string, opts Options) (string, error) {
	return f(latex, opts)
}

// Diagram is a rendered diagram.
type Diagram struct {
	SVG string
}

// DiagramRenderer renders diagram source, for example a mermaid graph, to
// SVG. id is the placeholder id.
type DiagramRenderer interface {
	RenderDiagram(ctx context.Context, id, source string) (Diagram, error)
}

// DiagramRendererFunc adapts a function to DiagramRenderer.
type DiagramRendererFunc func(ctx context.Context, id, source string) (Diagram, error)

// RenderDiagram calls f.
func (f DiagramRendererFunc) RenderDiagram(ctx context.Context, id, source string) (Diagram, error) {
	return f(ctx, id, source)
}
