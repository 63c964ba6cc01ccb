package chatmd

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// newBaseline returns a parser with the baseline syntax and no extensions.
func newBaseline(cfg config) goldmark.Markdown {
	htmlOpts := append([]html.Option{html.WithUnsafe()}, cfg.htmlOptions...)
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.Linkify,
			extension.Typographer,
		),
		goldmark.WithRendererOptions(rendererOptions(htmlOpts)...),
	)
	md.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(newCodeRenderer(cfg.highlightStyle, htmlOpts...), 200),
	))
	return md
}

// rendererOptions converts HTML options for goldmark.WithRendererOptions.
// Options that only configure html.Config are applied by the code renderer
// and the extension renderers.
func rendererOptions(opts []html.Option) []renderer.Option {
	out := make([]renderer.Option, 0, len(opts))
	for _, o := range opts {
		if ro, ok := o.(renderer.Option); ok {
			out = append(out, ro)
		}
	}
	return out
}
