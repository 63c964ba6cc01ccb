// Package container adds titled alert containers to goldmark:
//
//	::: warning Mind the gap
//	Body **markdown**.
//	:::
//
// The label must be one of warning, info, note, tip, danger or success. Any
// text after the label becomes the title; without it the localized default
// title is used. A container without a closing fence closes with its
// enclosing block.
package container

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
	"golang.org/x/text/language"
)

// Extension wires the container parser and renderer into goldmark.
type Extension struct {
	locale language.Tag
}

// Option configures an Extension.
type Option func(*Extension)

// WithLocale selects the default-title locale ("ru" or "en").
func WithLocale(locale string) Option {
	return func(e *Extension) {
		e.locale = MatchLocale(locale)
	}
}

// NewExtension returns a container extension. Default titles are Russian
// unless WithLocale says otherwise.
func NewExtension(opts ...Option) *Extension {
	e := &Extension{locale: language.Russian}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(NewParser(), 690),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewRenderer(e.locale), 500),
	))
}
