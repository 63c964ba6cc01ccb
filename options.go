package chatmd

import (
	"log/slog"

	"github.com/yuin/goldmark/renderer/html"
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	logger         *slog.Logger
	locale         string
	highlightStyle string
	frontMatter    bool
	builtins       bool
	htmlOptions    []html.Option
}

func defaultConfig() config {
	return config{
		logger:         slog.Default(),
		highlightStyle: DefaultHighlightStyle,
		builtins:       true,
	}
}

// WithLogger sets the logger used for rebuild and extension failure events.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithLocale sets the locale of built-in default titles, for example "en".
func WithLocale(locale string) Option {
	return func(cfg *config) {
		cfg.locale = locale
	}
}

// WithHighlightStyle selects the chroma style used for code fences.
func WithHighlightStyle(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.highlightStyle = name
		}
	}
}

// WithFrontMatter enables stripping of a leading front matter block.
func WithFrontMatter(enabled bool) Option {
	return func(cfg *config) {
		cfg.frontMatter = enabled
	}
}

// WithoutBuiltins starts the Engine with an empty extension registry.
func WithoutBuiltins() Option {
	return func(cfg *config) {
		cfg.builtins = false
	}
}

// WithHTMLOptions passes options to the goldmark HTML renderer, such as
// html.WithXHTML.
func WithHTMLOptions(opts ...html.Option) Option {
	return func(cfg *config) {
		cfg.htmlOptions = append(cfg.htmlOptions, opts...)
	}
}
