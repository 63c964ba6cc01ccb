package chatmd

import (
	"github.com/yuin/goldmark"

	"pkt.systems/chatmd/ext/abbr"
	"pkt.systems/chatmd/ext/container"
	"pkt.systems/chatmd/ext/diagram"
	"pkt.systems/chatmd/ext/footnote"
	"pkt.systems/chatmd/ext/math"
	"pkt.systems/chatmd/ext/subsup"
)

// Built-in extension names.
const (
	ExtFootnote  = "footnote"
	ExtMath      = "math"
	ExtSubSup    = "subsup"
	ExtContainer = "container"
	ExtAbbr      = "abbr"
	ExtDiagram   = "diagram"
)

var builtinOrder = []string{ExtFootnote, ExtMath, ExtSubSup, ExtContainer, ExtAbbr, ExtDiagram}

var builtinFuncs = map[string]ExtensionFunc{
	ExtFootnote: func(md goldmark.Markdown, _ ExtensionConfig) error {
		footnote.NewExtension().Extend(md)
		return nil
	},
	ExtMath: func(md goldmark.Markdown, _ ExtensionConfig) error {
		math.NewExtension().Extend(md)
		return nil
	},
	ExtSubSup: func(md goldmark.Markdown, _ ExtensionConfig) error {
		subsup.NewExtension().Extend(md)
		return nil
	},
	// container options: locale ("ru" or "en").
	ExtContainer: func(md goldmark.Markdown, cfg ExtensionConfig) error {
		container.NewExtension(container.WithLocale(cfg.String("locale", ""))).Extend(md)
		return nil
	},
	ExtAbbr: func(md goldmark.Markdown, _ ExtensionConfig) error {
		abbr.NewExtension().Extend(md)
		return nil
	},
	// diagram options: languages (fence info words, default mermaid).
	ExtDiagram: func(md goldmark.Markdown, cfg ExtensionConfig) error {
		diagram.NewExtension(cfg.Strings("languages")...).Extend(md)
		return nil
	},
}

// Builtins returns the names of the built-in extensions in their default
// registration order.
func Builtins() []string {
	return append([]string(nil), builtinOrder...)
}

// BuiltinExtension returns the built-in extension called name.
func BuiltinExtension(name string) (ExtensionFunc, bool) {
	fn, ok := builtinFuncs[name]
	return fn, ok
}

// HasMarkup reports which built-in extensions may have syntax in src. It is a
// cheap presence check, not a parse.
func HasMarkup(src string) map[string]bool {
	return map[string]bool{
		ExtFootnote:  footnote.HasContent(src),
		ExtMath:      math.HasContent(src),
		ExtSubSup:    subsup.HasContent(src),
		ExtContainer: container.HasContent(src),
		ExtAbbr:      abbr.HasContent(src),
		ExtDiagram:   diagram.HasContent(src),
	}
}
