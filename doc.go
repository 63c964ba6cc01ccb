// Package chatmd renders chat messages written in Markdown to HTML.
//
// An Engine owns a goldmark parser built from a baseline (raw HTML
// passthrough, autolinks, smart punctuation, tables, strikethrough and
// highlighted code fences) plus an ordered list of named syntax extensions.
// The built-in extensions add footnotes, $math$, ~sub~/^sup^, ::: titled
// containers, *[abbreviations] and mermaid diagram placeholders. Registering
// or unregistering an extension rebuilds the parser.
//
// Math formulas and diagrams are not typeset during rendering. They are left
// as placeholders for the materialize package.
//
// Example:
//
//	engine := chatmd.New()
//	out := engine.Render("H~2~O is $x^2$ wet[^1]\n\n[^1]: Usually.\n", chatmd.Context{
//		DocID: "msg-42",
//	})
//	fmt.Println(out)
//
// Every Render call gets its own document environment. Registry changes must
// not run concurrently with renders; the Engine guards its own state but a
// render in flight keeps using the parser it started with.
package chatmd
