package chatmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"pkt.systems/chatmd/docenv"
)

// ExtensionFunc applies one syntax extension to a freshly built parser.
type ExtensionFunc func(md goldmark.Markdown, cfg ExtensionConfig) error

// ExtensionConfig is the per-entry configuration handed to an ExtensionFunc.
type ExtensionConfig map[string]any

// String returns the string value of key, or fallback.
func (c ExtensionConfig) String(key, fallback string) string {
	if v, ok := c[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// Strings returns the string list value of key, or nil.
func (c ExtensionConfig) Strings(key string) []string {
	switch v := c[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{v}
	}
	return nil
}

// Entry is one registered extension.
type Entry struct {
	Name       string
	Func       ExtensionFunc
	Config     ExtensionConfig
	Registered time.Time
}

// Status describes the registry and the current parser.
type Status struct {
	Initialized bool
	Extensions  []string
	// Failed maps extension names to the error that kept them out of the
	// current parser.
	Failed map[string]string
	Builds int
}

// Context is the caller's render context.
type Context struct {
	// IsStreaming tells the caller's materialization step whether the
	// message is still arriving. Parsing does not depend on it.
	IsStreaming bool
	// DocID prefixes footnote anchors so several messages can share a page.
	DocID string
}

// Engine is an extensible Markdown-to-HTML renderer.
type Engine struct {
	cfg config
	log *slog.Logger

	mu      sync.Mutex
	entries []Entry
	md      goldmark.Markdown
	failed  map[string]error
	builds  int
}

// New returns an Engine. The built-in extensions are registered unless
// WithoutBuiltins is given. The parser is built on first use.
func New(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	e := &Engine{cfg: cfg, log: cfg.logger}
	if cfg.builtins {
		for _, name := range Builtins() {
			fn, _ := BuiltinExtension(name)
			e.entries = append(e.entries, Entry{
				Name:       name,
				Func:       fn,
				Config:     e.builtinConfig(name),
				Registered: time.Now(),
			})
		}
	}
	return e
}

func (e *Engine) builtinConfig(name string) ExtensionConfig {
	if name == ExtContainer && e.cfg.locale != "" {
		return ExtensionConfig{"locale": e.cfg.locale}
	}
	return ExtensionConfig{}
}

// Register adds or replaces the extension called name. A replaced entry keeps
// its position. It returns false when name is empty or fn is nil.
func (e *Engine) Register(name string, fn ExtensionFunc, cfg ExtensionConfig) bool {
	if name == "" {
		e.log.Error("extension name must not be empty")
		return false
	}
	if fn == nil {
		e.log.Error("extension func must not be nil", "extension", name)
		return false
	}
	if cfg == nil {
		cfg = ExtensionConfig{}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	entry := Entry{Name: name, Func: fn, Config: cfg, Registered: time.Now()}
	if i := e.indexLocked(name); i >= 0 {
		e.entries[i] = entry
	} else {
		e.entries = append(e.entries, entry)
	}
	e.log.Debug("extension registered", "extension", name)
	if e.md != nil {
		e.rebuildLocked()
	}
	return true
}

// Unregister removes the extension called name. It returns false when no
// such extension is registered.
func (e *Engine) Unregister(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.indexLocked(name)
	if i < 0 {
		e.log.Warn("extension not registered", "extension", name)
		return false
	}
	e.entries = append(e.entries[:i], e.entries[i+1:]...)
	e.log.Debug("extension unregistered", "extension", name)
	if e.md != nil {
		e.rebuildLocked()
	}
	return true
}

// Extensions returns the registered entries in registration order.
func (e *Engine) Extensions() []Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Entry(nil), e.entries...)
}

// Status reports the registry and parser state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := Status{
		Initialized: e.md != nil,
		Extensions:  make([]string, 0, len(e.entries)),
		Failed:      make(map[string]string, len(e.failed)),
		Builds:      e.builds,
	}
	for _, entry := range e.entries {
		st.Extensions = append(st.Extensions, entry.Name)
	}
	for name, err := range e.failed {
		st.Failed[name] = err.Error()
	}
	return st
}

// Rebuild constructs a fresh parser from the baseline and every registered
// extension.
func (e *Engine) Rebuild() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rebuildLocked()
}

func (e *Engine) indexLocked(name string) int {
	for i, entry := range e.entries {
		if entry.Name == name {
			return i
		}
	}
	return -1
}

// rebuildLocked builds the baseline and applies every extension in order.
// Each extension is first tried against a scratch parser so one that fails
// halfway leaves nothing behind in the real one.
func (e *Engine) rebuildLocked() {
	md := newBaseline(e.cfg)
	failed := make(map[string]error)
	for _, entry := range e.entries {
		if err := applyExtension(newBaseline(e.cfg), entry); err != nil {
			failed[entry.Name] = err
			e.log.Error("extension failed", "extension", entry.Name, "error", err)
			continue
		}
		if err := applyExtension(md, entry); err != nil {
			failed[entry.Name] = err
			e.log.Error("extension failed", "extension", entry.Name, "error", err)
		}
	}
	e.md = md
	e.failed = failed
	e.builds++
	e.log.Debug("parser rebuilt", "extensions", len(e.entries), "failed", len(failed))
}

func applyExtension(md goldmark.Markdown, entry Entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extension %s: panic: %v", entry.Name, r)
		}
	}()
	if err := entry.Func(md, entry.Config); err != nil {
		return fmt.Errorf("extension %s: %w", entry.Name, err)
	}
	return nil
}

// instance returns the current parser, building it on first use.
func (e *Engine) instance() goldmark.Markdown {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.md == nil {
		e.log.Debug("parser not initialized, building")
		e.rebuildLocked()
	}
	return e.md
}

// Render converts source to HTML. It never fails: a fault inside the parser
// is logged and the escaped source is returned instead.
func (e *Engine) Render(source string, ctx Context) string {
	var buf bytes.Buffer
	if err := e.convert(&buf, []byte(source), ctx); err != nil {
		e.log.Error("render failed", "doc_id", ctx.DocID, "error", err)
		return "<p>" + string(util.EscapeHTML([]byte(source))) + "</p>\n"
	}
	return buf.String()
}

// RenderRequest configures RenderTo.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Context Context
}

// RenderTo reads Markdown from Reader and writes HTML to Writer. Input that
// is not valid UTF-8 or looks binary is rejected.
func (e *Engine) RenderTo(req RenderRequest) error {
	if req.Reader == nil {
		return errors.New("render: reader is nil")
	}
	if req.Writer == nil {
		return errors.New("render: writer is nil")
	}
	src, err := io.ReadAll(req.Reader)
	if err != nil {
		return fmt.Errorf("render: read: %w", err)
	}
	if err := ValidateInput(src); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	var buf bytes.Buffer
	if err := e.convert(&buf, src, req.Context); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if _, err := req.Writer.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("render: write: %w", err)
	}
	return nil
}

// Parse runs the block, inline and transform phases on source and returns
// the document tree together with the bytes its segments point into. Front
// matter is stripped first when enabled.
func (e *Engine) Parse(source []byte, ctx Context) (doc ast.Node, src []byte, err error) {
	md := e.instance()
	src = e.prepare(source)
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("parse: panic: %v", r)
		}
	}()
	doc = md.Parser().Parse(text.NewReader(src), parser.WithContext(newParserContext(ctx)))
	return doc, src, nil
}

func (e *Engine) prepare(src []byte) []byte {
	if e.cfg.frontMatter {
		return StripFrontMatter(src)
	}
	return src
}

func newParserContext(ctx Context) parser.Context {
	pc := parser.NewContext()
	docenv.Attach(pc, docenv.New(ctx.IsStreaming, ctx.DocID))
	return pc
}

func (e *Engine) convert(w io.Writer, src []byte, ctx Context) (err error) {
	md := e.instance()
	src = e.prepare(src)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return md.Convert(src, w, parser.WithContext(newParserContext(ctx)))
}
