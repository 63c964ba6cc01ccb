package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-shellwords"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/chatmd"
	"pkt.systems/chatmd/internal/preview"
	"pkt.systems/chatmd/materialize"
	"pkt.systems/version"
)

const (
	defaultThemeName = "default"
	defaultWidth     = 80
	defaultChunkSize = 24
	defaultDelay     = 20 * time.Millisecond
)

func init() {
	version.SetDefaultModule("pkt.systems/chatmd")
}

type options struct {
	configPath     string
	locale         string
	docID          string
	format         string
	highlightStyle string
	frontMatter    bool
	simulate       bool
	simChunkSize   int
	simDelay       time.Duration
	logLevel       string
	outPath        string
	themeName      string
	width          int
	osc8           string
	boring         bool
	listThemes     bool
	typesetCmd     string
	diagramCmd     string
	showVersion    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var o options
	flags := pflag.NewFlagSet("chatmd", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&o.configPath, "config", "c", "", "YAML configuration file")
	flags.StringVarP(&o.locale, "locale", "l", "", "Locale of default titles and error boxes (ru|en)")
	flags.StringVar(&o.docID, "doc-id", "", "Document id used to prefix footnote anchors")
	flags.StringVarP(&o.format, "format", "f", "html", "Output format: html|text")
	flags.StringVar(&o.highlightStyle, "highlight-style", "", "Chroma style for code fences")
	flags.BoolVar(&o.frontMatter, "front-matter", false, "Strip a leading front matter block")
	flags.BoolVar(&o.simulate, "simulate", false, "Re-render a growing prefix of the input as if it were streamed")
	flags.IntVar(&o.simChunkSize, "simulate-chunk", defaultChunkSize, "Max bytes per stream chunk")
	flags.DurationVar(&o.simDelay, "simulate-delay", defaultDelay, "Delay per stream chunk")
	flags.StringVar(&o.logLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	flags.StringVarP(&o.outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVarP(&o.themeName, "theme", "t", defaultThemeName, "Theme name for text output")
	flags.IntVarP(&o.width, "width", "w", 0, "Text output width (0 uses terminal width if available)")
	flags.StringVarP(&o.osc8, "osc8", "8", "auto", "OSC8 hyperlinks in text output: auto|on|off")
	flags.BoolVarP(&o.boring, "boring", "b", false, "Text output without ANSI styles")
	flags.BoolVar(&o.listThemes, "list-themes", false, "List available themes")
	flags.StringVar(&o.typesetCmd, "typeset-cmd", "", "Command that reads LaTeX on stdin and writes HTML, e.g. \"katex\"")
	flags.StringVar(&o.diagramCmd, "diagram-cmd", "", "Command that reads a diagram on stdin and writes SVG, e.g. \"mmdc -i - -o - -e svg\"")
	flags.BoolVarP(&o.showVersion, "version", "v", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: chatmd [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if o.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}
	if o.listThemes {
		printThemes(stdout)
		return 0
	}

	logger, err := newLogger(stderr, o.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --log-level %q: %v\n", o.logLevel, err)
		return 2
	}
	o.format = strings.ToLower(strings.TrimSpace(o.format))
	if o.format != "html" && o.format != "text" {
		fmt.Fprintf(stderr, "invalid --format %q: expected html|text\n", o.format)
		return 2
	}

	engine, err := newEngine(o, logger)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	reader, closer, err := openInputs(flags.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return 1
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	writer, closeOut, err := resolveOutput(o.outPath, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "open output: %v\n", err)
		return 1
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	out := &output{engine: engine, opts: o, log: logger, w: writer}
	if o.format == "text" {
		theme, ok := preview.ThemeByName(o.themeName)
		if !ok {
			fmt.Fprintf(stderr, "unknown theme %q\n\n", o.themeName)
			printThemes(stderr)
			return 2
		}
		if o.boring || !colorOutput(writer) {
			theme = preview.Boring()
		}
		osc8, err := resolveOSC8(o.osc8)
		if err != nil {
			fmt.Fprintf(stderr, "invalid --osc8 %q: %v\n", o.osc8, err)
			return 2
		}
		out.preview = preview.Config{
			Width:  resolveWidth(o.width),
			Theme:  theme,
			OSC8:   osc8,
			Locale: o.locale,
		}
	}
	out.materializer, err = newMaterializer(o, logger)
	if err != nil {
		fmt.Fprintf(stderr, "materialize: %v\n", err)
		return 2
	}

	if o.simulate {
		reader = &slowReader{r: reader, delay: o.simDelay, maxChunk: o.simChunkSize}
		err = out.stream(context.Background(), reader)
	} else {
		err = out.once(context.Background(), reader)
	}
	if err != nil {
		fmt.Fprintf(stderr, "render: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func newEngine(o options, logger *slog.Logger) (*chatmd.Engine, error) {
	opts := []chatmd.Option{chatmd.WithLogger(logger)}
	if o.locale != "" {
		opts = append(opts, chatmd.WithLocale(o.locale))
	}
	if o.highlightStyle != "" {
		opts = append(opts, chatmd.WithHighlightStyle(o.highlightStyle))
	}
	if o.frontMatter {
		opts = append(opts, chatmd.WithFrontMatter(true))
	}
	if o.configPath == "" {
		return chatmd.New(opts...), nil
	}
	cfg, err := chatmd.LoadConfig(normalizePath(o.configPath))
	if err != nil {
		return nil, err
	}
	return chatmd.NewFromConfig(cfg, opts...)
}

func newMaterializer(o options, logger *slog.Logger) (*materialize.Materializer, error) {
	if o.typesetCmd == "" && o.diagramCmd == "" {
		return nil, nil
	}
	opts := []materialize.Option{
		materialize.WithLogger(logger),
		materialize.WithLocale(o.locale),
	}
	if o.typesetCmd != "" {
		argv, err := parseCommand(o.typesetCmd)
		if err != nil {
			return nil, fmt.Errorf("--typeset-cmd: %w", err)
		}
		opts = append(opts, materialize.WithTypesetter(commandTypesetter(argv)))
	}
	if o.diagramCmd != "" {
		argv, err := parseCommand(o.diagramCmd)
		if err != nil {
			return nil, fmt.Errorf("--diagram-cmd: %w", err)
		}
		opts = append(opts, materialize.WithDiagramRenderer(commandDiagramRenderer(argv)))
	}
	return materialize.New(opts...), nil
}

func parseCommand(line string) ([]string, error) {
	argv, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", line, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command %q", line)
	}
	return argv, nil
}

type output struct {
	engine       *chatmd.Engine
	materializer *materialize.Materializer
	opts         options
	preview      preview.Config
	log          *slog.Logger
	w            io.Writer
}

func (o *output) once(ctx context.Context, r io.Reader) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	if err := chatmd.ValidateInput(src); err != nil {
		return err
	}
	return o.write(ctx, o.w, src, false)
}

// stream renders every growing prefix of r with IsStreaming set. Frames are
// shown only on a terminal; the final render follows the last chunk and is
// the only one that gets materialized.
func (o *output) stream(ctx context.Context, r io.Reader) error {
	live := isTerminal(o.w)
	var src []byte
	buf := make([]byte, 4096)
	frames := 0
	for {
		n, err := r.Read(buf)
		if n > 0 {
			src = append(src, buf[:n]...)
			frames++
			if live {
				_, _ = io.WriteString(o.w, "\x1b[H\x1b[2J")
				if werr := o.write(ctx, o.w, src, true); werr != nil {
					return werr
				}
			} else if werr := o.write(ctx, io.Discard, src, true); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
	}
	o.log.Debug("stream finished", "frames", frames, "bytes", len(src))
	if err := chatmd.ValidateInput(src); err != nil {
		return err
	}
	if live {
		_, _ = io.WriteString(o.w, "\x1b[H\x1b[2J")
	}
	return o.write(ctx, o.w, src, false)
}

// write renders src to w. Streaming frames may end inside a UTF-8 sequence,
// so they skip the input validation RenderTo applies.
func (o *output) write(ctx context.Context, w io.Writer, src []byte, streaming bool) error {
	rctx := chatmd.Context{IsStreaming: streaming, DocID: o.opts.docID}
	if o.opts.format == "text" {
		doc, source, err := o.engine.Parse(src, rctx)
		if err != nil {
			return err
		}
		return preview.Render(w, doc, source, o.preview)
	}
	var out string
	if streaming {
		out = o.engine.Render(string(src), rctx)
	} else {
		var buf bytes.Buffer
		if err := o.engine.RenderTo(chatmd.RenderRequest{
			Reader:  bytes.NewReader(src),
			Writer:  &buf,
			Context: rctx,
		}); err != nil {
			return err
		}
		out = buf.String()
	}
	if !streaming && o.materializer != nil && needsMaterialize(string(src)) {
		materialized, report, err := o.materializer.Materialize(ctx, out)
		if err != nil {
			return err
		}
		for _, f := range report.Failures {
			o.log.Warn("placeholder failed", "kind", f.Kind, "id", f.ID, "error", f.Err)
		}
		out = materialized
	}
	_, err := io.WriteString(w, out)
	return err
}

func needsMaterialize(src string) bool {
	has := chatmd.HasMarkup(src)
	return has[chatmd.ExtMath] || has[chatmd.ExtDiagram]
}

func printThemes(w io.Writer) {
	for _, name := range preview.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func resolveOSC8(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return preview.DetectOSC8Support(), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string, stdin io.Reader) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	m := &multiInputReader{sources: sources}
	return m, m, nil
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

// colorOutput reports whether w accepts ANSI styles. NO_COLOR and
// CLICOLOR_FORCE are honored.
func colorOutput(w io.Writer) bool {
	return termenv.NewOutput(w).EnvColorProfile() != termenv.Ascii
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

type slowReader struct {
	r        io.Reader
	delay    time.Duration
	maxChunk int
}

func (s *slowReader) Read(p []byte) (int, error) {
	if s.maxChunk > 0 && len(p) > s.maxChunk {
		p = p[:s.maxChunk]
	}
	n, err := s.r.Read(p)
	if n > 0 && s.delay > 0 {
		time.Sleep(s.delay)
	}
	return n, err
}
