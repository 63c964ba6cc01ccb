// Package materialize replaces the math and diagram placeholders of rendered
// chat HTML with typeset output.
//
// Placeholders are found by class, rendered concurrently by the configured
// collaborators and marked with data-processed="true" so a second pass over
// the same fragment leaves them alone. A collaborator that fails or panics
// turns its own placeholder into an error box; the others are unaffected.
package materialize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/sync/errgroup"
)

const processedAttr = "data-processed"

// Kinds reported in a Failure.
const (
	KindMath    = "math"
	KindDiagram = "diagram"
)

// Failure describes one placeholder that could not be materialized.
type Failure struct {
	Kind string
	ID   string
	Err  error
}

// Report summarizes one Materialize call.
type Report struct {
	// Math and Diagrams count the placeholders processed, failed ones
	// included.
	Math     int
	Diagrams int
	Failures []Failure
}

// Materializer rewrites placeholders in HTML fragments.
type Materializer struct {
	typesetter Typesetter
	diagrams   DiagramRenderer
	languages  []string
	limit      int
	locale     string
	log        *slog.Logger
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithTypesetter sets the formula typesetter. Without one, math placeholders
// are left untouched.
func WithTypesetter(t Typesetter) Option {
	return func(m *Materializer) {
		m.typesetter = t
	}
}

// WithDiagramRenderer sets the diagram renderer. Without one, diagram
// placeholders are left untouched.
func WithDiagramRenderer(r DiagramRenderer) Option {
	return func(m *Materializer) {
		m.diagrams = r
	}
}

// WithDiagramLanguages sets the diagram languages whose placeholders are
// handed to the diagram renderer. The default is mermaid.
func WithDiagramLanguages(languages ...string) Option {
	return func(m *Materializer) {
		if len(languages) > 0 {
			m.languages = languages
		}
	}
}

// WithConcurrency bounds the number of collaborator calls in flight.
func WithConcurrency(n int) Option {
	return func(m *Materializer) {
		if n > 0 {
			m.limit = n
		}
	}
}

// WithLocale selects the language of error boxes ("ru" or "en").
func WithLocale(locale string) Option {
	return func(m *Materializer) {
		m.locale = locale
	}
}

// WithLogger sets the logger for per-placeholder events.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Materializer) {
		if logger != nil {
			m.log = logger
		}
	}
}

// New returns a Materializer.
func New(opts ...Option) *Materializer {
	m := &Materializer{
		languages: []string{"mermaid"},
		limit:     4,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

type job struct {
	kind    string
	sel     *goquery.Selection
	id      string
	source  string
	display bool

	done   bool
	output string
	err    error
}

// Materialize rewrites every unprocessed placeholder in fragment and returns
// the new fragment. The returned error is non-nil only when fragment cannot
// be parsed or ctx ends first; collaborator failures are reported in the
// Report and rendered in place.
func (m *Materializer) Materialize(ctx context.Context, fragment string) (string, Report, error) {
	var report Report
	doc, err := parseFragment(fragment)
	if err != nil {
		return fragment, report, err
	}
	jobs := m.collect(doc)
	if len(jobs) == 0 {
		return fragment, report, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.limit)
	for _, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m.run(gctx, j)
			return nil
		})
	}
	waitErr := g.Wait()

	msgs := messagesFor(m.locale)
	for _, j := range jobs {
		if !j.done {
			continue
		}
		switch j.kind {
		case KindMath:
			report.Math++
		case KindDiagram:
			report.Diagrams++
		}
		if j.err != nil {
			report.Failures = append(report.Failures, Failure{Kind: j.kind, ID: j.id, Err: j.err})
			m.log.Error("materialize failed", "kind", j.kind, "id", j.id, "error", j.err)
			j.sel.SetHtml(errorBox(msgs, j.kind, j.err))
		} else {
			j.sel.SetHtml(j.output)
		}
		j.sel.SetAttr(processedAttr, "true")
	}

	out, err := doc.Html()
	if err != nil {
		return fragment, report, fmt.Errorf("materialize: %w", err)
	}
	if waitErr != nil {
		return out, report, fmt.Errorf("materialize: %w", waitErr)
	}
	return out, report, nil
}

func (m *Materializer) collect(doc *goquery.Document) []*job {
	var jobs []*job
	if m.typesetter != nil {
		doc.Find(".math-formula:not([" + processedAttr + "])").Each(func(_ int, s *goquery.Selection) {
			jobs = append(jobs, &job{
				kind:    KindMath,
				sel:     s,
				id:      s.AttrOr("id", ""),
				source:  attrOrText(s, "data-formula"),
				display: s.HasClass("math-block"),
			})
		})
	}
	if m.diagrams != nil {
		for _, lang := range m.languages {
			doc.Find("." + lang + "-diagram:not([" + processedAttr + "])").Each(func(_ int, s *goquery.Selection) {
				jobs = append(jobs, &job{
					kind:   KindDiagram,
					sel:    s,
					id:     s.AttrOr("id", ""),
					source: attrOrText(s, "data-"+lang+"-content"),
				})
			})
		}
	}
	return jobs
}

// run calls the collaborator for j and records the outcome. A panic is
// recorded as the job's error.
func (m *Materializer) run(ctx context.Context, j *job) {
	defer func() {
		if r := recover(); r != nil {
			j.err = fmt.Errorf("panic: %v", r)
		}
		j.done = true
	}()
	m.log.Debug("materializing placeholder", "kind", j.kind, "id", j.id)
	switch j.kind {
	case KindMath:
		j.output, j.err = m.typesetter.Typeset(j.source, Options{DisplayMode: j.display})
	case KindDiagram:
		var d Diagram
		d, j.err = m.diagrams.RenderDiagram(ctx, j.id, j.source)
		j.output = d.SVG
	}
}

// Reset clears the processed mark of every placeholder in fragment so the
// next Materialize call renders them again, for example after a theme
// change.
func Reset(fragment string) (string, error) {
	doc, err := parseFragment(fragment)
	if err != nil {
		return fragment, err
	}
	doc.Find("[" + processedAttr + "]").RemoveAttr(processedAttr)
	out, err := doc.Html()
	if err != nil {
		return fragment, fmt.Errorf("materialize: %w", err)
	}
	return out, nil
}

// Pending counts the unprocessed math and diagram placeholders in fragment.
func Pending(fragment string, languages ...string) (int, error) {
	doc, err := parseFragment(fragment)
	if err != nil {
		return 0, err
	}
	if len(languages) == 0 {
		languages = []string{"mermaid"}
	}
	selectors := []string{".math-formula:not([" + processedAttr + "])"}
	for _, lang := range languages {
		selectors = append(selectors, "."+lang+"-diagram:not(["+processedAttr+"])")
	}
	return doc.Find(strings.Join(selectors, ", ")).Length(), nil
}

// parseFragment parses fragment as the content of a body element and wraps
// it in a document rooted at that element.
func parseFragment(fragment string) (*goquery.Document, error) {
	root := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), root)
	if err != nil {
		return nil, fmt.Errorf("materialize: parse: %w", err)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return goquery.NewDocumentFromNode(root), nil
}

func attrOrText(s *goquery.Selection, attr string) string {
	if v, ok := s.Attr(attr); ok {
		return v
	}
	return s.Text()
}

func errorBox(msgs messages, kind string, err error) string {
	title, hint := msgs.mathTitle, msgs.mathHint
	if kind == KindDiagram {
		title, hint = msgs.diagramTitle, msgs.diagramHint
	}
	var b strings.Builder
	b.WriteString(`<div class="alert alert-warning"><strong>`)
	b.WriteString(html.EscapeString(title))
	b.WriteString(`</strong><br>`)
	b.WriteString(html.EscapeString(err.Error()))
	b.WriteString(`<br><small class="text-muted">`)
	b.WriteString(html.EscapeString(hint))
	b.WriteString(`</small></div>`)
	return b.String()
}
