// Package scan holds the delimiter, escape and indentation primitives shared
// by the syntax extensions.
//
// Extensions inspect a position with a side-effect-free function that returns a
// Result and commit the Result through the goldmark parser adapter. Probing
// never touches the AST or the document environment.
package scan

// Kind classifies a match outcome.
type Kind uint8

const (
	// NoMatch means the rule declined; the input falls through to plainer rules.
	NoMatch Kind = iota
	// Literal means the rule consumed input that must be emitted as plain text.
	Literal
	// Match means the rule recognized a construct.
	Match
)

// Result is the outcome of probing a rule at a position.
//
// Start and Stop bound the construct content, Next is the offset just past the
// construct. For Literal results only Next is meaningful.
type Result struct {
	Kind  Kind
	Start int
	Stop  int
	Next  int
}

// None returns a NoMatch result.
func None() Result {
	return Result{}
}

// Lit returns a Literal result covering input up to next.
func Lit(next int) Result {
	return Result{Kind: Literal, Next: next}
}

// Matched returns a Match result.
func Matched(start, stop, next int) Result {
	return Result{Kind: Match, Start: start, Stop: stop, Next: next}
}

// Ok reports whether the match recognized a construct.
func (r Result) Ok() bool {
	return r.Kind == Match
}
