package scan

import (
	"sort"

	"github.com/yuin/goldmark/text"
)

// Span is the rest of an inline block flattened into one buffer, starting at
// the reader position it was gathered from.
type Span struct {
	buf    []byte
	starts []int
	segs   []text.Segment
}

// Gather collects the current line remainder and every following line of the
// block. The reader position is left unchanged.
func Gather(block text.Reader) Span {
	line, pos := block.Position()
	var s Span
	for {
		l, seg := block.PeekLine()
		if l == nil {
			break
		}
		s.starts = append(s.starts, len(s.buf))
		s.segs = append(s.segs, seg)
		s.buf = append(s.buf, l...)
		block.AdvanceLine()
	}
	block.SetPosition(line, pos)
	return s
}

// CurrentLine returns a Span covering only the remainder of the current line.
func CurrentLine(block text.Reader) Span {
	l, seg := block.PeekLine()
	return Span{buf: l, starts: []int{0}, segs: []text.Segment{seg}}
}

// Bytes returns the flattened content.
func (s Span) Bytes() []byte {
	return s.buf
}

// Lines reports how many block lines the span covers.
func (s Span) Lines() int {
	return len(s.starts)
}

// Locate maps an offset in Bytes to a line index and an offset within that
// line.
func (s Span) Locate(i int) (line, offset int) {
	line = sort.Search(len(s.starts), func(k int) bool { return s.starts[k] > i }) - 1
	if line < 0 {
		return 0, i
	}
	return line, i - s.starts[line]
}

// SourceOffset maps an offset in Bytes to an offset in the reader source.
func (s Span) SourceOffset(i int) int {
	line, offset := s.Locate(i)
	if line >= len(s.segs) {
		return i
	}
	seg := s.segs[line]
	return seg.Start - seg.Padding + offset
}

// Contiguous reports whether the bytes of the source between offsets i and j
// of the span are exactly the span bytes, apart from whitespace that block
// parsing stripped between lines.
func (s Span) Contiguous(source []byte, i, j int) bool {
	from, _ := s.Locate(i)
	to, _ := s.Locate(j)
	for k := from; k < to; k++ {
		gapStart, gapStop := s.segs[k].Stop, s.segs[k+1].Start
		for p := gapStart; p < gapStop && p < len(source); p++ {
			switch source[p] {
			case ' ', '\t':
			default:
				return false
			}
		}
	}
	return true
}

// Advance moves block to offset i of the span. block must be positioned where
// the span was gathered.
func (s Span) Advance(block text.Reader, i int) {
	line, offset := s.Locate(i)
	for k := 0; k < line; k++ {
		block.AdvanceLine()
	}
	if offset > 0 {
		block.Advance(offset)
	}
}
