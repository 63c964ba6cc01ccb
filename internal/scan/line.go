package scan

import (
	"unicode"
	"unicode/utf8"
)

const tabWidth = 4

// Indent returns the column width of the leading whitespace of line and the
// byte offset of the first non-whitespace byte. Tabs advance to the next
// multiple of four columns.
func Indent(line []byte) (width, offset int) {
	for offset < len(line) {
		switch line[offset] {
		case ' ':
			width++
		case '\t':
			width += tabWidth - width%tabWidth
		default:
			return width, offset
		}
		offset++
	}
	return width, offset
}

// MarkerRun returns how many times c repeats in line starting at pos.
func MarkerRun(line []byte, pos int, c byte) int {
	n := 0
	for pos+n < len(line) && line[pos+n] == c {
		n++
	}
	return n
}

// ContentLen returns the length of line without its trailing line ending.
func ContentLen(line []byte) int {
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		n--
	}
	if n > 0 && line[n-1] == '\r' {
		n--
	}
	return n
}

// IsBlankFrom reports whether line holds only whitespace from pos onwards.
func IsBlankFrom(line []byte, pos int) bool {
	for i := pos; i < len(line); i++ {
		switch line[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}

// IsSpaceOrTab reports whether c is a space or a horizontal tab.
func IsSpaceOrTab(c byte) bool {
	return c == ' ' || c == '\t'
}

// IsDigit reports whether c is an ASCII digit.
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// extraBoundary holds the ASCII symbols that separate words besides Unicode
// punctuation and separators.
const extraBoundary = " \r\n$+<=>^`|~"

// IsBoundary reports whether r separates words.
func IsBoundary(r rune) bool {
	if unicode.IsPunct(r) || unicode.In(r, unicode.Z) {
		return true
	}
	for _, c := range extraBoundary {
		if r == c {
			return true
		}
	}
	return false
}

// BoundaryBefore reports whether the rune ending at b[i] is a word boundary or
// i is the start of b.
func BoundaryBefore(b []byte, i int) bool {
	if i <= 0 {
		return true
	}
	r, _ := utf8.DecodeLastRune(b[:i])
	return IsBoundary(r)
}

// BoundaryAfter reports whether the rune starting at b[i] is a word boundary
// or i is the end of b.
func BoundaryAfter(b []byte, i int) bool {
	if i >= len(b) {
		return true
	}
	r, _ := utf8.DecodeRune(b[i:])
	return IsBoundary(r)
}
