package scan

import (
	"bytes"
	"unicode"
	"unicode/utf8"
)

// IsEscaped reports whether src[i] is preceded by an odd number of backslashes.
func IsEscaped(src []byte, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && src[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// IndexUnescaped returns the index of the first c at or after from that is not
// escaped by a backslash, or -1.
func IndexUnescaped(src []byte, from int, c byte) int {
	for from < len(src) {
		i := bytes.IndexByte(src[from:], c)
		if i < 0 {
			return -1
		}
		at := from + i
		if !IsEscaped(src, at) {
			return at
		}
		from = at + 1
	}
	return -1
}

// HasUnescapedSpace reports whether b contains whitespace that is not escaped
// by a backslash.
func HasUnescapedSpace(b []byte) bool {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if unicode.IsSpace(r) && !IsEscaped(b, i) {
			return true
		}
		i += size
	}
	return false
}

// IsASCIIPunct reports whether c is ASCII punctuation.
func IsASCIIPunct(c byte) bool {
	switch {
	case c >= '!' && c <= '/':
		return true
	case c >= ':' && c <= '@':
		return true
	case c >= '[' && c <= '`':
		return true
	case c >= '{' && c <= '~':
		return true
	}
	return false
}

// Unescape drops backslashes in front of ASCII punctuation and spaces.
func Unescape(b []byte) []byte {
	if bytes.IndexByte(b, '\\') < 0 {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c == '\\' && i+1 < len(b) && (IsASCIIPunct(b[i+1]) || b[i+1] == ' ') {
			out = append(out, b[i+1])
			i++
			continue
		}
		out = append(out, c)
	}
	return out
}

// UnescapeAny drops every backslash and keeps the character that follows it.
func UnescapeAny(b []byte) []byte {
	if bytes.IndexByte(b, '\\') < 0 {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] == '\\' && i+1 < len(b) {
			i++
		}
		out = append(out, b[i])
	}
	return out
}
