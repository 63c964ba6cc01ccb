package scan

import (
	"bytes"
	"unicode/utf8"
)

// SkipNested returns the offset just past the construct starting at src[pos].
//
// Backslash escapes, code spans, angle-bracket spans (autolinks and raw HTML)
// and dollar math spans are skipped whole so a delimiter inside them is never
// taken as a closer. Anything else advances by one rune.
func SkipNested(src []byte, pos int) int {
	if pos >= len(src) {
		return len(src)
	}
	switch src[pos] {
	case '\\':
		if pos+1 < len(src) && src[pos+1] != '\n' {
			_, size := utf8.DecodeRune(src[pos+1:])
			return pos + 1 + size
		}
	case '`':
		if end := skipCodeSpan(src, pos); end > pos {
			return end
		}
	case '<':
		if end := skipAngle(src, pos); end > pos {
			return end
		}
	case '$':
		if end := skipDollar(src, pos); end > pos {
			return end
		}
	}
	_, size := utf8.DecodeRune(src[pos:])
	return pos + size
}

func skipCodeSpan(src []byte, pos int) int {
	run := MarkerRun(src, pos, '`')
	for i := pos + run; i < len(src); {
		j := bytes.IndexByte(src[i:], '`')
		if j < 0 {
			break
		}
		at := i + j
		n := MarkerRun(src, at, '`')
		if n == run {
			return at + n
		}
		i = at + n
	}
	return pos + run
}

func skipAngle(src []byte, pos int) int {
	for i := pos + 1; i < len(src); i++ {
		switch src[i] {
		case '>':
			if i == pos+1 {
				return -1
			}
			return i + 1
		case ' ', '\t', '\r', '\n', '<':
			return -1
		}
	}
	return -1
}

func skipDollar(src []byte, pos int) int {
	if pos+1 >= len(src) || IsSpaceOrTab(src[pos+1]) || src[pos+1] == '$' {
		return -1
	}
	end := IndexUnescaped(src, pos+1, '$')
	if end < 0 {
		return -1
	}
	return end + 1
}
