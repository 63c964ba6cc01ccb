package chatmd

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports a message that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports a message that looks like binary data rather
	// than Markdown.
	ErrBinaryInput = errors.New("binary input detected")
)

// A message shorter than shortMessage is never judged by its control
// character ratio. Longer ones are binary when one byte in controlRatio or
// more is a control character.
const (
	shortMessage = 64
	controlRatio = 50
)

// ValidateInput checks that src can be a chat message. It returns an error
// wrapping ErrInvalidUTF8 or ErrBinaryInput with the offending byte offset.
// A NUL byte anywhere makes the message binary.
func ValidateInput(src []byte) error {
	if off := invalidUTF8At(src); off >= 0 {
		return fmt.Errorf("%w at byte %d", ErrInvalidUTF8, off)
	}
	if off := bytes.IndexByte(src, 0); off >= 0 {
		return fmt.Errorf("%w: NUL at byte %d", ErrBinaryInput, off)
	}
	if len(src) < shortMessage {
		return nil
	}
	if n := countControl(src); n*controlRatio >= len(src) {
		return fmt.Errorf("%w: %d control bytes in %d", ErrBinaryInput, n, len(src))
	}
	return nil
}

// invalidUTF8At returns the offset of the first invalid sequence, or -1.
func invalidUTF8At(src []byte) int {
	if utf8.Valid(src) {
		return -1
	}
	for off := 0; off < len(src); {
		r, size := utf8.DecodeRune(src[off:])
		if r == utf8.RuneError && size <= 1 {
			return off
		}
		off += size
	}
	return -1
}

// countControl counts C0 controls and DEL, leaving out tab and the line
// breaks \n \v \f \r.
func countControl(src []byte) int {
	n := 0
	for _, b := range src {
		switch {
		case b >= '\t' && b <= '\r':
		case b < ' ', b == 0x7f:
			n++
		}
	}
	return n
}
