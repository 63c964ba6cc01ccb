package chatmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputRejectsInvalidUTF8(t *testing.T) {
	t.Parallel()
	assert.ErrorIs(t, ValidateInput([]byte{0xff, 0xfe, 0xfd}), ErrInvalidUTF8)
}

func TestValidateInputRejectsBinary(t *testing.T) {
	t.Parallel()
	assert.ErrorIs(t, ValidateInput(append([]byte("hello"), 0x00)), ErrBinaryInput)
	noisy := bytes.Repeat([]byte{'a', 0x01}, 40)
	assert.ErrorIs(t, ValidateInput(noisy), ErrBinaryInput)
}

func TestValidateInputAcceptsText(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateInput([]byte("# Привет\n\n\tcode\r\n")))
}

func TestValidateInputReportsOffset(t *testing.T) {
	t.Parallel()
	assert.EqualError(t, ValidateInput([]byte("ok \xff")), "invalid utf-8 input at byte 3")
	assert.EqualError(t, ValidateInput([]byte("ab\x00")), "binary input detected: NUL at byte 2")
}

func TestValidateInputControlRatio(t *testing.T) {
	t.Parallel()
	short := append(bytes.Repeat([]byte{'a'}, 10), 0x01, 0x02, 0x03)
	assert.NoError(t, ValidateInput(short))

	under := append(bytes.Repeat([]byte{'a'}, 99), 0x01)
	assert.NoError(t, ValidateInput(under))

	at := append(bytes.Repeat([]byte{'a'}, 98), 0x01, 0x7f)
	assert.ErrorIs(t, ValidateInput(at), ErrBinaryInput)

	breaks := bytes.Repeat([]byte("a\t\v\f\r\n"), 20)
	assert.NoError(t, ValidateInput(breaks))
}

func TestRenderToRejectsBinary(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	err := New().RenderTo(RenderRequest{
		Reader: bytes.NewReader([]byte{0x00, 0x01, 0x02}),
		Writer: &out,
	})
	require.ErrorIs(t, err, ErrBinaryInput)
	assert.Zero(t, out.Len())
}

func TestRenderToRequiresReaderAndWriter(t *testing.T) {
	t.Parallel()
	e := New()
	assert.EqualError(t, e.RenderTo(RenderRequest{Writer: &bytes.Buffer{}}), "render: reader is nil")
	assert.EqualError(t, e.RenderTo(RenderRequest{Reader: strings.NewReader("x")}), "render: writer is nil")
}
