package flushio

import (
	"bufio"
	"io"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// NewWriteFlusher returns a flushable writer for w:
//   - io.Discard and in-memory buffers (like bytes.Buffer or
//     strings.Builder) are wrapped with a noop Flush
//   - a w that is already a WriteFlusher is returned as-is
//   - anything else is wrapped in a new bufio.Writer
func NewWriteFlusher(w io.Writer) WriteFlusher {
	if w == io.Discard {
		return nopFlusher{w}
	}

	if wf, is := w.(WriteFlusher); is {
		return wf
	}

	type buffer interface {
		io.Writer
		Cap() int
		Len() int
		Grow(n int)
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// WriteThrough writes p into wf and then flushes it, so that the bytes are
// visible downstream before WriteThrough returns. The first error wins.
func WriteThrough(wf WriteFlusher, p []byte) error {
	n, err := wf.Write(p)
	if err == nil && n != len(p) {
		err = io.ErrShortWrite
	}
	if ferr := wf.Flush(); err == nil {
		err = ferr
	}
	return err
}

// WriteStringThrough is WriteThrough for a string.
func WriteStringThrough(wf WriteFlusher, s string) error {
	return WriteThrough(wf, []byte(s))
}
