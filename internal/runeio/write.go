package runeio

import (
	"io"
	"unicode/utf8"
)

// WriteRune writes a rune to the given writer, using the most specific
// method available:
// - ASCII runes are written directly as single bytes
// - all other runes are written in utf8 form
func WriteRune(w io.Writer, r rune) (n int, err error) {
	type runeWriter interface {
		WriteRune(r rune) (n int, err error)
	}
	if r < utf8.RuneSelf {
		if bw, ok := w.(io.ByteWriter); ok {
			return 1, bw.WriteByte(byte(r))
		}
		return w.Write([]byte{byte(r)})
	}
	if rw, ok := w.(runeWriter); ok {
		return rw.WriteRune(r)
	}
	if sw, ok := w.(io.StringWriter); ok {
		return sw.WriteString(string(r))
	}
	return w.Write([]byte(string(r)))
}

// WriteLatin1 writes the character whose code point is the given byte value,
// treating it as ISO-8859-1: bytes under 0x80 are written as-is, higher ones
// as their two byte utf8 encoding.
func WriteLatin1(w io.Writer, b byte) (n int, err error) {
	return WriteRune(w, rune(b))
}
