package fileinput

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// Location names a line in an Input stream.
type Location struct {
	Name string
	Line int
}

// Line combines a Location along with a bytes.Buffer for handling it.
type Line struct {
	Location
	bytes.Buffer
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }
func (il Line) String() string      { return fmt.Sprintf("%v %q", il.Location, il.Buffer.String()) }

// Input implements sequential byte and line reading through a Queue of one
// or more input streams. Both the current and last scanned lines are tracked
// to facilitate user feedback.
type Input struct {
	br    *bufio.Reader
	cur   io.Reader
	Queue []io.Reader
	Last  Line
	Scan  Line
}

// ReadByte reads one byte from the current input stream, moving on to the
// next queued stream when one runs out. The byte is appended into the
// current Scan line, rolling Scan over to Last after a line feed.
// Returns io.EOF only once every queued stream is exhausted.
func (in *Input) ReadByte() (byte, error) {
	for {
		if in.br == nil && !in.nextIn() {
			return 0, io.EOF
		}
		b, err := in.br.ReadByte()
		if err == nil {
			if b == '\n' {
				in.nextLine()
			} else {
				in.Scan.WriteByte(b)
			}
			return b, nil
		}
		if err != io.EOF {
			return 0, err
		}
		in.closeIn()
	}
}

// ReadLine reads bytes up to and including the next line feed, returning
// the line without its terminator. A final line that lacks a terminator is
// still returned; io.EOF is returned only if no bytes remained at all.
// The returned Location names where the line was read from.
func (in *Input) ReadLine() (string, Location, error) {
	var (
		buf     bytes.Buffer
		loc     Location
		started bool
	)
	for {
		b, err := in.ReadByte()
		if err != nil {
			if err == io.EOF && started {
				return buf.String(), loc, nil
			}
			return "", in.Scan.Location, err
		}
		if !started {
			started = true
			loc = in.Scan.Location
			if b == '\n' {
				// an empty line has already rolled over
				loc = in.Last.Location
			}
		}
		if b == '\n' {
			return buf.String(), loc, nil
		}
		buf.WriteByte(b)
	}
}

// Close closes any remaining streams, current and queued, that implement
// io.Closer; the first error is returned.
func (in *Input) Close() (err error) {
	if cerr := in.closeIn(); err == nil {
		err = cerr
	}
	for _, r := range in.Queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.Queue = nil
	return err
}

func (in *Input) nextLine() {
	in.Last.Reset()
	in.Last.Name = in.Scan.Name
	in.Last.Line = in.Scan.Line
	in.Last.Write(in.Scan.Bytes())
	in.Scan.Reset()
	in.Scan.Line++
}

func (in *Input) closeIn() (err error) {
	if in.cur != nil {
		if in.Scan.Len() > 0 {
			in.nextLine()
		}
		if cl, ok := in.cur.(io.Closer); ok {
			err = cl.Close()
		}
	}
	in.cur, in.br = nil, nil
	return err
}

func (in *Input) nextIn() bool {
	if len(in.Queue) > 0 {
		r := in.Queue[0]
		in.Queue = in.Queue[1:]
		in.cur = r
		in.br = bufio.NewReader(r)
		in.Scan.Name = nameOf(r)
		in.Scan.Line = 1
	}
	return in.br != nil
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}

// Named attaches a name to r, used in the Locations of its lines.
func Named(name string, r io.Reader) io.Reader {
	if rc, ok := r.(io.ReadCloser); ok {
		return namedReadCloser{rc, name}
	}
	return namedReader{r, name}
}

type namedReader struct {
	io.Reader
	name string
}

type namedReadCloser struct {
	io.ReadCloser
	name string
}

func (nr namedReader) Name() string     { return nr.name }
func (nr namedReadCloser) Name() string { return nr.name }
