package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jcorbin/gowhitespace/internal/fileinput"
	"github.com/jcorbin/gowhitespace/internal/flushio"
	"github.com/jcorbin/gowhitespace/internal/runeio"
)

// ioCore holds the console plumbing of a VM: where output goes, where input
// comes from, and how tracing is logged.
type ioCore struct {
	logging
	in  fileinput.Input
	out flushio.WriteFlusher
}

// Close flushes output, and closes any input streams handed to the VM.
func (ioc *ioCore) Close() error {
	err := ioc.flush()
	if cerr := ioc.in.Close(); err == nil {
		err = cerr
	}
	return err
}

// flush pushes out any buffered output, ignoring any panics from the writer.
func (ioc *ioCore) flush() (err error) {
	defer func() {
		if e := recover(); e != nil && err == nil {
			err = fmt.Errorf("output flush paniced: %v", e)
		}
	}()
	if ioc.out != nil {
		err = ioc.out.Flush()
	}
	return err
}

func (ioc *ioCore) writeChar(b byte) error {
	if _, err := runeio.WriteLatin1(ioc.out, b); err != nil {
		return err
	}
	return ioc.out.Flush()
}

func (ioc *ioCore) writeNumber(n int64) error {
	return flushio.WriteStringThrough(ioc.out, strconv.FormatInt(n, 10))
}

func (ioc *ioCore) writeString(s string) error {
	return flushio.WriteStringThrough(ioc.out, s)
}

// readByte reads one byte of input, after making sure that all prior output
// is visible.
func (ioc *ioCore) readByte() (byte, error) {
	if err := ioc.out.Flush(); err != nil {
		return 0, err
	}
	return ioc.in.ReadByte()
}

// readLine reads one line of input, after making sure that all prior output
// is visible.
func (ioc *ioCore) readLine() (string, fileinput.Location, error) {
	if err := ioc.out.Flush(); err != nil {
		return "", fileinput.Location{}, err
	}
	return ioc.in.ReadLine()
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		mark = strings.Repeat(" ", n) + mark
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
