package panicerr

import "runtime/debug"

// Recover calls f, converting any panic it raises into a non-nil error
// return. Unlike a bare recover, the returned error retains the panic value
// (available through errors.Unwrap when it was itself an error) and the stack
// at which it was raised.
//
// The call happens on the current goroutine, so f may freely block on I/O
// owned by the caller.
func Recover(name string, f func() error) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = panicError{
				name:  name,
				e:     e,
				stack: debug.Stack(),
			}
		}
	}()
	return f()
}
