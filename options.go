package main

import (
	"io"

	"github.com/jcorbin/gowhitespace/internal/flushio"
)

// VMOption configures a VM; see New.
type VMOption interface{ apply(vm *VM) }

// VMOptions combines options into one, applied in order; nil options are
// skipped.
func VMOptions(opts ...VMOption) VMOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

var defaultOptions = VMOptions(
	outputOption{io.Discard},
)

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type inputOption []io.Reader
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type heapLimitOption uint
type callLimitOption uint

func (rs inputOption) apply(vm *VM) {
	for _, r := range rs {
		if r != nil {
			vm.in.Queue = append(vm.in.Queue, r)
		}
	}
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.Tee(vm.out, flushio.NewWriteFlusher(o.Writer))
}

func (lim heapLimitOption) apply(vm *VM) { vm.heap.Limit = uint(lim) }
func (lim callLimitOption) apply(vm *VM) { vm.callLimit = uint(lim) }
