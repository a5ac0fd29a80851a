package main

import (
	"context"
	"errors"
	"io"

	"github.com/jcorbin/gowhitespace/internal/panicerr"
)

// New creates a VM ready to run prog, a resolved program as returned by
// Resolve or Compile. Without options, the VM has no input and discards its
// output.
func New(prog []Instruction, opts ...VMOption) *VM {
	vm := VM{prog: prog}
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Run executes the program from its current state until it halts, returning
// nil after a Halt instruction, or the error that stopped it. Any fault is
// reported with the program counter and instruction where it happened.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("VM", func() error {
		vm.exec(ctx)
		return nil
	})
	var halt haltError
	if errors.As(err, &halt) {
		err = halt.error
	}
	return err
}

// WithInput queues readers as the console input, consumed in order.
func WithInput(rs ...io.Reader) VMOption { return inputOption(rs) }

// WithOutput sets the console output.
func WithOutput(w io.Writer) VMOption { return outputOption{w} }

// WithTee copies all console output to w, in addition to the output set by
// WithOutput.
func WithTee(w io.Writer) VMOption { return teeOption{w} }

// WithHeapLimit caps the number of distinct heap cells a program may write;
// 0 means no limit.
func WithHeapLimit(limit uint) VMOption { return heapLimitOption(limit) }

// WithCallLimit caps the depth of the call stack; 0 means no limit.
func WithCallLimit(limit uint) VMOption { return callLimitOption(limit) }

// WithLogf enables trace logging of every executed instruction.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
