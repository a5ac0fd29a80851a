package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jcorbin/gowhitespace/internal/mem"
	"github.com/jcorbin/gowhitespace/internal/runeio"
)

// VM executes a resolved program. The machine has three stores: the operand
// stack, used implicitly by nearly every instruction; the heap, a sparse
// integer-addressed memory; and the call stack of return addresses.
type VM struct {
	ioCore

	prog []Instruction
	pc   int // program counter

	stack []int64
	calls []int
	heap  mem.Heap

	callLimit uint
}

func (vm *VM) exec(ctx context.Context) {
	if vm.logfn != nil {
		defer vm.withLogPrefix("	")()
	}
	for {
		vm.step()
		vm.haltif(ctx.Err())
	}
}

func (vm *VM) step() {
	if vm.pc < 0 || vm.pc >= len(vm.prog) {
		vm.halt(progError(vm.pc))
	}
	inst := vm.prog[vm.pc]
	if vm.logfn != nil {
		vm.logf("@"+strconv.Itoa(vm.pc), "%v -- s:%v c:%v", inst, vm.stack, vm.calls)
	}
	if !vm.do(inst) {
		vm.pc++
	}
}

// do performs a single instruction, returning true if it transferred
// control, rather than falling through to the next instruction.
func (vm *VM) do(inst Instruction) bool {
	switch inst.Op {

	//// stack manipulation

	case Push:
		vm.push(inst.Arg)
	case Duplicate:
		vm.need(inst.Op, 1)
		vm.push(vm.stack[len(vm.stack)-1])
	case Swap:
		vm.need(inst.Op, 2)
		i, j := len(vm.stack)-1, len(vm.stack)-2
		vm.stack[i], vm.stack[j] = vm.stack[j], vm.stack[i]
	case Discard:
		vm.pop(inst.Op)

	//// arithmetic

	case Add, Subtract, Multiply, Divide, Modulo:
		vm.need(inst.Op, 2)
		b, a := vm.pop(inst.Op), vm.pop(inst.Op)
		val, err := arith(inst.Op, a, b)
		vm.faultif(err)
		vm.push(val)

	//// heap access

	case HeapStore:
		val, addr := vm.pop(inst.Op), vm.pop(inst.Op)
		vm.faultif(vm.heap.Stor(addr, val))
	case HeapRetrieve:
		val, err := vm.heap.Load(vm.pop(inst.Op))
		vm.faultif(err)
		vm.push(val)

	//// flow control

	case Call:
		if lim := vm.callLimit; lim != 0 && uint(len(vm.calls)) >= lim {
			vm.fault(callLimitError(lim))
		}
		vm.calls = append(vm.calls, vm.pc)
		vm.pc = int(inst.Arg)
		return true
	case Jump:
		vm.pc = int(inst.Arg)
		return true
	case JumpIfZero:
		if vm.pop(inst.Op) == 0 {
			vm.pc = int(inst.Arg)
			return true
		}
	case JumpIfNegative:
		if vm.pop(inst.Op) < 0 {
			vm.pc = int(inst.Arg)
			return true
		}
	case Return:
		i := len(vm.calls) - 1
		if i < 0 {
			vm.fault(errReturn)
		}
		vm.pc, vm.calls = vm.calls[i]+1, vm.calls[:i]
		return true
	case Halt:
		vm.halt(nil)

	//// i/o

	case OutputChar:
		b := byte(vm.pop(inst.Op))
		if vm.logfn != nil {
			vm.logf("out", "%v", runeio.Quote(rune(b)))
		}
		vm.faultif(vm.writeChar(b))
	case OutputNumber:
		vm.faultif(vm.writeNumber(vm.pop(inst.Op)))
	case ReadChar:
		addr := vm.pop(inst.Op)
		b, err := vm.readByte()
		if err != nil {
			vm.fault(inputError{inst.Op, err})
		}
		if vm.logfn != nil {
			vm.logf("in", "%v", runeio.Quote(rune(b)))
		}
		vm.faultif(vm.heap.Stor(addr, int64(b)))
	case ReadNumber:
		addr := vm.pop(inst.Op)
		vm.faultif(vm.heap.Stor(addr, vm.readNumber()))

	default:
		vm.fault(invalidInstructionError{inst})
	}
	return false
}

// readNumber reads lines of input until one holds a decimal integer,
// reporting each bad line to the console.
func (vm *VM) readNumber() int64 {
	for {
		line, loc, err := vm.readLine()
		if err != nil {
			vm.fault(inputError{ReadNumber, err})
		}
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err == nil {
			vm.logf("in", "%v from %v", n, loc)
			return n
		}
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		vm.logf("in", "invalid number %q from %v: %v", line, loc, err)
		vm.faultif(vm.writeString(fmt.Sprintf("invalid number %q: %v\n", line, err)))
	}
}

func (vm *VM) push(val int64) {
	vm.stack = append(vm.stack, val)
}

func (vm *VM) pop(op Op) (val int64) {
	vm.need(op, 1)
	i := len(vm.stack) - 1
	val, vm.stack = vm.stack[i], vm.stack[:i]
	return val
}

func (vm *VM) need(op Op, n int) {
	if have := len(vm.stack); have < n {
		vm.fault(underflowError{op, n, have})
	}
}

// arith computes a OP b, failing rather than wrapping on overflow.
func arith(op Op, a, b int64) (int64, error) {
	switch op {
	case Add:
		r := a + b
		if (b > 0 && r < a) || (b < 0 && r > a) {
			return 0, overflowError{op, a, b}
		}
		return r, nil
	case Subtract:
		r := a - b
		if (b > 0 && r > a) || (b < 0 && r < a) {
			return 0, overflowError{op, a, b}
		}
		return r, nil
	case Multiply:
		r := a * b
		if a != 0 && (r/a != b || (a == -1 && b == math.MinInt64)) {
			return 0, overflowError{op, a, b}
		}
		return r, nil
	case Divide, Modulo:
		if b == 0 {
			return 0, errDivideByZero
		}
		if a == math.MinInt64 && b == -1 {
			return 0, overflowError{op, a, b}
		}
		if op == Divide {
			return a / b, nil
		}
		return a % b, nil
	}
	return 0, fmt.Errorf("%v is not an arithmetic op", op)
}

// halt stops the VM by panicking with a haltError, after flushing output;
// Run recovers it. A nil err is a normal halt.
func (vm *VM) halt(err error) {
	if ferr := vm.flush(); err == nil {
		err = ferr
	}
	if err == nil {
		vm.logf("#", "halt")
	} else {
		vm.logf("#", "halt error: %v", err)
	}
	panic(haltError{err})
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

// fault halts the VM with an error attributed to the current instruction.
func (vm *VM) fault(err error) {
	vm.halt(faultError{vm.pc, vm.prog[vm.pc], err})
}

func (vm *VM) faultif(err error) {
	if err != nil {
		vm.fault(err)
	}
}

var (
	errDivideByZero = errors.New("division by zero")
	errReturn       = errors.New("return without call")
)

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

type faultError struct {
	pc   int
	inst Instruction
	err  error
}

func (err faultError) Error() string {
	return fmt.Sprintf("fault @%v %v: %v", err.pc, err.inst, err.err)
}
func (err faultError) Unwrap() error { return err.err }

type progError int

func (pc progError) Error() string { return fmt.Sprintf("program counter %v out of range", int(pc)) }

type callLimitError uint

func (lim callLimitError) Error() string {
	return fmt.Sprintf("call stack limit of %v exceeded", uint(lim))
}

type underflowError struct {
	op   Op
	need int
	have int
}

func (err underflowError) Error() string {
	return fmt.Sprintf("stack underflow: %v needs %v values, have %v", err.op, err.need, err.have)
}

type overflowError struct {
	op   Op
	a, b int64
}

func (err overflowError) Error() string {
	return fmt.Sprintf("integer overflow: %v %v %v", err.op, err.a, err.b)
}

type inputError struct {
	op  Op
	err error
}

func (err inputError) Error() string { return fmt.Sprintf("%v input: %v", err.op, err.err) }
func (err inputError) Unwrap() error { return err.err }

type invalidInstructionError struct{ inst Instruction }

func (err invalidInstructionError) Error() string {
	if err.inst.Op == ParseError {
		return fmt.Sprintf("executed parse error: %v", err.inst.Reason)
	}
	return fmt.Sprintf("cannot execute %v", err.inst)
}
