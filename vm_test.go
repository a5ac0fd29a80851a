package main

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gowhitespace/internal/fileinput"
	"github.com/jcorbin/gowhitespace/internal/logio"
)

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	{
		var exclusive []vmTestCase
		for _, vmt := range vmts {
			if vmt.exclusive {
				exclusive = append(exclusive, vmt)
			}
		}
		if len(exclusive) > 0 {
			vmts = exclusive
		}
	}
	for _, vmt := range vmts {
		if !t.Run(vmt.name, vmt.run) {
			return
		}
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type optFunc func(vm *VM)

func (f optFunc) apply(vm *VM) { f(vm) }

type vmTestCase struct {
	name    string
	src     string
	opts    []interface{}
	expect  []func(t *testing.T, vm *VM)
	timeout time.Duration
	wantErr error

	exclusive   bool
	nextInputID int
}

func (vmt vmTestCase) apply(wraps ...func(vmTestCase) vmTestCase) vmTestCase {
	for _, wrap := range wraps {
		vmt = wrap(vmt)
	}
	return vmt
}

func (vmt vmTestCase) exclusiveTest() vmTestCase {
	vmt.exclusive = true
	return vmt
}

func (vmt vmTestCase) withOptions(opts ...VMOption) vmTestCase {
	for _, opt := range opts {
		vmt.opts = append(vmt.opts, opt)
	}
	return vmt
}

// withSource sets a program in S/T/L notation, see ws.
func (vmt vmTestCase) withSource(src string) vmTestCase {
	vmt.src = ws(src)
	return vmt
}

func (vmt vmTestCase) withProg(prog ...Instruction) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.prog = prog
	}))
	return vmt
}

func (vmt vmTestCase) withPC(pc int) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.pc = pc
	}))
	return vmt
}

func (vmt vmTestCase) withStack(values ...int64) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.stack = append(vm.stack, values...)
	}))
	return vmt
}

func (vmt vmTestCase) withCalls(pcs ...int) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.calls = append(vm.calls, pcs...)
	}))
	return vmt
}

func (vmt vmTestCase) withHeap(addr int64, val int64) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		if err := vm.heap.Stor(addr, val); err != nil {
			panic(err)
		}
	}))
	return vmt
}

func (vmt vmTestCase) withHeapLimit(limit uint) vmTestCase {
	vmt.opts = append(vmt.opts, WithHeapLimit(limit))
	return vmt
}

func (vmt vmTestCase) withCallLimit(limit uint) vmTestCase {
	vmt.opts = append(vmt.opts, WithCallLimit(limit))
	return vmt
}

func (vmt vmTestCase) withInput(input string) vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		name := t.Name() + "/input"
		if id := vmt.nextInputID; id > 0 {
			name += "_" + strconv.Itoa(id+1)
		}
		vmt.nextInputID++
		return WithInput(fileinput.Named(name, strings.NewReader(input)))
	})
	return vmt
}

func (vmt vmTestCase) withNamedInput(name string, input string) vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		return WithInput(fileinput.Named(name, strings.NewReader(input)))
	})
	return vmt
}

func (vmt vmTestCase) withTimeout(timeout time.Duration) vmTestCase {
	vmt.timeout = timeout
	return vmt
}

func (vmt vmTestCase) expectError(err error) vmTestCase {
	vmt.wantErr = err
	return vmt
}

func (vmt vmTestCase) expectPC(pc int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, pc, vm.pc, "expected program counter")
	})
	return vmt
}

func (vmt vmTestCase) expectStack(values ...int64) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if values == nil {
			values = []int64{}
		}
		stack := vm.stack
		if stack == nil {
			stack = []int64{}
		}
		assert.Equal(t, values, stack, "expected stack values")
	})
	return vmt
}

func (vmt vmTestCase) expectCalls(pcs ...int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if pcs == nil {
			pcs = []int{}
		}
		calls := vm.calls
		if calls == nil {
			calls = []int{}
		}
		assert.Equal(t, pcs, calls, "expected call stack")
	})
	return vmt
}

func (vmt vmTestCase) expectHeap(addr int64, val int64) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		got, err := vm.heap.Load(addr)
		if assert.NoError(t, err, "expected heap value @%v", addr) {
			assert.Equal(t, val, got, "expected heap value @%v", addr)
		}
	})
	return vmt
}

func (vmt vmTestCase) expectHeapSize(n int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, n, vm.heap.Len(), "expected heap cell count")
	})
	return vmt
}

func (vmt vmTestCase) expectOutput(output string) vmTestCase {
	var out strings.Builder
	vmt.opts = append(vmt.opts, WithOutput(&out))
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return vmt
}

func (vmt vmTestCase) expectDump(dump string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		var out strings.Builder
		vmDumper{
			vm:  vm,
			out: &out,
		}.dump()
		assert.Equal(t, dump, out.String(), "expected dump")
	})
	return vmt
}

func (vmt vmTestCase) withTestOutput() vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		return WithTee(&logio.Writer{Logf: func(mess string, args ...interface{}) {
			t.Logf("out: "+mess, args...)
		}})
	})
	return vmt
}

func (vmt vmTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Since(then))
	}(time.Now())

	const defaultTimeout = time.Second
	timeout := vmt.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	vm := vmt.buildVM(t)
	defer func() {
		if t.Failed() {
			vmt.dumpToTest(t, vm)
		}
	}()

	err := vm.Run(ctx)
	assert.NoError(t, vm.Close(), "unexpected vm.Close error")
	if vmt.wantErr != nil {
		assert.True(t, errors.Is(err, vmt.wantErr), "expected error: %v\ngot: %+v", vmt.wantErr, err)
	} else {
		assert.NoError(t, err, "unexpected VM run error")
	}

	if !t.Failed() {
		for _, expect := range vmt.expect {
			expect(t, vm)
		}
	}
}

func (vmt vmTestCase) buildVM(t *testing.T) *VM {
	var prog []Instruction
	if vmt.src != "" {
		var err error
		prog, err = Compile(vmt.src, false)
		require.NoError(t, err, "unexpected compile error")
	}

	opt := VMOptions(WithLogf(t.Logf))
	for _, o := range vmt.opts {
		switch impl := o.(type) {
		case func(vmt *vmTestCase, t *testing.T) VMOption:
			opt = VMOptions(opt, impl(&vmt, t))
		case VMOption:
			opt = VMOptions(opt, impl)
		default:
			t.Logf("unsupported vmTestCase opt type %T", o)
			t.FailNow()
		}
	}
	return New(prog, opt)
}

func (vmt vmTestCase) dumpToTest(t *testing.T, vm *VM) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	vmDumper{vm: vm, out: &lw}.dump()
}

//// utilities

// ws converts S/T/L notation into source text: S is a space, T a tab, and L
// a line break; every other character is dropped, so programs may be grouped
// with spaces, or any other punctuation, for legibility.
func ws(notation string) string {
	var sb strings.Builder
	for _, r := range notation {
		switch r {
		case 'S':
			sb.WriteByte(' ')
		case 'T':
			sb.WriteByte('\t')
		case 'L':
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}
