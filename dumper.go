package main

import (
	"fmt"
	"io"
	"strconv"
)

// vmDumper writes a human readable snapshot of a VM: its registers, the
// operand and call stacks, every heap cell, and a listing of the program.
type vmDumper struct {
	vm  *VM
	out io.Writer

	addrWidth int
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  pc: %v\n", dump.vm.pc)
	dump.dumpStack()
	dump.dumpHeap()
	dump.dumpProg()
}

func (dump *vmDumper) dumpStack() {
	fmt.Fprintf(dump.out, "  stack: %v\n", dump.vm.stack)
	fmt.Fprintf(dump.out, "  calls: %v\n", dump.vm.calls)
}

func (dump *vmDumper) dumpHeap() {
	addrs := dump.vm.heap.Addrs()
	fmt.Fprintf(dump.out, "# Heap (%v cells)\n", len(addrs))
	width := 0
	for _, addr := range addrs {
		if n := len(strconv.FormatInt(addr, 10)); n > width {
			width = n
		}
	}
	for _, addr := range addrs {
		val, _ := dump.vm.heap.Load(addr)
		fmt.Fprintf(dump.out, "  @%*v %v\n", width, addr, val)
	}
}

func (dump *vmDumper) dumpProg() {
	fmt.Fprintf(dump.out, "# Program\n")
	if dump.addrWidth == 0 {
		dump.addrWidth = len(strconv.Itoa(len(dump.vm.prog)))
	}
	for i, inst := range dump.vm.prog {
		mark := "  "
		if i == dump.vm.pc {
			mark = "> "
		}
		fmt.Fprintf(dump.out, "%v@%*v %v\n", mark, dump.addrWidth, i, formatInst(inst, true))
	}
}

// formatInst renders an instruction like Instruction.String, except that
// resolved jumps show their target as an instruction index.
func formatInst(inst Instruction, resolved bool) string {
	if resolved && inst.Op.IsJump() {
		return fmt.Sprintf("%v @%v", inst.Op, inst.Arg)
	}
	return inst.String()
}

// listProgram writes one instruction per line, as parsed.
func listProgram(w io.Writer, prog []Instruction) error {
	for _, inst := range prog {
		if _, err := fmt.Fprintln(w, formatInst(inst, false)); err != nil {
			return err
		}
	}
	return nil
}
