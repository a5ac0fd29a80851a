package main

import (
	"fmt"
	"strconv"
)

// Token is one of the three significant characters of the language.
type Token uint8

// Tokens; every other source byte is a comment.
const (
	Space Token = iota
	Tab
	LineBreak
)

func (tok Token) String() string {
	switch tok {
	case Space:
		return "space"
	case Tab:
		return "tab"
	case LineBreak:
		return "line break"
	}
	return "Token(" + strconv.Itoa(int(tok)) + ")"
}

// Op names an instruction variant.
type Op uint8

// Instruction opcodes, grouped by the prefix that introduces them.
const (
	// stack manipulation: S
	Push Op = iota
	Duplicate
	Swap
	Discard

	// arithmetic: TS
	Add
	Subtract
	Multiply
	Divide
	Modulo

	// heap access: TT
	HeapStore
	HeapRetrieve

	// flow control: L
	DefineLabel
	Call
	Jump
	JumpIfZero
	JumpIfNegative
	Return
	Halt

	// i/o: TL
	OutputChar
	OutputNumber
	ReadChar
	ReadNumber

	// ParseError marks an unrecognized token sequence; it may appear in a
	// parsed program, but must never be executed.
	ParseError

	opMax
)

var opNames = [opMax]string{
	Push:           "push",
	Duplicate:      "dup",
	Swap:           "swap",
	Discard:        "discard",
	Add:            "add",
	Subtract:       "sub",
	Multiply:       "mul",
	Divide:         "div",
	Modulo:         "mod",
	HeapStore:      "store",
	HeapRetrieve:   "retrieve",
	DefineLabel:    "label",
	Call:           "call",
	Jump:           "jump",
	JumpIfZero:     "jz",
	JumpIfNegative: "jn",
	Return:         "ret",
	Halt:           "halt",
	OutputChar:     "putc",
	OutputNumber:   "putn",
	ReadChar:       "getc",
	ReadNumber:     "getn",
	ParseError:     "error",
}

func (op Op) String() string {
	if op < opMax {
		return opNames[op]
	}
	return "Op(" + strconv.Itoa(int(op)) + ")"
}

// HasArg returns true if instructions with this op carry an argument.
func (op Op) HasArg() bool {
	return op == Push || op.HasLabel()
}

// HasLabel returns true if instructions with this op carry a label id,
// which becomes an instruction index once resolved.
func (op Op) HasLabel() bool {
	switch op {
	case DefineLabel, Call, Jump, JumpIfZero, JumpIfNegative:
		return true
	}
	return false
}

// IsJump returns true for ops that may transfer control to a label.
func (op Op) IsJump() bool {
	return op != DefineLabel && op.HasLabel()
}

// Instruction is one parsed program step.
//
// Arg holds the value of a Push, or the label id of a label-carrying op; the
// resolver rewrites label ids of jumps into instruction indices. Reason is
// only set for a ParseError.
type Instruction struct {
	Op     Op
	Arg    int64
	Reason string
}

// String returns the stable listing form of the instruction, like "push -3",
// "call 5", "halt", or `error "unexpected tab"`.
func (inst Instruction) String() string {
	switch {
	case inst.Op == ParseError:
		return fmt.Sprintf("%v %q", inst.Op, inst.Reason)
	case inst.Op.HasArg():
		return fmt.Sprintf("%v %v", inst.Op, inst.Arg)
	}
	return inst.Op.String()
}
