package main

import "fmt"

// Compile parses and resolves src into an executable program.
func Compile(src string, strict bool) ([]Instruction, error) {
	raw, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Resolve(raw, strict)
}

// Resolve drops every DefineLabel from a parsed program, rewriting the label
// ids of Call, Jump, JumpIfZero, and JumpIfNegative into the index of the
// instruction that followed the label's definition.
//
// When a label is defined more than once, the last definition wins, unless
// strict is set, in which case it is an error. Strict resolution also
// rejects any ParseError instruction; otherwise they pass through to fault
// only if executed.
func Resolve(raw []Instruction, strict bool) ([]Instruction, error) {
	var (
		labels  = make(map[int64]int)
		defined = make(map[int64]int)
		n       int
	)
	for i, inst := range raw {
		if inst.Op != DefineLabel {
			n++
			continue
		}
		if prior, dup := defined[inst.Arg]; dup && strict {
			return nil, duplicateLabelError{inst.Arg, prior, i}
		}
		defined[inst.Arg] = i
		labels[inst.Arg] = n
	}

	prog := make([]Instruction, 0, n)
	for i, inst := range raw {
		switch {
		case inst.Op == DefineLabel:
			continue

		case inst.Op.IsJump():
			target, ok := labels[inst.Arg]
			if !ok {
				return nil, labelError{inst, i, "undefined"}
			}
			if target >= n {
				return nil, labelError{inst, i, "defined after the last instruction"}
			}
			inst.Arg = int64(target)

		case inst.Op == ParseError && strict:
			return nil, invalidError{inst, i}
		}
		prog = append(prog, inst)
	}
	return prog, nil
}

type labelError struct {
	inst    Instruction
	at      int
	problem string
}

func (err labelError) Error() string {
	return fmt.Sprintf("%v at #%v references label %v, which is %v",
		err.inst.Op, err.at, err.inst.Arg, err.problem)
}

type duplicateLabelError struct {
	label         int64
	first, second int
}

func (err duplicateLabelError) Error() string {
	return fmt.Sprintf("label %v defined at #%v is redefined at #%v",
		err.label, err.first, err.second)
}

type invalidError struct {
	inst Instruction
	at   int
}

func (err invalidError) Error() string {
	return fmt.Sprintf("invalid instruction at #%v: %v", err.at, err.inst.Reason)
}
