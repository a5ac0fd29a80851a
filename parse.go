package main

import (
	"fmt"
	"math"
)

// Parse converts source text into a sequence of instructions, in source
// order, with label ids left unresolved.
//
// An unrecognized token sequence becomes a ParseError instruction and
// parsing carries on after it. Running out of tokens part way through an
// instruction, or an embedded number or label too large to represent, fails
// the whole parse: no instructions are returned.
func Parse(src string) (prog []Instruction, err error) {
	p := parser{tokenScanner: tokenScanner{src: src}}
	defer func() {
		if e := recover(); e != nil {
			halted, ok := e.(parseHalt)
			if !ok {
				panic(e)
			}
			prog, err = nil, halted.error
		}
	}()
	for p.more() {
		p.at = p.line + 1
		p.prog = append(p.prog, p.instruction())
	}
	return p.prog, nil
}

// tokenScanner yields significant tokens from a source string, skipping
// every other byte. Multi-byte utf8 sequences never contain the three
// significant bytes, so scanning bytes is safe for any encoding of comments.
type tokenScanner struct {
	src  string
	i    int
	line int // line breaks consumed so far
}

func (sc *tokenScanner) more() bool {
	for ; sc.i < len(sc.src); sc.i++ {
		switch sc.src[sc.i] {
		case ' ', '\t', '\n':
			return true
		}
	}
	return false
}

// next returns the next token, halting the parse if none remain; expect
// describes what was being read, for the resulting error.
func (sc *tokenScanner) next(expect string) Token {
	if !sc.more() {
		panic(parseHalt{truncatedError{expect, sc.line + 1}})
	}
	c := sc.src[sc.i]
	sc.i++
	switch c {
	case ' ':
		return Space
	case '\t':
		return Tab
	}
	sc.line++
	return LineBreak
}

type parser struct {
	tokenScanner
	at   int // line on which the current instruction started
	prog []Instruction
}

func (p *parser) instruction() Instruction {
	switch p.next("instruction") {
	case Space:
		return p.stackOp()
	case LineBreak:
		return p.flowOp()
	}
	switch p.next("arithmetic, heap, or i/o instruction") {
	case Space:
		return p.arithOp()
	case Tab:
		return p.choose("heap access", HeapStore, HeapRetrieve, ParseError)
	}
	return p.ioOp()
}

func (p *parser) stackOp() Instruction {
	const what = "stack manipulation"
	switch tok := p.next(what); tok {
	case Space:
		return Instruction{Op: Push, Arg: p.number()}
	case Tab:
		return p.unexpected(tok, what)
	}
	return p.choose(what, Duplicate, Swap, Discard)
}

func (p *parser) flowOp() Instruction {
	const what = "flow control"
	switch p.next(what) {
	case Space:
		return p.choose(what, DefineLabel, Call, Jump)
	case Tab:
		return p.choose(what, JumpIfZero, JumpIfNegative, Return)
	}
	return p.choose(what, ParseError, ParseError, Halt)
}

func (p *parser) arithOp() Instruction {
	const what = "arithmetic"
	switch tok := p.next(what); tok {
	case Space:
		return p.choose(what, Add, Subtract, Multiply)
	case Tab:
		return p.choose(what, Divide, Modulo, ParseError)
	default:
		return p.unexpected(tok, what)
	}
}

func (p *parser) ioOp() Instruction {
	const what = "i/o"
	switch tok := p.next(what); tok {
	case Space:
		return p.choose(what, OutputChar, OutputNumber, ParseError)
	case Tab:
		return p.choose(what, ReadChar, ReadNumber, ParseError)
	default:
		return p.unexpected(tok, what)
	}
}

// choose reads one more token to select among three ops, for space, tab,
// and line break respectively; ParseError marks a token with no meaning at
// this point. Label-carrying ops go on to read their label.
func (p *parser) choose(what string, bySpace, byTab, byBreak Op) Instruction {
	tok := p.next(what)
	op := [...]Op{Space: bySpace, Tab: byTab, LineBreak: byBreak}[tok]
	if op == ParseError {
		return p.unexpected(tok, what)
	}
	inst := Instruction{Op: op}
	if op.HasLabel() {
		inst.Arg = p.label()
	}
	return inst
}

func (p *parser) unexpected(tok Token, what string) Instruction {
	return Instruction{
		Op:     ParseError,
		Reason: fmt.Sprintf("line %v: unexpected %v in %v instruction", p.at, tok, what),
	}
}

// number reads a sign token, then a line break terminated run of bits, most
// significant first: space is 0, tab is 1.
func (p *parser) number() int64 {
	neg := false
	switch p.next("number sign") {
	case Tab:
		neg = true
	case LineBreak:
		panic(parseHalt{literalError{p.at, "number", "missing sign"}})
	}
	var mag uint64
	for {
		tok := p.next("number")
		if tok == LineBreak {
			break
		}
		if mag > math.MaxInt64>>1 {
			panic(parseHalt{literalError{p.at, "number", "magnitude exceeds 63 bits"}})
		}
		mag <<= 1
		if tok == Tab {
			mag |= 1
		}
	}
	if neg {
		return -int64(mag)
	}
	return int64(mag)
}

// label reads a line break terminated run of bits after an implicit leading
// 1 bit: space is 1, tab is 0. So every run, even the empty one, decodes to
// a distinct non-zero id.
func (p *parser) label() int64 {
	id := int64(1)
	for {
		tok := p.next("label")
		if tok == LineBreak {
			return id
		}
		if id >= 1<<62 {
			panic(parseHalt{literalError{p.at, "label", "longer than 62 bits"}})
		}
		id <<= 1
		if tok == Space {
			id |= 1
		}
	}
}

type parseHalt struct{ error }

type truncatedError struct {
	expect string
	line   int
}

func (err truncatedError) Error() string {
	return fmt.Sprintf("source ended on line %v while reading %v", err.line, err.expect)
}

type literalError struct {
	line    int
	what    string
	problem string
}

func (err literalError) Error() string {
	return fmt.Sprintf("line %v: invalid %v: %v", err.line, err.what, err.problem)
}
