/*
Command gowhitespace runs programs written in Whitespace, a stack language
whose only significant characters are space, tab, and line feed. Every other
byte of a source file is a comment.

Usage:

	gowhitespace [flags] [run|list] <file>

The run command, the default, parses, resolves, and executes the program,
using stdin and stdout as its console. The list command prints the parsed
instructions, one per line, before label resolution.

# Instructions

Below, S is a space, T a tab, and L a line feed. Each instruction starts with
a prefix naming its group:

	S   stack manipulation
	TS  arithmetic
	TT  heap access
	L   flow control
	TL  i/o

Stack manipulation:

	S n    push n
	LS     duplicate the top value
	LT     swap the top two values
	LL     discard the top value

Arithmetic pops the right operand, then the left, and pushes the result:

	SS  add
	ST  subtract
	SL  multiply
	TS  divide, truncating toward zero
	TT  modulo, taking the sign of the dividend

Heap access:

	S  pop a value, then an address, and store the value there
	T  pop an address and push the value stored there

Flow control:

	SS l  define label l
	ST l  call the subroutine at label l
	SL l  jump to label l
	TS l  pop a value, jump to label l if it is zero
	TT l  pop a value, jump to label l if it is negative
	TL    return from a subroutine
	LL    end the program

I/O:

	SS  pop a value, write its low byte as a character
	ST  pop a value, write it as a decimal number
	TS  pop an address, read one byte of input into it
	TT  pop an address, read a line of input as a decimal number into it

A number n is a sign, S for positive or T for negative, followed by binary
digits, S for 0 and T for 1, most significant first, terminated by L.

A label l is a run of binary digits terminated by L, read after an implicit
leading 1 bit, with S for 1 and T for 0; so every run, even the empty one,
names a distinct label.

# Faults

Integers are signed 64-bit; overflow is a fault, as is division by zero, a
pop from an empty stack, loading a heap address that was never stored, a
return without a call, and running off the end of the program. A fault stops
the program, after flushing any output already written.

When reading a number, a line that does not hold one is reported on the
console, and another line is read.

# Configuration

Settings may be read from a YAML file given by -config:

	trace: false       # log every executed instruction to stderr
	timeout: 10s       # stop the program after this long
	heap_limit: 0      # fault past this many heap cells; 0 for no limit
	call_limit: 0      # fault past this call stack depth; 0 for no limit
	strict: false      # reject duplicate labels and malformed instructions
	dump: false        # dump VM state to stderr after a fault

Flags of the same names, with dashes for underscores, override the file.
*/
package main
