package machine

import (
	"iter"
)

// Program is the append-only instruction array. Indexes are absolute
// addresses and stay valid for the life of the process.
type Program struct {
	Instructions []Instruction
}

// Len returns the address the next appended instruction will occupy.
func (prog *Program) Len() int {
	return len(prog.Instructions)
}

// Append adds code at the end of the program and returns its base address.
func (prog *Program) Append(code ...Instruction) (base int) {
	base = len(prog.Instructions)
	prog.Instructions = append(prog.Instructions, code...)
	return
}

// Fetch returns the instruction at addr.
func (prog *Program) Fetch(addr int) (in Instruction, ok bool) {
	if addr < 0 || addr >= len(prog.Instructions) {
		return
	}
	return prog.Instructions[addr], true
}

// Codes iterates over the instructions from addr to the end.
func (prog *Program) Codes(addr int) iter.Seq2[int, Instruction] {
	return func(yield func(addr int, in Instruction) bool) {
		for n := max(addr, 0); n < len(prog.Instructions); n++ {
			if !yield(n, prog.Instructions[n]) {
				return
			}
		}
	}
}

// Listing returns a copy of the instructions from addr up to, but not including, end.
func (prog *Program) Listing(addr, end int) (code []Instruction) {
	for n, in := range prog.Codes(addr) {
		if n >= end {
			break
		}
		code = append(code, in)
	}
	return
}
