// Package machine implements the interpreter and assembler for the RPN calculator.
//
// The machine consists of an append-only program, a program counter, an
// operand stack of real or complex values, a return stack, 256 registers,
// 256 typed vectors, and a print precision. Code is never relocated, so
// call and loop targets are plain program addresses.
//
// The assembler turns whitespace separated tokens into instructions in a
// single pass, resolving subroutine names and loop brackets as it goes, and
// hands each finished statement to the machine to run.
package machine
