package machine

import (
	"errors"

	"github.com/hg2ecz/rpncalc/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrStackEmpty   = errors.New(f("stack empty"))
	ErrStackFull    = errors.New(f("stack full"))
	ErrReturnEmpty  = errors.New(f("return stack empty"))
	ErrReturnFull   = errors.New(f("return stack full"))
	ErrTypeMismatch = errors.New(f("type mismatch"))
	ErrIndexRange   = errors.New(f("index out of range"))
	ErrVectorLength = errors.New(f("vector length invalid"))
	ErrAddress      = errors.New(f("address invalid"))
	ErrOpcode       = errors.New(f("opcode invalid"))
	ErrInterrupted  = errors.New(f("interrupted"))
	ErrQuit         = errors.New(f("quit"))

	// Assembler errors
	ErrIndexNeeded       = errors.New(f("register/vector index needed"))
	ErrLoopUnbalanced    = errors.New(f("] without ["))
	ErrDefinitionNesting = errors.New(f(": inside definition prohibited"))
	ErrDefinitionLonely  = errors.New(f("; without :"))
	ErrDefinitionOpen    = errors.New(f("definition not closed"))
	ErrNameInvalid       = errors.New(f("subroutine name invalid"))
)

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrWordUnknown string

func (err ErrWordUnknown) Error() string {
	return f("'%v' is not a command or subroutine", string(err))
}

// ErrSyntax locates an assembly fault at a token.
type ErrSyntax struct {
	Token string
	Err   error
}

func (err *ErrSyntax) Error() string {
	return f("'%v' %v", err.Token, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrInstruction locates a run time fault at a program address.
type ErrInstruction struct {
	Pc          int
	Instruction Instruction
	Err         error
}

func (err *ErrInstruction) Error() string {
	return f("0x%04x %v: %v", err.Pc, err.Instruction.String(), err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}
