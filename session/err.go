package session

import (
	"github.com/hg2ecz/rpncalc/translate"
)

var f = translate.From

// ErrLine indicates the input line of a fault.
type ErrLine struct {
	LineNo int
	Err    error
}

func (err *ErrLine) Error() string {
	return f("line %d: %v", err.LineNo, err.Err)
}

func (err *ErrLine) Unwrap() error {
	return err.Err
}

// ErrSubroutine indicates a configured subroutine that did not compile.
type ErrSubroutine struct {
	Name string
	Err  error
}

func (err *ErrSubroutine) Error() string {
	return f("subroutine %v: %v", err.Name, err.Err)
}

func (err *ErrSubroutine) Unwrap() error {
	return err.Err
}
