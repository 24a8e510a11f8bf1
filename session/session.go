// Package session joins an assembler and a machine into one calculator
// that consumes text a line at a time.
package session

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/hg2ecz/rpncalc/config"
	"github.com/hg2ecz/rpncalc/internal"
	"github.com/hg2ecz/rpncalc/machine"
)

// Session state. Machine + Assembler + diagnostics.
type Session struct {
	*machine.Machine                    // Reference to the interpreter.
	Assembler        *machine.Assembler // Reference to the assembler.
	Errors           io.Writer          // Diagnostic output.
	LineNo           int                // Lines consumed so far.
}

// NewSession creates a session printing results to output and
// faults to diagnostics.
func NewSession(output, diagnostics io.Writer) (s *Session) {
	if diagnostics == nil {
		diagnostics = io.Discard
	}

	m := machine.NewMachine(output)
	s = &Session{
		Machine:   m,
		Assembler: machine.NewAssembler(m, m.Output),
		Errors:    diagnostics,
	}

	return
}

// SetVerbose enables tracing in both the assembler and the machine.
func (s *Session) SetVerbose(verbose bool) {
	s.Machine.Verbose = verbose
	s.Assembler.Verbose = verbose
}

// Configure applies start-up settings. Subroutines are compiled in
// order, so a body may call any subroutine defined before it.
func (s *Session) Configure(cfg *config.Config) (err error) {
	s.SetVerbose(cfg.Verbose)
	s.Machine.Precision = cfg.Precision

	for reg, x := range cfg.Registers {
		s.Machine.Register[reg] = machine.Real(x)
	}

	for _, sub := range cfg.Subroutines {
		err = s.Assembler.Line(fmt.Sprintf(": %v %v ;", sub.Name, sub.Body))
		if err == nil && s.Assembler.Defining() {
			err = machine.ErrDefinitionOpen
		}
		if err != nil {
			s.Assembler.Abort()
			err = &ErrSubroutine{Name: sub.Name, Err: err}
			return
		}
	}

	return
}

// Line consumes one line of input. Faults are reported on the
// diagnostic output and do not stop the session. Only machine.ErrQuit is
// returned, when the line asked the calculator to exit.
func (s *Session) Line(text string) (err error) {
	s.LineNo++

	for _, e := range unjoin(s.Assembler.Line(text)) {
		if errors.Is(e, machine.ErrQuit) {
			err = machine.ErrQuit
			continue
		}
		fmt.Fprintln(s.Errors, &ErrLine{LineNo: s.LineNo, Err: e})
	}

	return
}

// Lines consumes lines until they run out or a line quits.
func (s *Session) Lines(lines iter.Seq[string]) (err error) {
	for text := range lines {
		err = s.Line(text)
		if err != nil {
			return
		}
	}

	return
}

// Words returns every mnemonic and subroutine name, sorted.
func (s *Session) Words() []string {
	words := slices.Collect(internal.IterSeqConcat(machine.Mnemonics(), s.Assembler.Words()))
	slices.Sort(words)
	return slices.Compact(words)
}

// unjoin splits an errors.Join result into its parts.
func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
