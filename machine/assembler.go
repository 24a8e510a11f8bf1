package machine

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Target receives assembled code. Machine is the usual Target.
type Target interface {
	Len() int                            // Address of the next committed instruction.
	Run(code []Instruction) error        // Commit code, then execute it.
	Commit(code []Instruction)           // Commit code without executing it.
	Listing(addr, end int) []Instruction // Committed code from addr up to end.
}

// defineState tracks progress through a subroutine definition.
type defineState int

const (
	DEFINE_NONE = defineState(0) // Top level, statements execute.
	DEFINE_NAME = defineState(1) // After ':', awaiting the name.
	DEFINE_BODY = defineState(2) // Inside the body, buffering.
)

// Directives run while assembling and emit no code.
var directiveMap = map[string]func(asm *Assembler) error{
	"help":     (*Assembler).help,
	"dumpsr":   (*Assembler).dumpSubroutines,
	"dsr":      (*Assembler).dumpSubroutines,
	"dumpprog": (*Assembler).dumpProgram,
	"dp":       (*Assembler).dumpProgram,
}

// Control tokens handled by the assembler itself.
var controlWords = []string{":", ";", "[", "]"}

// Assembler is a single pass assembler for the calculator language.
// It appends to a Target that never relocates code, so subroutine and
// loop addresses are resolved to absolute addresses as they are seen.
type Assembler struct {
	Verbose bool      // If set, verbosely logs the assembler actions.
	Output  io.Writer // Directive output.
	Target  Target    // Where finished statements go.

	Label   map[string]int // Map of subroutine names to entry addresses.
	Loop    Stack[int]     // Pending loop-open addresses.
	Pending []Instruction  // Code not yet handed to the Target.

	state    defineState
	name     string // Subroutine being defined.
	previous int    // Earlier address of name, when rebinding.
	rebind   bool   // Set when name was already defined.
	faults   error  // Run faults of statements flushed before a ':'.
	literal  bool   // Set when the last token emitted a real literal.
}

// NewAssembler creates an assembler feeding target.
func NewAssembler(target Target, output io.Writer) (asm *Assembler) {
	if output == nil {
		output = io.Discard
	}

	asm = &Assembler{
		Output: output,
		Target: target,
		Label:  make(map[string]int, 16),
	}

	return
}

// Defining returns true while a subroutine definition is open.
func (asm *Assembler) Defining() bool {
	return asm.state != DEFINE_NONE
}

// Words returns the defined subroutine names.
func (asm *Assembler) Words() iter.Seq[string] {
	return maps.Keys(asm.Label)
}

// Line assembles one line of text. Outside of a definition, the
// statement is run when the line ends.
//
// A faulty token discards the rest of the line; code emitted before it
// is still run. Assembly and run faults are returned joined.
func (asm *Assembler) Line(text string) (err error) {
	text, _, _ = strings.Cut(text, "#")
	asm.faults = nil

	var asmErr error
	for _, token := range strings.Fields(text) {
		if asm.Verbose {
			log.Debug().Str("token", token).Int("pending", len(asm.Pending)).Msg("asm")
		}

		asmErr = asm.parseToken(token)
		if asmErr != nil {
			asm.literal = false
			break
		}
	}

	var runErr error
	if asm.state == DEFINE_NONE {
		runErr = asm.flush()
	}

	err = errors.Join(asm.faults, asmErr, runErr)
	asm.faults = nil
	return
}

// Abort discards the pending statement and any open definition or loop.
func (asm *Assembler) Abort() {
	if asm.state == DEFINE_BODY {
		if asm.rebind {
			asm.Label[asm.name] = asm.previous
		} else {
			delete(asm.Label, asm.name)
		}
	}
	asm.state = DEFINE_NONE
	asm.name = ""
	asm.Pending = nil
	asm.Loop.Reset()
	asm.literal = false
}

// flush hands the pending statement to the Target for execution.
func (asm *Assembler) flush() (err error) {
	asm.literal = false

	if len(asm.Pending) == 0 {
		return
	}

	code := asm.Pending
	asm.Pending = nil

	return asm.Target.Run(code)
}

// emit appends an instruction to the pending statement.
func (asm *Assembler) emit(in Instruction) {
	asm.Pending = append(asm.Pending, in)
}

// here returns the address the next emitted instruction will occupy.
func (asm *Assembler) here() int {
	return asm.Target.Len() + len(asm.Pending)
}

// parseToken evaluates a single token.
func (asm *Assembler) parseToken(token string) (err error) {
	if asm.state == DEFINE_NAME {
		return asm.define(token)
	}

	literal := asm.literal
	asm.literal = false

	syntax := func(e error) error {
		return &ErrSyntax{Token: token, Err: e}
	}

	switch token {
	case ":":
		if asm.state != DEFINE_NONE {
			err = syntax(ErrDefinitionNesting)
			return
		}
		// Anything before the definition runs first. A fault there
		// does not cancel the definition.
		asm.faults = errors.Join(asm.faults, asm.flush())
		asm.state = DEFINE_NAME
		return
	case ";":
		if asm.state != DEFINE_BODY {
			err = syntax(ErrDefinitionLonely)
			return
		}
		asm.emit(Make(OP_RET))
		code := asm.Pending
		asm.Pending = nil
		asm.Target.Commit(code)
		asm.state = DEFINE_NONE
		return
	case "[":
		asm.Loop.Push(asm.here())
		return
	case "]":
		addr, ok := asm.Loop.Pop()
		if !ok {
			err = syntax(ErrLoopUnbalanced)
			return
		}
		asm.emit(MakeJnz(addr))
		return
	}

	if directive, ok := directiveMap[token]; ok {
		return directive(asm)
	}

	if op, ok := opMap[token]; ok {
		asm.emit(Make(op))
		return
	}

	if op, ok := indexMap[token]; ok {
		var index uint8
		index, err = asm.index(literal)
		if err != nil {
			err = syntax(err)
			return
		}
		asm.emit(MakeIndexed(op, index))
		return
	}

	if addr, ok := asm.Label[token]; ok {
		asm.emit(MakeCall(addr))
		return
	}

	if isNumeric(token) {
		asm.literal, err = asm.number(token, literal)
		return
	}

	err = ErrWordUnknown(token)
	return
}

// define names the subroutine whose body starts at the current address.
func (asm *Assembler) define(name string) (err error) {
	if reserved(name) {
		asm.state = DEFINE_NONE
		err = &ErrSyntax{Token: name, Err: ErrNameInvalid}
		return
	}

	asm.previous, asm.rebind = asm.Label[name]
	asm.Label[name] = asm.here()
	asm.name = name
	asm.state = DEFINE_BODY

	if asm.Verbose {
		log.Debug().Str("name", name).Int("addr", asm.Label[name]).Msg("define")
	}

	return
}

// index takes back the literal emitted by the previous token as a slot index.
func (asm *Assembler) index(literal bool) (index uint8, err error) {
	n := len(asm.Pending)
	if !literal || n == 0 {
		err = ErrIndexNeeded
		return
	}

	last := asm.Pending[n-1]
	if last.Op != OP_LITERAL || last.Value.IsComplex() {
		err = ErrIndexNeeded
		return
	}

	x := last.Value.Float()
	if x < 0 || x >= REGISTER_COUNT || x != math.Trunc(x) {
		err = ErrIndexRange
		return
	}

	asm.Pending = asm.Pending[:n-1]
	index = uint8(x)
	return
}

// number emits a literal. An imaginary literal merges with a real
// literal emitted by the previous token.
func (asm *Assembler) number(token string, literal bool) (isReal bool, err error) {
	text, imaginary := strings.CutSuffix(token, "j")

	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		err = ErrParseNumber(token)
		return
	}

	if !imaginary {
		asm.emit(MakeLiteral(Real(x)))
		isReal = true
		return
	}

	var re float64
	n := len(asm.Pending)
	if literal && n > 0 && asm.Pending[n-1].Op == OP_LITERAL && !asm.Pending[n-1].Value.IsComplex() {
		re = asm.Pending[n-1].Value.Float()
		asm.Pending = asm.Pending[:n-1]
	}
	asm.emit(MakeLiteral(Complex(re, x)))

	return
}

// isNumeric returns true if the token must be parsed as a number.
func isNumeric(token string) bool {
	c := token[0]
	return (c >= '0' && c <= '9') || c == '-'
}

// reserved returns true if name cannot be used for a subroutine.
func reserved(name string) bool {
	_, isOp := opMap[name]
	_, isIndex := indexMap[name]
	_, isDirective := directiveMap[name]
	return isOp || isIndex || isDirective || isNumeric(name) || slices.Contains(controlWords, name)
}

// dumpSubroutines lists the subroutines by entry address.
func (asm *Assembler) dumpSubroutines() (err error) {
	names := slices.SortedFunc(maps.Keys(asm.Label), func(a, b string) int {
		return cmp.Or(cmp.Compare(asm.Label[a], asm.Label[b]), cmp.Compare(a, b))
	})

	if len(names) == 0 {
		_, err = fmt.Fprintln(asm.Output, f("no subroutines; define one with ': NAME ... ;'"))
		return
	}

	for _, name := range names {
		_, err = fmt.Fprintf(asm.Output, "0x%04x %v\n", asm.Label[name], name)
		if err != nil {
			return
		}
	}

	return
}

// dumpProgram lists the committed program, marking subroutine entries.
func (asm *Assembler) dumpProgram() (err error) {
	entries := make(map[int][]string, len(asm.Label))
	for name, addr := range asm.Label {
		entries[addr] = append(entries[addr], name)
	}

	for n, in := range asm.Target.Listing(0, asm.Target.Len()) {
		names := entries[n]
		slices.Sort(names)
		for _, name := range names {
			if _, err = fmt.Fprintf(asm.Output, "%v:\n", name); err != nil {
				return
			}
		}
		if _, err = fmt.Fprintf(asm.Output, "0x%04x  %v\n", n, in); err != nil {
			return
		}
	}

	return
}

func (asm *Assembler) help() (err error) {
	_, err = io.WriteString(asm.Output, helpText)
	return
}
