package machine

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recorder is a Target that keeps what it is handed without running it.
type recorder struct {
	code    []Instruction
	runs    [][]Instruction
	commits [][]Instruction
}

func (rec *recorder) Len() int {
	return len(rec.code)
}

func (rec *recorder) Run(code []Instruction) error {
	rec.code = append(rec.code, code...)
	rec.runs = append(rec.runs, code)
	return nil
}

func (rec *recorder) Commit(code []Instruction) {
	rec.code = append(rec.code, code...)
	rec.commits = append(rec.commits, code)
}

func (rec *recorder) Listing(addr, end int) []Instruction {
	return slices.Clone(rec.code[addr:min(end, len(rec.code))])
}

func opEqual(t *testing.T, expected, code []Instruction) {
	assert := assert.New(t)

	assert.Equal(len(expected), len(code))
	if len(expected) == len(code) {
		for n := range len(expected) {
			assert.Equal(expected[n], code[n], "0x%04x", n)
		}
	}
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	rec := &recorder{}
	asm := NewAssembler(rec, nil)

	assert.False(asm.Verbose)
	assert.False(asm.Defining())
	assert.Equal(0, len(asm.Label))

	err := asm.Line("")
	assert.NoError(err)
	assert.Equal(0, len(rec.runs))

	err = asm.Line("   # only a comment")
	assert.NoError(err)
	assert.Equal(0, len(rec.runs))
}

func TestAssemblerStatement(t *testing.T) {
	assert := assert.New(t)

	rec := &recorder{}
	asm := NewAssembler(rec, nil)

	err := asm.Line("10 6 4 - / p # comment + +")
	assert.NoError(err)
	if !assert.Equal(1, len(rec.runs)) {
		return
	}

	expected := []Instruction{
		MakeLiteral(Real(10)),
		MakeLiteral(Real(6)),
		MakeLiteral(Real(4)),
		Make(OP_SUB),
		Make(OP_DIV),
		Make(OP_PRINT),
	}
	opEqual(t, expected, rec.runs[0])
	assert.Equal(0, len(asm.Pending))
}

func TestAssemblerLiterals(t *testing.T) {
	table := []struct {
		line     string
		expected []Instruction
	}{
		{"-2.5", []Instruction{MakeLiteral(Real(-2.5))}},
		{"1e3", []Instruction{MakeLiteral(Real(1000))}},
		{"4j", []Instruction{MakeLiteral(Complex(0, 4))}},
		{"3 4j", []Instruction{MakeLiteral(Complex(3, 4))}},
		{"3 -4j", []Instruction{MakeLiteral(Complex(3, -4))}},
		{"1 2 3j", []Instruction{MakeLiteral(Real(1)), MakeLiteral(Complex(2, 3))}},
		{"1 dup 2j", []Instruction{MakeLiteral(Real(1)), Make(OP_DUP), MakeLiteral(Complex(0, 2))}},
		{"1j 2j", []Instruction{MakeLiteral(Complex(0, 1)), MakeLiteral(Complex(0, 2))}},
	}

	for _, entry := range table {
		rec := &recorder{}
		asm := NewAssembler(rec, nil)
		err := asm.Line(entry.line)
		assert.NoError(t, err, entry.line)
		if assert.Equal(t, 1, len(rec.runs), entry.line) {
			opEqual(t, entry.expected, rec.runs[0])
		}
	}
}

func TestAssemblerIndex(t *testing.T) {
	assert := assert.New(t)

	rec := &recorder{}
	asm := NewAssembler(rec, nil)

	err := asm.Line("42 7 save 7 load 255 vlen 0 cvec")
	assert.NoError(err)

	expected := []Instruction{
		MakeLiteral(Real(42)),
		MakeIndexed(OP_SAVE, 7),
		MakeIndexed(OP_LOAD, 7),
		MakeIndexed(OP_VLEN, 255),
		MakeIndexed(OP_CVEC, 0),
	}
	opEqual(t, expected, rec.code)
}

func TestAssemblerIndexErrors(t *testing.T) {
	table := []struct {
		line     string
		expected error
	}{
		{"save", ErrIndexNeeded},
		{"7 dup save", ErrIndexNeeded},
		{"3j load", ErrIndexNeeded},
		{"2.5 save", ErrIndexRange},
		{"256 load", ErrIndexRange},
		{"-1 vlen", ErrIndexRange},
		{"7 [ save", ErrIndexNeeded},
	}

	for _, entry := range table {
		rec := &recorder{}
		asm := NewAssembler(rec, nil)
		err := asm.Line(entry.line)
		assert.ErrorIs(t, err, entry.expected, entry.line)

		var syntax *ErrSyntax
		if assert.True(t, errors.As(err, &syntax), entry.line) {
			assert.Equal(t, entry.line[strings.LastIndex(entry.line, " ")+1:], syntax.Token)
		}
	}
}

func TestAssemblerBadToken(t *testing.T) {
	assert := assert.New(t)

	rec := &recorder{}
	asm := NewAssembler(rec, nil)

	err := asm.Line("1 2 frobnicate 3 +")
	var unknown ErrWordUnknown
	assert.True(errors.As(err, &unknown))
	assert.Equal(ErrWordUnknown("frobnicate"), unknown)

	// Code before the fault is still run; the rest of the line is not.
	if assert.Equal(1, len(rec.runs)) {
		opEqual(t, []Instruction{MakeLiteral(Real(1)), MakeLiteral(Real(2))}, rec.runs[0])
	}

	err = asm.Line("1.2.3")
	var number ErrParseNumber
	assert.True(errors.As(err, &number))
	assert.Equal("'1.2.3' is not a number", err.Error())
}

func TestAssemblerSubroutine(t *testing.T) {
	assert := assert.New(t)

	rec := &recorder{}
	asm := NewAssembler(rec, nil)

	err := asm.Line("1 drop")
	assert.NoError(err)

	err = asm.Line(": sq dup * ;")
	assert.NoError(err)
	assert.False(asm.Defining())
	assert.Equal(2, asm.Label["sq"])
	if assert.Equal(1, len(rec.commits)) {
		opEqual(t, []Instruction{Make(OP_DUP), Make(OP_MUL), Make(OP_RET)}, rec.commits[0])
	}

	err = asm.Line("5 sq")
	assert.NoError(err)
	if assert.Equal(2, len(rec.runs)) {
		opEqual(t, []Instruction{MakeLiteral(Real(5)), MakeCall(2)}, rec.runs[1])
	}

	assert.Equal([]string{"sq"}, slices.Collect(asm.Words()))
}

func TestAssemblerSubroutineMultiline(t *testing.T) {
	assert := assert.New(t)

	rec := &recorder{}
	asm := NewAssembler(rec, nil)

	assert.NoError(asm.Line("3 : cube"))
	assert.True(asm.Defining())
	// The statement before ':' runs before the definition starts.
	if assert.Equal(1, len(rec.runs)) {
		opEqual(t, []Instruction{MakeLiteral(Real(3))}, rec.runs[0])
	}
	assert.Equal(1, asm.Label["cube"])

	assert.NoError(asm.Line("dup dup"))
	assert.NoError(asm.Line("* *"))
	assert.Equal(0, len(rec.commits))
	assert.Equal(1, len(rec.runs))

	assert.NoError(asm.Line("; cube"))
	assert.False(asm.Defining())
	if assert.Equal(1, len(rec.commits)) {
		opEqual(t, []Instruction{Make(OP_DUP), Make(OP_DUP), Make(OP_MUL), Make(OP_MUL), Make(OP_RET)}, rec.commits[0])
	}
	if assert.Equal(2, len(rec.runs)) {
		opEqual(t, []Instruction{MakeCall(1)}, rec.runs[1])
	}
}

func TestAssemblerSubroutineErrors(t *testing.T) {
	table := []struct {
		line     string
		expected error
	}{
		{": dup ;", ErrNameInvalid},
		{": 5x ;", ErrNameInvalid},
		{": save ;", ErrNameInvalid},
		{": [ ;", ErrNameInvalid},
		{": help ;", ErrNameInvalid},
		{";", ErrDefinitionLonely},
		{": a : b ;", ErrDefinitionNesting},
	}

	for _, entry := range table {
		rec := &recorder{}
		asm := NewAssembler(rec, nil)
		err := asm.Line(entry.line)
		assert.ErrorIs(t, err, entry.expected, entry.line)
	}
}

func TestAssemblerLoop(t *testing.T) {
	assert := assert.New(t)

	rec := &recorder{}
	asm := NewAssembler(rec, nil)

	assert.NoError(asm.Line("1 2 drop drop"))
	assert.NoError(asm.Line("10 [ 1 - dup ]"))

	expected := []Instruction{
		MakeLiteral(Real(10)),
		MakeLiteral(Real(1)),
		Make(OP_SUB),
		Make(OP_DUP),
		MakeJnz(5),
	}
	if assert.Equal(2, len(rec.runs)) {
		opEqual(t, expected, rec.runs[1])
	}
	assert.True(asm.Loop.Empty())
}

func TestAssemblerLoopNested(t *testing.T) {
	assert := assert.New(t)

	rec := &recorder{}
	asm := NewAssembler(rec, nil)

	assert.NoError(asm.Line("[ [ 0 ] 0 ]"))

	expected := []Instruction{
		MakeLiteral(Real(0)),
		MakeJnz(0),
		MakeLiteral(Real(0)),
		MakeJnz(0),
	}
	opEqual(t, expected, rec.code)

	err := asm.Line("]")
	assert.ErrorIs(err, ErrLoopUnbalanced)
}

func TestAssemblerAbort(t *testing.T) {
	assert := assert.New(t)

	rec := &recorder{}
	asm := NewAssembler(rec, nil)

	assert.NoError(asm.Line(": half [ 2 /"))
	assert.True(asm.Defining())
	assert.Equal(1, asm.Loop.Len())

	asm.Abort()
	assert.False(asm.Defining())
	assert.True(asm.Loop.Empty())
	assert.Equal(0, len(asm.Pending))
	_, ok := asm.Label["half"]
	assert.False(ok)
}

func TestAssemblerAbortRebind(t *testing.T) {
	assert := assert.New(t)

	rec := &recorder{}
	asm := NewAssembler(rec, nil)

	assert.NoError(asm.Line(": sq dup * ;"))
	assert.Equal(0, asm.Label["sq"])

	assert.NoError(asm.Line(": sq dup"))
	assert.Equal(3, asm.Label["sq"])

	asm.Abort()
	assert.Equal(0, asm.Label["sq"], "earlier binding is restored")
}

func TestAssemblerFaultBeforeDefinition(t *testing.T) {
	assert := assert.New(t)

	fault := errors.New("run fault")
	rec := &failing{err: fault}
	asm := NewAssembler(rec, nil)

	err := asm.Line("1 : one 1 ; one")
	assert.ErrorIs(err, fault)
	assert.Equal(1, asm.Label["one"])
	if assert.Equal(1, len(rec.commits)) {
		opEqual(t, []Instruction{MakeLiteral(Real(1)), Make(OP_RET)}, rec.commits[0])
	}
}

// failing is a recorder whose runs always fault.
type failing struct {
	recorder
	err error
}

func (rec *failing) Run(code []Instruction) error {
	rec.recorder.Run(code)
	return rec.err
}

func TestAssemblerDirectives(t *testing.T) {
	assert := assert.New(t)

	rec := &recorder{}
	out := &bytes.Buffer{}
	asm := NewAssembler(rec, out)

	assert.NoError(asm.Line("dsr"))
	assert.Equal("no subroutines; define one with ': NAME ... ;'\n", out.String())

	assert.NoError(asm.Line(": b drop ;"))
	assert.NoError(asm.Line(": a dup ;"))
	out.Reset()
	assert.NoError(asm.Line("dumpsr"))
	assert.Equal("0x0000 b\n0x0002 a\n", out.String())

	out.Reset()
	assert.NoError(asm.Line("help"))
	assert.True(strings.HasPrefix(out.String(), "RPN calculator."))

	out.Reset()
	assert.NoError(asm.Line("dumpprog"))
	assert.Equal("b:\n0x0000  drop\n0x0001  ret\na:\n0x0002  dup\n0x0003  ret\n", out.String())

	// Directives emit no code.
	assert.Equal(0, len(rec.runs))
}
