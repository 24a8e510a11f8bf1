package machine

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

const (
	REGISTER_COUNT = 256 // Number of registers.
	PRECISION_MAX  = 17  // Largest print precision.
)

// Machine is the interpreter context for one calculator session.
//
// All fields are owned by the goroutine that calls Run. Interrupt is the
// only method that may be called concurrently.
type Machine struct {
	Verbose bool      // Set to enable verbose tracing.
	Output  io.Writer // Print and dump output.

	Program   Program                // Every instruction ever committed.
	Pc        int                    // Current program counter.
	Stack     Stack[Value]           // Operand stack.
	Return    Stack[int]             // Return addresses of active calls.
	Register  [REGISTER_COUNT]Value  // Register bank.
	Vector    [VECTOR_COUNT]Vector   // Vector bank.
	Precision int                    // Print decimals, 0 for shortest form.

	cancel atomic.Bool
}

// NewMachine creates a machine that prints to output.
func NewMachine(output io.Writer) (m *Machine) {
	if output == nil {
		output = io.Discard
	}

	m = &Machine{
		Output: output,
	}
	m.Stack.Limit = STACK_LIMIT
	m.Return.Limit = RETURN_LIMIT

	return
}

// Interrupt requests that the running loop stop at its next back-edge.
func (m *Machine) Interrupt() {
	m.cancel.Store(true)
}

// Interrupting returns true while an interrupt request is unobserved.
func (m *Machine) Interrupting() bool {
	return m.cancel.Load()
}

// Len returns the address of the next committed instruction.
func (m *Machine) Len() int {
	return m.Program.Len()
}

// Listing returns a copy of the committed code from addr up to end.
func (m *Machine) Listing(addr, end int) []Instruction {
	return m.Program.Listing(addr, end)
}

// Commit appends code to the program without executing it.
func (m *Machine) Commit(code []Instruction) {
	m.Program.Append(code...)
	m.Pc = m.Program.Len()
}

// Run appends code to the program, then executes from the program
// counter through the end of the program.
// On a fault the rest of the program is skipped and the return stack
// is dropped; all other state keeps its partial mutations.
func (m *Machine) Run(code []Instruction) (err error) {
	m.Program.Append(code...)

	defer func() {
		if err != nil {
			m.Return.Reset()
		}
		m.Pc = m.Program.Len()
	}()

	for m.Pc < m.Program.Len() {
		err = m.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Tick executes the instruction at the program counter.
func (m *Machine) Tick() (err error) {
	in, ok := m.Program.Fetch(m.Pc)
	if !ok {
		err = &ErrInstruction{Pc: m.Pc, Err: ErrAddress}
		return
	}

	return m.Execute(in)
}

// Execute executes a single decoded instruction at the program counter.
func (m *Machine) Execute(in Instruction) (err error) {
	pc := m.Pc
	defer func() {
		if err != nil {
			err = &ErrInstruction{Pc: pc, Instruction: in, Err: err}
		}
	}()

	if m.Verbose {
		log.Debug().Int("pc", pc).Stringer("op", in).Int("depth", m.Stack.Len()).Msg("exec")
	}

	next := pc + 1

	switch in.Op {
	case OP_LITERAL:
		err = m.push(in.Value)
	case OP_CALL:
		if m.Return.Full() {
			err = ErrReturnFull
			return
		}
		m.Return.Push(pc)
		next = in.Addr
	case OP_RET:
		ret, ok := m.Return.Pop()
		if !ok {
			err = ErrReturnEmpty
			return
		}
		next = ret + 1
	case OP_JNZ:
		var cond Value
		cond, err = m.pop()
		if err != nil {
			return
		}
		if m.cancel.CompareAndSwap(true, false) {
			err = ErrInterrupted
			return
		}
		if cond.Truthy() {
			next = in.Addr
		}

	case OP_DUP:
		err = m.pick(0)
	case OP_OVER:
		err = m.pick(1)
	case OP_DROP:
		_, err = m.pop()
	case OP_SWAP:
		if err = m.need(2); err != nil {
			return
		}
		d, n := m.Stack.Data, m.Stack.Len()
		d[n-2], d[n-1] = d[n-1], d[n-2]
	case OP_ROT:
		if err = m.need(3); err != nil {
			return
		}
		d, n := m.Stack.Data, m.Stack.Len()
		d[n-3], d[n-2], d[n-1] = d[n-2], d[n-1], d[n-3]
	case OP_CLEAR:
		m.Stack.Reset()
	case OP_DUMP_STACK:
		words := make([]string, 0, m.Stack.Len())
		for _, v := range m.Stack.Data {
			words = append(words, v.Format(m.Precision))
		}
		_, err = fmt.Fprintf(m.Output, "stack: [%v]\n", strings.Join(words, " "))

	case OP_ABS:
		var v Value
		if v, err = m.pop(); err == nil {
			err = m.push(modulus(v))
		}
	case OP_EQ:
		var b, a Value
		if b, a, err = m.pop2(); err == nil {
			err = m.push(Real(truth(b.Num == a.Num)))
		}
	case OP_REAL:
		var v Value
		if v, err = m.pop(); err == nil {
			err = m.push(Real(real(v.Num)))
		}
	case OP_IMAG:
		var v Value
		if v, err = m.pop(); err == nil {
			err = m.push(Real(imag(v.Num)))
		}
	case OP_R2C:
		var re, im float64
		if re, im, err = m.pop2Real(); err == nil {
			err = m.push(Complex(re, im))
		}
	case OP_C2R:
		var v Value
		if v, err = m.pop(); err != nil {
			return
		}
		if err = m.push(Real(real(v.Num))); err != nil {
			return
		}
		err = m.push(Real(imag(v.Num)))

	case OP_SAVE:
		var v Value
		if v, err = m.pop(); err == nil {
			m.Register[in.Index] = v
		}
	case OP_LOAD:
		err = m.push(m.Register[in.Index])
	case OP_CREG:
		m.Register[in.Index] = Value{}
	case OP_CLREGS:
		clear(m.Register[:])
	case OP_DUMP_REG:
		for n, r := range m.Register {
			if r.Equal(Value{}) {
				continue
			}
			_, err = fmt.Fprintf(m.Output, "reg %3d: %v\n", n, r.Format(m.Precision))
			if err != nil {
				return
			}
		}

	case OP_VREAL, OP_VCPLX:
		kind := KIND_REAL
		if in.Op == OP_VCPLX {
			kind = KIND_COMPLEX
		}
		var length Value
		if length, err = m.top(0); err != nil {
			return
		}
		if err = m.Vector[in.Index].Create(kind, length); err == nil {
			m.Stack.Pop()
		}
	case OP_VSAVE:
		var at, v Value
		if at, err = m.top(0); err != nil {
			return
		}
		if v, err = m.top(1); err != nil {
			return
		}
		if err = m.Vector[in.Index].Store(at, v); err == nil {
			m.Stack.Pop()
			m.Stack.Pop()
		}
	case OP_VLOAD:
		var at, v Value
		if at, err = m.top(0); err != nil {
			return
		}
		if v, err = m.Vector[in.Index].Load(at); err == nil {
			m.Stack.Data[m.Stack.Len()-1] = v
		}
	case OP_VLEN:
		err = m.push(Real(float64(m.Vector[in.Index].Len())))
	case OP_CVEC:
		m.Vector[in.Index].Reset()
	case OP_CLVECS:
		for n := range m.Vector {
			m.Vector[n].Reset()
		}
	case OP_DUMP_VEC:
		for n, vec := range m.Vector {
			if vec.Len() == 0 {
				continue
			}
			_, err = fmt.Fprintf(m.Output, "vec %3d: %v len %d\n", n, vec.Kind, vec.Len())
			if err != nil {
				return
			}
		}

	case OP_PRECISION:
		var x float64
		if x, err = m.popReal(); err != nil {
			return
		}
		switch {
		case math.IsNaN(x), x <= 0:
			m.Precision = 0
		case x >= PRECISION_MAX:
			m.Precision = PRECISION_MAX
		default:
			m.Precision = int(x)
		}
	case OP_GET_PRECISION:
		err = m.push(Real(float64(m.Precision)))
	case OP_PRINT:
		var v Value
		if v, err = m.top(0); err != nil {
			return
		}
		_, err = fmt.Fprintln(m.Output, v.Format(m.Precision))

	case OP_QUIT:
		err = ErrQuit

	default:
		err = m.compute(in.Op)
	}

	if err != nil {
		return
	}

	m.Pc = next

	return
}

// compute executes the table driven numeric operators.
func (m *Machine) compute(op Op) (err error) {
	if uop, ok := unaryOps[op]; ok {
		var v Value
		if v, err = m.pop(); err == nil {
			err = m.push(unary(v, uop.fr, uop.fc))
		}
		return
	}

	if bop, ok := binaryOps[op]; ok {
		var b, a Value
		if b, a, err = m.pop2(); err == nil {
			err = m.push(binary(b, a, bop.fr, bop.fc))
		}
		return
	}

	if fr, ok := realUnaryOps[op]; ok {
		var x float64
		if x, err = m.popReal(); err == nil {
			err = m.push(Real(fr(x)))
		}
		return
	}

	if fr, ok := realBinaryOps[op]; ok {
		var b, a float64
		if b, a, err = m.pop2Real(); err == nil {
			err = m.push(Real(fr(b, a)))
		}
		return
	}

	err = ErrOpcode
	return
}

// need checks that the operand stack holds at least n values.
func (m *Machine) need(n int) error {
	if m.Stack.Len() < n {
		return ErrStackEmpty
	}
	return nil
}

// top returns the value depth places below the top of the stack.
func (m *Machine) top(depth int) (v Value, err error) {
	v, ok := m.Stack.Pick(depth)
	if !ok {
		err = ErrStackEmpty
	}
	return
}

// pick pushes a copy of the value depth places below the top.
func (m *Machine) pick(depth int) (err error) {
	v, err := m.top(depth)
	if err != nil {
		return
	}
	return m.push(v)
}

func (m *Machine) push(v Value) error {
	if m.Stack.Full() {
		return ErrStackFull
	}
	m.Stack.Push(v)
	return nil
}

func (m *Machine) pop() (v Value, err error) {
	v, ok := m.Stack.Pop()
	if !ok {
		err = ErrStackEmpty
	}
	return
}

// pop2 pops the top (a) and second (b) values, or neither.
func (m *Machine) pop2() (b, a Value, err error) {
	if err = m.need(2); err != nil {
		return
	}
	a, _ = m.Stack.Pop()
	b, _ = m.Stack.Pop()
	return
}

// popReal pops a Real; a Complex is left in place.
func (m *Machine) popReal() (x float64, err error) {
	v, err := m.top(0)
	if err != nil {
		return
	}
	if v.IsComplex() {
		err = ErrTypeMismatch
		return
	}
	m.Stack.Pop()
	x = v.Float()
	return
}

// pop2Real pops two Reals, or neither.
func (m *Machine) pop2Real() (b, a float64, err error) {
	if err = m.need(2); err != nil {
		return
	}
	vb, _ := m.Stack.Pick(1)
	va, _ := m.Stack.Pick(0)
	if va.IsComplex() || vb.IsComplex() {
		err = ErrTypeMismatch
		return
	}
	m.Stack.Pop()
	m.Stack.Pop()
	b, a = vb.Float(), va.Float()
	return
}
