package machine

import (
	"fmt"
	"iter"
	"maps"
)

// Op is an instruction operation tag.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_LITERAL       = Op(0)  // literal
	OP_CALL          = Op(1)  // call
	OP_RET           = Op(2)  // ret
	OP_JNZ           = Op(3)  // jnz
	OP_DUP           = Op(4)  // dup
	OP_DROP          = Op(5)  // drop
	OP_OVER          = Op(6)  // over
	OP_ROT           = Op(7)  // rot
	OP_SWAP          = Op(8)  // swap
	OP_CLEAR         = Op(9)  // clear
	OP_DUMP_STACK    = Op(10) // dumpstack
	OP_ADD           = Op(11) // add
	OP_SUB           = Op(12) // sub
	OP_MUL           = Op(13) // mul
	OP_DIV           = Op(14) // div
	OP_AND           = Op(15) // and
	OP_OR            = Op(16) // or
	OP_XOR           = Op(17) // xor
	OP_NEG           = Op(18) // neg
	OP_SHL           = Op(19) // shl
	OP_SHR           = Op(20) // shr
	OP_ABS           = Op(21) // abs
	OP_FLOOR         = Op(22) // floor
	OP_CEIL          = Op(23) // ceil
	OP_ROUND         = Op(24) // round
	OP_COS_R         = Op(25) // cosr
	OP_SIN_R         = Op(26) // sinr
	OP_TAN_R         = Op(27) // tanr
	OP_COS_D         = Op(28) // cosd
	OP_SIN_D         = Op(29) // sind
	OP_TAN_D         = Op(30) // tand
	OP_ACOS_R        = Op(31) // acosr
	OP_ASIN_R        = Op(32) // asinr
	OP_ATAN_R        = Op(33) // atanr
	OP_ACOS_D        = Op(34) // acosd
	OP_ASIN_D        = Op(35) // asind
	OP_ATAN_D        = Op(36) // atand
	OP_LOG_E         = Op(37) // loge
	OP_LOG_2         = Op(38) // log2
	OP_LOG_10        = Op(39) // log10
	OP_LOG_X         = Op(40) // logx
	OP_EXP_E         = Op(41) // expe
	OP_EXP_2         = Op(42) // exp2
	OP_EXP_10        = Op(43) // exp10
	OP_EXP_X         = Op(44) // expx
	OP_GT            = Op(45) // gt
	OP_LT            = Op(46) // lt
	OP_GE            = Op(47) // ge
	OP_LE            = Op(48) // le
	OP_EQ            = Op(49) // eq
	OP_REAL          = Op(50) // real
	OP_IMAG          = Op(51) // imag
	OP_R2C           = Op(52) // r2c
	OP_C2R           = Op(53) // c2r
	OP_SAVE          = Op(54) // save
	OP_LOAD          = Op(55) // load
	OP_CREG          = Op(56) // creg
	OP_CLREGS        = Op(57) // clregs
	OP_DUMP_REG      = Op(58) // dumpreg
	OP_VREAL         = Op(59) // vreal
	OP_VCPLX         = Op(60) // vcplx
	OP_VSAVE         = Op(61) // vsave
	OP_VLOAD         = Op(62) // vload
	OP_VLEN          = Op(63) // vlen
	OP_CVEC          = Op(64) // cvec
	OP_CLVECS        = Op(65) // clvecs
	OP_DUMP_VEC      = Op(66) // dumpvec
	OP_PRECISION     = Op(67) // precision
	OP_GET_PRECISION = Op(68) // getprecision
	OP_PRINT         = Op(69) // print
	OP_QUIT          = Op(70) // quit
)

// Instruction is a single decoded machine instruction.
// Only the operand field that matches the Op is meaningful.
type Instruction struct {
	Op    Op
	Addr  int   // OP_CALL and OP_JNZ target.
	Index uint8 // Register or vector slot.
	Value Value // OP_LITERAL payload.
}

// Make creates an instruction with no operand.
func Make(op Op) Instruction {
	return Instruction{Op: op}
}

// MakeLiteral creates an instruction that pushes value.
func MakeLiteral(value Value) Instruction {
	return Instruction{Op: OP_LITERAL, Value: value}
}

// MakeCall creates a subroutine call to addr.
func MakeCall(addr int) Instruction {
	return Instruction{Op: OP_CALL, Addr: addr}
}

// MakeJnz creates a conditional backward jump to addr.
func MakeJnz(addr int) Instruction {
	return Instruction{Op: OP_JNZ, Addr: addr}
}

// MakeIndexed creates a register or vector instruction for slot index.
func MakeIndexed(op Op, index uint8) Instruction {
	return Instruction{Op: op, Index: index}
}

// Indexed returns true if the Op takes a register or vector slot operand.
func (op Op) Indexed() bool {
	switch op {
	case OP_SAVE, OP_LOAD, OP_CREG,
		OP_VREAL, OP_VCPLX, OP_VSAVE, OP_VLOAD, OP_VLEN, OP_CVEC:
		return true
	}
	return false
}

// String returns the assembly language representation of this instruction.
func (in Instruction) String() string {
	switch {
	case in.Op == OP_LITERAL:
		return fmt.Sprintf("%v %v", in.Op, in.Value)
	case in.Op == OP_CALL, in.Op == OP_JNZ:
		return fmt.Sprintf("%v 0x%04x", in.Op, in.Addr)
	case in.Op.Indexed():
		return fmt.Sprintf("%v %d", in.Op, in.Index)
	}
	return in.Op.String()
}

// opMap maps plain mnemonics, and their aliases, to operations.
var opMap = map[string]Op{
	"dup":       OP_DUP,
	"drop":      OP_DROP,
	"over":      OP_OVER,
	"rot":       OP_ROT,
	"swap":      OP_SWAP,
	"clear":     OP_CLEAR,
	"dumpstack": OP_DUMP_STACK,
	"ds":        OP_DUMP_STACK,

	"+":     OP_ADD,
	"add":   OP_ADD,
	"-":     OP_SUB,
	"sub":   OP_SUB,
	"*":     OP_MUL,
	"mul":   OP_MUL,
	"/":     OP_DIV,
	"div":   OP_DIV,
	"and":   OP_AND,
	"or":    OP_OR,
	"xor":   OP_XOR,
	"neg":   OP_NEG,
	"shl":   OP_SHL,
	"shr":   OP_SHR,
	"abs":   OP_ABS,
	"floor": OP_FLOOR,
	"ceil":  OP_CEIL,
	"round": OP_ROUND,

	"cosr":  OP_COS_R,
	"sinr":  OP_SIN_R,
	"tanr":  OP_TAN_R,
	"cosd":  OP_COS_D,
	"sind":  OP_SIN_D,
	"tand":  OP_TAN_D,
	"acosr": OP_ACOS_R,
	"asinr": OP_ASIN_R,
	"atanr": OP_ATAN_R,
	"acosd": OP_ACOS_D,
	"asind": OP_ASIN_D,
	"atand": OP_ATAN_D,

	"loge":  OP_LOG_E,
	"log2":  OP_LOG_2,
	"log10": OP_LOG_10,
	"logx":  OP_LOG_X,
	"expe":  OP_EXP_E,
	"exp2":  OP_EXP_2,
	"exp10": OP_EXP_10,
	"expx":  OP_EXP_X,

	">":  OP_GT,
	"gt": OP_GT,
	"<":  OP_LT,
	"lt": OP_LT,
	">=": OP_GE,
	"ge": OP_GE,
	"<=": OP_LE,
	"le": OP_LE,
	"=":  OP_EQ,
	"eq": OP_EQ,

	"real": OP_REAL,
	"imag": OP_IMAG,
	"r2c":  OP_R2C,
	"c2r":  OP_C2R,

	"clregs":  OP_CLREGS,
	"dumpreg": OP_DUMP_REG,
	"dr":      OP_DUMP_REG,
	"clvecs":  OP_CLVECS,
	"dumpvec": OP_DUMP_VEC,
	"dv":      OP_DUMP_VEC,

	"precision":    OP_PRECISION,
	"k":            OP_PRECISION,
	"frdigit":      OP_PRECISION,
	"getprecision": OP_GET_PRECISION,
	"K":            OP_GET_PRECISION,
	"print":        OP_PRINT,
	"p":            OP_PRINT,

	"quit": OP_QUIT,
	"q":    OP_QUIT,
	"bye":  OP_QUIT,
	"exit": OP_QUIT,
}

// indexMap maps mnemonics that consume the preceding literal as a slot index.
var indexMap = map[string]Op{
	"save":    OP_SAVE,
	"load":    OP_LOAD,
	"creg":    OP_CREG,
	"vreal":   OP_VREAL,
	"vcreate": OP_VREAL,
	"vcplx":   OP_VCPLX,
	"vsave":   OP_VSAVE,
	"vload":   OP_VLOAD,
	"vlen":    OP_VLEN,
	"cvec":    OP_CVEC,
}

// Mnemonics returns every instruction mnemonic and alias.
func Mnemonics() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, m := range []map[string]Op{opMap, indexMap} {
			for word := range maps.Keys(m) {
				if !yield(word) {
					return
				}
			}
		}
	}
}
