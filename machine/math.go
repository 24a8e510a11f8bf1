package machine

import (
	"math"
	"math/cmplx"
)

const degree = math.Pi / 180

// Operators that accept either variant.
type unaryOp struct {
	fr func(float64) float64
	fc func(complex128) complex128
}

type binaryOp struct {
	fr func(b, a float64) float64
	fc func(b, a complex128) complex128
}

var unaryOps = map[Op]unaryOp{
	OP_SIN_R:  {math.Sin, cmplx.Sin},
	OP_COS_R:  {math.Cos, cmplx.Cos},
	OP_TAN_R:  {math.Tan, cmplx.Tan},
	OP_ASIN_R: {math.Asin, cmplx.Asin},
	OP_ACOS_R: {math.Acos, cmplx.Acos},
	OP_ATAN_R: {math.Atan, cmplx.Atan},
	OP_SIN_D:  toDegreeIn(math.Sin, cmplx.Sin),
	OP_COS_D:  toDegreeIn(math.Cos, cmplx.Cos),
	OP_TAN_D:  toDegreeIn(math.Tan, cmplx.Tan),
	OP_ASIN_D: toDegreeOut(math.Asin, cmplx.Asin),
	OP_ACOS_D: toDegreeOut(math.Acos, cmplx.Acos),
	OP_ATAN_D: toDegreeOut(math.Atan, cmplx.Atan),

	OP_LOG_E:  {math.Log, cmplx.Log},
	OP_LOG_2:  {math.Log2, func(c complex128) complex128 { return cmplx.Log(c) / math.Ln2 }},
	OP_LOG_10: {math.Log10, cmplx.Log10},
	OP_EXP_E:  {math.Exp, cmplx.Exp},
	OP_EXP_2:  {math.Exp2, func(c complex128) complex128 { return cmplx.Pow(2, c) }},
	OP_EXP_10: {func(x float64) float64 { return math.Pow(10, x) }, func(c complex128) complex128 { return cmplx.Pow(10, c) }},
}

var binaryOps = map[Op]binaryOp{
	OP_ADD: {
		func(b, a float64) float64 { return b + a },
		func(b, a complex128) complex128 { return b + a },
	},
	OP_SUB: {
		func(b, a float64) float64 { return b - a },
		func(b, a complex128) complex128 { return b - a },
	},
	OP_MUL: {
		func(b, a float64) float64 { return b * a },
		func(b, a complex128) complex128 { return b * a },
	},
	OP_DIV: {
		func(b, a float64) float64 { return b / a },
		func(b, a complex128) complex128 { return b / a },
	},
	OP_LOG_X: {
		func(b, a float64) float64 { return math.Log(b) / math.Log(a) },
		func(b, a complex128) complex128 { return cmplx.Log(b) / cmplx.Log(a) },
	},
	OP_EXP_X: {math.Pow, cmplx.Pow},
}

// Operators defined on Real only.
var realUnaryOps = map[Op]func(float64) float64{
	OP_FLOOR: math.Floor,
	OP_CEIL:  math.Ceil,
	OP_ROUND: math.Round,
	OP_NEG:   func(x float64) float64 { return float64(^toU32(x)) },
}

var realBinaryOps = map[Op]func(b, a float64) float64{
	OP_AND: func(b, a float64) float64 { return float64(toU32(b) & toU32(a)) },
	OP_OR:  func(b, a float64) float64 { return float64(toU32(b) | toU32(a)) },
	OP_XOR: func(b, a float64) float64 { return float64(toU32(b) ^ toU32(a)) },
	OP_SHL: func(b, a float64) float64 { return float64(toU32(b) << (toU32(a) & 0x1f)) },
	OP_SHR: func(b, a float64) float64 { return float64(toU32(b) >> (toU32(a) & 0x1f)) },
	OP_GT:  func(b, a float64) float64 { return truth(b > a) },
	OP_LT:  func(b, a float64) float64 { return truth(b < a) },
	OP_GE:  func(b, a float64) float64 { return truth(b >= a) },
	OP_LE:  func(b, a float64) float64 { return truth(b <= a) },
}

func toDegreeIn(fr func(float64) float64, fc func(complex128) complex128) unaryOp {
	return unaryOp{
		func(x float64) float64 { return fr(x * degree) },
		func(c complex128) complex128 { return fc(c * degree) },
	}
}

func toDegreeOut(fr func(float64) float64, fc func(complex128) complex128) unaryOp {
	return unaryOp{
		func(x float64) float64 { return fr(x) / degree },
		func(c complex128) complex128 { return fc(c) / degree },
	}
}

// toU32 truncates toward zero, saturating into the uint32 range.
func toU32(x float64) uint32 {
	switch {
	case math.IsNaN(x), x <= 0:
		return 0
	case x >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(x)
}

func truth(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}
