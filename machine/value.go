package machine

import (
	"math"
	"math/cmplx"
	"strconv"
)

// Kind is the variant tag of a Value.
type Kind int

const (
	KIND_REAL    = Kind(0) // real
	KIND_COMPLEX = Kind(1) // complex
)

func (k Kind) String() string {
	if k == KIND_COMPLEX {
		return "complex"
	}
	return "real"
}

// Value is the tagged numeric payload of every stack, register and vector slot.
// A Real keeps a zero imaginary part. The zero Value is Real 0.
type Value struct {
	Kind Kind
	Num  complex128
}

// Real creates a real value.
func Real(x float64) Value {
	return Value{Kind: KIND_REAL, Num: complex(x, 0)}
}

// Complex creates a complex value.
func Complex(re, im float64) Value {
	return Value{Kind: KIND_COMPLEX, Num: complex(re, im)}
}

// IsComplex returns true for the Complex variant.
func (v Value) IsComplex() bool {
	return v.Kind == KIND_COMPLEX
}

// Float returns the real part.
func (v Value) Float() float64 {
	return real(v.Num)
}

// Truthy returns true if the value is numerically nonzero.
func (v Value) Truthy() bool {
	return v.Num != 0
}

// Equal compares variant and payload. NaN never equals itself.
func (v Value) Equal(o Value) bool {
	return v.Kind == o.Kind && v.Num == o.Num
}

// promote returns the variant two values combine to.
func promote(a, b Value) Kind {
	if a.IsComplex() || b.IsComplex() {
		return KIND_COMPLEX
	}
	return KIND_REAL
}

// unary applies fr to a Real, or fc to a Complex.
func unary(v Value, fr func(float64) float64, fc func(complex128) complex128) Value {
	if v.IsComplex() {
		return Value{Kind: KIND_COMPLEX, Num: fc(v.Num)}
	}
	return Real(fr(v.Float()))
}

// binary combines b (second from top) with a (top) under the promotion rule.
func binary(b, a Value, fr func(float64, float64) float64, fc func(complex128, complex128) complex128) Value {
	if promote(a, b) == KIND_COMPLEX {
		return Value{Kind: KIND_COMPLEX, Num: fc(b.Num, a.Num)}
	}
	return Real(fr(b.Float(), a.Float()))
}

// Format renders the value with a fixed number of decimals, or the
// shortest exact form when decimals is zero.
func (v Value) Format(decimals int) string {
	if !v.IsComplex() {
		return formatFloat(v.Float(), decimals)
	}

	re, im := real(v.Num), imag(v.Num)
	sign := "+"
	if math.Signbit(im) && !math.IsNaN(im) {
		sign = "-"
		im = -im
	}
	return formatFloat(re, decimals) + sign + formatFloat(im, decimals) + "j"
}

func (v Value) String() string {
	return v.Format(0)
}

func formatFloat(x float64, decimals int) string {
	if decimals > 0 {
		return strconv.FormatFloat(x, 'f', decimals, 64)
	}

	abs := math.Abs(x)
	if x == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// modulus is abs() for both variants.
func modulus(v Value) Value {
	if v.IsComplex() {
		return Real(cmplx.Abs(v.Num))
	}
	return Real(math.Abs(v.Float()))
}
