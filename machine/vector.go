package machine

import (
	"math"
)

const (
	VECTOR_COUNT = 256     // Number of vector slots.
	VECTOR_LIMIT = 1 << 24 // Maximum elements in a vector.
)

// Vector is a resizable buffer whose elements all share one Kind.
type Vector struct {
	Kind Kind
	Data []complex128
}

// Create replaces the vector with a zero-filled buffer.
func (vec *Vector) Create(kind Kind, length Value) (err error) {
	if length.IsComplex() {
		err = ErrTypeMismatch
		return
	}
	n := length.Float()
	if math.IsNaN(n) || n < 0 || n > VECTOR_LIMIT {
		err = ErrVectorLength
		return
	}

	vec.Kind = kind
	vec.Data = make([]complex128, int(n))
	return
}

// Len returns the number of elements.
func (vec *Vector) Len() int {
	return len(vec.Data)
}

// Reset discards the contents.
func (vec *Vector) Reset() {
	vec.Kind = KIND_REAL
	vec.Data = nil
}

// offset converts an element index value into a checked slice offset.
func (vec *Vector) offset(at Value) (n int, err error) {
	if at.IsComplex() {
		err = ErrTypeMismatch
		return
	}
	x := at.Float()
	if math.IsNaN(x) || x < 0 || x >= float64(len(vec.Data)) {
		err = ErrIndexRange
		return
	}
	n = int(x)
	return
}

// Store sets the element at index. value must match the vector Kind.
func (vec *Vector) Store(at Value, value Value) (err error) {
	n, err := vec.offset(at)
	if err != nil {
		return
	}
	if value.Kind != vec.Kind {
		err = ErrTypeMismatch
		return
	}
	vec.Data[n] = value.Num
	return
}

// Load returns a copy of the element at index.
func (vec *Vector) Load(at Value) (value Value, err error) {
	n, err := vec.offset(at)
	if err != nil {
		return
	}
	value = Value{Kind: vec.Kind, Num: vec.Data[n]}
	return
}
