package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	s := &Stack[Value]{}
	assert.True(s.Empty())
	assert.False(s.Full())

	s.Push(Real(12.5))
	assert.False(s.Empty())
	assert.Equal(1, s.Len())
	assert.Equal(Real(12.5), s.Data[0])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	s := &Stack[int]{}
	s.Push(0x1234)
	s.Push(0xABCD)

	val, ok := s.Pop()
	assert.True(ok)
	assert.Equal(0xABCD, val)
	assert.Equal(1, s.Len())

	val, ok = s.Pop()
	assert.True(ok)
	assert.Equal(0x1234, val)
	assert.Equal(0, s.Len())
}

func TestStack_Pop_Empty(t *testing.T) {
	assert := assert.New(t)

	s := &Stack[Value]{}
	val, ok := s.Pop()
	assert.False(ok)
	assert.Equal(Value{}, val)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	s := &Stack[int]{}
	s.Push(1)
	s.Push(2)

	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(2, val)
	assert.Equal(2, s.Len())
}

func TestStack_Pick(t *testing.T) {
	assert := assert.New(t)

	s := &Stack[int]{}
	s.Push(1)
	s.Push(2)
	s.Push(3)

	val, ok := s.Pick(2)
	assert.True(ok)
	assert.Equal(1, val)

	_, ok = s.Pick(3)
	assert.False(ok)

	_, ok = s.Pick(-1)
	assert.False(ok)
}

func TestStack_Full(t *testing.T) {
	assert := assert.New(t)

	s := &Stack[int]{Limit: 4}
	for n := range 4 {
		assert.False(s.Full())
		s.Push(n)
	}
	assert.True(s.Full())

	unbounded := &Stack[int]{}
	for n := range 1000 {
		unbounded.Push(n)
	}
	assert.False(unbounded.Full())
}

func TestStack_Reset(t *testing.T) {
	assert := assert.New(t)

	s := &Stack[int]{}
	s.Reset()
	assert.True(s.Empty())

	s.Push(1)
	s.Push(2)
	s.Reset()
	assert.True(s.Empty())
	assert.Equal(0, s.Len())
}
