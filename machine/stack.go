package machine

const (
	STACK_LIMIT  = 1_000_000 // Maximum operand stack depth
	RETURN_LIMIT = 1 << 16   // Maximum subroutine nesting
)

// Stack is a bounded LIFO. A zero Limit means unbounded.
type Stack[T any] struct {
	Data  []T
	Limit int
}

func (s *Stack[T]) Push(value T) {
	s.Data = append(s.Data, value)
}

func (s *Stack[T]) Pop() (value T, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack[T]) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack[T]) Full() bool {
	return s.Limit > 0 && len(s.Data) >= s.Limit
}

func (s *Stack[T]) Len() int {
	return len(s.Data)
}

func (s *Stack[T]) Peek() (value T, ok bool) {
	return s.Pick(0)
}

// Pick returns the entry depth places below the top without removing it.
func (s *Stack[T]) Pick(depth int) (value T, ok bool) {
	if depth < 0 || depth >= len(s.Data) {
		return
	}

	return s.Data[len(s.Data)-1-depth], true
}

func (s *Stack[T]) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
