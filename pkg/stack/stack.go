package stack

import "errors"

// ErrEmpty is returned when popping or peeking an empty stack.
var ErrEmpty = errors.New("stack is empty")

type Stack[T any] struct {
	a []T
}

// New creates a new stack instance holding elm, last element on top
func New[T any](elm ...T) *Stack[T] {
	s := &Stack[T]{a: make([]T, 0, len(elm))}
	s.a = append(s.a, elm...)
	return s
}

// Push adds an element to the top of the stack
func (s *Stack[T]) Push(elm T) {
	s.a = append(s.a, elm)
}

// Pop removes and returns the top element of the stack
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if len(s.a) == 0 {
		return zero, ErrEmpty
	}

	n := len(s.a) - 1
	elm := s.a[n]
	s.a[n] = zero
	s.a = s.a[:n]

	return elm, nil
}

// Peek returns the top element of the stack without removing it
func (s *Stack[T]) Peek() (T, error) {
	if len(s.a) == 0 {
		var zero T
		return zero, ErrEmpty
	}

	return s.a[len(s.a)-1], nil
}

// Size returns the number of elements on the stack
func (s *Stack[T]) Size() int {
	return len(s.a)
}

// Array returns a copy of the stack contents, bottom first
func (s *Stack[T]) Array() []T {
	return append([]T(nil), s.a...)
}
