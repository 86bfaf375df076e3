package stack_test

import (
	"testing"

	"ippvm/pkg/stack"

	"github.com/stretchr/testify/require"
)

func TestPushPop(t *testing.T) {
	s := stack.New(1, 2)
	s.Push(3)
	require.Equal(t, 3, s.Size())

	for _, want := range []int{3, 2, 1} {
		top, err := s.Peek()
		require.NoError(t, err)
		require.Equal(t, want, top)

		got, err := s.Pop()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	require.Equal(t, 0, s.Size())
}

func TestPopEmpty(t *testing.T) {
	s := stack.New[string]()

	_, err := s.Pop()
	require.ErrorIs(t, err, stack.ErrEmpty)

	_, err = s.Peek()
	require.ErrorIs(t, err, stack.ErrEmpty)
}

func TestArrayIsCopy(t *testing.T) {
	s := stack.New("a", "b")
	arr := s.Array()
	arr[0] = "z"

	require.Equal(t, []string{"a", "b"}, s.Array())
}
