package uistate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroValueIsIdle(t *testing.T) {
	var s State[[]string]
	assert.True(t, s.IsIdle())
	assert.Equal(t, KindIdle, s.Kind())
	_, ok := s.Data()
	assert.False(t, ok)
}

func TestFromSlice(t *testing.T) {
	t.Run("nil is empty", func(t *testing.T) {
		s := FromSlice[int](nil)
		assert.True(t, s.IsEmpty())
		_, ok := s.Data()
		assert.False(t, ok)
	})

	t.Run("zero length is empty", func(t *testing.T) {
		s := FromSlice([]int{})
		assert.True(t, s.IsEmpty())
	})

	t.Run("non-empty keeps order", func(t *testing.T) {
		s := FromSlice([]int{3, 1, 2})
		data, ok := s.Data()
		assert.True(t, ok)
		assert.Equal(t, []int{3, 1, 2}, data)
	})
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"message kept", errors.New("boom"), "boom"},
		{"nil uses fallback", nil, "unknown error"},
		{"empty message uses fallback", errors.New(""), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FromError[[]int](tt.err, "unknown error")
			assert.True(t, s.IsError())
			assert.Equal(t, tt.want, s.Message())
		})
	}
}

func TestMessageOnlyForError(t *testing.T) {
	assert.Empty(t, Success("x").Message())
	assert.Empty(t, Loading[string]().Message())
}

func TestString(t *testing.T) {
	assert.Equal(t, "loading", Loading[int]().String())
	assert.Equal(t, `error("nope")`, Error[int]("nope").String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
