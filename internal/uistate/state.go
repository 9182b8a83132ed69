// Package uistate provides State, the closed set of display states a
// fetched-data view can be in.
package uistate

import "fmt"

// Kind identifies the variant held by a State.
type Kind int

const (
	KindIdle Kind = iota
	KindLoading
	KindEmpty
	KindSuccess
	KindError
)

// String returns the lowercase variant name.
func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindLoading:
		return "loading"
	case KindEmpty:
		return "empty"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// State is a tagged variant over Idle, Loading, Empty, Success(data) and
// Error(message). The zero value is Idle. Fields are unexported, so a State
// can only be replaced as a whole, never partially updated.
type State[T any] struct {
	kind    Kind
	data    T
	message string
}

// Idle returns the Idle variant.
func Idle[T any]() State[T] {
	return State[T]{kind: KindIdle}
}

// Loading returns the Loading variant.
func Loading[T any]() State[T] {
	return State[T]{kind: KindLoading}
}

// Empty returns the Empty variant. It carries no payload.
func Empty[T any]() State[T] {
	return State[T]{kind: KindEmpty}
}

// Success returns the Success variant holding data.
func Success[T any](data T) State[T] {
	return State[T]{kind: KindSuccess, data: data}
}

// Error returns the Error variant holding a human-readable message.
func Error[T any](message string) State[T] {
	return State[T]{kind: KindError, message: message}
}

// FromSlice maps a fetched list onto Success or Empty.
// A nil or zero-length slice is Empty, never Success([]).
func FromSlice[E any](items []E) State[[]E] {
	if len(items) == 0 {
		return Empty[[]E]()
	}
	return Success(items)
}

// FromError maps a failure onto the Error variant. The message is the
// error text, or fallback when there is none.
func FromError[T any](err error, fallback string) State[T] {
	if err == nil || err.Error() == "" {
		return Error[T](fallback)
	}
	return Error[T](err.Error())
}

// Kind reports which variant s holds.
func (s State[T]) Kind() Kind { return s.kind }

// Data returns the payload and true for Success, the zero value and false otherwise.
func (s State[T]) Data() (T, bool) {
	if s.kind != KindSuccess {
		var zero T
		return zero, false
	}
	return s.data, true
}

// Message returns the error message for Error, "" otherwise.
func (s State[T]) Message() string {
	if s.kind != KindError {
		return ""
	}
	return s.message
}

func (s State[T]) IsIdle() bool    { return s.kind == KindIdle }
func (s State[T]) IsLoading() bool { return s.kind == KindLoading }
func (s State[T]) IsEmpty() bool   { return s.kind == KindEmpty }
func (s State[T]) IsSuccess() bool { return s.kind == KindSuccess }
func (s State[T]) IsError() bool   { return s.kind == KindError }

// String renders the variant for logs.
func (s State[T]) String() string {
	if s.kind == KindError {
		return fmt.Sprintf("error(%q)", s.message)
	}
	return s.kind.String()
}
