package array

import (
	"fmt"
	"io"
)

// Ops is the capability set an Array uses to manage elements it does not understand.
//
// Duplicate must return an independent copy that owns its own resources.
// Destroy must release everything the element owns; it is never called for empty slots.
// Render writes a human-readable form of the element without a trailing newline.
type Ops[T any] interface {
	Duplicate(elem T) T
	Destroy(elem T)
	Render(w io.Writer, elem T) error
}

// Funcs adapts plain functions to Ops.
//
// A nil Dup copies the value as-is, which is only correct for types without
// shared backing storage. A nil Del does nothing. A nil Print uses fmt.Fprint.
type Funcs[T any] struct {
	Dup   func(T) T
	Del   func(T)
	Print func(io.Writer, T) error
}

// Duplicate implements Ops.
func (f Funcs[T]) Duplicate(elem T) T {
	if f.Dup == nil {
		return elem
	}
	return f.Dup(elem)
}

// Destroy implements Ops.
func (f Funcs[T]) Destroy(elem T) {
	if f.Del != nil {
		f.Del(elem)
	}
}

// Render implements Ops.
func (f Funcs[T]) Render(w io.Writer, elem T) error {
	if f.Print == nil {
		_, err := fmt.Fprint(w, elem)
		return err
	}
	return f.Print(w, elem)
}

// Element is implemented by types that manage their own lifecycle.
type Element[T any] interface {
	Clone() T
	Release()
	Render(w io.Writer) error
}

// Methods returns Ops that dispatch to the element's own methods.
func Methods[T Element[T]]() Ops[T] {
	return methodOps[T]{}
}

type methodOps[T Element[T]] struct{}

func (methodOps[T]) Duplicate(elem T) T { return elem.Clone() }

func (methodOps[T]) Destroy(elem T) { elem.Release() }

func (methodOps[T]) Render(w io.Writer, elem T) error { return elem.Render(w) }
