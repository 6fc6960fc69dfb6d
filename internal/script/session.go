package script

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/adptarray/array"
	"github.com/joshuapare/adptarray/records"
)

// Kind selects the element type a script operates on.
type Kind string

const (
	KindInt    Kind = "int"
	KindText   Kind = "text"
	KindRecord Kind = "record"
)

// session hides the element type from the runner.
type session interface {
	set(index int, arg string) error
	get(index int) (string, error)
	size() int
	print(w io.Writer) error
	reset() error
	free()
}

type typedSession[T any] struct {
	arr   *array.Array[T]
	ops   array.Ops[T]
	opts  []array.Option
	parse func(string) (T, error)
}

func newTypedSession[T any](ops array.Ops[T], parse func(string) (T, error), opts []array.Option) (*typedSession[T], error) {
	s := &typedSession[T]{ops: ops, opts: opts, parse: parse}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func newSession(kind Kind, opts []array.Option) (session, error) {
	switch kind {
	case KindInt, "":
		return newTypedSession[int](records.IntOps, records.ParseInt, opts)
	case KindText:
		return newTypedSession[string](records.TextOps, func(s string) (string, error) { return s, nil }, opts)
	case KindRecord:
		return newTypedSession[*records.Record](records.RecordOps, records.ParseRecord, opts)
	}
	return nil, fmt.Errorf("script: unknown kind %q", kind)
}

// set parses arg into a temporary element, stores it, then releases the temporary.
func (s *typedSession[T]) set(index int, arg string) error {
	v, err := s.parse(arg)
	if err != nil {
		return err
	}
	defer s.ops.Destroy(v)
	return s.arr.Set(index, v)
}

// get renders the caller-owned copy and releases it.
func (s *typedSession[T]) get(index int) (string, error) {
	v, err := s.arr.Get(index)
	if err != nil {
		return "", err
	}
	defer s.ops.Destroy(v)

	var sb strings.Builder
	if err := s.ops.Render(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (s *typedSession[T]) size() int { return s.arr.Len() }

func (s *typedSession[T]) print(w io.Writer) error { return s.arr.Render(w) }

func (s *typedSession[T]) reset() error {
	arr, err := array.New[T](s.ops, s.opts...)
	if err != nil {
		return err
	}
	s.arr.Free()
	s.arr = arr
	return nil
}

func (s *typedSession[T]) free() { s.arr.Free() }
