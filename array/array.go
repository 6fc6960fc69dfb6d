package array

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/joshuapare/adptarray/internal/logger"
)

// slot is one addressable position. ok is false for an empty slot.
type slot[T any] struct {
	val T
	ok  bool
}

// Array is a growable slot array owning opaque elements of type T.
//
// The zero value is not usable; construct with New.
type Array[T any] struct {
	slots      []slot[T] // len(slots) is the logical length
	ops        Ops[T]
	opts       Options
	freed      bool
	writes     int
	overwrites int
}

// New binds ops and returns an empty array.
func New[T any](ops Ops[T], options ...Option) (*Array[T], error) {
	if ops == nil {
		return nil, ErrNilOps
	}

	opts := DefaultOptions()
	for _, o := range options {
		o(&opts)
	}
	if opts.Format == "" {
		opts.Format = FormatIndexed
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	a := &Array[T]{ops: ops, opts: opts}
	if opts.Capacity > a.maxSlots() {
		return nil, fmt.Errorf("%w: capacity %d exceeds %d bytes", ErrAlloc, opts.Capacity, opts.MaxBytes)
	}
	if opts.Capacity > 0 {
		s, err := allocSlots[T](opts.Capacity)
		if err != nil {
			return nil, err
		}
		a.slots = s[:0]
	}

	a.log().Debug("array created", "capacity", opts.Capacity, "maxLen", opts.MaxLen, "format", opts.Format)
	return a, nil
}

// Free destroys every stored element and releases the slot storage.
// It is a no-op on a nil or already freed array.
func (a *Array[T]) Free() {
	if !a.valid() {
		a.log().Debug("free on invalid array ignored")
		return
	}

	destroyed := 0
	for i := range a.slots {
		if a.slots[i].ok {
			a.ops.Destroy(a.slots[i].val)
			destroyed++
		}
	}
	a.log().Debug("array freed", "len", len(a.slots), "destroyed", destroyed)

	a.slots = nil
	a.freed = true
}

// Set stores a duplicate of elem at index, growing the array when index >= Len().
//
// An occupied slot has its previous element destroyed. If growth fails the
// array is left exactly as it was.
func (a *Array[T]) Set(index int, elem T) error {
	if !a.valid() {
		return ErrInvalidHandle
	}
	if index < 0 {
		return fmt.Errorf("set %d: %w", index, ErrOutOfRange)
	}

	if index >= len(a.slots) {
		if err := a.grow(index); err != nil {
			return fmt.Errorf("set %d: %w", index, err)
		}
	}

	dup := a.ops.Duplicate(elem)
	s := &a.slots[index]
	if s.ok {
		a.ops.Destroy(s.val)
		a.overwrites++
	}
	s.val = dup
	s.ok = true
	a.writes++
	return nil
}

// Get returns a duplicate of the element at index.
//
// The error is ErrOutOfRange for an index outside [0, Len()), ErrEmptySlot
// for a slot never written, and ErrInvalidHandle for a nil or freed array.
func (a *Array[T]) Get(index int) (T, error) {
	var zero T
	if !a.valid() {
		return zero, ErrInvalidHandle
	}
	if index < 0 || index >= len(a.slots) {
		return zero, fmt.Errorf("get %d: %w", index, ErrOutOfRange)
	}
	s := a.slots[index]
	if !s.ok {
		return zero, fmt.Errorf("get %d: %w", index, ErrEmptySlot)
	}
	return a.ops.Duplicate(s.val), nil
}

// Has reports whether index addresses an occupied slot. It makes no copy.
func (a *Array[T]) Has(index int) bool {
	if !a.valid() || index < 0 || index >= len(a.slots) {
		return false
	}
	return a.slots[index].ok
}

// Len returns the logical length, or SizeInvalid for a nil or freed array.
// A live array that was never written has length 0.
func (a *Array[T]) Len() int {
	if !a.valid() {
		return SizeInvalid
	}
	return len(a.slots)
}

// Stats describes the array's storage.
type Stats struct {
	Len        int // logical length
	Cap        int // reserved slots
	Occupied   int // slots holding an element
	Writes     int // successful Set calls
	Overwrites int // elements destroyed by Set
}

// Stats returns storage statistics. A nil or freed array reports Len SizeInvalid.
func (a *Array[T]) Stats() Stats {
	if !a.valid() {
		return Stats{Len: SizeInvalid}
	}
	st := Stats{
		Len:        len(a.slots),
		Cap:        cap(a.slots),
		Writes:     a.writes,
		Overwrites: a.overwrites,
	}
	for i := range a.slots {
		if a.slots[i].ok {
			st.Occupied++
		}
	}
	return st
}

func (a *Array[T]) valid() bool {
	return a != nil && !a.freed
}

func (a *Array[T]) log() *slog.Logger {
	if a != nil && a.opts.Logger != nil {
		return a.opts.Logger
	}
	return logger.L
}

// grow extends the logical length so index is the last slot. Slots past the
// old length are empty. Capacity doubles so repeated appends stay amortized O(1).
func (a *Array[T]) grow(index int) error {
	if index >= a.opts.MaxLen {
		return fmt.Errorf("%w: index %d exceeds max length %d", ErrAlloc, index, a.opts.MaxLen)
	}
	limit := min(a.opts.MaxLen, a.maxSlots())
	if index >= limit {
		return fmt.Errorf("%w: index %d exceeds %d bytes of slot storage", ErrAlloc, index, a.opts.MaxBytes)
	}
	n := index + 1

	if n <= cap(a.slots) {
		old := len(a.slots)
		a.slots = a.slots[:n]
		clear(a.slots[old:])
		return nil
	}

	newCap := limit
	if c := cap(a.slots); c <= limit/2 {
		newCap = min(max(n, 2*c), limit)
	}
	s, err := allocSlots[T](newCap)
	if err != nil {
		return err
	}
	copy(s, a.slots)
	a.log().Debug("array grown", "from", len(a.slots), "to", n, "cap", newCap)
	a.slots = s[:n]
	return nil
}

// maxSlots is how many slots fit in MaxBytes.
func (a *Array[T]) maxSlots() int {
	size := int(unsafe.Sizeof(slot[T]{}))
	if size == 0 {
		return a.opts.MaxLen
	}
	return a.opts.MaxBytes / size
}

// allocSlots reports an impossible allocation size as ErrAlloc instead of panicking.
func allocSlots[T any](n int) (s []slot[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("%w: %d slots: %v", ErrAlloc, n, r)
		}
	}()
	return make([]slot[T], n), nil
}
