package array

import "errors"

var (
	// ErrAlloc indicates that storage for the array or its slots could not be obtained.
	ErrAlloc = errors.New("array: allocation failed")

	// ErrInvalidHandle indicates an operation on a nil or freed array.
	ErrInvalidHandle = errors.New("array: invalid handle")

	// ErrOutOfRange indicates an index outside [0, Len()).
	ErrOutOfRange = errors.New("array: index out of range")

	// ErrEmptySlot indicates a read of a slot that holds no element.
	ErrEmptySlot = errors.New("array: empty slot")

	// ErrNilOps indicates New was called without a capability set.
	ErrNilOps = errors.New("array: nil ops")

	// ErrBadOption indicates an option value that can never be satisfied.
	ErrBadOption = errors.New("array: bad option")
)

// IsAbsent reports whether err means a read found no element: a bad index,
// an empty slot or an invalid handle.
func IsAbsent(err error) bool {
	return errors.Is(err, ErrOutOfRange) ||
		errors.Is(err, ErrEmptySlot) ||
		errors.Is(err, ErrInvalidHandle)
}
