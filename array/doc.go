// Package array provides an adaptive, index-addressed container for opaque elements.
//
// # Overview
//
// Array[T] maps non-negative integer indices to elements it owns exclusively.
// The container never looks inside an element: duplication, destruction and
// rendering are delegated to an Ops[T] capability set bound at construction.
//
// Writing past the current length grows the array so the written index becomes
// the last slot. Slots skipped over by such a write stay empty until written.
//
// # Ownership
//
//   - Set stores a duplicate of the caller's value; the caller keeps its original.
//   - Get returns a duplicate; the array keeps its own copy.
//   - Overwriting an occupied slot destroys the previous occupant.
//   - Free destroys every occupied slot exactly once and skips empty slots.
//
// # Capability Sets
//
// Ops[T] can be supplied three ways:
//
//	// Function values
//	ops := array.Funcs[[]byte]{
//	    Dup:   bytes.Clone,
//	    Print: func(w io.Writer, b []byte) error { _, err := fmt.Fprintf(w, "%x", b); return err },
//	}
//
//	// Methods on the element type (Clone, Release, Render)
//	ops := array.Methods[*records.Record]()
//
//	// Any type implementing Ops[T]
//	ops := records.IntOps
//
// # Usage Example
//
//	arr, err := array.New[int](records.IntOps)
//	if err != nil {
//	    return err
//	}
//	defer arr.Free()
//
//	if err := arr.Set(3, 42); err != nil {
//	    return err
//	}
//	arr.Len()               // 4
//	_, err = arr.Get(0)     // ErrEmptySlot
//	v, _ := arr.Get(3)      // 42
//	arr.Render(os.Stdout)   // [3]: 42
//
// # Sizes
//
// Len reports the logical length. A live array that was never written reports 0;
// a nil or freed array reports SizeInvalid (-1).
//
// # Rendering
//
// Render writes one line per occupied slot in index order. FormatIndexed (the
// default) prefixes each line with "[i]: ", FormatPlain writes the element alone.
//
// # Thread Safety
//
// Array instances are not thread-safe. Growth replaces the backing storage, so
// callers sharing an Array must serialize every call, reads included.
package array
