package array

import (
	"fmt"
	"io"
	"strings"
)

// Render writes one line per occupied slot, in index order, using the
// array's Format. Empty slots produce no output.
func (a *Array[T]) Render(w io.Writer) error {
	if !a.valid() {
		a.log().Warn("array is not initialized")
		return ErrInvalidHandle
	}

	for i := range a.slots {
		if !a.slots[i].ok {
			continue
		}
		if err := a.renderLine(w, i); err != nil {
			return fmt.Errorf("render %d: %w", i, err)
		}
	}
	return nil
}

func (a *Array[T]) renderLine(w io.Writer, i int) error {
	if a.opts.Format == FormatIndexed {
		if _, err := fmt.Fprintf(w, "[%d]: ", i); err != nil {
			return err
		}
	}
	if err := a.ops.Render(w, a.slots[i].val); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// String renders the array into a string. A nil or freed array yields "<nil>".
func (a *Array[T]) String() string {
	if !a.valid() {
		return "<nil>"
	}
	var sb strings.Builder
	if err := a.Render(&sb); err != nil {
		return fmt.Sprintf("<render error: %v>", err)
	}
	return sb.String()
}
