package records

import (
	"fmt"
	"io"
	"strconv"

	"github.com/joshuapare/adptarray/array"
)

// IntOps manages plain integers. Copies are by value; nothing to release.
var IntOps = array.Funcs[int]{
	Print: func(w io.Writer, v int) error {
		_, err := io.WriteString(w, strconv.Itoa(v))
		return err
	},
}

// TextOps manages strings, rendered quoted.
var TextOps = array.Funcs[string]{
	Print: func(w io.Writer, s string) error {
		_, err := fmt.Fprintf(w, "%q", s)
		return err
	},
}

// ParseInt parses a decimal integer element.
func ParseInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("records: bad int %q: %w", s, err)
	}
	return v, nil
}
