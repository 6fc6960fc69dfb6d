// Package records provides element types ready to be stored in an array.Array.
package records

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/joshuapare/adptarray/array"
)

// ErrBadRecord indicates text that cannot be parsed as a Record.
var ErrBadRecord = errors.New("records: bad record")

// Record is a named row with an identity and a set of tags.
// Tags is owned storage, so copies must not share it.
type Record struct {
	ID       uuid.UUID
	Name     string
	Tags     []string
	released bool
}

// NewRecord creates a record with a fresh random ID.
func NewRecord(name string, tags ...string) *Record {
	return &Record{
		ID:   uuid.New(),
		Name: name,
		Tags: slices.Clone(tags),
	}
}

// ParseRecord parses "name [tag,tag...]". The ID is freshly generated.
func ParseRecord(s string) (*Record, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		return NewRecord(fields[0]), nil
	case 2:
		var tags []string
		for _, t := range strings.Split(fields[1], ",") {
			if t != "" {
				tags = append(tags, t)
			}
		}
		return NewRecord(fields[0], tags...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrBadRecord, s)
}

// Clone returns a deep copy that keeps the same ID.
func (r *Record) Clone() *Record {
	return &Record{
		ID:   r.ID,
		Name: r.Name,
		Tags: slices.Clone(r.Tags),
	}
}

// Release drops the record's tag storage.
func (r *Record) Release() {
	r.Tags = nil
	r.released = true
}

// Released reports whether Release has been called.
func (r *Record) Released() bool { return r.released }

// Render writes "name <id> [tags]".
func (r *Record) Render(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s <%s> [%s]", r.Name, r.ID, strings.Join(r.Tags, ","))
	return err
}

// Equal reports whether two records hold the same ID, name and tags.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.ID == o.ID && r.Name == o.Name && slices.Equal(r.Tags, o.Tags)
}

// RecordOps manages *Record elements through their own methods.
var RecordOps = array.Methods[*Record]()
