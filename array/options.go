package array

import (
	"fmt"
	"log/slog"
	"math"
)

const (
	// DefaultMaxLen bounds the logical length unless WithMaxLen overrides it.
	DefaultMaxLen = math.MaxInt32

	// DefaultMaxBytes bounds the slot storage unless WithMaxBytes overrides it.
	DefaultMaxBytes = 1 << 30

	// SizeInvalid is what Len reports for a nil or freed array.
	SizeInvalid = -1
)

// Format selects the line layout used by Render.
type Format string

const (
	// FormatIndexed prefixes each rendered element with its index: "[3]: 42".
	FormatIndexed Format = "indexed"

	// FormatPlain writes the rendered element alone.
	FormatPlain Format = "plain"
)

// ParseFormat converts a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatIndexed, "":
		return FormatIndexed, nil
	case FormatPlain:
		return FormatPlain, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", ErrBadOption, s)
}

// Options controls construction of an Array.
type Options struct {
	// Capacity is the number of slots reserved up front. It does not change Len.
	// Default: 0
	Capacity int

	// MaxLen is the largest logical length the array may grow to.
	// Writes that would exceed it fail with ErrAlloc.
	// Default: DefaultMaxLen
	MaxLen int

	// MaxBytes is the largest slot storage, in bytes, the array may reserve.
	// Growth past it fails with ErrAlloc before any allocation is attempted.
	// Default: DefaultMaxBytes
	MaxBytes int

	// Format is the Render layout.
	// Default: FormatIndexed
	Format Format

	// Logger receives diagnostics. Nil means the process-wide logger.
	Logger *slog.Logger
}

// DefaultOptions returns the options New starts from.
func DefaultOptions() Options {
	return Options{
		Capacity: 0,
		MaxLen:   DefaultMaxLen,
		MaxBytes: DefaultMaxBytes,
		Format:   FormatIndexed,
	}
}

// Option mutates Options.
type Option func(*Options)

// WithCapacity reserves n slots.
func WithCapacity(n int) Option {
	return func(o *Options) { o.Capacity = n }
}

// WithMaxLen caps the logical length.
func WithMaxLen(n int) Option {
	return func(o *Options) { o.MaxLen = n }
}

// WithMaxBytes caps the slot storage in bytes.
func WithMaxBytes(n int) Option {
	return func(o *Options) { o.MaxBytes = n }
}

// WithFormat sets the Render layout.
func WithFormat(f Format) Option {
	return func(o *Options) { o.Format = f }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func (o Options) validate() error {
	if o.MaxLen <= 0 {
		return fmt.Errorf("%w: max length %d", ErrBadOption, o.MaxLen)
	}
	if o.MaxBytes <= 0 {
		return fmt.Errorf("%w: max bytes %d", ErrBadOption, o.MaxBytes)
	}
	if o.Capacity < 0 {
		return fmt.Errorf("%w: capacity %d", ErrBadOption, o.Capacity)
	}
	if o.Capacity > o.MaxLen {
		return fmt.Errorf("%w: capacity %d exceeds max length %d", ErrAlloc, o.Capacity, o.MaxLen)
	}
	if _, err := ParseFormat(string(o.Format)); err != nil {
		return err
	}
	return nil
}
