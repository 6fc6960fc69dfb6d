// Package script executes line-oriented command scripts against an adaptive array.
//
// Commands, one per line:
//
//	set <index> <value>   store a value (record kind: "<name> [tag,tag]")
//	get <index>           print the stored value or "absent (<reason>)"
//	size                  print the array length
//	print                 render every occupied slot
//	reset                 free the array and start a new one
//
// Blank lines and lines starting with '#' are ignored.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/adptarray/array"
	"github.com/joshuapare/adptarray/internal/logger"
)

// DefaultMaxLineBytes is the longest script line accepted by default.
const DefaultMaxLineBytes = 1 << 20

// Options controls a Runner.
type Options struct {
	// Kind is the element type. Default: KindInt
	Kind Kind

	// Array holds the options used for every array the runner creates.
	Array []array.Option

	// Strict stops at the first failing line.
	Strict bool

	// Prompt prints "> " before reading each line.
	Prompt bool

	// Encoding is the input charset. Default: utf8
	Encoding string

	// MaxLineBytes is the longest line, after decoding, the runner reads.
	// A longer line ends the run with bufio.ErrTooLong.
	// Default: DefaultMaxLineBytes
	MaxLineBytes int
}

// Result summarizes a run.
type Result struct {
	Lines    int // commands executed
	Failures int // commands that reported an error
}

// Runner executes scripts. Results go to out, per-line errors to errOut.
type Runner struct {
	opts   Options
	out    io.Writer
	errOut io.Writer
	sess   session
}

// New creates a runner and its first array.
func New(out, errOut io.Writer, opts Options) (*Runner, error) {
	sess, err := newSession(opts.Kind, opts.Array)
	if err != nil {
		return nil, err
	}
	return &Runner{opts: opts, out: out, errOut: errOut, sess: sess}, nil
}

// Close frees the current array.
func (r *Runner) Close() {
	r.sess.free()
}

// Run reads commands from in until EOF, ctx cancellation or, in strict
// mode, the first failing command.
func (r *Runner) Run(ctx context.Context, in io.Reader) (Result, error) {
	var res Result

	dec, err := NewDecodingReader(in, r.opts.Encoding)
	if err != nil {
		return res, err
	}

	maxLine := r.opts.MaxLineBytes
	if maxLine <= 0 {
		maxLine = DefaultMaxLineBytes
	}
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, min(maxLine, 64*1024)), maxLine)
	n := 0
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if r.opts.Prompt {
			fmt.Fprint(r.out, "> ")
		}
		if !sc.Scan() {
			break
		}
		n++

		cmd, ok, err := ParseLine(sc.Text(), n)
		if err == nil && !ok {
			continue
		}
		if err == nil {
			res.Lines++
			err = r.Exec(cmd)
		}
		if err != nil {
			res.Failures++
			logger.Debug("script line failed", "line", n, "error", err)
			if r.opts.Strict {
				return res, fmt.Errorf("line %d: %w", n, err)
			}
			fmt.Fprintf(r.errOut, "line %d: %v\n", n, err)
		}
	}
	if r.opts.Prompt {
		fmt.Fprintln(r.out)
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("read script: %w", err)
	}
	return res, nil
}

// Exec runs a single command.
func (r *Runner) Exec(cmd Command) error {
	logger.Debug("exec", "op", cmd.Op, "index", cmd.Index, "line", cmd.Line)

	switch cmd.Op {
	case OpSet:
		return r.sess.set(cmd.Index, cmd.Arg)

	case OpGet:
		s, err := r.sess.get(cmd.Index)
		if err != nil {
			if array.IsAbsent(err) {
				fmt.Fprintf(r.out, "absent (%s)\n", absentReason(err))
				return nil
			}
			return err
		}
		fmt.Fprintln(r.out, s)
		return nil

	case OpSize:
		fmt.Fprintln(r.out, r.sess.size())
		return nil

	case OpPrint:
		return r.sess.print(r.out)

	case OpReset:
		return r.sess.reset()
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Op)
}

func absentReason(err error) string {
	switch {
	case errors.Is(err, array.ErrEmptySlot):
		return "empty slot"
	case errors.Is(err, array.ErrOutOfRange):
		return "out of range"
	default:
		return "invalid array"
	}
}
