package script

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownCommand indicates a line whose first word is not a command.
	ErrUnknownCommand = errors.New("script: unknown command")

	// ErrUsage indicates a command with the wrong arguments.
	ErrUsage = errors.New("script: usage")
)

// Op names a script command.
type Op string

const (
	OpSet   Op = "set"
	OpGet   Op = "get"
	OpSize  Op = "size"
	OpPrint Op = "print"
	OpReset Op = "reset"
)

// Command is one parsed script line.
type Command struct {
	Op    Op
	Index int
	Arg   string // element text for set
	Line  int
}

// ParseLine parses a single line. Blank lines and lines starting with '#'
// yield ok == false and no error.
func ParseLine(line string, n int) (cmd Command, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Command{}, false, nil
	}

	word, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	cmd = Command{Op: Op(strings.ToLower(word)), Line: n}

	switch cmd.Op {
	case OpSize, OpPrint, OpReset:
		if rest != "" {
			return Command{}, false, fmt.Errorf("%w: %s takes no arguments", ErrUsage, cmd.Op)
		}

	case OpGet:
		idx, err := parseIndex(rest)
		if err != nil {
			return Command{}, false, fmt.Errorf("%w: get <index>: %v", ErrUsage, err)
		}
		cmd.Index = idx

	case OpSet:
		idxStr, arg, _ := strings.Cut(rest, " ")
		idx, err := parseIndex(idxStr)
		if err != nil {
			return Command{}, false, fmt.Errorf("%w: set <index> <value>: %v", ErrUsage, err)
		}
		arg = strings.TrimSpace(arg)
		if arg == "" {
			return Command{}, false, fmt.Errorf("%w: set <index> <value>: missing value", ErrUsage)
		}
		cmd.Index = idx
		cmd.Arg = arg

	default:
		return Command{}, false, fmt.Errorf("%w: %q", ErrUnknownCommand, word)
	}

	return cmd, true, nil
}

// parseIndex accepts any integer; range checks belong to the array.
func parseIndex(s string) (int, error) {
	if s == "" {
		return 0, errors.New("missing index")
	}
	return strconv.Atoi(s)
}
