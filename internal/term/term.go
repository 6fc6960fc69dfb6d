// Package term detects whether a file descriptor is an interactive terminal.
package term

import "os"

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isTerminal(int(f.Fd()))
}
