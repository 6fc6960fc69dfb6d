//go:build !linux && !darwin

package term

// Interactive mode is never assumed on other platforms.
func isTerminal(fd int) bool {
	return false
}
