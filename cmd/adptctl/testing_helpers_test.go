package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default so tests don't leak state
// through the package-level command tree.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("reset flag %s: %v", f.Name, err)
		}
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
	cfg = Config{}
}

// execCmd runs adptctl with args and stdin, returning stdout and stderr.
func execCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(t)

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}
