package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/adptarray/internal/logger"
	"github.com/joshuapare/adptarray/internal/script"
	"github.com/joshuapare/adptarray/internal/term"
)

var (
	runKind     string
	runEncoding string
	runStrict   bool
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Execute a command script against an array",
	Long: `Execute a command script against a fresh array. With no script, or "-",
commands are read from stdin; a prompt is shown when stdin is a terminal.

Commands:
  set <index> <value>   store a copy of value at index
  get <index>           print the stored value or "absent (<reason>)"
  size                  print the array length
  print                 render every occupied slot
  reset                 free the array and start a new one

Lines longer than 1 MiB end the run with an error.

Example:
  adptctl run --kind record people.txt
  echo "set 3 42
size" | adptctl run`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScript(cmd, args)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runKind, "kind", "k", "", "Element kind (int, text, record)")
	runCmd.Flags().StringVarP(&runEncoding, "encoding", "e", "", "Script charset (utf8, latin1, windows1252)")
	runCmd.Flags().BoolVar(&runStrict, "strict", false, "Stop at the first failing command")
	rootCmd.AddCommand(runCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	c := cfg
	if cmd.Flags().Changed("kind") {
		c.Kind = runKind
	}
	if cmd.Flags().Changed("encoding") {
		c.Encoding = runEncoding
	}
	if cmd.Flags().Changed("strict") {
		c.Strict = runStrict
	}
	if err := c.Validate(); err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	interactive := false
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	} else if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(f)
	}

	r, err := script.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), script.Options{
		Kind:     script.Kind(c.Kind),
		Array:    arrayOptions(c),
		Strict:   c.Strict,
		Prompt:   interactive,
		Encoding: c.Encoding,
	})
	if err != nil {
		return err
	}
	defer r.Close()

	res, err := r.Run(cmd.Context(), in)
	logger.Info("script finished", "lines", res.Lines, "failures", res.Failures, "error", err)
	if err != nil {
		return err
	}
	if res.Failures > 0 {
		return fmt.Errorf("%d of %d commands failed", res.Failures, res.Lines)
	}
	return nil
}
