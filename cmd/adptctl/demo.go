package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/joshuapare/adptarray/array"
	"github.com/joshuapare/adptarray/records"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through the array's ownership and growth rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(w io.Writer, c Config) error {
	opts := arrayOptions(c)

	// Sparse write
	ints, err := array.New[int](records.IntOps, opts...)
	if err != nil {
		return err
	}
	defer ints.Free()

	fmt.Fprintln(w, "== sparse write")
	fmt.Fprintf(w, "size after New: %d\n", ints.Len())
	if err := ints.Set(3, 42); err != nil {
		return err
	}
	fmt.Fprintf(w, "size after set 3: %d\n", ints.Len())
	for i := 0; i < ints.Len(); i++ {
		if v, err := ints.Get(i); array.IsAbsent(err) {
			fmt.Fprintf(w, "get %d: absent\n", i)
		} else if err != nil {
			return err
		} else {
			fmt.Fprintf(w, "get %d: %d\n", i, v)
		}
	}

	// Overwrite destroys the previous occupant
	fmt.Fprintln(w, "== overwrite")
	destroyed := 0
	text := array.Funcs[string]{
		Del: func(s string) {
			destroyed++
			fmt.Fprintf(w, "destroy %q\n", s)
		},
		Print: records.TextOps.Print,
	}
	strs, err := array.New[string](text, opts...)
	if err != nil {
		return err
	}
	if err := strs.Set(0, "a"); err != nil {
		return err
	}
	if err := strs.Set(0, "b"); err != nil {
		return err
	}
	v, err := strs.Get(0)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "get 0: %q\n", v)
	strs.Free()
	fmt.Fprintf(w, "destroy calls: %d\n", destroyed)

	// Records are copied on write and on read
	fmt.Fprintln(w, "== records")
	recs, err := array.New[*records.Record](records.RecordOps, opts...)
	if err != nil {
		return err
	}
	defer recs.Free()

	r := records.NewRecord("alice", "admin")
	if err := recs.Set(1, r); err != nil {
		return err
	}
	r.Tags[0] = "mutated"
	if err := recs.Set(4, records.NewRecord("bob", "ops", "oncall")); err != nil {
		return err
	}
	return recs.Render(w)
}
