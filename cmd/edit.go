package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// editCmd holds the flags for the 'edit' subcommand.
type editCmd struct {
	snapshot string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit an allocation table interactively" }
func (*editCmd) Usage() string {
	return `aa edit [-f <snapshot>]

  Starts from the snapshot (or an empty allocation) and reads edits from the
  standard input, one per line. Totals are recomputed after each edit.
  Type 'help' for the list of edits. Nothing is written back to the snapshot,
  use 'export' to print it.

Usage Examples:
$ printf 'add Stocks\ninvest Stocks 100\nrisk Stocks 10\nshow\n' | aa edit

`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.snapshot, "f", "", "Snapshot file. Defaults to the global -snapshot.")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := DecodeSession(SnapshotPath(c.snapshot), "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	editor := NewEditor(session, os.Stdout)
	if !(*plain || envBool(EnvPlain)) {
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle()); err == nil {
			editor.render = func(md string) string {
				out, err := r.Render(md)
				if err != nil {
					return md
				}
				return strings.TrimLeft(out, "\n")
			}
		}
	}

	fmt.Fprintln(os.Stderr, "type 'help' for the list of edits, 'quit' to leave.")
	if err := editor.Run(os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading edits: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
