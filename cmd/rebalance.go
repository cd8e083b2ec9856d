package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/allocation"
	"github.com/etnz/allocation/renderer"
	"github.com/google/subcommands"
)

// rebalanceCmd holds the flags for the 'rebalance' subcommand.
type rebalanceCmd struct {
	snapshot string
	total    string
	export   bool
}

func (*rebalanceCmd) Name() string { return "rebalance" }
func (*rebalanceCmd) Synopsis() string {
	return "derive amounts from allocation ratios"
}
func (*rebalanceCmd) Usage() string {
	return `aa rebalance [-f <snapshot>] [-total <amount>] [-export] <asset>=<ratio>...

  Edits the allocation ratios (in %) of some assets, the others keep their
  current ratio. Ratios must sum to 100%, then every amount is derived from
  the total investment. With -total, the total investment is changed too.

Usage Examples:
# Splits the current total evenly between two assets.
$ aa rebalance Stocks=50 Bonds=50

# Invests 2000 with the current ratios.
$ aa rebalance -total 2000

`
}

func (c *rebalanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.snapshot, "f", "", "Snapshot file. Defaults to the global -snapshot.")
	f.StringVar(&c.total, "total", "", "New total investment.")
	f.BoolVar(&c.export, "export", false, "Print the resulting snapshot (YAML) instead of the report.")
}

func (c *rebalanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ratios, err := parseRatios(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if len(ratios) == 0 && c.total == "" {
		fmt.Fprintf(os.Stderr, "Error: nothing to rebalance, give some ratios or a -total\n")
		return subcommands.ExitUsageError
	}

	session, err := DecodeSession(SnapshotPath(c.snapshot), "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	if len(ratios) > 0 {
		if err := session.SetRatios(ratios); err != nil {
			fmt.Fprintf(os.Stderr, "Error: ratios rejected: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if c.total != "" {
		total, err := allocation.ParseNumber(c.total)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -total: %v\n", err)
			return subcommands.ExitUsageError
		}
		if err := session.SetAnchor(total); err != nil {
			fmt.Fprintf(os.Stderr, "Error: total rejected: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	if c.export {
		if err := allocation.SnapshotOf(session.Store()).Encode(os.Stdout, allocation.YAML); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding snapshot: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderAllocation(session.Totals()))
	return subcommands.ExitSuccess
}

// parseRatios parses <asset>=<ratio> arguments.
func parseRatios(args []string) (map[string]allocation.Percent, error) {
	ratios := make(map[string]allocation.Percent, len(args))
	for _, arg := range args {
		name, cell, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid ratio %q, want <asset>=<ratio>", arg)
		}
		if _, dup := ratios[name]; dup {
			return nil, fmt.Errorf("ratio of %q is given twice", name)
		}
		r, err := allocation.ParsePercent(cell)
		if err != nil {
			return nil, fmt.Errorf("invalid ratio for %q: %w", name, err)
		}
		ratios[name] = r
	}
	return ratios, nil
}
