package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/allocation/renderer"
	"github.com/google/subcommands"
)

// computeCmd holds the flags for the 'compute' subcommand.
type computeCmd struct {
	snapshot     string
	selectPath   string
	asJSON       bool
	correlations bool
}

func (*computeCmd) Name() string { return "compute" }
func (*computeCmd) Synopsis() string {
	return "compute the expected return and risk of an allocation"
}
func (*computeCmd) Usage() string {
	return `aa compute [-f <snapshot>] [-select <jsonpath>] [-json] [-c]

  Reads an allocation snapshot and displays every asset's allocation ratio,
  the total investment, the expected return net of fee, and the risk.

Usage Examples:
# Computes the default snapshot.
$ aa compute

# Computes the second portfolio of a larger JSON document.
$ aa compute -f portfolios.json -select '$.portfolios[1]'

`
}

func (c *computeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.snapshot, "f", "", "Snapshot file. Defaults to the global -snapshot.")
	f.StringVar(&c.selectPath, "select", "", "JSONPath of the snapshot object inside a JSON document.")
	f.BoolVar(&c.asJSON, "json", false, "Print totals as JSON.")
	f.BoolVar(&c.correlations, "c", false, "Also display the correlation table.")
}

func (c *computeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := DecodeSession(SnapshotPath(c.snapshot), c.selectPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load snapshot: %v\n", err)
		return subcommands.ExitFailure
	}
	totals := session.Totals()

	if c.asJSON {
		out, err := json.MarshalIndent(totals, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding totals: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(out))
		return subcommands.ExitSuccess
	}

	md := renderer.RenderAllocation(totals)
	if c.correlations {
		md += "\n" + renderer.RenderCorrelations(renderer.NewCorrelations(session.Store()))
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
