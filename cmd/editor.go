package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/allocation"
	"github.com/etnz/allocation/renderer"
)

// forbiddenNameChars cannot be used in asset names, names are used as table
// cell identifiers.
const forbiddenNameChars = " !\"#$%&'()*+,./:;<=>?@[\\]^`{|}~"

var errQuit = errors.New("quit")

// Editor applies allocation table edits, one per line, to a session.
//
// After each accepted edit it prints a one line summary of the totals. Edit
// errors are printed and do not stop the editor.
type Editor struct {
	session *allocation.Session
	out     io.Writer
	render  func(md string) string // turns markdown into printable text
}

// NewEditor returns an editor on 'session' writing to 'out'.
func NewEditor(session *allocation.Session, out io.Writer) *Editor {
	return &Editor{
		session: session,
		out:     out,
		render:  func(md string) string { return md },
	}
}

// Run executes every line read from 'in' until the end of input or a quit
// command.
func (e *Editor) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		err := e.Exec(scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(e.out, "Error: %v\n", err)
		}
	}
	return scanner.Err()
}

// Exec executes a single edit line.
func (e *Editor) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	cmd, args := fields[0], fields[1:]
	s := e.session

	var err error
	switch cmd {
	case "quit", "exit":
		return errQuit
	case "help":
		fmt.Fprint(e.out, editorHelp)
		return nil
	case "show":
		md := renderer.RenderAllocation(s.Totals())
		if len(args) > 0 && args[0] == "corr" {
			md = renderer.RenderCorrelations(renderer.NewCorrelations(s.Store()))
		}
		fmt.Fprint(e.out, e.render(md))
		return nil
	case "export":
		return allocation.SnapshotOf(s.Store()).Encode(e.out, allocation.YAML)

	case "add":
		if err = wantArgs(cmd, args, 1); err == nil {
			if strings.ContainsAny(args[0], forbiddenNameChars) {
				return fmt.Errorf("invalid asset name %q: it cannot contain any of %s", args[0], forbiddenNameChars)
			}
			err = s.AppendAsset(args[0])
		}
	case "del":
		if err = wantArgs(cmd, args, 1); err == nil && !s.DeleteAsset(args[0]) {
			fmt.Fprintf(e.out, "no asset %q\n", args[0])
			return nil
		}
	case "return", "risk":
		var p allocation.Percent
		if err = wantArgs(cmd, args, 2); err == nil {
			if p, err = allocation.ParsePercent(args[1]); err == nil {
				if cmd == "return" {
					err = s.SetExpectedReturn(args[0], p)
				} else {
					err = s.SetRisk(args[0], p)
				}
			}
		}
	case "invest":
		var v float64
		if err = wantArgs(cmd, args, 2); err == nil {
			if v, err = allocation.ParseNumber(args[1]); err == nil {
				err = s.SetInvestment(args[0], v)
			}
		}
	case "corr":
		var v float64
		if err = wantArgs(cmd, args, 3); err == nil {
			if v, err = allocation.ParseNumber(args[2]); err == nil {
				err = s.SetCorrelation(args[0], args[1], v)
			}
		}
	case "fee":
		var p allocation.Percent
		if err = wantArgs(cmd, args, 1); err == nil {
			if p, err = allocation.ParsePercent(args[0]); err == nil {
				err = s.SetFeePercent(p)
			}
		}
	case "ratio":
		var ratios map[string]allocation.Percent
		if len(args) == 0 {
			err = fmt.Errorf("usage: ratio <asset>=<ratio>...")
		} else if ratios, err = parseRatios(args); err == nil {
			err = s.SetRatios(ratios)
		}
	case "total":
		var v float64
		if err = wantArgs(cmd, args, 1); err == nil {
			if v, err = allocation.ParseNumber(args[0]); err == nil {
				err = s.SetAnchor(v)
			}
		}
	default:
		return fmt.Errorf("unknown command %q, type 'help' for the list of commands", cmd)
	}
	if err != nil {
		return err
	}
	e.summary()
	return nil
}

// summary prints the totals on a single line.
func (e *Editor) summary() {
	t := e.session.Totals()
	fmt.Fprintf(e.out, "total %.2f | ratio %v | return %v | risk %v\n",
		t.TotalInvestment,
		allocation.FromFraction(t.TotalRatio),
		allocation.FromFraction(t.TotalReturn),
		allocation.FromFraction(t.TotalRisk),
	)
}

func wantArgs(cmd string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s takes %d argument(s), got %d", cmd, n, len(args))
	}
	return nil
}

const editorHelp = `commands:
  add <asset>                 append an asset
  del <asset>                 delete an asset
  return <asset> <percent>    set the expected return
  risk <asset> <percent>      set the risk
  invest <asset> <amount>     set the amount invested
  corr <asset> <asset> <v>    set the correlation coefficient
  fee <percent>               set the fee
  ratio <asset>=<percent>...  set allocation ratios (must sum to 100)
  total <amount>              set the total investment (ratios must sum to 100)
  show [corr]                 display the allocation or the correlation table
  export                      print the allocation as a YAML snapshot
  quit                        leave the editor
`
