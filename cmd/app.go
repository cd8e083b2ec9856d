// Package cmd implements the CLI application to edit an asset allocation and
// compute its expected return and risk.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/allocation"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&computeCmd{}, "allocation")
	c.Register(&rebalanceCmd{}, "allocation")
	c.Register(&editCmd{}, "allocation")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

const defaultSnapshotFile = "allocation.yaml"

var snapshotFile = flag.String("snapshot", "", "Path to the allocation snapshot file (JSON or YAML). Defaults to $"+EnvSnapshotFile+" or "+defaultSnapshotFile)
var Verbose = flag.Bool("v", false, "Verbose logging. Defaults to $"+EnvVerbose)
var plain = flag.Bool("plain", false, "Print raw markdown instead of styled terminal output. Defaults to $"+EnvPlain)

// LoadEnv loads a .env file from the working directory, if any, into the
// environment. Variables already set are not overridden.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env file: %v\n", err)
	}
}

// envBool reads a boolean environment variable, false if unset or invalid.
func envBool(name string) bool {
	v, err := strconv.ParseBool(os.Getenv(name))
	return err == nil && v
}

// SnapshotPath returns the snapshot file to use: 'override' if set, then the
// global flag, then the environment.
func SnapshotPath(override string) string {
	switch {
	case override != "":
		return override
	case *snapshotFile != "":
		return *snapshotFile
	case os.Getenv(EnvSnapshotFile) != "":
		return os.Getenv(EnvSnapshotFile)
	default:
		return defaultSnapshotFile
	}
}

func verbose() bool { return *Verbose || envBool(EnvVerbose) }

// Logger returns the application logger, writing to stderr.
func Logger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose() {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().
		Logger()
}

// DecodeSession loads the snapshot file into a new session.
//
// If 'selectPath' is not empty, the file is a JSON document and the snapshot
// is the object found at this JSONPath.
func DecodeSession(filename, selectPath string) (*allocation.Session, error) {
	log := Logger()
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("file", filename).Msg("snapshot does not exist, starting an empty allocation instead")
		return allocation.NewSession(nil, allocation.WithLogger(log)), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var snap *allocation.Snapshot
	if selectPath != "" {
		if allocation.FormatOf(filename) != allocation.JSON {
			return nil, fmt.Errorf("cannot select %q in %q: only JSON documents support selection", selectPath, filename)
		}
		snap, err = allocation.SelectSnapshot(f, selectPath)
	} else {
		snap, err = allocation.DecodeSnapshot(f, allocation.FormatOf(filename))
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", filename, err)
	}

	session, err := snap.Session(allocation.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot %q: %w", filename, err)
	}
	log.Debug().Str("file", filename).Int("assets", session.Store().Len()).Msg("snapshot loaded")
	return session, nil
}

// printMarkdown prints markdown to stdout, styled for the terminal unless
// plain output was requested.
func printMarkdown(md string) {
	if *plain || envBool(EnvPlain) {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
