package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Environment variables read as defaults for the global flags, and passed to
// extensions.
const (
	EnvSnapshotFile = "AA_SNAPSHOT_FILE"
	EnvVerbose      = "AA_VERBOSE"
	EnvPlain        = "AA_PLAIN"
)

// extensionPrefix names the executables that extend aa: 'aa foo' runs
// 'aa-foo' when foo is not a built-in command.
const extensionPrefix = "aa-"

// settings returns the resolved global settings as environment variables,
// so that extensions work on the same snapshot with the same output options.
func settings() []string {
	return []string{
		EnvSnapshotFile + "=" + SnapshotPath(""),
		EnvVerbose + "=" + strconv.FormatBool(verbose()),
		EnvPlain + "=" + strconv.FormatBool(*plain || envBool(EnvPlain)),
	}
}

// RunExtension runs the 'aa-<name>' executable found in PATH with 'args'.
//
// It returns false if there is no such executable. Otherwise it returns true
// and the extension exit code.
func RunExtension(name string, args []string) (found bool, code int) {
	log := Logger()
	bin, err := exec.LookPath(extensionPrefix + name)
	if err != nil {
		log.Debug().Err(err).Str("extension", name).Msg("no extension")
		return false, 0
	}

	cmd := exec.Command(bin, args...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	cmd.Env = append(os.Environ(), settings()...)
	log.Debug().Str("extension", bin).Strs("args", args).Msg("running extension")

	err = cmd.Run()
	var exit *exec.ExitError
	switch {
	case err == nil:
		return true, 0
	case errors.As(err, &exit):
		return true, exit.ExitCode()
	default:
		fmt.Fprintf(os.Stderr, "Error running extension %q: %v\n", bin, err)
		return true, 1
	}
}
