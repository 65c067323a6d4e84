// SPDX-License-Identifier: MPL-2.0

// Package dispatch runs TYPO3 console commands after setup.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cast"
)

// ErrCommandFailed is the sentinel error wrapped by CommandError.
var ErrCommandFailed = errors.New("console command failed")

type (
	// Options are command options keyed by name without dashes. A true bool
	// renders as --name, a false bool is omitted, anything else renders as
	// --name=value.
	Options map[string]any

	// Dispatcher executes a named console command.
	Dispatcher interface {
		Execute(ctx context.Context, command string, opts Options) error
	}

	// ExecDispatcher runs commands through a console binary in a subprocess.
	ExecDispatcher struct {
		// Binary is the console executable.
		Binary string
		// WorkDir is the working directory of the subprocess.
		WorkDir string
		// Stdout and Stderr receive the subprocess output. Default to os.Stdout/os.Stderr.
		Stdout io.Writer
		Stderr io.Writer

		logger *log.Logger
	}

	// CommandError is returned when a console command exits unsuccessfully.
	CommandError struct {
		Command  string
		ExitCode int
		Err      error
	}
)

// NewExecDispatcher creates an ExecDispatcher. A nil logger discards log output.
func NewExecDispatcher(binary, workDir string, logger *log.Logger) *ExecDispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ExecDispatcher{
		Binary:  binary,
		WorkDir: workDir,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		logger:  logger,
	}
}

// Args returns the argument list for command and opts, options sorted by name.
func Args(command string, opts Options) []string {
	names := make([]string, 0, len(opts))
	for name := range opts {
		names = append(names, name)
	}
	slices.Sort(names)

	args := []string{command}
	for _, name := range names {
		switch v := opts[name].(type) {
		case bool:
			if v {
				args = append(args, "--"+name)
			}
		case nil:
			args = append(args, "--"+name)
		default:
			args = append(args, "--"+name+"="+cast.ToString(v))
		}
	}
	return args
}

// Execute implements Dispatcher.
func (d *ExecDispatcher) Execute(ctx context.Context, command string, opts Options) error {
	args := Args(command, opts)
	d.logger.Debug("dispatching console command", "binary", d.Binary, "args", args)

	cmd := exec.CommandContext(ctx, d.Binary, args...)
	cmd.Dir = d.WorkDir
	cmd.Stdout = d.Stdout
	cmd.Stderr = d.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &CommandError{Command: command, ExitCode: exitErr.ExitCode(), Err: err}
		}
		return &CommandError{Command: command, ExitCode: -1, Err: fmt.Errorf("failed to execute command: %w", err)}
	}

	return nil
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("console command '%s' exited with code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("console command '%s': %v", e.Command, e.Err)
}

// Unwrap returns ErrCommandFailed and the cause.
func (e *CommandError) Unwrap() []error {
	return []error{ErrCommandFailed, e.Err}
}
