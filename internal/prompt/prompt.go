// SPDX-License-Identifier: MPL-2.0

package prompt

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	// ErrAborted is returned when the user cancels a prompt.
	ErrAborted = errors.New("prompt aborted by user")
	// ErrNoAnswer is returned when no interaction is possible and the question has no default.
	ErrNoAnswer = errors.New("no answer available without interaction")

	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	defaultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

type (
	// Prompter asks a question and returns the answer. An empty submission
	// returns def. Implementations return ErrAborted on user cancellation.
	Prompter interface {
		Ask(ctx context.Context, question, def string) (string, error)
	}

	// Config selects and configures a Prompter.
	Config struct {
		// NoInteraction answers every question with its default.
		NoInteraction bool
		// Accessible uses the accessible form instead of the full-screen TUI.
		Accessible bool
		// Input is read for answers. Defaults to os.Stdin.
		Input io.Reader
		// Output receives the questions. Defaults to os.Stderr.
		Output io.Writer
	}
)

// DefaultConfig returns a Config reading stdin and writing stderr. Accessible
// mode is enabled when stdin is not a terminal or ACCESSIBLE is set.
func DefaultConfig() Config {
	return Config{
		Accessible: !isInputTerminal() || os.Getenv("ACCESSIBLE") != "",
		Input:      os.Stdin,
		Output:     os.Stderr,
	}
}

// New returns the Prompter matching cfg.
func New(cfg Config) Prompter {
	if cfg.Input == nil {
		cfg.Input = os.Stdin
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	switch {
	case cfg.NoInteraction:
		return NonInteractive{}
	case cfg.Accessible:
		return NewAccessiblePrompter(cfg.Input, cfg.Output)
	default:
		return &TUIPrompter{input: cfg.Input, output: cfg.Output}
	}
}

// isInputTerminal returns true if stdin is connected to a terminal.
func isInputTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// NonInteractive answers with the default and fails with ErrNoAnswer when there is none.
type NonInteractive struct{}

// Ask implements Prompter.
func (NonInteractive) Ask(ctx context.Context, _, def string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if def == "" {
		return "", ErrNoAnswer
	}
	return def, nil
}
