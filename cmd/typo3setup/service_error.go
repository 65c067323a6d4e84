// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"typo3-setup-cli/internal/config"
	"typo3-setup-cli/internal/dispatch"
	"typo3-setup-cli/internal/issue"
	"typo3-setup-cli/internal/prompt"
	"typo3-setup-cli/internal/setup"
	"typo3-setup-cli/internal/store"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// ServiceError is an error that carries optional rendering information for
// the CLI layer. Always create via newServiceError to enforce the
// Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyError maps a failure to an issue catalog ID and returns it with a
// styled message for CLI rendering. fallback is used when nothing more
// specific matches; zero means no catalog entry.
func classifyError(err error, verbose bool, fallback issue.Id) *ServiceError {
	issueID := fallback

	var ae *issue.ActionableError
	switch {
	case errors.As(err, &ae) && ae.IssueId != 0:
		issueID = ae.IssueId
	case errors.Is(err, setup.ErrMissingRequiredFile):
		issueID = issue.DistFileMissingId
	case errors.Is(err, store.ErrSettingsFileMissing):
		issueID = issue.SettingsFileMissingId
	case errors.Is(err, store.ErrParse), errors.Is(err, store.ErrUnsupportedFormat):
		issueID = issue.SettingsParseFailedId
	case errors.Is(err, store.ErrWrite):
		issueID = issue.WriteFailedId
	case errors.Is(err, prompt.ErrAborted):
		issueID = issue.PromptAbortedId
	case errors.Is(err, prompt.ErrNoAnswer):
		issueID = issue.NoAnswerId
	case errors.Is(err, dispatch.ErrCommandFailed):
		issueID = issue.CommandFailedId
	case errors.Is(err, config.ErrInvalidConfig), errors.Is(err, config.ErrConfigFileNotFound):
		issueID = issue.ConfigLoadFailedId
	}

	return newServiceError(err, issueID, fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose)))
}

// exitCodeFor returns the process exit code for err.
func exitCodeFor(err error) int {
	if errors.Is(err, prompt.ErrAborted) {
		return exitInterrupted
	}
	return exitFailure
}

// renderServiceError renders a ServiceError in the CLI layer.
// It prints any styled message first, then the optional issue help section.
func renderServiceError(stderr io.Writer, svcErr *ServiceError) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render("dark")
		if renderErr != nil {
			log.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
		} else {
			fmt.Fprint(stderr, rendered)
		}
	}
}

// fail renders err with its catalog entry and returns the ExitError the
// command should return. Cobra's own error printing is silenced.
func (a *App) fail(cmd *cobra.Command, err error, fallback issue.Id) error {
	renderServiceError(a.stderr, classifyError(err, a.verbose, fallback))
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: exitCodeFor(err), Err: err}
}
