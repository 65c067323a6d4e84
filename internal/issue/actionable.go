// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is a failure the user can fix by hand. It names the step
	// that failed and the file it touched, lists hints, and may link a catalog
	// entry that is rendered below the message.
	//
	//	return issue.Wrap(err, "load configuration",
	//		issue.WithResource(path),
	//		issue.WithHints("Check the CUE syntax"),
	//		issue.WithIssue(issue.ConfigLoadFailedId))
	ActionableError struct {
		Operation string
		Resource  string
		Hints     []string
		IssueId   Id
		Cause     error
	}

	// Option configures an ActionableError built by Wrap.
	Option func(*ActionableError)
)

// Wrap returns cause as an ActionableError for the failed operation, a verb
// phrase such as "write settings". cause may be nil.
func Wrap(cause error, operation string, opts ...Option) *ActionableError {
	ae := &ActionableError{Operation: operation, Cause: cause}
	for _, opt := range opts {
		opt(ae)
	}
	return ae
}

// WithResource records the file or directory involved.
func WithResource(path string) Option {
	return func(ae *ActionableError) { ae.Resource = path }
}

// WithHints appends hints shown as a bulleted list.
func WithHints(hints ...string) Option {
	return func(ae *ActionableError) { ae.Hints = append(ae.Hints, hints...) }
}

// WithIssue links a catalog entry.
func WithIssue(id Id) Option {
	return func(ae *ActionableError) { ae.IssueId = id }
}

// Error implements the error interface.
func (e *ActionableError) Error() string {
	msg := "failed to " + e.Operation
	if e.Resource != "" {
		msg += fmt.Sprintf(" '%s'", e.Resource)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the cause.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the message and hints for the terminal. In verbose mode every
// error below the cause is listed as well, one per line.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if len(e.Hints) > 0 {
		b.WriteString("\n\nTry:")
		for _, hint := range e.Hints {
			b.WriteString("\n  • " + hint)
		}
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nCaused by:")
		for depth, err := 1, e.Cause; err != nil; depth, err = depth+1, errors.Unwrap(err) {
			fmt.Fprintf(&b, "\n  %d. %s", depth, err)
		}
	}

	return b.String()
}

// Issue returns the linked catalog entry, or nil.
func (e *ActionableError) Issue() *Issue {
	if e.IssueId == 0 {
		return nil
	}
	return Get(e.IssueId)
}
