// SPDX-License-Identifier: MPL-2.0

// Package prompt asks the user for required setup values.
//
// Three Prompter implementations are provided: a bubbletea text input for
// terminals, a huh form in accessible mode for pipes and screen readers, and a
// non-interactive prompter that answers with the default. New picks one from a
// Config the way DefaultConfig detects the terminal.
package prompt
