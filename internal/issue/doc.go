// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the file involved and fix
// suggestions; an optional Id links it to a Markdown catalog entry that the CLI
// renders with glamour.
package issue
