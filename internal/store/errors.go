// SPDX-License-Identifier: MPL-2.0

package store

import (
	"errors"
	"fmt"
)

var (
	// ErrSettingsFileMissing is returned when the canonical settings file does not exist.
	ErrSettingsFileMissing = errors.New("settings file missing")
	// ErrUnsupportedFormat is returned for settings files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported settings format")
	// ErrParse is returned when a settings file cannot be decoded.
	ErrParse = errors.New("failed to parse settings file")
	// ErrWrite is the sentinel error wrapped by WriteError.
	ErrWrite = errors.New("failed to write settings")
)

// WriteError is returned when a settings file cannot be written.
// It matches both ErrWrite and the underlying cause with errors.Is().
type WriteError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write settings file '%s': %v", e.Path, e.Err)
}

// Unwrap returns ErrWrite and the cause.
func (e *WriteError) Unwrap() []error {
	return []error{ErrWrite, e.Err}
}
