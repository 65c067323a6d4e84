// SPDX-License-Identifier: MPL-2.0

package setup

import (
	"errors"
	"fmt"
)

// ErrMissingRequiredFile is the sentinel error wrapped by MissingRequiredFileError.
var ErrMissingRequiredFile = errors.New("required file missing")

// MissingRequiredFileError is returned when the env template does not exist.
type MissingRequiredFileError struct {
	Path string
}

// Error implements the error interface.
func (e *MissingRequiredFileError) Error() string {
	return fmt.Sprintf("required file '%s' does not exist", e.Path)
}

// Unwrap returns ErrMissingRequiredFile for errors.Is() compatibility.
func (e *MissingRequiredFileError) Unwrap() error { return ErrMissingRequiredFile }

// PromptError is returned when a prompt question could not be answered.
type PromptError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e *PromptError) Error() string {
	return fmt.Sprintf("failed to ask for %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying prompt error.
func (e *PromptError) Unwrap() error { return e.Err }
