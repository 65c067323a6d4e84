// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	stderrors "errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// formattedError carries the rendered message of a CUE error and unwraps to it.
type formattedError struct {
	msg string
	err error
}

func (e *formattedError) Error() string { return e.msg }

func (e *formattedError) Unwrap() error { return e.err }

// FormatError formats a CUE error with JSON path prefixes for clear error messages.
//
// Error format: <file-path>: <json-path>: <message>
//
// Examples:
//   - conf/settings.cue: DB.Connections.Default.port: conflicting values 3306 and "x"
//   - typo3-setup.cue: prompt_prefix: expected string, got int
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	var cueErr errors.Error
	if !stderrors.As(err, &cueErr) {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	cueErrors := errors.Errors(err)
	if len(cueErrors) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	var lines []string
	for _, e := range cueErrors {
		pathStr := formatPath(errors.Path(e))
		msg := e.Error()

		// CUE sometimes repeats the path at the start of the message.
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimPrefix(msg, pathStr)
			msg = strings.TrimPrefix(msg, ":")
			msg = strings.TrimSpace(msg)
		}

		if pathStr != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", pathStr, msg))
		} else {
			lines = append(lines, msg)
		}
	}

	if len(lines) == 1 {
		return &formattedError{msg: filePath + ": " + lines[0], err: err}
	}
	return &formattedError{msg: filePath + ": validation failed:\n  " + strings.Join(lines, "\n  "), err: err}
}

// formatPath converts a CUE error path to JSON-path notation for user-facing messages.
// CUE provides error paths as flat string slices (e.g., ["SYS", "features", "0"]) where
// numeric elements represent array indices; they are rendered as "SYS.features[0]".
func formatPath(path []string) string {
	var result strings.Builder
	for i, part := range path {
		switch {
		case i > 0 && isIndex(part):
			result.WriteString("[" + part + "]")
		case i > 0:
			result.WriteString("." + part)
		default:
			result.WriteString(part)
		}
	}
	return result.String()
}

func isIndex(part string) bool {
	return part != "" && strings.IndexFunc(part, func(r rune) bool { return r < '0' || r > '9' }) == -1
}

// CheckFileSize verifies that data does not exceed maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}
