// SPDX-License-Identifier: MPL-2.0

package settings

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Delimiter separates path segments in the dotted string form of a Path.
	Delimiter = "."

	// EnvSegmentSeparator separates path segments inside an env key name.
	EnvSegmentSeparator = "__"
)

var (
	// ErrInvalidPath is the sentinel error wrapped by InvalidPathError.
	ErrInvalidPath = errors.New("invalid settings path")

	// ErrPathNotFound is the sentinel error wrapped by PathNotFoundError.
	ErrPathNotFound = errors.New("settings path not found")
)

type (
	// Path addresses a value in a Tree. Segments are never empty and never
	// contain Delimiter.
	Path []string

	// InvalidPathError is returned when a path cannot address a tree value.
	// It wraps ErrInvalidPath for errors.Is() compatibility.
	InvalidPathError struct {
		Value  string
		Reason string
	}

	// PathNotFoundError is returned when a path does not resolve to a value.
	// It wraps ErrPathNotFound for errors.Is() compatibility.
	PathNotFoundError struct {
		Path Path
	}
)

// Error implements the error interface.
func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid settings path %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidPath so callers can use errors.Is for classification.
func (e *InvalidPathError) Unwrap() error { return ErrInvalidPath }

// Error implements the error interface.
func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("settings path %q not found", e.Path.String())
}

// Unwrap returns ErrPathNotFound so callers can use errors.Is for classification.
func (e *PathNotFoundError) Unwrap() error { return ErrPathNotFound }

// ParsePath parses the dotted form of a path ("DB.Connections.Default.host").
func ParsePath(s string) (Path, error) {
	if strings.TrimSpace(s) == "" {
		return nil, &InvalidPathError{Value: s, Reason: "path is empty"}
	}
	p := Path(strings.Split(s, Delimiter))
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// PathFromEnvKey derives a path from an env key carrying the given prefix sentinel.
// The prefix is stripped and the remainder is split on "__":
//
//	PathFromEnvKey("TYPO3__", "TYPO3__DB__Connections__Default__host")
//	// => [DB Connections Default host]
//
// Segment content is passed through unchanged.
func PathFromEnvKey(prefix, key string) (Path, error) {
	rest, ok := strings.CutPrefix(key, prefix)
	if !ok {
		return nil, &InvalidPathError{Value: key, Reason: fmt.Sprintf("missing prefix %q", prefix)}
	}
	if rest == "" {
		return nil, &InvalidPathError{Value: key, Reason: "no segments after prefix"}
	}
	p := Path(strings.Split(rest, EnvSegmentSeparator))
	if reason := p.invalidReason(); reason != "" {
		return nil, &InvalidPathError{Value: key, Reason: reason}
	}
	return p, nil
}

// Validate reports whether the path can address a tree value.
func (p Path) Validate() error {
	if reason := p.invalidReason(); reason != "" {
		return &InvalidPathError{Value: p.String(), Reason: reason}
	}
	return nil
}

func (p Path) invalidReason() string {
	if len(p) == 0 {
		return "path has no segments"
	}
	for i, seg := range p {
		if seg == "" {
			return fmt.Sprintf("segment %d is empty", i)
		}
		if strings.Contains(seg, Delimiter) {
			return fmt.Sprintf("segment %q contains %q", seg, Delimiter)
		}
	}
	return ""
}

// String returns the dotted form of the path.
func (p Path) String() string {
	return strings.Join(p, Delimiter)
}
