// SPDX-License-Identifier: MPL-2.0

// Package template rewrites env template text with plain substring replacement.
//
// The text is never parsed into a document model, so comments, ordering and
// formatting of the template survive untouched. Values are embedded as-is: a value
// containing a double quote produces an assignment that no longer parses.
package template

import "strings"

type (
	// Substitutor performs targeted replacements in env template text.
	Substitutor interface {
		// ReplacePlaceholder replaces every "${name}" in text with value.
		ReplacePlaceholder(text, name, value string) string
		// FillEmpty turns every `name=""` assignment into `name="value"` and
		// reports whether one was found.
		FillEmpty(text, name, value string) (string, bool)
	}

	// TextSubstitutor is the literal-text Substitutor.
	TextSubstitutor struct{}
)

// NewSubstitutor returns the default Substitutor.
func NewSubstitutor() Substitutor {
	return TextSubstitutor{}
}

// Placeholder returns the "${name}" form of a variable reference.
func Placeholder(name string) string {
	return "${" + name + "}"
}

// EmptyAssignment returns the `name=""` form of an empty quoted default.
func EmptyAssignment(name string) string {
	return name + `=""`
}

// QuotedAssignment returns `name="value"` without escaping value.
func QuotedAssignment(name, value string) string {
	return name + `="` + value + `"`
}

// ReplacePlaceholder implements Substitutor.
func (TextSubstitutor) ReplacePlaceholder(text, name, value string) string {
	return strings.ReplaceAll(text, Placeholder(name), value)
}

// FillEmpty implements Substitutor.
func (TextSubstitutor) FillEmpty(text, name, value string) (string, bool) {
	target := EmptyAssignment(name)
	if !strings.Contains(text, target) {
		return text, false
	}
	return strings.ReplaceAll(text, target, QuotedAssignment(name, value)), true
}
