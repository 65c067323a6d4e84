// SPDX-License-Identifier: MPL-2.0

package dotenv

import (
	"fmt"
	"maps"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// assignmentPattern matches "NAME=value" lines with an optional "export " prefix.
var assignmentPattern = regexp.MustCompile(`^(?:export\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*=(.*)$`)

type (
	// Entry is a single variable read from an env file.
	Entry struct {
		Name  string
		Value string
	}

	// Entries is an ordered list of env file variables.
	Entries []Entry

	// Parser reads env files relative to an Environment snapshot.
	Parser struct {
		env Environment
	}
)

// NewParser creates a parser that isolates its results against env.
// A nil env is treated as an empty environment.
func NewParser(env Environment) *Parser {
	if env == nil {
		env = MapEnvironment{}
	}
	return &Parser{env: env}
}

// ParseFile reads and parses the env file at path.
// A missing file is a valid absence of configuration and yields no entries.
func (p *Parser) ParseFile(fs afero.Fs, path string) (Entries, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read env file '%s': %w", path, err)
	}

	return p.Parse(content, path)
}

// Parse parses dotenv content and returns the variables it introduces, in file order.
// Supported format:
//   - Lines that are not NAME=value assignments are ignored (comments, blank lines)
//   - NAME=value (unquoted, " #" starts an inline comment)
//   - NAME="value" (double-quoted, escape sequences: \n, \r, \t, \\, \", \$)
//   - NAME='value' (single-quoted, literal)
//   - export NAME=value (export prefix is ignored)
//
// Unquoted and double-quoted values resolve ${NAME} and $NAME references against the
// environment snapshot and the variables defined earlier in the file. References to
// unknown variables are kept literally.
//
// Variables already present in the snapshot, and repeated definitions within the
// file, are not reported: they would not be introduced by loading the file.
// The filename parameter is used for error messages.
func (p *Parser) Parse(content []byte, filename string) (Entries, error) {
	snapshot := p.env.Snapshot()
	scope := maps.Clone(snapshot)
	if scope == nil {
		scope = map[string]string{}
	}

	var entries Entries
	seen := make(map[string]bool)

	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lineNum := i + 1

		line = strings.TrimSuffix(line, "\r")
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		m := assignmentPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name, raw := m[1], m[2]

		value, err := parseValue(raw, scope)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, lineNum, err)
		}

		if _, exists := snapshot[name]; exists || seen[name] {
			continue
		}
		seen[name] = true
		scope[name] = value
		entries = append(entries, Entry{Name: name, Value: value})
	}

	return entries, nil
}

// Get returns the value of the first entry called name.
func (e Entries) Get(name string) (string, bool) {
	for _, entry := range e {
		if entry.Name == name {
			return entry.Value, true
		}
	}
	return "", false
}

// parseValue parses a dotenv value, handling quoting, escapes and references.
// A quoted value may be followed by whitespace and a "#" comment.
func parseValue(value string, scope map[string]string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}

	switch quote := value[0]; quote {
	case '"', '\'':
		end := closingQuote(value, quote)
		if end == -1 {
			if quote == '"' {
				return "", fmt.Errorf("unterminated double quote")
			}
			return "", fmt.Errorf("unterminated single quote")
		}
		if rest := strings.TrimSpace(value[end+1:]); rest != "" && !strings.HasPrefix(rest, "#") {
			return "", fmt.Errorf("unexpected text after closing quote: %q", rest)
		}
		inner := value[1:end]
		if quote == '\'' {
			return inner, nil
		}
		return expandReferences(unescapeDoubleQuoted(inner), scope), nil
	}

	if idx := strings.Index(value, " #"); idx != -1 {
		value = strings.TrimSpace(value[:idx])
	}

	return expandReferences(value, scope), nil
}

// closingQuote returns the index of the quote closing value[0], or -1.
// Backslash escapes are honoured inside double quotes only.
func closingQuote(value string, quote byte) int {
	for i := 1; i < len(value); i++ {
		switch {
		case quote == '"' && value[i] == '\\':
			i++
		case value[i] == quote:
			return i
		}
	}
	return -1
}

// unescapeDoubleQuoted processes escape sequences in a double-quoted value.
func unescapeDoubleQuoted(value string) string {
	var result strings.Builder
	result.Grow(len(value))

	i := 0
	for i < len(value) {
		if value[i] != '\\' || i+1 >= len(value) {
			result.WriteByte(value[i])
			i++
			continue
		}
		switch next := value[i+1]; next {
		case 'n':
			result.WriteByte('\n')
		case 'r':
			result.WriteByte('\r')
		case 't':
			result.WriteByte('\t')
		case '\\', '"', '$':
			result.WriteByte(next)
		default:
			result.WriteByte('\\')
			result.WriteByte(next)
		}
		i += 2
	}

	return result.String()
}

// expandReferences resolves variable references with the shell expander.
// Anything the expander cannot handle (command substitution, syntax errors)
// leaves the value as written.
func expandReferences(value string, scope map[string]string) string {
	if !strings.Contains(value, "$") {
		return value
	}

	word, err := syntax.NewParser().Document(strings.NewReader(value))
	if err != nil {
		return value
	}

	cfg := &expand.Config{
		Env: expand.FuncEnviron(func(name string) string {
			if v, ok := scope[name]; ok {
				return v
			}
			return "${" + name + "}"
		}),
	}

	expanded, err := expand.Document(cfg, word)
	if err != nil {
		return value
	}
	return expanded
}
