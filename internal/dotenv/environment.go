// SPDX-License-Identifier: MPL-2.0

package dotenv

import (
	"maps"
	"os"
	"strings"
)

type (
	// Environment is a read-only view of process-wide environment variables.
	Environment interface {
		// Snapshot returns a copy of all variables. Callers may modify the result.
		Snapshot() map[string]string
		// Lookup returns the value of a single variable.
		Lookup(name string) (string, bool)
	}

	// OSEnvironment reads the real process environment.
	OSEnvironment struct{}

	// MapEnvironment is an Environment backed by a fixed map.
	MapEnvironment map[string]string
)

// Snapshot implements Environment.
func (OSEnvironment) Snapshot() map[string]string {
	return SliceToEnv(os.Environ())
}

// Lookup implements Environment.
func (OSEnvironment) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Snapshot implements Environment.
func (m MapEnvironment) Snapshot() map[string]string {
	out := maps.Clone(map[string]string(m))
	if out == nil {
		out = map[string]string{}
	}
	return out
}

// Lookup implements Environment.
func (m MapEnvironment) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// SliceToEnv converts KEY=VALUE pairs (as returned by os.Environ) into a map.
// Entries without '=' are skipped.
func SliceToEnv(env []string) map[string]string {
	out := make(map[string]string, len(env))
	for _, kv := range env {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			continue
		}
		out[key] = value
	}
	return out
}
