// SPDX-License-Identifier: EPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"typo3-setup-cli/internal/dotenv"

	"github.com/spf13/afero"
)

// NewProject returns an in-memory filesystem holding files, keyed by paths
// relative to root. The test fails immediately if a file cannot be written.
func NewProject(t testing.TB, root string, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	MustMkdirAll(t, fs, root)
	for name, content := range files {
		MustWriteFile(t, fs, filepath.Join(root, name), content)
	}
	return fs
}

// MustWriteFile writes content to path, creating parent directories.
// The test fails immediately if the operation fails.
func MustWriteFile(t testing.TB, fs afero.Fs, path, content string) {
	t.Helper()
	MustMkdirAll(t, fs, filepath.Dir(path))
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// MustReadFile returns the content of path.
// The test fails immediately if the file cannot be read.
func MustReadFile(t testing.TB, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// MustNotExist fails the test if path exists.
func MustNotExist(t testing.TB, fs afero.Fs, path string) {
	t.Helper()
	if _, err := fs.Stat(path); err == nil {
		t.Fatalf("%s exists, expected it to be absent", path)
	} else if !os.IsNotExist(err) {
		t.Fatalf("failed to stat %s: %v", path, err)
	}
}

// MustMkdirAll creates a directory along with any necessary parents.
// The test fails immediately if the operation fails.
func MustMkdirAll(t testing.TB, fs afero.Fs, path string) {
	t.Helper()
	if err := fs.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// Env returns an environment holding pairs given as alternating names and
// values. It panics on an odd argument count.
func Env(pairs ...string) dotenv.MapEnvironment {
	if len(pairs)%2 != 0 {
		panic("testutil.Env: odd number of arguments")
	}
	env := make(dotenv.MapEnvironment, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		env[pairs[i]] = pairs[i+1]
	}
	return env
}
