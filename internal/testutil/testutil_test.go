// SPDX-License-Identifier: EPL-2.0

package testutil

import "testing"

func TestNewProject(t *testing.T) {
	t.Parallel()

	fs := NewProject(t, "/project", map[string]string{
		".env.dist":         "A=1\n",
		"conf/settings.cue": "a: 1\n",
	})

	if got := MustReadFile(t, fs, "/project/.env.dist"); got != "A=1\n" {
		t.Errorf(".env.dist = %q, want %q", got, "A=1\n")
	}
	if got := MustReadFile(t, fs, "/project/conf/settings.cue"); got != "a: 1\n" {
		t.Errorf("settings.cue = %q, want %q", got, "a: 1\n")
	}
	MustNotExist(t, fs, "/project/.env")
}

func TestNewProject_EmptyRootExists(t *testing.T) {
	t.Parallel()

	fs := NewProject(t, "/project", nil)

	info, err := fs.Stat("/project")
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Error("project root should be a directory")
	}
}

func TestEnv(t *testing.T) {
	t.Parallel()

	env := Env("A", "1", "B", "")

	if v, ok := env.Lookup("A"); !ok || v != "1" {
		t.Errorf("Lookup(A) = %q, %v; want \"1\", true", v, ok)
	}
	if v, ok := env.Lookup("B"); !ok || v != "" {
		t.Errorf("Lookup(B) = %q, %v; want \"\", true", v, ok)
	}
	if _, ok := env.Lookup("C"); ok {
		t.Error("Lookup(C) should report a missing variable")
	}
}

func TestEnv_OddArgumentsPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on odd argument count")
		}
	}()

	Env("A")
}
