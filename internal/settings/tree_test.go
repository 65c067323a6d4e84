// SPDX-License-Identifier: MPL-2.0

package settings

import (
	"errors"
	"reflect"
	"testing"
)

func hasPath(t Tree, p Path) bool {
	_, err := t.Get(p)
	return err == nil
}

func sampleTree() Tree {
	return Tree{
		"DB": map[string]any{
			"Connections": map[string]any{
				"Default": map[string]any{
					"host":     "localhost",
					"password": "secret",
				},
			},
		},
		"SYS": map[string]any{
			"encryptionKey": "abc",
			"features":      []any{"a", "b"},
		},
		"BE": map[string]any{
			"debug": false,
		},
	}
}

func TestTree_Get(t *testing.T) {
	t.Parallel()

	tree := sampleTree()

	tests := []struct {
		name    string
		path    Path
		want    any
		wantErr error
	}{
		{name: "nested leaf", path: Path{"DB", "Connections", "Default", "host"}, want: "localhost"},
		{name: "bool leaf", path: Path{"BE", "debug"}, want: false},
		{name: "list leaf", path: Path{"SYS", "features"}, want: []any{"a", "b"}},
		{name: "missing final segment", path: Path{"SYS", "nope"}, wantErr: ErrPathNotFound},
		{name: "missing top-level", path: Path{"GFX"}, wantErr: ErrPathNotFound},
		{name: "descend through scalar", path: Path{"SYS", "encryptionKey", "x"}, wantErr: ErrPathNotFound},
		{name: "empty path", path: Path{}, wantErr: ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tree.Get(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Get(%v) error = %v, want %v", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get(%v) unexpected error: %v", tt.path, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Get(%v) = %#v, want %#v", tt.path, got, tt.want)
			}
		})
	}
}

func TestTree_GetSubtree(t *testing.T) {
	t.Parallel()

	got, err := sampleTree().Get(Path{"DB", "Connections"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := AsTree(got); !ok {
		t.Errorf("Get(DB.Connections) = %T, want a mapping", got)
	}
}

func TestTree_Remove(t *testing.T) {
	t.Parallel()

	t.Run("leaf with siblings keeps parent", func(t *testing.T) {
		t.Parallel()

		tree := sampleTree()
		if err := tree.Remove(Path{"DB", "Connections", "Default", "host"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hasPath(tree, Path{"DB", "Connections", "Default", "host"}) {
			t.Error("removed leaf is still present")
		}
		if !hasPath(tree, Path{"DB", "Connections", "Default", "password"}) {
			t.Error("sibling leaf was removed")
		}
	})

	t.Run("emptied ancestors collapse", func(t *testing.T) {
		t.Parallel()

		tree := sampleTree()
		for _, p := range []Path{
			{"DB", "Connections", "Default", "host"},
			{"DB", "Connections", "Default", "password"},
		} {
			if err := tree.Remove(p); err != nil {
				t.Fatalf("Remove(%v) unexpected error: %v", p, err)
			}
		}
		if _, ok := tree["DB"]; ok {
			t.Errorf("DB should collapse once its only leaves are removed, got %#v", tree["DB"])
		}
		if !hasPath(tree, Path{"SYS", "encryptionKey"}) {
			t.Error("unrelated branch was removed")
		}
	})

	t.Run("root stays even when empty", func(t *testing.T) {
		t.Parallel()

		tree := Tree{"db": map[string]any{"host": "localhost"}}
		if err := tree.Remove(Path{"db", "host"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tree == nil || len(tree) != 0 {
			t.Errorf("tree = %#v, want empty non-nil tree", tree)
		}
	})

	t.Run("missing path leaves tree untouched", func(t *testing.T) {
		t.Parallel()

		tree := sampleTree()
		err := tree.Remove(Path{"DB", "Connections", "Replica", "host"})
		if !errors.Is(err, ErrPathNotFound) {
			t.Fatalf("error = %v, want ErrPathNotFound", err)
		}
		if !reflect.DeepEqual(tree, sampleTree()) {
			t.Error("tree was modified by a failed removal")
		}
	})

	t.Run("subtree removal", func(t *testing.T) {
		t.Parallel()

		tree := sampleTree()
		if err := tree.Remove(Path{"SYS"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hasPath(tree, Path{"SYS", "encryptionKey"}) {
			t.Error("subtree still reachable after removal")
		}
	})
}

func TestTree_Clone(t *testing.T) {
	t.Parallel()

	orig := sampleTree()
	clone := orig.Clone()
	if err := clone.Remove(Path{"DB", "Connections", "Default", "host"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hasPath(orig, Path{"DB", "Connections", "Default", "host"}) {
		t.Error("removing from the clone modified the original")
	}

	var nilTree Tree
	if got := nilTree.Clone(); got == nil {
		t.Error("Clone of nil tree should return an empty tree")
	}
}

func TestTree_Leaves(t *testing.T) {
	t.Parallel()

	got := Tree{
		"b": "x",
		"a": map[string]any{"z": 1, "y": map[string]any{}},
	}.Leaves()

	want := []Path{{"a", "z"}, {"b"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Leaves() = %v, want %v", got, want)
	}
}
