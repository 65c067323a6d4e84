// SPDX-License-Identifier: MPL-2.0

package settings

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

// Keys come from a tiny alphabet so generated trees overlap often.
var keyGen = rapid.SampledFrom([]string{"a", "b", "c", "DB", "SYS"})

func treeGen(depth int) *rapid.Generator[Tree] {
	return rapid.Custom(func(t *rapid.T) Tree {
		out := Tree{}
		n := rapid.IntRange(1, 3).Draw(t, "width")
		for range n {
			key := keyGen.Draw(t, "key")
			if depth > 0 && rapid.Bool().Draw(t, "nested") {
				out[key] = map[string]any(treeGen(depth-1).Draw(t, "child"))
				continue
			}
			out[key] = rapid.StringMatching(`[a-z0-9]{1,6}`).Draw(t, "leaf")
		}
		return out
	})
}

func TestRapid_RemoveThenGetFails(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := treeGen(3).Draw(t, "tree")
		leaves := tree.Leaves()
		if len(leaves) == 0 {
			t.Skip("no leaves")
		}
		p := rapid.SampledFrom(leaves).Draw(t, "path")

		if err := tree.Remove(p); err != nil {
			t.Fatalf("Remove(%v) unexpected error: %v", p, err)
		}
		if _, err := tree.Get(p); !errors.Is(err, ErrPathNotFound) {
			t.Fatalf("Get(%v) after Remove: error = %v, want ErrPathNotFound", p, err)
		}
	})
}

func TestRapid_RemoveLeavesNoEmptySubtrees(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := treeGen(3).Draw(t, "tree")
		for _, p := range tree.Leaves() {
			if err := tree.Remove(p); err != nil {
				t.Fatalf("Remove(%v) unexpected error: %v", p, err)
			}
			assertNoEmptySubtree(t, tree)
		}
		if len(tree) != 0 {
			t.Fatalf("tree = %#v after removing every leaf, want empty", tree)
		}
	})
}

func assertNoEmptySubtree(t *rapid.T, tree Tree) {
	for k, v := range tree {
		child, ok := AsTree(v)
		if !ok {
			continue
		}
		if len(child) == 0 {
			t.Fatalf("empty subtree left at key %q", k)
		}
		assertNoEmptySubtree(t, child)
	}
}

func TestRapid_MergeCanonicalLeavesWin(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		legacy := treeGen(2).Draw(t, "legacy")
		canonical := treeGen(2).Draw(t, "canonical")

		merged, err := Merge(legacy, canonical)
		if err != nil {
			t.Fatalf("Merge unexpected error: %v", err)
		}

		for _, p := range canonical.Leaves() {
			want, _ := canonical.Get(p)
			got, err := merged.Get(p)
			if err != nil {
				t.Fatalf("canonical leaf %v missing from merge: %v", p, err)
			}
			if got != want {
				t.Fatalf("merged[%v] = %v, want canonical value %v", p, got, want)
			}
		}
	})
}

func TestRapid_MergeKeepsUnshadowedLegacyLeaves(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		legacy := treeGen(2).Draw(t, "legacy")
		canonical := treeGen(2).Draw(t, "canonical")

		merged, err := Merge(legacy, canonical)
		if err != nil {
			t.Fatalf("Merge unexpected error: %v", err)
		}

		for _, p := range legacy.Leaves() {
			if shadowed(canonical, p) {
				continue
			}
			want, _ := legacy.Get(p)
			got, err := merged.Get(p)
			if err != nil {
				t.Fatalf("legacy leaf %v missing from merge: %v", p, err)
			}
			if got != want {
				t.Fatalf("merged[%v] = %v, want legacy value %v", p, got, want)
			}
		}
	})
}

// shadowed reports whether canonical defines any value at p or a non-mapping
// value at a prefix of p.
func shadowed(canonical Tree, p Path) bool {
	for i := 1; i <= len(p); i++ {
		v, err := canonical.Get(p[:i])
		if err != nil {
			return false
		}
		if _, ok := AsTree(v); !ok || i == len(p) {
			return true
		}
	}
	return false
}
