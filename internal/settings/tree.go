// SPDX-License-Identifier: MPL-2.0

package settings

import (
	"slices"
	"sort"
)

// Tree is a nested settings mapping. Nested mappings may be either Tree or
// map[string]any values; both are treated as subtrees.
type Tree map[string]any

// Get returns the value addressed by p. The value is either a scalar, a list or a
// subtree. It fails with a PathNotFoundError when an intermediate node is not a
// mapping or the final segment is absent.
func (t Tree) Get(p Path) (any, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	node := t
	for i, seg := range p {
		v, ok := node[seg]
		if !ok {
			return nil, &PathNotFoundError{Path: p}
		}
		if i == len(p)-1 {
			return v, nil
		}
		child, ok := AsTree(v)
		if !ok {
			return nil, &PathNotFoundError{Path: p}
		}
		node = child
	}

	return nil, &PathNotFoundError{Path: p}
}

// Remove deletes the value addressed by p. Every ancestor mapping left empty by the
// removal is deleted as well; the root itself is never removed. It fails with a
// PathNotFoundError under the same conditions as Get, leaving the tree unchanged.
func (t Tree) Remove(p Path) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !t.remove(p) {
		return &PathNotFoundError{Path: p}
	}
	return nil
}

func (t Tree) remove(p Path) bool {
	head := p[0]
	if len(p) == 1 {
		if _, ok := t[head]; !ok {
			return false
		}
		delete(t, head)
		return true
	}

	child, ok := AsTree(t[head])
	if !ok || !child.remove(p[1:]) {
		return false
	}
	if len(child) == 0 {
		delete(t, head)
	}
	return true
}

// Clone returns a deep copy of the tree. Nested mappings are copied into
// map[string]any values and lists are copied element by element.
func (t Tree) Clone() Tree {
	if t == nil {
		return Tree{}
	}
	out := make(Tree, len(t))
	for k, v := range t {
		out[k] = cloneValue(v)
	}
	return out
}

// Leaves returns the paths of all non-mapping values in the tree, sorted by their
// dotted form. Empty subtrees contribute no paths.
func (t Tree) Leaves() []Path {
	var out []Path
	t.walk(nil, func(p Path, _ any) {
		out = append(out, p)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func (t Tree) walk(prefix Path, fn func(Path, any)) {
	for k, v := range t {
		p := append(slices.Clone(prefix), k)
		if child, ok := AsTree(v); ok {
			child.walk(p, fn)
			continue
		}
		fn(p, v)
	}
}

// AsTree reports whether v is a nested mapping and returns it as a Tree sharing the
// same underlying map.
func AsTree(v any) (Tree, bool) {
	switch m := v.(type) {
	case Tree:
		return m, m != nil
	case map[string]any:
		return Tree(m), m != nil
	default:
		return nil, false
	}
}

func cloneValue(v any) any {
	if child, ok := AsTree(v); ok {
		return map[string]any(child.Clone())
	}
	if list, ok := v.([]any); ok {
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}
