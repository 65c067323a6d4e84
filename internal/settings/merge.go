// SPDX-License-Identifier: MPL-2.0

package settings

import (
	"fmt"

	"dario.cat/mergo"
)

// Merge deep-merges the layers into a new tree. Layers are applied in order, so a
// later layer wins over an earlier one for every leaf both define, while subtrees
// defined by both are merged key by key instead of being replaced. Lists are
// replaced as a whole. The inputs are not modified.
func Merge(layers ...Tree) (Tree, error) {
	merged := Tree{}
	for i, layer := range layers {
		if len(layer) == 0 {
			continue
		}
		if err := mergo.Merge(&merged, layer.Clone(), mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge settings layer %d: %w", i, err)
		}
	}
	return merged, nil
}
