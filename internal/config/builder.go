// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// builder merges configuration layers. Layers are added highest precedence
// first: a field set by an earlier layer is never replaced by a later one.
type builder struct {
	configs []*Config
	err     error
}

func newBuilder() *builder {
	return &builder{configs: make([]*Config, 0, 4)}
}

func (b *builder) with(cfg *Config) *builder {
	if cfg != nil {
		b.configs = append(b.configs, cfg)
	}
	return b
}

func (b *builder) withErr(err error) *builder {
	if err != nil {
		b.err = errors.Join(b.err, err)
	}
	return b
}

func (b *builder) build() (*Config, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	cfg := new(Config)
	for _, layer := range b.configs {
		if err := mergo.Merge(cfg, layer); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return cfg, nil
}
