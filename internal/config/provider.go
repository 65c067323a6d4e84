// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"

	"typo3-setup-cli/internal/dotenv"

	"github.com/spf13/afero"
)

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// WorkDir is the composer root used when neither Overrides nor the
	// environment name one. Defaults to the working directory.
	WorkDir string
	// Overrides holds command-line values; non-zero fields win over every other layer.
	Overrides *Config
	// Environment supplies the variable snapshot. Defaults to the process environment.
	Environment dotenv.Environment
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct {
	fs afero.Fs
}

// NewProvider creates a configuration provider reading config files from fs.
func NewProvider(fs afero.Fs) Provider {
	return &fileProvider{fs: fs}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, p.fs, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
