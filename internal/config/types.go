// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrConfigFileNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigFileNotFound = errors.New("config file not found")
)

type (
	// Config is the effective typo3-setup configuration.
	Config struct {
		// ComposerRoot is the project root holding the env files and conf/.
		ComposerRoot string `json:"composer_root" mapstructure:"composer_root"`
		// WebRoot is the document root. Relative values resolve against ComposerRoot.
		WebRoot string `json:"web_root" mapstructure:"web_root"`
		// DistFile is the env template.
		DistFile string `json:"dist_file" mapstructure:"dist_file"`
		// InstallFile is the optional first-run prompt file.
		InstallFile string `json:"install_file" mapstructure:"install_file"`
		// EnvFile is the generated env file.
		EnvFile string `json:"env_file" mapstructure:"env_file"`
		// SettingsFile is the canonical settings file.
		SettingsFile string `json:"settings_file" mapstructure:"settings_file"`
		// LegacySettingsFile is the legacy settings file, relative to WebRoot.
		LegacySettingsFile string `json:"legacy_settings_file" mapstructure:"legacy_settings_file"`
		// PathPrefix marks env keys that address a settings path.
		PathPrefix string `json:"path_prefix" mapstructure:"path_prefix"`
		// PromptPrefix marks install-file keys that are asked interactively.
		PromptPrefix string `json:"prompt_prefix" mapstructure:"prompt_prefix"`
		// DefaultSuffix marks the default companion of a prompt key.
		DefaultSuffix string `json:"default_suffix" mapstructure:"default_suffix"`
		// Marker is stamped into generated settings files.
		Marker string `json:"marker" mapstructure:"marker"`
		// ConsoleBinary is the TYPO3 console used for post-setup commands.
		ConsoleBinary string `json:"console_binary" mapstructure:"console_binary"`
		// NoInteraction disables prompting; defaults are used instead.
		NoInteraction bool `json:"no_interaction" mapstructure:"no_interaction"`
	}

	// Paths holds absolute locations derived from a Config.
	Paths struct {
		ComposerRoot       string
		WebRoot            string
		DistFile           string
		InstallFile        string
		EnvFile            string
		SettingsFile       string
		LegacySettingsFile string
		ConsoleBinary      string
	}

	// InvalidConfigError is returned when a Config value fails validation.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		WebRoot:            "public",
		DistFile:           ".env.dist",
		InstallFile:        ".env.install",
		EnvFile:            ".env",
		SettingsFile:       filepath.Join("conf", "settings.cue"),
		LegacySettingsFile: filepath.Join("typo3conf", "LocalConfiguration.yaml"),
		PathPrefix:         "TYPO3__",
		PromptPrefix:       "TYPO3_INSTALL_PROMPT_",
		DefaultSuffix:      "_DEFAULT",
		Marker:             "Auto generated by typo3-setup",
		ConsoleBinary:      filepath.Join("vendor", "bin", "typo3cms"),
	}
}

// Validate reports every empty required field.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"composer_root", c.ComposerRoot},
		{"web_root", c.WebRoot},
		{"dist_file", c.DistFile},
		{"install_file", c.InstallFile},
		{"env_file", c.EnvFile},
		{"settings_file", c.SettingsFile},
		{"path_prefix", c.PathPrefix},
		{"prompt_prefix", c.PromptPrefix},
		{"default_suffix", c.DefaultSuffix},
		{"marker", c.Marker},
		{"console_binary", c.ConsoleBinary},
	}

	var errs []error
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", field.name))
		}
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Paths resolves file locations. Relative entries join ComposerRoot, the legacy
// settings file joins WebRoot. An empty LegacySettingsFile stays empty.
func (c *Config) Paths() Paths {
	root := c.ComposerRoot
	web := resolve(root, c.WebRoot)

	p := Paths{
		ComposerRoot:  root,
		WebRoot:       web,
		DistFile:      resolve(root, c.DistFile),
		InstallFile:   resolve(root, c.InstallFile),
		EnvFile:       resolve(root, c.EnvFile),
		SettingsFile:  resolve(root, c.SettingsFile),
		ConsoleBinary: resolve(root, c.ConsoleBinary),
	}
	if c.LegacySettingsFile != "" {
		p.LegacySettingsFile = resolve(web, c.LegacySettingsFile)
	}
	return p
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
