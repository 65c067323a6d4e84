// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"typo3-setup-cli/internal/dotenv"
	"typo3-setup-cli/internal/issue"
	"typo3-setup-cli/pkg/cueutil"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "typo3-setup"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "typo3-setup"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

// loadWithOptions layers overrides, environment, config file and defaults. It
// returns the effective config and the config file that was read, if any.
func loadWithOptions(ctx context.Context, fs afero.Fs, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	environ := opts.Environment
	if environ == nil {
		environ = dotenv.OSEnvironment{}
	}
	envLayer, envErr := ParseEnvironment(environ.Snapshot())

	overrides := opts.Overrides
	if overrides == nil {
		overrides = &Config{}
	}

	composerRoot := firstNonEmpty(overrides.ComposerRoot, envLayer.ComposerRoot, opts.WorkDir)
	if composerRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("failed to get working directory: %w", err)
		}
		composerRoot = wd
	}

	fileLayer, resolvedPath, fileErr := loadFileLayer(fs, composerRoot, opts.ConfigFilePath)

	cfg, err := newBuilder().
		with(overrides).
		withErr(envErr).
		with(envLayer.config()).
		withErr(fileErr).
		with(fileLayer).
		with(&Config{ComposerRoot: composerRoot}).
		build()
	if err != nil {
		return nil, "", err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.Wrap(err, "validate configuration",
			issue.WithResource(resolvedPath),
			issue.WithHints(
				"Remove empty values from the configuration file",
				"Use 'typo3-setup config show' to see the effective configuration",
			),
			issue.WithIssue(issue.ConfigLoadFailedId))
	}

	return cfg, resolvedPath, nil
}

// loadFileLayer returns the defaults merged with the config file. An explicit
// path must exist; otherwise <composerRoot>/typo3-setup.cue is read when present.
func loadFileLayer(fs afero.Fs, composerRoot, explicitPath string) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("web_root", defaults.WebRoot)
	v.SetDefault("dist_file", defaults.DistFile)
	v.SetDefault("install_file", defaults.InstallFile)
	v.SetDefault("env_file", defaults.EnvFile)
	v.SetDefault("settings_file", defaults.SettingsFile)
	v.SetDefault("legacy_settings_file", defaults.LegacySettingsFile)
	v.SetDefault("path_prefix", defaults.PathPrefix)
	v.SetDefault("prompt_prefix", defaults.PromptPrefix)
	v.SetDefault("default_suffix", defaults.DefaultSuffix)
	v.SetDefault("marker", defaults.Marker)
	v.SetDefault("console_binary", defaults.ConsoleBinary)
	v.SetDefault("no_interaction", defaults.NoInteraction)

	resolvedPath := ""

	if explicitPath != "" {
		if !fileExists(fs, explicitPath) {
			return nil, "", issue.Wrap(fmt.Errorf("%w: %s", ErrConfigFileNotFound, explicitPath), "load configuration",
				issue.WithResource(explicitPath),
				issue.WithHints(
					"Verify the --config path is correct",
					"Run 'typo3-setup config show' without --config to see the defaults",
				),
				issue.WithIssue(issue.ConfigLoadFailedId))
		}
		resolvedPath = explicitPath
	} else if cuePath := filepath.Join(composerRoot, ConfigFileName+"."+ConfigFileExt); fileExists(fs, cuePath) {
		resolvedPath = cuePath
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(fs, v, resolvedPath); err != nil {
			return nil, "", issue.Wrap(err, "load configuration",
				issue.WithResource(resolvedPath),
				issue.WithHints(
					"Check the CUE syntax and the field names of the file",
					"See 'typo3-setup config --help' for the accepted fields",
				),
				issue.WithIssue(issue.ConfigLoadFailedId))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, resolvedPath, nil
}

// loadCUEIntoViper validates a CUE file against the #Config schema and merges
// its contents into Viper.
func loadCUEIntoViper(fs afero.Fs, v *viper.Viper, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.DecodeMap(data,
		cueutil.WithFilename(path),
		cueutil.WithSchema(configSchema, "#Config"),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// GenerateCUE renders cfg as a typo3-setup.cue document.
func GenerateCUE(cfg *Config) (string, error) {
	data, err := cueutil.EncodeFile(cfg, "typo3-setup configuration\nSee 'typo3-setup config --help' for the available options.")
	if err != nil {
		return "", fmt.Errorf("failed to generate config: %w", err)
	}
	return string(data), nil
}
