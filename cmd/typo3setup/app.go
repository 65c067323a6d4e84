// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"typo3-setup-cli/internal/config"
	"typo3-setup-cli/internal/dispatch"
	"typo3-setup-cli/internal/dotenv"
	"typo3-setup-cli/internal/prompt"
	"typo3-setup-cli/internal/store"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

type (
	// App is the CLI composition root. Commands reach every collaborator
	// through it, so tests can run the whole tree against in-memory fakes.
	App struct {
		Config      config.Provider
		FS          afero.Fs
		Environment dotenv.Environment
		Prompter    prompt.Prompter
		Dispatcher  dispatch.Dispatcher

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer

		verbose    bool
		configFile string
	}

	// Dependencies are the injectable collaborators of an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config      config.Provider
		FS          afero.Fs
		Environment dotenv.Environment
		// Prompter is chosen from the loaded configuration when nil.
		Prompter prompt.Prompter
		// Dispatcher runs the configured console binary when nil.
		Dispatcher dispatch.Dispatcher
		Stdin      io.Reader
		Stdout     io.Writer
		Stderr     io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.FS == nil {
		deps.FS = afero.NewOsFs()
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider(deps.FS)
	}
	if deps.Environment == nil {
		deps.Environment = dotenv.OSEnvironment{}
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}

	return &App{
		Config:      deps.Config,
		FS:          deps.FS,
		Environment: deps.Environment,
		Prompter:    deps.Prompter,
		Dispatcher:  deps.Dispatcher,
		stdin:       deps.Stdin,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
	}
}

// loadConfig loads the effective configuration. Non-zero override fields win
// over the environment and the config file.
func (a *App) loadConfig(ctx context.Context, overrides *config.Config) (*config.Config, error) {
	return a.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: a.configFile,
		Overrides:      overrides,
		Environment:    a.Environment,
	})
}

// newLogger returns the diagnostic logger. Debug output is enabled by --verbose.
func (a *App) newLogger() *log.Logger {
	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: "typo3-setup"})
	if a.verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// prompter returns the injected Prompter or one matching cfg and the terminal.
func (a *App) prompter(cfg *config.Config) prompt.Prompter {
	if a.Prompter != nil {
		return a.Prompter
	}
	pc := prompt.DefaultConfig()
	pc.NoInteraction = cfg.NoInteraction
	pc.Input = a.stdin
	pc.Output = a.stderr
	return prompt.New(pc)
}

// dispatcher returns the injected Dispatcher or one running the configured
// console binary in the composer root.
func (a *App) dispatcher(cfg *config.Config, logger *log.Logger) dispatch.Dispatcher {
	if a.Dispatcher != nil {
		return a.Dispatcher
	}
	paths := cfg.Paths()
	d := dispatch.NewExecDispatcher(paths.ConsoleBinary, paths.ComposerRoot, logger)
	d.Stdout = a.stdout
	d.Stderr = a.stderr
	return d
}

// settingsStore returns the store for the settings files named by cfg.
func (a *App) settingsStore(cfg *config.Config, logger *log.Logger) *store.Store {
	paths := cfg.Paths()
	return store.New(a.FS, store.Options{
		SettingsFile: paths.SettingsFile,
		LegacyFile:   paths.LegacySettingsFile,
		Marker:       cfg.Marker,
	}, logger)
}
