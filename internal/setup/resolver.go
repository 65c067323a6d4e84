// SPDX-License-Identifier: MPL-2.0

package setup

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"typo3-setup-cli/internal/config"
	"typo3-setup-cli/internal/dispatch"
	"typo3-setup-cli/internal/dotenv"
	"typo3-setup-cli/internal/prompt"
	"typo3-setup-cli/internal/settings"
	"typo3-setup-cli/internal/store"
	"typo3-setup-cli/internal/template"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
)

const (
	// ExtractCommand refreshes the console's own settings after setup.
	ExtractCommand = "settings:extract"
	// DumpCommand writes the final settings for the framework.
	DumpCommand = "settings:dump"

	// StepGenerateEnv announces the env file generation.
	StepGenerateEnv = "Generating .env file"
	// StepMergeSettings announces persisting the residual settings.
	StepMergeSettings = "Merging project settings"
)

type (
	// SettingsStore loads the merged settings tree and persists the residual.
	SettingsStore interface {
		Load(ctx context.Context) (settings.Tree, error)
		Save(ctx context.Context, tree settings.Tree) error
	}

	// Dependencies are the collaborators of a Resolver. Nil fields are replaced
	// with production defaults by NewResolver.
	Dependencies struct {
		FS          afero.Fs
		Environment dotenv.Environment
		Substitutor template.Substitutor
		Prompter    prompt.Prompter
		Store       SettingsStore
		Dispatcher  dispatch.Dispatcher
		UI          UI
		Logger      *log.Logger
	}

	// Options control a single run.
	Options struct {
		// DevMode is passed on as the inverse of settings:dump --no-dev.
		DevMode bool
		// DryRun stops after resolution: nothing is written and no command runs.
		DryRun bool
	}

	// Result reports what a run did.
	Result struct {
		// Answered lists the prompt keys that were asked, in file order.
		Answered []string
		// Resolved lists the path keys whose settings value was used and removed.
		Resolved []string
		// Skipped lists the path keys left untouched because no usable value existed.
		Skipped []string
		// Text is the final env file content.
		Text string
		// Residual is the settings tree without the resolved paths.
		Residual settings.Tree
		// EnvFile is where Text was (or, on a dry run, would be) written.
		EnvFile string
		// DryRun reports that nothing was written.
		DryRun bool
	}

	// Resolver runs the setup.
	Resolver struct {
		fs            afero.Fs
		env           dotenv.Environment
		substitutor   template.Substitutor
		prompter      prompt.Prompter
		store         SettingsStore
		dispatcher    dispatch.Dispatcher
		ui            UI
		logger        *log.Logger
		paths         config.Paths
		pathPrefix    string
		promptPrefix  string
		defaultSuffix string
	}
)

// NewResolver creates a Resolver for cfg.
func NewResolver(cfg *config.Config, deps Dependencies) *Resolver {
	paths := cfg.Paths()

	if deps.FS == nil {
		deps.FS = afero.NewOsFs()
	}
	if deps.Environment == nil {
		deps.Environment = dotenv.OSEnvironment{}
	}
	if deps.Substitutor == nil {
		deps.Substitutor = template.NewSubstitutor()
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Prompter == nil {
		pc := prompt.DefaultConfig()
		pc.NoInteraction = cfg.NoInteraction
		deps.Prompter = prompt.New(pc)
	}
	if deps.Store == nil {
		deps.Store = store.New(deps.FS, store.Options{
			SettingsFile: paths.SettingsFile,
			LegacyFile:   paths.LegacySettingsFile,
			Marker:       cfg.Marker,
		}, deps.Logger)
	}
	if deps.Dispatcher == nil {
		deps.Dispatcher = dispatch.NewExecDispatcher(paths.ConsoleBinary, paths.ComposerRoot, deps.Logger)
	}
	if deps.UI == nil {
		deps.UI = NopUI{}
	}

	return &Resolver{
		fs:            deps.FS,
		env:           deps.Environment,
		substitutor:   deps.Substitutor,
		prompter:      deps.Prompter,
		store:         deps.Store,
		dispatcher:    deps.Dispatcher,
		ui:            deps.UI,
		logger:        deps.Logger,
		paths:         paths,
		pathPrefix:    cfg.PathPrefix,
		promptPrefix:  cfg.PromptPrefix,
		defaultSuffix: cfg.DefaultSuffix,
	}
}

// Run performs the setup. Errors after the env file was written leave it in
// place; there is no rollback.
func (r *Resolver) Run(ctx context.Context, opts Options) (*Result, error) {
	r.ui.Start()

	data, err := afero.ReadFile(r.fs, r.paths.DistFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingRequiredFileError{Path: r.paths.DistFile}
		}
		return nil, fmt.Errorf("failed to read env template: %w", err)
	}
	text := string(data)

	parser := dotenv.NewParser(r.env)

	installEntries, err := parser.ParseFile(r.fs, r.paths.InstallFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt file: %w", err)
	}
	if len(installEntries) > 0 {
		r.ui.PromptIntro()
	}

	text, answered, err := r.promptPass(ctx, text, installEntries)
	if err != nil {
		return nil, err
	}

	r.ui.Step(StepGenerateEnv)

	tree, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	distEntries, err := parser.Parse(data, r.paths.DistFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env template: %w", err)
	}

	result := &Result{
		Answered: answered,
		Residual: tree,
		EnvFile:  r.paths.EnvFile,
		DryRun:   opts.DryRun,
	}
	result.Text, result.Resolved, result.Skipped, err = r.pathValuePass(text, distEntries, tree)
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		r.logger.Debug("dry run, nothing written", "resolved", len(result.Resolved), "skipped", len(result.Skipped))
		return result, nil
	}

	if err := afero.WriteFile(r.fs, r.paths.EnvFile, []byte(result.Text), 0o644); err != nil {
		return nil, &store.WriteError{Path: r.paths.EnvFile, Err: err}
	}
	r.logger.Debug("wrote env file", "file", r.paths.EnvFile)

	r.ui.Step(StepMergeSettings)
	if err := r.store.Save(ctx, tree); err != nil {
		return nil, err
	}

	if err := r.dispatcher.Execute(ctx, ExtractCommand, nil); err != nil {
		return nil, err
	}
	if err := r.dispatcher.Execute(ctx, DumpCommand, dispatch.Options{"no-dev": !opts.DevMode}); err != nil {
		return nil, err
	}

	r.ui.Done(result)
	return result, nil
}

// promptPass asks every prompt key of the install file and substitutes the
// answers for their ${KEY} placeholders. Empty answers are asked again.
func (r *Resolver) promptPass(ctx context.Context, text string, entries dotenv.Entries) (string, []string, error) {
	var answered []string

	for _, entry := range entries {
		if !r.isPromptKey(entry.Name) {
			continue
		}

		def := r.promptDefault(entry.Name, entries)

		answer := ""
		for answer == "" {
			a, err := r.prompter.Ask(ctx, entry.Value, def)
			if err != nil {
				return "", nil, &PromptError{Name: entry.Name, Err: err}
			}
			answer = a
		}

		text = r.substitutor.ReplacePlaceholder(text, entry.Name, answer)
		answered = append(answered, entry.Name)
		r.logger.Debug("answered prompt", "key", entry.Name)
	}

	return text, answered, nil
}

func (r *Resolver) isPromptKey(name string) bool {
	return strings.HasPrefix(name, r.promptPrefix) && !strings.HasSuffix(name, r.defaultSuffix)
}

// promptDefault returns <name>_DEFAULT from the environment, falling back to
// the install file.
func (r *Resolver) promptDefault(name string, entries dotenv.Entries) string {
	key := name + r.defaultSuffix
	if v, ok := r.env.Lookup(key); ok && v != "" {
		return v
	}
	v, _ := entries.Get(key)
	return v
}

// pathValuePass fills KEY="" assignments of path-prefixed template keys from
// tree and removes every used path. Keys whose path is invalid, absent or
// addresses a subtree or list are skipped and leave text and tree untouched.
func (r *Resolver) pathValuePass(text string, entries dotenv.Entries, tree settings.Tree) (string, []string, []string, error) {
	var resolved, skipped []string

	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name, r.pathPrefix) {
			continue
		}

		path, err := settings.PathFromEnvKey(r.pathPrefix, entry.Name)
		if err != nil {
			r.logger.Debug("skipping key with invalid path", "key", entry.Name, "err", err)
			skipped = append(skipped, entry.Name)
			continue
		}

		value, err := tree.Get(path)
		if err != nil {
			r.logger.Debug("no settings value for key", "key", entry.Name, "path", path.String())
			skipped = append(skipped, entry.Name)
			continue
		}

		s, ok := scalarString(value)
		if !ok {
			r.logger.Debug("skipping key addressing a non-scalar value", "key", entry.Name, "path", path.String())
			skipped = append(skipped, entry.Name)
			continue
		}

		var filled bool
		text, filled = r.substitutor.FillEmpty(text, entry.Name, s)
		if !filled {
			r.logger.Debug("no empty assignment to fill", "key", entry.Name)
		}

		if err := tree.Remove(path); err != nil {
			return "", nil, nil, fmt.Errorf("failed to remove resolved path %s: %w", path, err)
		}
		resolved = append(resolved, entry.Name)
	}

	return text, resolved, skipped, nil
}

// scalarString converts a settings leaf to its env representation. Subtrees and
// lists have none.
func scalarString(v any) (string, bool) {
	switch v.(type) {
	case settings.Tree, map[string]any, []any:
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}
