// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"typo3-setup-cli/internal/config"
	"typo3-setup-cli/internal/issue"
	"typo3-setup-cli/internal/setup"

	"github.com/spf13/cobra"
)

type (
	// runOptions holds the flags of the run command.
	runOptions struct {
		dev           bool
		noDev         bool
		force         bool
		dryRun        bool
		noInteraction bool
		composerRoot  string
		webRoot       string
	}

	// terminalUI prints run progress to the terminal.
	terminalUI struct {
		w             io.Writer
		verbose       bool
		consoleBinary string
	}
)

func newRunCommand(app *App) *cobra.Command {
	opts := &runOptions{}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Generate .env and merge the project settings",
		Long: `Generate the .env file from the env template and merge the project settings.

The run is skipped until TYPO3_IS_SET_UP is set to a value other than "0",
which the TYPO3 installer does once the database is set up.
After writing, the console commands settings:extract and settings:dump are
executed through the configured console binary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd, app, opts)
		},
	}

	runCmd.Flags().BoolVar(&opts.dev, "dev", false, "dump settings for development (default)")
	runCmd.Flags().BoolVar(&opts.noDev, "no-dev", false, "dump settings for production")
	runCmd.Flags().BoolVar(&opts.force, "force", false, "run even when TYPO3_IS_SET_UP is not set")
	runCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the resulting .env without writing anything")
	runCmd.Flags().BoolVarP(&opts.noInteraction, "no-interaction", "n", false, "answer every prompt with its default")
	runCmd.Flags().StringVar(&opts.composerRoot, "composer-root", "", "project root (default is $TYPO3_PATH_COMPOSER_ROOT or the working directory)")
	runCmd.Flags().StringVar(&opts.webRoot, "web-root", "", "document root (default is $TYPO3_PATH_ROOT or public)")
	runCmd.MarkFlagsMutuallyExclusive("dev", "no-dev")

	return runCmd
}

func runSetup(cmd *cobra.Command, app *App, opts *runOptions) error {
	ctx := cmd.Context()

	if !opts.force {
		gate, err := config.ParseEnvironment(app.Environment.Snapshot())
		if err != nil {
			return app.fail(cmd, err, issue.ConfigLoadFailedId)
		}
		if !gate.ShouldRun() {
			fmt.Fprintf(app.stderr, "%s TYPO3 is not set up yet (TYPO3_IS_SET_UP is unset or \"0\"), skipping. Use %s to run anyway.\n",
				WarningStyle.Render("!"), CmdStyle.Render("--force"))
			return nil
		}
	}

	cfg, err := app.loadConfig(ctx, &config.Config{
		ComposerRoot:  opts.composerRoot,
		WebRoot:       opts.webRoot,
		NoInteraction: opts.noInteraction,
	})
	if err != nil {
		return app.fail(cmd, err, issue.ConfigLoadFailedId)
	}

	logger := app.newLogger()
	logger.Debug("effective configuration", "composer_root", cfg.ComposerRoot, "web_root", cfg.WebRoot, "settings_file", cfg.SettingsFile)

	resolver := setup.NewResolver(cfg, setup.Dependencies{
		FS:          app.FS,
		Environment: app.Environment,
		Prompter:    app.prompter(cfg),
		Store:       app.settingsStore(cfg, logger),
		Dispatcher:  app.dispatcher(cfg, logger),
		UI:          &terminalUI{w: app.stderr, verbose: app.verbose, consoleBinary: cfg.ConsoleBinary},
		Logger:      logger,
	})

	result, err := resolver.Run(ctx, setup.Options{DevMode: !opts.noDev, DryRun: opts.dryRun})
	if err != nil {
		return app.fail(cmd, err, 0)
	}

	if result.DryRun {
		fmt.Fprint(app.stdout, result.Text)
		fmt.Fprintf(app.stderr, "\n%s %d resolved, %d skipped, nothing written to %s\n",
			WarningStyle.Render("dry run:"), len(result.Resolved), len(result.Skipped), CmdStyle.Render(result.EnvFile))
	}

	return nil
}

func (u *terminalUI) Start() {
	fmt.Fprintln(u.w, TitleStyle.Render("Setting up TYPO3 Configuration"))
}

func (u *terminalUI) PromptIntro() {
	fmt.Fprintf(u.w, "\n%s\n\n", SubtitleStyle.Render("Please provide some required settings for your distribution:"))
}

func (u *terminalUI) Step(msg string) {
	if u.verbose {
		fmt.Fprintf(u.w, "%s %s\n", VerboseStyle.Render("→"), VerboseStyle.Render(msg))
	}
}

func (u *terminalUI) Done(result *setup.Result) {
	fmt.Fprintf(u.w, "\n%s %s\n", SuccessStyle.Render("✓"), SuccessStyle.Render("Your TYPO3 installation is now ready to use"))
	fmt.Fprintf(u.w, "%s %s %s\n",
		SubtitleStyle.Render("Run"),
		CmdStyle.Render(u.consoleBinary+" server:run"),
		SubtitleStyle.Render("to start the PHP builtin webserver."))
}
