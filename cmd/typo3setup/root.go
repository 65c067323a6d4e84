// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"typo3-setup-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "typo3-setup",
		Short: "One-time TYPO3 configuration bootstrap",
		Long: TitleStyle.Render("typo3-setup") + SubtitleStyle.Render(" - One-time TYPO3 configuration bootstrap") + `

typo3-setup turns a distribution's env template into a working .env file.
Keys of the form TYPO3__A__B take their value from the project settings
path A.B, which is then removed from the settings. Keys listed in
.env.install are asked interactively on the first run.

` + SubtitleStyle.Render("Files (relative to the composer root):") + `
  .env.dist                         env template (required)
  .env.install                      first-run prompts (optional)
  conf/settings.cue                 project settings (required)
  <web root>/typo3conf/LocalConfiguration.yaml
                                    legacy settings (optional)

` + SubtitleStyle.Render("Examples:") + `
  typo3-setup run                   Generate .env and merge settings
  typo3-setup run --dry-run         Print the .env that would be written
  typo3-setup settings get DB.Connections.Default.host
  typo3-setup config show           Show the effective configuration`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configFile, "config", "", "config file (default is <composer root>/typo3-setup.cue)")

	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newSettingsCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI with production dependencies. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(exitFailure)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
