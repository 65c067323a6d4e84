// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"typo3-setup-cli/internal/config"
	"typo3-setup-cli/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `typo3-setup config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect typo3-setup configuration",
		Long: `Inspect typo3-setup configuration.

Configuration is layered, highest precedence first:
  - command-line flags
  - TYPO3_PATH_COMPOSER_ROOT, TYPO3_PATH_ROOT, TYPO3_SETUP_NO_INTERACTION
  - <composer root>/` + config.ConfigFileName + `.` + config.ConfigFileExt + ` (or --config)
  - built-in defaults`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), nil)
			if err != nil {
				return app.fail(cmd, err, issue.ConfigLoadFailedId)
			}

			cueContent, err := config.GenerateCUE(cfg)
			if err != nil {
				return app.fail(cmd, err, 0)
			}
			fmt.Fprint(app.stdout, cueContent)
			return nil
		},
	})

	return cfgCmd
}
