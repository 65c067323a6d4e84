// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"typo3-setup-cli/internal/config"
	"typo3-setup-cli/internal/issue"
	"typo3-setup-cli/internal/settings"
	"typo3-setup-cli/internal/store"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

// newSettingsCommand creates the `typo3-setup settings` command tree. Both
// subcommands show the merged view of the legacy and canonical settings.
func newSettingsCommand(app *App) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect the project settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var showFormat string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the merged project settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSettings(cmd, app, store.Format(showFormat))
		},
	}
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "", fmt.Sprintf("output format %v (default is the settings file format)", store.Formats()))
	settingsCmd.AddCommand(showCmd)

	settingsCmd.AddCommand(&cobra.Command{
		Use:   "get <path>",
		Short: "Print the value at a dotted settings path",
		Example: `  typo3-setup settings get DB.Connections.Default.host
  typo3-setup settings get SYS`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getSetting(cmd, app, args[0])
		},
	})

	return settingsCmd
}

func showSettings(cmd *cobra.Command, app *App, format store.Format) error {
	cfg, tree, err := loadSettings(cmd.Context(), app)
	if err != nil {
		return app.fail(cmd, err, issue.ConfigLoadFailedId)
	}

	codec, err := outputCodec(cfg, format)
	if err != nil {
		return app.fail(cmd, err, 0)
	}
	data, err := codec.Encode(tree, "")
	if err != nil {
		return app.fail(cmd, err, 0)
	}

	_, err = app.stdout.Write(data)
	return err
}

func getSetting(cmd *cobra.Command, app *App, raw string) error {
	p, err := settings.ParsePath(raw)
	if err != nil {
		return app.fail(cmd, err, 0)
	}

	cfg, tree, err := loadSettings(cmd.Context(), app)
	if err != nil {
		return app.fail(cmd, err, issue.ConfigLoadFailedId)
	}

	v, err := tree.Get(p)
	if err != nil {
		return app.fail(cmd, err, 0)
	}

	if sub, ok := settings.AsTree(v); ok {
		codec, err := outputCodec(cfg, "")
		if err != nil {
			return app.fail(cmd, err, 0)
		}
		data, err := codec.Encode(sub, "")
		if err != nil {
			return app.fail(cmd, err, 0)
		}
		_, err = app.stdout.Write(data)
		return err
	}

	if list, ok := v.([]any); ok {
		for _, item := range list {
			fmt.Fprintln(app.stdout, cast.ToString(item))
		}
		return nil
	}

	fmt.Fprintln(app.stdout, cast.ToString(v))
	return nil
}

// loadSettings loads the configuration and the merged settings tree.
func loadSettings(ctx context.Context, app *App) (*config.Config, settings.Tree, error) {
	cfg, err := app.loadConfig(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	tree, err := app.settingsStore(cfg, app.newLogger()).Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	return cfg, tree, nil
}

// outputCodec returns the codec for format, or for the settings file when
// format is empty.
func outputCodec(cfg *config.Config, format store.Format) (store.Codec, error) {
	if format == "" {
		return store.CodecForPath(cfg.SettingsFile)
	}
	return store.CodecFor(format)
}
