// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"tcbench/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tcbench configuration",
	Long: `Manage tcbench configuration.

Configuration is stored in:
  - Linux: ~/.config/tcbench/config.toml
  - macOS: ~/Library/Application Support/tcbench/config.toml
  - Windows: %APPDATA%\tcbench\config.toml

All values can also be set via TCBENCH_* environment variables.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfigPath(cmd)
		},
	})
}

// showConfig prints the effective configuration, after defaults, the
// config file, and environment overrides have been merged, as TOML.
func showConfig(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(cmd, err)
	}

	out, err := toml.Marshal(cfg)
	if err != nil {
		return reportError(cmd, fmt.Errorf("encoding configuration: %w", err))
	}

	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

func showConfigPath(cmd *cobra.Command) error {
	if cfgFile != "" {
		fmt.Fprintln(cmd.OutOrStdout(), cfgFile)
		return nil
	}

	dir, err := config.ConfigDir()
	if err != nil {
		return reportError(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}
