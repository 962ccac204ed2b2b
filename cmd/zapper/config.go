// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"zapper-cli/internal/config"
	"zapper-cli/internal/issue"
)

// configCmd is the `zapper config` command tree.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage zapper configuration",
	Long: `Manage zapper configuration.

Configuration is stored in:
  - Linux: ~/.config/zapper/config.cue
  - macOS: ~/Library/Application Support/zapper/config.cue
  - Windows: %APPDATA%\zapper\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appConfig
			if cfg == nil {
				cfg = config.DefaultConfig()
			}
			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	})
}

func showConfig() error {
	cfg := appConfig
	if cfg == nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		cfg = config.DefaultConfig()
	}

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	cfgDir, dirErr := config.ConfigDir()
	if dirErr == nil {
		cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
		if _, err := os.Stat(cfgPath); err == nil {
			fmt.Printf("%s: %s\n", CmdStyle.Render("Config file"), cfgPath)
		} else {
			fmt.Printf("%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
		}
	} else {
		fmt.Printf("%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	installer := string(cfg.Installer)
	if installer == "" {
		installer = "(search PATH)"
	}
	fmt.Printf("%s: %s\n", CmdStyle.Render("installer"), SuccessStyle.Render(installer))
	fmt.Printf("%s: %s\n", CmdStyle.Render("shebang"), SuccessStyle.Render(string(cfg.Shebang)))
	fmt.Printf("%s: %s\n", CmdStyle.Render("default_ignore"), SuccessStyle.Render(fmt.Sprintf("%v", cfg.IgnorePatterns())))
	fmt.Printf("%s: %s\n", CmdStyle.Render("ui.color_scheme"), SuccessStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Printf("%s: %s\n", CmdStyle.Render("ui.verbose"), SuccessStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func initConfig() error {
	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	fmt.Printf("%s %s\n", SuccessStyle.Render("✓"), "Configuration file ready at "+cfgPath)
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Println(filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}
