// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"petripack-cli/internal/config"
	"petripack-cli/internal/issue"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage petripack configuration",
	Long: `Manage petripack configuration.

Configuration is stored in:
  - Linux: ~/.config/petripack/config.cue
  - macOS: ~/Library/Application Support/petripack/config.cue
  - Windows: %APPDATA%\petripack\config.cue

A config.cue in the working directory takes effect when no file exists at the
platform location.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile()
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
			cfg, _, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	})
}

func showConfig(cmd *cobra.Command) error {
	cfg, cfgPath, err := config.Load(cmd.Context())
	if err != nil {
		if verbose {
			if rendered, renderErr := issue.Lookup(issue.ConfigLoadFailedId).Render("dark"); renderErr == nil {
				fmt.Fprint(os.Stderr, rendered)
			}
		}
		return err
	}

	keyStyle := ValueStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	if cfgPath != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	if len(cfg.InputDirectories) > 0 {
		fmt.Printf("%s:\n", keyStyle.Render("input_directories"))
		for _, dir := range cfg.InputDirectories {
			fmt.Printf("  - %s\n", valueStyle.Render(dir))
		}
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("input_directory"), valueStyle.Render(cfg.InputDirectory))
	}
	fmt.Printf("%s: %s\n", keyStyle.Render("output_directory"), valueStyle.Render(cfg.OutputDirectory))
	fmt.Printf("%s: %s\n", keyStyle.Render("multi_application"), valueStyle.Render(fmt.Sprintf("%v", cfg.MultiApplication)))
	fmt.Printf("%s: %s\n", keyStyle.Render("zip_prefix"), renderOptional(cfg.ZipPrefix))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("app"))
	fmt.Printf("  id: %s\n", renderOptional(cfg.App.ID))
	fmt.Printf("  name: %s\n", renderOptional(cfg.App.Name))
	fmt.Printf("  description: %s\n", renderOptional(cfg.App.Description))
	fmt.Printf("  version: %s\n", renderOptional(cfg.App.Version))
	fmt.Printf("  author: %s\n", renderOptional(cfg.App.Author))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("project"))
	fmt.Printf("  version: %s\n", valueStyle.Render(cfg.Project.Version))
	fmt.Printf("  author: %s\n", renderOptional(cfg.Project.Author))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("exclude"))
	if len(cfg.Exclude) == 0 {
		fmt.Printf("  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, pattern := range cfg.Exclude {
			fmt.Printf("  - %s\n", valueStyle.Render(pattern))
		}
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

// renderOptional renders a value that may be empty, showing the default
// marker instead of an empty string.
func renderOptional(value string) string {
	if strings.TrimSpace(value) == "" {
		return SubtitleStyle.Render("(derived)")
	}
	return SuccessStyle.Render(value)
}

func initConfigFile() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	if _, statErr := os.Stat(cfgPath); statErr == nil {
		return fmt.Errorf("config file already exists at %s", cfgPath)
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(cfgPath, []byte(config.GenerateCUE(config.DefaultConfig())), 0o644); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}
