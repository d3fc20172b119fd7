// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for petripack.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"petripack-cli/internal/config"
	"petripack-cli/internal/issue"

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

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "petripack",
		Short: "Package Petriflow process definitions into application archives",
		Long: TitleStyle.Render("petripack") + SubtitleStyle.Render(" - Petriflow application packager") + `

petripack collects Petriflow process definition XML files from an input
directory, generates an application manifest describing them, and bundles
everything into a deployable ZIP archive. Nested directories are flattened
into unique process names, and processes can be excluded by regular
expression.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Put your process XML files under src/main/resources/petriNets
  2. Run: petripack package
  3. Find the archive under target/petriflow-zips

` + SubtitleStyle.Render("Examples:") + `
  petripack package                 Package the default input directory
  petripack package --multi-app     One archive per subdirectory
  petripack watch                   Repackage on file changes
  petripack inspect app.zip         Show the manifest of an archive
  petripack config show             Show the resolved configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/petripack/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(packageCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	// Load configuration
	cfg, _, err := config.Load(context.Background())
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain and the matching issue catalog
// help text.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		msg := ae.Format(verboseMode)
		if verboseMode {
			if entry := issue.Lookup(ae.IssueId); entry != nil {
				if rendered, renderErr := entry.Render("dark"); renderErr == nil {
					msg += "\n" + rendered
				}
			}
		}
		return msg
	}
	return err.Error()
}
