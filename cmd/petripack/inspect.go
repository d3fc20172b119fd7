// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"petripack-cli/pkg/petriflow"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <archive>...",
	Short: "Show the manifest of packaged application archives",
	Long: `Inspect one or more application archives: print the manifest metadata, the
packaged process names, and the archive entries. Archives without a valid
manifest or with entries outside processes/ are rejected.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	failed := false
	for i, path := range args {
		if i > 0 {
			fmt.Println()
		}
		info, err := petriflow.Inspect(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ ")+formatErrorForDisplay(err, verbose))
			failed = true
			continue
		}
		printArchiveInfo(info)
	}
	if failed {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: 1}
	}
	return nil
}

func printArchiveInfo(info *petriflow.ArchiveInfo) {
	fmt.Println(TitleStyle.Render(info.Path))
	fmt.Println()

	keyStyle := ValueStyle
	fmt.Printf("%s: %s\n", keyStyle.Render("app_id"), info.Metadata.ID)
	fmt.Printf("%s: %s\n", keyStyle.Render("name"), info.Metadata.Name)
	fmt.Printf("%s: %s\n", keyStyle.Render("description"), info.Metadata.Description)
	fmt.Printf("%s: %s\n", keyStyle.Render("version"), info.Metadata.Version)
	fmt.Printf("%s: %s\n", keyStyle.Render("author"), info.Metadata.Author)

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("processes"))
	if len(info.AllowedNets) == 0 {
		fmt.Printf("  %s\n", SubtitleStyle.Render("(none)"))
	}
	for _, name := range info.AllowedNets {
		fmt.Printf("  - %s\n", name)
	}

	fmt.Println()
	fmt.Printf("%s: %d process file(s)\n", keyStyle.Render("entries"), len(info.ProcessEntries))
}
