// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"petripack-cli/internal/config"
	"petripack-cli/internal/packager"
	"petripack-cli/internal/watch"

	"github.com/spf13/cobra"
)

var (
	flagWatchDebounce time.Duration
	flagWatchClear    bool

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Repackage automatically when process files change",
		Long: `Watch the input directories and repackage on every change to a process
XML file. Rapid successive changes (e.g., an editor writing then renaming a
temp file) are coalesced into a single repackaging run.

All packaging flags of 'petripack package' apply. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
)

func init() {
	addPackagingFlags(watchCmd)
	watchCmd.Flags().DurationVar(&flagWatchDebounce, "debounce", watch.DefaultDebounce, "quiet period after the last change before repackaging")
	watchCmd.Flags().BoolVar(&flagWatchClear, "clear", false, "clear the terminal before each repackaging run")
}

// runWatch packages once immediately, then repackages on every debounced
// change to a process file until the context is cancelled.
func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, _, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	requests := buildRequests(cmd, cfg)

	dirs := make([]string, 0, len(requests))
	for _, req := range requests {
		dirs = append(dirs, req.InputDir)
	}

	// Re-run packaging through the same pipeline as `petripack package`.
	repackage := func(ctx context.Context) {
		p := packager.New(newRunLogger())
		for _, req := range requests {
			result, runErr := p.Run(ctx, req)
			if runErr != nil {
				// Log but don't stop - the user may fix the error and save again.
				fmt.Fprintf(os.Stderr, "%s %s\n", WarningStyle.Render("!"), formatErrorForDisplay(runErr, verbose))
				return
			}
			for _, archive := range result.Archives {
				fmt.Printf("%s %s\n", SuccessStyle.Render("✓"), ValueStyle.Render(archive.Path))
			}
		}
	}

	fmt.Printf("%s Watch mode: initial packaging run\n", VerboseHighlightStyle.Render("→"))
	repackage(cmd.Context())
	fmt.Printf("\n%s Watching for changes (Ctrl+C to stop)...\n\n", VerboseHighlightStyle.Render("→"))

	w, err := watch.New(watch.Config{
		Dirs:        dirs,
		Debounce:    flagWatchDebounce,
		ClearScreen: flagWatchClear,
		OnChange: func(ctx context.Context, changed []string) error {
			fmt.Printf("%s Detected %d change(s). Repackaging...\n", VerboseHighlightStyle.Render("→"), len(changed))
			repackage(ctx)
			fmt.Printf("\n%s Watching for changes...\n\n", VerboseHighlightStyle.Render("→"))
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	return w.Run(cmd.Context())
}
