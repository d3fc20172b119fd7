// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"petripack-cli/internal/config"
	"petripack-cli/internal/issue"
	"petripack-cli/internal/packager"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Packaging flags, shared between `package` and `watch`. Each command
	// registers its own cobra flag set bound to these variables; the two
	// commands are never active in the same invocation.
	flagInputs         []string
	flagOutput         string
	flagMultiApp       bool
	flagAppID          string
	flagAppName        string
	flagAppDescription string
	flagAppVersion     string
	flagAppAuthor      string
	flagExclude        []string
	flagZipPrefix      string

	packageCmd = &cobra.Command{
		Use:   "package",
		Short: "Package process definitions into application archives",
		Long: `Package Petriflow process definition XML files into application archives.

Every .xml file below the input directory (except manifest.xml) is collected,
its relative path flattened into a unique process name, and the result bundled
together with a generated manifest into a ZIP archive.

With --multi-app each immediate subdirectory of the input directory becomes
its own archive; loose XML files at the input root form an extra 'root'
application.`,
		Args: cobra.NoArgs,
		RunE: runPackage,
	}
)

func init() {
	addPackagingFlags(packageCmd)
}

// addPackagingFlags registers the shared packaging flags on cmd.
func addPackagingFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&flagInputs, "input", "i", nil, "input directory (repeatable; default src/main/resources/petriNets)")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output directory for archives (default target/petriflow-zips)")
	cmd.Flags().BoolVar(&flagMultiApp, "multi-app", false, "package each subdirectory of the input as its own application")
	cmd.Flags().StringVar(&flagAppID, "app-id", "", "application id data field (default: application base name)")
	cmd.Flags().StringVar(&flagAppName, "app-name", "", "application name data field (default: application base name)")
	cmd.Flags().StringVar(&flagAppDescription, "app-description", "", "application description data field")
	cmd.Flags().StringVar(&flagAppVersion, "app-version", "", "application version data field (default: project version)")
	cmd.Flags().StringVar(&flagAppAuthor, "app-author", "", "application author data field (default: project author)")
	cmd.Flags().StringArrayVarP(&flagExclude, "exclude", "e", nil, "regular expression excluding matching process names (repeatable)")
	cmd.Flags().StringVar(&flagZipPrefix, "zip-prefix", "", "archive name prefix (single-application mode only)")
}

// buildRequests merges the resolved configuration with the packaging flags of
// cmd into one Request per input directory. Flags win over config values;
// list-valued flags replace the configured lists rather than appending.
func buildRequests(cmd *cobra.Command, cfg *config.Config) []*packager.Request {
	inputs := cfg.InputDirectories
	if len(inputs) == 0 {
		inputs = []string{cfg.InputDirectory}
	}
	if cmd.Flags().Changed("input") {
		inputs = flagInputs
	}

	output := cfg.OutputDirectory
	if cmd.Flags().Changed("output") {
		output = flagOutput
	}

	multiApp := cfg.MultiApplication
	if cmd.Flags().Changed("multi-app") {
		multiApp = flagMultiApp
	}

	exclude := cfg.Exclude
	if cmd.Flags().Changed("exclude") {
		exclude = flagExclude
	}

	zipPrefix := cfg.ZipPrefix
	if cmd.Flags().Changed("zip-prefix") {
		zipPrefix = flagZipPrefix
	}

	meta := packager.Metadata{
		ID:          firstNonEmpty(flagAppID, cfg.App.ID),
		Name:        firstNonEmpty(flagAppName, cfg.App.Name),
		Description: firstNonEmpty(flagAppDescription, cfg.App.Description),
		Version:     firstNonEmpty(flagAppVersion, cfg.App.Version),
		Author:      firstNonEmpty(flagAppAuthor, cfg.App.Author),
	}

	requests := make([]*packager.Request, 0, len(inputs))
	for _, input := range inputs {
		requests = append(requests, &packager.Request{
			InputDir:         input,
			OutputDir:        output,
			MultiApplication: multiApp,
			Exclude:          exclude,
			ZipPrefix:        zipPrefix,
			Metadata:         meta,
			ProjectVersion:   cfg.Project.Version,
			DefaultAuthor:    cfg.Project.Author,
		})
	}
	return requests
}

// firstNonEmpty returns the first non-empty string of the two.
func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// newRunLogger builds the logger used for packaging runs. Verbose mode turns
// on debug-level output (per-process exclusion decisions).
func newRunLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func runPackage(cmd *cobra.Command, _ []string) error {
	cfg, _, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	return runPackaging(cmd, buildRequests(cmd, cfg))
}

// runPackaging processes requests sequentially, aborting on the first
// failure. Archives written before the failure remain on disk.
func runPackaging(cmd *cobra.Command, requests []*packager.Request) error {
	p := packager.New(newRunLogger())

	for _, req := range requests {
		result, err := p.Run(cmd.Context(), req)
		if err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ ")+formatErrorForDisplay(err, verbose))
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return &ExitError{Code: 1}
		}
		if len(result.Archives) == 0 && req.MultiApplication {
			fmt.Fprintf(os.Stderr, "%s no applications found in %s\n", WarningStyle.Render("!"), req.InputDir)
			if verbose {
				if rendered, renderErr := issue.Lookup(issue.NoApplicationsFoundId).Render("dark"); renderErr == nil {
					fmt.Fprint(os.Stderr, rendered)
				}
			}
		}
		for _, archive := range result.Archives {
			fmt.Printf("%s %s %s\n",
				SuccessStyle.Render("✓"),
				ValueStyle.Render(archive.Path),
				SubtitleStyle.Render(fmt.Sprintf("(%d processes, %d excluded)",
					len(archive.Included), len(archive.Excluded))),
			)
		}
	}
	return nil
}
