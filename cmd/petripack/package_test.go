// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"petripack-cli/internal/config"
	"petripack-cli/internal/issue"

	"github.com/spf13/cobra"
)

// newPackagingCommand builds a throwaway command carrying the packaging flags
// and resets the shared flag variables when the test finishes.
func newPackagingCommand(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addPackagingFlags(cmd)
	t.Cleanup(func() {
		flagInputs = nil
		flagOutput = ""
		flagMultiApp = false
		flagAppID = ""
		flagAppName = ""
		flagAppDescription = ""
		flagAppVersion = ""
		flagAppAuthor = ""
		flagExclude = nil
		flagZipPrefix = ""
	})
	return cmd
}

func setFlag(t *testing.T, cmd *cobra.Command, name, value string) {
	t.Helper()
	if err := cmd.Flags().Set(name, value); err != nil {
		t.Fatalf("set flag %s: %v", name, err)
	}
}

func TestBuildRequestsDefaults(t *testing.T) {
	cmd := newPackagingCommand(t)
	cfg := config.DefaultConfig()

	requests := buildRequests(cmd, cfg)
	if len(requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(requests))
	}

	req := requests[0]
	if req.InputDir != config.DefaultInputDirectory {
		t.Errorf("InputDir = %q, want default", req.InputDir)
	}
	if req.OutputDir != config.DefaultOutputDirectory {
		t.Errorf("OutputDir = %q, want default", req.OutputDir)
	}
	if req.MultiApplication {
		t.Error("MultiApplication should default to false")
	}
	if req.ProjectVersion != config.DefaultProjectVersion {
		t.Errorf("ProjectVersion = %q, want default", req.ProjectVersion)
	}
}

func TestBuildRequestsFlagsOverrideConfig(t *testing.T) {
	cmd := newPackagingCommand(t)
	setFlag(t, cmd, "input", "nets")
	setFlag(t, cmd, "output", "dist")
	setFlag(t, cmd, "multi-app", "true")
	setFlag(t, cmd, "exclude", ".*Test.*")
	setFlag(t, cmd, "zip-prefix", "release")
	setFlag(t, cmd, "app-author", "cli-author")

	cfg := config.DefaultConfig()
	cfg.InputDirectory = "configured"
	cfg.Exclude = []string{"configured-pattern"}
	cfg.App.Author = "config-author"
	cfg.Project.Author = "first-dev"

	requests := buildRequests(cmd, cfg)
	if len(requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(requests))
	}

	req := requests[0]
	if req.InputDir != "nets" || req.OutputDir != "dist" {
		t.Errorf("dirs = %q/%q, flags must win over config", req.InputDir, req.OutputDir)
	}
	if !req.MultiApplication {
		t.Error("MultiApplication flag not applied")
	}
	// A list flag replaces the configured list, it does not append.
	if len(req.Exclude) != 1 || req.Exclude[0] != ".*Test.*" {
		t.Errorf("Exclude = %v, want flag value only", req.Exclude)
	}
	if req.ZipPrefix != "release" {
		t.Errorf("ZipPrefix = %q", req.ZipPrefix)
	}
	if req.Metadata.Author != "cli-author" {
		t.Errorf("Metadata.Author = %q, flag must win over config", req.Metadata.Author)
	}
	if req.DefaultAuthor != "first-dev" {
		t.Errorf("DefaultAuthor = %q, want project author", req.DefaultAuthor)
	}
}

func TestBuildRequestsMultipleInputs(t *testing.T) {
	cmd := newPackagingCommand(t)
	setFlag(t, cmd, "input", "apps/billing")
	setFlag(t, cmd, "input", "apps/hr")

	requests := buildRequests(cmd, config.DefaultConfig())
	if len(requests) != 2 {
		t.Fatalf("requests = %d, want one per input", len(requests))
	}
	if requests[0].InputDir != "apps/billing" || requests[1].InputDir != "apps/hr" {
		t.Errorf("inputs = %q, %q", requests[0].InputDir, requests[1].InputDir)
	}
}

func TestBuildRequestsConfiguredInputDirectories(t *testing.T) {
	cmd := newPackagingCommand(t)
	cfg := config.DefaultConfig()
	cfg.InputDirectories = []string{"a", "b", "c"}

	requests := buildRequests(cmd, cfg)
	if len(requests) != 3 {
		t.Fatalf("requests = %d, want one per configured directory", len(requests))
	}

	// An explicit --input replaces the whole configured list.
	cmd2 := newPackagingCommand(t)
	setFlag(t, cmd2, "input", "only")
	requests = buildRequests(cmd2, cfg)
	if len(requests) != 1 || requests[0].InputDir != "only" {
		t.Errorf("requests = %+v, want single flag-specified input", requests)
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	plain := errors.New("plain failure")
	if got := formatErrorForDisplay(plain, false); got != "plain failure" {
		t.Errorf("formatErrorForDisplay(plain) = %q", got)
	}

	actionable := issue.NewErrorContext().
		WithOperation("write archive").
		WithResource("out/app.zip").
		WithSuggestion("Check permissions").
		Wrap(errors.New("disk full")).
		BuildError()
	got := formatErrorForDisplay(actionable, false)
	for _, want := range []string{"write archive", "out/app.zip", "Check permissions"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatted error missing %q:\n%s", want, got)
		}
	}
}

func TestFormatErrorForDisplayRendersCatalogEntry(t *testing.T) {
	actionable := issue.NewErrorContext().
		WithOperation("compile exclusion patterns").
		WithIssue(issue.BadExcludePatternId).
		Wrap(errors.New("missing closing ]")).
		BuildError()

	// Verbose mode appends the glamour-rendered catalog help text.
	verboseOut := formatErrorForDisplay(actionable, true)
	if !strings.Contains(verboseOut, "RE2") {
		t.Errorf("verbose output missing catalog help text:\n%s", verboseOut)
	}

	plainOut := formatErrorForDisplay(actionable, false)
	if strings.Contains(plainOut, "RE2") {
		t.Errorf("non-verbose output should not include catalog help text:\n%s", plainOut)
	}

	// Errors without a catalog id must format cleanly in verbose mode too.
	noCatalog := issue.NewErrorContext().
		WithOperation("write archive").
		Wrap(errors.New("disk full")).
		BuildError()
	if got := formatErrorForDisplay(noCatalog, true); !strings.Contains(got, "disk full") {
		t.Errorf("verbose output without catalog id = %q", got)
	}
}
