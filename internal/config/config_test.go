// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig writes content as config.cue in a temp dir and returns the dir.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Point the config dir at an empty temp dir so no real file interferes.
	cfg, path, err := LoadWithOptions(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("LoadWithOptions() error = %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty for defaults-only load", path)
	}
	if cfg.InputDirectory != DefaultInputDirectory {
		t.Errorf("InputDirectory = %q, want %q", cfg.InputDirectory, DefaultInputDirectory)
	}
	if cfg.OutputDirectory != DefaultOutputDirectory {
		t.Errorf("OutputDirectory = %q, want %q", cfg.OutputDirectory, DefaultOutputDirectory)
	}
	if cfg.Project.Version != DefaultProjectVersion {
		t.Errorf("Project.Version = %q, want %q", cfg.Project.Version, DefaultProjectVersion)
	}
	if cfg.MultiApplication {
		t.Error("MultiApplication default should be false")
	}
	if len(cfg.Exclude) != 0 {
		t.Errorf("Exclude default = %v, want empty", cfg.Exclude)
	}
}

func TestLoadFromConfigDir(t *testing.T) {
	dir := writeConfig(t, `
input_directory: "nets"
output_directory: "dist"
multi_application: true
app: {
	author: "jane"
}
project: {
	version: "7.0.0"
}
exclude: [".*Test.*", "Draft_.*"]
zip_prefix: "release"
ui: {
	verbose: true
}
`)

	cfg, path, err := LoadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("LoadWithOptions() error = %v", err)
	}
	if path == "" {
		t.Error("resolved path should name the loaded file")
	}
	if cfg.InputDirectory != "nets" || cfg.OutputDirectory != "dist" {
		t.Errorf("directories = %q/%q, want nets/dist", cfg.InputDirectory, cfg.OutputDirectory)
	}
	if !cfg.MultiApplication {
		t.Error("MultiApplication not loaded")
	}
	if cfg.App.Author != "jane" {
		t.Errorf("App.Author = %q, want jane", cfg.App.Author)
	}
	if cfg.Project.Version != "7.0.0" {
		t.Errorf("Project.Version = %q, want 7.0.0", cfg.Project.Version)
	}
	if len(cfg.Exclude) != 2 || cfg.Exclude[0] != ".*Test.*" {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
	if cfg.ZipPrefix != "release" {
		t.Errorf("ZipPrefix = %q", cfg.ZipPrefix)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose not loaded")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := writeConfig(t, `zip_prefix: "ci"`)

	cfg, _, err := LoadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("LoadWithOptions() error = %v", err)
	}
	if cfg.ZipPrefix != "ci" {
		t.Errorf("ZipPrefix = %q, want ci", cfg.ZipPrefix)
	}
	if cfg.InputDirectory != DefaultInputDirectory {
		t.Errorf("InputDirectory = %q, defaults lost on partial config", cfg.InputDirectory)
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	dir := writeConfig(t, `no_such_field: true`)

	if _, _, err := LoadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir}); err == nil {
		t.Error("expected schema violation for unknown field")
	}
}

func TestLoadRejectsWrongType(t *testing.T) {
	dir := writeConfig(t, `multi_application: "yes"`)

	if _, _, err := LoadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir}); err == nil {
		t.Error("expected schema violation for wrong field type")
	}
}

func TestLoadExplicitFileNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.cue")
	if _, _, err := LoadWithOptions(context.Background(), LoadOptions{ConfigFilePath: missing}); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestGenerateCUERoundTrip(t *testing.T) {
	orig := DefaultConfig()
	orig.Exclude = []string{".*Test.*"}
	orig.InputDirectories = []string{"apps/billing"}
	orig.App.Author = "jane"
	rendered := GenerateCUE(orig)

	if !strings.Contains(rendered, `input_directory: "src/main/resources/petriNets"`) {
		t.Errorf("generated CUE missing input_directory:\n%s", rendered)
	}

	// The generated document must itself be loadable.
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := LoadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("generated CUE does not load: %v", err)
	}
	if cfg.App.Author != "jane" || len(cfg.Exclude) != 1 {
		t.Errorf("round-tripped config lost values: %+v", cfg)
	}
}
