// SPDX-License-Identifier: MPL-2.0

package config

type (
	// Config is the resolved petripack configuration. Values come from the
	// config file merged over built-in defaults; command-line flags override
	// individual fields at the cmd layer.
	Config struct {
		// InputDirectory is the directory holding the process XML files.
		InputDirectory string `mapstructure:"input_directory"`
		// InputDirectories overrides InputDirectory when non-empty; each
		// entry is packaged independently.
		InputDirectories []string `mapstructure:"input_directories"`
		// OutputDirectory receives the produced ZIP archives.
		OutputDirectory string `mapstructure:"output_directory"`
		// MultiApplication treats each subdirectory of the input directory
		// as one application instead of packaging the whole tree.
		MultiApplication bool `mapstructure:"multi_application"`
		// App holds explicit manifest metadata; empty fields fall back to
		// per-application defaults.
		App AppConfig `mapstructure:"app"`
		// Project holds the project-level fallback values.
		Project ProjectConfig `mapstructure:"project"`
		// Exclude lists regular expressions matched against whole process
		// names; matching processes are dropped from manifest and archive.
		Exclude []string `mapstructure:"exclude"`
		// ZipPrefix is prepended to the archive name in single-application
		// mode. Multi-application archives ignore it.
		ZipPrefix string `mapstructure:"zip_prefix"`
		// UI holds presentation settings.
		UI UIConfig `mapstructure:"ui"`
	}

	// AppConfig carries the five manifest metadata fields. Empty values mean
	// "derive from the application base name" (id, name, description) or
	// "use the project-level fallback" (version, author).
	AppConfig struct {
		ID          string `mapstructure:"id"`
		Name        string `mapstructure:"name"`
		Description string `mapstructure:"description"`
		Version     string `mapstructure:"version"`
		Author      string `mapstructure:"author"`
	}

	// ProjectConfig provides project-level fallbacks: Version backs the
	// appVersion default, Author is the resolved first-developer name used
	// before falling back to "unknown".
	ProjectConfig struct {
		Version string `mapstructure:"version"`
		Author  string `mapstructure:"author"`
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		Verbose bool `mapstructure:"verbose"`
	}
)

// DefaultInputDirectory mirrors the conventional Maven resource layout the
// packager historically reads from.
const DefaultInputDirectory = "src/main/resources/petriNets"

// DefaultOutputDirectory is where archives land when not configured.
const DefaultOutputDirectory = "target/petriflow-zips"

// DefaultProjectVersion backs the appVersion fallback chain.
const DefaultProjectVersion = "1.0.0"

// DefaultConfig returns the built-in configuration defaults.
func DefaultConfig() *Config {
	return &Config{
		InputDirectory:  DefaultInputDirectory,
		OutputDirectory: DefaultOutputDirectory,
		Project: ProjectConfig{
			Version: DefaultProjectVersion,
		},
	}
}
