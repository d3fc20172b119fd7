// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride allows tests and flags to override the config directory.
// This is necessary because os.UserHomeDir() doesn't reliably respect the
// HOME environment variable on all platforms (e.g., macOS in CI).
var configDirOverride string

// configFilePathOverride pins config loading to an explicit file, set from
// the --config flag.
var configFilePathOverride string

// Reset clears overrides. Call from test cleanup to restore defaults.
func Reset() {
	configDirOverride = ""
	configFilePathOverride = ""
}

// SetConfigDirOverride sets a custom config directory path.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetConfigFilePathOverride sets an explicit config file path.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}
