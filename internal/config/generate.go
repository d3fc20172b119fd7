// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"
)

// GenerateCUE renders cfg as a commented CUE document, used by
// `petripack config init` and `petripack config dump`.
func GenerateCUE(cfg *Config) string {
	var b strings.Builder

	b.WriteString("// petripack configuration\n")
	b.WriteString("// All fields are optional; unset fields use built-in defaults.\n\n")

	fmt.Fprintf(&b, "// Directory holding the process XML files.\n")
	fmt.Fprintf(&b, "input_directory: %q\n\n", cfg.InputDirectory)

	b.WriteString("// Packaging several directories: overrides input_directory when non-empty.\n")
	if len(cfg.InputDirectories) == 0 {
		b.WriteString("// input_directories: [\"apps/billing\", \"apps/hr\"]\n\n")
	} else {
		b.WriteString("input_directories: [\n")
		for _, dir := range cfg.InputDirectories {
			fmt.Fprintf(&b, "\t%q,\n", dir)
		}
		b.WriteString("]\n\n")
	}

	fmt.Fprintf(&b, "// Destination for the produced ZIP archives.\n")
	fmt.Fprintf(&b, "output_directory: %q\n\n", cfg.OutputDirectory)

	fmt.Fprintf(&b, "// Treat each subdirectory of the input directory as one application.\n")
	fmt.Fprintf(&b, "multi_application: %v\n\n", cfg.MultiApplication)

	b.WriteString("// Explicit manifest metadata. Empty values fall back to per-application\n")
	b.WriteString("// defaults derived from the directory name.\n")
	b.WriteString("app: {\n")
	fmt.Fprintf(&b, "\tid:          %q\n", cfg.App.ID)
	fmt.Fprintf(&b, "\tname:        %q\n", cfg.App.Name)
	fmt.Fprintf(&b, "\tdescription: %q\n", cfg.App.Description)
	fmt.Fprintf(&b, "\tversion:     %q\n", cfg.App.Version)
	fmt.Fprintf(&b, "\tauthor:      %q\n", cfg.App.Author)
	b.WriteString("}\n\n")

	b.WriteString("// Project-level fallbacks for version and author.\n")
	b.WriteString("project: {\n")
	fmt.Fprintf(&b, "\tversion: %q\n", cfg.Project.Version)
	fmt.Fprintf(&b, "\tauthor:  %q\n", cfg.Project.Author)
	b.WriteString("}\n\n")

	b.WriteString("// Regular expressions matched against whole process names.\n")
	if len(cfg.Exclude) == 0 {
		b.WriteString("// exclude: [\".*Test.*\"]\n\n")
	} else {
		b.WriteString("exclude: [\n")
		for _, pattern := range cfg.Exclude {
			fmt.Fprintf(&b, "\t%q,\n", pattern)
		}
		b.WriteString("]\n\n")
	}

	fmt.Fprintf(&b, "// Prefix for the archive name in single-application mode.\n")
	fmt.Fprintf(&b, "zip_prefix: %q\n\n", cfg.ZipPrefix)

	b.WriteString("ui: {\n")
	fmt.Fprintf(&b, "\tverbose: %v\n", cfg.UI.Verbose)
	b.WriteString("}\n")

	return b.String()
}
