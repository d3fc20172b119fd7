// SPDX-License-Identifier: MPL-2.0

package packager

import "petripack-cli/pkg/petriflow"

type (
	// Metadata carries the user-supplied manifest fields of a Request. Empty
	// fields are resolved per application via the fallback chain in
	// resolveMetadata.
	Metadata struct {
		ID          string
		Name        string
		Description string
		Version     string
		Author      string
	}

	// Request describes one packaging run over a single input directory. It
	// is built from resolved configuration before processing starts and is
	// not mutated afterwards.
	Request struct {
		// InputDir is the directory to package.
		InputDir string
		// OutputDir receives the archives; created (with parents) if absent.
		OutputDir string
		// MultiApplication packages each subdirectory of InputDir as its own
		// application instead of the whole tree.
		MultiApplication bool
		// Exclude holds the raw exclusion patterns; compiled once per run.
		Exclude []string
		// ZipPrefix is prepended to the archive name in single-application
		// mode only.
		ZipPrefix string
		// Metadata are the explicit manifest values; empty fields fall back.
		Metadata Metadata
		// ProjectVersion backs the version fallback.
		ProjectVersion string
		// DefaultAuthor backs the author fallback; empty means "unknown".
		DefaultAuthor string
	}
)

// unknownAuthor is the terminal author fallback.
const unknownAuthor = "unknown"

// orDefault returns the user value when non-empty, the fallback otherwise.
// A nil-equivalent fallback collapses to the empty string.
func orDefault(userValue, fallback string) string {
	if userValue != "" {
		return userValue
	}
	return fallback
}

// resolveMetadata applies the per-field fallback chain for one application:
// explicit value first, then a field-specific default derived from the
// application base name or the project-level values.
func (r *Request) resolveMetadata(baseName string) petriflow.Metadata {
	return petriflow.Metadata{
		ID:          orDefault(r.Metadata.ID, baseName),
		Name:        orDefault(r.Metadata.Name, baseName),
		Description: orDefault(r.Metadata.Description, "Petriflow application "+baseName),
		Version:     orDefault(r.Metadata.Version, r.ProjectVersion),
		Author:      orDefault(r.Metadata.Author, orDefault(r.DefaultAuthor, unknownAuthor)),
	}
}

// zipFileName returns the archive file name for an application. The prefix
// applies only in single-application mode; multi-application archives are
// always named after the subdirectory (or "root").
func (r *Request) zipFileName(baseName string) string {
	if !r.MultiApplication && r.ZipPrefix != "" {
		return r.ZipPrefix + "_" + baseName + ".zip"
	}
	return baseName + ".zip"
}
