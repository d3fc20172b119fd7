// SPDX-License-Identifier: MPL-2.0

// Package petriflow implements the packaging core for Petriflow applications.
//
// An application is a directory tree of process-definition XML files. The
// package discovers process files under an application root, derives flattened
// process names, filters them against exclusion patterns, generates a
// manifest, and assembles everything into a ZIP archive with the layout:
//
//	manifest.xml
//	processes/<flattened-file-name>
//
// Flattened names join the path segments relative to the application root
// with underscores (e.g. "orders/invoicing/Invoice.xml" becomes
// "orders_invoicing_Invoice.xml"), so nested trees map onto the flat
// processes/ namespace inside the archive.
package petriflow

// ManifestFileName is the reserved manifest entry name. Files with this name
// (compared case-insensitively) are never treated as process definitions.
const ManifestFileName = "manifest.xml"

// ProcessEntryPrefix is the archive directory that holds all process files.
const ProcessEntryPrefix = "processes/"

// xmlSuffix is the file suffix that marks process definitions. The match is
// case-sensitive, mirroring the reference packager.
const xmlSuffix = ".xml"

type (
	// Process is one process-definition file discovered under an application
	// root. FlatName is the archive entry name (without the processes/
	// prefix); Name is FlatName with the trailing .xml removed and is the key
	// used for exclusion matching and manifest listing.
	Process struct {
		// Path is the absolute path of the source file.
		Path string
		// FlatName is the relative path with separators replaced by "_".
		FlatName string
		// Name is FlatName without the trailing .xml suffix.
		Name string
	}

	// Metadata holds the five manifest fields of an application. All values
	// are expected to be fully resolved (defaults already applied) before
	// manifest generation.
	Metadata struct {
		ID          string
		Name        string
		Description string
		Version     string
		Author      string
	}

	// Application is one unit to be packaged: an application root plus the
	// ordered process files discovered beneath it.
	Application struct {
		// Root is the application root directory.
		Root string
		// BaseName is the name the unit is derived from (directory name,
		// "root" for the loose-file group, or the input directory name).
		BaseName string
		// Metadata are the resolved manifest fields.
		Metadata Metadata
		// Processes are the discovered process files in traversal order,
		// before exclusion filtering.
		Processes []Process
	}
)
