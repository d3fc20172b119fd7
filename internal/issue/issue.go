// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies one entry in the issue catalog.
type Id int

const (
	InputDirNotFoundId Id = iota + 1
	OutputDirCreateFailedId
	BadExcludePatternId
	ConfigLoadFailedId
	NoApplicationsFoundId
	ArchiveWriteFailedId
)

// MarkdownMsg is the rendered help text of an issue.
type MarkdownMsg string

// Issue is one catalog entry: a stable id plus markdown help text that the
// CLI renders when the corresponding failure occurs in verbose mode.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render returns the issue help text rendered for the terminal.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	inputDirNotFoundIssue = &Issue{
		id: InputDirNotFoundId,
		mdMsg: `
# Input directory not found!

The configured input directory does not exist or is not a directory.

## Things you can try:
- Check the path passed via '--input' or configured as 'input_directory'
- The default input directory is:
~~~
src/main/resources/petriNets
~~~
- Show the resolved configuration:
~~~
$ petripack config show
~~~`,
	}

	outputDirCreateFailedIssue = &Issue{
		id: OutputDirCreateFailedId,
		mdMsg: `
# Could not create the output directory!

petripack creates the output directory (including parents) before writing
any archive, and this failed.

## Things you can try:
- Check write permissions on the parent directory
- Point '--output' (or 'output_directory' in the config file) at a writable
  location`,
	}

	badExcludePatternIssue = &Issue{
		id: BadExcludePatternId,
		mdMsg: `
# Invalid exclusion pattern!

Entries in the exclude list are regular expressions matched against whole
process names. One of them failed to compile, so no archive was written.

## Things you can try:
- Check the pattern syntax (RE2); a common mistake is an unclosed group
- Remember patterns match the **full** flattened process name, e.g.
~~~
.*Test.*
subdir_Draft.*
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your config.cue contains syntax errors or values the schema rejects.

## Things you can try:
- Check the error message above for the specific line/column
- Regenerate a commented default file:
~~~
$ petripack config init
~~~
- Run with verbose mode for more details:
~~~
$ petripack --verbose package
~~~`,
	}

	noApplicationsFoundIssue = &Issue{
		id: NoApplicationsFoundId,
		mdMsg: `
# No applications found

In multi-application mode the input directory is expected to contain one
subdirectory per application, and optionally loose XML files at the root.
Neither was found, so no archives were produced. This is a warning, not an
error.

## Things you can try:
- Check that the input directory points at the application parent, not at a
  single application
- For a single application tree, drop '--multi-app'`,
	}

	archiveWriteFailedIssue = &Issue{
		id: ArchiveWriteFailedId,
		mdMsg: `
# Failed to write an archive!

Writing the application ZIP failed part-way. The partial output file has
been removed; earlier archives of the same run remain on disk.

## Things you can try:
- Check free disk space and permissions on the output directory
- Check that no process file was deleted while packaging was running`,
	}

	catalog = map[Id]*Issue{
		InputDirNotFoundId:      inputDirNotFoundIssue,
		OutputDirCreateFailedId: outputDirCreateFailedIssue,
		BadExcludePatternId:     badExcludePatternIssue,
		ConfigLoadFailedId:      configLoadFailedIssue,
		NoApplicationsFoundId:   noApplicationsFoundIssue,
		ArchiveWriteFailedId:    archiveWriteFailedIssue,
	}
)

// Lookup returns the catalog entry for id, or nil when no entry exists.
func Lookup(id Id) *Issue {
	return catalog[id]
}

// Ids returns all catalog ids in ascending order.
func Ids() []Id {
	ids := maps.Keys(catalog)
	slices.Sort(ids)
	return ids
}
