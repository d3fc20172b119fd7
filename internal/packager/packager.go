// SPDX-License-Identifier: MPL-2.0

// Package packager orchestrates a packaging run: process discovery,
// exclusion filtering, manifest generation and archive assembly for one
// input directory, in single- or multi-application mode.
package packager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"petripack-cli/internal/issue"
	"petripack-cli/pkg/petriflow"

	"github.com/charmbracelet/log"
)

type (
	// Packager runs packaging requests. The zero value is not usable; use New.
	Packager struct {
		log *log.Logger
	}

	// Archive describes one archive produced by a run.
	Archive struct {
		// Application is the application base name the archive was built for.
		Application string
		// Path is the absolute or request-relative path of the written ZIP.
		Path string
		// Included lists the packaged process names in archive order.
		Included []string
		// Excluded lists the process names dropped by the exclusion filter.
		Excluded []string
	}

	// Result summarizes a completed run.
	Result struct {
		Archives []Archive
	}

	// unit is one application to package: a base name and its processes.
	unit struct {
		baseName  string
		processes []petriflow.Process
	}
)

// New creates a Packager logging through logger.
func New(logger *log.Logger) *Packager {
	return &Packager{log: logger}
}

// Run executes one packaging request. The exclusion patterns are compiled and
// the input directory validated before any archive is written, so a malformed
// pattern or missing directory never leaves partial output behind. Archives
// already written when a later application fails remain on disk.
func (p *Packager) Run(ctx context.Context, req *Request) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("packaging canceled: %w", ctx.Err())
	default:
	}

	excludes, err := petriflow.CompileExcludes(req.Exclude)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("compile exclusion patterns").
			WithSuggestion("Exclusion patterns are RE2 regular expressions matched against whole process names").
			WithSuggestion("Run 'petripack config show' to inspect the resolved exclude list").
			WithIssue(issue.BadExcludePatternId).
			Wrap(err).
			BuildError()
	}

	info, err := os.Stat(req.InputDir)
	if err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("%s is not a directory", req.InputDir)
		}
		return nil, issue.NewErrorContext().
			WithOperation("validate input directory").
			WithResource(req.InputDir).
			WithSuggestion("Check the path passed via --input or configured as input_directory").
			WithSuggestion("Run 'petripack config show' to see the resolved configuration").
			WithIssue(issue.InputDirNotFoundId).
			Wrap(err).
			BuildError()
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("create output directory").
			WithResource(req.OutputDir).
			WithSuggestion("Check write permissions on the parent directory").
			WithIssue(issue.OutputDirCreateFailedId).
			Wrap(err).
			BuildError()
	}

	units, err := p.collectUnits(req)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		// Multi-application mode over an empty tree: a warning, not an error.
		p.log.Warn("no applications found", "input", req.InputDir)
		return &Result{}, nil
	}

	result := &Result{}
	for _, u := range units {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("packaging canceled: %w", ctx.Err())
		default:
		}

		archive, err := p.packageUnit(req, u, excludes)
		if err != nil {
			return nil, err
		}
		result.Archives = append(result.Archives, *archive)
	}
	return result, nil
}

// collectUnits resolves the applications of a request. Single-application
// mode yields exactly one unit covering the whole input tree; in
// multi-application mode each immediate subdirectory becomes a unit, and any
// loose process files at the input root form an extra "root" application.
func (p *Packager) collectUnits(req *Request) ([]unit, error) {
	if !req.MultiApplication {
		processes, err := petriflow.DiscoverProcesses(req.InputDir)
		if err != nil {
			return nil, err
		}
		return []unit{{
			baseName:  filepath.Base(filepath.Clean(req.InputDir)),
			processes: processes,
		}}, nil
	}

	dirs, err := petriflow.ListApplicationDirs(req.InputDir)
	if err != nil {
		return nil, err
	}

	var units []unit
	for _, dir := range dirs {
		processes, err := petriflow.DiscoverProcesses(dir)
		if err != nil {
			return nil, err
		}
		units = append(units, unit{
			baseName:  filepath.Base(dir),
			processes: processes,
		})
	}

	rootProcesses, err := petriflow.ListRootProcesses(req.InputDir)
	if err != nil {
		return nil, err
	}
	if len(rootProcesses) > 0 {
		units = append(units, unit{baseName: "root", processes: rootProcesses})
	}

	return units, nil
}

// packageUnit filters, renders and writes the archive of one application.
func (p *Packager) packageUnit(req *Request, u unit, excludes []*regexp.Regexp) (*Archive, error) {
	logger := p.log.WithPrefix(u.baseName)

	var (
		included      []petriflow.Process
		includedNames []string
		excludedNames []string
	)
	for _, proc := range u.processes {
		if petriflow.Excluded(proc.Name, excludes) {
			logger.Warn("excluding process", "process", proc.Name)
			excludedNames = append(excludedNames, proc.Name)
			continue
		}
		logger.Info("adding process", "entry", petriflow.ProcessEntryPrefix+proc.FlatName)
		included = append(included, proc)
		includedNames = append(includedNames, proc.Name)
	}

	meta := req.resolveMetadata(u.baseName)
	manifest := petriflow.GenerateManifest(includedNames, meta)
	logger.Debug("generated manifest", "manifest", manifest)

	outputPath := filepath.Join(req.OutputDir, req.zipFileName(u.baseName))
	if err := petriflow.WriteArchive(manifest, included, outputPath); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("write archive").
			WithResource(outputPath).
			WithSuggestion("Check free disk space and permissions on the output directory").
			WithIssue(issue.ArchiveWriteFailedId).
			Wrap(err).
			BuildError()
	}

	logger.Info("archive written",
		"archive", outputPath,
		"processes", len(included),
		"excluded", len(excludedNames),
	)
	return &Archive{
		Application: u.baseName,
		Path:        outputPath,
		Included:    includedNames,
		Excluded:    excludedNames,
	}, nil
}
