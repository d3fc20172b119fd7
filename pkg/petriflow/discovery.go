// SPDX-License-Identifier: MPL-2.0

package petriflow

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// isProcessFile reports whether name is a process-definition candidate: an
// .xml file (case-sensitive suffix) that is not the reserved manifest file
// (case-insensitive).
func isProcessFile(name string) bool {
	return strings.HasSuffix(name, xmlSuffix) && !strings.EqualFold(name, ManifestFileName)
}

// newProcess builds a Process for path under the given application root.
func newProcess(root, path string) (Process, error) {
	flat, err := FlattenName(root, path)
	if err != nil {
		return Process{}, err
	}
	return Process{
		Path:     path,
		FlatName: flat,
		Name:     trimProcessSuffix(flat),
	}, nil
}

// DiscoverProcesses walks the entire tree below root and returns every
// process-definition file found, in traversal order. Directories themselves
// are never candidates.
func DiscoverProcesses(root string) ([]Process, error) {
	var processes []Process
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !isProcessFile(d.Name()) {
			return nil
		}
		p, err := newProcess(root, path)
		if err != nil {
			return err
		}
		processes = append(processes, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk application directory %q: %w", root, err)
	}
	return processes, nil
}

// ListRootProcesses returns the process-definition files sitting directly in
// root, without descending into subdirectories.
func ListRootProcesses(root string) ([]Process, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %q: %w", root, err)
	}
	var processes []Process
	for _, entry := range entries {
		if entry.IsDir() || !isProcessFile(entry.Name()) {
			continue
		}
		p, err := newProcess(root, filepath.Join(root, entry.Name()))
		if err != nil {
			return nil, err
		}
		processes = append(processes, p)
	}
	return processes, nil
}

// ListApplicationDirs returns the immediate subdirectories of root, each of
// which represents one application in multi-application mode.
func ListApplicationDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %q: %w", root, err)
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(root, entry.Name()))
		}
	}
	return dirs, nil
}
