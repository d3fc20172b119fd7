// SPDX-License-Identifier: MPL-2.0

package petriflow

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FlattenName returns the path of file relative to root with all directory
// separators replaced by underscores. A file directly under root keeps its
// plain file name.
func FlattenName(root, file string) (string, error) {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return "", fmt.Errorf("failed to relativize %q against %q: %w", file, root, err)
	}
	segments := strings.Split(filepath.ToSlash(rel), "/")
	return strings.Join(segments, "_"), nil
}

// ProcessName returns the flattened name of file with one trailing .xml
// suffix removed. The suffix match is case-sensitive; names without the
// suffix are returned unchanged.
func ProcessName(root, file string) (string, error) {
	flat, err := FlattenName(root, file)
	if err != nil {
		return "", err
	}
	return trimProcessSuffix(flat), nil
}

// trimProcessSuffix strips a single trailing .xml suffix, if present.
func trimProcessSuffix(name string) string {
	return strings.TrimSuffix(name, xmlSuffix)
}
