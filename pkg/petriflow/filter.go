// SPDX-License-Identifier: MPL-2.0

package petriflow

import (
	"fmt"
	"regexp"
)

// CompileExcludes compiles the configured exclusion patterns. Each pattern is
// anchored so that it must match a process name as a whole string; a pattern
// matching only a substring does not exclude. A nil or empty list compiles to
// an empty filter that excludes nothing. The first malformed pattern aborts
// compilation.
func CompileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// Excluded reports whether the process name fully matches any of the
// compiled exclusion patterns.
func Excluded(name string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
