// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "write archive"},
			expected: "failed to write archive",
		},
		{
			name: "operation and resource",
			err: &ActionableError{
				Operation: "validate input directory",
				Resource:  "/tmp/nets",
			},
			expected: "failed to validate input directory: /tmp/nets",
		},
		{
			name: "full chain",
			err: &ActionableError{
				Operation: "write archive",
				Resource:  "out/app.zip",
				Cause:     errors.New("disk full"),
			},
			expected: "failed to write archive: out/app.zip: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorContextBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := NewErrorContext().
		WithOperation("compile exclude patterns").
		WithResource("([unclosed").
		WithSuggestion("Check the pattern syntax").
		WithSuggestion("Patterns match whole process names").
		WithIssue(BadExcludePatternId).
		Wrap(cause).
		Build()

	if err == nil {
		t.Fatal("Build() returned nil for a complete context")
	}
	if !errors.Is(err, cause) {
		t.Error("built error does not unwrap to cause")
	}
	if err.IssueId != BadExcludePatternId {
		t.Errorf("IssueId = %d, want catalog id carried through Build", err.IssueId)
	}

	formatted := err.Format(false)
	if !strings.Contains(formatted, "• Check the pattern syntax") {
		t.Errorf("Format() missing suggestions:\n%s", formatted)
	}
	if strings.Contains(formatted, "Error chain") {
		t.Error("non-verbose Format() should not include the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "boom") {
		t.Errorf("verbose Format() missing error chain:\n%s", verbose)
	}
}

func TestErrorContextRequiresOperation(t *testing.T) {
	if err := NewErrorContext().WithResource("x").BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}
}
