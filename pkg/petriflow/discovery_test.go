// SPDX-License-Identifier: MPL-2.0

package petriflow

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// writeFile creates a file with parent directories under root.
func writeFile(t *testing.T, root string, rel ...string) string {
	t.Helper()
	path := filepath.Join(append([]string{root}, rel...)...)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("<document/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func flatNames(processes []Process) []string {
	names := make([]string, 0, len(processes))
	for _, p := range processes {
		names = append(names, p.FlatName)
	}
	return names
}

func TestDiscoverProcesses(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) string // returns application root
		expected []string                  // flat names, order-insensitive
	}{
		{
			name: "flat directory",
			setup: func(t *testing.T) string {
				root := t.TempDir()
				writeFile(t, root, "Invoice.xml")
				writeFile(t, root, "Payment.xml")
				return root
			},
			expected: []string{"Invoice.xml", "Payment.xml"},
		},
		{
			name: "nested directories are flattened",
			setup: func(t *testing.T) string {
				root := t.TempDir()
				writeFile(t, root, "Invoice.xml")
				writeFile(t, root, "orders", "Order.xml")
				writeFile(t, root, "orders", "eu", "Vat.xml")
				return root
			},
			expected: []string{"Invoice.xml", "orders_Order.xml", "orders_eu_Vat.xml"},
		},
		{
			name: "manifest.xml is skipped case-insensitively",
			setup: func(t *testing.T) string {
				root := t.TempDir()
				writeFile(t, root, "Invoice.xml")
				writeFile(t, root, "manifest.xml")
				writeFile(t, root, "sub", "MANIFEST.xml")
				return root
			},
			expected: []string{"Invoice.xml"},
		},
		{
			name: "non-xml files are skipped",
			setup: func(t *testing.T) string {
				root := t.TempDir()
				writeFile(t, root, "Invoice.xml")
				writeFile(t, root, "notes.txt")
				writeFile(t, root, "Upper.XML")
				return root
			},
			expected: []string{"Invoice.xml"},
		},
		{
			name: "empty tree",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := tt.setup(t)
			processes, err := DiscoverProcesses(root)
			if err != nil {
				t.Fatalf("DiscoverProcesses() error = %v", err)
			}
			got := flatNames(processes)
			sort.Strings(got)
			want := append([]string(nil), tt.expected...)
			sort.Strings(want)
			if len(got) != len(want) {
				t.Fatalf("discovered %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("discovered %v, want %v", got, want)
					break
				}
			}
		})
	}
}

func TestDiscoverProcessesStableWithinRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "B.xml")
	writeFile(t, root, "A.xml")
	writeFile(t, root, "sub", "C.xml")

	first, err := DiscoverProcesses(root)
	if err != nil {
		t.Fatalf("DiscoverProcesses() error = %v", err)
	}
	second, err := DiscoverProcesses(root)
	if err != nil {
		t.Fatalf("DiscoverProcesses() error = %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("traversal not stable: %v vs %v", flatNames(first), flatNames(second))
	}
	for i := range first {
		if first[i].FlatName != second[i].FlatName {
			t.Fatalf("traversal not stable: %v vs %v", flatNames(first), flatNames(second))
		}
	}
}

func TestListRootProcesses(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Loose.xml")
	writeFile(t, root, "manifest.xml")
	writeFile(t, root, "sub", "Nested.xml")

	processes, err := ListRootProcesses(root)
	if err != nil {
		t.Fatalf("ListRootProcesses() error = %v", err)
	}

	if len(processes) != 1 || processes[0].FlatName != "Loose.xml" {
		t.Errorf("ListRootProcesses() = %v, want just Loose.xml", flatNames(processes))
	}
	if processes[0].Name != "Loose" {
		t.Errorf("process name = %q, want %q", processes[0].Name, "Loose")
	}
}

func TestListApplicationDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Loose.xml")
	if err := os.Mkdir(filepath.Join(root, "app1"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, "app2"), 0o755); err != nil {
		t.Fatal(err)
	}

	dirs, err := ListApplicationDirs(root)
	if err != nil {
		t.Fatalf("ListApplicationDirs() error = %v", err)
	}

	if len(dirs) != 2 {
		t.Fatalf("ListApplicationDirs() = %v, want 2 entries", dirs)
	}
	for _, dir := range dirs {
		base := filepath.Base(dir)
		if base != "app1" && base != "app2" {
			t.Errorf("unexpected application dir %q", dir)
		}
	}
}
