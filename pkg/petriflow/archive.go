// SPDX-License-Identifier: MPL-2.0

package petriflow

import (
	"archive/zip"
	"fmt"
	"os"
)

// WriteArchive assembles the application archive at outputPath: one
// manifest.xml entry holding the UTF-8 manifest text, followed by one
// processes/<FlatName> entry per included process, in the given order. On
// any failure the partially written file is removed best-effort and an error
// is returned; the operation must never be treated as success in that case.
func WriteArchive(manifest string, included []Process, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create archive %q: %w", outputPath, err)
	}

	if err := writeEntries(zipFile, manifest, included); err != nil {
		zipFile.Close()          //nolint:errcheck // already failing
		os.Remove(outputPath)    //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("failed to write archive %q: %w", outputPath, err)
	}

	if err := zipFile.Close(); err != nil {
		os.Remove(outputPath) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("failed to close archive %q: %w", outputPath, err)
	}
	return nil
}

// writeEntries streams the manifest and process files into the ZIP writer.
func writeEntries(zipFile *os.File, manifest string, included []Process) error {
	zw := zip.NewWriter(zipFile)

	w, err := zw.Create(ManifestFileName)
	if err != nil {
		return fmt.Errorf("failed to create manifest entry: %w", err)
	}
	if _, err := w.Write([]byte(manifest)); err != nil {
		return fmt.Errorf("failed to write manifest entry: %w", err)
	}

	for _, proc := range included {
		entryName := ProcessEntryPrefix + proc.FlatName
		data, err := os.ReadFile(proc.Path)
		if err != nil {
			return fmt.Errorf("failed to read process file %q: %w", proc.Path, err)
		}
		w, err := zw.Create(entryName)
		if err != nil {
			return fmt.Errorf("failed to create entry %q: %w", entryName, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write entry %q: %w", entryName, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}
