// SPDX-License-Identifier: MPL-2.0

package petriflow

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ArchiveInfo is the decoded view of a produced archive, as read back by
// Inspect.
type ArchiveInfo struct {
	// Path is the inspected archive file.
	Path string
	// Metadata are the five manifest fields.
	Metadata Metadata
	// AllowedNets are the process names listed in the manifest, in manifest
	// order.
	AllowedNets []string
	// ProcessEntries are the processes/ entry names (without the prefix), in
	// archive order.
	ProcessEntries []string
}

// manifestDocument mirrors the manifest XML for decoding. Only the fields
// Inspect reports are mapped.
type manifestDocument struct {
	XMLName xml.Name `xml:"cases"`
	Case    struct {
		Title      string `xml:"title"`
		DataFields []struct {
			Type        string `xml:"type,attr"`
			ID          string `xml:"id"`
			Value       string `xml:"value"`
			AllowedNets struct {
				Values []string `xml:"value"`
			} `xml:"allowedNets"`
		} `xml:"dataField"`
	} `xml:"case"`
}

// Inspect opens an archive produced by WriteArchive and returns its manifest
// metadata and entry listing. It fails when the archive does not contain
// exactly one manifest.xml, or when an entry outside manifest.xml and
// processes/ is present.
func Inspect(path string) (*ArchiveInfo, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %q: %w", path, err)
	}
	defer reader.Close()

	info := &ArchiveInfo{Path: path}
	manifestCount := 0
	var manifestText []byte

	for _, file := range reader.File {
		switch {
		case file.Name == ManifestFileName:
			manifestCount++
			manifestText, err = readZipEntry(file)
			if err != nil {
				return nil, err
			}
		case strings.HasPrefix(file.Name, ProcessEntryPrefix):
			info.ProcessEntries = append(info.ProcessEntries, strings.TrimPrefix(file.Name, ProcessEntryPrefix))
		default:
			return nil, fmt.Errorf("unexpected entry %q in archive %q", file.Name, path)
		}
	}

	if manifestCount != 1 {
		return nil, fmt.Errorf("archive %q contains %d manifest.xml entries, expected exactly 1", path, manifestCount)
	}

	var doc manifestDocument
	if err := xml.Unmarshal(manifestText, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest in %q: %w", path, err)
	}

	for _, field := range doc.Case.DataFields {
		switch field.ID {
		case "app_id":
			info.Metadata.ID = field.Value
		case "name":
			info.Metadata.Name = field.Value
		case "description":
			info.Metadata.Description = field.Value
		case "version":
			info.Metadata.Version = field.Value
		case "author":
			info.Metadata.Author = field.Value
		case "processes":
			info.AllowedNets = field.AllowedNets.Values
		}
	}

	return info, nil
}

// readZipEntry reads one archive entry fully into memory.
func readZipEntry(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open entry %q: %w", file.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry %q: %w", file.Name, err)
	}
	return data, nil
}
