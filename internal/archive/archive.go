// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive provides a read-only view over a DOCX zip container.
// It locates the fixed internal parts the extractor needs: media entries
// under word/media/ and the main document part word/document.xml.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

const (
	// MediaPrefix is the internal path prefix of embedded media entries.
	MediaPrefix = "word/media/"
	// DocumentEntry is the internal path of the main document part.
	DocumentEntry = "word/document.xml"
)

var (
	// ErrEntryNotFound is returned when a required internal path is absent.
	ErrEntryNotFound = errors.New("entry not found in archive")
	// ErrUnsafeEntry is returned for entry names that would escape the
	// output directory when joined to it.
	ErrUnsafeEntry = errors.New("unsafe entry name")
)

// Archive is an open DOCX container. Callers must Close it.
type Archive struct {
	zr *zip.ReadCloser
}

// Open opens the zip container at path.
func Open(path string) (*Archive, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}
	return &Archive{zr: zr}, nil
}

// Close releases the underlying file.
func (a *Archive) Close() error {
	return a.zr.Close()
}

// MediaEntries returns the non-directory entries under MediaPrefix in
// archive order.
func (a *Archive) MediaEntries() []*zip.File {
	var out []*zip.File
	for _, f := range a.zr.File {
		if !strings.HasPrefix(f.Name, MediaPrefix) {
			continue
		}
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Find returns the entry with exactly the given name.
func (a *Archive) Find(name string) (*zip.File, error) {
	for _, f := range a.zr.File {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", name, ErrEntryNotFound)
}

// OpenEntry opens the named entry for reading.
func (a *Archive) OpenEntry(name string) (io.ReadCloser, error) {
	f, err := a.Find(name)
	if err != nil {
		return nil, err
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening entry %s: %w", name, err)
	}
	return rc, nil
}

// CheckName reports ErrUnsafeEntry when name is absolute, contains a
// backslash, or has ".." segments.
func CheckName(name string) error {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, `\`) {
		return fmt.Errorf("%q: %w", name, ErrUnsafeEntry)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return fmt.Errorf("%q: %w", name, ErrUnsafeEntry)
		}
	}
	if path.Clean(name) == "." {
		return fmt.Errorf("%q: %w", name, ErrUnsafeEntry)
	}
	return nil
}
