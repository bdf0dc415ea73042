// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package media copies embedded media out of a DOCX archive into a flat
// directory. Each entry is first written at its nested archive path under
// the output directory, then renamed to its basename; the nested tree is
// removed once every entry has been moved.
package media

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pdiddy/docx-extract/internal/archive"
	"github.com/pdiddy/docx-extract/pkg/types"
)

// stagingRoot is the first segment of every media entry name; the nested
// extraction layout lives under outputDir/stagingRoot.
const stagingRoot = "word"

// Result lists the files written and the basenames that were written twice.
type Result struct {
	Files       []types.MediaFile
	Overwritten []string
}

// Extract materializes every media entry of a into outputDir, flattened to
// basenames. A later entry with the same basename replaces the earlier
// file. The nested outputDir/word tree is removed afterwards; its absence
// is not an error.
func Extract(a *archive.Archive, outputDir string, log *zap.Logger) (Result, error) {
	var res Result
	written := make(map[string]bool)

	for _, f := range a.MediaEntries() {
		if err := archive.CheckName(f.Name); err != nil {
			return res, err
		}

		name := path.Base(f.Name)
		staged := filepath.Join(outputDir, filepath.FromSlash(f.Name))
		dst := filepath.Join(outputDir, name)

		n, err := extractEntry(f, staged)
		if err != nil {
			return res, err
		}
		if err := os.Rename(staged, dst); err != nil {
			return res, fmt.Errorf("moving %s to %s: %w", f.Name, dst, err)
		}

		if written[name] {
			log.Warn("media basename collision, keeping later entry",
				zap.String("name", name), zap.String("entry", f.Name))
			res.Overwritten = append(res.Overwritten, name)
		}
		written[name] = true

		log.Debug("extracted media", zap.String("entry", f.Name), zap.Int64("bytes", n))
		res.Files = append(res.Files, types.MediaFile{Name: name, Entry: f.Name, Size: n})
	}

	if err := os.RemoveAll(filepath.Join(outputDir, stagingRoot)); err != nil {
		return res, fmt.Errorf("removing staging directory: %w", err)
	}

	return res, nil
}

// extractEntry writes f to dst, creating parent directories, and returns the
// number of bytes written.
func extractEntry(f *zip.File, dst string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, fmt.Errorf("creating directory for %s: %w", f.Name, err)
	}

	rc, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("opening entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", dst, err)
	}

	n, err := io.Copy(out, rc)
	if err != nil {
		out.Close()
		return n, fmt.Errorf("writing %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return n, fmt.Errorf("closing %s: %w", dst, err)
	}
	return n, nil
}
