// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/docx-extract/internal/catalog"
	"github.com/pdiddy/docx-extract/pkg/types"
)

// BatchResult holds the outcome of a batch extraction run.
type BatchResult struct {
	Extracted int
	Skipped   int
	Failed    int
	Results   []*types.ExtractionResult
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed extraction.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ExtractBatch extracts each archive into outputRoot/<stem>, where stem is
// the file name without extension. Repeated stems get a numeric suffix.
// Per-document status lines and a summary are written to w. A failing
// document does not stop the batch; cancellation of ctx does.
func (e *Extractor) ExtractBatch(ctx context.Context, archivePaths []string, outputRoot string, w io.Writer) (BatchResult, error) {
	var result BatchResult
	dirs := outputDirs(archivePaths, outputRoot)

	for i, p := range archivePaths {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		name := filepath.Base(p)
		outDir := dirs[i]

		if e.unchanged(ctx, p, outDir) {
			fmt.Fprintf(w, "skipped:   %s (unchanged)\n", name)
			result.Skipped++
			continue
		}

		r, err := e.Extract(ctx, p, outDir)
		if err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
			e.log.Error("extraction failed", zap.String("archive", p), zap.Error(err))
			result.Failed++
			continue
		}

		fmt.Fprintf(w, "extracted: %s -> %s (%d media, %d bytes text)\n",
			name, outDir, len(r.MediaNames()), r.TextBytes)
		result.Extracted++
		result.Results = append(result.Results, r)
	}

	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d skipped, %d failed (total: %d)\n",
		result.Extracted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// unchanged reports whether the last catalog run for path has the same
// digest, targeted the same directory, and left its text file in place.
func (e *Extractor) unchanged(ctx context.Context, path, outDir string) bool {
	if !e.cfg.SkipUnchanged || e.catalog == nil {
		return false
	}

	prev, err := e.catalog.Lookup(ctx, absPath(path))
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			e.log.Warn("catalog lookup failed", zap.String("archive", path), zap.Error(err))
		}
		return false
	}
	if prev.OutputDir != outDir {
		return false
	}
	if _, err := os.Stat(prev.TextPath); err != nil {
		return false
	}

	sum, err := fileSHA256(path)
	if err != nil {
		return false
	}
	return sum == prev.SourceSHA256
}

// outputDirs assigns each archive its own directory under root.
func outputDirs(paths []string, root string) []string {
	dirs := make([]string, len(paths))
	taken := make(map[string]bool)
	for i, p := range paths {
		stem := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		name := stem
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s-%d", stem, n)
		}
		taken[name] = true
		dirs[i] = filepath.Join(root, name)
	}
	return dirs
}
