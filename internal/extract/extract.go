// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls embedded media and plain text out of DOCX archives.
//
// For each document it copies every word/media/ entry into the output
// directory under its basename, then concatenates the text runs of
// word/document.xml into content.txt. Runs can be recorded in a catalog
// and described by a manifest.yaml sidecar.
package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/docx-extract/internal/archive"
	"github.com/pdiddy/docx-extract/internal/media"
	"github.com/pdiddy/docx-extract/internal/text"
	"github.com/pdiddy/docx-extract/pkg/types"
)

const (
	// TextFile is the name of the plain-text output inside the output directory.
	TextFile = "content.txt"
	// ManifestFile is the name of the optional run description.
	ManifestFile = "manifest.yaml"
)

// Catalog records and looks up extraction runs. *catalog.Store implements it.
type Catalog interface {
	Record(ctx context.Context, r *types.ExtractionResult) error
	Lookup(ctx context.Context, sourcePath string) (*types.ExtractionResult, error)
}

// Extractor runs document extractions. The zero value is not usable; call New.
type Extractor struct {
	cfg     types.ExtractionConfig
	catalog Catalog
	log     *zap.Logger

	now   func() time.Time
	newID func() string
}

// New returns an Extractor. cat may be nil, in which case runs are not
// recorded and SkipUnchanged has no effect.
func New(cfg types.ExtractionConfig, cat Catalog, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{
		cfg:     cfg,
		catalog: cat,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Extract extracts the archive at archivePath into outputDir, creating the
// directory if needed. Media extraction runs first; a missing or malformed
// word/document.xml fails the call before content.txt is written, leaving
// any media already extracted in place.
func (e *Extractor) Extract(ctx context.Context, archivePath, outputDir string) (*types.ExtractionResult, error) {
	started := e.now()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	a, err := archive.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	log := e.log.With(zap.String("archive", archivePath))

	mres, err := media.Extract(a, outputDir, log)
	if err != nil {
		return nil, fmt.Errorf("extracting media from %s: %w", archivePath, err)
	}
	log.Debug("media extracted", zap.Int("files", len(mres.Files)))

	tres, err := readText(a)
	if err != nil {
		return nil, fmt.Errorf("extracting text from %s: %w", archivePath, err)
	}

	textPath := filepath.Join(outputDir, TextFile)
	if err := os.WriteFile(textPath, []byte(tres.Text), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", textPath, err)
	}
	log.Debug("text extracted", zap.Int("runs", tres.Runs), zap.Int("bytes", len(tres.Text)))

	sum, err := fileSHA256(archivePath)
	if err != nil {
		return nil, err
	}

	result := &types.ExtractionResult{
		RunID:        e.newID(),
		SourcePath:   absPath(archivePath),
		SourceSHA256: sum,
		OutputDir:    outputDir,
		Media:        mres.Files,
		Overwritten:  mres.Overwritten,
		TextPath:     textPath,
		TextBytes:    len(tres.Text),
		TextRuns:     tres.Runs,
		Status:       types.ExtractionDone,
		StartedAt:    started,
		FinishedAt:   e.now(),
	}

	if e.cfg.WriteManifest {
		if err := WriteManifest(filepath.Join(outputDir, ManifestFile), result); err != nil {
			return result, err
		}
	}

	if e.catalog != nil {
		if err := e.catalog.Record(ctx, result); err != nil {
			return result, fmt.Errorf("recording run: %w", err)
		}
	}

	log.Info("extraction complete",
		zap.String("output_dir", outputDir),
		zap.Int("media", len(result.MediaNames())),
		zap.Int("text_bytes", result.TextBytes))
	return result, nil
}

// readText scrapes the text runs of the main document part.
func readText(a *archive.Archive) (text.Result, error) {
	rc, err := a.OpenEntry(archive.DocumentEntry)
	if err != nil {
		return text.Result{}, err
	}
	defer rc.Close()
	return text.Extract(rc)
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
