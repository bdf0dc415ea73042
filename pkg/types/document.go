// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ExtractionStatus indicates the outcome of extracting a single document.
type ExtractionStatus string

// ExtractionDone marks a run that wrote all of its outputs.
const ExtractionDone ExtractionStatus = "extracted"

// MediaFile describes one embedded media entry materialized in the output
// directory.
type MediaFile struct {
	// Name is the flattened output filename (the entry basename).
	Name string `json:"name" yaml:"name"`

	// Entry is the internal archive path the file came from
	// (e.g. "word/media/image1.png").
	Entry string `json:"entry" yaml:"entry"`

	// Size is the uncompressed size in bytes.
	Size int64 `json:"size" yaml:"size"`
}

// ExtractionResult records what a single extraction run produced.
type ExtractionResult struct {
	// RunID uniquely identifies this extraction run.
	RunID string `json:"run_id" yaml:"run_id"`

	// SourcePath is the archive that was extracted.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// SourceSHA256 is the hex digest of the archive bytes.
	SourceSHA256 string `json:"source_sha256" yaml:"source_sha256"`

	// OutputDir is the directory holding media files and the text file.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Media lists the media files in extraction order. When two entries share
	// a basename both appear here; the later one is the file left on disk.
	Media []MediaFile `json:"media" yaml:"media"`

	// Overwritten lists basenames that were written more than once.
	Overwritten []string `json:"overwritten,omitempty" yaml:"overwritten,omitempty"`

	// TextPath is the path of the written plain-text file.
	TextPath string `json:"text_path" yaml:"text_path"`

	// TextBytes is the size of the extracted text in bytes.
	TextBytes int `json:"text_bytes" yaml:"text_bytes"`

	// TextRuns is the number of non-empty text runs concatenated.
	TextRuns int `json:"text_runs" yaml:"text_runs"`

	// Status is the run outcome.
	Status ExtractionStatus `json:"status" yaml:"status"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
}

// MediaNames returns the distinct basenames present in the output directory
// after the run, in first-seen order.
func (r *ExtractionResult) MediaNames() []string {
	seen := make(map[string]bool, len(r.Media))
	names := make([]string, 0, len(r.Media))
	for _, m := range r.Media {
		if seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		names = append(names, m.Name)
	}
	return names
}
