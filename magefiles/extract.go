//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Extract builds the CLI and extracts one document, e.g.
// `mage extract thesis.docx extracted_content`.
func Extract(archive, outputDir string) error {
	mg.Deps(Build)
	return sh.RunV("./bin/docx-extract", "extract", "--output-dir", outputDir, archive)
}
