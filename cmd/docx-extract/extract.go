// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docx-extract/internal/catalog"
	"github.com/pdiddy/docx-extract/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract <archive.docx> [archive.docx...]",
	Short: "Extract media files and text from DOCX archives",
	Long: `Extract copies every entry under word/media/ into the output directory,
named by its basename, and writes the text runs of word/document.xml to
content.txt. Media entries that share a basename overwrite each other; the
last one in the archive wins.

With one archive the output directory receives the files directly. With
several archives each one is extracted into <output-dir>/<name>.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringP("output-dir", "o", "extracted_content", "directory for extracted media and content.txt")
	extractCmd.Flags().Bool("manifest", false, "write manifest.yaml describing the run")
	extractCmd.Flags().Bool("catalog", false, "record runs in the extraction catalog")
	extractCmd.Flags().Bool("skip-unchanged", false, "skip documents unchanged since their last cataloged run (batch only)")
	extractCmd.Flags().Bool("json", false, "print the run result as JSON")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Extraction.SkipUnchanged && !cfg.Catalog.Enabled {
		return fmt.Errorf("--skip-unchanged requires the catalog: pass --catalog or set catalog.enabled")
	}

	var cat extract.Catalog
	if cfg.Catalog.Enabled {
		store, err := catalog.Open(cfg.Catalog, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		cat = store
	}

	e := extract.New(cfg.Extraction, cat, logger)
	out := cmd.OutOrStdout()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if len(args) == 1 {
		result, err := e.Extract(cmd.Context(), args[0], cfg.Extraction.OutputDir)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(out, result)
		}
		fmt.Fprintf(out, "Extraction complete. Check %s\n", cfg.Extraction.OutputDir)
		return nil
	}

	progress := out
	if jsonOutput {
		progress = cmd.ErrOrStderr()
	}
	result, err := e.ExtractBatch(cmd.Context(), args, cfg.Extraction.OutputDir, progress)
	if err != nil {
		return err
	}
	if jsonOutput {
		if err := writeJSON(out, result.Results); err != nil {
			return err
		}
	}
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed extraction", result.Failed)
	}
	fmt.Fprintf(progress, "Extraction complete. Check %s\n", cfg.Extraction.OutputDir)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
