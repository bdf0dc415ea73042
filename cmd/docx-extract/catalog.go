// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docx-extract/internal/catalog"
	"github.com/pdiddy/docx-extract/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect recorded extraction runs",
	Long: `Catalog reads the SQLite database that extract writes to when run with
--catalog. Use subcommands to list recent runs or show the latest run for a
document.`,
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent extraction runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		if runs == nil {
			runs = []types.ExtractionResult{}
		}
		return writeJSON(cmd.OutOrStdout(), runs)
	}
	return formatRuns(cmd.OutOrStdout(), runs)
}

func formatRuns(w io.Writer, runs []types.ExtractionResult) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-30s  %-30s  %8s  %s\n",
		"Finished", "Document", "Output", "Text", "Run")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for _, r := range runs {
		fmt.Fprintf(w, "%-20s  %-30s  %-30s  %8d  %s\n",
			r.FinishedAt.Local().Format("2006-01-02 15:04:05"),
			truncate(filepath.Base(r.SourcePath), 30),
			truncate(r.OutputDir, 30),
			r.TextBytes, r.RunID)
	}

	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}

// --- show subcommand ---

var catalogShowCmd = &cobra.Command{
	Use:   "show <archive.docx>",
	Short: "Show the latest recorded run for a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	run, err := store.Lookup(cmd.Context(), path)
	if err != nil {
		return err
	}
	run.Media, run.Overwritten, err = store.Media(cmd.Context(), run.RunID)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), run)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Run:      %s\n", run.RunID)
	fmt.Fprintf(w, "Document: %s\n", run.SourcePath)
	fmt.Fprintf(w, "SHA-256:  %s\n", run.SourceSHA256)
	fmt.Fprintf(w, "Output:   %s\n", run.OutputDir)
	fmt.Fprintf(w, "Text:     %s (%d bytes, %d runs)\n", run.TextPath, run.TextBytes, run.TextRuns)
	fmt.Fprintf(w, "Finished: %s\n", run.FinishedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Media:    %d entries\n", len(run.Media))
	overwritten := make(map[string]int)
	for _, name := range run.Overwritten {
		overwritten[name]++
	}
	seen := make(map[string]int)
	for _, m := range run.Media {
		note := ""
		if seen[m.Name] < overwritten[m.Name] {
			note = "  (overwritten)"
		}
		seen[m.Name]++
		fmt.Fprintf(w, "  %-24s  %8d  %s%s\n", m.Name, m.Size, m.Entry, note)
	}
	return nil
}

// --- shared helpers ---

func openCatalog() (*catalog.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return catalog.Open(cfg.Catalog, logger)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	catalogListCmd.Flags().Int("limit", 50, "maximum number of runs to list")
	catalogListCmd.Flags().Bool("json", false, "output runs as JSON")
	catalogShowCmd.Flags().Bool("json", false, "output the run as JSON")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)

	rootCmd.AddCommand(catalogCmd)
}
