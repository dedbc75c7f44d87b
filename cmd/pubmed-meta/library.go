// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pubmed-meta/internal/export"
	"github.com/pdiddy/pubmed-meta/internal/library"
	"github.com/pdiddy/pubmed-meta/pkg/types"
)

const defaultLibraryPath = "pubmed-library.db"

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Query and export the local record library",
	Long: `Library works with the SQLite database that fetch --library fills. Records
from every run accumulate there keyed by PubMed ID, so they can be listed or
exported again without contacting PubMed.`,
}

// --- list subcommand ---

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored records",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), libraryFilter(cmd))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []library.Entry{}
		}
		return enc.Encode(entries)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PMID\tYEAR\tJOURNAL\tTITLE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.PubMedID, e.Year, truncate(e.Journal, 30), truncate(e.Title, 60))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d record(s)\n", len(entries))
	return nil
}

// --- export subcommand ---

var libraryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored records in one format",
	Args:  cobra.NoArgs,
	RunE:  runLibraryExport,
}

func runLibraryExport(cmd *cobra.Command, args []string) error {
	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	name, _ := cmd.Flags().GetString("format")
	formats, err := export.ParseFormats(name)
	if err != nil {
		return err
	}
	if len(formats) != 1 {
		return fmt.Errorf("export takes exactly one format, got %q", name)
	}

	entries, err := store.List(cmd.Context(), libraryFilter(cmd))
	if err != nil {
		return err
	}
	records := library.Records(entries)
	if ascii, _ := cmd.Flags().GetBool("ascii"); ascii {
		records = export.Transliterate(records)
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" || outPath == "-" {
		return export.Write(cmd.OutOrStdout(), formats[0], records, logger)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if err := export.Write(f, formats[0], records, logger); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("exported library", zap.String("path", outPath), zap.Int("records", len(records)))
	return nil
}

func init() {
	libraryCmd.PersistentFlags().String("db", "", "library database (default pubmed-library.db)")
	if err := viper.BindPFlag("library.path", libraryCmd.PersistentFlags().Lookup("db")); err != nil {
		panic(err)
	}

	for _, c := range []*cobra.Command{libraryListCmd, libraryExportCmd} {
		c.Flags().String("query", "", "substring match on title, authors, or journal")
		c.Flags().String("year", "", "publication year")
		c.Flags().String("journal", "", "substring match on journal")
		c.Flags().Int("limit", 0, "maximum number of records (0 = all)")
	}
	libraryListCmd.Flags().Bool("json", false, "output as JSON")
	libraryExportCmd.Flags().String("format", "csv", "csv, xlsx, yaml, json, or csl")
	libraryExportCmd.Flags().String("out", "", "output file (default stdout)")
	libraryExportCmd.Flags().Bool("ascii", false, "transliterate non-ASCII characters")

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryExportCmd)
	rootCmd.AddCommand(libraryCmd)
}

func openLibrary() (*library.Store, error) {
	path := viper.GetString("library.path")
	if path == "" {
		path = defaultLibraryPath
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("library %s: %w", path, err)
	}
	return library.Open(path)
}

func libraryFilter(cmd *cobra.Command) library.Filter {
	var f library.Filter
	f.Query, _ = cmd.Flags().GetString("query")
	f.Year, _ = cmd.Flags().GetString("year")
	f.Journal, _ = cmd.Flags().GetString("journal")
	f.Limit, _ = cmd.Flags().GetInt("limit")
	return f
}

// printRecords writes records as YAML.
func printRecords(w io.Writer, records ...types.Record) error {
	return export.Write(w, types.FormatYAML, records, logger)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
