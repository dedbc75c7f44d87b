// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pubmed-meta/internal/export"
	"github.com/pdiddy/pubmed-meta/internal/library"
	"github.com/pdiddy/pubmed-meta/internal/pipeline"
	"github.com/pdiddy/pubmed-meta/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <ids.txt>",
	Short: "Fetch metadata for every ID in a file and write CSV and XLSX",
	Long: `Fetch reads one identifier per line from the given file, resolves PMC IDs
and free-text terms to PubMed IDs, looks up each PubMed ID, and writes
PubMed_ID, Title, Authors, Journal, and Year to
institution_publications_metadata.csv and .xlsx next to the input file.

An empty file, a file with no valid IDs, or a run that finds no records
ends with a warning and exit status 0.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	f := fetchCmd.Flags()
	f.String("output-dir", "", "directory for output files (default: the input file's directory)")
	f.String("basename", "", "output file name without extension (default institution_publications_metadata)")
	f.String("formats", "", "comma-separated output formats: csv, xlsx, yaml, json, csl (default csv,xlsx)")
	f.Bool("ascii", false, "transliterate non-ASCII characters in the output")
	f.String("library", "", "also store records in this SQLite library")
	f.Bool("skip-check", false, "skip the API connectivity check")
	f.Duration("progress-interval", 0, "how often to log progress (default 10s)")

	for key, flag := range map[string]string{
		"export.output_dir":       "output-dir",
		"export.base_name":        "basename",
		"export.formats":          "formats",
		"export.ascii":            "ascii",
		"fetch.progress_interval": "progress-interval",
	} {
		if err := viper.BindPFlag(key, f.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}

	rootCmd.AddCommand(fetchCmd)
}

// exportConfig reads the output settings.
func exportConfig() (types.ExportConfig, error) {
	formats, err := export.ParseFormats(strings.Join(viper.GetStringSlice("export.formats"), ","))
	if err != nil {
		return types.ExportConfig{}, err
	}
	return types.ExportConfig{
		OutputDir: viper.GetString("export.output_dir"),
		BaseName:  viper.GetString("export.base_name"),
		Formats:   formats,
		ASCII:     viper.GetBool("export.ascii"),
	}, nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	exp, err := exportConfig()
	if err != nil {
		return err
	}
	skipCheck, _ := cmd.Flags().GetBool("skip-check")

	opts := pipeline.Options{
		InputPath: args[0],
		Fetch:     fetchConfig(),
		Export:    exp,
		SkipCheck: skipCheck,
	}

	path, _ := cmd.Flags().GetString("library")
	if path == "" {
		path = viper.GetString("library.path")
	}
	if path != "" {
		store, err := library.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Library = store
	}

	sum, err := pipeline.Run(cmd.Context(), newClient(), opts, logger)
	if err != nil {
		logger.Error("fetch failed", zap.Error(err))
		return err
	}
	printSummary(cmd.OutOrStdout(), sum)
	return nil
}

// printSummary writes a one-line result and the output paths.
func printSummary(w io.Writer, sum pipeline.Summary) {
	if sum.Outcome != pipeline.OutcomeWritten {
		color.New(color.FgYellow).Fprintf(w, "No output written (%s)\n", sum.Outcome)
		return
	}
	color.New(color.FgGreen, color.Bold).Fprintf(w, "%d records found", sum.Result.Found())
	if n := sum.Result.NotFound(); n > 0 {
		color.New(color.FgRed).Fprintf(w, ", %d not found", n)
	}
	fmt.Fprintln(w)
	for _, p := range sum.Paths {
		fmt.Fprintf(w, "  %s\n", p)
	}
}
