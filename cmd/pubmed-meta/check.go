// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-meta/internal/eutils"
	"github.com/pdiddy/pubmed-meta/internal/fetch"
	"github.com/pdiddy/pubmed-meta/internal/pipeline"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify PubMed API access and print a known record",
	Long: `Check runs the connectivity test, then fetches PubMed ID 33176117 and
prints the extracted fields. Use it to confirm credentials and network access
before a long run.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client := newClient()

	if err := pipeline.Check(ctx, client, logger); err != nil {
		return err
	}

	rec, ok := fetch.FetchRecord(ctx, client, eutils.KnownPMID, logger)
	if !ok {
		return fmt.Errorf("no metadata returned for %s", eutils.KnownPMID)
	}
	return printRecords(cmd.OutOrStdout(), rec)
}
