// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-meta/internal/pmid"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <id-or-term>...",
	Short: "Resolve PMC IDs, DOIs, or titles to PubMed IDs",
	Long: `Resolve applies the same validation fetch uses to each argument and prints
one PubMed ID per line. Arguments that cannot be resolved are logged and
skipped; duplicates are printed once.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	ids := pmid.Validate(cmd.Context(), args, newClient(), logger)
	if err := cmd.Context().Err(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("no PubMed IDs found for %s", strings.Join(args, ", "))
	}
	for _, id := range ids {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}
