// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the end-to-end job: check the API, read the ID file,
// validate IDs, fetch each record, and write the output files.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/pubmed-meta/internal/export"
	"github.com/pdiddy/pubmed-meta/internal/fetch"
	"github.com/pdiddy/pubmed-meta/internal/pmid"
	"github.com/pdiddy/pubmed-meta/pkg/types"
)

// Client is everything the pipeline asks of E-utilities.
type Client interface {
	fetch.Source
	Ping(ctx context.Context) (string, error)
}

// Sink receives the fetched records in addition to the output files.
type Sink interface {
	Put(ctx context.Context, records []types.Record, source string) error
}

// Options configures a Run.
type Options struct {
	InputPath string
	Fetch     types.FetchConfig
	Export    types.ExportConfig

	// SkipCheck disables the connectivity check before reading input.
	SkipCheck bool

	// Library, when set, also stores the fetched records.
	Library Sink
}

// Outcome says how a Run ended.
type Outcome int

const (
	// OutcomeWritten means output files were written.
	OutcomeWritten Outcome = iota
	// OutcomeNoInput means the input file held no IDs.
	OutcomeNoInput
	// OutcomeNoValidIDs means no line survived validation.
	OutcomeNoValidIDs
	// OutcomeNoRecords means no ID produced a record.
	OutcomeNoRecords
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeNoInput:
		return "no-input"
	case OutcomeNoValidIDs:
		return "no-valid-ids"
	case OutcomeNoRecords:
		return "no-records"
	default:
		return "unknown"
	}
}

// Summary reports what a Run did.
type Summary struct {
	Outcome Outcome
	Lines   int
	IDs     []string
	Result  fetch.BatchResult
	Paths   []string
}

// ErrAPIUnavailable is returned when the connectivity check fails.
var ErrAPIUnavailable = errors.New("failed to connect to PubMed API")

// Run executes the job. Empty input, no valid IDs, and no records are not
// errors: they end the run early with the matching Outcome and a warning.
func Run(ctx context.Context, c Client, opts Options, logger *zap.Logger) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var sum Summary

	if !opts.SkipCheck {
		if err := Check(ctx, c, logger); err != nil {
			return sum, err
		}
	}

	lines, err := pmid.ReadFile(opts.InputPath)
	if err != nil {
		return sum, err
	}
	sum.Lines = len(lines)
	if len(lines) == 0 {
		logger.Warn("no PubMed IDs found in the input file", zap.String("path", opts.InputPath))
		sum.Outcome = OutcomeNoInput
		return sum, nil
	}

	sum.IDs = pmid.Validate(ctx, lines, c, logger)
	if err := ctx.Err(); err != nil {
		return sum, err
	}
	if len(sum.IDs) == 0 {
		logger.Warn("no valid PubMed IDs after validation")
		sum.Outcome = OutcomeNoValidIDs
		return sum, nil
	}
	logger.Info("unique valid PubMed IDs to fetch", zap.Int("count", len(sum.IDs)))

	sum.Result = fetch.FetchAll(ctx, c, sum.IDs, opts.Fetch, logger)
	if err := ctx.Err(); err != nil {
		return sum, err
	}
	if sum.Result.Found() == 0 {
		logger.Warn("no valid metadata could be retrieved", zap.Int("not_found", sum.Result.NotFound()))
		sum.Outcome = OutcomeNoRecords
		return sum, nil
	}
	logger.Info("retrieved metadata",
		zap.Int("articles", sum.Result.Found()),
		zap.Int("not_found", sum.Result.NotFound()))

	sum.Paths, err = export.WriteAll(sum.Result.Records, opts.Export, opts.InputPath, logger)
	for _, p := range sum.Paths {
		logger.Info("exported metadata", zap.String("path", p))
	}
	if err != nil {
		return sum, err
	}

	if opts.Library != nil {
		if err := opts.Library.Put(ctx, sum.Result.Records, opts.InputPath); err != nil {
			return sum, fmt.Errorf("updating library: %w", err)
		}
		logger.Info("library updated", zap.Int("records", sum.Result.Found()))
	}

	sum.Outcome = OutcomeWritten
	return sum, nil
}

// Check verifies that E-utilities answers with a known article.
func Check(ctx context.Context, c Client, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("testing PubMed API with known valid ID")
	title, err := c.Ping(ctx)
	if err != nil {
		logger.Error("PubMed API test failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrAPIUnavailable, err)
	}
	logger.Info("PubMed API test successful", zap.String("example_title", title))
	return nil
}
