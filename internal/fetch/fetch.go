// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves PubMed metadata for a list of PubMed IDs, one
// request per ID, in input order.
package fetch

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/pubmed-meta/internal/eutils"
	"github.com/pdiddy/pubmed-meta/pkg/types"
)

// DefaultProgressInterval is how often FetchAll logs running counts.
const DefaultProgressInterval = 10 * time.Second

// now is replaced in tests.
var now = time.Now

// Source is the subset of the E-utilities client the fetch loop needs.
type Source interface {
	EFetch(ctx context.Context, pmid string) (*eutils.PubmedArticleSet, error)
	ESearch(ctx context.Context, term string) (string, error)
}

// BatchResult holds the outcome of a FetchAll run.
type BatchResult struct {
	// Records holds one entry per ID that resolved, in input order.
	Records []types.Record

	// Missing lists the IDs that produced no record.
	Missing []string
}

// Found returns the number of IDs that produced a record.
func (r BatchResult) Found() int { return len(r.Records) }

// NotFound returns the number of IDs that produced no record.
func (r BatchResult) NotFound() int { return len(r.Missing) }

// Total returns the number of IDs processed.
func (r BatchResult) Total() int { return r.Found() + r.NotFound() }

// FetchRecord fetches the record for pmid.
//
// When efetch answers with no article or with an HTTP error, the ID is
// searched as a term and, if that finds a different ID, the record for the
// new ID is fetched instead. The substitute is fetched once; its own
// failures are final. Any other error yields no record.
func FetchRecord(ctx context.Context, src Source, pmid string, logger *zap.Logger) (types.Record, bool) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return fetchRecord(ctx, src, pmid, true, logger)
}

func fetchRecord(ctx context.Context, src Source, pmid string, fallback bool, logger *zap.Logger) (types.Record, bool) {
	set, err := src.EFetch(ctx, pmid)

	var statusErr *eutils.StatusError
	switch {
	case err == nil && len(set.Articles) > 0:
		return eutils.ToRecord(set.Articles[0], pmid), true
	case err == nil:
		logger.Warn("no valid PubmedArticle found", zap.String("pmid", pmid))
	case errors.As(err, &statusErr):
		logger.Error("HTTP error while fetching", zap.String("pmid", pmid), zap.Error(err))
	default:
		if ctx.Err() == nil {
			logger.Error("unexpected error while fetching", zap.String("pmid", pmid), zap.Error(err))
		}
		return types.Record{}, false
	}

	if !fallback {
		return types.Record{}, false
	}

	alt, err := src.ESearch(ctx, pmid)
	if err != nil || alt == "" || alt == pmid {
		logger.Debug("no fallback ID", zap.String("pmid", pmid), zap.String("found", alt), zap.Error(err))
		return types.Record{}, false
	}
	logger.Info("retrying with fallback ID", zap.String("pmid", pmid), zap.String("fallback", alt))
	return fetchRecord(ctx, src, alt, false, logger)
}

// FetchAll fetches every ID in order. Failed IDs are recorded in Missing and
// do not stop the loop. Running counts are logged every
// cfg.ProgressInterval. A cancelled context stops the loop; the IDs not yet
// attempted are not reported.
func FetchAll(ctx context.Context, src Source, ids []string, cfg types.FetchConfig, logger *zap.Logger) BatchResult {
	if logger == nil {
		logger = zap.NewNop()
	}
	interval := cfg.ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	result := BatchResult{Records: make([]types.Record, 0, len(ids))}
	lastReport := now()

	for _, id := range ids {
		if ctx.Err() != nil {
			logger.Warn("fetch cancelled", zap.Int("remaining", len(ids)-result.Total()))
			break
		}

		if rec, ok := FetchRecord(ctx, src, id, logger); ok {
			result.Records = append(result.Records, rec)
		} else {
			result.Missing = append(result.Missing, id)
		}

		if t := now(); t.Sub(lastReport) >= interval {
			logger.Info("progress",
				zap.Int("found", result.Found()),
				zap.Int("not_found", result.NotFound()),
				zap.Int("total", len(ids)))
			lastReport = t
		}
	}
	return result
}
