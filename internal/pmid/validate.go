// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pmid

import (
	"context"

	"go.uber.org/zap"
)

// Resolver finds the PubMed ID for a search term.
type Resolver interface {
	ESearch(ctx context.Context, term string) (string, error)
}

// Validate turns raw input lines into a deduplicated list of PubMed IDs.
//
// Short numeric lines are kept as is. Numeric lines longer than MaxDigits
// keep their last MaxDigits digits. PMC IDs and any other text are resolved
// through r; lines it cannot resolve are dropped with a warning. The first
// occurrence of each ID wins and input order is preserved.
func Validate(ctx context.Context, raws []string, r Resolver, logger *zap.Logger) []string {
	if logger == nil {
		logger = zap.NewNop()
	}

	seen := make(map[string]bool, len(raws))
	var out []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	for _, raw := range raws {
		if ctx.Err() != nil {
			break
		}
		kind, norm := Classify(raw)
		switch kind {
		case KindEmpty:
			continue
		case KindPMID:
			add(norm)
		case KindLongNumeric:
			logger.Warn("ID is longer than 8 digits; using last 8",
				zap.String("id", raw), zap.String("using", norm))
			add(norm)
		case KindPMC, KindTerm:
			if kind == KindTerm {
				logger.Warn("ID is neither numeric nor PMC; searching for a match", zap.String("id", raw))
			}
			id, err := r.ESearch(ctx, norm)
			if err != nil || id == "" {
				logger.Warn("unable to convert to PubMed ID",
					zap.String("id", raw), zap.String("kind", kind.String()), zap.Error(err))
				continue
			}
			logger.Info("resolved PubMed ID", zap.String("term", norm), zap.String("pmid", id))
			add(id)
		}
	}
	return out
}
