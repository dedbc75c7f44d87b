// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pmid reads identifier lists and turns them into PubMed IDs.
//
// Input lines may be PubMed IDs, PMC IDs, or anything PubMed's search can
// resolve (a DOI, a title). Validate normalizes, resolves, and deduplicates
// them while keeping input order.
package pmid

import (
	"strings"
)

// Kind classifies a raw input line.
type Kind int

const (
	KindEmpty Kind = iota
	KindPMID
	KindLongNumeric
	KindPMC
	KindTerm
)

func (k Kind) String() string {
	switch k {
	case KindPMID:
		return "pmid"
	case KindLongNumeric:
		return "long-numeric"
	case KindPMC:
		return "pmc"
	case KindTerm:
		return "term"
	default:
		return "empty"
	}
}

// MaxDigits is the length of the longest PubMed ID in normal use.
const MaxDigits = 8

// Classify determines the kind of raw and returns its normalized form.
// Long numerics are cut to their last MaxDigits digits. PMC IDs are
// upper-cased.
func Classify(raw string) (Kind, string) {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return KindEmpty, ""
	case len(s) >= 3 && strings.EqualFold(s[:3], "PMC"):
		return KindPMC, strings.ToUpper(s)
	case isDigits(s) && len(s) <= MaxDigits:
		return KindPMID, s
	case isDigits(s):
		return KindLongNumeric, s[len(s)-MaxDigits:]
	default:
		return KindTerm, s
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
