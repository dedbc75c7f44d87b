// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures for pubmed-meta: the
// flat metadata record written to every output sink and the per-stage
// configuration structs.
package types

// Column headers for tabular output, in write order.
const (
	ColPubMedID = "PubMed_ID"
	ColTitle    = "Title"
	ColAuthors  = "Authors"
	ColJournal  = "Journal"
	ColYear     = "Year"
)

// Columns lists the tabular output header. Every writer emits exactly these
// columns in this order.
var Columns = []string{ColPubMedID, ColTitle, ColAuthors, ColJournal, ColYear}

// Record holds the metadata fetched for a single PubMed article.
type Record struct {
	// PubMedID is the PMID reported by the record itself, which may differ
	// from the requested identifier after a fallback search.
	PubMedID string `json:"pubmed_id" yaml:"pubmed_id"`

	// Title is the article title with inline markup flattened to text.
	Title string `json:"title" yaml:"title"`

	// Authors is a comma-separated list of "ForeName LastName" entries or
	// collective names, in source order.
	Authors string `json:"authors" yaml:"authors"`

	// Journal is the full journal title.
	Journal string `json:"journal" yaml:"journal"`

	// Year is the publication year, empty when PubMed records none.
	Year string `json:"year" yaml:"year"`
}

// Row returns the record's cells in Columns order.
func (r Record) Row() []string {
	return []string{r.PubMedID, r.Title, r.Authors, r.Journal, r.Year}
}

// IsZero reports whether the record carries no PubMed ID.
func (r Record) IsZero() bool {
	return r.PubMedID == ""
}
