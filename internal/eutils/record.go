// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"regexp"
	"strings"

	"github.com/pdiddy/pubmed-meta/pkg/types"
)

var yearPattern = regexp.MustCompile(`\b(\d{4})\b`)

// ToRecord flattens a PubMed article into a Record. requested is used as the
// PubMed ID when the citation carries none.
func ToRecord(a PubmedArticle, requested string) types.Record {
	mc := a.MedlineCitation

	pmid := strings.TrimSpace(mc.PMID)
	if pmid == "" {
		pmid = requested
	}

	return types.Record{
		PubMedID: pmid,
		Title:    mc.Article.ArticleTitle.String(),
		Authors:  joinAuthors(mc.Article.AuthorList),
		Journal:  strings.TrimSpace(mc.Article.Journal.Title),
		Year:     publicationYear(mc),
	}
}

func joinAuthors(list *AuthorList) string {
	if list == nil {
		return ""
	}
	names := make([]string, 0, len(list.Authors))
	for _, a := range list.Authors {
		if a.LastName != "" || a.ForeName != "" {
			names = append(names, strings.TrimSpace(a.ForeName+" "+a.LastName))
			continue
		}
		if a.CollectiveName != "" {
			names = append(names, a.CollectiveName.String())
		}
	}
	return strings.Join(names, ", ")
}

// publicationYear prefers JournalIssue/PubDate/Year, then the first year in
// MedlineDate, then the citation's created and completed dates.
func publicationYear(mc MedlineCitation) string {
	pd := mc.Article.Journal.JournalIssue.PubDate
	if y := strings.TrimSpace(pd.Year); y != "" {
		return y
	}
	if m := yearPattern.FindStringSubmatch(pd.MedlineDate); m != nil {
		return m[1]
	}
	for _, d := range []*PubMedDate{mc.DateCreated, mc.DateCompleted} {
		if d != nil && strings.TrimSpace(d.Year) != "" {
			return strings.TrimSpace(d.Year)
		}
	}
	return ""
}
