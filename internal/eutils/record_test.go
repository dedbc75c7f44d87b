// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"encoding/xml"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-meta/pkg/types"
)

func TestToRecord(t *testing.T) {
	var set PubmedArticleSet
	require.NoError(t, xml.Unmarshal([]byte(sampleArticleXML), &set))
	require.Len(t, set.Articles, 1)

	got := ToRecord(set.Articles[0], "33176117")
	want := types.Record{
		PubMedID: "33176117",
		Title:    "Structural basis of SARS-CoV-2 spike binding.",
		Authors:  "Jane Doe, Richard A Roe, COVID-19 Genomics Consortium",
		Journal:  "Cell",
		Year:     "2020",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToRecord() mismatch (-want +got):\n%s", diff)
	}
}

func TestToRecordFallsBackToRequestedID(t *testing.T) {
	got := ToRecord(PubmedArticle{}, "42")
	assert.Equal(t, "42", got.PubMedID)
	assert.Empty(t, got.Authors)
	assert.Empty(t, got.Year)
}

func TestJoinAuthors(t *testing.T) {
	tests := []struct {
		name string
		list *AuthorList
		want string
	}{
		{"nil list", nil, ""},
		{"last name only", &AuthorList{Authors: []Author{{LastName: "Curie"}}}, "Curie"},
		{"fore name only", &AuthorList{Authors: []Author{{ForeName: "Plato"}}}, "Plato"},
		{
			"person beats collective",
			&AuthorList{Authors: []Author{{LastName: "Doe", ForeName: "J", CollectiveName: "Group"}}},
			"J Doe",
		},
		{"empty author skipped", &AuthorList{Authors: []Author{{}, {LastName: "Roe"}}}, "Roe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, joinAuthors(tt.list))
		})
	}
}

func TestPublicationYear(t *testing.T) {
	tests := []struct {
		name string
		mc   MedlineCitation
		want string
	}{
		{
			name: "pub date year",
			mc:   citationWithPubDate(PubDate{Year: "2019"}),
			want: "2019",
		},
		{
			name: "medline date range",
			mc:   citationWithPubDate(PubDate{MedlineDate: "1998 Dec-1999 Jan"}),
			want: "1998",
		},
		{
			name: "date created",
			mc: MedlineCitation{
				DateCreated:   &PubMedDate{Year: "2001"},
				DateCompleted: &PubMedDate{Year: "2002"},
			},
			want: "2001",
		},
		{
			name: "date completed",
			mc:   MedlineCitation{DateCompleted: &PubMedDate{Year: "2002"}},
			want: "2002",
		},
		{
			name: "nothing",
			mc:   MedlineCitation{},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicationYear(tt.mc))
		})
	}
}

func TestTextFlattensMarkup(t *testing.T) {
	var v struct {
		Title Text `xml:"ArticleTitle"`
	}
	doc := `<Article><ArticleTitle>CO<sub>2</sub> levels in <i>E.  coli</i>
	cultures</ArticleTitle></Article>`
	require.NoError(t, xml.Unmarshal([]byte(doc), &v))
	assert.Equal(t, "CO2 levels in E. coli cultures", v.Title.String())
}

func citationWithPubDate(pd PubDate) MedlineCitation {
	var mc MedlineCitation
	mc.Article.Journal.JournalIssue.PubDate = pd
	return mc
}
