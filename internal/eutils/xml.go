// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"encoding/xml"
	"strings"
)

// ESearchResult is the esearch.fcgi response.
type ESearchResult struct {
	XMLName   xml.Name   `xml:"eSearchResult"`
	Count     int        `xml:"Count"`
	IDList    []string   `xml:"IdList>Id"`
	ErrorList *ErrorList `xml:"ErrorList,omitempty"`
	ERROR     string     `xml:"ERROR,omitempty"`
}

// ErrorList carries esearch term errors.
type ErrorList struct {
	PhraseNotFound []string `xml:"PhraseNotFound,omitempty"`
	FieldNotFound  []string `xml:"FieldNotFound,omitempty"`
}

// PubmedArticleSet is the efetch.fcgi response for db=pubmed, retmode=xml.
// The root element name is not checked: for unknown IDs NCBI may answer
// with an eFetchResult error document, which decodes to an empty set.
type PubmedArticleSet struct {
	Articles []PubmedArticle `xml:"PubmedArticle"`
}

// PubmedArticle is one article in a PubmedArticleSet.
type PubmedArticle struct {
	MedlineCitation MedlineCitation `xml:"MedlineCitation"`
}

// MedlineCitation holds the bibliographic core of an article.
type MedlineCitation struct {
	PMID          string      `xml:"PMID"`
	DateCreated   *PubMedDate `xml:"DateCreated,omitempty"`
	DateCompleted *PubMedDate `xml:"DateCompleted,omitempty"`
	Article       Article     `xml:"Article"`
}

// PubMedDate is a Year/Month/Day triple.
type PubMedDate struct {
	Year  string `xml:"Year"`
	Month string `xml:"Month,omitempty"`
	Day   string `xml:"Day,omitempty"`
}

// Article holds title, journal and authors.
type Article struct {
	Journal      Journal     `xml:"Journal"`
	ArticleTitle Text        `xml:"ArticleTitle"`
	AuthorList   *AuthorList `xml:"AuthorList,omitempty"`
}

// Journal holds the journal title and issue.
type Journal struct {
	Title           string       `xml:"Title"`
	ISOAbbreviation string       `xml:"ISOAbbreviation,omitempty"`
	JournalIssue    JournalIssue `xml:"JournalIssue"`
}

// JournalIssue holds volume, issue and publication date.
type JournalIssue struct {
	Volume  string  `xml:"Volume,omitempty"`
	Issue   string  `xml:"Issue,omitempty"`
	PubDate PubDate `xml:"PubDate"`
}

// PubDate is a publication date. Older citations carry a free-form
// MedlineDate ("1998 Dec-1999 Jan") instead of Year.
type PubDate struct {
	Year        string `xml:"Year,omitempty"`
	Month       string `xml:"Month,omitempty"`
	Day         string `xml:"Day,omitempty"`
	Season      string `xml:"Season,omitempty"`
	MedlineDate string `xml:"MedlineDate,omitempty"`
}

// AuthorList holds the article's authors in source order.
type AuthorList struct {
	Authors []Author `xml:"Author"`
}

// Author is a person or a collective (group) author.
type Author struct {
	LastName       string `xml:"LastName,omitempty"`
	ForeName       string `xml:"ForeName,omitempty"`
	Initials       string `xml:"Initials,omitempty"`
	CollectiveName Text   `xml:"CollectiveName,omitempty"`
}

// Text is element content with inline markup (<i>, <sup>, <b>) flattened to
// its character data. encoding/xml drops the text of child elements when
// decoding into a plain string.
type Text string

// UnmarshalXML collects all character data under the element, at any depth,
// and collapses runs of whitespace.
func (t *Text) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tt := tok.(type) {
		case xml.CharData:
			b.Write(tt)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				*t = Text(strings.Join(strings.Fields(b.String()), " "))
				return nil
			}
			depth--
		}
	}
}

// String returns the flattened text.
func (t Text) String() string { return string(t) }
