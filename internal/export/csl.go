// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-meta/pkg/types"
)

// CSLItem is a bibliographic entry in CSL (Citation Style Language) form,
// consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	PMID           string    `yaml:"PMID"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL date-parts form.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// WriteCSL writes records as a CSL-YAML list.
func WriteCSL(w io.Writer, records []types.Record) error {
	items := make([]CSLItem, len(records))
	for i, r := range records {
		items[i] = toCSLItem(r)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

func toCSLItem(r types.Record) CSLItem {
	item := CSLItem{
		ID:             "pmid:" + r.PubMedID,
		Type:           "article-journal",
		Title:          r.Title,
		ContainerTitle: r.Journal,
		PMID:           r.PubMedID,
	}
	for _, a := range strings.Split(r.Authors, ", ") {
		if name := parseAuthorName(a); name != (CSLName{}) {
			item.Author = append(item.Author, name)
		}
	}
	if y, err := strconv.Atoi(r.Year); err == nil {
		item.Issued = &CSLDate{DateParts: [][]int{{y}}}
	}
	return item
}

// parseAuthorName splits "ForeName LastName" on the last space. Single-token
// names, and collective names containing "Group" or "Consortium", use the
// literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 || isCollective(name) {
		return CSLName{Literal: name}
	}
	return CSLName{Given: name[:idx], Family: name[idx+1:]}
}

func isCollective(name string) bool {
	lower := strings.ToLower(name)
	for _, w := range []string{"group", "consortium", "collaborat", "committee", "network", "investigators"} {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
