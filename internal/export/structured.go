// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-meta/pkg/types"
)

// WriteYAML writes records as a YAML list.
func WriteYAML(w io.Writer, records []types.Record) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(nonNil(records))
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(w io.Writer, records []types.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(nonNil(records))
}

func nonNil(records []types.Record) []types.Record {
	if records == nil {
		return []types.Record{}
	}
	return records
}
