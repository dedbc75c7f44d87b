// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes metadata records to tabular and structured files.
//
// CSV and XLSX are the primary outputs; YAML, JSON, and CSL-YAML are
// available for downstream tooling. Every tabular writer emits the header in
// types.Columns followed by one row per record.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rainycape/unidecode"
	"go.uber.org/zap"

	"github.com/pdiddy/pubmed-meta/pkg/types"
)

// DefaultFormats are written when no formats are configured.
var DefaultFormats = []types.Format{types.FormatCSV, types.FormatXLSX}

var extensions = map[types.Format]string{
	types.FormatCSV:  ".csv",
	types.FormatXLSX: ".xlsx",
	types.FormatYAML: ".yaml",
	types.FormatJSON: ".json",
	types.FormatCSL:  ".csl.yaml",
}

// ParseFormats parses a comma-separated format list such as "csv,xlsx".
// Blank input yields DefaultFormats.
func ParseFormats(s string) ([]types.Format, error) {
	var out []types.Format
	seen := map[types.Format]bool{}
	for _, part := range strings.Split(s, ",") {
		f := types.Format(strings.ToLower(strings.TrimSpace(part)))
		if f == "" || seen[f] {
			continue
		}
		if _, ok := extensions[f]; !ok {
			return nil, fmt.Errorf("unsupported format %q: use csv, xlsx, yaml, json, or csl", f)
		}
		seen[f] = true
		out = append(out, f)
	}
	if len(out) == 0 {
		return DefaultFormats, nil
	}
	return out, nil
}

// Path returns the output path for format f. Output goes to cfg.OutputDir,
// or next to inputPath when that is empty.
func Path(cfg types.ExportConfig, inputPath string, f types.Format) (string, error) {
	dir := cfg.OutputDir
	if dir == "" {
		abs, err := filepath.Abs(inputPath)
		if err != nil {
			return "", fmt.Errorf("resolving input path: %w", err)
		}
		dir = filepath.Dir(abs)
	}
	base := cfg.BaseName
	if base == "" {
		base = types.DefaultBaseName
	}
	ext, ok := extensions[f]
	if !ok {
		return "", fmt.Errorf("unsupported format %q", f)
	}
	return filepath.Join(dir, base+ext), nil
}

// Write encodes records in format f to w. A nil logger is allowed.
func Write(w io.Writer, f types.Format, records []types.Record, logger *zap.Logger) error {
	switch f {
	case types.FormatCSV:
		return WriteCSV(w, records)
	case types.FormatXLSX:
		return WriteXLSX(w, records, logger)
	case types.FormatYAML:
		return WriteYAML(w, records)
	case types.FormatJSON:
		return WriteJSON(w, records)
	case types.FormatCSL:
		return WriteCSL(w, records)
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

// WriteAll writes records in every configured format and returns the paths
// written, in format order. Each file is written to a temporary file and
// renamed into place.
func WriteAll(records []types.Record, cfg types.ExportConfig, inputPath string, logger *zap.Logger) ([]string, error) {
	formats := cfg.Formats
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	if cfg.ASCII {
		records = Transliterate(records)
	}

	var written []string
	for _, f := range formats {
		path, err := Path(cfg, inputPath, f)
		if err != nil {
			return written, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, fmt.Errorf("creating output directory: %w", err)
		}
		if err := writeFile(path, func(w io.Writer) error { return Write(w, f, records, logger) }); err != nil {
			return written, fmt.Errorf("writing %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// Transliterate returns a copy of records with every field reduced to ASCII.
func Transliterate(records []types.Record) []types.Record {
	out := make([]types.Record, len(records))
	for i, r := range records {
		out[i] = types.Record{
			PubMedID: unidecode.Unidecode(r.PubMedID),
			Title:    unidecode.Unidecode(r.Title),
			Authors:  unidecode.Unidecode(r.Authors),
			Journal:  unidecode.Unidecode(r.Journal),
			Year:     unidecode.Unidecode(r.Year),
		}
	}
	return out
}

// writeFile writes through a temp file in the destination directory and
// renames it to path on success.
func writeFile(path string, fill func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	fillErr := fill(tmp)
	closeErr := tmp.Close()
	if fillErr != nil {
		os.Remove(tmpPath)
		return fillErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
