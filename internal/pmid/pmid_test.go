// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pmid

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
		wantNorm string
	}{
		{"pmid", "33176117", KindPMID, "33176117"},
		{"short pmid", "1", KindPMID, "1"},
		{"pmid with whitespace", "  31452104 \t", KindPMID, "31452104"},
		{"nine digits", "123456789", KindLongNumeric, "23456789"},
		{"twelve digits", "000033176117", KindLongNumeric, "33176117"},
		{"pmc upper", "PMC7029158", KindPMC, "PMC7029158"},
		{"pmc lower", "pmc7029158", KindPMC, "PMC7029158"},
		{"doi", "10.1016/j.cell.2020.10.043", KindTerm, "10.1016/j.cell.2020.10.043"},
		{"title", "Attention is all you need", KindTerm, "Attention is all you need"},
		{"mixed digits", "1234a", KindTerm, "1234a"},
		{"empty", "", KindEmpty, ""},
		{"blank", "   ", KindEmpty, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotKind, gotNorm := Classify(tt.input)
			assert.Equal(t, tt.wantKind, gotKind, "kind")
			assert.Equal(t, tt.wantNorm, gotNorm, "normalized")
		})
	}
}

func TestReadLines(t *testing.T) {
	in := "\ufeff33176117\n\n  31452104  \r\n\t\nPMC7029158\n"
	got, err := ReadLines(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"33176117", "31452104", "PMC7029158"}, got)
}

func TestReadLinesLongLine(t *testing.T) {
	long := strings.Repeat("a title word ", 20000)
	in := "33176117\n" + long + "\n31452104"
	got, err := ReadLines(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, strings.TrimSpace(long), got[1])
	assert.Equal(t, "31452104", got[2])
}

func TestReadFile(t *testing.T) {
	t.Run("reads lines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ids.txt")
		require.NoError(t, os.WriteFile(path, []byte("1\n2\n"), 0o644))

		got, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, got)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
		assert.ErrorIs(t, err, ErrInputNotFound)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ids.txt")
		require.NoError(t, os.WriteFile(path, []byte("\n \n"), 0o644))

		got, err := ReadFile(path)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

// mapResolver answers ESearch from a fixed table and records its calls.
type mapResolver struct {
	ids   map[string]string
	calls []string
}

func (m *mapResolver) ESearch(_ context.Context, term string) (string, error) {
	m.calls = append(m.calls, term)
	if id, ok := m.ids[term]; ok {
		return id, nil
	}
	return "", errors.New("no match")
}

func TestValidate(t *testing.T) {
	r := &mapResolver{ids: map[string]string{
		"PMC7029158":                 "32015507",
		"10.1016/j.cell.2020.10.043": "33176117",
	}}

	raws := []string{
		"33176117",
		"PMC7029158",
		"",
		"123456789",
		"10.1016/j.cell.2020.10.043", // duplicate of the first line once resolved
		"pmc0000000",                 // unresolvable
		"23456789",                   // duplicate of the truncated long ID
		"31452104",
	}

	got := Validate(context.Background(), raws, r, nil)
	assert.Equal(t, []string{"33176117", "32015507", "23456789", "31452104"}, got)
	assert.Equal(t, []string{"PMC7029158", "10.1016/j.cell.2020.10.043", "PMC0000000"}, r.calls)
}

func TestValidateLogsConversions(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := &mapResolver{ids: map[string]string{"some title": "1"}}

	got := Validate(context.Background(), []string{"123456789", "some title", "PMC1"}, r, zap.New(core))
	assert.Equal(t, []string{"23456789", "1"}, got)

	assert.Equal(t, 1, logs.FilterMessage("ID is longer than 8 digits; using last 8").Len())
	assert.Equal(t, 1, logs.FilterMessage("ID is neither numeric nor PMC; searching for a match").Len())
	assert.Equal(t, 1, logs.FilterMessage("unable to convert to PubMed ID").Len())
	assert.Equal(t, 1, logs.FilterMessage("resolved PubMed ID").Len())
}

func TestValidateStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &mapResolver{}
	got := Validate(ctx, []string{"1", "PMC2"}, r, nil)
	assert.Empty(t, got)
	assert.Empty(t, r.calls)
}
