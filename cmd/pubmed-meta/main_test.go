// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-meta/internal/eutils"
	"github.com/pdiddy/pubmed-meta/internal/fetch"
	"github.com/pdiddy/pubmed-meta/internal/library"
	"github.com/pdiddy/pubmed-meta/internal/pipeline"
	"github.com/pdiddy/pubmed-meta/internal/secrets"
	"github.com/pdiddy/pubmed-meta/pkg/types"
)

func init() {
	color.NoColor = true
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "pubmed-meta dev\n", out.String())
}

func TestEntrezConfig(t *testing.T) {
	t.Cleanup(func() {
		loadedSecrets = secrets.Secrets{}
		viper.Set("entrez.email", "")
		viper.Set("entrez.api_key", "")
		viper.Set("entrez.timeout", 0)
	})

	t.Run("defaults", func(t *testing.T) {
		loadedSecrets = secrets.Secrets{}
		cfg := entrezConfig()
		assert.Equal(t, defaultEmail, cfg.Email)
		assert.Equal(t, defaultTimeout, cfg.Timeout)
		assert.Empty(t, cfg.APIKey)
	})

	t.Run("secrets fill unset keys", func(t *testing.T) {
		loadedSecrets = secrets.Secrets{
			secrets.KeyNCBIEmail:  "lab@example.org",
			secrets.KeyNCBIAPIKey: "abc123",
		}
		cfg := entrezConfig()
		assert.Equal(t, "lab@example.org", cfg.Email)
		assert.Equal(t, "abc123", cfg.APIKey)
	})

	t.Run("explicit config wins", func(t *testing.T) {
		loadedSecrets = secrets.Secrets{secrets.KeyNCBIEmail: "lab@example.org"}
		viper.Set("entrez.email", "me@example.com")
		assert.Equal(t, "me@example.com", entrezConfig().Email)
	})
}

func TestFetchConfigDefault(t *testing.T) {
	assert.Equal(t, fetch.DefaultProgressInterval, fetchConfig().ProgressInterval)
}

func TestPrintSummary(t *testing.T) {
	tests := []struct {
		name string
		sum  pipeline.Summary
		want string
	}{
		{
			name: "written with misses",
			sum: pipeline.Summary{
				Outcome: pipeline.OutcomeWritten,
				Result: fetch.BatchResult{
					Records: []types.Record{{PubMedID: "1"}, {PubMedID: "2"}},
					Missing: []string{"3"},
				},
				Paths: []string{"/tmp/a.csv", "/tmp/a.xlsx"},
			},
			want: "2 records found, 1 not found\n  /tmp/a.csv\n  /tmp/a.xlsx\n",
		},
		{
			name: "empty input",
			sum:  pipeline.Summary{Outcome: pipeline.OutcomeNoInput},
			want: "No output written (no-input)\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printSummary(&buf, tt.sum)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "Müller ...", truncate("Müller et al. 2020", 10))
}

func TestFetchAndLibraryCommands(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/efetch.fcgi":
			switch r.URL.Query().Get("id") {
			case eutils.KnownPMID, "31452104":
				fmt.Fprintf(w, `<PubmedArticleSet><PubmedArticle><MedlineCitation><PMID>%s</PMID>
<Article><Journal><JournalIssue><PubDate><Year>2020</Year></PubDate></JournalIssue><Title>Cell</Title></Journal>
<ArticleTitle>A title</ArticleTitle><AuthorList><Author><LastName>Doe</LastName><ForeName>Jane</ForeName></Author></AuthorList></Article>
</MedlineCitation></PubmedArticle></PubmedArticleSet>`, r.URL.Query().Get("id"))
			default:
				fmt.Fprint(w, `<PubmedArticleSet></PubmedArticleSet>`)
			}
		case "/esearch.fcgi":
			if r.URL.Query().Get("term") == "PMC7029158" {
				fmt.Fprint(w, `<eSearchResult><Count>1</Count><IdList><Id>31452104</Id></IdList></eSearchResult>`)
				return
			}
			fmt.Fprint(w, `<eSearchResult><Count>0</Count><IdList></IdList></eSearchResult>`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)

	dir := t.TempDir()
	input := filepath.Join(dir, "ids.txt")
	require.NoError(t, os.WriteFile(input, []byte("31452104\n99999999\n"), 0o644))
	db := filepath.Join(dir, "lib.db")

	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		viper.Set("entrez.base_url", "")
		viper.Set("library.path", "")
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--secrets-dir", filepath.Join(dir, "none"), "--base-url", ts.URL + "/",
		"fetch", input, "--library", db})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "1 records found, 1 not found")
	assert.FileExists(t, filepath.Join(dir, types.DefaultBaseName+".csv"))
	assert.FileExists(t, filepath.Join(dir, types.DefaultBaseName+".xlsx"))

	out.Reset()
	rootCmd.SetArgs([]string{"--secrets-dir", filepath.Join(dir, "none"), "library", "list", "--db", db, "--json"})
	require.NoError(t, rootCmd.Execute())

	var entries []library.Entry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "31452104", entries[0].PubMedID)
	assert.Equal(t, "Jane Doe", entries[0].Authors)
	assert.Equal(t, input, entries[0].Source)

	exported := filepath.Join(dir, "library.csv")
	out.Reset()
	rootCmd.SetArgs([]string{"--secrets-dir", filepath.Join(dir, "none"), "library", "export", "--db", db,
		"--format", "csv", "--out", exported})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Equal(t, "PubMed_ID,Title,Authors,Journal,Year\n31452104,A title,Jane Doe,Cell,2020\n", string(data))

	out.Reset()
	rootCmd.SetArgs([]string{"--secrets-dir", filepath.Join(dir, "none"), "check"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), eutils.KnownPMID)
	assert.Contains(t, out.String(), "title: A title")
	assert.Contains(t, out.String(), "authors: Jane Doe")

	out.Reset()
	rootCmd.SetArgs([]string{"--secrets-dir", filepath.Join(dir, "none"), "resolve", "PMC7029158", "33176117", "pmc7029158"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "31452104\n33176117\n", out.String())

	rootCmd.SetArgs([]string{"--secrets-dir", filepath.Join(dir, "none"), "resolve", "no such paper"})
	assert.Error(t, rootCmd.Execute())
}
