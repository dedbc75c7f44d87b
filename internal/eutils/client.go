// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eutils is a small client for the NCBI E-utilities PubMed endpoints:
// efetch for article metadata and esearch for resolving free-text terms,
// DOIs, and PMC IDs to PubMed IDs.
//
// Every request carries the tool, email, and optional api_key parameters
// NCBI asks for, is paced by a token-bucket limiter (3 requests per second,
// 10 with an API key), and is retried on HTTP 429 and 5xx.
package eutils

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/pubmed-meta/internal/httputil"
	"github.com/pdiddy/pubmed-meta/pkg/types"
)

// DefaultBaseURL is the E-utilities root.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"

// KnownPMID is a PubMed ID used to verify connectivity.
const KnownPMID = "33176117"

const (
	defaultTool      = "pubmed-meta"
	defaultUserAgent = "pubmed-meta/0.1"
	maxTypicalPMID   = 8
)

// NCBI request ceilings.
const (
	rateAnonymous rate.Limit = 3
	rateWithKey   rate.Limit = 10
)

var (
	// ErrNoMatch is returned by ESearch when the term matches no record.
	ErrNoMatch = errors.New("no PubMed records match")

	// ErrNoArticle is returned by Ping when efetch answers without an article.
	ErrNoArticle = errors.New("efetch returned no PubmedArticle")
)

// StatusError reports a non-200 response from E-utilities.
type StatusError struct {
	StatusCode int
	Endpoint   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d", e.Endpoint, e.StatusCode)
}

// Client talks to E-utilities.
type Client struct {
	// BaseURL is the E-utilities root, ending in a slash. Tests point it at
	// an httptest server.
	BaseURL string

	http    *http.Client
	cfg     types.EntrezConfig
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New returns a Client. A nil httpClient uses one with cfg.Timeout; a nil
// logger discards output.
func New(httpClient *http.Client, cfg types.EntrezConfig, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Tool == "" {
		cfg.Tool = defaultTool
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	limit := rateAnonymous
	if cfg.APIKey != "" {
		limit = rateWithKey
	}

	return &Client{
		BaseURL: DefaultBaseURL,
		http:    httpClient,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// SetLimit overrides the request rate. Tests use rate.Inf.
func (c *Client) SetLimit(limit rate.Limit) {
	c.limiter.SetLimit(limit)
}

// EFetch retrieves the PubMed XML record for a single PubMed ID. A well-formed
// response with no articles is not an error: the returned set is empty.
func (c *Client) EFetch(ctx context.Context, pmid string) (*PubmedArticleSet, error) {
	if len(pmid) > maxTypicalPMID && isDigits(pmid) {
		c.logger.Warn("PubMed ID is unusually long; it may not be valid", zap.String("pmid", pmid))
	}
	c.logger.Debug("efetch", zap.String("pmid", pmid))

	params := url.Values{
		"id":      {pmid},
		"rettype": {"xml"},
		"retmode": {"xml"},
	}
	var set PubmedArticleSet
	if err := c.get(ctx, "efetch.fcgi", params, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// ESearch returns the first PubMed ID matching term.
func (c *Client) ESearch(ctx context.Context, term string) (string, error) {
	c.logger.Debug("esearch", zap.String("term", term))

	params := url.Values{
		"term":   {term},
		"retmax": {"1"},
	}
	var res ESearchResult
	if err := c.get(ctx, "esearch.fcgi", params, &res); err != nil {
		return "", err
	}
	if res.ERROR != "" {
		return "", fmt.Errorf("esearch %q: %s", term, res.ERROR)
	}
	if len(res.IDList) == 0 || strings.TrimSpace(res.IDList[0]) == "" {
		return "", fmt.Errorf("%w: %q", ErrNoMatch, term)
	}
	return strings.TrimSpace(res.IDList[0]), nil
}

// Ping fetches KnownPMID and returns its title. It fails when the service is
// unreachable or the response carries no article.
func (c *Client) Ping(ctx context.Context) (string, error) {
	set, err := c.EFetch(ctx, KnownPMID)
	if err != nil {
		return "", err
	}
	if len(set.Articles) == 0 {
		return "", ErrNoArticle
	}
	return set.Articles[0].MedlineCitation.Article.ArticleTitle.String(), nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, into any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	params.Set("db", "pubmed")
	params.Set("tool", c.cfg.Tool)
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.cfg.MaxRetries, c.logger)
	if err != nil {
		return fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Endpoint: endpoint}
	}

	if err := xml.NewDecoder(resp.Body).Decode(into); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty body: nothing found.
			return nil
		}
		return fmt.Errorf("parsing %s response: %w", endpoint, err)
	}
	return nil
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
