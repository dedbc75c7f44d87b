// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-meta/internal/eutils"
	"github.com/pdiddy/pubmed-meta/internal/fetch"
	"github.com/pdiddy/pubmed-meta/internal/secrets"
	"github.com/pdiddy/pubmed-meta/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultEmail     = "test@example.com"
	defaultUserAgent = "pubmed-meta/0.1"
)

// entrezConfig assembles client settings from flags, config, environment,
// and .secrets/, in that order of precedence.
func entrezConfig() types.EntrezConfig {
	timeout := viper.GetDuration("entrez.timeout")
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	email := loadedSecrets.Or(secrets.KeyNCBIEmail, viper.GetString("entrez.email"))
	if email == "" {
		email = defaultEmail
	}
	return types.EntrezConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Email:      email,
		Tool:       viper.GetString("entrez.tool"),
		APIKey:     loadedSecrets.Or(secrets.KeyNCBIAPIKey, viper.GetString("entrez.api_key")),
		MaxRetries: viper.GetInt("entrez.max_retries"),
	}
}

// newClient returns an E-utilities client built from entrezConfig.
func newClient() *eutils.Client {
	cfg := entrezConfig()
	c := eutils.New(&http.Client{Timeout: cfg.Timeout}, cfg, logger)
	if base := viper.GetString("entrez.base_url"); base != "" {
		c.BaseURL = base
	}
	if cfg.APIKey == "" && cfg.Email == defaultEmail {
		logger.Debug("no NCBI email or API key configured; using the anonymous rate limit")
	}
	return c
}

// fetchConfig reads the fetch loop settings.
func fetchConfig() types.FetchConfig {
	interval := viper.GetDuration("fetch.progress_interval")
	if interval <= 0 {
		interval = fetch.DefaultProgressInterval
	}
	return types.FetchConfig{ProgressInterval: interval}
}
