// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for talking to NCBI.
package httputil

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// RetryBaseDelay controls the base duration for exponential backoff.
// Tests override this to avoid real sleeps.
var RetryBaseDelay = 5 * time.Second

const defaultMaxRetries = 3

// SensitiveParams are query parameters that carry credentials and are
// dropped from URLs before they are logged or returned in errors.
var SensitiveParams = []string{"api_key", "email"}

// LogURL returns u as a string with userinfo and SensitiveParams removed.
func LogURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	c := *u
	c.User = nil
	q := c.Query()
	for _, k := range SensitiveParams {
		q.Del(k)
	}
	c.RawQuery = q.Encode()
	return c.String()
}

// Retryable reports whether a response status is worth retrying: HTTP 429
// (Too Many Requests) or any 5xx. NCBI answers bursts with 429 and
// overloaded backends with 502/503.
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// DoWithRetry executes req and retries Retryable responses with
// exponential backoff: RetryBaseDelay, then double each attempt.
//
// When maxRetries is 0 the default (3) is used. Before each retry the
// response body is drained and closed. If ctx is cancelled during a wait
// the function returns ctx.Err(). After exhausting retries the last
// response is returned so the caller can inspect it. A nil logger is
// allowed. Logged URLs and transport errors carry LogURL(req.URL), never
// the raw request URL.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, logger *zap.Logger) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			var ue *url.Error
			if errors.As(err, &ue) {
				ue.URL = LogURL(req.URL)
			}
			return nil, err
		}

		if !Retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		logger.Warn("retrying request",
			zap.String("url", LogURL(req.URL)),
			zap.Int("status", resp.StatusCode),
			zap.Duration("backoff", backoff),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
