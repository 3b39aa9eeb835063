// Package github wraps the GitHub REST API calls the report needs.
package github

import (
	"context"
	"net/http"
	"strconv"
	"time"

	gh "github.com/google/go-github/v61/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/AdamKaabyia/weekly-report-ai/internal/config"
)

const userAgent = "weekly-report-ai/0.1"

// Client calls the GitHub API with bounded retries and rate-limit waits.
type Client struct {
	gh  *gh.Client
	log *zap.SugaredLogger

	maxRetries  int
	backoff     time.Duration
	maxRateWait time.Duration
}

// New builds an authenticated client from config.
func New(ctx context.Context, cfg config.GitHubConfig, log *zap.SugaredLogger) *Client {
	var httpClient *http.Client
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(ctx, ts)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = cfg.Timeout

	client := gh.NewClient(httpClient)
	client.UserAgent = userAgent
	return newWith(client, cfg, log)
}

// newWith wires a pre-built API client; tests use it to point at httptest.
func newWith(client *gh.Client, cfg config.GitHubConfig, log *zap.SugaredLogger) *Client {
	return &Client{
		gh:          client,
		log:         log,
		maxRetries:  cfg.MaxRetries,
		backoff:     cfg.RetryBackoff,
		maxRateWait: cfg.MaxRateWait,
	}
}

// withRetry runs fn until it succeeds, the attempts are exhausted, or the
// context ends. Rate-limit waits do not consume an attempt; other failures
// back off exponentially.
func (c *Client) withRetry(ctx context.Context, op string, fn func() (*gh.Response, error)) error {
	attempts := c.maxRetries
	if attempts < 1 {
		attempts = 1
	}
	backoff := c.backoff
	if backoff <= 0 {
		backoff = time.Second
	}
	for {
		resp, err := fn()
		if err == nil {
			return nil
		}
		if c.waitIfRateLimited(resp) {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		attempts--
		if attempts <= 0 || ctx.Err() != nil {
			return err
		}
		c.log.Warnw("github call failed, retrying", "op", op, "backoff", backoff, "error", err)
		time.Sleep(backoff)
		backoff *= 2
	}
}

// waitIfRateLimited sleeps for the duration indicated by Retry-After or the
// rate reset time, capped by maxRateWait. Returns true if it waited and the
// caller should retry.
func (c *Client) waitIfRateLimited(resp *gh.Response) bool {
	if !isRateLimitResponse(resp) {
		return false
	}
	if v := resp.Response.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.waitWithCap(time.Duration(secs) * time.Second)
			return true
		}
	}
	if !resp.Rate.Reset.Time.IsZero() {
		wait := time.Until(resp.Rate.Reset.Time)
		if wait <= 0 {
			wait = 5 * time.Second
		}
		c.waitWithCap(wait)
		return true
	}
	// Rate-limited but no reset hint: take a short fixed pause.
	c.waitWithCap(5 * time.Second)
	return true
}

func (c *Client) waitWithCap(wait time.Duration) {
	limit := c.maxRateWait
	if limit <= 0 {
		limit = 2 * time.Minute
	}
	if wait > limit {
		wait = limit
	}
	c.log.Infow("github rate limit hit, waiting", "wait", wait)
	time.Sleep(wait)
}

func isRateLimitResponse(resp *gh.Response) bool {
	if resp == nil || resp.Response == nil {
		return false
	}
	code := resp.Response.StatusCode
	if code == http.StatusTooManyRequests {
		return true
	}
	if code == http.StatusForbidden {
		// 403 counts only when the quota is actually exhausted.
		return resp.Response.Header.Get("X-RateLimit-Remaining") == "0"
	}
	return false
}
