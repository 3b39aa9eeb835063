// Package llm generates natural-language summaries via an OpenAI-compatible
// chat completions endpoint.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AdamKaabyia/weekly-report-ai/internal/config"
	"github.com/AdamKaabyia/weekly-report-ai/internal/model"
)

// SummaryPlaceholder replaces a per-PR summary when the endpoint keeps
// failing; the run continues with it.
const SummaryPlaceholder = "summary unavailable"

// OverviewFallback replaces the overall summary on failure.
const OverviewFallback = "Overall summary unavailable."

// Client is a minimal HTTP client for chat completions.
type Client struct {
	endpoint     string
	apiKey       string
	model        string
	temperature  float32
	maxTokens    int
	maxRetries   int
	backoff      time.Duration
	promptBudget int
	httpClient   *http.Client
	log          *zap.SugaredLogger
}

func New(cfg config.LLMConfig, log *zap.SugaredLogger) *Client {
	return &Client{
		endpoint:     cfg.Endpoint,
		apiKey:       cfg.Token,
		model:        cfg.Model,
		temperature:  cfg.Temperature,
		maxTokens:    cfg.MaxTokens,
		maxRetries:   cfg.MaxRetries,
		backoff:      cfg.RetryBackoff,
		promptBudget: cfg.PromptBudget,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// Summarize returns a detailed summary of one PR, or SummaryPlaceholder when
// the endpoint fails after retries.
func (c *Client) Summarize(ctx context.Context, pr model.PullRequest) string {
	c.log.Infow("generating summary", "repo", pr.Repo, "pr", pr.Number)
	out, err := c.generate(ctx, summarySystem, buildPRPrompt(pr, c.model, c.promptBudget))
	if err != nil {
		c.log.Warnw("summary degraded to placeholder", "repo", pr.Repo, "pr", pr.Number, "error", err)
		return SummaryPlaceholder
	}
	return out
}

// Overview returns an overall activity summary across all PRs, or
// OverviewFallback when the endpoint fails after retries.
func (c *Client) Overview(ctx context.Context, prs []model.PullRequest) string {
	out, err := c.generate(ctx, overviewSystem, buildOverviewPrompt(prs))
	if err != nil {
		c.log.Warnw("overview degraded to fallback", "error", err)
		return OverviewFallback
	}
	return out
}

// generate calls the endpoint with bounded retries and exponential backoff.
func (c *Client) generate(ctx context.Context, system, user string) (string, error) {
	attempts := c.maxRetries
	if attempts < 1 {
		attempts = 1
	}
	backoff := c.backoff
	if backoff <= 0 {
		backoff = time.Second
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			c.log.Warnw("llm call failed, retrying", "backoff", backoff, "error", lastErr)
			time.Sleep(backoff)
			backoff *= 2
		}
		out, err := c.complete(ctx, system, user)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", lastErr
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal llm payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call llm endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("llm endpoint responded with status %s", resp.Status)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode llm response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", errors.New("llm returned no choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("llm returned empty content")
	}
	return content, nil
}
