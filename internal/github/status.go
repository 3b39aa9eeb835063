package github

import (
	"context"
	"strings"

	gh "github.com/google/go-github/v61/github"

	"github.com/AdamKaabyia/weekly-report-ai/internal/model"
)

// Status resolves a PR's current lifecycle state via a detail lookup.
// Merged wins over closed, closed over open. A failed lookup yields
// StatusUnknown and never aborts the run.
func (c *Client) Status(ctx context.Context, pr model.PullRequest) model.Status {
	owner, repo, ok := splitRepo(pr.Repo)
	if !ok {
		c.log.Warnw("cannot resolve status, malformed repo", "repo", pr.Repo, "pr", pr.Number)
		return model.StatusUnknown
	}

	var detail *gh.PullRequest
	err := c.withRetry(ctx, "get pull request", func() (*gh.Response, error) {
		var resp *gh.Response
		var err error
		detail, resp, err = c.gh.PullRequests.Get(ctx, owner, repo, pr.Number)
		return resp, err
	})
	if err != nil {
		c.log.Warnw("status lookup failed", "repo", pr.Repo, "pr", pr.Number, "error", err)
		return model.StatusUnknown
	}

	if detail.GetMerged() || detail.MergedAt != nil {
		return model.StatusMerged
	}
	if detail.GetState() == "closed" {
		return model.StatusClosed
	}
	return model.StatusOpen
}

func splitRepo(full string) (owner, repo string, ok bool) {
	parts := strings.SplitN(full, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
