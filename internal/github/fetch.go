package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v61/github"

	"github.com/AdamKaabyia/weekly-report-ai/internal/model"
)

// Login returns the login of the user the token authenticates as.
func (c *Client) Login(ctx context.Context) (string, error) {
	var user *gh.User
	err := c.withRetry(ctx, "get authenticated user", func() (*gh.Response, error) {
		var resp *gh.Response
		var err error
		user, resp, err = c.gh.Users.Get(ctx, "")
		return resp, err
	})
	if err != nil {
		return "", fmt.Errorf("get authenticated user: %w", err)
	}
	if user.GetLogin() == "" {
		return "", fmt.Errorf("authenticated user has no login")
	}
	return user.GetLogin(), nil
}

// PullRequests fetches every PR created by author inside rng via the search
// API, paginated, in the order the API returns them.
func (c *Client) PullRequests(ctx context.Context, author string, rng model.DateRange) ([]model.PullRequest, error) {
	query := fmt.Sprintf("is:pr author:%s created:%s..%s",
		author, rng.Start.Format("2006-01-02"), rng.End.Format("2006-01-02"))
	opt := &gh.SearchOptions{ListOptions: gh.ListOptions{PerPage: 100}}

	var records []model.PullRequest
	page := 1
	for {
		c.log.Infow("fetching pull requests", "query", query, "page", page)

		var result *gh.IssuesSearchResult
		var resp *gh.Response
		err := c.withRetry(ctx, "search pull requests", func() (*gh.Response, error) {
			var err error
			result, resp, err = c.gh.Search.Issues(ctx, query, opt)
			return resp, err
		})
		if err != nil {
			return nil, fmt.Errorf("search pull requests by %s: %w", author, err)
		}

		for _, issue := range result.Issues {
			if !issue.IsPullRequest() {
				continue
			}
			created := issue.GetCreatedAt().Time
			// Search matches at day granularity; enforce the exact window.
			if !rng.Contains(created) {
				continue
			}
			records = append(records, model.PullRequest{
				Repo:      repoFromURL(issue.GetRepositoryURL()),
				Number:    issue.GetNumber(),
				Title:     issue.GetTitle(),
				Author:    issue.GetUser().GetLogin(),
				CreatedAt: created,
				URL:       issue.GetHTMLURL(),
				Body:      issue.GetBody(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
		page = resp.NextPage
	}

	c.log.Infow("pull requests fetched", "author", author, "count", len(records))
	return records, nil
}

// repoFromURL extracts "owner/name" from an API repository URL such as
// https://api.github.com/repos/owner/name.
func repoFromURL(url string) string {
	parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
	if len(parts) < 2 {
		return "unknown"
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1]
}
