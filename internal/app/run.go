// Package app orchestrates one report run: date window -> fetch -> enrich ->
// render -> write.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/AdamKaabyia/weekly-report-ai/internal/daterange"
	"github.com/AdamKaabyia/weekly-report-ai/internal/model"
	"github.com/AdamKaabyia/weekly-report-ai/internal/report"
)

// PRSource is the slice of the GitHub client the run needs.
type PRSource interface {
	Login(ctx context.Context) (string, error)
	PullRequests(ctx context.Context, author string, rng model.DateRange) ([]model.PullRequest, error)
	Status(ctx context.Context, pr model.PullRequest) model.Status
}

// Summarizer produces natural-language text for records; implementations
// degrade to placeholders instead of failing.
type Summarizer interface {
	Summarize(ctx context.Context, pr model.PullRequest) string
	Overview(ctx context.Context, prs []model.PullRequest) string
}

// Options collect the run inputs not owned by a client.
type Options struct {
	Author     string // empty means resolve from the token
	OutputPath string
	Now        func() time.Time
}

// Run executes one report generation. It returns an error only for fatal
// conditions (author resolution, fetch, write); per-record status and
// summary failures degrade in place.
func Run(ctx context.Context, opts Options, src PRSource, sum Summarizer, log *zap.SugaredLogger) error {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	rng := daterange.LastWeek(now())
	log.Infow("reporting window computed", "start", rng.Start, "end", rng.End)

	author := opts.Author
	if author == "" {
		login, err := src.Login(ctx)
		if err != nil {
			return fmt.Errorf("resolve author: %w", err)
		}
		author = login
		log.Infow("author resolved from token", "author", author)
	}

	prs, err := src.PullRequests(ctx, author, rng)
	if err != nil {
		return fmt.Errorf("fetch pull requests: %w", err)
	}

	// Enrich sequentially so the final order matches the fetch order.
	for i := range prs {
		prs[i].Status = src.Status(ctx, prs[i])
		prs[i].Summary = sum.Summarize(ctx, prs[i])
	}

	rep := model.Report{
		Range:        rng,
		Author:       author,
		Overview:     sum.Overview(ctx, prs),
		PullRequests: prs,
	}

	doc, err := report.Render(rep)
	if err != nil {
		return err
	}

	if err := os.WriteFile(opts.OutputPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Infow("report written", "path", opts.OutputPath, "pull_requests", len(prs))
	return nil
}
