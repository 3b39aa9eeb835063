package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AdamKaabyia/weekly-report-ai/internal/model"
)

type stubSource struct {
	login    string
	loginErr error
	prs      []model.PullRequest
	fetchErr error
	statuses map[int]model.Status

	fetchedAuthor string
	fetchedRange  model.DateRange
}

func (s *stubSource) Login(ctx context.Context) (string, error) {
	return s.login, s.loginErr
}

func (s *stubSource) PullRequests(ctx context.Context, author string, rng model.DateRange) ([]model.PullRequest, error) {
	s.fetchedAuthor = author
	s.fetchedRange = rng
	return s.prs, s.fetchErr
}

func (s *stubSource) Status(ctx context.Context, pr model.PullRequest) model.Status {
	if st, ok := s.statuses[pr.Number]; ok {
		return st
	}
	return model.StatusUnknown
}

type stubSummarizer struct {
	summaries map[int]string
	overview  string
}

func (s *stubSummarizer) Summarize(ctx context.Context, pr model.PullRequest) string {
	if txt, ok := s.summaries[pr.Number]; ok {
		return txt
	}
	return "summary unavailable"
}

func (s *stubSummarizer) Overview(ctx context.Context, prs []model.PullRequest) string {
	return s.overview
}

func fixedNow() time.Time {
	// A Wednesday; previous week is 2024-03-04 .. 2024-03-10.
	return time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC)
}

func TestRunWritesReport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dashboard.md")
	src := &stubSource{
		prs: []model.PullRequest{
			{Repo: "org/repo-a", Number: 10, Title: "Speed up ingestion", Author: "alice",
				CreatedAt: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)},
			{Repo: "org/repo-b", Number: 11, Title: "Add retry logic", Author: "alice",
				CreatedAt: time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)},
		},
		statuses: map[int]model.Status{10: model.StatusMerged, 11: model.StatusOpen},
	}
	sum := &stubSummarizer{
		summaries: map[int]string{10: "faster ingestion", 11: "adds retries"},
		overview:  "Solid week.",
	}

	err := Run(context.Background(), Options{Author: "alice", OutputPath: out, Now: fixedNow}, src, sum, zap.NewNop().Sugar())
	require.NoError(t, err)

	assert.Equal(t, "alice", src.fetchedAuthor)
	assert.Equal(t, "2024-03-04", src.fetchedRange.Start.Format("2006-01-02"))
	assert.Equal(t, "2024-03-10", src.fetchedRange.End.Format("2006-01-02"))

	doc, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "Solid week.")
	assert.Contains(t, string(doc), "merged")
	assert.Contains(t, string(doc), "faster ingestion")
}

func TestRunResolvesAuthorFromToken(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dashboard.md")
	src := &stubSource{login: "adamkaabyia"}
	sum := &stubSummarizer{overview: "Quiet week."}

	err := Run(context.Background(), Options{OutputPath: out, Now: fixedNow}, src, sum, zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.Equal(t, "adamkaabyia", src.fetchedAuthor)
}

func TestRunFetchFailureIsFatalAndWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dashboard.md")
	src := &stubSource{fetchErr: errors.New("401 bad credentials")}

	err := Run(context.Background(), Options{Author: "alice", OutputPath: out, Now: fixedNow}, src, &stubSummarizer{}, zap.NewNop().Sugar())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch pull requests")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output file may exist after a fatal fetch error")
}

func TestRunLoginFailureIsFatal(t *testing.T) {
	src := &stubSource{loginErr: errors.New("401")}
	err := Run(context.Background(), Options{OutputPath: filepath.Join(t.TempDir(), "d.md"), Now: fixedNow}, src, &stubSummarizer{}, zap.NewNop().Sugar())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve author")
}

func TestRunDegradedRecordsStillProduceReport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dashboard.md")
	src := &stubSource{
		prs: []model.PullRequest{{Repo: "org/repo", Number: 5, Title: "x", Author: "bob",
			CreatedAt: time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)}},
		// no statuses: resolver falls back to unknown
	}
	sum := &stubSummarizer{overview: "ok"} // no summaries: placeholder

	err := Run(context.Background(), Options{Author: "bob", OutputPath: out, Now: fixedNow}, src, sum, zap.NewNop().Sugar())
	require.NoError(t, err)

	doc, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "unknown")
	assert.Contains(t, string(doc), "summary unavailable")
}
