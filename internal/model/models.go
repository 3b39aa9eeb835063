package model

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a pull request.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
	StatusMerged Status = "merged"
	// StatusUnknown is the fallback when a status lookup fails; it never
	// comes from the API itself.
	StatusUnknown Status = "unknown"
)

// PullRequest holds everything the report needs about one PR.
type PullRequest struct {
	Repo      string // "owner/name"
	Number    int
	Title     string
	Author    string
	CreatedAt time.Time
	URL       string // html link
	Body      string
	Status    Status
	Summary   string
}

// DateRange is an inclusive [Start, End] reporting window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range, boundaries included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// String renders the range as "YYYY-MM-DD to YYYY-MM-DD".
func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

// Report aggregates one run's records for rendering.
type Report struct {
	Range        DateRange
	Author       string
	Overview     string
	PullRequests []PullRequest
}

// AuthorStats is the per-author row of the summary table.
type AuthorStats struct {
	Author string
	Open   int
	Closed int
	Merged int
	Total  int
}

// AuthorBreakdown groups records by author in first-appearance order.
func (rep Report) AuthorBreakdown() []AuthorStats {
	index := make(map[string]int)
	var stats []AuthorStats
	for _, pr := range rep.PullRequests {
		i, ok := index[pr.Author]
		if !ok {
			i = len(stats)
			index[pr.Author] = i
			stats = append(stats, AuthorStats{Author: pr.Author})
		}
		switch pr.Status {
		case StatusOpen:
			stats[i].Open++
		case StatusClosed:
			stats[i].Closed++
		case StatusMerged:
			stats[i].Merged++
		}
		stats[i].Total++
	}
	return stats
}
