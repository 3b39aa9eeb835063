package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateRangeString(t *testing.T) {
	rng := DateRange{
		Start: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 10, 23, 59, 59, 0, time.UTC),
	}
	assert.Equal(t, "2024-03-04 to 2024-03-10", rng.String())
}

func TestAuthorBreakdownOrderAndCounts(t *testing.T) {
	rep := Report{PullRequests: []PullRequest{
		{Author: "alice", Status: StatusMerged},
		{Author: "bob", Status: StatusClosed},
		{Author: "alice", Status: StatusOpen},
		{Author: "alice", Status: StatusUnknown},
	}}

	stats := rep.AuthorBreakdown()

	assert.Equal(t, []AuthorStats{
		{Author: "alice", Open: 1, Closed: 0, Merged: 1, Total: 3},
		{Author: "bob", Open: 0, Closed: 1, Merged: 0, Total: 1},
	}, stats)
}

func TestAuthorBreakdownEmpty(t *testing.T) {
	assert.Empty(t, Report{}.AuthorBreakdown())
}
