// Package daterange computes the reporting window for a run.
package daterange

import (
	"time"

	"github.com/AdamKaabyia/weekly-report-ai/internal/model"
)

// LastWeek returns the previous full calendar week relative to now:
// Monday 00:00:00 through Sunday 23:59:59, in now's location.
//
// The week containing now is never part of the range. A run on a Monday
// reports the week that ended yesterday; a run on a Sunday reports the week
// that ended seven days ago.
func LastWeek(now time.Time) model.DateRange {
	// Days since this week's Monday (Monday=0 .. Sunday=6).
	sinceMonday := (int(now.Weekday()) + 6) % 7

	y, m, d := now.Date()
	thisMonday := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -sinceMonday)

	start := thisMonday.AddDate(0, 0, -7)
	end := thisMonday.Add(-time.Second) // previous Sunday 23:59:59
	return model.DateRange{Start: start, End: end}
}
