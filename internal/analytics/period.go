package analytics

import (
	"strings"
	"time"

	"fleetchat/internal/models"
)

// periodRule maps a set of query keywords to a window builder. Rules are
// checked in order; the first keyword hit wins.
type periodRule struct {
	keywords []string
	label    string
	resolve  func(now time.Time) (time.Time, time.Time)
}

var periodRules = []periodRule{
	{
		keywords: []string{"today"},
		label:    "Today",
		resolve: func(now time.Time) (time.Time, time.Time) {
			d := dateOnly(now)
			return d, d
		},
	},
	{
		keywords: []string{"yesterday"},
		label:    "Yesterday",
		resolve: func(now time.Time) (time.Time, time.Time) {
			d := dateOnly(now).AddDate(0, 0, -1)
			return d, d
		},
	},
	{
		keywords: []string{"this week"},
		label:    "This Week",
		resolve: func(now time.Time) (time.Time, time.Time) {
			end := dateOnly(now)
			start := end.AddDate(0, 0, -daysSinceMonday(end))
			return start, end
		},
	},
	{
		keywords: []string{"last week"},
		label:    "Last Week",
		resolve: func(now time.Time) (time.Time, time.Time) {
			thisMonday := dateOnly(now).AddDate(0, 0, -daysSinceMonday(dateOnly(now)))
			start := thisMonday.AddDate(0, 0, -7)
			return start, thisMonday.AddDate(0, 0, -1)
		},
	},
	{
		keywords: []string{"this month"},
		label:    "This Month",
		resolve: func(now time.Time) (time.Time, time.Time) {
			start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			return start, dateOnly(now)
		},
	},
	{
		keywords: []string{"last month"},
		label:    "Last Month",
		resolve: func(now time.Time) (time.Time, time.Time) {
			firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			start := firstOfThis.AddDate(0, -1, 0)
			return start, firstOfThis.AddDate(0, 0, -1)
		},
	},
	{
		keywords: []string{"this year", "year to date", "ytd"},
		label:    "This Year",
		resolve: func(now time.Time) (time.Time, time.Time) {
			start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
			return start, dateOnly(now)
		},
	},
	{
		keywords: []string{"last 3 months", "past 3 months", "3 months"},
		label:    "Last 3 Months",
		resolve: func(now time.Time) (time.Time, time.Time) {
			end := dateOnly(now)
			return end.AddDate(0, -3, 0).AddDate(0, 0, 1), end
		},
	},
	{
		keywords: []string{"last 6 months", "past 6 months", "6 months"},
		label:    "Last 6 Months",
		resolve: func(now time.Time) (time.Time, time.Time) {
			end := dateOnly(now)
			return end.AddDate(0, -6, 0).AddDate(0, 0, 1), end
		},
	},
}

// ResolvePeriod maps free-text intent to a concrete inclusive date window.
// Pure: the same (query, now) pair always yields the same Period. Unmatched
// queries fall back to the last 30 days ending today.
func ResolvePeriod(query string, now time.Time) models.Period {
	q := strings.ToLower(query)
	for _, rule := range periodRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				start, end := rule.resolve(now)
				return newPeriod(start, end, rule.label)
			}
		}
	}

	end := dateOnly(now)
	return newPeriod(end.AddDate(0, 0, -29), end, "Last 30 Days")
}

// PreviousPeriod returns the equal-length window immediately preceding p,
// ending the day before p starts. Used for trend comparison.
func PreviousPeriod(p models.Period) models.Period {
	end := p.Start.AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(p.Days - 1))
	return newPeriod(start, end, "Previous "+p.Label)
}

func newPeriod(start, end time.Time, label string) models.Period {
	// Count days from calendar dates, not wall-clock duration: a window
	// spanning a DST transition has 23- or 25-hour days.
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	days := int(e.Sub(s)/(24*time.Hour)) + 1
	if days < 1 {
		days = 1
	}
	return models.Period{Start: start, End: end, Label: label, Days: days}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysSinceMonday(d time.Time) int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 6
	}
	return wd - 1
}
