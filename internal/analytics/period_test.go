package analytics

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 8, 19, 15, 30, 0, 0, time.UTC) // a Wednesday

func TestResolvePeriodKeywords(t *testing.T) {
	cases := []struct {
		query string
		label string
		start string
		end   string
		days  int
	}{
		{"how did I do today?", "Today", "2026-08-19", "2026-08-19", 1},
		{"show me YESTERDAY", "Yesterday", "2026-08-18", "2026-08-18", 1},
		{"profit this week", "This Week", "2026-08-17", "2026-08-19", 3},
		{"expenses last week", "Last Week", "2026-08-10", "2026-08-16", 7},
		{"how is this month going", "This Month", "2026-08-01", "2026-08-19", 19},
		{"summary for last month", "Last Month", "2026-07-01", "2026-07-31", 31},
		{"earnings this year", "This Year", "2026-01-01", "2026-08-19", 231},
		{"year to date earnings", "This Year", "2026-01-01", "2026-08-19", 231},
		{"trend over the last 3 months", "Last 3 Months", "2026-05-20", "2026-08-19", 92},
		{"last 6 months fuel spend", "Last 6 Months", "2026-02-20", "2026-08-19", 181},
	}

	for _, tc := range cases {
		p := ResolvePeriod(tc.query, testNow)
		if p.Label != tc.label {
			t.Fatalf("ResolvePeriod(%q) label = %q, want %q", tc.query, p.Label, tc.label)
		}
		if got := p.Start.Format("2006-01-02"); got != tc.start {
			t.Fatalf("ResolvePeriod(%q) start = %s, want %s", tc.query, got, tc.start)
		}
		if got := p.End.Format("2006-01-02"); got != tc.end {
			t.Fatalf("ResolvePeriod(%q) end = %s, want %s", tc.query, got, tc.end)
		}
		if p.Days != tc.days {
			t.Fatalf("ResolvePeriod(%q) days = %d, want %d", tc.query, p.Days, tc.days)
		}
	}
}

func TestResolvePeriodFallback(t *testing.T) {
	for _, query := range []string{"", "how much fuel did I buy", "compare my vans", "what about the weather"} {
		p := ResolvePeriod(query, testNow)
		if p.Label != "Last 30 Days" {
			t.Fatalf("ResolvePeriod(%q) label = %q, want Last 30 Days", query, p.Label)
		}
		if p.Days != 30 {
			t.Fatalf("ResolvePeriod(%q) days = %d, want 30", query, p.Days)
		}
		if got := p.End.Format("2006-01-02"); got != "2026-08-19" {
			t.Fatalf("ResolvePeriod(%q) end = %s, want 2026-08-19", query, got)
		}
		if got := p.Start.Format("2006-01-02"); got != "2026-07-21" {
			t.Fatalf("ResolvePeriod(%q) start = %s, want 2026-07-21", query, got)
		}
	}
}

func TestResolvePeriodDayCountAcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz data unavailable: %v", err)
	}

	cases := []struct {
		name string
		now  time.Time
	}{
		// 30-day fallback window crossing the 23-hour day of 2026-03-08.
		{"spring forward", time.Date(2026, 3, 20, 12, 0, 0, 0, loc)},
		// And the 25-hour day of 2026-11-01.
		{"fall back", time.Date(2026, 11, 20, 12, 0, 0, 0, loc)},
	}
	for _, tc := range cases {
		p := ResolvePeriod("show my numbers", tc.now)
		if p.Days != 30 {
			t.Fatalf("%s: days = %d, want 30", tc.name, p.Days)
		}
	}
}

func TestResolvePeriodFirstMatchWins(t *testing.T) {
	// "today" outranks "this month" in the priority table.
	p := ResolvePeriod("today versus this month", testNow)
	if p.Label != "Today" {
		t.Fatalf("label = %q, want Today", p.Label)
	}
}

func TestResolvePeriodDeterministic(t *testing.T) {
	a := ResolvePeriod("last month", testNow)
	b := ResolvePeriod("last month", testNow)
	if a != b {
		t.Fatalf("same inputs resolved differently: %+v vs %+v", a, b)
	}
}

func TestPreviousPeriod(t *testing.T) {
	p := ResolvePeriod("last week", testNow)
	prev := PreviousPeriod(p)

	if prev.Days != p.Days {
		t.Fatalf("previous days = %d, want %d", prev.Days, p.Days)
	}
	if got := prev.End.Format("2006-01-02"); got != "2026-08-09" {
		t.Fatalf("previous end = %s, want 2026-08-09", got)
	}
	if got := prev.Start.Format("2006-01-02"); got != "2026-08-03" {
		t.Fatalf("previous start = %s, want 2026-08-03", got)
	}
}
