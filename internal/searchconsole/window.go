package searchconsole

import (
	"time"

	"git.home.luguber.info/inful/docstats/internal/stats"
)

const dateLayout = "2006-01-02"

// Windows returns the current and previous reporting periods for now's local date.
//
//	current:  [today-windowDays, today-1]
//	previous: [prevEnd-previousDays, prevEnd], prevEnd = current start - 1
//
// Search Console data lags by a day, hence the window ends yesterday.
func Windows(now time.Time, windowDays, previousDays int) (current, previous stats.Period) {
	end := now.AddDate(0, 0, -1)
	start := now.AddDate(0, 0, -windowDays)
	prevEnd := start.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -previousDays)

	current = stats.Period{StartDate: start.Format(dateLayout), EndDate: end.Format(dateLayout)}
	previous = stats.Period{StartDate: prevStart.Format(dateLayout), EndDate: prevEnd.Format(dateLayout)}
	return current, previous
}

// ClicksChange is the percentage change from prev to cur, rounded to one
// decimal. A zero previous period reports 100 when cur > 0 and 0 otherwise.
func ClicksChange(prev, cur int) float64 {
	var change float64
	switch {
	case prev > 0:
		change = float64(cur-prev) / float64(prev) * 100
	case cur > 0:
		change = 100
	}
	return stats.Round1(change)
}
