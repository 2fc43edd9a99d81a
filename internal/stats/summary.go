package stats

import (
	"math"
	"sort"
	"time"
)

const topN = 5

// Summary holds derived dashboard figures. It is not persisted.
type Summary struct {
	TotalDocuments         int              `json:"totalDocuments"`
	ThisMonthCreated       int              `json:"thisMonthCreated"`
	ThisYearCreated        int              `json:"thisYearCreated"`
	TotalModifications     int              `json:"totalModifications"`
	ThisMonthModified      int              `json:"thisMonthModified"`
	AvgModificationsPerDoc float64          `json:"avgModificationsPerDoc"`
	RecentCreated          []DocumentRecord `json:"recentCreated"`
	MostModified           []DocumentRecord `json:"mostModified"`
}

// Summarize derives the dashboard figures for docs relative to now's month and year.
func Summarize(docs []DocumentRecord, now time.Time) Summary {
	s := Summary{
		TotalDocuments: len(docs),
		RecentCreated:  MostRecent(docs, topN),
		MostModified:   MostModified(docs, topN),
	}
	year, month, _ := now.Date()

	for _, d := range docs {
		if created, err := time.Parse(dateLayout, d.CreatedAt); err == nil {
			if created.Year() == year {
				s.ThisYearCreated++
				if created.Month() == month {
					s.ThisMonthCreated++
				}
			}
		}
		if modified, err := time.Parse(dateLayout, d.LastModified); err == nil {
			if modified.Year() == year && modified.Month() == month {
				s.ThisMonthModified++
			}
		}
		s.TotalModifications += d.ModificationCount
	}

	if s.TotalDocuments > 0 {
		s.AvgModificationsPerDoc = Round1(float64(s.TotalModifications) / float64(s.TotalDocuments))
	}
	return s
}

const dateLayout = "2006-01-02"

// MostRecent returns up to n records ordered by createdAt, newest first.
// docs is not modified; ties keep their original order.
func MostRecent(docs []DocumentRecord, n int) []DocumentRecord {
	return topBy(docs, n, func(a, b DocumentRecord) bool { return a.CreatedAt > b.CreatedAt })
}

// MostModified returns up to n records ordered by modificationCount, highest first.
// docs is not modified; ties keep their original order.
func MostModified(docs []DocumentRecord, n int) []DocumentRecord {
	return topBy(docs, n, func(a, b DocumentRecord) bool { return a.ModificationCount > b.ModificationCount })
}

func topBy(docs []DocumentRecord, n int, less func(a, b DocumentRecord) bool) []DocumentRecord {
	sorted := make([]DocumentRecord, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Round1 rounds x to one decimal place, halves toward positive infinity.
func Round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
