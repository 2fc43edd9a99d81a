package stats

import "time"

// TimestampLayout formats generatedAt and fetchedAt: UTC, millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp formats t for the artifact.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// DocumentRecord is the git-derived statistics of one content file.
type DocumentRecord struct {
	Path              string `json:"path"`
	Title             string `json:"title"`
	CreatedAt         string `json:"createdAt"`
	LastModified      string `json:"lastModified"`
	ModificationCount int    `json:"modificationCount"`
	Author            string `json:"author"`
	FirstCommit       string `json:"firstCommit,omitempty"`
	LastCommit        string `json:"lastCommit,omitempty"`
}

// DailyMetrics is one row of the per-day breakdown.
type DailyMetrics struct {
	Date        string  `json:"date"`
	Clicks      int     `json:"clicks"`
	Impressions int     `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
}

// PageMetrics are the search metrics of one page.
type PageMetrics struct {
	Clicks      int     `json:"clicks"`
	Impressions int     `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
}

// Period is an inclusive YYYY-MM-DD date range.
type Period struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// AnalyticsSummary holds search metrics over the trailing window.
type AnalyticsSummary struct {
	TotalClicks      int                    `json:"totalClicks"`
	TotalImpressions int                    `json:"totalImpressions"`
	CTR              float64                `json:"ctr"`
	Position         float64                `json:"position"`
	ClicksChange     float64                `json:"clicksChange"`
	DailyData        []DailyMetrics         `json:"dailyData"`
	PageData         map[string]PageMetrics `json:"pageData"`
	Period           Period                 `json:"period"`
	FetchedAt        string                 `json:"fetchedAt"`
}

// StatsDocument is the persisted artifact. It is rebuilt from scratch on every run.
type StatsDocument struct {
	GeneratedAt        string            `json:"generatedAt"`
	Documents          []DocumentRecord  `json:"documents"`
	TotalDocuments     int               `json:"totalDocuments"`
	TotalModifications int               `json:"totalModifications"`
	SearchConsole      *AnalyticsSummary `json:"searchConsole"`
}

// NewDocument assembles the artifact and computes its totals. analytics may be nil.
func NewDocument(now time.Time, docs []DocumentRecord, analytics *AnalyticsSummary) StatsDocument {
	if docs == nil {
		docs = []DocumentRecord{}
	}
	total := 0
	for _, d := range docs {
		total += d.ModificationCount
	}
	if analytics != nil {
		a := *analytics
		if a.DailyData == nil {
			a.DailyData = []DailyMetrics{}
		}
		if a.PageData == nil {
			a.PageData = map[string]PageMetrics{}
		}
		analytics = &a
	}
	return StatsDocument{
		GeneratedAt:        Timestamp(now),
		Documents:          docs,
		TotalDocuments:     len(docs),
		TotalModifications: total,
		SearchConsole:      analytics,
	}
}

// MinimalDocument is the fallback artifact: no documents, zero counts, no analytics.
func MinimalDocument(now time.Time) StatsDocument {
	return NewDocument(now, nil, nil)
}
