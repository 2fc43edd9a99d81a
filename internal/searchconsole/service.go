package searchconsole

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sc "google.golang.org/api/searchconsole/v1"

	"git.home.luguber.info/inful/docstats/internal/foundation/errors"
	"git.home.luguber.info/inful/docstats/internal/retry"
)

// Query is one searchAnalytics.query request.
type Query struct {
	StartDate       string
	EndDate         string
	Dimensions      []string
	RowLimit        int64
	AggregationType string
}

// Row is one row of a query response.
type Row struct {
	Keys        []string
	Clicks      float64
	Impressions float64
	CTR         float64
	Position    float64
}

// Site is a property the service account can see.
type Site struct {
	URL             string
	PermissionLevel string
}

// Querier is the subset of the Search Console API the fetcher needs.
type Querier interface {
	Query(ctx context.Context, siteURL string, q Query) ([]Row, error)
	ListSites(ctx context.Context) ([]Site, error)
}

// Service implements Querier on the searchconsole/v1 client.
type Service struct {
	svc    *sc.Service
	policy retry.Policy
}

// NewService creates the API client. Pass option.WithTokenSource for real use.
func NewService(ctx context.Context, policy retry.Policy, opts ...option.ClientOption) (*Service, error) {
	svc, err := sc.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryAnalytics, "failed to create Search Console client").Build()
	}
	return &Service{svc: svc, policy: policy}, nil
}

// Query runs a web search analytics query with retries on transient failures.
func (s *Service) Query(ctx context.Context, siteURL string, q Query) ([]Row, error) {
	req := &sc.SearchAnalyticsQueryRequest{
		StartDate:       q.StartDate,
		EndDate:         q.EndDate,
		Dimensions:      q.Dimensions,
		RowLimit:        q.RowLimit,
		AggregationType: q.AggregationType,
		Type:            "web",
	}

	var resp *sc.SearchAnalyticsQueryResponse
	err := retry.Do(ctx, s.policy, "searchanalytics.query", classifyTransient, func(ctx context.Context) error {
		var qerr error
		resp, qerr = s.svc.Searchanalytics.Query(siteURL, req).Context(ctx).Do()
		return qerr
	})
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		if r == nil {
			continue
		}
		rows = append(rows, Row{Keys: r.Keys, Clicks: r.Clicks, Impressions: r.Impressions, CTR: r.Ctr, Position: r.Position})
	}
	return rows, nil
}

// ListSites returns the properties visible to the service account.
func (s *Service) ListSites(ctx context.Context) ([]Site, error) {
	var resp *sc.SitesListResponse
	err := retry.Do(ctx, s.policy, "sites.list", classifyTransient, func(ctx context.Context) error {
		var lerr error
		resp, lerr = s.svc.Sites.List().Context(ctx).Do()
		return lerr
	})
	if err != nil {
		return nil, err
	}
	sites := make([]Site, 0, len(resp.SiteEntry))
	for _, e := range resp.SiteEntry {
		if e == nil {
			continue
		}
		sites = append(sites, Site{URL: e.SiteUrl, PermissionLevel: e.PermissionLevel})
	}
	return sites, nil
}

const rateLimitMultiplier = 3.0

// classifyTransient retries 429 (backing off harder), 5xx and network timeouts.
func classifyTransient(err error) (bool, float64) {
	var gerr *googleapi.Error
	if stderrors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusTooManyRequests:
			return true, rateLimitMultiplier
		case gerr.Code >= 500:
			return true, 1
		default:
			return false, 0
		}
	}
	var nerr net.Error
	if stderrors.As(err, &nerr) && nerr.Timeout() {
		return true, 1
	}
	return false, 0
}
