package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// OrganizationSuggester proxies a company-name autocomplete endpoint for the
// survey's organization field.
type OrganizationSuggester struct {
	log      *zap.Logger
	endpoint string
	client   *http.Client
}

func NewOrganizationSuggester(log *zap.Logger, endpoint string) *OrganizationSuggester {
	return &OrganizationSuggester{
		log:      log,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

type organization struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// Suggest returns company names matching query. Queries of one character
// or less are not looked up. Lookup failures are logged and yield an empty
// list.
func (s *OrganizationSuggester) Suggest(ctx context.Context, query string) []string {
	query = strings.TrimSpace(query)
	if len(query) <= 1 || s.endpoint == "" {
		return []string{}
	}
	names, err := s.fetch(ctx, query)
	if err != nil {
		s.log.Warn("Organization lookup failed", zap.String("query", query), zap.Error(err))
		return []string{}
	}
	return names
}

func (s *OrganizationSuggester) fetch(ctx context.Context, query string) ([]string, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("query", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("autocomplete returned status %d", resp.StatusCode)
	}

	var orgs []organization
	if err := json.NewDecoder(resp.Body).Decode(&orgs); err != nil {
		return nil, fmt.Errorf("decode autocomplete response: %w", err)
	}
	names := make([]string, 0, len(orgs))
	for _, o := range orgs {
		if o.Name != "" {
			names = append(names, o.Name)
		}
	}
	return names, nil
}
