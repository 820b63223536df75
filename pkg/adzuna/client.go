package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.adzuna.com"
	defaultCountry = "us"
	defaultPerPage = 20
	maxPerPage     = 50
)

// NewClient instantiates an Adzuna API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.AppID == "" || cfg.AppKey == "" {
		return nil, fmt.Errorf("adzuna: app_id and app_key are required")
	}

	country := strings.ToLower(cfg.Country)
	if country == "" {
		country = defaultCountry
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		appID:      cfg.AppID,
		appKey:     cfg.AppKey,
		country:    country,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// SearchJobs queries one page of Adzuna postings
func (c *Client) SearchJobs(ctx context.Context, params SearchParams) (SearchResult, error) {
	if c == nil {
		return SearchResult{}, fmt.Errorf("adzuna: client is nil")
	}

	u, err := c.buildSearchURL(params)
	if err != nil {
		return SearchResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return SearchResult{}, fmt.Errorf("adzuna: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SearchResult{}, fmt.Errorf("adzuna: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return SearchResult{}, fmt.Errorf("adzuna: API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload jobSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return SearchResult{}, fmt.Errorf("adzuna: decode response: %w", err)
	}

	jobs := make([]Job, 0, len(payload.Results))
	for _, posting := range payload.Results {
		if posting.ID == "" {
			continue
		}
		jobs = append(jobs, mapPosting(posting))
	}

	return SearchResult{Count: payload.Count, Jobs: jobs}, nil
}

func (c *Client) buildSearchURL(params SearchParams) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("adzuna: parse base url: %w", err)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	perPage := params.PerPage
	switch {
	case perPage <= 0:
		perPage = defaultPerPage
	case perPage > maxPerPage:
		perPage = maxPerPage
	}

	u.Path = path.Join(u.Path, "v1", "api", "jobs", c.country, "search", strconv.Itoa(page))

	values := url.Values{}
	values.Set("app_id", c.appID)
	values.Set("app_key", c.appKey)
	values.Set("results_per_page", strconv.Itoa(perPage))
	values.Set("content-type", "application/json")

	if params.What != "" {
		values.Set("what", params.What)
	}
	if params.Where != "" {
		values.Set("where", params.Where)
	}
	if params.Category != "" {
		values.Set("category", params.Category)
	}
	if params.SalaryMin > 0 {
		values.Set("salary_min", strconv.Itoa(params.SalaryMin))
	}
	if params.SortBy != "" {
		values.Set("sort_by", params.SortBy)
	}
	for _, flag := range params.Contracts {
		switch flag {
		case FullTime, PartTime, Contract, Permanent:
			values.Set(flag, "1")
		}
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}

func mapPosting(posting jobPosting) Job {
	job := Job{
		ID:            posting.ID,
		Title:         posting.Title,
		CompanyName:   posting.Company.DisplayName,
		Location:      posting.Location.DisplayName,
		Area:          posting.Location.Area,
		URL:           posting.RedirectURL,
		Description:   posting.Description,
		ContractTime:  posting.ContractTime,
		ContractType:  posting.ContractType,
		CategoryLabel: posting.Category.Label,
		SalaryMin:     posting.SalaryMin,
		SalaryMax:     posting.SalaryMax,
	}

	if posting.Created != "" {
		if ts, err := time.Parse(time.RFC3339, posting.Created); err == nil {
			job.PostedAt = ts.UTC()
		}
	}

	return job
}
