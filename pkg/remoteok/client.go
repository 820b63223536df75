package remoteok

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://remoteok.com/api"
	defaultUserAgent = "remote-jobs/1.0 (+https://github.com/honeycarbs/remote-jobs)"
)

// Config defines RemoteOK feed client settings
type Config struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// Client reads the public RemoteOK JSON feed
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Job is one posting from the feed
type Job struct {
	ID          string
	Slug        string
	Position    string
	Company     string
	CompanyLogo string
	Description string
	Location    string
	Tags        []string
	SalaryMin   float64
	SalaryMax   float64
	URL         string
	ApplyURL    string
	PostedAt    time.Time
}

type posting struct {
	Legal       string   `json:"legal"`
	ID          flexID   `json:"id"`
	Slug        string   `json:"slug"`
	Epoch       int64    `json:"epoch"`
	Date        string   `json:"date"`
	Company     string   `json:"company"`
	CompanyLogo string   `json:"company_logo"`
	Logo        string   `json:"logo"`
	Position    string   `json:"position"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	SalaryMin   float64  `json:"salary_min"`
	SalaryMax   float64  `json:"salary_max"`
	ApplyURL    string   `json:"apply_url"`
	URL         string   `json:"url"`
}

// flexID accepts ids encoded either as JSON strings or numbers
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// NewClient instantiates a RemoteOK client; no credentials are needed
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// Ping issues a HEAD request against the feed; any status below 500 counts as up
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("remoteok: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("remoteok: ping failed: %w", err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("remoteok: ping status %d", resp.StatusCode)
	}
	return nil
}

// Jobs fetches the whole feed. The leading legal notice element is skipped.
func (c *Client) Jobs(ctx context.Context) ([]Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("remoteok: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remoteok: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("remoteok: API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload []posting
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("remoteok: decode response: %w", err)
	}

	jobs := make([]Job, 0, len(payload))
	for _, p := range payload {
		if p.Legal != "" || p.ID == "" || strings.TrimSpace(p.Position) == "" {
			continue
		}
		jobs = append(jobs, mapPosting(p))
	}
	return jobs, nil
}

func mapPosting(p posting) Job {
	logo := p.CompanyLogo
	if logo == "" {
		logo = p.Logo
	}

	job := Job{
		ID:          string(p.ID),
		Slug:        p.Slug,
		Position:    p.Position,
		Company:     p.Company,
		CompanyLogo: logo,
		Description: p.Description,
		Location:    p.Location,
		Tags:        p.Tags,
		SalaryMin:   p.SalaryMin,
		SalaryMax:   p.SalaryMax,
		URL:         p.URL,
		ApplyURL:    p.ApplyURL,
	}

	if ts, err := time.Parse(time.RFC3339, p.Date); err == nil {
		job.PostedAt = ts.UTC()
	}
	if job.PostedAt.IsZero() && p.Epoch > 0 {
		job.PostedAt = time.Unix(p.Epoch, 0).UTC()
	}

	return job
}

