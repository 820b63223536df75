package jsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHost  = "jsearch.p.rapidapi.com"
	maxPages     = 10
	apiKeyHeader = "X-RapidAPI-Key"
	hostHeader   = "X-RapidAPI-Host"
)

// PageSize is the fixed number of results per JSearch page
const PageSize = 10

// Employment types accepted by employment_types
const (
	FullTime   = "FULLTIME"
	PartTime   = "PARTTIME"
	Contractor = "CONTRACTOR"
	Intern     = "INTERN"
)

// Experience buckets accepted by job_requirements
const (
	NoExperience   = "no_experience"
	UnderThreeYear = "under_3_years_experience"
	OverThreeYear  = "more_than_3_years_experience"
	NoDegree       = "no_degree"
)

// Config defines JSearch (RapidAPI) client settings
type Config struct {
	APIKey     string
	Host       string
	BaseURL    string // defaults to https://{Host}
	HTTPClient *http.Client
}

// Client queries the JSearch API
type Client struct {
	apiKey     string
	host       string
	baseURL    string
	httpClient *http.Client
}

// SearchParams describe a JSearch query. Page and NumPages are in units of ten
// results, the API's fixed page size.
type SearchParams struct {
	Query           string
	Page            int
	NumPages        int
	RemoteOnly      bool
	EmploymentTypes []string
	Requirements    []string
	DatePosted      string // all, today, 3days, week, month
}

// Job is one JSearch posting
type Job struct {
	ID                 string
	Title              string
	Description        string
	EmployerName       string
	EmployerLogo       string
	EmployerWebsite    string
	EmploymentType     string
	ApplyLink          string
	IsRemote           bool
	City               string
	State              string
	Country            string
	PostedAt           time.Time
	MinSalary          float64
	MaxSalary          float64
	SalaryCurrency     string
	SalaryPeriod       string
	ExperienceInMonths int
}

type response struct {
	Status string    `json:"status"`
	Data   []posting `json:"data"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type posting struct {
	JobID              string   `json:"job_id"`
	JobTitle           string   `json:"job_title"`
	JobDescription     string   `json:"job_description"`
	EmployerName       string   `json:"employer_name"`
	EmployerLogo       string   `json:"employer_logo"`
	EmployerWebsite    string   `json:"employer_website"`
	EmploymentType     string   `json:"job_employment_type"`
	ApplyLink          string   `json:"job_apply_link"`
	IsRemote           bool     `json:"job_is_remote"`
	City               string   `json:"job_city"`
	State              string   `json:"job_state"`
	Country            string   `json:"job_country"`
	PostedAtUTC        string   `json:"job_posted_at_datetime_utc"`
	PostedAtTimestamp  int64    `json:"job_posted_at_timestamp"`
	MinSalary          *float64 `json:"job_min_salary"`
	MaxSalary          *float64 `json:"job_max_salary"`
	SalaryCurrency     string   `json:"job_salary_currency"`
	SalaryPeriod       string   `json:"job_salary_period"`
	RequiredExperience struct {
		InMonths *int `json:"required_experience_in_months"`
	} `json:"job_required_experience"`
}

// NewClient instantiates a JSearch client
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("jsearch: api key is required")
	}

	host := cfg.Host
	if host == "" {
		host = defaultHost
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://" + host
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		apiKey:     cfg.APIKey,
		host:       host,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// Search runs a job search
func (c *Client) Search(ctx context.Context, params SearchParams) ([]Job, error) {
	if strings.TrimSpace(params.Query) == "" {
		return nil, fmt.Errorf("jsearch: query is required")
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	numPages := params.NumPages
	switch {
	case numPages < 1:
		numPages = 1
	case numPages > maxPages:
		numPages = maxPages
	}

	values := url.Values{}
	values.Set("query", params.Query)
	values.Set("page", strconv.Itoa(page))
	values.Set("num_pages", strconv.Itoa(numPages))
	if params.RemoteOnly {
		values.Set("remote_jobs_only", "true")
	}
	if len(params.EmploymentTypes) > 0 {
		values.Set("employment_types", strings.Join(params.EmploymentTypes, ","))
	}
	if len(params.Requirements) > 0 {
		values.Set("job_requirements", strings.Join(params.Requirements, ","))
	}
	if params.DatePosted != "" {
		values.Set("date_posted", params.DatePosted)
	}

	return c.get(ctx, "/search", values)
}

// JobDetails looks up a single posting; (nil, nil) when JSearch does not know it
func (c *Client) JobDetails(ctx context.Context, jobID string) (*Job, error) {
	values := url.Values{}
	values.Set("job_id", jobID)

	jobs, err := c.get(ctx, "/job-details", values)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, nil
	}
	return &jobs[0], nil
}

func (c *Client) get(ctx context.Context, endpoint string, values url.Values) ([]Job, error) {
	u := c.baseURL + endpoint + "?" + values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("jsearch: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set(hostHeader, c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jsearch: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("jsearch: API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("jsearch: decode response: %w", err)
	}
	if payload.Error != nil && payload.Error.Message != "" {
		return nil, fmt.Errorf("jsearch: %s", payload.Error.Message)
	}

	jobs := make([]Job, 0, len(payload.Data))
	for _, p := range payload.Data {
		if p.JobID == "" {
			continue
		}
		jobs = append(jobs, mapPosting(p))
	}
	return jobs, nil
}

func mapPosting(p posting) Job {
	job := Job{
		ID:              p.JobID,
		Title:           p.JobTitle,
		Description:     p.JobDescription,
		EmployerName:    p.EmployerName,
		EmployerLogo:    p.EmployerLogo,
		EmployerWebsite: p.EmployerWebsite,
		EmploymentType:  p.EmploymentType,
		ApplyLink:       p.ApplyLink,
		IsRemote:        p.IsRemote,
		City:            p.City,
		State:           p.State,
		Country:         p.Country,
		SalaryCurrency:  p.SalaryCurrency,
		SalaryPeriod:    p.SalaryPeriod,
	}

	if p.MinSalary != nil {
		job.MinSalary = *p.MinSalary
	}
	if p.MaxSalary != nil {
		job.MaxSalary = *p.MaxSalary
	}
	if p.RequiredExperience.InMonths != nil {
		job.ExperienceInMonths = *p.RequiredExperience.InMonths
	}

	if ts, err := time.Parse(time.RFC3339, p.PostedAtUTC); err == nil {
		job.PostedAt = ts.UTC()
	} else if p.PostedAtTimestamp > 0 {
		job.PostedAt = time.Unix(p.PostedAtTimestamp, 0).UTC()
	}

	return job
}
