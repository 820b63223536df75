package adzuna

import (
	"net/http"
	"time"
)

// Config defines Adzuna API client settings
type Config struct {
	AppID      string
	AppKey     string
	Country    string
	BaseURL    string
	HTTPClient *http.Client
}

// Client queries Adzuna job search API
type Client struct {
	appID      string
	appKey     string
	country    string
	baseURL    string
	httpClient *http.Client
}

// Contract flags accepted by the search endpoint
const (
	FullTime  = "full_time"
	PartTime  = "part_time"
	Contract  = "contract"
	Permanent = "permanent"
)

// SearchParams describe a job search request
type SearchParams struct {
	What      string
	Where     string
	Category  string // Adzuna category tag, e.g. "it-jobs"
	Contracts []string
	SalaryMin int
	SortBy    string // "date" or "salary"
	Page      int
	PerPage   int
}

// SearchResult is one page of postings with the server-side total
type SearchResult struct {
	Count int
	Jobs  []Job
}

type jobSearchResponse struct {
	Count   int          `json:"count"`
	Results []jobPosting `json:"results"`
	Mean    float64      `json:"mean"`
}

type jobPosting struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Company      companySummary  `json:"company"`
	Location     locationSummary `json:"location"`
	Description  string          `json:"description"`
	Created      string          `json:"created"`
	RedirectURL  string          `json:"redirect_url"`
	ContractTime string          `json:"contract_time"`
	ContractType string          `json:"contract_type"`
	Category     struct {
		Label string `json:"label"`
		Tag   string `json:"tag"`
	} `json:"category"`
	SalaryMin float64 `json:"salary_min"`
	SalaryMax float64 `json:"salary_max"`
}

type companySummary struct {
	DisplayName string `json:"display_name"`
}

type locationSummary struct {
	DisplayName string   `json:"display_name"`
	Area        []string `json:"area"`
}

// Job represents an Adzuna job posting with the fields the API returns.
type Job struct {
	ID            string
	Title         string
	CompanyName   string
	Location      string
	Area          []string
	URL           string
	Description   string
	ContractTime  string
	ContractType  string
	CategoryLabel string
	PostedAt      time.Time
	SalaryMin     float64
	SalaryMax     float64
}
