package jsearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/honeycarbs/remote-jobs/internal/domain"
	jobdomain "github.com/honeycarbs/remote-jobs/internal/domain/job"
	"github.com/honeycarbs/remote-jobs/internal/domain/job/normalize"
	"github.com/honeycarbs/remote-jobs/pkg/jsearch"
)

const (
	Name = "jsearch"

	defaultQuery = "remote jobs"
)

// pay periods per year
var annualFactor = map[string]float64{
	"HOUR":  2080,
	"DAY":   260,
	"WEEK":  52,
	"MONTH": 12,
	"YEAR":  1,
}

type searchClient interface {
	Search(ctx context.Context, params jsearch.SearchParams) ([]jsearch.Job, error)
	JobDetails(ctx context.Context, jobID string) (*jsearch.Job, error)
}

// Provider implements job.DetailProvider using the JSearch API
type Provider struct {
	client searchClient
}

// NewProvider builds a JSearch provider
func NewProvider(client searchClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("jsearch provider: client is required")
	}
	return &Provider{client: client}, nil
}

func (p *Provider) Name() string {
	return Name
}

// IsAvailable reports whether the provider was built with an API key
func (p *Provider) IsAvailable(context.Context) bool {
	return p != nil && p.client != nil
}

// FetchJobs searches remote-only postings. JSearch reports no total, so
// TotalCount is the number of jobs returned.
func (p *Provider) FetchJobs(ctx context.Context, params domain.SearchParams) (domain.JobPage, error) {
	params = params.Normalize()

	found, err := p.client.Search(ctx, toSearchParams(params))
	if err != nil {
		return domain.JobPage{}, err
	}

	jobs := make([]domain.Job, 0, len(found))
	for _, item := range found {
		j := toJob(item)
		if params.Category != "" && j.Category.Slug != params.Category {
			continue
		}
		if params.MinSalary > 0 && !normalize.Matches(j, domain.SearchParams{MinSalary: params.MinSalary}) {
			continue
		}
		jobs = append(jobs, j)
	}
	if len(jobs) > params.Limit {
		jobs = jobs[:params.Limit]
	}

	return domain.JobPage{
		Jobs:        jobs,
		TotalCount:  len(jobs),
		PageCount:   domain.PageCount(len(jobs), params.Limit),
		CurrentPage: params.Page,
	}, nil
}

func (p *Provider) GetJobDetails(ctx context.Context, externalID string) (*domain.Job, error) {
	item, err := p.client.JobDetails(ctx, externalID)
	if err != nil || item == nil {
		return nil, err
	}
	j := toJob(*item)
	return &j, nil
}

func toSearchParams(params domain.SearchParams) jsearch.SearchParams {
	terms := []string{params.Query}
	if c, ok := normalize.CategoryBySlug(params.Category); ok && c.Slug != "other" {
		terms = append(terms, c.Name)
	}
	query := strings.Join(strings.Fields(strings.Join(terms, " ")), " ")
	if query == "" {
		query = defaultQuery
	}
	if loc, ok := normalize.LocationBySlug(params.Location); ok && loc.Slug != normalize.Worldwide().Slug {
		query += " in " + loc.Name
	}

	return jsearch.SearchParams{
		Query:           query,
		Page:            params.Offset()/jsearch.PageSize + 1,
		NumPages:        domain.PageCount(params.Limit, jsearch.PageSize),
		RemoteOnly:      true,
		EmploymentTypes: employmentTypes(params.Types),
		Requirements:    requirements(params.ExperienceLevels),
	}
}

func employmentTypes(types []domain.JobType) []string {
	var out []string
	seen := map[string]bool{}
	for _, t := range types {
		var v string
		switch t {
		case domain.JobTypeFullTime:
			v = jsearch.FullTime
		case domain.JobTypePartTime:
			v = jsearch.PartTime
		case domain.JobTypeContract, domain.JobTypeFreelance:
			v = jsearch.Contractor
		case domain.JobTypeInternship:
			v = jsearch.Intern
		}
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func requirements(levels []domain.ExperienceLevel) []string {
	var out []string
	seen := map[string]bool{}
	add := func(v string) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, l := range levels {
		switch l {
		case domain.ExperienceEntry:
			add(jsearch.NoExperience)
			add(jsearch.UnderThreeYear)
		case domain.ExperienceMid:
			add(jsearch.UnderThreeYear)
		case domain.ExperienceSenior:
			add(jsearch.OverThreeYear)
		}
	}
	return out
}

func toJob(item jsearch.Job) domain.Job {
	location := normalize.NormalizeLocation(strings.Join(nonEmpty(item.City, item.State, item.Country), ", "))
	if item.IsRemote && item.Country == "" {
		location = normalize.Worldwide()
	}

	level := normalize.InferExperience(item.Title, item.Description)
	if level == domain.ExperienceMid && item.ExperienceInMonths > 0 {
		switch {
		case item.ExperienceInMonths < 12:
			level = domain.ExperienceEntry
		case item.ExperienceInMonths >= 60:
			level = domain.ExperienceSenior
		}
	}

	minSalary, maxSalary := annualize(item)

	return domain.Job{
		ID:          domain.CompositeID(Name, item.ID),
		Title:       item.Title,
		Description: item.Description,
		Company: domain.CompanyRef{
			Name:    item.EmployerName,
			Logo:    item.EmployerLogo,
			Website: item.EmployerWebsite,
		},
		Category:        normalize.InferCategory(item.Title, item.Description),
		Location:        location,
		Skills:          normalize.ExtractSkills(item.Title, item.Description),
		Type:            normalize.InferJobType(item.EmploymentType, item.Title),
		SalaryMin:       minSalary,
		SalaryMax:       maxSalary,
		ExperienceLevel: level,
		PostedAt:        item.PostedAt,
		Source:          Name,
		ExternalID:      item.ID,
		ApplyURL:        item.ApplyLink,
	}
}

// annualize converts pay to yearly USD; other currencies and unknown periods are dropped
func annualize(item jsearch.Job) (*int, *int) {
	if item.SalaryCurrency != "" && !strings.EqualFold(item.SalaryCurrency, "USD") {
		return nil, nil
	}
	period := strings.ToUpper(item.SalaryPeriod)
	if period == "" {
		period = "YEAR"
	}
	factor, ok := annualFactor[period]
	if !ok {
		return nil, nil
	}
	return normalize.Salary(item.MinSalary * factor), normalize.Salary(item.MaxSalary * factor)
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var _ jobdomain.DetailProvider = (*Provider)(nil)
