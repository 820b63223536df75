package adzuna

import (
	"context"
	"fmt"
	"strings"

	"github.com/honeycarbs/remote-jobs/internal/domain"
	jobdomain "github.com/honeycarbs/remote-jobs/internal/domain/job"
	"github.com/honeycarbs/remote-jobs/internal/domain/job/normalize"
	"github.com/honeycarbs/remote-jobs/pkg/adzuna"
)

const Name = "adzuna"

// searchClient describes the subset of the Adzuna client used by the provider.
type searchClient interface {
	SearchJobs(ctx context.Context, params adzuna.SearchParams) (adzuna.SearchResult, error)
}

// Adzuna category tags for the categories it has a direct equivalent of.
// Other categories are filtered after inference.
var categoryTags = map[string]string{
	"software-development": "it-jobs",
	"devops-sysadmin":      "it-jobs",
	"sales":                "sales-jobs",
	"marketing":            "pr-advertising-marketing-jobs",
	"customer-support":     "customer-services-jobs",
	"human-resources":      "hr-jobs",
	"finance":              "accounting-finance-jobs",
	"design":               "creative-design-jobs",
}

// Provider implements job.Provider using Adzuna API
type Provider struct {
	client searchClient
}

// NewProvider builds an Adzuna provider
func NewProvider(client searchClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("adzuna provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return Name
}

// IsAvailable reports whether the provider was built with credentials
func (p *Provider) IsAvailable(context.Context) bool {
	return p != nil && p.client != nil
}

// FetchJobs queries Adzuna and returns normalized jobs
func (p *Provider) FetchJobs(ctx context.Context, params domain.SearchParams) (domain.JobPage, error) {
	if p == nil || p.client == nil {
		return domain.JobPage{}, fmt.Errorf("adzuna provider: client is nil")
	}
	params = params.Normalize()

	res, err := p.client.SearchJobs(ctx, toSearchParams(params))
	if err != nil {
		return domain.JobPage{}, err
	}

	jobs := make([]domain.Job, 0, len(res.Jobs))
	for _, j := range res.Jobs {
		job := toJob(j)
		if params.Category != "" && job.Category.Slug != params.Category {
			continue
		}
		if !params.HasExperience(job.ExperienceLevel) {
			continue
		}
		jobs = append(jobs, job)
	}

	return domain.JobPage{
		Jobs:        jobs,
		TotalCount:  res.Count,
		PageCount:   domain.PageCount(res.Count, params.Limit),
		CurrentPage: params.Page,
	}, nil
}

func toSearchParams(params domain.SearchParams) adzuna.SearchParams {
	out := adzuna.SearchParams{
		What:      strings.TrimSpace(params.Query + " remote"),
		Category:  categoryTags[params.Category],
		SalaryMin: params.MinSalary,
		Page:      params.Page,
		PerPage:   params.Limit,
	}

	if loc, ok := normalize.LocationBySlug(params.Location); ok && loc.Slug != normalize.Worldwide().Slug {
		out.Where = loc.Name
	}

	switch params.Sort {
	case domain.SortSalary:
		out.SortBy = "salary"
	case domain.SortNewest:
		out.SortBy = "date"
	}

	seen := map[string]bool{}
	for _, t := range params.Types {
		var flag string
		switch t {
		case domain.JobTypeFullTime:
			flag = adzuna.FullTime
		case domain.JobTypePartTime:
			flag = adzuna.PartTime
		case domain.JobTypeContract, domain.JobTypeFreelance:
			flag = adzuna.Contract
		}
		if flag != "" && !seen[flag] {
			seen[flag] = true
			out.Contracts = append(out.Contracts, flag)
		}
	}

	return out
}

func toJob(j adzuna.Job) domain.Job {
	location := normalize.NormalizeLocation(j.Location)
	if location.Region == "" && len(j.Area) > 0 {
		if byCountry := normalize.NormalizeLocation(j.Area[0]); byCountry.Region != "" {
			location = byCountry
		}
	}

	return domain.Job{
		ID:              domain.CompositeID(Name, j.ID),
		Title:           j.Title,
		Description:     j.Description,
		Company:         domain.CompanyRef{Name: j.CompanyName},
		Category:        normalize.InferCategory(j.Title, j.Description, j.CategoryLabel),
		Location:        location,
		Skills:          normalize.ExtractSkills(j.Title, j.Description),
		Type:            normalize.InferJobType(j.ContractTime, j.ContractType, j.Title),
		SalaryMin:       normalize.Salary(j.SalaryMin),
		SalaryMax:       normalize.Salary(j.SalaryMax),
		ExperienceLevel: normalize.InferExperience(j.Title, j.Description),
		PostedAt:        j.PostedAt,
		Source:          Name,
		ExternalID:      j.ID,
		ApplyURL:        j.URL,
	}
}

var _ jobdomain.Provider = (*Provider)(nil)
