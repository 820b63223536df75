package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/remote-jobs/internal/domain"
	"github.com/honeycarbs/remote-jobs/internal/domain/job"
	"github.com/honeycarbs/remote-jobs/pkg/logging"
)

// SearchJobsParams defines the arguments for the search_jobs tool
type SearchJobsParams struct {
	Query      string   `json:"query,omitempty" jsonschema:"Free-text query matched against title, description, company and skills"`
	Category   string   `json:"category,omitempty" jsonschema:"Category slug, e.g. software-development"`
	Location   string   `json:"location,omitempty" jsonschema:"Location or region slug, e.g. europe"`
	Types      []string `json:"types,omitempty" jsonschema:"Any of full-time, part-time, contract, freelance, internship"`
	Experience []string `json:"experience,omitempty" jsonschema:"Any of entry, mid, senior"`
	MinSalary  int      `json:"min_salary,omitempty" jsonschema:"Minimum annual salary in USD"`
	Timezone   string   `json:"timezone,omitempty" jsonschema:"IANA timezone of the candidate, e.g. Europe/Berlin"`
	Sort       string   `json:"sort,omitempty" jsonschema:"newest (default), oldest or salary"`
	Page       int      `json:"page,omitempty"`
	Limit      int      `json:"limit,omitempty" jsonschema:"Page size, at most 100"`
}

func (p SearchJobsParams) toDomain() domain.SearchParams {
	params := domain.SearchParams{
		Query:     p.Query,
		Category:  p.Category,
		Location:  p.Location,
		MinSalary: p.MinSalary,
		Timezone:  p.Timezone,
		Sort:      domain.ParseSortOrder(p.Sort),
		Page:      p.Page,
		Limit:     p.Limit,
	}
	for _, t := range p.Types {
		if jt, ok := domain.ParseJobType(t); ok {
			params.Types = append(params.Types, jt)
		}
	}
	for _, e := range p.Experience {
		if lvl, ok := domain.ParseExperienceLevel(e); ok {
			params.ExperienceLevels = append(params.ExperienceLevels, lvl)
		}
	}
	return params.Normalize()
}

// SearchJobsResult is the structured response of search_jobs
type SearchJobsResult struct {
	Jobs       []JobSummary `json:"jobs"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	Sources    []string     `json:"sources"`
	Fallback   bool         `json:"fallback" jsonschema:"True when served from the built-in dataset"`
}

// GetJobParams defines the arguments for the get_job tool
type GetJobParams struct {
	ID string `json:"id" jsonschema:"Job id as returned by search_jobs"`
}

type jobTools struct {
	service job.Service
	logger  *logging.Logger
}

// WithJobSearch registers search_jobs and get_job
func WithJobSearch(service job.Service) Option {
	return func(reg *registry) {
		t := jobTools{service: service, logger: reg.logger}
		addTool(reg, &sdkmcp.Tool{
			Name:        "search_jobs",
			Description: "Search remote jobs across every enabled job board; results are merged, sorted and paginated",
		}, t.search)
		addTool(reg, &sdkmcp.Tool{
			Name:        "get_job",
			Description: "Fetch one job, including its description, by the id returned from search_jobs",
		}, t.get)
	}
}

func (t jobTools) search(ctx context.Context, _ *sdkmcp.CallToolRequest, in SearchJobsParams) (*sdkmcp.CallToolResult, SearchJobsResult, error) {
	params := in.toDomain()
	res, err := t.service.Search(ctx, params)
	if err != nil {
		t.logger.Error("search_jobs failed", "err", err)
		return nil, SearchJobsResult{}, fmt.Errorf("search jobs: %w", err)
	}

	out := SearchJobsResult{
		Jobs:       make([]JobSummary, 0, len(res.Jobs)),
		Total:      res.TotalCount,
		Page:       params.Page,
		TotalPages: domain.PageCount(res.TotalCount, params.Limit),
		Sources:    res.Sources,
		Fallback:   res.Fallback,
	}
	if out.Sources == nil {
		out.Sources = []string{}
	}
	for _, j := range res.Jobs {
		out.Jobs = append(out.Jobs, summarize(j))
	}

	msg := fmt.Sprintf("found %d job(s), showing page %d of %d from %s",
		out.Total, out.Page, out.TotalPages, strings.Join(out.Sources, ", "))
	return textResult(msg), out, nil
}

func (t jobTools) get(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetJobParams) (*sdkmcp.CallToolResult, JobDetail, error) {
	j, err := t.service.GetJobDetails(ctx, in.ID)
	if err != nil {
		t.logger.Error("get_job failed", "id", in.ID, "err", err)
		return nil, JobDetail{}, fmt.Errorf("get job %q: %w", in.ID, err)
	}
	if j == nil {
		return nil, JobDetail{}, fmt.Errorf("job %q not found", in.ID)
	}

	return textResult(fmt.Sprintf("%s at %s", j.Title, j.Company.Name)), detail(*j), nil
}
