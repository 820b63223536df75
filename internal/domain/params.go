package domain

import (
	"sort"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100

	// MaxPage keeps page*limit far from int overflow on every platform
	MaxPage = 1_000_000
)

// SortOrder selects the ordering of search results
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortSalary SortOrder = "salary"
)

// ParseSortOrder maps a query value to a SortOrder, defaulting to newest
func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "oldest", "date_asc":
		return SortOldest
	case "salary", "salary_desc":
		return SortSalary
	default:
		return SortNewest
	}
}

// SearchParams describe a job search. A zero field means no filter on that dimension.
type SearchParams struct {
	Query            string
	Category         string // category slug
	Location         string // location slug
	Types            []JobType
	ExperienceLevels []ExperienceLevel
	MinSalary        int
	Timezone         string
	Sort             SortOrder
	Page             int
	Limit            int
}

// Normalize returns a copy with page, limit and sort defaulted and clamped
func (p SearchParams) Normalize() SearchParams {
	p.Query = strings.TrimSpace(p.Query)
	p.Category = strings.ToLower(strings.TrimSpace(p.Category))
	p.Location = strings.ToLower(strings.TrimSpace(p.Location))
	p.Timezone = strings.TrimSpace(p.Timezone)

	switch {
	case p.Page < 1:
		p.Page = 1
	case p.Page > MaxPage:
		p.Page = MaxPage
	}
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	if p.Sort == "" {
		p.Sort = SortNewest
	}
	if p.MinSalary < 0 {
		p.MinSalary = 0
	}
	return p
}

// Offset is the index of the first item of the requested page
func (p SearchParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// HasType reports whether t passes the type filter
func (p SearchParams) HasType(t JobType) bool {
	if len(p.Types) == 0 {
		return true
	}
	for _, want := range p.Types {
		if want == t {
			return true
		}
	}
	return false
}

// HasExperience reports whether level passes the experience filter
func (p SearchParams) HasExperience(level ExperienceLevel) bool {
	if len(p.ExperienceLevels) == 0 {
		return true
	}
	for _, want := range p.ExperienceLevels {
		if want == level {
			return true
		}
	}
	return false
}

// PageCount returns ceil(total/limit)
func PageCount(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Paginate slices an already ordered list according to params. Out of range
// pages, including ones whose offset overflowed, come back empty.
func Paginate(jobs []Job, total int, params SearchParams) JobPage {
	start := params.Offset()
	if start < 0 || start > len(jobs) {
		start = len(jobs)
	}
	end := len(jobs)
	if params.Limit >= 0 && params.Limit < end-start {
		end = start + params.Limit
	}

	out := make([]Job, end-start)
	copy(out, jobs[start:end])

	return JobPage{
		Jobs:        out,
		TotalCount:  total,
		PageCount:   PageCount(total, params.Limit),
		CurrentPage: params.Page,
	}
}

// SalaryKey is the value salary ordering compares: max, else min, else -1 so
// jobs without a salary sink to the bottom
func SalaryKey(j Job) int {
	switch {
	case j.SalaryMax != nil:
		return *j.SalaryMax
	case j.SalaryMin != nil:
		return *j.SalaryMin
	default:
		return -1
	}
}

// Before reports whether a sorts ahead of b under order
func (o SortOrder) Before(a, b Job) bool {
	switch o {
	case SortOldest:
		return a.PostedAt.Before(b.PostedAt)
	case SortSalary:
		return SalaryKey(a) > SalaryKey(b)
	default:
		return a.PostedAt.After(b.PostedAt)
	}
}

// SortJobs orders jobs in place. The sort is stable so jobs that compare
// equal keep their input order.
func SortJobs(jobs []Job, order SortOrder) {
	sort.SliceStable(jobs, func(a, b int) bool {
		return order.Before(jobs[a], jobs[b])
	})
}
