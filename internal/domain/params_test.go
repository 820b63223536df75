package domain_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/remote-jobs/internal/domain"
)

func TestSearchParamsNormalize(t *testing.T) {
	p := domain.SearchParams{Page: -3, Limit: 500, Category: " Design "}.Normalize()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, domain.MaxLimit, p.Limit)
	assert.Equal(t, "design", p.Category)
	assert.Equal(t, domain.SortNewest, p.Sort)

	p = domain.SearchParams{}.Normalize()
	assert.Equal(t, domain.DefaultLimit, p.Limit)

	p = domain.SearchParams{Page: 100000000000000000, Limit: 100}.Normalize()
	assert.Equal(t, domain.MaxPage, p.Page)
	assert.Positive(t, p.Offset())
}

func TestPaginateHugePage(t *testing.T) {
	jobs := make([]domain.Job, 25)

	for _, params := range []domain.SearchParams{
		{Page: 100000000000000000, Limit: 100},
		domain.SearchParams{Page: 100000000000000000, Limit: 100}.Normalize(),
	} {
		var page domain.JobPage
		require.NotPanics(t, func() {
			page = domain.Paginate(jobs, len(jobs), params)
		})
		assert.Empty(t, page.Jobs)
		assert.Equal(t, 25, page.TotalCount)
	}
}

func TestPaginate(t *testing.T) {
	jobs := make([]domain.Job, 25)
	for i := range jobs {
		jobs[i].ID = strconv.Itoa(i)
	}

	page := domain.Paginate(jobs, len(jobs), domain.SearchParams{Page: 2, Limit: 10})
	require.Len(t, page.Jobs, 10)
	assert.Equal(t, "10", page.Jobs[0].ID)
	assert.Equal(t, "19", page.Jobs[9].ID)
	assert.Equal(t, 3, page.PageCount)
	assert.Equal(t, 2, page.CurrentPage)

	last := domain.Paginate(jobs, len(jobs), domain.SearchParams{Page: 3, Limit: 10})
	assert.Len(t, last.Jobs, 5)

	beyond := domain.Paginate(jobs, len(jobs), domain.SearchParams{Page: 9, Limit: 10})
	assert.Empty(t, beyond.Jobs)
	assert.Equal(t, 25, beyond.TotalCount)
}

func TestParseJobType(t *testing.T) {
	cases := map[string]domain.JobType{
		"full-time":  domain.JobTypeFullTime,
		"FULLTIME":   domain.JobTypeFullTime,
		"part_time":  domain.JobTypePartTime,
		"CONTRACTOR": domain.JobTypeContract,
		"freelance":  domain.JobTypeFreelance,
		"INTERN":     domain.JobTypeInternship,
	}
	for in, want := range cases {
		got, ok := domain.ParseJobType(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := domain.ParseJobType("volunteer")
	assert.False(t, ok)
}

func TestParseExperienceLevel(t *testing.T) {
	got, ok := domain.ParseExperienceLevel("Junior")
	require.True(t, ok)
	assert.Equal(t, domain.ExperienceEntry, got)

	_, ok = domain.ParseExperienceLevel("guru")
	assert.False(t, ok)
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, domain.PageCount(0, 10))
	assert.Equal(t, 1, domain.PageCount(5, 10))
	assert.Equal(t, 3, domain.PageCount(21, 10))
}

func TestSortJobs(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	low, high := 40000, 120000
	jobs := []domain.Job{
		{ID: "old", PostedAt: base.Add(-2 * time.Hour), SalaryMin: &low},
		{ID: "new", PostedAt: base},
		{ID: "mid", PostedAt: base.Add(-time.Hour), SalaryMax: &high},
		{ID: "tie", PostedAt: base},
	}
	ids := func(jobs []domain.Job) []string {
		out := make([]string, 0, len(jobs))
		for _, j := range jobs {
			out = append(out, j.ID)
		}
		return out
	}

	domain.SortJobs(jobs, domain.SortNewest)
	assert.Equal(t, []string{"new", "tie", "mid", "old"}, ids(jobs))

	domain.SortJobs(jobs, domain.SortOldest)
	assert.Equal(t, []string{"old", "mid", "new", "tie"}, ids(jobs))

	domain.SortJobs(jobs, domain.SortSalary)
	assert.Equal(t, []string{"mid", "old", "new", "tie"}, ids(jobs))

	assert.Equal(t, -1, domain.SalaryKey(domain.Job{}))
}
