package local

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/remote-jobs/internal/domain"
)

func loadStore(t *testing.T) *Store {
	t.Helper()
	s, err := LoadEmbedded()
	require.NoError(t, err)
	return s
}

func ids(jobs []domain.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestLoadEmbedded(t *testing.T) {
	s := loadStore(t)
	all := s.All()
	require.Len(t, all, 24)

	for _, j := range all {
		assert.Equal(t, Name, j.Source)
		assert.NotEmpty(t, j.Title)
		assert.NotEmpty(t, j.Company.Name)
		assert.NotEmpty(t, j.Category.Slug, j.ID)
		assert.NotEmpty(t, j.Location.Slug, j.ID)
		assert.NotNil(t, j.Skills)
		assert.False(t, j.PostedAt.IsZero())
	}

	first := all[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "software-development", first.Category.Slug)
	assert.Equal(t, "worldwide", first.Location.Slug)
	assert.Equal(t, domain.ExperienceSenior, first.ExperienceLevel)
	assert.True(t, first.Featured)
	assert.True(t, first.HasSkill("Go"))
	require.NotNil(t, first.SalaryMax)
	assert.Equal(t, 180000, *first.SalaryMax)
}

func TestFetchJobsDefaultOrder(t *testing.T) {
	s := loadStore(t)

	page, err := s.FetchJobs(context.Background(), domain.SearchParams{Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 24, page.TotalCount)
	assert.Equal(t, 5, page.PageCount)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(page.Jobs))

	page, err = s.FetchJobs(context.Background(), domain.SearchParams{Limit: 5, Page: 5})
	require.NoError(t, err)
	assert.Len(t, page.Jobs, 4)

	page, err = s.FetchJobs(context.Background(), domain.SearchParams{Limit: 5, Page: 9})
	require.NoError(t, err)
	assert.Empty(t, page.Jobs)
	assert.NotNil(t, page.Jobs)
}

func TestFetchJobsFilters(t *testing.T) {
	s := loadStore(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		params domain.SearchParams
		want   int
	}{
		{"category", domain.SearchParams{Category: "software-development"}, 7},
		{"design", domain.SearchParams{Category: "design"}, 2},
		{"region", domain.SearchParams{Location: "europe"}, 7},
		{"worldwide", domain.SearchParams{Location: "worldwide"}, 6},
		{"senior", domain.SearchParams{ExperienceLevels: []domain.ExperienceLevel{domain.ExperienceSenior}}, 6},
		{"entry or senior", domain.SearchParams{ExperienceLevels: []domain.ExperienceLevel{domain.ExperienceEntry, domain.ExperienceSenior}}, 10},
		{"contract or freelance", domain.SearchParams{Types: []domain.JobType{domain.JobTypeContract, domain.JobTypeFreelance}}, 5},
		{"salary", domain.SearchParams{MinSalary: 150000}, 5},
		{"query", domain.SearchParams{Query: "kubernetes"}, 3},
		{"combined", domain.SearchParams{Category: "software-development", Location: "europe", ExperienceLevels: []domain.ExperienceLevel{domain.ExperienceSenior}}, 1},
		{"nothing", domain.SearchParams{Query: "underwater basket weaving"}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			page, err := s.FetchJobs(ctx, c.params)
			require.NoError(t, err)
			assert.Equal(t, c.want, page.TotalCount)
		})
	}
}

func TestFetchJobsSortOrders(t *testing.T) {
	s := loadStore(t)
	ctx := context.Background()

	page, err := s.FetchJobs(ctx, domain.SearchParams{Sort: domain.SortOldest, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"24", "23", "22"}, ids(page.Jobs))

	page, err = s.FetchJobs(ctx, domain.SearchParams{Sort: domain.SortSalary, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"14", "11", "1"}, ids(page.Jobs))
}

func TestFetchJobsHonoursCancellation(t *testing.T) {
	s := loadStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FetchJobs(ctx, domain.SearchParams{})
	require.Error(t, err)
}

func TestGetJobDetails(t *testing.T) {
	s := loadStore(t)

	j, err := s.GetJobDetails(context.Background(), "14")
	require.NoError(t, err)
	require.NotNil(t, j)
	assert.Equal(t, "Ferrous", j.Company.Name)

	j, err = s.GetJobDetails(context.Background(), "4242")
	require.NoError(t, err)
	assert.Nil(t, j)
}

func TestNewStoreRejectsBadIDs(t *testing.T) {
	_, err := NewStore([]domain.Job{{ID: "abc", Title: "x"}})
	require.Error(t, err)

	_, err = NewStore([]domain.Job{{ID: "1"}, {ID: "1"}})
	require.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(strings.NewReader("jobs: [this is: not valid"))
	require.Error(t, err)
}
