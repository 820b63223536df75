package api

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/honeycarbs/remote-jobs/internal/domain"
)

func TestParseSalary(t *testing.T) {
	cases := map[string]int{
		"":        0,
		"80000":   80000,
		"80k":     80000,
		"80K":     80000,
		"$80,000": 80000,
		"92.5k":   92500,
		"lots":    0,
		"-5":      0,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseSalary(in), in)
	}
}

func TestParseSearchParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET",
		"/api/jobs?search=go&type=full_time,fulltime,Contract,bogus&experience=junior,senior&sort=salary&page=2&limit=500&timezone=Europe/Berlin", nil)

	p := parseSearchParams(c)
	assert.Equal(t, "go", p.Query)
	assert.Equal(t, []domain.JobType{domain.JobTypeFullTime, domain.JobTypeFullTime, domain.JobTypeContract}, p.Types)
	assert.Equal(t, []domain.ExperienceLevel{domain.ExperienceEntry, domain.ExperienceSenior}, p.ExperienceLevels)
	assert.Equal(t, domain.SortSalary, p.Sort)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, domain.MaxLimit, p.Limit)
	assert.Equal(t, "Europe/Berlin", p.Timezone)
}

func TestQueryTextPrefersQ(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/jobs?q=rust&search=go", nil)
	assert.Equal(t, "rust", queryText(c))
}
