package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/remote-jobs/internal/api"
	"github.com/honeycarbs/remote-jobs/internal/domain"
	"github.com/honeycarbs/remote-jobs/internal/domain/job"
	"github.com/honeycarbs/remote-jobs/internal/domain/job/providers/local"
	"github.com/honeycarbs/remote-jobs/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJobService(t *testing.T) job.Service {
	t.Helper()
	store, err := local.LoadEmbedded()
	require.NoError(t, err)

	svc, err := job.NewService(job.WithFallback(store))
	require.NoError(t, err)
	return svc
}

func newRouter(svc job.Service) *gin.Engine {
	return api.NewRouter(api.RouterConfig{Handler: api.NewHandler(svc, nil)})
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func jobIDs(jobs []domain.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestListJobs(t *testing.T) {
	router := newRouter(newJobService(t))

	rec := get(t, router, "/api/jobs?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[api.JobsResponse](t, rec)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, jobIDs(body.Jobs))
	assert.Equal(t, api.Pagination{Total: 24, Page: 1, Limit: 5, TotalPages: 5}, body.Pagination)
	assert.True(t, body.Fallback)
	assert.Equal(t, []string{local.Name}, body.Sources)
}

func TestListJobsDefaultsInvalidNumbers(t *testing.T) {
	router := newRouter(newJobService(t))

	rec := get(t, router, "/api/jobs?page=abc&limit=-3")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[api.JobsResponse](t, rec)
	assert.Equal(t, 1, body.Pagination.Page)
	assert.Equal(t, domain.DefaultLimit, body.Pagination.Limit)
	assert.Len(t, body.Jobs, domain.DefaultLimit)
}

func TestListJobsHugePage(t *testing.T) {
	router := newRouter(newJobService(t))

	for _, target := range []string{
		"/api/jobs?page=100000000000000000&limit=100",
		"/api/search?q=go&page=100000000000000000",
	} {
		rec := get(t, router, target)
		require.Equal(t, http.StatusOK, rec.Code, target)

		body := decode[api.JobsResponse](t, rec)
		assert.Empty(t, body.Jobs, target)
		assert.Equal(t, domain.MaxPage, body.Pagination.Page, target)
	}
}

func TestListJobsFilters(t *testing.T) {
	router := newRouter(newJobService(t))

	cases := []struct {
		query string
		total int
	}{
		{"search=kubernetes", 3},
		{"q=kubernetes", 3},
		{"salary=150k", 5},
		{"salary=150000", 5},
		{"type=contract,freelance", 5},
		{"experience=entry,senior", 10},
		{"category=design", 2},
		{"location=europe", 7},
	}
	for _, c := range cases {
		t.Run(c.query, func(t *testing.T) {
			rec := get(t, router, "/api/jobs?"+c.query)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, c.total, decode[api.JobsResponse](t, rec).Pagination.Total)
		})
	}
}

func TestListJobsCount(t *testing.T) {
	router := newRouter(newJobService(t))

	rec := get(t, router, "/api/jobs?count=true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":24}`, rec.Body.String())
}

func TestSearchRequiresQuery(t *testing.T) {
	router := newRouter(newJobService(t))

	rec := get(t, router, "/api/search?q=%20")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[api.ErrorResponse](t, rec).Code)

	rec = get(t, router, "/api/search?q=kubernetes")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[api.JobsResponse](t, rec).Pagination.Total)
}

func TestGetJob(t *testing.T) {
	router := newRouter(newJobService(t))

	rec := get(t, router, "/api/jobs/14")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ferrous", decode[domain.Job](t, rec).Company.Name)

	for _, id := range []string{"4242", "adzuna:123", "nope"} {
		rec = get(t, router, "/api/jobs/"+id)
		require.Equal(t, http.StatusNotFound, rec.Code, id)
		assert.JSONEq(t, `{"error":"job not found","code":"NOT_FOUND"}`, rec.Body.String())
	}
}

func TestJobsByCategory(t *testing.T) {
	router := newRouter(newJobService(t))

	rec := get(t, router, "/api/categories/design")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[api.CategoryResponse](t, rec)
	assert.Equal(t, "Design", body.Category.Name)
	assert.Equal(t, 2, body.Count)
	assert.Len(t, body.Jobs, 2)

	rec = get(t, router, "/api/categories/underwater-basketry")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJobsByLocation(t *testing.T) {
	router := newRouter(newJobService(t))

	rec := get(t, router, "/api/locations/europe")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[api.LocationResponse](t, rec)
	assert.Equal(t, "europe", body.Location.Slug)
	assert.Equal(t, 7, body.Count)

	rec = get(t, router, "/api/locations/atlantis")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type failingService struct {
	job.Service
	panics bool
}

func (s failingService) Search(context.Context, domain.SearchParams) (domain.SearchResult, error) {
	if s.panics {
		panic("boom")
	}
	return domain.SearchResult{}, job.ErrAllProvidersFailed
}

func (s failingService) GetJobDetails(context.Context, string) (*domain.Job, error) {
	return nil, errors.New("store offline")
}

func TestServiceErrorsAreInternal(t *testing.T) {
	router := newRouter(failingService{})

	for _, target := range []string{"/api/jobs", "/api/jobs/1", "/api/search?q=go"} {
		rec := get(t, router, target)
		require.Equal(t, http.StatusInternalServerError, rec.Code, target)
		assert.Equal(t, "INTERNAL_ERROR", decode[api.ErrorResponse](t, rec).Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	router := newRouter(failingService{panics: true})

	rec := get(t, router, "/api/jobs")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", decode[api.ErrorResponse](t, rec).Code)
}

func TestRequestID(t *testing.T) {
	router := newRouter(newJobService(t))

	rec := get(t, router, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestUnknownRoute(t *testing.T) {
	router := newRouter(newJobService(t))

	rec := get(t, router, "/api/nothing-here")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[api.ErrorResponse](t, rec).Code)
}

func TestMetricsRoute(t *testing.T) {
	m := metrics.New()
	store, err := local.LoadEmbedded()
	require.NoError(t, err)
	svc, err := job.NewService(job.WithFallback(store), job.WithRecorder(m))
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Handler:        api.NewHandler(svc, nil),
		Observer:       m,
		MetricsHandler: m.Handler(),
	})

	require.Equal(t, http.StatusOK, get(t, router, "/api/jobs").Code)

	rec := get(t, router, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/api/jobs"`)
	assert.Contains(t, rec.Body.String(), `remote_jobs_fallback_total{reason="no_providers"} 1`)
}
