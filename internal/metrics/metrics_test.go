package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/remote-jobs/internal/domain/job"
	"github.com/honeycarbs/remote-jobs/internal/metrics"
)

func TestRecorder(t *testing.T) {
	m := metrics.New()

	m.ObserveFetch("adzuna", job.OutcomeSuccess, 120*time.Millisecond)
	m.ObserveFetch("adzuna", job.OutcomeTimeout, 8*time.Second)
	m.ObserveFetch("jsearch", job.OutcomeUnavailable, 0)
	m.ObserveFallback(job.FallbackAllFailed)
	m.ObserveSearch(300*time.Millisecond, 20)

	assert.InDelta(t, 1, testutil.ToFloat64(m.ProviderFetches.WithLabelValues("adzuna", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ProviderFetches.WithLabelValues("adzuna", "timeout")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ProviderFetches.WithLabelValues("jsearch", "unavailable")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Fallbacks.WithLabelValues("all_failed")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.ProviderFetchDuration))
}

func TestInstancesAreIndependent(t *testing.T) {
	a := metrics.New()
	b := metrics.New()

	a.ObserveFallback(job.FallbackNoProviders)

	assert.InDelta(t, 1, testutil.ToFloat64(a.Fallbacks.WithLabelValues("no_providers")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.Fallbacks.WithLabelValues("no_providers")), 0)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := metrics.New()
	m.ObserveHTTP(http.MethodGet, "/api/jobs", http.StatusOK, 10*time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `remote_jobs_http_requests_total{method="GET",route="/api/jobs",status="200"} 1`)
	assert.Contains(t, string(body), `route="unmatched"`)
	assert.Contains(t, string(body), "go_goroutines")
}
