package adzuna

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hits the live API; runs only with credentials in the environment.
func TestSearchJobsLive(t *testing.T) {
	if testing.Short() {
		t.Skip("live API test")
	}
	appID, appKey := os.Getenv("ADZUNA_APP_ID"), os.Getenv("ADZUNA_APP_KEY")
	if appID == "" || appKey == "" {
		t.Skip("ADZUNA_APP_ID and ADZUNA_APP_KEY not set")
	}

	client, err := NewClient(Config{AppID: appID, AppKey: appKey, Country: "us"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	first, err := client.SearchJobs(ctx, SearchParams{What: "remote golang", SortBy: "date", PerPage: 5, Page: 1})
	require.NoError(t, err)
	if len(first.Jobs) == 0 {
		t.Skip("no live results for query")
	}
	assert.LessOrEqual(t, len(first.Jobs), 5)
	assert.GreaterOrEqual(t, first.Count, len(first.Jobs))

	second, err := client.SearchJobs(ctx, SearchParams{What: "remote golang", SortBy: "date", PerPage: 5, Page: 2})
	require.NoError(t, err)

	seen := make(map[string]bool, len(first.Jobs))
	for _, j := range first.Jobs {
		assert.NotEmpty(t, j.ID)
		seen[j.ID] = true
	}
	for _, j := range second.Jobs {
		assert.False(t, seen[j.ID], "page 2 repeats %s", j.ID)
	}
}
