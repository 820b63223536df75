package job

import (
	"context"
	"time"

	"github.com/honeycarbs/remote-jobs/internal/domain"
)

// Archive records provider jobs that were surfaced to users
type Archive interface {
	// UpsertJobs creates or updates jobs keyed by Source + ExternalID
	UpsertJobs(ctx context.Context, jobs []domain.Job) error
}

// SkillCount is the number of archived jobs that list a skill
type SkillCount struct {
	Name string `json:"name"`
	Jobs int    `json:"jobs"`
}

// SkillStats reads aggregate skill demand from the archive
type SkillStats interface {
	// TopSkills returns the most requested skills, optionally limited to one source
	TopSkills(ctx context.Context, source string, limit int) ([]SkillCount, error)
}

// Recorder receives aggregation telemetry
type Recorder interface {
	ObserveFetch(provider, outcome string, elapsed time.Duration)
	ObserveFallback(reason string)
	ObserveSearch(elapsed time.Duration, jobs int)
}

// Fetch outcomes reported to Recorder.ObserveFetch
const (
	OutcomeSuccess     = "success"
	OutcomeError       = "error"
	OutcomeTimeout     = "timeout"
	OutcomePanic       = "panic"
	OutcomeUnavailable = "unavailable"
)

// Fallback reasons reported to Recorder.ObserveFallback
const (
	FallbackNoProviders = "no_providers"
	FallbackAllFailed   = "all_failed"
)

type nopRecorder struct{}

func (nopRecorder) ObserveFetch(string, string, time.Duration) {}
func (nopRecorder) ObserveFallback(string)                     {}
func (nopRecorder) ObserveSearch(time.Duration, int)           {}
