package domain

import (
	"strings"
	"time"
)

// JobType is the employment arrangement of a posting
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeFreelance  JobType = "freelance"
	JobTypeInternship JobType = "internship"
)

// ParseJobType accepts the common spellings used by providers and query strings
// (full-time, full_time, fulltime, FULLTIME, ...).
func ParseJobType(s string) (JobType, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)

	switch key {
	case "fulltime", "permanent":
		return JobTypeFullTime, true
	case "parttime":
		return JobTypePartTime, true
	case "contract", "contractor", "temporary":
		return JobTypeContract, true
	case "freelance", "freelancer":
		return JobTypeFreelance, true
	case "internship", "intern":
		return JobTypeInternship, true
	default:
		return "", false
	}
}

// ExperienceLevel is the seniority inferred for a posting
type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
)

// ParseExperienceLevel accepts entry/junior, mid/intermediate and senior/lead
func ParseExperienceLevel(s string) (ExperienceLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entry", "junior", "entry-level", "entry_level":
		return ExperienceEntry, true
	case "mid", "intermediate", "mid-level", "mid_level":
		return ExperienceMid, true
	case "senior", "lead", "senior-level", "senior_level":
		return ExperienceSenior, true
	default:
		return "", false
	}
}

// CompanyRef is the hiring company as reported by the source
type CompanyRef struct {
	Name    string `json:"name"`
	Logo    string `json:"logo,omitempty"`
	Website string `json:"website,omitempty"`
}

// CategoryRef is the inferred job category
type CategoryRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// LocationRef is the inferred hiring location
type LocationRef struct {
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Region string `json:"region,omitempty"`
}

// SkillRef is a skill extracted from the posting text
type SkillRef struct {
	Name string `json:"name"`
}

// Job is the normalized job posting every provider produces
type Job struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Company         CompanyRef      `json:"company"`
	Category        CategoryRef     `json:"category"`
	Location        LocationRef     `json:"location"`
	Skills          []SkillRef      `json:"skills"`
	Type            JobType         `json:"type"`
	SalaryMin       *int            `json:"salaryMin,omitempty"`
	SalaryMax       *int            `json:"salaryMax,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	PostedAt        time.Time       `json:"postedAt"`
	Featured        bool            `json:"featured"`
	Source          string          `json:"source"`
	ExternalID      string          `json:"externalId,omitempty"`
	ApplyURL        string          `json:"applyUrl,omitempty"`
}

// CompositeID builds the "{provider}:{externalId}" identifier of an external job
func CompositeID(provider, externalID string) string {
	return provider + ":" + externalID
}

// HasSkill reports whether the job lists the named skill (case-insensitive)
func (j Job) HasSkill(name string) bool {
	for _, s := range j.Skills {
		if strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}

// JobPage is one page of jobs together with totals
type JobPage struct {
	Jobs        []Job `json:"jobs"`
	TotalCount  int   `json:"totalCount"`
	PageCount   int   `json:"pageCount"`
	CurrentPage int   `json:"currentPage"`
}

// SearchResult is the aggregated output of a multi-provider search
type SearchResult struct {
	JobPage
	Sources  []string `json:"sources"`
	Fallback bool     `json:"fallback"`
}
