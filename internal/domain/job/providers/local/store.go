// Package local is the always-available in-memory job store used when no
// external provider can answer.
package local

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/honeycarbs/remote-jobs/internal/domain"
	jobdomain "github.com/honeycarbs/remote-jobs/internal/domain/job"
	"github.com/honeycarbs/remote-jobs/internal/domain/job/normalize"
)

const Name = "local"

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Jobs []seedJob `yaml:"jobs"`
}

type seedJob struct {
	ID          int       `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Company     string    `yaml:"company"`
	Logo        string    `yaml:"logo"`
	Website     string    `yaml:"website"`
	Category    string    `yaml:"category"`
	Location    string    `yaml:"location"`
	Skills      []string  `yaml:"skills"`
	Type        string    `yaml:"type"`
	Experience  string    `yaml:"experience"`
	SalaryMin   int       `yaml:"salary_min"`
	SalaryMax   int       `yaml:"salary_max"`
	PostedAt    time.Time `yaml:"posted_at"`
	Featured    bool      `yaml:"featured"`
	ApplyURL    string    `yaml:"apply_url"`
}

// Store implements job.DetailProvider over a fixed, read-only job list
type Store struct {
	jobs []domain.Job
	byID map[string]int
}

// NewStore builds a store from already normalized jobs. IDs must be numeric and unique.
func NewStore(jobs []domain.Job) (*Store, error) {
	s := &Store{
		jobs: make([]domain.Job, 0, len(jobs)),
		byID: make(map[string]int, len(jobs)),
	}
	for _, j := range jobs {
		if _, err := strconv.ParseUint(j.ID, 10, 64); err != nil {
			return nil, fmt.Errorf("local store: job id %q is not numeric", j.ID)
		}
		if _, dup := s.byID[j.ID]; dup {
			return nil, fmt.Errorf("local store: duplicate job id %s", j.ID)
		}
		j.Source = Name
		if j.Skills == nil {
			j.Skills = []domain.SkillRef{}
		}
		s.byID[j.ID] = len(s.jobs)
		s.jobs = append(s.jobs, j)
	}
	return s, nil
}

// Load reads a YAML seed document
func Load(r io.Reader) (*Store, error) {
	var seed seedFile
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil {
		return nil, fmt.Errorf("local store: decode seed: %w", err)
	}

	jobs := make([]domain.Job, 0, len(seed.Jobs))
	for _, sj := range seed.Jobs {
		jobs = append(jobs, sj.toJob())
	}
	return NewStore(jobs)
}

// LoadEmbedded reads the dataset compiled into the binary
func LoadEmbedded() (*Store, error) {
	return Load(bytes.NewReader(seedYAML))
}

func (sj seedJob) toJob() domain.Job {
	category := normalize.InferCategory(sj.Title, sj.Description)
	if sj.Category != "" {
		category = normalize.CategoryByName(sj.Category)
	}

	skills := make([]domain.SkillRef, 0, len(sj.Skills))
	for _, label := range sj.Skills {
		name, ok := normalize.CanonicalSkill(label)
		if !ok {
			name = strings.TrimSpace(label)
		}
		if name != "" {
			skills = append(skills, domain.SkillRef{Name: name})
		}
	}
	if len(skills) == 0 {
		skills = normalize.ExtractSkills(sj.Title, sj.Description)
	}

	level, ok := domain.ParseExperienceLevel(sj.Experience)
	if !ok {
		level = normalize.InferExperience(sj.Title, sj.Description)
	}

	j := domain.Job{
		ID:          strconv.Itoa(sj.ID),
		Title:       sj.Title,
		Description: strings.TrimSpace(sj.Description),
		Company: domain.CompanyRef{
			Name:    sj.Company,
			Logo:    sj.Logo,
			Website: sj.Website,
		},
		Category:        category,
		Location:        normalize.NormalizeLocation(sj.Location),
		Skills:          skills,
		Type:            normalize.InferJobType(sj.Type, sj.Title),
		ExperienceLevel: level,
		PostedAt:        sj.PostedAt.UTC(),
		Featured:        sj.Featured,
		Source:          Name,
		ApplyURL:        sj.ApplyURL,
	}
	if sj.SalaryMin > 0 {
		v := sj.SalaryMin
		j.SalaryMin = &v
	}
	if sj.SalaryMax > 0 {
		v := sj.SalaryMax
		j.SalaryMax = &v
	}
	return j
}

func (s *Store) Name() string {
	return Name
}

// IsAvailable is always true
func (s *Store) IsAvailable(context.Context) bool {
	return true
}

// FetchJobs applies every filter dimension, sorts and paginates
func (s *Store) FetchJobs(ctx context.Context, params domain.SearchParams) (domain.JobPage, error) {
	if err := ctx.Err(); err != nil {
		return domain.JobPage{}, err
	}
	params = params.Normalize()

	matched := make([]domain.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if normalize.Matches(j, params) {
			matched = append(matched, j)
		}
	}
	sortJobs(matched, params.Sort)

	return domain.Paginate(matched, len(matched), params), nil
}

// GetJobDetails looks up a numeric id; (nil, nil) when absent
func (s *Store) GetJobDetails(_ context.Context, id string) (*domain.Job, error) {
	i, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return nil, nil
	}
	j := s.jobs[i]
	return &j, nil
}

// All returns every job in insertion order
func (s *Store) All() []domain.Job {
	out := make([]domain.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// featured postings lead the default ordering
func sortJobs(jobs []domain.Job, order domain.SortOrder) {
	if order != domain.SortNewest {
		domain.SortJobs(jobs, order)
		return
	}
	sort.SliceStable(jobs, func(a, b int) bool {
		if jobs[a].Featured != jobs[b].Featured {
			return jobs[a].Featured
		}
		return order.Before(jobs[a], jobs[b])
	})
}

var _ jobdomain.DetailProvider = (*Store)(nil)
