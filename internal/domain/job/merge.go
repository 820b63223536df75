package job

import (
	"strings"

	"github.com/honeycarbs/remote-jobs/internal/domain"
	"github.com/honeycarbs/remote-jobs/internal/domain/job/normalize"
)

const unknownCompany = "Unknown company"

// sanitize drops jobs missing an ID, a title or a posting date and fills the
// remaining optional fields with their defaults. It never returns nil.
func sanitize(jobs []domain.Job) []domain.Job {
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.ID == "" || strings.TrimSpace(j.Title) == "" || j.PostedAt.IsZero() {
			continue
		}
		if strings.TrimSpace(j.Company.Name) == "" {
			j.Company.Name = unknownCompany
		}
		if j.Category.Slug == "" {
			if j.Category.Name == "" {
				j.Category = normalize.CategoryByName("")
			} else {
				j.Category.Slug = normalize.Slugify(j.Category.Name)
			}
		}
		if j.Location.Slug == "" {
			if j.Location.Name == "" {
				j.Location = normalize.Worldwide()
			} else {
				j.Location.Slug = normalize.Slugify(j.Location.Name)
			}
		}
		if j.Skills == nil {
			j.Skills = []domain.SkillRef{}
		}
		if j.Type == "" {
			j.Type = domain.JobTypeFullTime
		}
		if j.ExperienceLevel == "" {
			j.ExperienceLevel = domain.ExperienceMid
		}
		out = append(out, j)
	}
	return out
}

func sanitizeOne(j *domain.Job) *domain.Job {
	if j == nil {
		return nil
	}
	out := sanitize([]domain.Job{*j})
	if len(out) == 0 {
		return nil
	}
	return &out[0]
}
