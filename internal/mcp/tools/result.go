package tools

import (
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/remote-jobs/internal/domain"
)

// textResult returns a text-only ToolResult
func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}

// JobSummary is the compact job shape returned to agents
type JobSummary struct {
	ID         string `json:"id" jsonschema:"Local numeric id or provider:externalId"`
	Title      string `json:"title"`
	Company    string `json:"company"`
	Category   string `json:"category"`
	Location   string `json:"location"`
	Type       string `json:"type"`
	Experience string `json:"experience"`
	SalaryMin  int    `json:"salary_min,omitempty" jsonschema:"Annual USD, 0 when unknown"`
	SalaryMax  int    `json:"salary_max,omitempty" jsonschema:"Annual USD, 0 when unknown"`
	PostedAt   string `json:"posted_at" jsonschema:"RFC 3339 timestamp"`
	Source     string `json:"source"`
	ApplyURL   string `json:"apply_url,omitempty"`
}

// JobDetail is a summary plus the posting text and skills
type JobDetail struct {
	Job         JobSummary `json:"job"`
	Description string     `json:"description"`
	Skills      []string   `json:"skills"`
	Featured    bool       `json:"featured"`
}

func summarize(j domain.Job) JobSummary {
	s := JobSummary{
		ID:         j.ID,
		Title:      j.Title,
		Company:    j.Company.Name,
		Category:   j.Category.Name,
		Location:   j.Location.Name,
		Type:       string(j.Type),
		Experience: string(j.ExperienceLevel),
		PostedAt:   j.PostedAt.UTC().Format(time.RFC3339),
		Source:     j.Source,
		ApplyURL:   j.ApplyURL,
	}
	if j.SalaryMin != nil {
		s.SalaryMin = *j.SalaryMin
	}
	if j.SalaryMax != nil {
		s.SalaryMax = *j.SalaryMax
	}
	return s
}

func detail(j domain.Job) JobDetail {
	skills := make([]string, 0, len(j.Skills))
	for _, s := range j.Skills {
		skills = append(skills, s.Name)
	}
	return JobDetail{
		Job:         summarize(j),
		Description: j.Description,
		Skills:      skills,
		Featured:    j.Featured,
	}
}
