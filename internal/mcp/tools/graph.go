package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/remote-jobs/internal/domain/job"
)

const (
	defaultSkillLimit = 20
	maxSkillLimit     = 100
)

// TopSkillsParams defines the arguments for the top_skills tool
type TopSkillsParams struct {
	Source string `json:"source,omitempty" jsonschema:"Only count jobs from this provider, e.g. adzuna"`
	Limit  int    `json:"limit,omitempty" jsonschema:"How many skills to return, default 20"`
}

// TopSkillsResult is the structured response of top_skills
type TopSkillsResult struct {
	Skills []job.SkillCount `json:"skills"`
}

type skillsTool struct {
	stats job.SkillStats
}

// WithTopSkills registers top_skills over the job archive graph. Nothing is
// registered when stats is nil.
func WithTopSkills(stats job.SkillStats) Option {
	if stats == nil {
		return nil
	}
	return func(reg *registry) {
		t := skillsTool{stats: stats}
		addTool(reg, &sdkmcp.Tool{
			Name:        "top_skills",
			Description: "Rank skills by how many archived job postings require them",
		}, t.handle)
	}
}

func (t skillsTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, in TopSkillsParams) (*sdkmcp.CallToolResult, TopSkillsResult, error) {
	limit := in.Limit
	switch {
	case limit <= 0:
		limit = defaultSkillLimit
	case limit > maxSkillLimit:
		limit = maxSkillLimit
	}

	skills, err := t.stats.TopSkills(ctx, strings.TrimSpace(in.Source), limit)
	if err != nil {
		return nil, TopSkillsResult{}, fmt.Errorf("top skills: %w", err)
	}
	if skills == nil {
		skills = []job.SkillCount{}
	}

	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, fmt.Sprintf("%s (%d)", s.Name, s.Jobs))
	}
	return textResult(strings.Join(names, ", ")), TopSkillsResult{Skills: skills}, nil
}
