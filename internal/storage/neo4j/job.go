package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/remote-jobs/internal/domain"
	"github.com/honeycarbs/remote-jobs/internal/domain/job"
	pkgneo4j "github.com/honeycarbs/remote-jobs/pkg/neo4j"
)

var (
	_ job.Archive    = (*JobArchive)(nil)
	_ job.SkillStats = (*JobArchive)(nil)
)

const upsertJobsQuery = `
	UNWIND $jobs AS job
	MERGE (j:Job {source: job.source, externalId: job.externalId})
	SET j.id = job.id,
	    j.title = job.title,
	    j.description = job.description,
	    j.type = job.type,
	    j.experience = job.experience,
	    j.salaryMin = job.salaryMin,
	    j.salaryMax = job.salaryMax,
	    j.applyUrl = job.applyUrl,
	    j.postedAt = datetime({epochMillis: job.postedAt}),
	    j.lastSeenAt = datetime({epochMillis: job.seenAt})
	WITH j, job
	MERGE (c:Company {name: job.company.name})
	SET c.website = coalesce(job.company.website, c.website)
	MERGE (j)-[:POSTED_BY]->(c)
	WITH j, job
	MERGE (cat:Category {slug: job.category.slug})
	SET cat.name = job.category.name
	MERGE (j)-[:IN_CATEGORY]->(cat)
	WITH j, job
	MERGE (l:Location {slug: job.location.slug})
	SET l.name = job.location.name, l.region = job.location.region
	MERGE (j)-[:LOCATED_IN]->(l)
	WITH j, job
	FOREACH (skill IN job.skills |
		MERGE (s:Skill {name: skill})
		MERGE (j)-[:REQUIRES]->(s)
	)
`

const topSkillsQuery = `
	MATCH (j:Job)-[:REQUIRES]->(s:Skill)
	WHERE $source = '' OR j.source = $source
	RETURN s.name AS name, count(DISTINCT j) AS jobs
	ORDER BY jobs DESC, name ASC
	LIMIT $limit
`

// JobArchive stores surfaced provider jobs as a graph:
// Job -> Company, Category, Location and Skill nodes
type JobArchive struct {
	client *pkgneo4j.Client
	clock  func() time.Time
}

// NewJobArchive creates a JobArchive with a Neo4j client
func NewJobArchive(client *pkgneo4j.Client) *JobArchive {
	return &JobArchive{
		client: client,
		clock:  time.Now,
	}
}

// UpsertJobs merges jobs keyed by source and external id
func (r *JobArchive) UpsertJobs(ctx context.Context, jobs []domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	session := r.client.WriteSession(ctx)
	defer func() { _ = session.Close(ctx) }()

	params := map[string]any{"jobs": jobParams(jobs, r.clock())}
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, upsertJobsQuery, params)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("neo4j: upsert %d jobs: %w", len(jobs), err)
	}
	return nil
}

// TopSkills ranks skills by the number of archived jobs requiring them
func (r *JobArchive) TopSkills(ctx context.Context, source string, limit int) ([]job.SkillCount, error) {
	session := r.client.ReadSession(ctx)
	defer func() { _ = session.Close(ctx) }()

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx, topSkillsQuery, map[string]any{
			"source": source,
			"limit":  int64(limit),
		})
		if err != nil {
			return nil, err
		}
		return records.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j: top skills: %w", err)
	}

	records, _ := result.([]*neo4j.Record)
	return skillCounts(records), nil
}

func skillCounts(records []*neo4j.Record) []job.SkillCount {
	out := make([]job.SkillCount, 0, len(records))
	for _, rec := range records {
		nameVal, _ := rec.Get("name")
		jobsVal, _ := rec.Get("jobs")

		name, ok := nameVal.(string)
		if !ok || name == "" {
			continue
		}
		count, _ := jobsVal.(int64)
		out = append(out, job.SkillCount{Name: name, Jobs: int(count)})
	}
	return out
}

// jobParams maps jobs onto the $jobs parameter of upsertJobsQuery
func jobParams(jobs []domain.Job, seenAt time.Time) []map[string]any {
	out := make([]map[string]any, 0, len(jobs))
	for _, j := range jobs {
		skills := make([]string, 0, len(j.Skills))
		for _, s := range j.Skills {
			skills = append(skills, s.Name)
		}

		company := map[string]any{"name": j.Company.Name}
		if j.Company.Website != "" {
			company["website"] = j.Company.Website
		}

		out = append(out, map[string]any{
			"id":          j.ID,
			"source":      j.Source,
			"externalId":  j.ExternalID,
			"title":       j.Title,
			"description": j.Description,
			"type":        string(j.Type),
			"experience":  string(j.ExperienceLevel),
			"salaryMin":   optionalInt(j.SalaryMin),
			"salaryMax":   optionalInt(j.SalaryMax),
			"applyUrl":    j.ApplyURL,
			"postedAt":    j.PostedAt.UnixMilli(),
			"seenAt":      seenAt.UnixMilli(),
			"company":     company,
			"category":    map[string]any{"name": j.Category.Name, "slug": j.Category.Slug},
			"location": map[string]any{
				"name":   j.Location.Name,
				"slug":   j.Location.Slug,
				"region": j.Location.Region,
			},
			"skills": skills,
		})
	}
	return out
}

func optionalInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}
