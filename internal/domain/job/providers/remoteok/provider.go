package remoteok

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/honeycarbs/remote-jobs/internal/domain"
	jobdomain "github.com/honeycarbs/remote-jobs/internal/domain/job"
	"github.com/honeycarbs/remote-jobs/internal/domain/job/normalize"
	"github.com/honeycarbs/remote-jobs/pkg/remoteok"
)

const Name = "remoteok"

type feedClient interface {
	Ping(ctx context.Context) error
	Jobs(ctx context.Context) ([]remoteok.Job, error)
}

// Provider implements job.DetailProvider over the RemoteOK feed. The feed has no
// server-side search, so every filter is applied here and TotalCount is exact.
type Provider struct {
	client feedClient
}

// NewProvider builds a RemoteOK provider
func NewProvider(client feedClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("remoteok provider: client is required")
	}
	return &Provider{client: client}, nil
}

func (p *Provider) Name() string {
	return Name
}

// IsAvailable pings the feed
func (p *Provider) IsAvailable(ctx context.Context) bool {
	return p.client.Ping(ctx) == nil
}

func (p *Provider) FetchJobs(ctx context.Context, params domain.SearchParams) (domain.JobPage, error) {
	params = params.Normalize()

	feed, err := p.client.Jobs(ctx)
	if err != nil {
		return domain.JobPage{}, err
	}

	matched := make([]domain.Job, 0, len(feed))
	for _, item := range feed {
		j := toJob(item)
		if normalize.Matches(j, params) {
			matched = append(matched, j)
		}
	}

	sort.SliceStable(matched, func(a, b int) bool {
		return matched[a].PostedAt.After(matched[b].PostedAt)
	})

	return domain.Paginate(matched, len(matched), params), nil
}

// GetJobDetails scans the feed for externalID; (nil, nil) when it is gone
func (p *Provider) GetJobDetails(ctx context.Context, externalID string) (*domain.Job, error) {
	feed, err := p.client.Jobs(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range feed {
		if item.ID == externalID {
			j := toJob(item)
			return &j, nil
		}
	}
	return nil, nil
}

func toJob(item remoteok.Job) domain.Job {
	tags := strings.Join(item.Tags, " ")

	applyURL := item.ApplyURL
	if applyURL == "" {
		applyURL = item.URL
	}

	return domain.Job{
		ID:          domain.CompositeID(Name, item.ID),
		Title:       item.Position,
		Description: item.Description,
		Company: domain.CompanyRef{
			Name: item.Company,
			Logo: item.CompanyLogo,
		},
		Category:        normalize.InferCategory(item.Position, item.Description, item.Tags...),
		Location:        normalize.NormalizeLocation(item.Location),
		Skills:          normalize.ExtractSkills(item.Position, tags, item.Description),
		Type:            normalize.InferJobType("", item.Position, tags),
		SalaryMin:       normalize.Salary(item.SalaryMin),
		SalaryMax:       normalize.Salary(item.SalaryMax),
		ExperienceLevel: normalize.InferExperience(item.Position, item.Description),
		PostedAt:        item.PostedAt,
		Source:          Name,
		ExternalID:      item.ID,
		ApplyURL:        applyURL,
	}
}

var _ jobdomain.DetailProvider = (*Provider)(nil)
