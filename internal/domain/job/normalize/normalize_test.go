package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/remote-jobs/internal/domain"
	"github.com/honeycarbs/remote-jobs/internal/domain/job/normalize"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Senior Go Engineer":         "senior-go-engineer",
		"  --Hello,   World!!-- ":    "hello-world",
		"C++ / C# Developer":         "c-c-developer",
		"DevOps & SysAdmin":          "devops-sysadmin",
		"":                           "",
		"Ünïcode Café":               "n-code-caf",
		"already-a-slug":             "already-a-slug",
		"Multiple---hyphens___here":  "multiple-hyphens-here",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalize.Slugify(in), "Slugify(%q)", in)
	}
}

func TestJobSlugIsDeterministic(t *testing.T) {
	first := normalize.JobSlug("Senior Backend Engineer", "Acme Corp")
	second := normalize.JobSlug("Senior Backend Engineer", "Acme Corp")

	assert.Equal(t, first, second)
	assert.Equal(t, "senior-backend-engineer-at-acme-corp", first)
	assert.Equal(t, normalize.Slugify(first), first)
}

func TestInferCategory(t *testing.T) {
	cases := []struct {
		title, description string
		tags               []string
		want               string
	}{
		{"Senior DevOps Engineer", "", nil, "devops-sysadmin"},
		{"Machine Learning Engineer", "", nil, "data-science"},
		{"Product Designer", "", nil, "design"},
		{"Backend Developer", "We use Kubernetes", nil, "software-development"},
		{"Account Executive", "", nil, "sales"},
		{"Ninja", "You will write code as a software developer", nil, "software-development"},
		{"Rockstar", "", []string{"marketing"}, "marketing"},
		{"Office Manager", "Keep the office running", nil, "other"},
	}
	for _, c := range cases {
		got := normalize.InferCategory(c.title, c.description, c.tags...)
		assert.Equal(t, c.want, got.Slug, "title %q", c.title)
		assert.NotEmpty(t, got.Name)
	}
}

func TestCategoryBySlug(t *testing.T) {
	c, ok := normalize.CategoryBySlug("software-development")
	require.True(t, ok)
	assert.Equal(t, "Software Development", c.Name)

	_, ok = normalize.CategoryBySlug("basket-weaving")
	assert.False(t, ok)

	assert.Equal(t, "other", normalize.CategoryByName("Basket Weaving").Slug)
	assert.Equal(t, "design", normalize.CategoryByName("Design").Slug)
}

func TestInferExperience(t *testing.T) {
	cases := []struct {
		title, description string
		want               domain.ExperienceLevel
	}{
		{"Senior Backend Engineer", "", domain.ExperienceSenior},
		{"Lead Designer", "", domain.ExperienceSenior},
		{"Principal Engineer", "", domain.ExperienceSenior},
		{"Junior Frontend Developer", "", domain.ExperienceEntry},
		{"Graduate Data Analyst", "", domain.ExperienceEntry},
		{"Backend Engineer", "", domain.ExperienceMid},
		{"Backend Engineer", "This is a senior role", domain.ExperienceSenior},
		{"Junior Engineer", "you will pair with senior engineers", domain.ExperienceSenior},
		{"Backend Engineer", "Open to graduate applicants", domain.ExperienceEntry},
		{"Graduate Program", "mentored by the principal architect", domain.ExperienceSenior},
		{"Internal Tools Engineer", "", domain.ExperienceMid},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, normalize.InferExperience(c.title, c.description), "title %q", c.title)
	}
}

func TestExtractSkills(t *testing.T) {
	skills := normalize.ExtractSkills(
		"Senior Golang Engineer",
		"We build with Go, PostgreSQL, Docker and k8s. Some REACT and node.js. C++ a plus. JavaScript!",
	)

	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}

	assert.Equal(t, []string{"JavaScript", "Go", "C++", "React", "Node.js", "PostgreSQL", "Docker", "Kubernetes"}, names)
}

func TestExtractSkillsWordBoundaries(t *testing.T) {
	skills := normalize.ExtractSkills("Let's go! We love javascript but not java-beans, and scalability matters")

	var names []string
	for _, s := range skills {
		names = append(names, s.Name)
	}

	assert.Contains(t, names, "JavaScript")
	assert.Contains(t, names, "Java")
	assert.NotContains(t, names, "Go")
	assert.NotContains(t, names, "Scala")
}

func TestExtractSkillsNeverNil(t *testing.T) {
	skills := normalize.ExtractSkills("")
	assert.NotNil(t, skills)
	assert.Empty(t, skills)
}

func TestInferJobType(t *testing.T) {
	assert.Equal(t, domain.JobTypePartTime, normalize.InferJobType("part_time"))
	assert.Equal(t, domain.JobTypeContract, normalize.InferJobType("CONTRACTOR"))
	assert.Equal(t, domain.JobTypeFreelance, normalize.InferJobType("", "Freelance React developer"))
	assert.Equal(t, domain.JobTypeInternship, normalize.InferJobType("", "Summer Internship"))
	assert.Equal(t, domain.JobTypeFullTime, normalize.InferJobType("", "Backend Engineer"))
	assert.Equal(t, domain.JobTypeContract, normalize.InferJobType("unknown", "6 month contract"))
}

func TestNormalizeLocation(t *testing.T) {
	cases := []struct {
		raw, slug, region string
	}{
		{"", "worldwide", "Worldwide"},
		{"Remote", "worldwide", "Worldwide"},
		{"Anywhere in the world", "worldwide", "Worldwide"},
		{"Remote (USA only)", "united-states", "North America"},
		{"Berlin, Germany", "germany", "Europe"},
		{"Remote - Latin America", "latin-america", "Latin America"},
		{"Remote, EU timezones", "europe", "Europe"},
	}
	for _, c := range cases {
		got := normalize.NormalizeLocation(c.raw)
		assert.Equal(t, c.slug, got.Slug, "raw %q", c.raw)
		assert.Equal(t, c.region, got.Region, "raw %q", c.raw)
	}

	custom := normalize.NormalizeLocation("Reykjavik")
	assert.Equal(t, "Reykjavik", custom.Name)
	assert.Equal(t, "reykjavik", custom.Slug)
	assert.Empty(t, custom.Region)
}

func TestLocationBySlugAndMatches(t *testing.T) {
	loc, ok := normalize.LocationBySlug("germany")
	require.True(t, ok)
	assert.Equal(t, "Europe", loc.Region)

	region, ok := normalize.LocationBySlug("north-america")
	require.True(t, ok)
	assert.Equal(t, "North America", region.Name)

	_, ok = normalize.LocationBySlug("atlantis")
	assert.False(t, ok)

	assert.True(t, normalize.MatchesLocation(loc, "europe"))
	assert.True(t, normalize.MatchesLocation(loc, "germany"))
	assert.True(t, normalize.MatchesLocation(loc, ""))
	assert.False(t, normalize.MatchesLocation(loc, "canada"))
}

func TestSalary(t *testing.T) {
	assert.Nil(t, normalize.Salary(0))
	assert.Nil(t, normalize.Salary(-10))

	v := normalize.Salary(85000.6)
	require.NotNil(t, v)
	assert.Equal(t, 85001, *v)
}

func TestMatches(t *testing.T) {
	salary := 120000
	j := domain.Job{
		Title:           "Senior Backend Engineer",
		Description:     "Own our billing APIs",
		Company:         domain.CompanyRef{Name: "Acme"},
		Category:        domain.CategoryRef{Name: "Software Development", Slug: "software-development"},
		Location:        domain.LocationRef{Name: "Germany", Slug: "germany", Region: "Europe"},
		Skills:          []domain.SkillRef{{Name: "Go"}},
		Type:            domain.JobTypeContract,
		ExperienceLevel: domain.ExperienceSenior,
		SalaryMax:       &salary,
	}

	assert.True(t, normalize.Matches(j, domain.SearchParams{}))
	assert.True(t, normalize.Matches(j, domain.SearchParams{Query: "backend ACME go"}))
	assert.False(t, normalize.Matches(j, domain.SearchParams{Query: "frontend"}))
	assert.True(t, normalize.Matches(j, domain.SearchParams{Category: "software-development", Location: "europe"}))
	assert.False(t, normalize.Matches(j, domain.SearchParams{Category: "design"}))
	assert.True(t, normalize.Matches(j, domain.SearchParams{Types: []domain.JobType{domain.JobTypeFullTime, domain.JobTypeContract}}))
	assert.False(t, normalize.Matches(j, domain.SearchParams{Types: []domain.JobType{domain.JobTypePartTime}}))
	assert.False(t, normalize.Matches(j, domain.SearchParams{ExperienceLevels: []domain.ExperienceLevel{domain.ExperienceEntry}}))
	assert.True(t, normalize.Matches(j, domain.SearchParams{MinSalary: 100000}))
	assert.False(t, normalize.Matches(j, domain.SearchParams{MinSalary: 150000}))
	assert.True(t, normalize.Matches(j, domain.SearchParams{Timezone: "Europe/Berlin"}))
	assert.False(t, normalize.Matches(j, domain.SearchParams{Timezone: "America/New_York"}))

	j.SalaryMax = nil
	assert.False(t, normalize.Matches(j, domain.SearchParams{MinSalary: 1}))
}

func TestMatchesTimezone(t *testing.T) {
	assert.True(t, normalize.MatchesTimezone(normalize.Worldwide(), "Asia/Tokyo"))
	assert.True(t, normalize.MatchesTimezone(domain.LocationRef{Name: "Reykjavik", Slug: "reykjavik"}, "Asia/Tokyo"))

	us := normalize.NormalizeLocation("USA")
	assert.True(t, normalize.MatchesTimezone(us, "America/Chicago"))
	assert.True(t, normalize.MatchesTimezone(us, "north-america"))
	assert.False(t, normalize.MatchesTimezone(us, "Europe/London"))
	assert.False(t, normalize.MatchesTimezone(us, "europe"))
	assert.True(t, normalize.MatchesTimezone(us, ""))
}
