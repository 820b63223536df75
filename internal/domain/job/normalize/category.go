package normalize

import (
	"strings"

	"github.com/honeycarbs/remote-jobs/internal/domain"
)

type categoryRule struct {
	name     string
	keywords []string
}

// categoryRules are evaluated in order; more specific categories come first so
// that e.g. "DevOps Engineer" does not land in Software Development.
var categoryRules = []categoryRule{
	{"DevOps & SysAdmin", []string{"devops", "sre", "site reliability", "sysadmin", "system administrator", "infrastructure", "platform engineer", "cloud engineer", "kubernetes"}},
	{"Data Science", []string{"data scientist", "data science", "machine learning", "ml engineer", "data engineer", "data analyst", "analytics", "ai engineer", "deep learning"}},
	{"Design", []string{"designer", "ux", "ui/ux", "product design", "graphic design", "user experience", "figma", "illustrator"}},
	{"Product", []string{"product manager", "product owner", "product lead", "product management"}},
	{"QA & Testing", []string{"qa", "quality assurance", "test engineer", "sdet", "tester"}},
	{"Marketing", []string{"marketing", "seo", "growth", "content marketing", "social media", "brand"}},
	{"Sales", []string{"sales", "account executive", "business development", "account manager", "sdr"}},
	{"Customer Support", []string{"customer support", "customer success", "customer service", "support specialist", "support engineer", "help desk"}},
	{"Writing", []string{"writer", "copywriter", "editor", "technical writer", "content writer"}},
	{"Finance", []string{"accountant", "accounting", "finance", "financial", "bookkeeper", "controller"}},
	{"Human Resources", []string{"recruiter", "recruiting", "talent acquisition", "human resources", "hr", "people operations"}},
	{"Software Development", []string{"developer", "engineer", "software", "programmer", "frontend", "front-end", "backend", "back-end", "full stack", "fullstack", "full-stack", "mobile", "ios", "android"}},
}

const otherCategory = "Other"

// Categories lists every known category in rule order, followed by Other
func Categories() []domain.CategoryRef {
	out := make([]domain.CategoryRef, 0, len(categoryRules)+1)
	for _, rule := range categoryRules {
		out = append(out, categoryRef(rule.name))
	}
	return append(out, categoryRef(otherCategory))
}

// CategoryBySlug resolves a known category slug
func CategoryBySlug(slug string) (domain.CategoryRef, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, c := range Categories() {
		if c.Slug == slug {
			return c, true
		}
	}
	return domain.CategoryRef{}, false
}

// CategoryByName resolves a category from its display name or slug; unknown names
// fall back to Other.
func CategoryByName(name string) domain.CategoryRef {
	if c, ok := CategoryBySlug(Slugify(name)); ok {
		return c
	}
	return categoryRef(otherCategory)
}

// InferCategory matches the posting against the ordered category rules. Title and
// tags are tried before the description because descriptions mention many roles.
func InferCategory(title, description string, tags ...string) domain.CategoryRef {
	primary := joinLower(append([]string{title}, tags...)...)
	if c, ok := matchCategory(primary); ok {
		return c
	}

	if c, ok := matchCategory(joinLower(title, description)); ok {
		return c
	}

	return categoryRef(otherCategory)
}

func matchCategory(text string) (domain.CategoryRef, bool) {
	for _, rule := range categoryRules {
		if containsAny(text, rule.keywords) {
			return categoryRef(rule.name), true
		}
	}
	return domain.CategoryRef{}, false
}

func categoryRef(name string) domain.CategoryRef {
	return domain.CategoryRef{Name: name, Slug: Slugify(name)}
}
