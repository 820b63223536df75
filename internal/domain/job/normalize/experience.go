package normalize

import (
	"github.com/honeycarbs/remote-jobs/internal/domain"
)

var (
	seniorTerms = []string{"senior", "sr", "lead", "principal", "staff", "head of"}
	entryTerms  = []string{"junior", "jr", "entry", "entry-level", "graduate", "intern", "internship", "trainee"}
)

// InferExperience classifies seniority from keywords in the title and
// description together. Senior terms win over entry terms; default is mid.
func InferExperience(title, description string) domain.ExperienceLevel {
	if level, ok := experienceFrom(joinLower(title, description)); ok {
		return level
	}
	return domain.ExperienceMid
}

func experienceFrom(text string) (domain.ExperienceLevel, bool) {
	switch {
	case containsAny(text, seniorTerms):
		return domain.ExperienceSenior, true
	case containsAny(text, entryTerms):
		return domain.ExperienceEntry, true
	default:
		return "", false
	}
}
