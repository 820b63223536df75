package normalize

import (
	"strings"

	"github.com/honeycarbs/remote-jobs/internal/domain"
)

var jobTypeHints = []struct {
	jobType domain.JobType
	terms   []string
}{
	{domain.JobTypeInternship, []string{"internship", "intern"}},
	{domain.JobTypeFreelance, []string{"freelance", "freelancer"}},
	{domain.JobTypeContract, []string{"contract", "contractor", "fixed-term"}},
	{domain.JobTypePartTime, []string{"part-time", "part time", "parttime"}},
	{domain.JobTypeFullTime, []string{"full-time", "full time", "fulltime", "permanent"}},
}

// InferJobType uses the provider's explicit field when it parses, then falls back
// to hints in texts (title, tags), defaulting to full-time.
func InferJobType(raw string, texts ...string) domain.JobType {
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '/' }) {
		if t, ok := domain.ParseJobType(part); ok {
			return t
		}
	}

	text := joinLower(texts...)
	for _, hint := range jobTypeHints {
		if containsAny(text, hint.terms) {
			return hint.jobType
		}
	}

	return domain.JobTypeFullTime
}
