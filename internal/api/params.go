package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/remote-jobs/internal/domain"
)

const trueString = "true"

// parseSearchParams maps query parameters onto domain.SearchParams. Invalid
// numbers are dropped so Normalize can apply its defaults.
func parseSearchParams(c *gin.Context) domain.SearchParams {
	params := domain.SearchParams{
		Query:            queryText(c),
		Category:         c.Query("category"),
		Location:         c.Query("location"),
		Types:            parseJobTypes(c.Query("type")),
		ExperienceLevels: parseExperienceLevels(c.Query("experience")),
		MinSalary:        parseSalary(c.Query("salary")),
		Timezone:         c.Query("timezone"),
		Sort:             domain.ParseSortOrder(c.Query("sort")),
		Page:             parseInt(c.Query("page")),
		Limit:            parseInt(c.Query("limit")),
	}
	return params.Normalize()
}

// queryText accepts both q and search
func queryText(c *gin.Context) string {
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		return q
	}
	return strings.TrimSpace(c.Query("search"))
}

func countOnly(c *gin.Context) bool {
	v := strings.ToLower(c.Query("count"))
	return v == trueString || v == "1"
}

func parseJobTypes(raw string) []domain.JobType {
	var out []domain.JobType
	for _, part := range splitList(raw) {
		if t, ok := domain.ParseJobType(part); ok {
			out = append(out, t)
		}
	}
	return out
}

func parseExperienceLevels(raw string) []domain.ExperienceLevel {
	var out []domain.ExperienceLevel
	for _, part := range splitList(raw) {
		if l, ok := domain.ParseExperienceLevel(part); ok {
			out = append(out, l)
		}
	}
	return out
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseSalary reads a minimum annual salary: 80000, 80k, $80,000
func parseSalary(raw string) int {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer("$", "", ",", "", "_", "").Replace(s)
	if s == "" {
		return 0
	}

	multiplier := 1
	if strings.HasSuffix(s, "k") {
		multiplier = 1000
		s = strings.TrimSuffix(s, "k")
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n < 0 {
		return 0
	}
	return int(n * float64(multiplier))
}

func parseInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}
