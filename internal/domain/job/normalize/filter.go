package normalize

import (
	"strings"

	"github.com/honeycarbs/remote-jobs/internal/domain"
)

// Matches applies every SearchParams filter to an already normalized job. It is
// used by sources that filter in memory (the RemoteOK feed and the local store).
func Matches(j domain.Job, p domain.SearchParams) bool {
	if !MatchesQuery(j, p.Query) {
		return false
	}
	if p.Category != "" && j.Category.Slug != p.Category {
		return false
	}
	if !MatchesLocation(j.Location, p.Location) {
		return false
	}
	if !p.HasType(j.Type) || !p.HasExperience(j.ExperienceLevel) {
		return false
	}
	if p.MinSalary > 0 && !meetsSalary(j, p.MinSalary) {
		return false
	}
	return MatchesTimezone(j.Location, p.Timezone)
}

// MatchesQuery reports whether every whitespace-separated term of q occurs in the
// job's title, description, company or skills.
func MatchesQuery(j domain.Job, q string) bool {
	terms := strings.Fields(strings.ToLower(q))
	if len(terms) == 0 {
		return true
	}

	parts := []string{j.Title, j.Description, j.Company.Name, j.Category.Name}
	for _, s := range j.Skills {
		parts = append(parts, s.Name)
	}
	text := joinLower(parts...)

	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}

func meetsSalary(j domain.Job, floor int) bool {
	switch {
	case j.SalaryMax != nil:
		return *j.SalaryMax >= floor
	case j.SalaryMin != nil:
		return *j.SalaryMin >= floor
	default:
		return false
	}
}

var timezoneRegions = []struct {
	prefix  string
	regions []string
}{
	{"america/", []string{"North America", "Latin America"}},
	{"us/", []string{"North America"}},
	{"canada/", []string{"North America"}},
	{"europe/", []string{"Europe"}},
	{"asia/", []string{"Asia"}},
	{"australia/", []string{"Oceania"}},
	{"pacific/", []string{"Oceania"}},
	{"africa/", []string{"Africa"}},
}

// MatchesTimezone reports whether a job's location suits tz. tz is either an IANA
// name ("Europe/Berlin") or a region or location slug ("europe"). Worldwide jobs
// and jobs without a known region always match.
func MatchesTimezone(loc domain.LocationRef, tz string) bool {
	tz = strings.ToLower(strings.TrimSpace(tz))
	if tz == "" || loc.Region == "" || loc.Region == worldwide {
		return true
	}

	for _, m := range timezoneRegions {
		if strings.HasPrefix(tz, m.prefix) {
			for _, region := range m.regions {
				if region == loc.Region {
					return true
				}
			}
			return false
		}
	}

	return MatchesLocation(loc, Slugify(tz))
}
