package normalize

import (
	"math"
	"strings"

	"github.com/honeycarbs/remote-jobs/internal/domain"
)

type knownLocation struct {
	name    string
	region  string
	aliases []string
}

const worldwide = "Worldwide"

// knownLocations are checked in order against the raw location text
var knownLocations = []knownLocation{
	{"Latin America", "Latin America", []string{"latin america", "latam", "south america", "mexico", "brazil", "argentina", "colombia", "chile"}},
	{"United States", "North America", []string{"united states", "usa", "us", "u.s.", "north america"}},
	{"Canada", "North America", []string{"canada"}},
	{"United Kingdom", "Europe", []string{"united kingdom", "uk", "england", "london", "scotland"}},
	{"Germany", "Europe", []string{"germany", "berlin", "deutschland"}},
	{"Europe", "Europe", []string{"europe", "eu", "emea", "france", "spain", "netherlands", "poland", "portugal", "ireland"}},
	{"India", "Asia", []string{"india", "bangalore", "bengaluru"}},
	{"Asia Pacific", "Asia", []string{"apac", "asia", "singapore", "japan", "philippines"}},
	{"Australia", "Oceania", []string{"australia", "new zealand", "oceania"}},
	{"Africa", "Africa", []string{"africa", "nigeria", "kenya", "south africa"}},
}

var worldwideTerms = []string{"worldwide", "anywhere", "global", "remote"}

// Worldwide is the default location for postings without a usable location
func Worldwide() domain.LocationRef {
	return domain.LocationRef{Name: worldwide, Slug: Slugify(worldwide), Region: worldwide}
}

// Locations lists the canonical locations, Worldwide first
func Locations() []domain.LocationRef {
	out := []domain.LocationRef{Worldwide()}
	for _, l := range knownLocations {
		out = append(out, domain.LocationRef{Name: l.name, Slug: Slugify(l.name), Region: l.region})
	}
	return out
}

// LocationBySlug resolves a canonical location or region slug
func LocationBySlug(slug string) (domain.LocationRef, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, l := range Locations() {
		if l.Slug == slug {
			return l, true
		}
	}
	for _, l := range knownLocations {
		if Slugify(l.region) == slug {
			return domain.LocationRef{Name: l.region, Slug: slug, Region: l.region}, true
		}
	}
	return domain.LocationRef{}, false
}

// NormalizeLocation maps raw provider text onto a canonical location. Known
// countries and regions win over "remote"; text that matches nothing keeps its own
// name and slug without a region.
func NormalizeLocation(raw string) domain.LocationRef {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return Worldwide()
	}

	for _, l := range knownLocations {
		if containsAny(text, l.aliases) {
			return domain.LocationRef{Name: l.name, Slug: Slugify(l.name), Region: l.region}
		}
	}

	if containsAny(text, worldwideTerms) {
		return Worldwide()
	}

	name := strings.TrimSpace(raw)
	slug := Slugify(name)
	if slug == "" {
		return Worldwide()
	}
	return domain.LocationRef{Name: name, Slug: slug}
}

// MatchesLocation reports whether loc satisfies a location slug filter. A region
// slug (e.g. "europe") also matches every location inside that region.
func MatchesLocation(loc domain.LocationRef, slug string) bool {
	if slug == "" {
		return true
	}
	return loc.Slug == slug || Slugify(loc.Region) == slug
}

// Salary converts a provider amount to whole units; non-positive amounts are absent
func Salary(amount float64) *int {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil
	}
	v := int(math.Round(amount))
	return &v
}
