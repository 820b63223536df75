package normalize

import (
	"strings"

	"github.com/honeycarbs/remote-jobs/internal/domain"
)

type skill struct {
	name    string
	aliases []string
}

// skillVocabulary is the fixed list skills are extracted against; output follows
// this order.
var skillVocabulary = []skill{
	{"JavaScript", []string{"javascript", "js", "ecmascript"}},
	{"TypeScript", []string{"typescript"}},
	{"Python", []string{"python"}},
	{"Go", []string{"golang", "go developer", "go engineer"}},
	{"Java", []string{"java"}},
	{"Kotlin", []string{"kotlin"}},
	{"Swift", []string{"swift"}},
	{"Ruby", []string{"ruby"}},
	{"Rails", []string{"rails", "ruby on rails"}},
	{"PHP", []string{"php"}},
	{"Laravel", []string{"laravel"}},
	{"C#", []string{"c#"}},
	{".NET", []string{".net", "dotnet"}},
	{"C++", []string{"c++"}},
	{"Rust", []string{"rust"}},
	{"Scala", []string{"scala"}},
	{"Elixir", []string{"elixir"}},
	{"React", []string{"react", "react.js", "reactjs"}},
	{"React Native", []string{"react native"}},
	{"Vue", []string{"vue", "vue.js", "vuejs"}},
	{"Angular", []string{"angular"}},
	{"Svelte", []string{"svelte"}},
	{"Next.js", []string{"next.js", "nextjs"}},
	{"Node.js", []string{"node.js", "nodejs", "node"}},
	{"Django", []string{"django"}},
	{"Flask", []string{"flask"}},
	{"Spring", []string{"spring boot", "spring framework"}},
	{"GraphQL", []string{"graphql"}},
	{"REST", []string{"rest api", "restful"}},
	{"SQL", []string{"sql"}},
	{"PostgreSQL", []string{"postgresql", "postgres"}},
	{"MySQL", []string{"mysql"}},
	{"MongoDB", []string{"mongodb", "mongo"}},
	{"Redis", []string{"redis"}},
	{"Elasticsearch", []string{"elasticsearch"}},
	{"Kafka", []string{"kafka"}},
	{"AWS", []string{"aws", "amazon web services"}},
	{"GCP", []string{"gcp", "google cloud"}},
	{"Azure", []string{"azure"}},
	{"Docker", []string{"docker"}},
	{"Kubernetes", []string{"kubernetes", "k8s"}},
	{"Terraform", []string{"terraform"}},
	{"Linux", []string{"linux"}},
	{"CI/CD", []string{"ci/cd", "continuous integration"}},
	{"Machine Learning", []string{"machine learning", "ml"}},
	{"TensorFlow", []string{"tensorflow"}},
	{"PyTorch", []string{"pytorch"}},
	{"Figma", []string{"figma"}},
	{"HTML", []string{"html", "html5"}},
	{"CSS", []string{"css", "css3", "tailwind"}},
	{"SEO", []string{"seo"}},
	{"Salesforce", []string{"salesforce"}},
}

// Vocabulary returns the canonical skill names in extraction order
func Vocabulary() []string {
	out := make([]string, 0, len(skillVocabulary))
	for _, s := range skillVocabulary {
		out = append(out, s.name)
	}
	return out
}

// ExtractSkills returns the vocabulary skills mentioned in any of texts. Matching is
// case-insensitive and word-bounded against each skill's aliases (the bare name is
// not matched so "Go" does not fire on the verb); the result is deduplicated and
// never nil.
func ExtractSkills(texts ...string) []domain.SkillRef {
	text := joinLower(texts...)
	out := make([]domain.SkillRef, 0)

	for _, s := range skillVocabulary {
		if containsAny(text, s.aliases) {
			out = append(out, domain.SkillRef{Name: s.name})
		}
	}

	return out
}

// CanonicalSkill maps a free-form skill label to the vocabulary name when known
func CanonicalSkill(label string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(label))
	for _, s := range skillVocabulary {
		if key == strings.ToLower(s.name) {
			return s.name, true
		}
		for _, alias := range s.aliases {
			if key == alias {
				return s.name, true
			}
		}
	}
	return "", false
}
