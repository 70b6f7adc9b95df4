package persona

import (
	"regexp"
	"sort"
	"strings"

	"doc-intelligence/internal/domain"
	"doc-intelligence/internal/textproc"
)

var (
	explicitActionRe = regexp.MustCompile(`\b(create|convert|fill|send|change|set up|enable|prepare|analyze|review|manage|process)\b`)
	suffixActionRe   = regexp.MustCompile(`\b(\w+ing|\w+ed|\w+er)\b`)
	objectActionRe   = regexp.MustCompile(`\b(\w+)\s+(forms?|documents?|files?|data)\b`)
)

var actionSuffixes = []string{"ing", "ed", "er", "ize", "ify", "ate"}

var stopWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "with": true, "by": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true,
	"have": true, "has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "should": true, "could": true, "can": true,
	"may": true, "might": true, "must": true, "a": true, "an": true, "this": true,
	"that": true, "these": true, "those": true, "from": true,
}

// jobPatternRule adds section patterns when the job mentions any trigger.
type jobPatternRule struct {
	triggers []string
	patterns []string
}

var jobPatternRules = []jobPatternRule{
	{triggers: []string{"form", "fillable"}, patterns: []string{"form", "fillable", "interactive", "field"}},
	{triggers: []string{"signature", "sign"}, patterns: []string{"signature", "sign", "esign", "electronic"}},
	{triggers: []string{"vegetarian", "buffet"}, patterns: []string{"vegetarian", "buffet", "menu", "recipe"}},
	{triggers: []string{"analysis", "metrics"}, patterns: []string{"analysis", "metrics", "kpi", "performance"}},
}

// complexJobWords is the job length above which context matches weigh more.
const complexJobWords = 10

// Builder resolves persona roles against a profile table. It is read-only
// after construction and safe for concurrent use.
type Builder struct {
	profiles []Profile
	generic  Profile
}

// NewBuilder creates a builder over the stock profiles. Extra profiles replace
// stock profiles of the same name and are otherwise appended in order.
func NewBuilder(extra ...Profile) *Builder {
	profiles := BuiltinProfiles()
	for _, p := range extra {
		p = p.clone()
		p.Name = strings.ToLower(strings.TrimSpace(p.Name))
		replaced := false
		for i := range profiles {
			if profiles[i].Name == p.Name {
				profiles[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			profiles = append(profiles, p)
		}
	}
	return &Builder{profiles: profiles, generic: GenericProfile.clone()}
}

// Profiles lists the named profiles in match order followed by the generic one.
func (b *Builder) Profiles() []Profile {
	out := make([]Profile, 0, len(b.profiles)+1)
	for _, p := range b.profiles {
		out = append(out, p.clone())
	}
	return append(out, b.generic.clone())
}

// Match finds the profile for a role: exact name first, then a name that
// contains the role or is contained in it, then the generic profile.
func (b *Builder) Match(role string) Profile {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return b.generic
	}
	for _, p := range b.profiles {
		if p.Name == role {
			return p
		}
	}
	for _, p := range b.profiles {
		if strings.Contains(role, p.Name) || strings.Contains(p.Name, role) {
			return p
		}
	}
	return b.generic
}

// Build creates the persona context for a role and job. It never fails: an
// unknown role uses the generic profile and an empty job adds no keywords.
func (b *Builder) Build(role, job string) *domain.PersonaContext {
	role = strings.ToLower(strings.TrimSpace(role))
	job = strings.TrimSpace(job)
	profile := b.Match(role)

	keywords := newStringSet(profile.Keywords...)
	keywords.add(jobKeywords(job, profile.Domain)...)
	keywords.add(actionWords(job)...)

	return &domain.PersonaContext{
		PersonaRole:     role,
		JobTask:         strings.ToLower(job),
		ProfileName:     profile.Name,
		Keywords:        keywords.sorted(),
		Domain:          profile.Domain,
		SectionPatterns: sectionPatterns(profile, job),
		CombinedQuery:   strings.TrimSpace(strings.ToLower(role + " " + job)),
		Weights:         relevanceWeights(job),
	}
}

// jobKeywords keeps job words that are domain vocabulary, look like actions,
// or are longer than four letters and not stop words.
func jobKeywords(job string, d domain.Domain) []string {
	if job == "" {
		return nil
	}
	vocab := newStringSet(domainKeywords[d]...)
	var out []string
	for _, w := range textproc.Words(job) {
		switch {
		case vocab.has(w), isActionWord(w):
			out = append(out, w)
		case len(w) > 4 && !stopWords[w]:
			out = append(out, w)
		}
	}
	return out
}

// actionWords collects explicit verbs, suffix-derived action forms and the
// word before "forms", "documents", "files" or "data".
func actionWords(job string) []string {
	if job == "" {
		return nil
	}
	lower := strings.ToLower(job)
	var out []string
	out = append(out, explicitActionRe.FindAllString(lower, -1)...)
	out = append(out, suffixActionRe.FindAllString(lower, -1)...)
	for _, m := range objectActionRe.FindAllStringSubmatch(lower, -1) {
		if m[1] != "" {
			out = append(out, m[1])
		}
	}
	return out
}

func sectionPatterns(profile Profile, job string) []string {
	set := newStringSet(profile.SectionPatterns...)
	lower := strings.ToLower(job)
	for _, rule := range jobPatternRules {
		for _, t := range rule.triggers {
			if strings.Contains(lower, t) {
				set.add(rule.patterns...)
				break
			}
		}
	}
	return set.sorted()
}

func relevanceWeights(job string) domain.RelevanceWeights {
	w := domain.RelevanceWeights{
		ExactMatch:   1.0,
		KeywordMatch: 0.8,
		DomainMatch:  0.6,
		ContextMatch: 0.4,
	}
	if len(strings.Fields(job)) > complexJobWords {
		w.ContextMatch *= 1.2
	}
	return w
}

func isActionWord(w string) bool {
	for _, s := range actionSuffixes {
		if strings.HasSuffix(w, s) {
			return true
		}
	}
	return false
}

type stringSet map[string]struct{}

func newStringSet(items ...string) stringSet {
	s := make(stringSet, len(items))
	s.add(items...)
	return s
}

func (s stringSet) add(items ...string) {
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			s[it] = struct{}{}
		}
	}
}

func (s stringSet) has(item string) bool {
	_, ok := s[item]
	return ok
}

func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
