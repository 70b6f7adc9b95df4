package segment

import (
	"regexp"
	"sort"
	"strings"

	"doc-intelligence/internal/domain"
)

// basePatterns are the header shapes recognised for every request, in
// priority order: exact known titles, action-verb-led headers, generic title
// case, numbered headers and "Key/Main/..." headers.
var basePatterns = []string{
	`^(Introduction|Overview|Summary|Conclusions?|Background|Methods?|Methodology|Results?|Findings|Discussion|Analysis|Recommendations?|Abstract|References)\s*:?\s*[A-Za-z\s]*$`,
	`^(Create|Convert|Fill|Send|Change|Set up|Enable|Prepare|Analyze|Review|Manage|Process|Plan|Build|Use|Add|Edit|Export|Share|Sign)\s+[A-Za-z\s]{3,60}$`,
	`^[A-Z][A-Za-z\s]{15,80}$`,
	`^[A-Z][A-Z\s]{8,60}$`,
	`^(Chapter|Section|Part|Step)\s+\d+:?\s*[A-Z][A-Za-z\s]{5,50}$`,
	`^\d+(\.\d+)*\s+[A-Z][A-Za-z\s]{10,60}$`,
	`^(Key|Main|Important|Essential|Critical|Primary|Secondary)\s+[A-Za-z\s]{5,50}$`,
	`^(What|How|Why|When|Where|Which)\s+[A-Za-z\s]{10,60}\??$`,
}

// structuralWords mark a short line as a likely header.
var structuralWords = []string{
	"overview", "introduction", "summary", "conclusion", "background",
	"analysis", "discussion", "results", "findings", "recommendations",
	"key", "main", "important", "essential", "primary", "secondary",
	"step", "phase", "stage", "part", "section", "chapter",
	"guide", "tips", "methods", "approach", "strategy", "process",
	"cities", "cuisine", "history", "restaurants", "hotels", "things",
	"tricks", "traditions", "culture", "activities", "attractions",
}

// domainBoilerplate lists per-domain header vocabulary added when a persona
// context names the domain.
var domainBoilerplate = map[domain.Domain][]string{
	domain.DomainHR:         {"onboarding", "compliance", "recruitment", "training", "policy", "benefits", "employee"},
	domain.DomainFood:       {"recipe", "ingredients", "preparation", "menu", "serving", "instructions", "nutrition"},
	domain.DomainData:       {"metrics", "kpi", "dashboard", "reporting", "insights", "trends", "statistics"},
	domain.DomainBusiness:   {"strategy", "process", "requirements", "stakeholders", "roadmap", "efficiency"},
	domain.DomainResearch:   {"methodology", "findings", "hypothesis", "experiment", "literature", "results"},
	domain.DomainLegal:      {"terms", "conditions", "liability", "agreement", "compliance", "regulation"},
	domain.DomainTechnical:  {"installation", "configuration", "procedure", "specification", "reference", "troubleshooting"},
	domain.DomainEducation:  {"lesson", "course", "assignment", "exercises", "objectives", "syllabus"},
	domain.DomainConsulting: {"assessment", "recommendations", "solution", "framework", "deliverables"},
	domain.DomainManagement: {"planning", "budget", "resources", "milestones", "leadership", "team"},
}

// PatternSet is an immutable set of header patterns plus the header
// vocabulary used by the header-likeness test. Extending a set returns a new
// one; the receiver is never modified.
type PatternSet struct {
	sources  []string
	compiled []*regexp.Regexp
	seen     map[string]struct{}
	keywords []string
}

// BasePatterns returns the patterns every request starts from.
func BasePatterns() *PatternSet {
	p := &PatternSet{seen: make(map[string]struct{})}
	for _, src := range basePatterns {
		p.add(src)
	}
	p.keywords = append([]string(nil), structuralWords...)
	return p
}

// Extend returns a copy of p with persona-derived patterns appended: exact,
// fuzzy and title-case variants of each section pattern in pc, plus the
// boilerplate of its domain. A nil context returns p itself.
func (p *PatternSet) Extend(pc *domain.PersonaContext) *PatternSet {
	if pc == nil {
		return p
	}
	out := p.clone()
	terms := append([]string(nil), pc.SectionPatterns...)
	sort.Strings(terms)
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		for _, src := range derivedPatterns(term) {
			out.add(src)
		}
		out.addKeyword(term)
	}
	if words, ok := domainBoilerplate[pc.Domain]; ok {
		out.add(boilerplatePattern(words))
		for _, w := range words {
			out.addKeyword(w)
		}
	}
	return out
}

// Match reports whether line matches any pattern.
func (p *PatternSet) Match(line string) bool {
	for _, re := range p.compiled {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// MatchExactTitle reports whether line matches the known-title pattern.
func (p *PatternSet) MatchExactTitle(line string) bool {
	return len(p.compiled) > 0 && p.compiled[0].MatchString(line)
}

// ContainsKeyword reports whether the lowercased line contains any header
// vocabulary word.
func (p *PatternSet) ContainsKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, k := range p.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// Len is the number of distinct patterns.
func (p *PatternSet) Len() int {
	return len(p.compiled)
}

func (p *PatternSet) add(src string) {
	if _, dup := p.seen[src]; dup {
		return
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return
	}
	p.seen[src] = struct{}{}
	p.sources = append(p.sources, src)
	p.compiled = append(p.compiled, re)
}

func (p *PatternSet) addKeyword(k string) {
	for _, existing := range p.keywords {
		if existing == k {
			return
		}
	}
	p.keywords = append(p.keywords, k)
}

func (p *PatternSet) clone() *PatternSet {
	out := &PatternSet{
		sources:  append([]string(nil), p.sources...),
		compiled: append([]*regexp.Regexp(nil), p.compiled...),
		seen:     make(map[string]struct{}, len(p.seen)),
		keywords: append([]string(nil), p.keywords...),
	}
	for k := range p.seen {
		out.seen[k] = struct{}{}
	}
	return out
}

// derivedPatterns builds the exact, fuzzy and title-case variants of a
// persona section term. Fuzzy and title-case forms allow a few surrounding
// words but no sentence punctuation, so body sentences do not match.
func derivedPatterns(term string) []string {
	q := regexp.QuoteMeta(term)
	title := regexp.QuoteMeta(titleCase(term))
	return []string{
		`(?i)^` + q + `s?\s*:?$`,
		`(?i)^(?:[a-z0-9&/-]+\s+){0,5}` + q + `[a-z]*(?:\s+[a-z0-9&/-]+){0,5}\s*:?$`,
		`^(?:[A-Z][a-z]*\s+){0,4}` + title + `[a-z]*(?:\s+[A-Z][a-z]*){0,4}$`,
	}
}

func boilerplatePattern(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return `(?i)^(?:\S+\s+){0,6}(?:` + strings.Join(quoted, "|") + `)[a-z]*(?:\s+\S+){0,6}[^.!?;,]$`
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
