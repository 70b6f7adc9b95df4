package domain

import "strings"

// Domain tags the subject area of a persona profile.
type Domain string

const (
	DomainGeneral    Domain = "general"
	DomainHR         Domain = "hr"
	DomainFood       Domain = "food"
	DomainData       Domain = "data"
	DomainBusiness   Domain = "business"
	DomainResearch   Domain = "research"
	DomainLegal      Domain = "legal"
	DomainTechnical  Domain = "technical"
	DomainEducation  Domain = "education"
	DomainConsulting Domain = "consulting"
	DomainManagement Domain = "management"
)

var knownDomains = map[Domain]bool{
	DomainGeneral: true, DomainHR: true, DomainFood: true, DomainData: true,
	DomainBusiness: true, DomainResearch: true, DomainLegal: true,
	DomainTechnical: true, DomainEducation: true, DomainConsulting: true,
	DomainManagement: true,
}

// ParseDomain maps a free-form tag onto a known domain, falling back to general.
func ParseDomain(s string) Domain {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	if knownDomains[d] {
		return d
	}
	return DomainGeneral
}

// RelevanceWeights is the informational weight profile attached to a context.
type RelevanceWeights struct {
	ExactMatch   float64 `json:"exact_match"`
	KeywordMatch float64 `json:"keyword_match"`
	DomainMatch  float64 `json:"domain_match"`
	ContextMatch float64 `json:"context_match"`
}

// PersonaContext is the structured query built from a persona and a job.
// It is read-only once built.
type PersonaContext struct {
	PersonaRole     string           `json:"persona_role"`
	JobTask         string           `json:"job_task"`
	ProfileName     string           `json:"profile_name"`
	Keywords        []string         `json:"keywords"`
	Domain          Domain           `json:"domain"`
	SectionPatterns []string         `json:"section_patterns"`
	CombinedQuery   string           `json:"combined_query"`
	Weights         RelevanceWeights `json:"relevance_weights"`
}
