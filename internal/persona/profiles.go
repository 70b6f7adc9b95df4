// Package persona turns a free-text persona role and job description into the
// structured query used by segmentation and scoring.
package persona

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"doc-intelligence/internal/domain"
)

// Profile is a named persona with its vocabulary.
type Profile struct {
	Name            string        `json:"name" yaml:"name"`
	Keywords        []string      `json:"keywords" yaml:"keywords"`
	SectionPatterns []string      `json:"section_patterns" yaml:"section_patterns"`
	Domain          domain.Domain `json:"domain" yaml:"domain"`
}

// GenericProfile is used when no named profile matches the persona role.
var GenericProfile = Profile{
	Name:            "generic",
	Keywords:        []string{"analysis", "information", "content", "document", "section"},
	SectionPatterns: []string{"overview", "summary", "details", "information"},
	Domain:          domain.DomainGeneral,
}

// builtinProfiles is ordered: substring matching returns the first hit.
var builtinProfiles = []Profile{
	{
		Name: "hr professional",
		Keywords: []string{
			"hr", "human resources", "onboarding", "compliance", "recruitment",
			"employee", "training", "policy", "form", "fillable", "signature",
			"document", "contract", "agreement", "pdf", "digital", "workflow",
		},
		SectionPatterns: []string{
			"onboarding", "compliance", "recruitment", "training", "policy",
			"form", "fillable", "signature", "contract", "agreement",
		},
		Domain: domain.DomainHR,
	},
	{
		Name: "food contractor",
		Keywords: []string{
			"food", "catering", "menu", "recipe", "ingredients", "vegetarian",
			"buffet", "corporate", "gathering", "meal", "dish", "cuisine",
			"cooking", "preparation", "service", "nutrition", "dietary",
		},
		SectionPatterns: []string{
			"recipe", "ingredients", "preparation", "cooking", "menu",
			"vegetarian", "buffet", "meal", "dish", "cuisine",
		},
		Domain: domain.DomainFood,
	},
	{
		Name: "data analyst",
		Keywords: []string{
			"data", "analysis", "analytics", "reporting", "metrics", "kpi",
			"dashboard", "visualization", "insights", "trends", "performance",
			"statistics", "excel", "spreadsheet", "chart", "graph",
		},
		SectionPatterns: []string{
			"analysis", "metrics", "kpi", "reporting", "dashboard",
			"insights", "performance", "statistics", "trends",
		},
		Domain: domain.DomainData,
	},
	{
		Name: "business analyst",
		Keywords: []string{
			"business", "strategy", "process", "requirements", "stakeholder",
			"workflow", "efficiency", "optimization", "roi", "feasibility",
			"implementation", "change management", "gap analysis",
		},
		SectionPatterns: []string{
			"strategy", "process", "requirements", "stakeholder", "workflow",
			"efficiency", "optimization", "implementation", "analysis",
		},
		Domain: domain.DomainBusiness,
	},
	{
		Name: "researcher",
		Keywords: []string{
			"research", "study", "methodology", "findings", "literature",
			"hypothesis", "experiment", "data collection", "analysis",
			"conclusion", "references", "academic", "scholarly",
		},
		SectionPatterns: []string{
			"methodology", "findings", "literature", "hypothesis",
			"experiment", "conclusion", "references", "analysis",
		},
		Domain: domain.DomainResearch,
	},
	{
		Name: "legal counsel",
		Keywords: []string{
			"legal", "law", "contract", "compliance", "regulation",
			"liability", "agreement", "terms", "conditions", "policy",
			"governance", "risk", "litigation", "intellectual property",
		},
		SectionPatterns: []string{
			"legal", "contract", "compliance", "regulation", "liability",
			"agreement", "terms", "conditions", "policy", "governance",
		},
		Domain: domain.DomainLegal,
	},
	{
		Name: "technical writer",
		Keywords: []string{
			"documentation", "manual", "guide", "procedure", "instruction",
			"technical", "specification", "user guide", "api", "tutorial",
			"reference", "implementation", "configuration", "deployment",
		},
		SectionPatterns: []string{
			"documentation", "manual", "guide", "procedure", "instruction",
			"specification", "tutorial", "reference", "implementation",
		},
		Domain: domain.DomainTechnical,
	},
	{
		Name: "student",
		Keywords: []string{
			"study", "learning", "education", "assignment", "research",
			"notes", "lecture", "course", "exam", "project", "homework",
			"academic", "curriculum", "syllabus", "grade",
		},
		SectionPatterns: []string{
			"study", "learning", "assignment", "research", "notes",
			"lecture", "course", "exam", "project", "homework",
		},
		Domain: domain.DomainEducation,
	},
	{
		Name: "consultant",
		Keywords: []string{
			"consulting", "advisory", "strategy", "implementation", "assessment",
			"recommendation", "expertise", "solution", "client", "engagement",
			"deliverable", "methodology", "best practice", "framework",
		},
		SectionPatterns: []string{
			"strategy", "assessment", "recommendation", "solution",
			"methodology", "framework", "implementation", "deliverable",
		},
		Domain: domain.DomainConsulting,
	},
	{
		Name: "manager",
		Keywords: []string{
			"management", "team", "leadership", "performance", "goal",
			"objective", "planning", "budget", "resource", "project",
			"deadline", "milestone", "stakeholder", "communication",
		},
		SectionPatterns: []string{
			"management", "team", "leadership", "performance", "planning",
			"project", "budget", "resource", "communication",
		},
		Domain: domain.DomainManagement,
	},
}

// domainKeywords are the job words kept for a domain regardless of length.
var domainKeywords = map[domain.Domain][]string{
	domain.DomainHR:         {"onboarding", "compliance", "recruitment", "training", "policy", "form", "signature"},
	domain.DomainFood:       {"vegetarian", "buffet", "menu", "recipe", "ingredients", "corporate", "gathering"},
	domain.DomainData:       {"metrics", "kpi", "analysis", "reporting", "dashboard", "insights", "performance"},
	domain.DomainBusiness:   {"strategy", "process", "requirements", "stakeholder", "efficiency", "optimization"},
	domain.DomainResearch:   {"methodology", "findings", "hypothesis", "experiment", "conclusion", "literature"},
	domain.DomainLegal:      {"contract", "compliance", "regulation", "liability", "agreement", "terms"},
	domain.DomainTechnical:  {"documentation", "manual", "guide", "procedure", "specification", "api"},
	domain.DomainEducation:  {"study", "learning", "assignment", "research", "course", "exam"},
	domain.DomainConsulting: {"strategy", "assessment", "recommendation", "solution", "methodology"},
	domain.DomainManagement: {"team", "leadership", "performance", "planning", "budget", "resource"},
}

// BuiltinProfiles returns a copy of the stock profile table.
func BuiltinProfiles() []Profile {
	out := make([]Profile, len(builtinProfiles))
	for i, p := range builtinProfiles {
		out[i] = p.clone()
	}
	return out
}

// ErrProfilesNotFound is returned when the profiles file does not exist.
var ErrProfilesNotFound = errors.New("profiles file not found")

// ProfilesFile is the on-disk format of additional persona profiles.
type ProfilesFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// LoadProfiles reads additional profiles from a YAML file. A missing file
// returns ErrProfilesNotFound so callers can treat it as optional.
func LoadProfiles(path string) ([]Profile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-provided path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrProfilesNotFound
		}
		return nil, err
	}

	var pf ProfilesFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file %s: %w", path, err)
	}

	out := make([]Profile, 0, len(pf.Profiles))
	for i, p := range pf.Profiles {
		p.Name = strings.ToLower(strings.TrimSpace(p.Name))
		if p.Name == "" {
			return nil, fmt.Errorf("profile %d in %s has no name", i, path)
		}
		p.Domain = domain.ParseDomain(string(p.Domain))
		out = append(out, p)
	}
	return out, nil
}

func (p Profile) clone() Profile {
	p.Keywords = append([]string(nil), p.Keywords...)
	p.SectionPatterns = append([]string(nil), p.SectionPatterns...)
	return p
}
