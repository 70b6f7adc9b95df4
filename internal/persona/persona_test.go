package persona

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-intelligence/internal/domain"
)

func TestBuilder_Build_Researcher(t *testing.T) {
	b := NewBuilder()

	pc := b.Build("Researcher", "Summarize key findings")

	assert.Equal(t, "researcher", pc.PersonaRole)
	assert.Equal(t, "summarize key findings", pc.JobTask)
	assert.Equal(t, "researcher", pc.ProfileName)
	assert.Equal(t, domain.DomainResearch, pc.Domain)
	assert.Equal(t, "researcher summarize key findings", pc.CombinedQuery)
	assert.Contains(t, pc.Keywords, "findings")
	assert.Contains(t, pc.Keywords, "summarize")
	assert.Contains(t, pc.Keywords, "research")
	assert.NotContains(t, pc.Keywords, "key")
	assert.Equal(t, []string{
		"analysis", "conclusion", "experiment", "findings",
		"hypothesis", "literature", "methodology", "references",
	}, pc.SectionPatterns)
}

func TestBuilder_Match(t *testing.T) {
	b := NewBuilder()
	tests := []struct {
		role string
		want string
	}{
		{role: "HR Professional", want: "hr professional"},
		{role: "Senior HR Professional", want: "hr professional"},
		{role: "analyst", want: "data analyst"},
		{role: "  Student ", want: "student"},
		{role: "astronaut", want: "generic"},
		{role: "", want: "generic"},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Match(tt.role).Name)
		})
	}
}

func TestBuilder_Build_JobPatternsAndActions(t *testing.T) {
	b := NewBuilder()

	pc := b.Build("HR professional", "Create and manage fillable forms for onboarding and compliance")

	for _, want := range []string{"interactive", "field", "onboarding"} {
		assert.Contains(t, pc.SectionPatterns, want)
	}
	assert.NotContains(t, pc.SectionPatterns, "esign")
	for _, want := range []string{"create", "manage", "fillable", "onboarding", "compliance"} {
		assert.Contains(t, pc.Keywords, want)
	}
}

func TestBuilder_Build_EmptyJob(t *testing.T) {
	b := NewBuilder()

	pc := b.Build("Manager", "")

	profile := b.Match("manager")
	assert.ElementsMatch(t, profile.Keywords, pc.Keywords)
	assert.Equal(t, "manager", pc.CombinedQuery)
	assert.Equal(t, 0.4, pc.Weights.ContextMatch)
}

func TestBuilder_Build_EmptyEverything(t *testing.T) {
	pc := NewBuilder().Build("", "")
	assert.Equal(t, domain.DomainGeneral, pc.Domain)
	assert.Equal(t, "generic", pc.ProfileName)
	assert.Empty(t, pc.CombinedQuery)
	assert.NotEmpty(t, pc.Keywords)
}

func TestRelevanceWeights(t *testing.T) {
	w := relevanceWeights("plan a trip of four days for a group of ten college friends")
	assert.Equal(t, 1.0, w.ExactMatch)
	assert.Equal(t, 0.8, w.KeywordMatch)
	assert.Equal(t, 0.6, w.DomainMatch)
	assert.InDelta(t, 0.48, w.ContextMatch, 1e-9)
}

func TestActionWords(t *testing.T) {
	got := actionWords("Convert scanned documents and send signed files")
	assert.Contains(t, got, "convert")
	assert.Contains(t, got, "send")
	assert.Contains(t, got, "scanned")
	assert.Contains(t, got, "signed")
	assert.Nil(t, actionWords(""))
}

func TestNewBuilder_ExtraProfiles(t *testing.T) {
	b := NewBuilder(
		Profile{Name: "Researcher", Keywords: []string{"lab"}, Domain: domain.DomainResearch},
		Profile{Name: "travel planner", Keywords: []string{"itinerary"}, SectionPatterns: []string{"itinerary"}, Domain: domain.DomainGeneral},
	)

	assert.Equal(t, []string{"lab"}, b.Match("researcher").Keywords)
	assert.Equal(t, "travel planner", b.Match("Travel Planner").Name)

	profiles := b.Profiles()
	assert.Equal(t, "generic", profiles[len(profiles)-1].Name)
	assert.Len(t, profiles, len(builtinProfiles)+2)
}

func TestBuilder_DoesNotShareProfileSlices(t *testing.T) {
	b := NewBuilder()
	profiles := b.Profiles()
	profiles[0].Keywords[0] = "mutated"
	assert.NotEqual(t, "mutated", b.Profiles()[0].Keywords[0])
}

func TestLoadProfiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	content := `profiles:
  - name: Travel Planner
    domain: Unknown
    keywords: [itinerary, hotels, cuisine]
    section_patterns: [itinerary, tips]
  - name: researcher
    domain: research
    keywords: [lab]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	profiles, err := LoadProfiles(path)

	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "travel planner", profiles[0].Name)
	assert.Equal(t, domain.DomainGeneral, profiles[0].Domain)
	assert.Equal(t, []string{"itinerary", "hotels", "cuisine"}, profiles[0].Keywords)
	assert.Equal(t, domain.DomainResearch, profiles[1].Domain)
}

func TestLoadProfiles_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadProfiles(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, ErrProfilesNotFound))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("profiles: [unclosed"), 0o600))
	_, err = LoadProfiles(bad)
	assert.Error(t, err)

	noName := filepath.Join(dir, "noname.yaml")
	require.NoError(t, os.WriteFile(noName, []byte("profiles:\n  - keywords: [a]\n"), 0o600))
	_, err = LoadProfiles(noName)
	assert.Error(t, err)
}
