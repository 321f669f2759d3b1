// Package features turns entities, skills, and similarity output into the
// fixed-order numeric vector consumed by the regression collaborator.
package features

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/jonathan/ats-scorer/internal/lexicon"
	"github.com/jonathan/ats-scorer/internal/parsing"
	"github.com/jonathan/ats-scorer/internal/types"
)

// Feature names in vector order. Position and name are both part of the
// model contract.
const (
	HasName              = "has_name"
	HasEmail             = "has_email"
	HasPhone             = "has_phone"
	HasLocation          = "has_location"
	WordCount            = "word_count"
	WordCountNormalized  = "word_count_normalized"
	SentenceCount        = "sentence_count"
	HasExperienceSection = "has_experience_section"
	HasEducationSection  = "has_education_section"
	HasSkillsSection     = "has_skills_section"
	HasProjectsSection   = "has_projects_section"
	YearsOfExperience    = "years_of_experience"
	OrganizationCount    = "organization_count"
	TotalSkills          = "total_skills"
	SkillDensity         = "skill_density"
	ProgrammingSkills    = "programming_skills_count"
	FrameworkSkills      = "framework_skills_count"
	DatabaseSkills       = "database_skills_count"
	CloudSkills          = "cloud_skills_count"
	SkillMatchPercentage = "skill_match_percentage"
	MatchedSkillsCount   = "matched_skills_count"
	MissingSkillsCount   = "missing_skills_count"
	SkillMatchRatio      = "skill_match_ratio"
	ActionVerbCount      = "action_verb_count"
	HasBulletPoints      = "has_bullet_points"
	ProperCapitalization = "proper_capitalization"
)

var names = []string{
	HasName, HasEmail, HasPhone, HasLocation,
	WordCount, WordCountNormalized, SentenceCount,
	HasExperienceSection, HasEducationSection, HasSkillsSection, HasProjectsSection,
	YearsOfExperience, OrganizationCount,
	TotalSkills, SkillDensity,
	ProgrammingSkills, FrameworkSkills, DatabaseSkills, CloudSkills,
	SkillMatchPercentage, MatchedSkillsCount, MissingSkillsCount, SkillMatchRatio,
	ActionVerbCount, HasBulletPoints, ProperCapitalization,
}

// Count is the length of every Vector.
const Count = 26

// bulletGlyphs mark list formatting in section text.
var bulletGlyphs = []string{"•", "·", "-", "*", "→"}

// Names returns the feature names in vector order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Index returns the position of a feature name, or -1.
func Index(name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// Vector is an ordered, named feature vector.
type Vector struct {
	values [Count]float64
}

// Values returns the raw values in order.
func (v Vector) Values() []float64 {
	out := make([]float64, Count)
	copy(out, v.values[:])
	return out
}

// FromValues builds a Vector from raw values in vector order.
func FromValues(values []float64) (Vector, error) {
	var v Vector
	if len(values) != Count {
		return v, fmt.Errorf("expected %d feature values, got %d", Count, len(values))
	}
	copy(v.values[:], values)
	return v, nil
}

// Get returns the value of a named feature, or 0 for an unknown name.
func (v Vector) Get(name string) float64 {
	if i := Index(name); i >= 0 {
		return v.values[i]
	}
	return 0
}

// Named returns the vector as name/value pairs for reporting.
func (v Vector) Named() []types.Feature {
	out := make([]types.Feature, Count)
	for i, n := range names {
		out[i] = types.Feature{Name: n, Value: v.values[i]}
	}
	return out
}

func (v *Vector) set(name string, value float64) {
	v.values[Index(name)] = value
}

// Input collects everything the vector is derived from.
type Input struct {
	Text           string
	Entities       types.ExtractedEntities
	Sections       parsing.Sections
	Skills         []string
	CategoryCounts map[string]int
	Similarity     *types.SimilarityResult
}

// Build derives the feature vector. It is a pure function of its input.
func Build(in Input) Vector {
	var v Vector

	v.set(HasName, flag(in.Entities.PrimaryName() != ""))
	v.set(HasEmail, flag(len(in.Entities.Emails) > 0))
	v.set(HasPhone, flag(len(in.Entities.Phones) > 0))
	v.set(HasLocation, flag(len(in.Entities.Locations) > 0))

	words := float64(parsing.CountWords(in.Text))
	v.set(WordCount, words)
	v.set(WordCountNormalized, math.Min(words/1000.0, 1.0))
	v.set(SentenceCount, float64(parsing.CountSentences(in.Text)))

	v.set(HasExperienceSection, flag(in.Sections.Text(parsing.SectionExperience) != ""))
	v.set(HasEducationSection, flag(in.Sections.Text(parsing.SectionEducation) != ""))
	v.set(HasSkillsSection, flag(in.Sections.Text(parsing.SectionSkills) != ""))
	v.set(HasProjectsSection, flag(in.Sections.Text(parsing.SectionProjects) != ""))

	v.set(YearsOfExperience, parsing.YearsOfExperience(in.Entities.Dates))
	v.set(OrganizationCount, float64(in.Entities.DistinctOrganizations()))

	total := float64(len(in.Skills))
	v.set(TotalSkills, total)
	v.set(SkillDensity, total/math.Max(words, 1))
	v.set(ProgrammingSkills, float64(in.CategoryCounts[lexicon.CategoryProgramming]))
	v.set(FrameworkSkills, float64(in.CategoryCounts[lexicon.CategoryFrameworks]))
	v.set(DatabaseSkills, float64(in.CategoryCounts[lexicon.CategoryDatabases]))
	v.set(CloudSkills, float64(in.CategoryCounts[lexicon.CategoryCloudDevOps]))

	if s := in.Similarity; s != nil {
		required := math.Max(float64(s.TotalRequired), 1)
		matched := float64(s.MatchCount)
		if s.TotalRequired > 0 {
			v.set(SkillMatchPercentage, 100*matched/required)
		}
		v.set(MatchedSkillsCount, matched)
		v.set(MissingSkillsCount, float64(len(s.MissingSkills)))
		v.set(SkillMatchRatio, matched/required)
	}

	sectionText := in.Sections.Joined()
	v.set(ActionVerbCount, float64(parsing.CountActionVerbs(sectionText)))
	v.set(HasBulletPoints, flag(HasBullets(sectionText)))
	v.set(ProperCapitalization, flag(ProperlyCapitalized(in.Entities.PrimaryName())))

	return v
}

// HasBullets reports whether any bullet glyph appears in text.
func HasBullets(text string) bool {
	for _, g := range bulletGlyphs {
		if strings.Contains(text, g) {
			return true
		}
	}
	return false
}

// ProperlyCapitalized reports whether every token of name starts uppercase.
// An empty name is not properly capitalized.
func ProperlyCapitalized(name string) bool {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return false
	}
	for _, token := range tokens {
		first := []rune(token)[0]
		if !unicode.IsUpper(first) {
			return false
		}
	}
	return true
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
