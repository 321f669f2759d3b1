// Package types provides type definitions for structured data used throughout the ats-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Match types reported for a target skill.
const (
	MatchExact   = "exact"
	MatchSimilar = "similar"
)

// SkillMatch pairs a target skill with its best résumé skill.
type SkillMatch struct {
	JobSkill    string  `json:"job_skill"`
	ResumeSkill string  `json:"resume_skill"`
	Similarity  float64 `json:"similarity"`
	MatchType   string  `json:"match_type"`
}

// SimilarityResult summarizes how well résumé skills cover a target list.
type SimilarityResult struct {
	OverallSimilarity float64      `json:"overall_similarity"` // 0-100
	MatchedSkills     []string     `json:"matched_skills"`
	MissingSkills     []string     `json:"missing_skills"`
	SkillMatches      []SkillMatch `json:"skill_matches"`
	MatchCount        int          `json:"match_count"`
	TotalRequired     int          `json:"total_required"`
	// TextSimilarity compares the whole résumé with a job description; 0
	// when none was given.
	TextSimilarity    float64      `json:"text_similarity"`
}

// EmptySimilarity is the zero-match result used when no target list was given.
func EmptySimilarity() SimilarityResult {
	return SimilarityResult{
		MatchedSkills: []string{},
		MissingSkills: []string{},
		SkillMatches:  []SkillMatch{},
	}
}

// NoMatches reports every target as missing.
func NoMatches(targets []string) SimilarityResult {
	r := EmptySimilarity()
	r.MissingSkills = append(r.MissingSkills, targets...)
	r.TotalRequired = len(targets)
	return r
}
