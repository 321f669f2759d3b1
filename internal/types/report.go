// Package types provides type definitions for structured data used throughout the ats-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Grades
const (
	GradeExcellent        = "Excellent"
	GradeGood             = "Good"
	GradeFair             = "Fair"
	GradeNeedsImprovement = "Needs Improvement"
)

// Recommendation priorities
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
)

// Relevance sources reported in the ensemble block.
const (
	RelevanceTrainedModel      = "trained_model"
	RelevanceHeuristicFallback = "heuristic_fallback"
)

// ComponentScore is the part every breakdown entry shares.
type ComponentScore struct {
	PointsEarned float64 `json:"points_earned" validate:"gte=0,ltefield=MaxPoints"`
	MaxPoints    float64 `json:"max_points" validate:"gt=0"`
	Percentage   float64 `json:"percentage" validate:"gte=0,lte=100"`
	Status       string  `json:"status" validate:"required"`
}

// ContactInfoScore is the contact component (max 15).
type ContactInfoScore struct {
	ComponentScore
	HasEmail            bool `json:"has_email"`
	HasPhone            bool `json:"has_phone"`
	HasLocation         bool `json:"has_location"`
	HasProfessionalLink bool `json:"has_professional_link"`
	Capped              bool `json:"capped"`
}

// FormattingScore is the formatting component (max 20).
type FormattingScore struct {
	ComponentScore
	RequiredSectionsFound []string `json:"required_sections_found"`
	OptionalSectionsFound []string `json:"optional_sections_found"`
	HasDates              bool     `json:"has_dates"`
}

// SkillsScore is the skills component (max 25).
type SkillsScore struct {
	ComponentScore
	TotalSkills        int     `json:"total_skills"`
	BaseTierPoints     float64 `json:"base_tier_points"`
	SkillsInExperience int     `json:"skills_in_experience"`
	ExperienceBonus    float64 `json:"experience_bonus"`
	SoftSkillCount     int     `json:"soft_skill_count"`
	SoftSkillPenalty   float64 `json:"soft_skill_penalty"`
	InDemandCount      int     `json:"in_demand_count"`
	InDemandBonus      float64 `json:"in_demand_bonus"`
}

// ExperienceScore is the experience component (max 20).
type ExperienceScore struct {
	ComponentScore
	ActionVerbCount        int `json:"action_verb_count"`
	QuantifiedAchievements int `json:"quantified_achievements"`
	JobTitleCount          int `json:"job_title_count"`
}

// EducationScore is the education component (max 10).
type EducationScore struct {
	ComponentScore
	HasDegree        bool `json:"has_degree"`
	HasCertification bool `json:"has_certification"`
	HasInstitution   bool `json:"has_institution"`
}

// KeywordsScore is the keywords component (max 10).
type KeywordsScore struct {
	ComponentScore
	IndustryKeywordsFound int `json:"industry_keywords_found"`
}

// ScoreBreakdown holds one typed record per scoring component.
type ScoreBreakdown struct {
	ContactInfo ContactInfoScore `json:"contact_info"`
	Formatting  FormattingScore  `json:"formatting"`
	Skills      SkillsScore      `json:"skills"`
	Experience  ExperienceScore  `json:"experience"`
	Education   EducationScore   `json:"education"`
	Keywords    KeywordsScore    `json:"keywords"`
}

// RawTotal sums the six components.
func (b ScoreBreakdown) RawTotal() float64 {
	return b.ContactInfo.PointsEarned +
		b.Formatting.PointsEarned +
		b.Skills.PointsEarned +
		b.Experience.PointsEarned +
		b.Education.PointsEarned +
		b.Keywords.PointsEarned
}

// Recommendation is one improvement suggestion.
type Recommendation struct {
	Category string `json:"category" validate:"required"`
	Priority string `json:"priority" validate:"oneof=critical high medium"`
	Message  string `json:"message" validate:"required"`
}

// EnsembleScore reports the blended relevance score and its inputs.
type EnsembleScore struct {
	RelevanceScore       float64 `json:"relevance_score" validate:"gte=0,lte=100"`
	RelevanceSource      string  `json:"relevance_source" validate:"oneof=trained_model heuristic_fallback"`
	SkillMatchPercentage float64 `json:"skill_match_percentage" validate:"gte=0,lte=100"`
	Completeness         float64 `json:"completeness" validate:"gte=0,lte=100"`
	CombinedScore        float64 `json:"combined_score" validate:"gte=0,lte=100"`
}

// Feature is one named entry of the feature vector.
type Feature struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// FinalReport is the result of scoring one document.
type FinalReport struct {
	RequestID         string              `json:"request_id,omitempty"`
	FinalATSScore     float64             `json:"final_ats_score" validate:"gte=0,lte=100"`
	Grade             string              `json:"grade" validate:"required"`
	RawScore          float64             `json:"raw_score" validate:"gte=0,lte=100"`
	QualityMultiplier float64             `json:"quality_multiplier" validate:"gt=0,lte=1"`
	WordCount         int                 `json:"word_count" validate:"gte=0"`
	ScoreBreakdown    ScoreBreakdown      `json:"score_breakdown"`
	ExtractedSkills   []string            `json:"extracted_skills"`
	SkillCount        int                 `json:"skill_count"`
	CategorizedSkills map[string][]string `json:"categorized_skills"`
	SkillGaps         []string            `json:"skill_gaps"`
	SkillMatch        SimilarityResult    `json:"skill_match"`
	Entities          ExtractedEntities   `json:"entities"`
	Ensemble          EnsembleScore       `json:"ensemble"`
	Features          []Feature           `json:"features"`
	Recommendations   []Recommendation    `json:"recommendations" validate:"dive"`
}

// Validate checks the numeric ranges and enumerations of the report.
func (r *FinalReport) Validate() error {
	return validator.New().Struct(r)
}

func countDistinctFold(values []string) int {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if key != "" {
			seen[key] = true
		}
	}
	return len(seen)
}
