package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

// Recommendation triggers.
const (
	contactTrigger     = 12.0
	skillsTrigger      = 15.0
	experienceTrigger  = 12.0
	formattingTrigger  = 14.0
	wordCountTrigger   = 300
	quantifiedTrigger  = 3
	maxGapSkillsListed = 5
)

// Recommend evaluates every rule in a fixed order. Rules fire independently,
// so one category may appear more than once.
func Recommend(r Result, skillCount int, skillGaps []string) []types.Recommendation {
	recs := []types.Recommendation{}
	b := r.Breakdown

	if b.ContactInfo.PointsEarned < contactTrigger {
		recs = append(recs, types.Recommendation{
			Category: "Contact Information",
			Priority: types.PriorityCritical,
			Message:  "Add complete contact details: a professional email, a phone number, your location and a LinkedIn or GitHub profile link",
		})
	}
	if b.Skills.PointsEarned < skillsTrigger {
		recs = append(recs, types.Recommendation{
			Category: "Skills",
			Priority: types.PriorityHigh,
			Message:  fmt.Sprintf("Add more relevant technical skills (currently %d, aim for at least 12 distinct skills)", skillCount),
		})
	}
	if b.Experience.PointsEarned < experienceTrigger {
		recs = append(recs, types.Recommendation{
			Category: "Experience",
			Priority: types.PriorityHigh,
			Message:  "Start each experience bullet with an action verb and quantify the outcome with numbers, percentages or amounts",
		})
	}
	if b.Formatting.PointsEarned < formattingTrigger {
		recs = append(recs, types.Recommendation{
			Category: "Formatting",
			Priority: types.PriorityMedium,
			Message:  "Use standard section headers (Experience, Education, Skills) and include dates for every role",
		})
	}
	if r.WordCount < wordCountTrigger {
		recs = append(recs, types.Recommendation{
			Category: "Content Length",
			Priority: types.PriorityMedium,
			Message:  fmt.Sprintf("Expand your resume content (currently %d words, aim for 350-600)", r.WordCount),
		})
	}
	if b.Experience.QuantifiedAchievements < quantifiedTrigger {
		recs = append(recs, types.Recommendation{
			Category: "Experience",
			Priority: types.PriorityHigh,
			Message:  "Add measurable achievements such as revenue impact, performance gains or team size",
		})
	}
	if len(skillGaps) > 0 {
		listed := skillGaps
		if len(listed) > maxGapSkillsListed {
			listed = listed[:maxGapSkillsListed]
		}
		recs = append(recs, types.Recommendation{
			Category: "Skill Gaps",
			Priority: types.PriorityHigh,
			Message:  "Develop these skills: " + strings.Join(listed, ", "),
		})
	}

	return recs
}
