package scoring

import (
	"math"

	"github.com/jonathan/ats-scorer/internal/parsing"
	"github.com/jonathan/ats-scorer/internal/types"
)

// Contact points.
const (
	emailPoints       = 6.0
	phonePoints       = 5.0
	locationPoints    = 2.0
	profileLinkPoints = 2.0
	// missingContactCap applies when email or phone is absent.
	missingContactCap = 8.0
)

// Formatting points.
const (
	requiredSectionPoints = 4.0
	optionalSectionPoints = 2.0
	optionalSectionCap    = 4.0
	datePatternPoints     = 4.0
)

// Skills adjustments.
const (
	experienceSkillWeight = 0.3
	experienceSkillCap    = 3.0
	softSkillRatio        = 0.4
	softSkillPenalty      = 2.0
	inDemandMinimum       = 3
	inDemandBonus         = 2.0
)

// Experience points.
const (
	quantifiedWeight = 2.0
	quantifiedCap    = 6.0
	jobTitleWeight   = 2.0
	jobTitleCap      = 6.0
)

// Education points.
const (
	degreePoints        = 6.0
	educationBaseline   = 2.0
	certificationPoints = 3.0
	institutionPoints   = 1.0
)

const industryKeywordPoints = 0.8

// skillTiers maps a minimum distinct-skill count to base points, highest first.
var skillTiers = []struct {
	minimum int
	points  float64
}{
	{15, 20},
	{12, 18},
	{8, 15},
	{5, 10},
	{3, 6},
}

const skillTierFloor = 2.0

// actionVerbTiers maps a minimum occurrence count to points, highest first.
var actionVerbTiers = []struct {
	minimum int
	points  float64
}{
	{15, 8},
	{10, 6},
	{5, 4},
}

const actionVerbFloor = 1.0

func scoreContact(text string) types.ContactInfoScore {
	hasEmail := parsing.HasEmail(text)
	hasPhone := parsing.HasPhone(text)
	hasLocation := parsing.HasLocationKeyword(text)
	hasLink := parsing.HasProfessionalLink(text)

	points := 0.0
	if hasEmail {
		points += emailPoints
	}
	if hasPhone {
		points += phonePoints
	}
	if hasLocation {
		points += locationPoints
	}
	if hasLink {
		points += profileLinkPoints
	}

	capped := !hasEmail || !hasPhone
	if capped {
		points = math.Min(points, missingContactCap)
	}

	return types.ContactInfoScore{
		ComponentScore:      component(points, MaxContact, contactStatus),
		HasEmail:            hasEmail,
		HasPhone:            hasPhone,
		HasLocation:         hasLocation,
		HasProfessionalLink: hasLink,
		Capped:              capped,
	}
}

func scoreFormatting(text string, sections parsing.Sections) types.FormattingScore {
	required := []string{}
	for _, name := range parsing.RequiredSections {
		if sections.Found(name) {
			required = append(required, name)
		}
	}
	optional := []string{}
	for _, name := range parsing.OptionalSections {
		if sections.Found(name) {
			optional = append(optional, name)
		}
	}
	hasDates := parsing.HasDatePattern(text)

	points := requiredSectionPoints * float64(len(required))
	points += math.Min(optionalSectionPoints*float64(len(optional)), optionalSectionCap)
	if hasDates {
		points += datePatternPoints
	}

	return types.FormattingScore{
		ComponentScore:        component(points, MaxFormatting, formattingStatus),
		RequiredSectionsFound: required,
		OptionalSectionsFound: optional,
		HasDates:              hasDates,
	}
}

// SkillTierPoints returns the base points for a distinct-skill count.
func SkillTierPoints(count int) float64 {
	for _, tier := range skillTiers {
		if count >= tier.minimum {
			return tier.points
		}
	}
	return skillTierFloor
}

func (s *Scorer) scoreSkills(skillSet []string, experienceText string) types.SkillsScore {
	total := len(skillSet)
	base := SkillTierPoints(total)

	inExperience := s.experienceSkills(skillSet, experienceText)
	bonus := round(math.Min(experienceSkillWeight*float64(inExperience), experienceSkillCap), 2)

	soft, inDemand := 0, 0
	if s.canon != nil {
		lex := s.canon.Lexicon()
		for _, skill := range skillSet {
			if lex.IsSoft(skill) {
				soft++
			}
			if lex.IsInDemand(skill) {
				inDemand++
			}
		}
	}

	penalty := 0.0
	if total > 0 && float64(soft) > softSkillRatio*float64(total) {
		penalty = softSkillPenalty
	}
	demandBonus := 0.0
	if inDemand >= inDemandMinimum {
		demandBonus = inDemandBonus
	}

	points := round(base+bonus-penalty+demandBonus, 2)

	return types.SkillsScore{
		ComponentScore:     component(points, MaxSkills, skillsStatus),
		TotalSkills:        total,
		BaseTierPoints:     base,
		SkillsInExperience: inExperience,
		ExperienceBonus:    bonus,
		SoftSkillCount:     soft,
		SoftSkillPenalty:   penalty,
		InDemandCount:      inDemand,
		InDemandBonus:      demandBonus,
	}
}

// ActionVerbPoints returns the points for an action-verb occurrence count.
func ActionVerbPoints(count int) float64 {
	for _, tier := range actionVerbTiers {
		if count >= tier.minimum {
			return tier.points
		}
	}
	return actionVerbFloor
}

func scoreExperience(text string) types.ExperienceScore {
	verbs := parsing.CountActionVerbs(text)
	quantified := parsing.CountQuantifiedAchievements(text)
	titles := parsing.CountJobTitles(text)

	points := ActionVerbPoints(verbs)
	points += math.Min(quantifiedWeight*float64(quantified), quantifiedCap)
	points += math.Min(jobTitleWeight*float64(titles), jobTitleCap)

	return types.ExperienceScore{
		ComponentScore:         component(points, MaxExperience, experienceStatus),
		ActionVerbCount:        verbs,
		QuantifiedAchievements: quantified,
		JobTitleCount:          titles,
	}
}

func scoreEducation(text string) types.EducationScore {
	hasDegree := parsing.HasDegree(text)
	hasCert := parsing.HasCertification(text)
	hasInstitution := parsing.HasInstitution(text)

	points := educationBaseline
	if hasDegree {
		points = degreePoints
	}
	if hasCert {
		points += certificationPoints
	}
	if hasInstitution {
		points += institutionPoints
	}

	return types.EducationScore{
		ComponentScore:   component(points, MaxEducation, educationStatus),
		HasDegree:        hasDegree,
		HasCertification: hasCert,
		HasInstitution:   hasInstitution,
	}
}

func scoreKeywords(text string) types.KeywordsScore {
	found := parsing.CountIndustryKeywords(text)
	points := round(math.Min(industryKeywordPoints*float64(found), MaxKeywords), 2)

	return types.KeywordsScore{
		ComponentScore:        component(points, MaxKeywords, keywordsStatus),
		IndustryKeywordsFound: found,
	}
}
