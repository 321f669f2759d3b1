package parsing

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Section names recognized in résumé text.
const (
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
	SectionSummary        = "summary"
	SectionAchievements   = "achievements"
	SectionObjective      = "objective"
)

// RequiredSections and OptionalSections drive the formatting component.
var (
	RequiredSections = []string{SectionExperience, SectionEducation, SectionSkills}
	OptionalSections = []string{SectionSummary, SectionProjects, SectionCertifications, SectionAchievements, SectionObjective}
)

// maxHeaderWords bounds how long a line may be and still count as a header.
const maxHeaderWords = 4

var sectionHeaders = map[string]string{
	"experience":                  SectionExperience,
	"work experience":             SectionExperience,
	"professional experience":     SectionExperience,
	"relevant experience":         SectionExperience,
	"employment":                  SectionExperience,
	"employment history":          SectionExperience,
	"work history":                SectionExperience,
	"career history":              SectionExperience,
	"education":                   SectionEducation,
	"academic background":         SectionEducation,
	"academics":                   SectionEducation,
	"education and training":      SectionEducation,
	"skills":                      SectionSkills,
	"technical skills":            SectionSkills,
	"core skills":                 SectionSkills,
	"key skills":                  SectionSkills,
	"skills & abilities":          SectionSkills,
	"core competencies":           SectionSkills,
	"competencies":                SectionSkills,
	"technologies":                SectionSkills,
	"tech stack":                  SectionSkills,
	"projects":                    SectionProjects,
	"personal projects":           SectionProjects,
	"key projects":                SectionProjects,
	"academic projects":           SectionProjects,
	"certifications":              SectionCertifications,
	"certification":               SectionCertifications,
	"certificates":                SectionCertifications,
	"licenses & certifications":   SectionCertifications,
	"licenses and certifications": SectionCertifications,
	"summary":                     SectionSummary,
	"professional summary":        SectionSummary,
	"career summary":              SectionSummary,
	"profile":                     SectionSummary,
	"about me":                    SectionSummary,
	"achievements":                SectionAchievements,
	"accomplishments":             SectionAchievements,
	"awards":                      SectionAchievements,
	"honors":                      SectionAchievements,
	"awards & achievements":       SectionAchievements,
	"objective":                   SectionObjective,
	"career objective":            SectionObjective,
}

var (
	headerSpace      = regexp.MustCompile(`\s+`)
	sentenceBoundary = regexp.MustCompile(`[.!?]+\s+|\n+`)
	yearDigits       = regexp.MustCompile(`(?:19|20)\d{2}`)
)

// Sections maps a section name to the lines that followed its header.
// A header seen with no content maps to "".
type Sections map[string]string

// Found reports whether a header for name was present.
func (s Sections) Found(name string) bool {
	_, ok := s[name]
	return ok
}

// Text returns the content of a section, or "" when it is absent.
func (s Sections) Text(name string) string {
	return s[name]
}

// Joined concatenates every section's content in name order.
func (s Sections) Joined() string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		if s[name] != "" {
			parts = append(parts, s[name])
		}
	}
	return strings.Join(parts, "\n")
}

// DetectHeader returns the section a line introduces plus any inline content
// after a colon ("Skills: Go, Python"). ok is false for ordinary lines.
func DetectHeader(line string) (section, inline string, ok bool) {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimLeft(trimmed, "#=*_ ")
	trimmed = strings.TrimRight(trimmed, "=*_ ")

	head := trimmed
	if i := strings.Index(trimmed, ":"); i >= 0 {
		head = trimmed[:i]
		inline = strings.TrimSpace(trimmed[i+1:])
	}

	key := strings.ToLower(headerSpace.ReplaceAllString(strings.TrimSpace(head), " "))
	if key == "" || len(strings.Fields(key)) > maxHeaderWords {
		return "", "", false
	}
	section, ok = sectionHeaders[key]
	if !ok {
		return "", "", false
	}
	return section, inline, true
}

// ExtractSections splits text at recognized headers. Each section holds the
// text up to the next header; repeated headers append to the same section.
func ExtractSections(text string) Sections {
	sections := Sections{}
	current := ""
	var buf []string

	flush := func() {
		if current == "" {
			return
		}
		body := strings.TrimSpace(strings.Join(buf, "\n"))
		if prev := sections[current]; prev != "" && body != "" {
			body = prev + "\n" + body
		} else if prev != "" {
			body = prev
		}
		sections[current] = body
	}

	for _, line := range strings.Split(text, "\n") {
		if section, inline, ok := DetectHeader(line); ok {
			flush()
			current = section
			buf = buf[:0]
			if inline != "" {
				buf = append(buf, inline)
			}
			continue
		}
		if current != "" {
			buf = append(buf, line)
		}
	}
	flush()

	return sections
}

// CountWords returns the number of whitespace-delimited tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountSentences returns the number of non-empty segments between sentence
// terminators and line breaks.
func CountSentences(text string) int {
	count := 0
	for _, segment := range sentenceBoundary.Split(text, -1) {
		if strings.TrimSpace(segment) != "" {
			count++
		}
	}
	return count
}

// YearsOfExperience returns max(year)-min(year) over every four-digit year in
// the date mentions, or 0 when fewer than two distinct years are present.
func YearsOfExperience(dates []string) float64 {
	distinct := make(map[int]bool)
	for _, d := range dates {
		for _, y := range yearDigits.FindAllString(d, -1) {
			year, err := strconv.Atoi(y)
			if err == nil {
				distinct[year] = true
			}
		}
	}
	if len(distinct) < 2 {
		return 0
	}
	minYear, maxYear := 0, 0
	first := true
	for y := range distinct {
		if first || y < minYear {
			minYear = y
		}
		if first || y > maxYear {
			maxYear = y
		}
		first = false
	}
	return float64(maxYear - minYear)
}
