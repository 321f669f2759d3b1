// Package parsing holds the pure text predicates the scorer and the feature
// engineer are built from. Every function is deterministic and safe for
// concurrent use; patterns are compiled once at package init.
package parsing

import (
	"regexp"
	"sort"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`[\+\(]?[1-9][0-9 .\-\(\)]{8,}[0-9]`)
	urlPattern   = regexp.MustCompile(`https?://[^\s<>"')\]]+`)

	locationKeywordPattern  = regexp.MustCompile(`(?i)\b(?:city|state|country|road|street|lane|zip|pincode)\b`)
	professionalLinkPattern = regexp.MustCompile(`(?i)(?:linkedin\.com/in/|github\.com/|gitlab\.com/|behance\.net/|dribbble\.com/)`)

	monthYearPattern   = regexp.MustCompile(`(?i)\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+(?:19|20)\d{2}\b`)
	numericDatePattern = regexp.MustCompile(`\b(?:0?[1-9]|1[0-2])[/-](?:19|20)\d{2}\b`)
	yearRangePattern   = regexp.MustCompile(`(?i)\b((?:19|20)\d{2})\s*(?:-|to)\s*((?:19|20)\d{2}|present|current)\b`)
	presentPattern     = regexp.MustCompile(`(?i)\b(?:present|current)\b`)

	// Bare years only count in a date context: after "since", or closing
	// a line after a separator ("B.S., 2016", "Acme | 2019").
	sinceYearPattern   = regexp.MustCompile(`(?i)\bsince\s+((?:19|20)\d{2})\b`)
	lineEndYearPattern = regexp.MustCompile(`(?m)[,|(\-]\s*((?:19|20)\d{2})\)?[ \t]*$`)

	quantifiedPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d+(?:\.\d+)?\s*%`),
		regexp.MustCompile(`(?i)\$\s?\d[\d,]*(?:\.\d+)?\s*[kmb]?\b`),
		regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?x\b`),
		regexp.MustCompile(`(?i)\b\d[\d,]*\+?\s+(?:users|customers|clients|people|engineers|members|projects|applications|services|requests|transactions|countries|teams|hours|downloads)\b`),
	}
)

// ActionVerbs are the achievement verbs counted by the experience component
// and the action_verb_count feature.
var ActionVerbs = []string{
	"achieved", "improved", "developed", "managed", "led",
	"created", "designed", "implemented", "optimized", "increased",
	"reduced", "delivered", "launched", "built", "established",
	"coordinated", "executed", "initiated", "streamlined", "transformed",
}

// JobTitleKeywords are counted distinctly by the experience component.
var JobTitleKeywords = []string{
	"engineer", "developer", "manager", "analyst", "architect",
	"consultant", "designer", "intern", "lead", "director",
	"scientist", "administrator", "specialist", "coordinator",
}

// IndustryKeywords are counted distinctly by the keywords component.
var IndustryKeywords = []string{
	"agile", "api", "cloud", "database", "testing", "deployment",
	"architecture", "scalability", "performance", "security", "automation",
	"analytics", "optimization", "integration", "devops", "stakeholder",
	"cross-functional", "roadmap", "data pipeline", "full stack",
	"production", "monitoring",
}

var (
	degreePattern        = keywordPattern([]string{"bachelor", "bachelors", "bachelor's", "master", "masters", "master's", "phd", "ph.d", "doctorate", "mba", "bsc", "msc", "b.sc", "m.sc", "btech", "mtech", "b.tech", "m.tech", "b.s.", "m.s.", "b.e.", "m.e.", "b.a.", "m.a.", "associate degree", "diploma"})
	certificationPattern = keywordPattern([]string{"certified", "certification", "certifications", "certificate", "certificates", "pmp", "cissp", "ccna", "ccnp", "comptia", "cpa", "cfa"})
	institutionPattern   = keywordPattern([]string{"university", "college", "institute", "school", "academy", "polytechnic"})

	actionVerbPatterns = wordPatterns(ActionVerbs)
	jobTitlePatterns   = pluralWordPatterns(JobTitleKeywords)
	industryPatterns   = pluralWordPatterns(IndustryKeywords)
)

// keywordPattern matches any keyword starting at a word boundary. Keywords
// ending in a letter must also end at a word boundary.
func keywordPattern(keywords []string) *regexp.Regexp {
	alternatives := make([]string, 0, len(keywords))
	for _, k := range keywords {
		alt := regexp.QuoteMeta(k)
		if last := k[len(k)-1]; last >= 'a' && last <= 'z' {
			alt += `\b`
		}
		alternatives = append(alternatives, alt)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(alternatives, "|") + `)`)
}

func wordPatterns(words []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return out
}

func pluralWordPatterns(words []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		body := strings.ReplaceAll(regexp.QuoteMeta(w), " ", `[\s\-]+`)
		out[i] = regexp.MustCompile(`(?i)\b` + body + `s?\b`)
	}
	return out
}

// FindEmails returns email addresses in discovery order.
func FindEmails(text string) []string {
	return emailPattern.FindAllString(text, -1)
}

// HasEmail reports whether text contains an email address.
func HasEmail(text string) bool {
	return emailPattern.MatchString(text)
}

// FindPhones returns phone-number candidates carrying 10 to 15 digits.
func FindPhones(text string) []string {
	var phones []string
	for _, match := range phonePattern.FindAllString(text, -1) {
		for _, candidate := range splitPhoneCandidate(match) {
			if n := countDigits(candidate); n >= minPhoneDigits && n <= maxPhoneDigits {
				phones = append(phones, strings.TrimSpace(candidate))
			}
		}
	}
	return phones
}

const (
	minPhoneDigits = 10
	maxPhoneDigits = 15
)

// splitPhoneCandidate separates a match that ran past a phone number on the
// same line ("555-123-4567 2019 - 2022"): year ranges are cut out first,
// then whitespace-separated pieces are tried on their own.
func splitPhoneCandidate(match string) []string {
	if countDigits(match) <= maxPhoneDigits {
		return []string{match}
	}
	if loc := yearRangePattern.FindStringIndex(match); loc != nil {
		return append(splitPhoneCandidate(match[:loc[0]]), splitPhoneCandidate(match[loc[1]:])...)
	}
	return strings.Fields(match)
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// HasPhone reports whether text contains a phone number.
func HasPhone(text string) bool {
	return len(FindPhones(text)) > 0
}

// FindURLs returns http(s) URLs in discovery order, trailing punctuation trimmed.
func FindURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	for i, m := range matches {
		matches[i] = strings.TrimRight(m, ".,;:")
	}
	return matches
}

// HasLocationKeyword reports an address word such as "city" or "street".
func HasLocationKeyword(text string) bool {
	return locationKeywordPattern.MatchString(text)
}

// HasProfessionalLink reports a LinkedIn, GitHub, GitLab, Behance or Dribbble profile link.
func HasProfessionalLink(text string) bool {
	return professionalLinkPattern.MatchString(text)
}

// HasDatePattern reports a month-name date, an MM-YYYY date, a year range,
// or the words "present"/"current".
func HasDatePattern(text string) bool {
	return monthYearPattern.MatchString(text) ||
		numericDatePattern.MatchString(text) ||
		yearRangePattern.MatchString(text) ||
		presentPattern.MatchString(text)
}

// FindDateMentions returns date mentions in discovery order: month-name
// dates, MM/YYYY dates, and years that open or close a range, follow
// "since", or end a line after a separator. Numbers such as "2000 requests"
// are not dates. A year inside a longer mention is not reported twice.
func FindDateMentions(text string) []string {
	var found []span
	add := func(start, end int) {
		for _, f := range found {
			if start >= f.start && end <= f.end {
				return
			}
		}
		found = append(found, span{start, end})
	}

	for _, loc := range monthYearPattern.FindAllStringIndex(text, -1) {
		add(loc[0], loc[1])
	}
	for _, loc := range numericDatePattern.FindAllStringIndex(text, -1) {
		add(loc[0], loc[1])
	}
	for _, loc := range yearRangePattern.FindAllStringSubmatchIndex(text, -1) {
		add(loc[2], loc[3])
		if end := text[loc[4]:loc[5]]; yearDigitsOnly(end) {
			add(loc[4], loc[5])
		}
	}
	for _, p := range []*regexp.Regexp{sinceYearPattern, lineEndYearPattern} {
		for _, loc := range p.FindAllStringSubmatchIndex(text, -1) {
			add(loc[2], loc[3])
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].start < found[j].start })
	out := make([]string, 0, len(found))
	for _, f := range found {
		out = append(out, text[f.start:f.end])
	}
	return out
}

type span struct{ start, end int }

func yearDigitsOnly(s string) bool {
	return countDigits(s) == len(s)
}

// CountQuantifiedAchievements sums matches of the percentage, currency,
// multiplier and counted-unit patterns.
func CountQuantifiedAchievements(text string) int {
	total := 0
	for _, p := range quantifiedPatterns {
		total += len(p.FindAllStringIndex(text, -1))
	}
	return total
}

// CountActionVerbs sums whole-word occurrences of every action verb.
func CountActionVerbs(text string) int {
	total := 0
	for _, p := range actionVerbPatterns {
		total += len(p.FindAllStringIndex(text, -1))
	}
	return total
}

// CountJobTitles returns how many distinct job-title keywords appear.
func CountJobTitles(text string) int {
	return countDistinct(jobTitlePatterns, text)
}

// CountIndustryKeywords returns how many distinct industry keywords appear.
func CountIndustryKeywords(text string) int {
	return countDistinct(industryPatterns, text)
}

// HasDegree reports a degree keyword.
func HasDegree(text string) bool {
	return degreePattern.MatchString(text)
}

// HasCertification reports a certification keyword.
func HasCertification(text string) bool {
	return certificationPattern.MatchString(text)
}

// HasInstitution reports an educational institution keyword.
func HasInstitution(text string) bool {
	return institutionPattern.MatchString(text)
}

func countDistinct(patterns []*regexp.Regexp, text string) int {
	count := 0
	for _, p := range patterns {
		if p.MatchString(text) {
			count++
		}
	}
	return count
}

