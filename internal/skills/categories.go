package skills

import "github.com/jonathan/ats-scorer/internal/lexicon"

// Categorize partitions canonical skills by lexicon category. Every category
// key is present; skill order follows the input order.
func (c *Canonicalizer) Categorize(skills []string) map[string][]string {
	out := map[string][]string{
		lexicon.CategoryProgramming:   {},
		lexicon.CategoryFrameworks:    {},
		lexicon.CategoryDatabases:     {},
		lexicon.CategoryCloudDevOps:   {},
		lexicon.CategoryMLAI:          {},
		lexicon.CategoryMethodologies: {},
		lexicon.CategorySoft:          {},
		lexicon.CategoryTools:         {},
	}
	for _, skill := range skills {
		category := c.lex.Category(skill)
		out[category] = append(out[category], skill)
	}
	return out
}

// CategoryCounts returns the size of each partition produced by Categorize.
func (c *Canonicalizer) CategoryCounts(skills []string) map[string]int {
	counts := make(map[string]int)
	for category, members := range c.Categorize(skills) {
		counts[category] = len(members)
	}
	return counts
}
