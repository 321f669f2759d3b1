package skills

import "strings"

// NormalizeTargets prepares a caller-supplied target skill list for
// similarity matching. Entries are trimmed, folded to canonical names when
// the lexicon knows them, and deduplicated case-insensitively keeping the
// first occurrence. A nil Canonicalizer skips alias folding.
func NormalizeTargets(targets []string, c *Canonicalizer) []string {
	seen := make(map[string]bool, len(targets))
	out := make([]string, 0, len(targets))

	for _, target := range targets {
		name := strings.TrimSpace(target)
		if name == "" {
			continue
		}
		if c != nil {
			name = c.CanonicalName(name)
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}

	return out
}
