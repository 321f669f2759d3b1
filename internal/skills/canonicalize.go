// Package skills detects professional skills in résumé text and folds every
// mention onto one canonical name.
package skills

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/ats-scorer/internal/lexicon"
)

// separatorClass is the set of characters that may bound a multi-character
// entry in the text.
const separatorClass = `[\s,.\-()\[\]{}]`

// dottedRewrites folds single-word "X.js" product names to their bare form.
// Keys are lowercase.
var dottedRewrites = map[string]string{
	"vue.js":     "Vue",
	"react.js":   "React",
	"express.js": "Express",
	"ember.js":   "Ember",
}

// keepDotted lists compound product names that keep their suffix.
var keepDotted = map[string]bool{
	"node.js": true,
	"next.js": true,
	"nuxt.js": true,
}

// matcher pairs a compiled pattern with the canonical name it contributes.
type matcher struct {
	pattern   *regexp.Regexp
	canonical string
}

// Canonicalizer matches lexicon skills and aliases in normalized text.
// It is read-only after construction and safe for concurrent use.
type Canonicalizer struct {
	lex          *lexicon.Lexicon
	matchers     []matcher
	known        map[string]string   // lower(name or alias) -> canonical
	implications map[string][]string // parent -> lower(children)
	parents      []string
}

// NewCanonicalizer compiles one pattern per lexicon skill and alias.
func NewCanonicalizer(lex *lexicon.Lexicon) *Canonicalizer {
	c := &Canonicalizer{
		lex:          lex,
		known:        make(map[string]string),
		implications: make(map[string][]string),
	}

	for _, skill := range lex.Skills() {
		canonical := RewriteCanonical(skill)
		c.matchers = append(c.matchers, matcher{pattern: EntryPattern(skill), canonical: canonical})
		c.known[strings.ToLower(skill)] = canonical
	}

	aliases := lex.Aliases()
	aliasKeys := make([]string, 0, len(aliases))
	for alias := range aliases {
		aliasKeys = append(aliasKeys, alias)
	}
	sort.Strings(aliasKeys)
	for _, alias := range aliasKeys {
		canonical := RewriteCanonical(aliases[alias])
		c.matchers = append(c.matchers, matcher{pattern: EntryPattern(alias), canonical: canonical})
		if _, exists := c.known[alias]; !exists {
			c.known[alias] = canonical
		}
	}

	for parent, children := range lex.Implications() {
		parent = RewriteCanonical(parent)
		lowered := make([]string, 0, len(children))
		for _, child := range children {
			lowered = append(lowered, strings.ToLower(RewriteCanonical(child)))
		}
		c.implications[parent] = lowered
		c.parents = append(c.parents, parent)
	}
	sort.Strings(c.parents)

	return c
}

// Lexicon returns the vocabulary the canonicalizer was built from.
func (c *Canonicalizer) Lexicon() *lexicon.Lexicon {
	return c.lex
}

// Extract returns the sorted canonical skills found in normalized text,
// including parents implied by a present child.
func (c *Canonicalizer) Extract(normalized string) []string {
	return c.extract(normalized, true)
}

// ExtractDirect is Extract without implication inference: only skills
// literally mentioned (directly or through an alias) are returned.
func (c *Canonicalizer) ExtractDirect(normalized string) []string {
	return c.extract(normalized, false)
}

func (c *Canonicalizer) extract(normalized string, implied bool) []string {
	if strings.TrimSpace(normalized) == "" {
		return []string{}
	}

	found := make(map[string]string)
	for _, m := range c.matchers {
		if m.pattern.MatchString(normalized) {
			add(found, m.canonical)
		}
	}

	if implied {
		c.applyImplications(found)
	}

	result := make([]string, 0, len(found))
	for _, name := range found {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// applyImplications adds parents of present children until nothing changes.
func (c *Canonicalizer) applyImplications(found map[string]string) {
	for changed := true; changed; {
		changed = false
		for _, parent := range c.parents {
			if _, present := found[strings.ToLower(parent)]; present {
				continue
			}
			for _, child := range c.implications[parent] {
				if _, present := found[child]; present {
					add(found, parent)
					changed = true
					break
				}
			}
		}
	}
}

// CanonicalName folds an exact skill or alias spelling to its canonical name.
// Unknown names are returned trimmed.
func (c *Canonicalizer) CanonicalName(name string) string {
	trimmed := strings.TrimSpace(name)
	if canonical, ok := c.known[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

func add(found map[string]string, name string) {
	key := strings.ToLower(name)
	if _, exists := found[key]; !exists {
		found[key] = name
	}
}

// RewriteCanonical applies the dotted-name exception table.
func RewriteCanonical(name string) string {
	key := strings.ToLower(name)
	if keepDotted[key] {
		return name
	}
	if bare, ok := dottedRewrites[key]; ok {
		return bare
	}
	return name
}

// EntryPattern builds the case-insensitive pattern for one lexicon entry.
//
// Entries whose alphanumeric core is at most two characters ("C", "R", "Go")
// must be bounded by non-alphanumeric characters or the string edges. Longer
// entries are bounded by the separator class or the string edges, and each
// run of internal whitespace may match any run of whitespace, hyphens, or
// underscores.
func EntryPattern(entry string) *regexp.Regexp {
	entry = strings.ToLower(strings.TrimSpace(entry))
	if IsShortEntry(entry) {
		return regexp.MustCompile(`(?i)(?:^|[^a-z0-9])` + regexp.QuoteMeta(entry) + `(?:$|[^a-z0-9])`)
	}

	tokens := strings.Fields(entry)
	for i, token := range tokens {
		tokens[i] = regexp.QuoteMeta(token)
	}
	body := strings.Join(tokens, `[\s\-_]+`)
	return regexp.MustCompile(`(?i)(?:^|` + separatorClass + `)` + body + `(?:$|` + separatorClass + `)`)
}

// IsShortEntry reports whether entry has at most two alphanumeric characters
// once '+', '#' and '.' are removed.
func IsShortEntry(entry string) bool {
	count := 0
	for _, r := range entry {
		if r == '+' || r == '#' || r == '.' {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			count++
		}
	}
	return count <= 2
}
