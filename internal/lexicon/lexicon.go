// Package lexicon holds the read-only skill vocabulary shared by every scoring
// invocation: canonical skill names, alias spellings, framework implications,
// category partitions, and the soft-skill and in-demand sets.
package lexicon

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

//go:embed default.json
var defaultLexicon []byte

// Category names used by the feature engineer and the report.
const (
	CategoryProgramming   = "programming_languages"
	CategoryFrameworks    = "frameworks"
	CategoryDatabases     = "databases"
	CategoryCloudDevOps   = "cloud_devops"
	CategoryMLAI          = "ml_ai"
	CategoryMethodologies = "methodologies"
	CategorySoft          = "soft"
	CategoryTools         = "tools"
)

// document is the JSON layout of a lexicon file.
type document struct {
	Skills       []string            `json:"skills"`
	Aliases      map[string]string   `json:"aliases"`
	Implications map[string][]string `json:"implications"`
	Categories   map[string][]string `json:"categories"`
	InDemand     []string            `json:"in_demand"`
}

// Lexicon is immutable once loaded. All accessors return copies.
type Lexicon struct {
	skills       []string
	aliases      map[string]string
	implications map[string][]string
	categories   map[string]string // lower(skill) -> category
	soft         map[string]bool
	inDemand     map[string]bool
}

// LoadError reports a lexicon that could not be read or is malformed.
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load lexicon %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load lexicon %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

var loadDefault = sync.OnceValues(func() (*Lexicon, error) {
	return parse("(embedded)", defaultLexicon)
})

// Default returns the embedded lexicon. It is parsed on first use and the
// same value is returned to every caller afterwards.
func Default() (*Lexicon, error) {
	return loadDefault()
}

// LoadFile reads a lexicon from a JSON file on disk.
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "read failed", Cause: err}
	}
	return parse(path, data)
}

// Load reads a lexicon from r.
func Load(r io.Reader) (*Lexicon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Source: "(reader)", Message: "read failed", Cause: err}
	}
	return parse("(reader)", data)
}

func parse(source string, data []byte) (*Lexicon, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Source: source, Message: "invalid JSON", Cause: err}
	}
	if len(doc.Skills) == 0 {
		return nil, &LoadError{Source: source, Message: "no skills defined"}
	}

	lex := &Lexicon{
		aliases:      make(map[string]string, len(doc.Aliases)),
		implications: make(map[string][]string, len(doc.Implications)),
		categories:   make(map[string]string),
		soft:         make(map[string]bool),
		inDemand:     make(map[string]bool, len(doc.InDemand)),
	}

	seen := make(map[string]bool, len(doc.Skills))
	for _, skill := range doc.Skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			return nil, &LoadError{Source: source, Message: "empty skill name"}
		}
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		lex.skills = append(lex.skills, skill)
	}

	for alias, canonical := range doc.Aliases {
		alias = strings.ToLower(strings.TrimSpace(alias))
		canonical = strings.TrimSpace(canonical)
		if alias == "" || canonical == "" {
			return nil, &LoadError{Source: source, Message: fmt.Sprintf("empty alias mapping %q -> %q", alias, canonical)}
		}
		lex.aliases[alias] = canonical
	}

	for parent, children := range doc.Implications {
		parent = strings.TrimSpace(parent)
		if parent == "" {
			return nil, &LoadError{Source: source, Message: "empty implication parent"}
		}
		kids := make([]string, 0, len(children))
		for _, child := range children {
			if child = strings.TrimSpace(child); child != "" {
				kids = append(kids, child)
			}
		}
		lex.implications[parent] = kids
	}

	// Sorted category order keeps the first assignment deterministic when a
	// skill is listed under two categories.
	categoryNames := make([]string, 0, len(doc.Categories))
	for name := range doc.Categories {
		categoryNames = append(categoryNames, name)
	}
	sort.Strings(categoryNames)
	for _, name := range categoryNames {
		for _, skill := range doc.Categories[name] {
			key := strings.ToLower(strings.TrimSpace(skill))
			if _, exists := lex.categories[key]; !exists {
				lex.categories[key] = name
			}
			if name == CategorySoft {
				lex.soft[key] = true
			}
		}
	}

	for _, skill := range doc.InDemand {
		lex.inDemand[strings.ToLower(strings.TrimSpace(skill))] = true
	}

	return lex, nil
}

// Skills returns the canonical skill entries in file order.
func (l *Lexicon) Skills() []string {
	out := make([]string, len(l.skills))
	copy(out, l.skills)
	return out
}

// Aliases returns a copy of the alias map, keyed by lowercase alias.
func (l *Lexicon) Aliases() map[string]string {
	out := make(map[string]string, len(l.aliases))
	for k, v := range l.aliases {
		out[k] = v
	}
	return out
}

// Implications returns a copy of the parent -> children map.
func (l *Lexicon) Implications() map[string][]string {
	out := make(map[string][]string, len(l.implications))
	for k, v := range l.implications {
		kids := make([]string, len(v))
		copy(kids, v)
		out[k] = kids
	}
	return out
}

// Category returns the partition a canonical skill belongs to. Skills not
// listed under any category fall into CategoryTools.
func (l *Lexicon) Category(skill string) string {
	if c, ok := l.categories[strings.ToLower(skill)]; ok {
		return c
	}
	return CategoryTools
}

// IsSoft reports whether skill is a soft skill.
func (l *Lexicon) IsSoft(skill string) bool {
	return l.soft[strings.ToLower(skill)]
}

// IsInDemand reports whether skill belongs to the in-demand set.
func (l *Lexicon) IsInDemand(skill string) bool {
	return l.inDemand[strings.ToLower(skill)]
}
