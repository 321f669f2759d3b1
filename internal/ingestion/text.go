// Package ingestion turns résumé documents into clean text for scoring.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// MinContentChars is the minimum number of non-whitespace characters a
// document must contain before any scoring step runs.
const MinContentChars = 50

var (
	spaceRun       = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankLineRun   = regexp.MustCompile(`\n\n\n+`)
	matchSeparator = regexp.MustCompile(`[|;:•·→*"“”‘’!?/\\]+`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
	unicodeDash    = strings.NewReplacer("–", "-", "—", "-", "‐", "-", "‑", "-")
)

// CleanText normalizes line endings and spacing while preserving the line
// structure that section detection depends on.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankLineRun.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}

// cleanLine collapses inner spacing; bullets keep their leading glyph.
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	return spaceRun.ReplaceAllString(trimmed, " ")
}

// NormalizeForMatching produces the lowercase single-line form the skill
// canonicalizer matches against. Symbolic separators that never occur inside
// a lexicon entry become spaces; '+', '#', '.', '-', '&' and brackets survive.
func NormalizeForMatching(content string) string {
	if content == "" {
		return ""
	}
	s := strings.ToLower(content)
	s = unicodeDash.Replace(s)
	s = matchSeparator.ReplaceAllString(s, " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CountNonWhitespace returns the number of non-whitespace runes in content.
func CountNonWhitespace(content string) int {
	count := 0
	for _, r := range content {
		if !unicode.IsSpace(r) {
			count++
		}
	}
	return count
}

// CheckContent returns an *InsufficientContentError when content is too short
// to score.
func CheckContent(content string) error {
	if n := CountNonWhitespace(content); n < MinContentChars {
		return &InsufficientContentError{Count: n, Minimum: MinContentChars}
	}
	return nil
}

// IngestFromFile reads a résumé export and returns cleaned text with metadata.
// Plain text and Markdown are read as-is; HTML is flattened to text.
// Binary formats are rejected because their extraction happens upstream.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var text string
	switch ext {
	case "", ".txt", ".text", ".md":
		text = string(content)
	case ".html", ".htm":
		text, err = ExtractHTMLText(string(content))
		if err != nil {
			return "", nil, err
		}
	default:
		return "", nil, &UnsupportedFormatError{Extension: ext}
	}

	cleanedText := CleanText(text)
	return cleanedText, NewMetadata(cleanedText, path, formatName(ext)), nil
}

func formatName(ext string) string {
	switch ext {
	case ".html", ".htm":
		return "html"
	case ".md":
		return "markdown"
	default:
		return "text"
	}
}
