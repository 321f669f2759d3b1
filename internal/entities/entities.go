// Package entities wraps named-entity recognition behind a narrow contract.
// The Adapter converts any recognizer failure into empty entity lists so a
// valid document is always scored.
package entities

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/ats-scorer/internal/parsing"
	"github.com/jonathan/ats-scorer/internal/types"
	"go.uber.org/zap"
)

// Recognizer extracts entity mentions from plain text.
type Recognizer interface {
	Recognize(ctx context.Context, text string) (types.ExtractedEntities, error)
}

// maxNameLines bounds how far into the document a name line is searched for.
const maxNameLines = 5

var (
	orgPattern      = regexp.MustCompile(`\b(?:[A-Z][A-Za-z0-9&'\-]*[ \t]+){0,4}(?:Inc|LLC|Ltd|Corp|Corporation|Company|Technologies|Solutions|Labs|University|College|Institute)\b\.?`)
	locationPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)*, (?:AL|AK|AZ|AR|CA|CO|CT|DE|FL|GA|HI|ID|IL|IN|IA|KS|KY|LA|ME|MD|MA|MI|MN|MS|MO|MT|NE|NV|NH|NJ|NM|NY|NC|ND|OH|OK|OR|PA|RI|SC|SD|TN|TX|UT|VT|VA|WA|WV|WI|WY|DC|India|USA|United States|Canada|United Kingdom|UK|Germany|Australia)\b`)
	nameWord        = regexp.MustCompile(`^[A-Z][a-zA-Z'\-]*\.?$`)
)

// HeuristicRecognizer is a deterministic pattern-based Recognizer.
type HeuristicRecognizer struct{}

// NewHeuristicRecognizer creates a HeuristicRecognizer.
func NewHeuristicRecognizer() *HeuristicRecognizer {
	return &HeuristicRecognizer{}
}

// Recognize implements Recognizer.
func (r *HeuristicRecognizer) Recognize(_ context.Context, text string) (types.ExtractedEntities, error) {
	e := types.EmptyEntities()

	if name := FindName(text); name != "" {
		e.Names = append(e.Names, name)
	}
	e.Organizations = appendUnique(e.Organizations, trimAll(orgPattern.FindAllString(text, -1))...)
	e.Dates = append(e.Dates, parsing.FindDateMentions(text)...)
	e.Locations = appendUnique(e.Locations, locationPattern.FindAllString(text, -1)...)
	e.Emails = appendUnique(e.Emails, parsing.FindEmails(text)...)
	e.Phones = appendUnique(e.Phones, parsing.FindPhones(text)...)
	e.URLs = appendUnique(e.URLs, parsing.FindURLs(text)...)

	return e, nil
}

// FindName returns the first early line made of two to four capitalized
// words with no digits or '@'.
func FindName(text string) string {
	checked := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		checked++
		if checked > maxNameLines {
			break
		}
		if strings.ContainsAny(line, "@0123456789") {
			continue
		}
		if _, _, isHeader := parsing.DetectHeader(line); isHeader {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		ok := true
		for _, w := range words {
			if !nameWord.MatchString(w) {
				ok = false
				break
			}
		}
		if ok {
			return line
		}
	}
	return ""
}

func trimAll(values []string) []string {
	for i, v := range values {
		values[i] = strings.TrimSpace(v)
	}
	return values
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		dup := false
		for _, existing := range dst {
			if existing == v {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, v)
		}
	}
	return dst
}

// Adapter guards a Recognizer: errors and panics become empty entities.
type Adapter struct {
	recognizer Recognizer
	logger     *zap.Logger
}

// NewAdapter wraps recognizer. A nil logger discards degradation warnings.
func NewAdapter(recognizer Recognizer, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{recognizer: recognizer, logger: logger}
}

// Extract returns recognized entities, or empty lists when the recognizer
// is missing, fails, or panics.
func (a *Adapter) Extract(ctx context.Context, text string) (entities types.ExtractedEntities) {
	if a == nil || a.recognizer == nil {
		return types.EmptyEntities()
	}

	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("entity recognizer panicked",
				zap.String("signal", "entities"),
				zap.Error(fmt.Errorf("panic: %v", r)))
			entities = types.EmptyEntities()
		}
	}()

	got, err := a.recognizer.Recognize(ctx, text)
	if err != nil {
		a.logger.Warn("entity recognizer failed",
			zap.String("signal", "entities"),
			zap.Error(err))
		return types.EmptyEntities()
	}
	return got.Normalized()
}
