package entities

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const resume = `Jane Doe
Austin, TX | jane.doe@example.com | +1 (555) 123-4567
https://github.com/janedoe

Experience
Senior Engineer at Acme Corp, Jan 2019 - Present
Engineer, Globex Technologies 2015 - 2018

Education
State University 2011 - 2015`

func TestHeuristicRecognizer(t *testing.T) {
	e, err := NewHeuristicRecognizer().Recognize(context.Background(), resume)
	assert.NoError(t, err)

	assert.Equal(t, []string{"Jane Doe"}, e.Names)
	assert.Equal(t, []string{"Austin, TX"}, e.Locations)
	assert.Equal(t, []string{"jane.doe@example.com"}, e.Emails)
	assert.Equal(t, []string{"+1 (555) 123-4567"}, e.Phones)
	assert.Equal(t, []string{"https://github.com/janedoe"}, e.URLs)
	assert.Equal(t, []string{"Acme Corp", "Globex Technologies", "State University"}, e.Organizations)
	assert.Equal(t, []string{"Jan 2019", "2015", "2018", "2011", "2015"}, e.Dates)
}

func TestHeuristicRecognizer_Empty(t *testing.T) {
	e, err := NewHeuristicRecognizer().Recognize(context.Background(), "")
	assert.NoError(t, err)
	assert.NotNil(t, e.Names)
	assert.Empty(t, e.Names)
	assert.Empty(t, e.Organizations)
}

func TestFindName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"first line", "Jane Doe\nEngineer", "Jane Doe"},
		{"skips contact line", "jane@example.com\nJane Q. Doe", "Jane Q. Doe"},
		{"skips header", "Summary\nJohn Smith", "John Smith"},
		{"lowercase rejected", "jane doe\nsoftware", ""},
		{"single word rejected", "Jane\nDeveloper", ""},
		{"too far down", "a\nb\nc\nd\ne\nJane Doe", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindName(tt.text))
		})
	}
}

type failingRecognizer struct{}

func (failingRecognizer) Recognize(context.Context, string) (types.ExtractedEntities, error) {
	return types.ExtractedEntities{}, errors.New("model unavailable")
}

type panickingRecognizer struct{}

func (panickingRecognizer) Recognize(context.Context, string) (types.ExtractedEntities, error) {
	panic("tensor shape mismatch")
}

type partialRecognizer struct{}

func (partialRecognizer) Recognize(context.Context, string) (types.ExtractedEntities, error) {
	return types.ExtractedEntities{Names: []string{"Jane Doe"}}, nil
}

func TestAdapter_Degradation(t *testing.T) {
	tests := []struct {
		name       string
		recognizer Recognizer
		wantLogs   int
	}{
		{"error", failingRecognizer{}, 1},
		{"panic", panickingRecognizer{}, 1},
		{"nil recognizer", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			adapter := NewAdapter(tt.recognizer, zap.New(core))

			e := adapter.Extract(context.Background(), resume)
			assert.Equal(t, types.EmptyEntities(), e)
			assert.Equal(t, tt.wantLogs, logs.Len())
			for _, entry := range logs.All() {
				assert.Equal(t, "entities", entry.ContextMap()["signal"])
			}
		})
	}
}

func TestAdapter_NormalizesMissingFields(t *testing.T) {
	e := NewAdapter(partialRecognizer{}, nil).Extract(context.Background(), "text")
	assert.Equal(t, []string{"Jane Doe"}, e.Names)
	assert.NotNil(t, e.Emails)
	assert.Empty(t, e.Emails)
}
