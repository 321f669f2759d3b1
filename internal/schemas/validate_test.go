package schemas

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/ats-scorer/internal/lexicon"
	"github.com/jonathan/ats-scorer/internal/pipeline"
	"github.com/jonathan/ats-scorer/internal/skills"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resume = `Jane Doe
12 Main Street, Austin, TX | jane.doe@example.com | +1 555 123 4567

Experience
Senior Engineer, Acme Corp, Jan 2016 - Present
• Developed billing services in Go and Rust, cutting costs by 30%
• Led migration to Kubernetes and Terraform

Education
Bachelor of Science, Stanford University 2012 - 2016

Skills
Go, Rust, Docker, Kubernetes, Terraform, Redis`

func analyzedReport(t *testing.T, targets []string) []byte {
	t.Helper()
	lex, err := lexicon.Default()
	require.NoError(t, err)
	a, err := pipeline.NewAnalyzer(pipeline.Options{Canonicalizer: skills.NewCanonicalizer(lex)})
	require.NoError(t, err)

	report, err := a.Analyze(context.Background(), resume, targets)
	require.NoError(t, err)
	data, err := json.Marshal(report)
	require.NoError(t, err)
	return data
}

func TestValidateJSON_ValidJSON(t *testing.T) {
	err := ValidateJSON(filepath.Join("testdata", "valid_schema.json"), filepath.Join("testdata", "valid_json.json"))
	assert.NoError(t, err)
}

func TestValidateJSON_InvalidJSON(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		field string
	}{
		{"missing field", "invalid_json.json", "(root)"},
		{"wrong type", "type_mismatch.json", "score"},
		{"nested missing field", "nested_missing.json", "details"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(filepath.Join("testdata", "valid_schema.json"), filepath.Join("testdata", tt.file))
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
			require.NotEmpty(t, validationErr.Errors)
			assert.Equal(t, tt.field, validationErr.Errors[0].Field)
		})
	}
}

func TestValidateJSON_NonExistentFiles(t *testing.T) {
	err := ValidateJSON("testdata/nonexistent_schema.json", filepath.Join("testdata", "valid_json.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file not found")

	err = ValidateJSON(filepath.Join("testdata", "valid_schema.json"), "testdata/nonexistent_json.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")
}

func TestValidateJSON_MalformedSchema(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "bad.schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(`{"type": 12}`), 0o644))

	err := ValidateJSON(schemaPath, filepath.Join("testdata", "valid_json.json"))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, schemaPath, loadErr.Path)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "final_ats_score", Message: "Must be less than or equal to 100"},
		{Field: "grade", Message: "Invalid value"},
	}}
	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "validation failed:"))
	assert.Contains(t, msg, "1. final_ats_score: Must be less than or equal to 100")
	assert.Contains(t, msg, "2. grade: Invalid value")
}

func TestValidateReport_AnalyzedReport(t *testing.T) {
	assert.NoError(t, ValidateReport(analyzedReport(t, nil)))
	assert.NoError(t, ValidateReport(analyzedReport(t, []string{"Go", "AWS"})))
}

func TestValidateReport_Violations(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(analyzedReport(t, nil), &doc))

	tests := []struct {
		name   string
		mutate func(map[string]any)
		field  string
	}{
		{"score above 100", func(d map[string]any) { d["final_ats_score"] = 120 }, "final_ats_score"},
		{"unknown grade", func(d map[string]any) { d["grade"] = "Outstanding" }, "grade"},
		{"missing breakdown", func(d map[string]any) { delete(d, "score_breakdown") }, "(root)"},
		{"bad relevance source", func(d map[string]any) {
			d["ensemble"].(map[string]any)["relevance_source"] = "guess"
		}, "ensemble.relevance_source"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clone := map[string]any{}
			data, err := json.Marshal(doc)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(data, &clone))
			tt.mutate(clone)
			data, err = json.Marshal(clone)
			require.NoError(t, err)

			err = ValidateReport(data)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			fields := make([]string, len(validationErr.Errors))
			for i, fe := range validationErr.Errors {
				fields[i] = fe.Field
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateReportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, analyzedReport(t, nil), 0644))
	assert.NoError(t, ValidateReportFile(path))

	err := ValidateReportFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")
}

func TestResolveSchemaPath(t *testing.T) {
	resolved := ResolveSchemaPath(filepath.Join("schemas", "report.schema.json"))
	require.NotEmpty(t, resolved)
	assert.True(t, filepath.IsAbs(resolved))

	assert.Empty(t, ResolveSchemaPath("schemas/does-not-exist.json"))
}
