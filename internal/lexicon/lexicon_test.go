package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Loads(t *testing.T) {
	lex, err := Default()
	require.NoError(t, err)
	require.NotNil(t, lex)

	assert.Contains(t, lex.Skills(), "Python")
	assert.Contains(t, lex.Skills(), "C++")
	assert.Equal(t, "Go", lex.Aliases()["golang"])
	assert.Contains(t, lex.Implications()["JavaScript"], "React")
}

func TestDefault_SameInstance(t *testing.T) {
	first, err := Default()
	require.NoError(t, err)
	second, err := Default()
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestCategory(t *testing.T) {
	lex, err := Default()
	require.NoError(t, err)

	assert.Equal(t, CategoryProgramming, lex.Category("python"))
	assert.Equal(t, CategoryFrameworks, lex.Category("Vue"))
	assert.Equal(t, CategoryDatabases, lex.Category("PostgreSQL"))
	assert.Equal(t, CategoryCloudDevOps, lex.Category("Kubernetes"))
	assert.Equal(t, CategoryTools, lex.Category("Postman"), "unlisted skills default to tools")
}

func TestSoftAndInDemand(t *testing.T) {
	lex, err := Default()
	require.NoError(t, err)

	assert.True(t, lex.IsSoft("Leadership"))
	assert.False(t, lex.IsSoft("Python"))
	assert.True(t, lex.IsInDemand("kubernetes"))
	assert.False(t, lex.IsInDemand("Seaborn"))
}

func TestAccessorsReturnCopies(t *testing.T) {
	lex, err := Default()
	require.NoError(t, err)

	skills := lex.Skills()
	skills[0] = "mutated"
	assert.NotEqual(t, "mutated", lex.Skills()[0])

	aliases := lex.Aliases()
	aliases["golang"] = "mutated"
	assert.Equal(t, "Go", lex.Aliases()["golang"])

	impl := lex.Implications()
	impl["JavaScript"][0] = "mutated"
	assert.NotEqual(t, "mutated", lex.Implications()["JavaScript"][0])
}

func TestLoad_DeduplicatesSkillsCaseInsensitively(t *testing.T) {
	lex, err := Load(strings.NewReader(`{"skills": ["Go", "go", "Rust"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Rust"}, lex.Skills())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{name: "invalid json", content: `{ nope`, message: "invalid JSON"},
		{name: "no skills", content: `{"skills": []}`, message: "no skills defined"},
		{name: "empty skill", content: `{"skills": ["  "]}`, message: "empty skill name"},
		{name: "empty alias", content: `{"skills": ["Go"], "aliases": {"": "Go"}}`, message: "empty alias mapping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.content))
			require.Error(t, err)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"skills": ["Elixir"], "in_demand": ["Elixir"]}`), 0644))

	lex, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Elixir"}, lex.Skills())
	assert.True(t, lex.IsInDemand("elixir"))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read failed")
}
