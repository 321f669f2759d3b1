package similarity

import (
	"context"
	"math"
	"sort"
	"strings"
)

// Folder maps a skill spelling to its canonical name.
type Folder interface {
	CanonicalName(name string) string
}

// LexicalEmbedder compares skills by character-trigram cosine similarity
// after folding aliases. Identical canonical names score exactly 1.
type LexicalEmbedder struct {
	folder Folder
}

// NewLexicalEmbedder creates a LexicalEmbedder. folder may be nil.
func NewLexicalEmbedder(folder Folder) *LexicalEmbedder {
	return &LexicalEmbedder{folder: folder}
}

// Matrix implements Embedder.
func (e *LexicalEmbedder) Matrix(_ context.Context, a, b []string) ([][]float64, error) {
	left := make([]map[string]float64, len(a))
	leftKeys := make([]string, len(a))
	for i, s := range a {
		leftKeys[i] = e.key(s)
		left[i] = trigrams(leftKeys[i])
	}
	right := make([]map[string]float64, len(b))
	rightKeys := make([]string, len(b))
	for j, s := range b {
		rightKeys[j] = e.key(s)
		right[j] = trigrams(rightKeys[j])
	}

	matrix := make([][]float64, len(a))
	for i := range a {
		matrix[i] = make([]float64, len(b))
		for j := range b {
			if leftKeys[i] != "" && leftKeys[i] == rightKeys[j] {
				matrix[i][j] = 1
				continue
			}
			matrix[i][j] = sparseCosine(left[i], right[j])
		}
	}
	return matrix, nil
}

// Similarity implements Embedder.
func (e *LexicalEmbedder) Similarity(ctx context.Context, a, b string) (float64, error) {
	m, err := e.Matrix(ctx, []string{a}, []string{b})
	if err != nil {
		return 0, err
	}
	return m[0][0], nil
}

func (e *LexicalEmbedder) key(s string) string {
	if e.folder != nil {
		s = e.folder.CanonicalName(s)
	}
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// trigrams counts the character trigrams of s padded with spaces.
func trigrams(s string) map[string]float64 {
	grams := make(map[string]float64)
	if s == "" {
		return grams
	}
	runes := []rune(" " + s + " ")
	for i := 0; i+3 <= len(runes); i++ {
		grams[string(runes[i:i+3])]++
	}
	return grams
}

// sparseCosine iterates keys in sorted order so the float sum is reproducible.
func sparseCosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var dot, na float64
	for _, k := range keys {
		na += a[k] * a[k]
		dot += a[k] * b[k]
	}
	bKeys := make([]string, 0, len(b))
	for k := range b {
		bKeys = append(bKeys, k)
	}
	sort.Strings(bKeys)
	var nb float64
	for _, k := range bKeys {
		nb += b[k] * b[k]
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
