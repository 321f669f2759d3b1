package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Metadata describes an ingested résumé document.
type Metadata struct {
	Source    string `json:"source,omitempty"`
	Format    string `json:"format"`
	Hash      string `json:"hash"` // SHA256 hex digest of the cleaned text
	CharCount int    `json:"char_count"`
	WordCount int    `json:"word_count"`
}

// NewMetadata builds Metadata for cleaned content.
func NewMetadata(content, source, format string) *Metadata {
	return &Metadata{
		Source:    source,
		Format:    format,
		Hash:      computeHash(content),
		CharCount: CountNonWhitespace(content),
		WordCount: len(strings.Fields(content)),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
