package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the absolute path to the ats_agent binary for testing.
// Tests run the binary from temporary directories, so the path cannot stay relative.
func getBinaryPath(t *testing.T) string {
	binaryName := "ats_agent"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath, err := filepath.Abs(filepath.Join("..", "..", "bin", binaryName))
	if err != nil {
		t.Fatalf("failed to resolve binary path: %v", err)
	}
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/ats_agent ./cmd/ats_agent'", binaryPath)
	}

	return binaryPath
}
