package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_Success(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	filePath := filepath.Join(t.TempDir(), "main.hcl")
	content := `
asset {
  id   = "welcome"
  type = "text"
  body = "Hi ${var.who}"
}
`
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0600), "failed to set up test file")
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, errOut, []string{"-var", "who=you", filePath}, map[string]string{})

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, `{"asset":{"body":"Hi you","id":"welcome","type":"text"}}`+"\n", out.String())
	require.Contains(t, errOut.String(), "Asset inspected.")
}

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// An HCL string with a syntax error fails during loading.
	invalidHCL := `
		asset {
			id = "a"
		// Missing closing brace here
	`
	filePath := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0600), "failed to set up test file")
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(context.Background(), out, &bytes.Buffer{}, []string{filePath}, map[string]string{})

	// --- Assert ---
	require.Error(t, runErr)
	require.Contains(t, runErr.Error(), "failed to parse")
	require.Empty(t, out.String(), "nothing should be written when loading fails")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	errOut := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, errOut, []string{"-h"}, map[string]string{})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, errOut.String(), "Usage:", "Expected help text to be printed to the error writer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"}, map[string]string{})

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
