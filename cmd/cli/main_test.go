package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/blueprintgo/internal/testutil"
	"github.com/stretchr/testify/require"
)

func writeGraph(t *testing.T, content string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0o600), "failed to set up test file")
	return filePath
}

func TestRun_Success(t *testing.T) {
	// --- Arrange ---
	filePath := writeGraph(t, `
graph "main" {
  node "start" "label" {
    fields = { name = "start" }
  }
  node "hello" "print" {
    values = { message = "hello from main" }
  }
  link {
    from = "start.out"
    to   = "hello.in"
  }
}
`)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, []string{"-log-level", "error", filePath})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "hello from main")
}

func TestRun_InvalidGraph(t *testing.T) {
	// --- Arrange ---
	// A syntax error fails the load phase of the run.
	filePath := writeGraph(t, `
graph "main" {
  node "start" "label" {
    // Missing closing brace here
`)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, []string{filePath})

	// --- Assert ---
	require.Error(t, err, "run() should fail on an unparsable graph")
	require.Contains(t, err.Error(), "failed to load graphs")
	require.Contains(t, err.Error(), "failed to parse")
}

func TestRun_PanicRecovery(t *testing.T) {
	// --- Arrange ---
	// Registering the same node type twice panics inside app.NewApp().
	filePath := writeGraph(t, `graph "main" {}`)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, []string{filePath}, &testutil.NoOpModule{}, &testutil.NoOpModule{})

	// --- Assert ---
	require.Error(t, err, "run() should have returned an error after recovering from a panic")
	require.Contains(t, err.Error(), "application startup panicked")
	require.Contains(t, err.Error(), "already registered")
}

func TestRun_ShouldExit(t *testing.T) {
	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, []string{"--this-is-not-a-valid-flag"})

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
