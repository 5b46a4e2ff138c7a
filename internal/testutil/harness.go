package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/blueprintgo/internal/app"
	"github.com/specialistvlad/blueprintgo/internal/hclgraph"
	"github.com/specialistvlad/blueprintgo/internal/registry"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	// Output is what nodes wrote during the run.
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunGraph runs files with the default root and entry, using a background
// context. Without modules the app's core modules are used.
func RunGraph(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunGraphWithConfig(context.Background(), t, files, app.Config{}, modules...)
}

// RunGraphWithConfig writes files into a temporary directory and runs them
// through the full app lifecycle. GraphPaths, log settings and NodeOutput
// of cfg are overridden.
func RunGraphWithConfig(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	logBuffer := &SafeBuffer{}
	outBuffer := &SafeBuffer{}
	cfg.GraphPaths = []string{tmpDir}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	cfg.NodeOutput = outBuffer
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("BLUEPRINT_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, hclgraph.NewLoader(), modules...)
	}()
	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(ctx)
	return &HarnessResult{
		Output:    outBuffer.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
