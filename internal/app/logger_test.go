package app

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

// safeBuffer is a thread-safe buffer for capturing log output in tests.
type safeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

func TestNewLogger_Formats(t *testing.T) {
	testCases := []struct {
		format string
		want   string
	}{
		{format: "json", want: `"msg":"hello"`},
		{format: "text", want: `msg=hello`},
		{format: "pretty", want: "INFO  hello k=v"},
	}
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	for _, tc := range testCases {
		t.Run(tc.format, func(t *testing.T) {
			var buf bytes.Buffer
			newLogger("info", tc.format, &buf).Info("hello", "k", "v")
			assert.Contains(t, buf.String(), tc.want)
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("warn", "pretty", &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_LevelParsing(t *testing.T) {
	testCases := []struct {
		level    string
		wantInfo bool
	}{
		{level: "DEBUG", wantInfo: true},
		{level: "error", wantInfo: false},
		{level: "bogus", wantInfo: true},
	}
	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			var buf bytes.Buffer
			newLogger(tc.level, "text", &buf).Info("probe")
			assert.Equal(t, tc.wantInfo, strings.Contains(buf.String(), "probe"))
		})
	}
}

func TestPrettyHandler_AttrsAndGroups(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	logger := slog.New(newPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.With("graph", "main").WithGroup("run").Debug("step", "node", "1:1", slog.Group("port", "name", "in"))

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "DEBUG step")
	assert.Contains(t, line, "graph=main")
	assert.Contains(t, line, "run.node=1:1")
	assert.Contains(t, line, "run.port.name=in")
}
