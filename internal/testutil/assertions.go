package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogged checks that the run logged msg with the given key=value
// attributes on the same line.
func AssertLogged(t *testing.T, result *HarnessResult, msg string, kv ...string) {
	t.Helper()

	for _, line := range strings.Split(result.LogOutput, "\n") {
		if !strings.Contains(line, msg) {
			continue
		}
		matched := true
		for i := 0; i+1 < len(kv); i += 2 {
			if !strings.Contains(line, kv[i]+"="+kv[i+1]) {
				matched = false
				break
			}
		}
		if matched {
			return
		}
	}
	require.Failf(t, "log line not found", "expected a log line containing %q with %v", msg, kv)
}
