package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogged checks that a log line carrying msg and every given key=value
// pair was written.
func AssertLogged(t *testing.T, logs, msg string, attrs ...string) {
	t.Helper()

	for _, line := range strings.Split(logs, "\n") {
		if !strings.Contains(line, msg) {
			continue
		}
		matched := true
		for _, a := range attrs {
			if !strings.Contains(line, a) {
				matched = false
				break
			}
		}
		if matched {
			return
		}
	}
	require.Failf(t, "log line not found", "expected %q with %v in logs:\n%s", msg, attrs, logs)
}
