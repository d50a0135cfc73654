package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/codeshape/internal/config"
	"github.com/specialistvlad/codeshape/internal/registry"
	"github.com/specialistvlad/codeshape/internal/testutil"
)

// SetupAppTest creates a new app instance for system testing. Logs are
// captured at debug level; set CODESHAPE_TEST_LOGS=true to print them.
func SetupAppTest(t *testing.T, cfg *config.Config, modules ...registry.Module) (*App, *testutil.SafeBuffer) {
	t.Helper()

	if cfg == nil {
		d := config.Defaults()
		cfg = &d
	}
	cfg.LogLevel = "debug"

	logBuffer := &testutil.SafeBuffer{}
	testApp, err := NewApp(logBuffer, cfg, modules...)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("CODESHAPE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
