package testutil

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/codeshape/internal/ctxlog"
	"github.com/specialistvlad/codeshape/internal/registry"
	"github.com/specialistvlad/codeshape/modules/declarations"
	"github.com/specialistvlad/codeshape/modules/expressions"
	"github.com/specialistvlad/codeshape/modules/statements"
	"github.com/specialistvlad/codeshape/modules/tokens"
)

// NewRegistry returns a validated registry holding every core module.
func NewRegistry(t testing.TB) *registry.Registry {
	t.Helper()
	r := registry.NewWithModules(
		&declarations.Module{},
		&statements.Module{},
		&expressions.Module{},
		&tokens.Module{},
	)
	require.NoError(t, r.ValidateRegistry(context.Background()))
	return r
}

// Context returns a context carrying a debug logger that writes into the
// returned buffer. Set CODESHAPE_TEST_LOGS=true to dump it after the test.
func Context(t testing.TB) (context.Context, *SafeBuffer) {
	t.Helper()
	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() {
		if os.Getenv("CODESHAPE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})
	return ctxlog.WithLogger(context.Background(), logger), buf
}
