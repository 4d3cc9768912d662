package system

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/nodebridge/internal/app"
	"github.com/specialistvlad/nodebridge/internal/testutil"
	"github.com/stretchr/testify/require"
)

// setupApp builds an App from cfg and returns it with its output and log buffers.
func setupApp(t *testing.T, cfg app.Config) (*app.App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()

	if cfg.Format == "" {
		cfg.Format = "json"
	}
	cfg.Workers = 4
	cfg.LogLevel = "debug"
	valid, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	a, err := app.NewApp(out, logs, valid)
	require.NoError(t, err)
	return a, out, logs
}
