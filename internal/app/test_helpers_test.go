package app

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/geounits/internal/config"
	sheets "github.com/vk/geounits/internal/hcl"
	"github.com/vk/geounits/internal/testutil"
)

// stubLoader returns a fixed model or error.
type stubLoader struct {
	model *config.Model
	err   error
}

func (s stubLoader) Load(context.Context, ...string) (*config.Model, error) {
	return s.model, s.err
}

// setupAppTest creates a new app instance over the given worksheets with
// debug logging captured separately from the report.
func setupAppTest(t *testing.T, cfg Config, files map[string]string) (*App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()

	logBuffer := &testutil.SafeBuffer{}
	cfg.Paths = []string{testutil.WriteFiles(t, files)}
	cfg.LogLevel = "debug"
	cfg.LogOutput = logBuffer
	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	testApp, err := NewApp(out, appConfig, sheets.NewLoader())
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("GEOUNITS_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, out, logBuffer
}
