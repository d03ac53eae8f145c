package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLetEvaluated checks captured text-format logs for the evaluator's
// per-let debug line. The logger must run at debug level.
func AssertLetEvaluated(t *testing.T, logs, name string) {
	t.Helper()

	expectedLogSubstring := fmt.Sprintf("let=%s ", name)

	require.True(t,
		strings.Contains(logs, "Let evaluated.") && strings.Contains(logs, expectedLogSubstring),
		"expected log output for let '%s' was not found in logs", name,
	)
}
