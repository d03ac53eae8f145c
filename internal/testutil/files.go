package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFiles writes each relative path/content pair under a fresh temporary
// directory and returns that directory. Intermediate directories are created
// as needed, so "nested/a.hcl" works.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		WriteFile(t, root, name, content)
	}
	return root
}

// WriteFile writes content to dir/name and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// WriteSheet writes a single worksheet named sheet.hcl into a fresh
// directory and returns its path.
func WriteSheet(t *testing.T, src string) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "sheet.hcl", src)
}
