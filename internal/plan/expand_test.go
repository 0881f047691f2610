package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o755))
}

func TestExpandExecutables(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "bin", "a_test")
	b := filepath.Join(dir, "bin", "nested", "b_test")
	touch(t, a)
	touch(t, b)
	touch(t, filepath.Join(dir, "bin", "helper"))

	got, err := ExpandExecutables([]string{
		filepath.Join(dir, "bin", "**", "*_test"),
		a,
		filepath.Join(dir, "missing_test"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, filepath.Join(dir, "missing_test")}, got)
}

func TestExpandExecutables_NoMatch(t *testing.T) {
	t.Parallel()

	_, err := ExpandExecutables([]string{filepath.Join(t.TempDir(), "*_test")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matched no executables")
}

func TestExpandExecutables_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := ExpandExecutables([]string{"bin/[a"})
	assert.Error(t, err)
}
