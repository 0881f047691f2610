package main_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// projectRoot returns the absolute path to the project root directory.
func projectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (no go.mod found in any parent directory)")
		}
		dir = parent
	}
}

// buildBinary compiles ./cmd/gtadapter into a temp dir and returns its path.
func buildBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping binary build in -short mode")
	}
	binPath := filepath.Join(t.TempDir(), "gtadapter")

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/gtadapter/")
	cmd.Dir = projectRoot(t)
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "go build failed: %s", string(output))
	return binPath
}

func TestBinary_Version(t *testing.T) {
	bin := buildBinary(t)

	output, err := exec.Command(bin, "version").CombinedOutput()
	require.NoError(t, err, "binary execution failed: %s", string(output))
	assert.True(t, strings.HasPrefix(string(output), "gtadapter v"), string(output))
}

func TestBinary_UnknownCommandExitsNonZero(t *testing.T) {
	bin := buildBinary(t)

	err := exec.Command(bin, "no-such-command").Run()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
}

func TestBinary_ResolveEndToEnd(t *testing.T) {
	bin := buildBinary(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gtadapter.toml"), []byte("[settings]\n"), 0o644))

	cmd := exec.Command(bin, "resolve", "$(SolutionDir)", "--executable", "/bin/x_test")
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GTA_USER_CONFIG="+filepath.Join(dir, "absent.toml"))
	output, err := cmd.Output()
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(string(output)))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
