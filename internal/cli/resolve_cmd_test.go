package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/gtadapter/internal/plan"
)

func resetResolveFlags(t *testing.T) {
	t.Helper()
	resetRootCmd(t)
	resolveExecutable = ""
	resolveDiscovery = false
	resolveTestDir = ""
	resolveThreadID = 0
	resolveCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
}

func TestResolveCmd_Execution(t *testing.T) {
	resetResolveFlags(t)
	t.Setenv("GTA_TEST_DATA", "data")
	path := writeSettings(t, t.TempDir(), "")

	out, code := runCmd(t, "resolve", "$(SolutionDir)|$(ExecutableDir)|$(TestDir)|$(ThreadId)|%GTA_TEST_DATA%",
		"--config", path, "--solution-dir", "/sln",
		"--executable", "/build/bin/core_test", "--test-dir", "/scratch/3", "--thread-id", "3")
	require.Equal(t, 0, code)
	assert.Equal(t, "/sln|/build/bin|/scratch/3|3|data", strings.TrimSpace(out))
}

func TestResolveCmd_DefaultTestDir(t *testing.T) {
	resetResolveFlags(t)
	path := writeSettings(t, t.TempDir(), "")

	out, code := runCmd(t, "resolve", "$(TestDir)", "--config", path,
		"--executable", "/build/core_test", "--thread-id", "1")
	require.Equal(t, 0, code)
	assert.Equal(t, plan.ScratchDir(defaultScratchRoot(), filepath.Dir(path), 1), strings.TrimSpace(out))
}

func TestResolveCmd_Discovery(t *testing.T) {
	resetResolveFlags(t)
	path := writeSettings(t, t.TempDir(), "")

	out, code := runCmd(t, "resolve", "[$(TestDir)$(ThreadId)]$(ExecutablePath)", "--config", path,
		"--executable", "/build/core_test", "--discovery", "--test-dir", "/ignored")
	require.Equal(t, 0, code)
	assert.Equal(t, "[]/build/core_test", strings.TrimSpace(out))
}

func TestResolveCmd_RequiresExecutable(t *testing.T) {
	resetResolveFlags(t)

	_, code := runCmd(t, "resolve", "$(ExecutableDir)")
	assert.Equal(t, 1, code)
}
