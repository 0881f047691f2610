package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/gtadapter/internal/settings"
)

// ---- helpers ----------------------------------------------------------------

// resetConfigFlags resets root flags and the config subcommand flags.
func resetConfigFlags(t *testing.T) {
	t.Helper()
	resetRootCmd(t)
	configDebugTarget = ""
	configDebugCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
}

// runCmd executes rootCmd with args and returns stdout and the exit code.
func runCmd(t *testing.T, args ...string) (string, int) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	var code int
	_ = captureStderr(t, func() { code = Execute() })
	return out.String(), code
}

// writeSettings writes a gtadapter.toml to dir and returns its path.
func writeSettings(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "gtadapter.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleSettings = `
[settings]
print_test_output = true
max_nr_of_threads = 1000

[[executables]]
pattern = "*_slow_test"
[executables.settings]
test_discovery_timeout_in_seconds = 120
`

// ---- registration tests -----------------------------------------------------

func TestConfigCmd_Subcommands(t *testing.T) {
	var names []string
	for _, cmd := range configCmd.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"debug", "validate"}, names)
	assert.NotNil(t, configDebugCmd.Flags().Lookup("target"))
}

// ---- debug ------------------------------------------------------------------

func TestConfigDebug_ShowsSources(t *testing.T) {
	resetConfigFlags(t)
	t.Setenv("GTA_CATCH_EXCEPTIONS", "false")
	path := writeSettings(t, t.TempDir(), sampleSettings)

	out, code := runCmd(t, "config", "debug", "--no-color", "--config", path, "--set", "shuffle_tests=true")
	require.Equal(t, 0, code)

	assert.Contains(t, out, "Settings file: "+path)
	assert.Contains(t, out, "Solution dir:  "+filepath.Dir(path))
	assert.Contains(t, out, "Overrides:     1")
	assert.Regexp(t, `print_test_output\s+= "true"\s+\(source: file\)`, out)
	assert.Regexp(t, `catch_exceptions\s+= "false"\s+\(source: env\)`, out)
	assert.Regexp(t, `shuffle_tests\s+= "true"\s+\(source: cli\)`, out)
	assert.Regexp(t, `debug_mode\s+= "false"\s+\(source: default\)`, out)
	assert.NotContains(t, out, "show_release_notes")
}

func TestConfigDebug_Target(t *testing.T) {
	resetConfigFlags(t)
	path := writeSettings(t, t.TempDir(), sampleSettings)

	out, code := runCmd(t, "config", "debug", "--no-color", "--config", path, "--target", "/bin/db_slow_test")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "[target /bin/db_slow_test]")
	assert.Contains(t, out, "context     = override")
	assert.Contains(t, out, "test_discovery_timeout_in_seconds: 120")

	resetConfigFlags(t)
	out, code = runCmd(t, "config", "debug", "--no-color", "--config", path, "--target", "/bin/fast_test")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "context     = baseline")
	assert.Contains(t, out, "test_discovery_timeout_in_seconds: 30")
}

func TestConfigDebug_NoSettingsFile(t *testing.T) {
	resetConfigFlags(t)

	origDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	out, code := runCmd(t, "config", "debug", "--no-color", "--dir", t.TempDir())
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Settings file: none found")
	assert.Contains(t, out, "Solution dir:  unknown")
}

func TestConfigDebug_UnknownOptionFails(t *testing.T) {
	resetConfigFlags(t)
	path := writeSettings(t, t.TempDir(), "[settings]\nmax_threads = 2\n")

	_, code := runCmd(t, "config", "debug", "--config", path)
	assert.Equal(t, 1, code)
}

func TestConfigDebug_BadSetFlag(t *testing.T) {
	resetConfigFlags(t)
	path := writeSettings(t, t.TempDir(), "")

	_, code := runCmd(t, "config", "debug", "--config", path, "--set", "novalue")
	assert.Equal(t, 1, code)
}

// ---- validate ---------------------------------------------------------------

func TestConfigValidate_ReportsClamps(t *testing.T) {
	resetConfigFlags(t)
	path := writeSettings(t, t.TempDir(), sampleSettings)

	out, code := runCmd(t, "config", "validate", "--no-color", "--config", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Warnings:")
	assert.Contains(t, out, "[settings.max_nr_of_threads]")
	assert.Contains(t, out, "1 warning(s)")
}

func TestConfigValidate_Clean(t *testing.T) {
	resetConfigFlags(t)
	path := writeSettings(t, t.TempDir(), "[settings]\nprint_test_output = true\n")

	out, code := runCmd(t, "config", "validate", "--no-color", "--config", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "No issues found.")
}

func TestConfigValidate_ParseErrorFails(t *testing.T) {
	resetConfigFlags(t)
	path := writeSettings(t, t.TempDir(), "[settings\n")

	_, code := runCmd(t, "config", "validate", "--config", path)
	assert.Equal(t, 1, code)
}

func TestPrintValidationResult_Empty(t *testing.T) {
	var buf bytes.Buffer
	printValidationResult(&buf, &settings.ValidationResult{})
	assert.Contains(t, buf.String(), "Settings Validation")
	assert.Contains(t, buf.String(), "No issues found.")
}
