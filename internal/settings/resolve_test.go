package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEnvFunc creates an EnvFunc backed by a map.
func mockEnvFunc(vars map[string]string) EnvFunc {
	return func(key string) (string, bool) {
		val, ok := vars[key]
		return val, ok
	}
}

// noEnv is an EnvFunc that returns no environment variables.
func noEnv(_ string) (string, bool) {
	return "", false
}

func TestResolve_OnlyDefaults(t *testing.T) {
	t.Parallel()

	rc, err := Resolve(NewDefaults(), Layers{LookupEnv: noEnv})
	require.NoError(t, err)

	assert.Equal(t, NewDefaults(), rc.Options)
	for _, name := range OptionNames() {
		assert.Equal(t, SourceDefault, rc.Sources[name], name)
	}
}

func TestResolve_DoesNotMutateDefaults(t *testing.T) {
	t.Parallel()

	defaults := NewDefaults()
	_, err := Resolve(defaults, Layers{Set: map[string]string{"catch_exceptions": "false"}})
	require.NoError(t, err)
	assert.True(t, defaults.CatchExceptions)
}

func TestResolve_Precedence(t *testing.T) {
	t.Parallel()

	user := &File{Path: "user.toml", Settings: map[string]any{
		"max_nr_of_threads":       int64(2),
		"print_test_output":       true,
		"test_name_separator":     "::",
		"parallel_test_execution": true,
	}}
	solution := &File{Path: "gtadapter.toml", Settings: map[string]any{
		"max_nr_of_threads":   int64(3),
		"test_name_separator": "/",
		"working_dir":         "$(SolutionDir)",
	}}
	env := mockEnvFunc(map[string]string{
		"GTA_MAX_NR_OF_THREADS": "5",
		"GTA_WORKING_DIR":       "$(TestDir)",
	})

	rc, err := Resolve(NewDefaults(), Layers{
		User:      user,
		Solution:  solution,
		LookupEnv: env,
		Set:       map[string]string{"working_dir": "/cli"},
	})
	require.NoError(t, err)

	o := rc.Options
	assert.True(t, o.PrintTestOutput)
	assert.True(t, o.ParallelTestExecution)
	assert.Equal(t, "/", o.TestNameSeparator)
	assert.Equal(t, 5, o.MaxNrOfThreads)
	assert.Equal(t, "/cli", o.WorkingDir)
	assert.True(t, o.CatchExceptions, "untouched option keeps its default")

	assert.Equal(t, SourceUser, rc.Sources["print_test_output"])
	assert.Equal(t, SourceFile, rc.Sources["test_name_separator"])
	assert.Equal(t, SourceEnv, rc.Sources["max_nr_of_threads"])
	assert.Equal(t, SourceCLI, rc.Sources["working_dir"])
	assert.Equal(t, SourceDefault, rc.Sources["catch_exceptions"])
}

func TestResolve_EnvStringsAreConverted(t *testing.T) {
	t.Parallel()

	env := mockEnvFunc(map[string]string{
		"GTA_CATCH_EXCEPTIONS":       "false",
		"GTA_NR_OF_TEST_REPETITIONS": "3",
		"GTA_TRAITS_REGEXES_AFTER":   ".*///Kind,Unit",
		"GTA_NOT_AN_OPTION":          "ignored",
	})

	rc, err := Resolve(NewDefaults(), Layers{LookupEnv: env})
	require.NoError(t, err)

	assert.False(t, rc.Options.CatchExceptions)
	assert.Equal(t, 3, rc.Options.NrOfTestRepetitions)
	assert.Equal(t, []RegexTraitRule{{Pattern: ".*", Name: "Kind", Value: "Unit"}}, rc.Options.TraitsRegexesAfter)
}

func TestResolve_UnknownOption(t *testing.T) {
	t.Parallel()

	_, err := Resolve(NewDefaults(), Layers{
		Solution: &File{Path: "gtadapter.toml", Settings: map[string]any{"max_threads": 4}},
	})
	require.ErrorIs(t, err, ErrUnknownOption)
	assert.Contains(t, err.Error(), "max_threads")
	assert.Contains(t, err.Error(), "gtadapter.toml")
}

func TestResolve_BadValue(t *testing.T) {
	t.Parallel()

	_, err := Resolve(NewDefaults(), Layers{Set: map[string]string{"max_nr_of_threads": "many"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--set")
}

func TestApplyPartial_TraitRulesReplacedWholesale(t *testing.T) {
	t.Parallel()

	o := NewDefaults()
	o.TraitsRegexesBefore = []RegexTraitRule{
		{Pattern: "a", Name: "N", Value: "1"},
		{Pattern: "b", Name: "N", Value: "2"},
	}
	shared := o.TraitsRegexesBefore

	require.NoError(t, ApplyPartial(o, map[string]any{"traits_regexes_before": "c///M,3"}))
	assert.Equal(t, []RegexTraitRule{{Pattern: "c", Name: "M", Value: "3"}}, o.TraitsRegexesBefore)
	assert.Equal(t, "a", shared[0].Pattern, "previous backing array untouched")

	require.NoError(t, ApplyPartial(o, map[string]any{"traits_regexes_before": ""}))
	assert.Nil(t, o.TraitsRegexesBefore)
}

func TestApplyPartial_TraitRulesAsTables(t *testing.T) {
	t.Parallel()

	o := NewDefaults()
	err := ApplyPartial(o, map[string]any{
		"traits_regexes_after": []map[string]any{
			{"pattern": ".*Db.*", "name": "Category", "value": "Database"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []RegexTraitRule{{Pattern: ".*Db.*", Name: "Category", Value: "Database"}}, o.TraitsRegexesAfter)

	err = ApplyPartial(o, map[string]any{
		"traits_regexes_after": []map[string]any{{"pattern": "(", "name": "N", "value": "V"}},
	})
	assert.ErrorIs(t, err, ErrInvalidTraitRule)
}

func TestParseSetFlags(t *testing.T) {
	t.Parallel()

	got, err := ParseSetFlags([]string{"a=1", " b = x=y", "a=2", "c="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "2", "b": " x=y", "c": ""}, got)

	_, err = ParseSetFlags([]string{"novalue"})
	assert.Error(t, err)
	_, err = ParseSetFlags([]string{"=v"})
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "GTA_MAX_NR_OF_THREADS", EnvKey("max_nr_of_threads"))
}
