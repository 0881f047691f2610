package settings

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// optionField renders one option for summaries and debug output.
type optionField struct {
	name     string
	internal bool // never shown in summaries
	format   func(o *Options) string
}

func boolField(name string, get func(o *Options) bool) optionField {
	return optionField{name: name, format: func(o *Options) string { return strconv.FormatBool(get(o)) }}
}

func intField(name string, get func(o *Options) int) optionField {
	return optionField{name: name, format: func(o *Options) string { return strconv.Itoa(get(o)) }}
}

func stringField(name string, get func(o *Options) string) optionField {
	return optionField{name: name, format: get}
}

func rulesField(name string, get func(o *Options) []RegexTraitRule) optionField {
	return optionField{name: name, format: func(o *Options) string { return FormatTraitRules(get(o)) }}
}

// optionFields lists every option once, sorted by name.
var optionFields = sortedFields([]optionField{
	boolField("print_test_output", func(o *Options) bool { return o.PrintTestOutput }),
	stringField("test_discovery_regex", func(o *Options) string { return o.TestDiscoveryRegex }),
	intField("test_discovery_timeout_in_seconds", func(o *Options) int { return o.TestDiscoveryTimeoutInSeconds }),
	stringField("working_dir", func(o *Options) string { return o.WorkingDir }),
	stringField("path_extension", func(o *Options) string { return o.PathExtension }),
	stringField("additional_pdbs", func(o *Options) string { return o.AdditionalPdbs }),
	stringField("environment_variables", func(o *Options) string { return o.EnvironmentVariables }),
	stringField("batch_for_test_setup", func(o *Options) string { return o.BatchForTestSetup }),
	stringField("batch_for_test_teardown", func(o *Options) string { return o.BatchForTestTeardown }),
	stringField("additional_test_execution_params", func(o *Options) string { return o.AdditionalTestExecutionParams }),
	boolField("catch_exceptions", func(o *Options) bool { return o.CatchExceptions }),
	boolField("break_on_failure", func(o *Options) bool { return o.BreakOnFailure }),
	boolField("run_disabled_tests", func(o *Options) bool { return o.RunDisabledTests }),
	intField("nr_of_test_repetitions", func(o *Options) int { return o.NrOfTestRepetitions }),
	boolField("shuffle_tests", func(o *Options) bool { return o.ShuffleTests }),
	intField("shuffle_tests_seed", func(o *Options) int { return o.ShuffleTestsSeed }),
	rulesField("traits_regexes_before", func(o *Options) []RegexTraitRule { return o.TraitsRegexesBefore }),
	rulesField("traits_regexes_after", func(o *Options) []RegexTraitRule { return o.TraitsRegexesAfter }),
	stringField("test_name_separator", func(o *Options) string { return o.TestNameSeparator }),
	boolField("parse_symbol_information", func(o *Options) bool { return o.ParseSymbolInformation }),
	boolField("debug_mode", func(o *Options) bool { return o.DebugMode }),
	boolField("timestamp_output", func(o *Options) bool { return o.TimestampOutput }),
	boolField("parallel_test_execution", func(o *Options) bool { return o.ParallelTestExecution }),
	intField("max_nr_of_threads", func(o *Options) int { return o.MaxNrOfThreads }),
	boolField("kill_processes_on_cancel", func(o *Options) bool { return o.KillProcessesOnCancel }),
	boolField("use_new_test_execution_framework", func(o *Options) bool { return o.UseNewTestExecutionFramework }),
	stringField("exit_code_test_case", func(o *Options) string { return o.ExitCodeTestCase }),
	{name: "show_release_notes", internal: true, format: func(o *Options) string { return strconv.FormatBool(o.ShowReleaseNotes) }},
})

var knownOptions = func() map[string]bool {
	m := make(map[string]bool, len(optionFields))
	for _, f := range optionFields {
		m[f.name] = true
	}
	return m
}()

func sortedFields(fields []optionField) []optionField {
	sort.Slice(fields, func(i, j int) bool { return fields[i].name < fields[j].name })
	return fields
}

// Field is one rendered option.
type Field struct {
	Name  string
	Value string
}

// Fields renders every non-internal option, sorted by name.
func Fields(o *Options) []Field {
	out := make([]Field, 0, len(optionFields))
	for _, f := range optionFields {
		if f.internal {
			continue
		}
		out = append(out, Field{Name: f.name, Value: f.format(o)})
	}
	return out
}

// OptionNames returns every option name, internal ones included, sorted.
func OptionNames() []string {
	names := make([]string, len(optionFields))
	for i, f := range optionFields {
		names[i] = f.name
	}
	return names
}

// IsKnownOption reports whether name is an option name.
func IsKnownOption(name string) bool {
	return knownOptions[name]
}

// Summary renders o as "name: value" pairs joined by ", ". The output is
// deterministic and is what switch diagnostics print.
func Summary(o *Options) string {
	fields := Fields(o)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Name + ": " + f.Value
	}
	return strings.Join(parts, ", ")
}

// Fingerprint identifies a context by the hash of its summary. Two contexts
// with equal fingerprints launch tests identically.
func Fingerprint(o *Options) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(Summary(o)))
}
