package settings

// Options is one resolved configuration context: either the solution-wide
// baseline or the override for a single test executable. Values are clamped
// before an Options is published and must not be mutated afterwards; copy
// with Clone when a derived context is needed.
//
// The toml tag doubles as the option's canonical name in settings files,
// GTA_* environment variables, --set flags, and summaries.
type Options struct {
	PrintTestOutput               bool             `toml:"print_test_output" yaml:"print_test_output"`
	TestDiscoveryRegex            string           `toml:"test_discovery_regex" yaml:"test_discovery_regex"`
	TestDiscoveryTimeoutInSeconds int              `toml:"test_discovery_timeout_in_seconds" yaml:"test_discovery_timeout_in_seconds"`
	WorkingDir                    string           `toml:"working_dir" yaml:"working_dir"`
	PathExtension                 string           `toml:"path_extension" yaml:"path_extension"`
	AdditionalPdbs                string           `toml:"additional_pdbs" yaml:"additional_pdbs"`
	EnvironmentVariables          string           `toml:"environment_variables" yaml:"environment_variables"`
	BatchForTestSetup             string           `toml:"batch_for_test_setup" yaml:"batch_for_test_setup"`
	BatchForTestTeardown          string           `toml:"batch_for_test_teardown" yaml:"batch_for_test_teardown"`
	AdditionalTestExecutionParams string           `toml:"additional_test_execution_params" yaml:"additional_test_execution_params"`
	CatchExceptions               bool             `toml:"catch_exceptions" yaml:"catch_exceptions"`
	BreakOnFailure                bool             `toml:"break_on_failure" yaml:"break_on_failure"`
	RunDisabledTests              bool             `toml:"run_disabled_tests" yaml:"run_disabled_tests"`
	NrOfTestRepetitions           int              `toml:"nr_of_test_repetitions" yaml:"nr_of_test_repetitions"`
	ShuffleTests                  bool             `toml:"shuffle_tests" yaml:"shuffle_tests"`
	ShuffleTestsSeed              int              `toml:"shuffle_tests_seed" yaml:"shuffle_tests_seed"`
	TraitsRegexesBefore           []RegexTraitRule `toml:"traits_regexes_before" yaml:"traits_regexes_before"`
	TraitsRegexesAfter            []RegexTraitRule `toml:"traits_regexes_after" yaml:"traits_regexes_after"`
	TestNameSeparator             string           `toml:"test_name_separator" yaml:"test_name_separator"`
	ParseSymbolInformation        bool             `toml:"parse_symbol_information" yaml:"parse_symbol_information"`
	DebugMode                     bool             `toml:"debug_mode" yaml:"debug_mode"`
	TimestampOutput               bool             `toml:"timestamp_output" yaml:"timestamp_output"`
	ParallelTestExecution         bool             `toml:"parallel_test_execution" yaml:"parallel_test_execution"`
	MaxNrOfThreads                int              `toml:"max_nr_of_threads" yaml:"max_nr_of_threads"`
	KillProcessesOnCancel         bool             `toml:"kill_processes_on_cancel" yaml:"kill_processes_on_cancel"`
	UseNewTestExecutionFramework  bool             `toml:"use_new_test_execution_framework" yaml:"use_new_test_execution_framework"`
	ExitCodeTestCase              string           `toml:"exit_code_test_case" yaml:"exit_code_test_case"`
	ShowReleaseNotes              bool             `toml:"show_release_notes" yaml:"show_release_notes"`
}

// Clone returns a deep copy.
func (o *Options) Clone() *Options {
	c := *o
	c.TraitsRegexesBefore = cloneRules(o.TraitsRegexesBefore)
	c.TraitsRegexesAfter = cloneRules(o.TraitsRegexesAfter)
	return &c
}

// ThreadCount is the number of test processes a run of one executable may
// use concurrently.
func (o *Options) ThreadCount() int {
	if !o.ParallelTestExecution || o.MaxNrOfThreads < 1 {
		return 1
	}
	return o.MaxNrOfThreads
}

func cloneRules(src []RegexTraitRule) []RegexTraitRule {
	if src == nil {
		return nil
	}
	dst := make([]RegexTraitRule, len(src))
	copy(dst, src)
	return dst
}
