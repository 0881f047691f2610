package settings

import "fmt"

// ValidationIssue records one value that was replaced by a safe default.
type ValidationIssue struct {
	Field   string // dotted path, e.g. "settings.max_nr_of_threads"
	Message string
}

// ValidationResult collects clamp findings for a store.
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasWarnings reports whether anything was clamped.
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Issues) > 0
}

func (vr *ValidationResult) add(field, format string, args ...any) {
	vr.Issues = append(vr.Issues, ValidationIssue{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Clamp replaces out-of-range values in o with safe defaults and records
// every replacement in vr under prefix. cpuCount bounds MaxNrOfThreads.
// Clamping is the only validation options receive.
func Clamp(o *Options, cpuCount int, prefix string, vr *ValidationResult) {
	if cpuCount < 1 {
		cpuCount = 1
	}

	if o.NrOfTestRepetitions < -1 || o.NrOfTestRepetitions == 0 {
		vr.add(prefix+"nr_of_test_repetitions", "%d is not -1 or positive; using %d",
			o.NrOfTestRepetitions, DefaultNrOfTestRepetitions)
		o.NrOfTestRepetitions = DefaultNrOfTestRepetitions
	}

	if o.ShuffleTestsSeed < 0 || o.ShuffleTestsSeed > MaxShuffleTestsSeed {
		vr.add(prefix+"shuffle_tests_seed", "%d is outside [0, %d]; using %d",
			o.ShuffleTestsSeed, MaxShuffleTestsSeed, DefaultShuffleTestsSeed)
		o.ShuffleTestsSeed = DefaultShuffleTestsSeed
	}

	// Zero is the documented "use all processors" value, so it is not reported.
	if o.MaxNrOfThreads < 0 || o.MaxNrOfThreads > cpuCount {
		vr.add(prefix+"max_nr_of_threads", "%d is outside [1, %d]; using %d",
			o.MaxNrOfThreads, cpuCount, cpuCount)
	}
	if o.MaxNrOfThreads <= 0 || o.MaxNrOfThreads > cpuCount {
		o.MaxNrOfThreads = cpuCount
	}

	if o.TestDiscoveryTimeoutInSeconds < 0 {
		vr.add(prefix+"test_discovery_timeout_in_seconds", "%d is negative; using %d",
			o.TestDiscoveryTimeoutInSeconds, DefaultTestDiscoveryTimeoutInSeconds)
		o.TestDiscoveryTimeoutInSeconds = DefaultTestDiscoveryTimeoutInSeconds
	}

	if len(o.TestNameSeparator) > MaxTestNameSeparatorLength {
		vr.add(prefix+"test_name_separator", "longer than %d characters; ignoring it",
			MaxTestNameSeparatorLength)
		o.TestNameSeparator = ""
	}
}
