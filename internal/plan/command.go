package plan

import (
	"strconv"
	"strings"

	"github.com/AbdelazizMoustafa10m/gtadapter/internal/settings"
)

// gtest command line flags derived from options.
const (
	flagCatchExceptionsOff = "--gtest_catch_exceptions=0"
	flagBreakOnFailure     = "--gtest_break_on_failure"
	flagRunDisabled        = "--gtest_also_run_disabled_tests"
	flagRepeat             = "--gtest_repeat="
	flagShuffle            = "--gtest_shuffle"
	flagRandomSeed         = "--gtest_random_seed="
)

// TestArgs builds the arguments a test process is started with. extra is the
// already resolved additional_test_execution_params value and is split on
// whitespace.
func TestArgs(opts *settings.Options, extra string) []string {
	var args []string
	if !opts.CatchExceptions {
		args = append(args, flagCatchExceptionsOff)
	}
	if opts.BreakOnFailure {
		args = append(args, flagBreakOnFailure)
	}
	if opts.RunDisabledTests {
		args = append(args, flagRunDisabled)
	}
	if opts.NrOfTestRepetitions != 1 {
		args = append(args, flagRepeat+strconv.Itoa(opts.NrOfTestRepetitions))
	}
	if opts.ShuffleTests {
		args = append(args, flagShuffle)
		if opts.ShuffleTestsSeed != settings.DefaultShuffleTestsSeed {
			args = append(args, flagRandomSeed+strconv.Itoa(opts.ShuffleTestsSeed))
		}
	}
	return append(args, strings.Fields(extra)...)
}
