package settings

import "github.com/AbdelazizMoustafa10m/gtadapter/internal/placeholder"

// Default values for options whose zero value is not the default.
const (
	DefaultTestDiscoveryTimeoutInSeconds = 30
	DefaultNrOfTestRepetitions           = 1
	DefaultShuffleTestsSeed              = 0
	MaxShuffleTestsSeed                  = 99999
	MaxTestNameSeparatorLength           = 16
)

// NewDefaults returns the built-in defaults. MaxNrOfThreads is left at zero
// and becomes the CPU count when clamped.
func NewDefaults() *Options {
	return &Options{
		TestDiscoveryTimeoutInSeconds: DefaultTestDiscoveryTimeoutInSeconds,
		WorkingDir:                    placeholder.TokenExecutableDir,
		CatchExceptions:               true,
		NrOfTestRepetitions:           DefaultNrOfTestRepetitions,
		ShuffleTestsSeed:              DefaultShuffleTestsSeed,
		ParseSymbolInformation:        true,
		UseNewTestExecutionFramework:  true,
		ShowReleaseNotes:              true,
	}
}
