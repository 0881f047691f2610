package cli

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AbdelazizMoustafa10m/gtadapter/internal/placeholder"
	"github.com/AbdelazizMoustafa10m/gtadapter/internal/settings"
	"github.com/AbdelazizMoustafa10m/gtadapter/internal/switcher"
)

// loadStore builds the settings store from the settings files, GTA_*
// environment variables, and the --config, --solution-dir and --set flags.
func loadStore() (*settings.Store, error) {
	set, err := settings.ParseSetFlags(flagSet)
	if err != nil {
		return nil, err
	}

	opts := settings.DefaultLoadOptions()
	opts.ConfigPath = flagConfig
	opts.SolutionDir = flagSolutionDir
	opts.Set = set

	store, err := settings.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return store, nil
}

// newSwitcher returns a switcher over store. A non-nil reg receives the
// switcher's metrics.
func newSwitcher(store *settings.Store, reg prometheus.Registerer) *switcher.Switcher {
	var opts []switcher.Option
	if reg != nil {
		opts = append(opts, switcher.WithMetrics(switcher.NewMetrics(reg)))
	}
	return switcher.New(store, opts...)
}

func newResolver(store *settings.Store) placeholder.Resolver {
	return placeholder.Resolver{SolutionDir: store.SolutionDir, LookupEnv: os.LookupEnv}
}
