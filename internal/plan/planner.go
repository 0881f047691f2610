// Package plan computes what a test run would do for a set of executables
// without starting any process: for each executable it activates the
// executable's settings, then resolves every placeholder-bearing option for
// discovery and for each execution thread.
package plan

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/AbdelazizMoustafa10m/gtadapter/internal/logging"
	"github.com/AbdelazizMoustafa10m/gtadapter/internal/placeholder"
	"github.com/AbdelazizMoustafa10m/gtadapter/internal/settings"
	"github.com/AbdelazizMoustafa10m/gtadapter/internal/switcher"
)

// pdbSeparator separates entries of additional_pdbs.
const pdbSeparator = ";"

// EnvVar is one resolved environment variable for a test process.
type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DiscoveryPlan is what listing an executable's tests would use.
type DiscoveryPlan struct {
	WorkingDir     string   `json:"working_dir"`
	PathExtension  string   `json:"path_extension,omitempty"`
	AdditionalPdbs []string `json:"additional_pdbs,omitempty"`
	TimeoutSeconds int      `json:"timeout_seconds"`
	TestRegex      string   `json:"test_regex,omitempty"`
	Environment    []EnvVar `json:"environment,omitempty"`
}

// ThreadPlan is what one execution thread would use.
type ThreadPlan struct {
	ThreadID    int      `json:"thread_id"`
	TestDir     string   `json:"test_dir"`
	WorkingDir  string   `json:"working_dir"`
	Setup       string   `json:"setup,omitempty"`
	Teardown    string   `json:"teardown,omitempty"`
	Environment []EnvVar `json:"environment,omitempty"`
	Args        []string `json:"args"`
}

// ExecutablePlan is the complete plan for one executable.
type ExecutablePlan struct {
	Executable  string        `json:"executable"`
	Override    bool          `json:"override"`
	Fingerprint string        `json:"fingerprint"`
	Summary     string        `json:"summary"`
	Discovery   DiscoveryPlan `json:"discovery"`
	Threads     []ThreadPlan  `json:"threads"`
}

// Planner builds ExecutablePlans. Switcher and Resolver are required;
// ScratchRoot defaults to os.TempDir() and Logger to the "plan" logger.
type Planner struct {
	Switcher    *switcher.Switcher
	Resolver    placeholder.Resolver
	ScratchRoot string
	Logger      *log.Logger
}

// Plan processes executables one after another. Each executable is planned
// with its own settings active; the baseline is active again when Plan
// returns.
func (p *Planner) Plan(ctx context.Context, executables []string) ([]ExecutablePlan, error) {
	if p.Switcher == nil {
		return nil, fmt.Errorf("plan: no switcher")
	}

	plans := make([]ExecutablePlan, 0, len(executables))
	for _, exe := range executables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var ep ExecutablePlan
		err := p.Switcher.RunWithOverride(ctx, exe, func(ctx context.Context) error {
			var err error
			ep, err = p.planExecutable(ctx, exe)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("plan %s: %w", exe, err)
		}
		p.logger().Debug("planned executable", "executable", exe, "threads", len(ep.Threads), "override", ep.Override)
		plans = append(plans, ep)
	}
	return plans, nil
}

func (p *Planner) planExecutable(ctx context.Context, exe string) (ExecutablePlan, error) {
	opts := p.Switcher.Current()
	ep := ExecutablePlan{
		Executable:  exe,
		Override:    opts != nil && opts != p.baseline(),
		Fingerprint: settings.Fingerprint(opts),
		Summary:     settings.Summary(opts),
	}

	// Discovery runs as its own unit of work for the same executable.
	err := p.Switcher.RunWithOverride(ctx, exe, func(context.Context) error {
		ep.Discovery = p.planDiscovery(p.Switcher.Current(), exe)
		return nil
	})
	if err != nil {
		return ep, fmt.Errorf("discovery: %w", err)
	}

	threads, err := p.planThreads(ctx, exe, opts.ThreadCount())
	if err != nil {
		return ep, err
	}
	ep.Threads = threads
	return ep, nil
}

func (p *Planner) planDiscovery(opts *settings.Options, exe string) DiscoveryPlan {
	r := p.Resolver
	d := DiscoveryPlan{
		WorkingDir:     r.ResolveForDiscoveryWorkingDirectory(opts.WorkingDir, exe),
		PathExtension:  r.ResolveGenericForDiscovery(opts.PathExtension, exe),
		TimeoutSeconds: opts.TestDiscoveryTimeoutInSeconds,
		TestRegex:      opts.TestDiscoveryRegex,
	}
	for _, pdb := range strings.Split(opts.AdditionalPdbs, pdbSeparator) {
		if resolved := r.ResolveGenericForDiscovery(pdb, exe); resolved != "" {
			d.AdditionalPdbs = append(d.AdditionalPdbs, resolved)
		}
	}
	d.Environment = resolveEnv(opts.EnvironmentVariables, func(v string) string {
		return r.ResolveGenericForDiscovery(v, exe)
	})
	return d
}

// planThreads plans every execution thread concurrently. Each goroutine
// re-enters the executable's context through the owner carried by ctx.
func (p *Planner) planThreads(ctx context.Context, exe string, count int) ([]ThreadPlan, error) {
	threads := make([]ThreadPlan, count)
	solutionDir := p.Resolver.SolutionDir

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(count)

	for i := 0; i < count; i++ {
		id := i
		g.Go(func() error {
			return p.Switcher.RunWithOverride(gctx, exe, func(context.Context) error {
				threads[id] = p.planThread(p.Switcher.Current(), exe, ScratchDir(p.scratchRoot(), solutionDir, id), id)
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("threads: %w", err)
	}
	return threads, nil
}

func (p *Planner) planThread(opts *settings.Options, exe, testDir string, id int) ThreadPlan {
	r := p.Resolver
	threadID := strconv.Itoa(id)
	generic := func(v string) string {
		return r.ResolveGenericForExecution(v, exe, testDir, threadID)
	}
	return ThreadPlan{
		ThreadID:    id,
		TestDir:     testDir,
		WorkingDir:  r.ResolveForExecutionWorkingDirectory(opts.WorkingDir, exe, testDir, threadID),
		Setup:       generic(opts.BatchForTestSetup),
		Teardown:    generic(opts.BatchForTestTeardown),
		Environment: resolveEnv(opts.EnvironmentVariables, generic),
		Args:        TestArgs(opts, generic(opts.AdditionalTestExecutionParams)),
	}
}

// resolveEnv parses NAME=VALUE pairs separated like trait rules and resolves
// each value. Entries without a name are skipped.
func resolveEnv(raw string, resolve func(string) string) []EnvVar {
	var vars []EnvVar
	for _, entry := range strings.Split(raw, settings.TraitRuleSeparator) {
		name, value, _ := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		vars = append(vars, EnvVar{Name: name, Value: resolve(value)})
	}
	return vars
}

func (p *Planner) baseline() *settings.Options {
	return p.Switcher.Baseline()
}

func (p *Planner) scratchRoot() string {
	if p.ScratchRoot != "" {
		return p.ScratchRoot
	}
	return os.TempDir()
}

func (p *Planner) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return logging.New("plan")
}
