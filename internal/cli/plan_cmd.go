package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/gtadapter/internal/logging"
	"github.com/AbdelazizMoustafa10m/gtadapter/internal/plan"
)

var (
	planJSON        bool
	planScratchRoot string
	planMetrics     bool
)

// planCmd implements "gtadapter plan [executables...]".
var planCmd = &cobra.Command{
	Use:   "plan executable...",
	Short: "Show how each executable would be discovered and run",
	Long: `Activate the settings of each executable in turn and print the resolved
discovery working directory, symbol paths, and per-thread scratch directory,
working directory, environment, and command line. No process is started.

Arguments may be glob patterns such as 'build/**/*_test'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Output the plan as JSON")
	planCmd.Flags().StringVar(&planScratchRoot, "scratch-root", "", "Root of the per-thread scratch directories (default: system temp dir)")
	planCmd.Flags().BoolVar(&planMetrics, "metrics", false, "Print context switch metrics after the plan")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	executables, err := plan.ExpandExecutables(args)
	if err != nil {
		return err
	}

	store, err := loadStore()
	if err != nil {
		return err
	}

	var (
		reg        *prometheus.Registry
		registerer prometheus.Registerer
	)
	if planMetrics {
		reg = prometheus.NewRegistry()
		registerer = reg
	}

	root := planScratchRoot
	if root == "" {
		root = defaultScratchRoot()
	}
	planner := &plan.Planner{
		Switcher:    newSwitcher(store, registerer),
		Resolver:    newResolver(store),
		ScratchRoot: root,
		Logger:      logging.New("plan"),
	}

	plans, err := planner.Plan(cmd.Context(), executables)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if planJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plans); err != nil {
			return fmt.Errorf("encoding plan: %w", err)
		}
	} else {
		for _, ep := range plans {
			printPlan(out, ep)
		}
	}

	if reg != nil {
		return printMetrics(cmd.ErrOrStderr(), reg)
	}
	return nil
}

func defaultScratchRoot() string {
	return os.TempDir()
}

func printPlan(out io.Writer, ep plan.ExecutablePlan) {
	kind := "baseline"
	if ep.Override {
		kind = "override"
	}
	fmt.Fprintln(out, styleSection.Render(ep.Executable))
	fmt.Fprintf(out, "  context:     %s (%s)\n", kind, ep.Fingerprint)

	d := ep.Discovery
	fmt.Fprintln(out, "  discovery:")
	fmt.Fprintf(out, "    working dir: %s\n", d.WorkingDir)
	fmt.Fprintf(out, "    timeout:     %ds\n", d.TimeoutSeconds)
	if d.PathExtension != "" {
		fmt.Fprintf(out, "    path:        %s\n", d.PathExtension)
	}
	if len(d.AdditionalPdbs) > 0 {
		fmt.Fprintf(out, "    pdbs:        %s\n", strings.Join(d.AdditionalPdbs, ", "))
	}

	for _, th := range ep.Threads {
		fmt.Fprintf(out, "  thread %d:\n", th.ThreadID)
		fmt.Fprintf(out, "    test dir:    %s\n", th.TestDir)
		fmt.Fprintf(out, "    working dir: %s\n", th.WorkingDir)
		if th.Setup != "" {
			fmt.Fprintf(out, "    setup:       %s\n", th.Setup)
		}
		if th.Teardown != "" {
			fmt.Fprintf(out, "    teardown:    %s\n", th.Teardown)
		}
		for _, ev := range th.Environment {
			fmt.Fprintf(out, "    env:         %s=%s\n", ev.Name, ev.Value)
		}
		fmt.Fprintf(out, "    command:     %s\n", strings.Join(append([]string{ep.Executable}, th.Args...), " "))
	}
	fmt.Fprintln(out)
}

// printMetrics writes the gathered families in the Prometheus text format.
func printMetrics(out io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
