package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/gtadapter/internal/logging"
)

// Global flag values accessible to all subcommands.
var (
	flagVerbose     bool
	flagQuiet       bool
	flagConfig      string
	flagDir         string
	flagNoColor     bool
	flagSolutionDir string
	flagSet         []string
)

// rootCmd is the base command for gtadapter.
var rootCmd = &cobra.Command{
	Use:   "gtadapter",
	Short: "Per-executable settings for Google Test runs",
	Long: `gtadapter resolves the settings a Google Test run uses for each test
executable: solution-wide settings, per-executable overrides, and the
placeholders ($(SolutionDir), $(ExecutableDir), $(TestDir), ...) that
settings strings may contain.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Check env vars for flags not explicitly set on command line.
		if !cmd.Flags().Changed("verbose") && os.Getenv("GTA_VERBOSE") != "" {
			flagVerbose = true
		}
		if !cmd.Flags().Changed("quiet") && os.Getenv("GTA_QUIET") != "" {
			flagQuiet = true
		}
		if !cmd.Flags().Changed("no-color") && (os.Getenv("NO_COLOR") != "" || os.Getenv("GTA_NO_COLOR") != "") {
			flagNoColor = true
		}

		jsonFormat := os.Getenv("GTA_LOG_FORMAT") == "json"
		logging.Setup(flagVerbose, flagQuiet, jsonFormat)

		if flagNoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}

		if flagDir != "" {
			if err := os.Chdir(flagDir); err != nil {
				return fmt.Errorf("changing directory to %s: %w", flagDir, err)
			}
		}

		return nil
	},
}

func init() {
	registerPersistentFlags(rootCmd, true)
}

// registerPersistentFlags adds the global flags to cmd. When bind is false
// the flags use fresh variables instead of the package-level ones.
func registerPersistentFlags(cmd *cobra.Command, bind bool) {
	pf := cmd.PersistentFlags()
	if !bind {
		pf.BoolP("verbose", "v", false, "Enable verbose (debug) output (env: GTA_VERBOSE)")
		pf.BoolP("quiet", "q", false, "Suppress all output except errors (env: GTA_QUIET)")
		pf.String("config", "", "Path to gtadapter.toml settings file")
		pf.String("dir", "", "Override working directory")
		pf.Bool("no-color", false, "Disable colored output (env: GTA_NO_COLOR, NO_COLOR)")
		pf.String("solution-dir", "", "Directory substituted for $(SolutionDir)")
		pf.StringArray("set", nil, "Override a setting, key=value (repeatable)")
		return
	}
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose (debug) output (env: GTA_VERBOSE)")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress all output except errors (env: GTA_QUIET)")
	pf.StringVar(&flagConfig, "config", "", "Path to gtadapter.toml settings file")
	pf.StringVar(&flagDir, "dir", "", "Override working directory")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output (env: GTA_NO_COLOR, NO_COLOR)")
	pf.StringVar(&flagSolutionDir, "solution-dir", "", "Directory substituted for $(SolutionDir)")
	pf.StringArrayVar(&flagSet, "set", nil, "Override a setting, key=value (repeatable)")
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// NewRootCmd returns a fresh root command carrying every registered
// subcommand, for the completion and man page generators.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               rootCmd.Use,
		Short:             rootCmd.Short,
		Long:              rootCmd.Long,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rootCmd.PersistentPreRunE,
	}
	registerPersistentFlags(cmd, false)

	for _, child := range rootCmd.Commands() {
		cmd.AddCommand(child)
	}
	return cmd
}
