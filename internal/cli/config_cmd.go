package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/gtadapter/internal/settings"
)

var configDebugTarget string

// configCmd is the parent "config" namespace command. It has no action of its
// own -- it groups debug and validate subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Settings management commands",
	Long:  "Inspect, validate, and debug gtadapter settings.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// configDebugCmd implements "gtadapter config debug".
var configDebugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Show resolved settings with source annotations",
	Long: `Display the solution-wide settings showing each value and the source
it came from (cli flag, environment variable, settings file, user file, or
default). With --target, also show the settings that apply to that
executable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore()
		if err != nil {
			return err
		}
		printStore(cmd.OutOrStdout(), store)
		if configDebugTarget == "" {
			return nil
		}
		return printTarget(cmd, store, configDebugTarget)
	},
}

// configValidateCmd implements "gtadapter config validate".
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate settings and report clamped values",
	Long: `Load every settings layer and report values that were replaced by safe
defaults. Files that fail to parse or name unknown options are errors.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore()
		if err != nil {
			return err
		}
		printValidationResult(cmd.OutOrStdout(), store.Validation)
		return nil
	},
}

func init() {
	configDebugCmd.Flags().StringVar(&configDebugTarget, "target", "", "Executable whose effective settings to show")
	configCmd.AddCommand(configDebugCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

// ---- Lipgloss styles --------------------------------------------------------

// sourceStyle returns a lipgloss style for a given Source. --no-color sets
// the Ascii profile, which strips the colors.
func sourceStyle(src settings.Source) lipgloss.Style {
	switch src {
	case settings.SourceFile:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // bright blue
	case settings.SourceUser:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // bright cyan
	case settings.SourceEnv:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // bright yellow
	case settings.SourceCLI:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9")) // bright red
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // bright green
	}
}

var (
	styleHeader    = lipgloss.NewStyle().Bold(true)
	styleSeparator = lipgloss.NewStyle()
	styleSection   = lipgloss.NewStyle().Bold(true)
	styleWarnLbl   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true) // yellow
	styleSuccess   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))            // green
)

const fieldWidth = 34 // column width for option names

func printHeader(out io.Writer, title string) {
	fmt.Fprintln(out, styleHeader.Render(title))
	fmt.Fprintln(out, styleSeparator.Render(strings.Repeat("=", len(title))))
	fmt.Fprintln(out)
}

// printStore writes the baseline with the source of every value.
func printStore(out io.Writer, store *settings.Store) {
	printHeader(out, "Settings Debug")

	if store.Path != "" {
		fmt.Fprintf(out, "Settings file: %s\n", store.Path)
	} else {
		fmt.Fprintln(out, "Settings file: none found")
	}
	if store.SolutionDir != "" {
		fmt.Fprintf(out, "Solution dir:  %s\n", store.SolutionDir)
	} else {
		fmt.Fprintln(out, "Solution dir:  unknown")
	}
	fmt.Fprintf(out, "Overrides:     %d\n", store.OverrideCount())
	fmt.Fprintln(out)

	fmt.Fprintln(out, styleSection.Render("[settings]"))
	for _, f := range settings.Fields(store.Baseline()) {
		printField(out, f.Name, fmt.Sprintf("%q", f.Value), store.Sources[f.Name])
	}
	fmt.Fprintln(out)
}

// printField writes a single key = value (source: ...) line.
func printField(out io.Writer, name, value string, src settings.Source) {
	padded := fmt.Sprintf("  %-*s", fieldWidth, name)
	srcLabel := sourceStyle(src).Render(fmt.Sprintf("(source: %s)", src))
	fmt.Fprintf(out, "%s = %-40s %s\n", padded, value, srcLabel)
}

// printTarget activates target's settings and prints what is in effect.
func printTarget(cmd *cobra.Command, store *settings.Store, target string) error {
	out := cmd.OutOrStdout()
	sw := newSwitcher(store, nil)
	return sw.RunWithOverride(cmd.Context(), target, func(_ context.Context) error {
		opts := sw.Current()
		kind := "baseline"
		if opts != store.Baseline() {
			kind = "override"
		}

		fmt.Fprintln(out, styleSection.Render(fmt.Sprintf("[target %s]", target)))
		fmt.Fprintf(out, "  context     = %s\n", kind)
		fmt.Fprintf(out, "  fingerprint = %s\n", settings.Fingerprint(opts))
		fmt.Fprintf(out, "  summary     = %s\n", settings.Summary(opts))
		return nil
	})
}

// printValidationResult writes the clamped values, if any.
func printValidationResult(out io.Writer, result *settings.ValidationResult) {
	printHeader(out, "Settings Validation")

	if !result.HasWarnings() {
		fmt.Fprintln(out, styleSuccess.Render("No issues found."))
		return
	}

	fmt.Fprintln(out, styleWarnLbl.Render("Warnings:"))
	for _, issue := range result.Issues {
		fmt.Fprintf(out, "  [%s] %s\n", issue.Field, issue.Message)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d warning(s)\n", len(result.Issues))
}
