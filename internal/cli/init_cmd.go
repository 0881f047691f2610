package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/gtadapter/internal/settings"
)

// initFlagForce and initFlagInteractive are the flag values for the init subcommand.
var (
	initFlagForce       bool
	initFlagInteractive bool
)

// initCmd implements "gtadapter init".
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a gtadapter.toml settings file",
	Long: `Write a gtadapter.toml with the default settings to the current
directory. An existing file is preserved unless --force is supplied.

Examples:
  gtadapter init                  # write defaults
  gtadapter init --interactive    # answer a few questions first
  gtadapter init --dir sln --force`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlagForce, "force", false, "Overwrite an existing gtadapter.toml")
	initCmd.Flags().BoolVarP(&initFlagInteractive, "interactive", "i", false, "Ask for the initial values")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	destDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	path := filepath.Join(destDir, settings.ConfigFileNames[0])
	if _, statErr := os.Stat(path); statErr == nil && !initFlagForce {
		return fmt.Errorf("%s already exists in %s; use --force to overwrite", settings.ConfigFileNames[0], destDir)
	}

	vars := settings.DefaultTemplateVars()
	if flagSolutionDir != "" {
		vars.SolutionDir = flagSolutionDir
	}
	if initFlagInteractive {
		if err := runInitWizard(&vars); err != nil {
			return err
		}
	}

	data, err := settings.RenderTemplate(vars)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "Created %s\n\n", path)
	fmt.Fprintln(stderr, "Next steps:")
	fmt.Fprintf(stderr, "  1. Edit %s to adjust the settings\n", path)
	fmt.Fprintln(stderr, "  2. Run: gtadapter config validate")
	fmt.Fprintln(stderr, "  3. Run: gtadapter plan <test executables>")
	return nil
}
