package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/AbdelazizMoustafa10m/gtadapter/internal/placeholder"
	"github.com/AbdelazizMoustafa10m/gtadapter/internal/settings"
)

// errInitCancelled is returned when the user aborts the init form.
var errInitCancelled = errors.New("init cancelled by user")

const wizardWidth = 80

// runInitWizard asks for the initial settings values. Tests replace it.
var runInitWizard = func(vars *settings.TemplateVars) error {
	threads := strconv.Itoa(vars.MaxNrOfThreads)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Solution directory").
				Description("Substituted for $(SolutionDir). Leave empty to use the settings file's directory.").
				Value(&vars.SolutionDir),
			huh.NewSelect[string]().
				Title("Working directory of test processes").
				Options(
					huh.NewOption("Executable directory", placeholder.TokenExecutableDir),
					huh.NewOption("Solution directory", placeholder.TokenSolutionDir),
					huh.NewOption("Per-thread scratch directory", placeholder.TokenTestDir),
				).
				Value(&vars.WorkingDir),
			huh.NewConfirm().
				Title("Print test output?").
				Value(&vars.PrintTestOutput),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Run tests in parallel?").
				Value(&vars.ParallelTestExecution),
			huh.NewInput().
				Title("Maximum number of threads").
				Description("0 uses every processor.").
				Validate(validateThreads).
				Value(&threads),
		),
	).
		WithTheme(huh.ThemeCharm()).
		WithWidth(wizardWidth).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errInitCancelled
		}
		return fmt.Errorf("init form: %w", err)
	}

	vars.MaxNrOfThreads, _ = strconv.Atoi(threads)
	return nil
}

func validateThreads(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("enter 0 or a positive number")
	}
	return nil
}
