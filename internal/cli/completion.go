package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/gtadapter/internal/settings"
)

// completionCmd prints a completion script. Option names are completed for
// --set.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for gtadapter.

To install completions:

  Bash:
    gtadapter completion bash | sudo tee /etc/bash_completion.d/gtadapter > /dev/null

  Zsh:
    gtadapter completion zsh > "${fpath[1]}/_gtadapter"

  Fish:
    gtadapter completion fish > ~/.config/fish/completions/gtadapter.fish

  PowerShell:
    gtadapter completion powershell > gtadapter.ps1`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

// completeSetFlag offers "name=" for every option name starting with
// toComplete. Once the name is typed nothing more is suggested.
func completeSetFlag(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if strings.Contains(toComplete, "=") {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, name := range settings.OptionNames() {
		if strings.HasPrefix(name, toComplete) {
			out = append(out, name+"=")
		}
	}
	return out, cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
}

func init() {
	_ = rootCmd.RegisterFlagCompletionFunc("set", completeSetFlag)
	rootCmd.AddCommand(completionCmd)
}
