package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/gtadapter/internal/plan"
)

var (
	resolveExecutable string
	resolveDiscovery  bool
	resolveTestDir    string
	resolveThreadID   int
)

// resolveCmd implements "gtadapter resolve TEMPLATE".
var resolveCmd = &cobra.Command{
	Use:   "resolve TEMPLATE",
	Short: "Expand the placeholders in a settings string",
	Long: `Expand $(SolutionDir), $(ExecutablePath), $(ExecutableDir), $(TestDir),
$(ThreadId) and environment variables in TEMPLATE the way a test run would.

Without --discovery the string is resolved for execution; --test-dir
defaults to the scratch directory of --thread-id. With --discovery,
$(TestDir) and $(ThreadId) resolve to nothing.

Examples:
  gtadapter resolve '$(ExecutableDir)/data' --executable build/core_test
  gtadapter resolve '--out=$(TestDir)/r.xml' --executable build/core_test --thread-id 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore()
		if err != nil {
			return err
		}
		r := newResolver(store)
		tmpl := args[0]

		var out string
		if resolveDiscovery {
			out = r.ResolveGenericForDiscovery(tmpl, resolveExecutable)
		} else {
			testDir := resolveTestDir
			if testDir == "" {
				testDir = plan.ScratchDir(defaultScratchRoot(), store.SolutionDir, resolveThreadID)
			}
			out = r.ResolveGenericForExecution(tmpl, resolveExecutable, testDir, strconv.Itoa(resolveThreadID))
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveExecutable, "executable", "", "Test executable the string belongs to")
	resolveCmd.Flags().BoolVar(&resolveDiscovery, "discovery", false, "Resolve for test discovery instead of execution")
	resolveCmd.Flags().StringVar(&resolveTestDir, "test-dir", "", "Value of $(TestDir)")
	resolveCmd.Flags().IntVar(&resolveThreadID, "thread-id", 0, "Value of $(ThreadId)")
	_ = resolveCmd.MarkFlagRequired("executable")
	rootCmd.AddCommand(resolveCmd)
}
