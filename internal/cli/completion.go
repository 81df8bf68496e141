package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for flowpack.

Bash:
  $ source <(flowpack completion bash)

Zsh:
  $ flowpack completion zsh > "${fpath[1]}/_flowpack"

Fish:
  $ flowpack completion fish | source

PowerShell:
  PS> flowpack completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}

// completeFiles completes the first argument with files of the given
// extensions and registers value completions for the shared flags.
func completeFiles(cmd *cobra.Command, exts ...string) {
	cmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return exts, cobra.ShellCompDirectiveFilterFileExt
	}
	completeValues(cmd, "orientation", "horizontal", "vertical")
	completeValues(cmd, "width-mode", "exact", "at_most", "unspecified")
	completeValues(cmd, "height-mode", "exact", "at_most", "unspecified")
	completeValues(cmd, "format", "svg", "json", "txt")
	completeValues(cmd, "to", "toml", "json")
}

// completeValues registers a fixed value list for a flag, if cmd has it.
func completeValues(cmd *cobra.Command, flag string, values ...string) {
	if cmd.Flags().Lookup(flag) == nil {
		return
	}
	_ = cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
}
