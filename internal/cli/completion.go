package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lnzlayouts/pkg/config"
	"github.com/matzehuels/lnzlayouts/pkg/stack"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for lnzlayouts.

Load them into the current shell:

  $ source <(lnzlayouts completion bash)
  $ lnzlayouts completion zsh > "${fpath[1]}/_lnzlayouts"
  $ lnzlayouts completion fish | source
  PS> lnzlayouts completion powershell | Out-String | Invoke-Expression

Layout kinds (--kind) and state names (--highlight) complete as well.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeKinds completes --kind with the supported layouts.
func completeKinds(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, k := range config.Kinds {
		if strings.HasPrefix(string(k), toComplete) {
			out = append(out, string(k))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeStates completes --highlight with the deletion states.
func completeStates(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, st := range []stack.State{stack.Idle, stack.Panning, stack.Committing, stack.Cancelling} {
		name := strings.ToLower(st.String())
		if strings.HasPrefix(name, strings.ToLower(toComplete)) {
			out = append(out, name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
