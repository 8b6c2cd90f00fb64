package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion generator. Output goes to
// stdout so it can be piped straight into the shell's completion
// directory.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for your shell.

Load it for the current session:

  $ source <(deadlock completion bash)
  $ deadlock completion fish | source
  PS> deadlock completion powershell | Out-String | Invoke-Expression

Or install it permanently:

  $ deadlock completion bash > /etc/bash_completion.d/deadlock
  $ deadlock completion zsh  > "${fpath[1]}/_deadlock"
  $ deadlock completion fish > ~/.config/fish/completions/deadlock.fish

Zsh users need compinit enabled first:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
