package cmd

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate completion script",
	Long: `Generate shell completion script.

To load completions:

Bash:
  $ source <(jira-wrklg completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ jira-wrklg completion bash > /etc/bash_completion.d/jira-wrklg
  # macOS:
  $ jira-wrklg completion bash > $(brew --prefix)/etc/bash_completion.d/jira-wrklg

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ jira-wrklg completion zsh > "${fpath[1]}/_jira-wrklg"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ jira-wrklg completion fish | source
  # To load completions for each session, execute once:
  $ jira-wrklg completion fish > ~/.config/fish/completions/jira-wrklg.fish

PowerShell:
  PS> jira-wrklg completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> jira-wrklg completion powershell > jira-wrklg.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
