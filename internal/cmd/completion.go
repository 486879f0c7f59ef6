package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate completion script",
	Long: `Generate shell completion script.

To load completions:

Bash:
  $ source <(newsum completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ newsum completion bash > /etc/bash_completion.d/newsum
  # macOS:
  $ newsum completion bash > $(brew --prefix)/etc/bash_completion.d/newsum

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ newsum completion zsh > "${fpath[1]}/_newsum"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ newsum completion fish | source
  # To load completions for each session, execute once:
  $ newsum completion fish > ~/.config/fish/completions/newsum.fish

PowerShell:
  PS> newsum completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> newsum completion powershell > newsum.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeCompletion(cmd.OutOrStdout(), cmd.Root(), args[0], !noDescriptions)
	},
}

var noDescriptions bool

// writeCompletion は shell 向けの補完スクリプトを w に書き出す
func writeCompletion(w io.Writer, root *cobra.Command, shell string, descriptions bool) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, descriptions)
	case "zsh":
		if descriptions {
			return root.GenZshCompletion(w)
		}
		return root.GenZshCompletionNoDesc(w)
	case "fish":
		return root.GenFishCompletion(w, descriptions)
	case "powershell":
		if descriptions {
			return root.GenPowerShellCompletionWithDesc(w)
		}
		return root.GenPowerShellCompletion(w)
	default:
		return fmt.Errorf("unsupported shell: %s", shell)
	}
}

func init() {
	completionCmd.Flags().BoolVar(&noDescriptions, "no-descriptions", false, "Disable completion descriptions")
	rootCmd.AddCommand(completionCmd)
}
