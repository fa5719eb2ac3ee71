package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for tally.

The completion command allows you to generate shell completion scripts for
bash, zsh, fish, and powershell. This enables tab-completion for commands,
flags, and arguments in your shell.

Usage:
  tally completion bash       Generate bash completion script
  tally completion zsh        Generate zsh completion script
  tally completion fish       Generate fish completion script
  tally completion powershell Generate powershell completion script

Installation Instructions:

Bash:
  # Load completion temporarily (current session only):
  source <(tally completion bash)

  # Install completion permanently:
  # Linux:
  tally completion bash > ~/.local/share/bash-completion/completions/tally

  # macOS (requires bash-completion from Homebrew):
  tally completion bash > $(brew --prefix)/etc/bash_completion.d/tally

Zsh:
  # Load completion temporarily (current session only):
  source <(tally completion zsh)

  # Install completion permanently:
  # Add to ~/.zshrc:
  echo 'fpath=(~/.zsh/completion $fpath)' >> ~/.zshrc
  echo 'autoload -Uz compinit && compinit' >> ~/.zshrc

  # Generate completion file:
  mkdir -p ~/.zsh/completion
  tally completion zsh > ~/.zsh/completion/_tally

  # Then restart your shell

Fish:
  # Install completion permanently:
  tally completion fish > ~/.config/fish/completions/tally.fish

PowerShell:
  # Open your PowerShell profile:
  notepad $PROFILE

  # Add this line to your profile:
  tally completion powershell | Out-String | Invoke-Expression

  # Save and restart PowerShell`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.ExactValidArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return generateCompletion(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// generateCompletion writes the completion script for shell to the command's
// output. It never opens storage.
func generateCompletion(cmd *cobra.Command, shell string) error {
	out := cmd.OutOrStdout()
	var err error

	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(out)
	case "zsh":
		err = rootCmd.GenZshCompletion(out)
	case "fish":
		err = rootCmd.GenFishCompletion(out, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(out)
	default:
		return fmt.Errorf("unsupported shell %q (supported: bash, zsh, fish, powershell)", shell)
	}

	if err != nil {
		return fmt.Errorf("failed to generate %s completion: %w", shell, err)
	}
	return nil
}
