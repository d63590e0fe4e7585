package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/shelfscribe/internal/storage"
	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell autocompletion scripts",
		Long: `Generate autocompletion scripts for your shell.

Examples:
  # Bash (add to ~/.bashrc)
  source <(shelfscribe completion bash)

  # Zsh (add to ~/.zshrc)
  source <(shelfscribe completion zsh)

  # Fish
  shelfscribe completion fish > ~/.config/fish/completions/shelfscribe.fish

  # PowerShell
  shelfscribe completion powershell | Out-String | Invoke-Expression`,
		Args:                  cobra.ExactArgs(1),
		Annotations:           map[string]string{skipShelf: "true"},
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			default:
				return cmd.Help()
			}
		},
	}

	return cmd
}

// completeCells suggests the slots in use for the first n positional
// arguments. It reads the shelf directly since completion requests skip
// opening the store.
func completeCells(n int) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) >= n || cfg == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		backend, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Dir)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		defer func() { _ = backend.Close() }()

		d, err := storage.NewAdapter(backend, logger).Load()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var out []string
		for _, key := range d.Cells() {
			if strings.HasPrefix(key, toComplete) {
				out = append(out, fmt.Sprintf("%s\t%s, %d notebook(s)", key, slotLabel(key), len(d[key])))
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}
