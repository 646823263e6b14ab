package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nextonesfaster/retrvid/internal/idstore"
)

// completionShells lists the shells --completion can generate scripts for.
var completionShells = []string{"bash", "zsh", "fish", "powershell"}

const completionHelp = `Shell completion:

Bash:
  $ source <(rid --completion bash)

Zsh:
  $ rid --completion zsh > "${fpath[1]}/_rid"

Fish:
  $ rid --completion fish > ~/.config/fish/completions/rid.fish

PowerShell:
  PS> rid --completion powershell | Out-String | Invoke-Expression`

// writeCompletion writes the completion script for shell to w.
func writeCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return &usageError{fmt.Errorf("unsupported shell %q (valid: %v)", shell, completionShells)}
	}
}

// completeNames offers stored names for the NAME argument and --remove.
// It never creates the id file.
func (a *app) completeNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	path, err := a.resolvePath()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	store, err := idstore.Load(path)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names, _ := store.List()
	return names, cobra.ShellCompDirectiveNoFileComp
}
