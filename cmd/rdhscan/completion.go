package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// GenerateCompletionsCommand is `rdhscan generate-completions {bash|zsh}`.
// It does not implement completion logic itself: main's cli.App has
// EnableBashCompletion set, which gives every rdhscan invocation a hidden
// --generate-bash-completion flag that lists the current command's
// subcommands/flags; this command only prints the small shell snippet that
// wires a user's shell up to call that hidden flag, per urfave/cli/v2's
// documented completion mechanism.
func GenerateCompletionsCommand(c *cli.Context) error {
	shell := "bash"
	if c.Args().Len() >= 1 {
		shell = c.Args().First()
	}
	switch shell {
	case "bash":
		fmt.Fprintln(os.Stdout, `_rdhscan_bash_autocomplete() {
  local cur opts
  COMPREPLY=()
  cur="${COMP_WORDS[COMP_CWORD]}"
  opts=$( ${COMP_WORDS[0]} --generate-bash-completion )
  COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
  return 0
}
complete -F _rdhscan_bash_autocomplete rdhscan`)
	case "zsh":
		fmt.Fprintln(os.Stdout, `autoload -U compinit && compinit
_rdhscan_zsh_autocomplete() {
  local -a opts
  opts=("${(@f)$(${words[1]} --generate-bash-completion)}")
  _describe 'values' opts
}
compdef _rdhscan_zsh_autocomplete rdhscan`)
	default:
		return fmt.Errorf("unsupported shell %q, want bash|zsh", shell)
	}
	return nil
}
