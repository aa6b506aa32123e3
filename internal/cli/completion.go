package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/binheat/pkg/pipeline"
)

// completionCommand writes a shell completion script for binheat to stdout.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion bash|zsh|fish|powershell",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for binheat.

Besides subcommands, the scripts complete --format with pdf, png, svg and
json, offer .ttf files for -F/--font and .toml files for --config, and fall
back to file names for the relation and -1/-2 label files.

  bash:        source <(binheat completion bash)
  zsh:         binheat completion zsh > "${fpath[1]}/_binheat"
  fish:        binheat completion fish > ~/.config/fish/completions/binheat.fish
  powershell:  binheat completion powershell | Out-String | Invoke-Expression

Start a new shell after installing a script.`,
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
	return cmd
}

// formatCompletions are offered for --format, in preference order.
var formatCompletions = []cobra.Completion{
	pipeline.FormatPDF + "\tvector, the default",
	pipeline.FormatPNG + "\traster, see --scale",
	pipeline.FormatSVG + "\tvector with the font embedded",
	pipeline.FormatJSON + "\tcomputed layout",
}

// registerCompletions attaches value completions to the flags cmd has.
func registerCompletions(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(formatCompletions, cobra.ShellCompDirectiveNoFileComp))
	}
	if flags.Lookup("font") != nil {
		_ = cmd.MarkFlagFilename("font", "ttf")
	}
	if flags.Lookup("config") != nil {
		_ = cmd.MarkFlagFilename("config", "toml")
	}
	for _, name := range []string{"left-labels", "top-labels", "output"} {
		if flags.Lookup(name) != nil {
			_ = cmd.MarkFlagFilename(name)
		}
	}
}
