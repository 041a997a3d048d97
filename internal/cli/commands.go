package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/bitmeter/internal/errors"
)

// Command-specific flags
var (
	webOpenFlag bool
)

// graphCmd opens the live bandwidth graph
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Show the live bandwidth graph",
	Long: `Open a full-screen graph of download and upload rates, newest second on
the left, refreshed once per interval.

Keyboard shortcuts:
  q / Esc / Ctrl+C  Quit (saves the terminal size)
  r                 Force refresh
  + / -             Double or halve the scale
  ?                 Show help

Scale changes are saved when the graph closes.

Examples:
  bitmeter graph
  bitmeter graph --db /tmp/bitmeter.db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return graphCommand(cmd.Context(), loadOptions())
	},
}

// statusCmd prints the most recent reading
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the latest rates and a one-minute history",
	Long: `Print the newest sample in the database, how old it is, the DL/UL caption
and a sparkline of the last minute.

Examples:
  bitmeter status
  bitmeter status --db ./bitmeter.db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusCommand(cmd.Context(), cmd.OutOrStdout(), loadOptions(), time.Now())
	},
}

// webCmd shows the companion web interface address
var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Print or open the BitMeter web interface URL",
	Long: `Print the address of the web interface served by the capture service.
The port comes from the service's web.port setting (default 2605).

Examples:
  bitmeter web
  bitmeter web --open`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return webCommand(cmd.Context(), cmd.OutOrStdout(), loadOptions(), webOpenFlag)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for bitmeter.

Examples:
  # Bash
  bitmeter completion bash > /etc/bash_completion.d/bitmeter

  # Zsh
  bitmeter completion zsh > "${fpath[1]}/_bitmeter"

  # Fish
  bitmeter completion fish > ~/.config/fish/completions/bitmeter.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	webCmd.Flags().BoolVar(&webOpenFlag, "open", false, "open the address in the default browser")

	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(completionCmd)
}
