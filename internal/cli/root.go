package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/bitmeter/internal/config"
)

// Persistent flags shared by every command.
var (
	configFlag string
	dbFlag     string
	prefixFlag string
)

var rootCmd = &cobra.Command{
	Use:   "bitmeter",
	Short: "Live bandwidth graph for a BitMeter database",
	Long: `bitmeter draws the per-second download and upload rates recorded by the
BitMeter capture service as a scrolling graph in your terminal.

Run without a subcommand to open the graph.

Examples:
  bitmeter
  bitmeter --db ./bitmeter.db
  bitmeter status
  bitmeter prefs set scale 2000`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return graphCommand(cmd.Context(), loadOptions())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default ~/.config/bitmeter/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "path to the BitMeter database")
	rootCmd.PersistentFlags().StringVar(&prefixFlag, "prefix", "", "namespace for this client's preferences")
}

// loadOptions collects the persistent flags for config.Load.
func loadOptions() config.LoadOptions {
	return config.LoadOptions{
		ConfigPath: configFlag,
		DB:         dbFlag,
		Prefix:     prefixFlag,
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if isUnknownCommandError(err) {
			if name := extractUnknownCommand(err); name != "" {
				fmt.Fprintf(os.Stderr, "Unknown command %q\n\nRun 'bitmeter --help' to see available commands.\n", name)
				os.Exit(1)
			}
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// isUnknownCommandError reports whether err is cobra's complaint about an
// unrecognised command or flag.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of
// `unknown command "foo" for "bitmeter"`.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
