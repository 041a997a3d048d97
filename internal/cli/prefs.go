package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/bitmeter/internal/config"
	"github.com/rileyhilliard/bitmeter/internal/errors"
	"github.com/rileyhilliard/bitmeter/internal/prefs"
	"github.com/rileyhilliard/bitmeter/internal/ui"
)

// prefsCmd groups the preference subcommands
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "View and change graph preferences",
	Long: `Preferences live in the shared BitMeter database under this client's
prefix, so every machine pointing at the same database sees the same
colours and scale.

Known preferences:
  dlcolour, ulcolour, olcolour, bgcolour   (r, g, b) colours
  scale                                    kB/s at the top of the graph
  size, position                           (x, y) pairs
  opacity                                  10..100
  float, clickthru                         True / False`,
}

var prefsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every preference and where its value comes from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return prefsListCommand(cmd.Context(), cmd.OutOrStdout(), loadOptions())
	},
}

var prefsGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print one preference",
	Long: `Print the effective value of one preference.

Examples:
  bitmeter prefs get scale
  bitmeter prefs get dlcolour`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completePrefNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		return prefsGetCommand(cmd.Context(), cmd.OutOrStdout(), loadOptions(), args[0])
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Validate and save one preference",
	Long: `Validate a value and write it to the database.

Examples:
  bitmeter prefs set scale 2000
  bitmeter prefs set dlcolour "(0, 128, 255)"
  bitmeter prefs set float false`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completePrefNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		return prefsSetCommand(cmd.Context(), cmd.OutOrStdout(), loadOptions(), args[0], args[1])
	},
}

var prefsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the effective preferences as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return prefsExportCommand(cmd.Context(), cmd.OutOrStdout(), loadOptions())
	},
}

func init() {
	prefsCmd.AddCommand(prefsListCmd)
	prefsCmd.AddCommand(prefsGetCmd)
	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsEditCmd)
	prefsCmd.AddCommand(prefsExportCmd)
	rootCmd.AddCommand(prefsCmd)
}

func completePrefNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return prefs.KnownNames(), cobra.ShellCompDirectiveNoFileComp
}

func prefsListCommand(ctx context.Context, out io.Writer, opts config.LoadOptions) error {
	sess, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	fmt.Fprintln(out, ui.RenderPrefsTable(prefRows(sess.prefs)))
	return nil
}

// prefRows lists every preference. Recognised names are validated so a
// bad value written by another client shows up here.
func prefRows(set *prefs.Set) []ui.PrefRow {
	names := set.Names()
	rows := make([]ui.PrefRow, 0, len(names))
	for _, name := range names {
		value, _ := set.Get(name)
		row := ui.PrefRow{Name: name, Value: value, Stored: set.IsStored(name)}
		if prefs.IsKnown(name) {
			if err := prefs.Check(name, value); err != nil {
				row.Err = fmt.Errorf("%s: %w", name, err)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func prefsGetCommand(ctx context.Context, out io.Writer, opts config.LoadOptions, name string) error {
	sess, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	value, ok := sess.prefs.Get(name)
	if !ok {
		return unknownPrefError(name)
	}
	fmt.Fprintln(out, value)

	if isColourPref(name) && isTerminal(out) {
		if rgb, err := sess.prefs.Color(name); err == nil {
			fmt.Fprintln(out, ui.Swatch(rgb.R, rgb.G, rgb.B))
		}
	}
	return nil
}

func prefsSetCommand(ctx context.Context, out io.Writer, opts config.LoadOptions, name, value string) error {
	if !prefs.IsKnown(name) {
		return unknownPrefError(name)
	}
	normalised, err := normalisePref(name, value)
	if err != nil {
		return err
	}

	sess, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.prefs.Set(name, normalised)
	result, err := sess.prefs.Save(ctx)
	if err != nil {
		return err
	}

	if result.Writes() == 0 {
		fmt.Fprintf(out, "%s %s already %s\n", ui.Muted(ui.SymbolComplete), name, normalised)
		return nil
	}
	fmt.Fprintf(out, "%s %s = %s\n", ui.Success(ui.SymbolSuccess), name, normalised)
	return nil
}

// normalisePref validates value and returns it in stored form: tuples as
// "(r, g, b)" and booleans as True/False.
func normalisePref(name, value string) (string, error) {
	if err := prefs.Check(name, value); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrPrefs,
			fmt.Sprintf("Invalid value for '%s': %s", name, value),
			err.Error())
	}
	v, err := prefs.ParseLiteral(value)
	if err != nil {
		return strings.TrimSpace(value), nil
	}
	return v.String(), nil
}

// prefsExport is the YAML document written by 'prefs export'.
type prefsExport struct {
	Prefix      string            `yaml:"prefix"`
	Preferences map[string]string `yaml:"preferences"`
}

func prefsExportCommand(ctx context.Context, out io.Writer, opts config.LoadOptions) error {
	sess, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	doc := prefsExport{
		Prefix:      sess.cfg.Prefix,
		Preferences: make(map[string]string),
	}
	for _, name := range sess.prefs.Names() {
		value, _ := sess.prefs.Get(name)
		doc.Preferences[name] = value
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.WrapWithCode(err, errors.ErrPrefs, "Failed to encode preferences", "")
	}
	return enc.Close()
}

func unknownPrefError(name string) error {
	return errors.New(errors.ErrPrefs,
		fmt.Sprintf("Unknown preference '%s'", name),
		"Known preferences: "+strings.Join(prefs.KnownNames(), ", "))
}

func isColourPref(name string) bool {
	switch name {
	case prefs.DownloadColour, prefs.UploadColour, prefs.OverlapColour, prefs.BackgroundColour:
		return true
	}
	return false
}
