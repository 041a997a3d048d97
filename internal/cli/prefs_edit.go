package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/bitmeter/internal/config"
	"github.com/rileyhilliard/bitmeter/internal/errors"
	"github.com/rileyhilliard/bitmeter/internal/prefs"
	"github.com/rileyhilliard/bitmeter/internal/ui"
)

var prefsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit preferences in an interactive form",
	Long: `Open a form with the graph colours, scale and window options.
Opacity and click-through are only offered on platforms whose desktop
client can apply them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return prefsEditCommand(cmd.Context(), cmd.OutOrStdout(), loadOptions())
	},
}

// fieldLabels titles each editable preference in the form.
var fieldLabels = map[string]string{
	prefs.DownloadColour:   "Download colour",
	prefs.UploadColour:     "Upload colour",
	prefs.OverlapColour:    "Overlap colour",
	prefs.BackgroundColour: "Background colour",
	prefs.Scale:            "Scale (kB/s)",
	prefs.Opacity:          "Opacity (%)",
	prefs.Float:            "Stay on top",
	prefs.ClickThrough:     "Click through",
}

// editableNames lists the preferences the form shows on a platform, in
// display order.
func editableNames(caps config.Capabilities) []string {
	names := []string{
		prefs.DownloadColour,
		prefs.UploadColour,
		prefs.OverlapColour,
		prefs.BackgroundColour,
		prefs.Scale,
		prefs.Float,
	}
	if caps.Opacity {
		names = append(names, prefs.Opacity)
	}
	if caps.ClickThrough {
		names = append(names, prefs.ClickThrough)
	}
	return names
}

func isBoolPref(name string) bool {
	return name == prefs.Float || name == prefs.ClickThrough
}

// prefsForm binds form fields to editable copies of the current values.
type prefsForm struct {
	names []string
	text  map[string]*string
	flags map[string]*bool
}

// newPrefsForm prefills a form from set. Boolean fields that fail to parse
// start unchecked.
func newPrefsForm(set *prefs.Set, caps config.Capabilities) *prefsForm {
	f := &prefsForm{
		names: editableNames(caps),
		text:  make(map[string]*string),
		flags: make(map[string]*bool),
	}
	for _, name := range f.names {
		if isBoolPref(name) {
			b, _ := set.Bool(name)
			f.flags[name] = &b
			continue
		}
		s, _ := set.Get(name)
		f.text[name] = &s
	}
	return f
}

// build lays the fields out as a huh form, validating each text field
// with the same rules as 'prefs set'.
func (f *prefsForm) build() *huh.Form {
	fields := make([]huh.Field, 0, len(f.names))
	for _, name := range f.names {
		name := name
		if isBoolPref(name) {
			fields = append(fields, huh.NewConfirm().
				Title(fieldLabels[name]).
				Affirmative("Yes").
				Negative("No").
				Value(f.flags[name]))
			continue
		}
		fields = append(fields, huh.NewInput().
			Title(fieldLabels[name]).
			Description(fieldHint(name)).
			Value(f.text[name]).
			Validate(func(s string) error {
				return prefs.Check(name, s)
			}))
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

func fieldHint(name string) string {
	switch {
	case isColourPref(name):
		return "(red, green, blue), each 0-255"
	case name == prefs.Opacity:
		return fmt.Sprintf("%d to %d", prefs.MinOpacity, prefs.MaxOpacity)
	default:
		return ""
	}
}

// apply stages every field whose value differs from set. It reports how
// many were staged.
func (f *prefsForm) apply(set *prefs.Set) (int, error) {
	staged := 0
	for _, name := range f.names {
		current, _ := set.Get(name)

		var next string
		if isBoolPref(name) {
			next = prefs.Format(*f.flags[name])
		} else {
			normalised, err := normalisePref(name, *f.text[name])
			if err != nil {
				return staged, err
			}
			next = normalised
		}

		if sameValue(name, current, next) {
			continue
		}
		set.Set(name, next)
		staged++
	}
	return staged, nil
}

// sameValue compares two raw values after normalising both, so "(1,2,3)"
// and "(1, 2, 3)" count as unchanged.
func sameValue(name, a, b string) bool {
	na, errA := normalisePref(name, a)
	nb, errB := normalisePref(name, b)
	if errA != nil || errB != nil {
		return a == b
	}
	return na == nb
}

func prefsEditCommand(ctx context.Context, out io.Writer, opts config.LoadOptions) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New(errors.ErrDisplay,
			"The preferences form needs an interactive terminal",
			"Use 'bitmeter prefs set <name> <value>' instead")
	}

	sess, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	form := newPrefsForm(sess.prefs, config.CurrentCapabilities())
	if err := form.build().RunWithContext(ctx); err != nil {
		if err == huh.ErrUserAborted {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		return errors.WrapWithCode(err, errors.ErrDisplay,
			"Failed to get user input",
			"Use 'bitmeter prefs set <name> <value>' instead")
	}

	staged, err := form.apply(sess.prefs)
	if err != nil {
		return err
	}
	if staged == 0 {
		fmt.Fprintln(out, ui.Muted("No changes."))
		return nil
	}
	return savePrefs(ctx, out, sess.prefs)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
