package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/rileyhilliard/bitmeter/internal/config"
	"github.com/rileyhilliard/bitmeter/internal/errors"
	"github.com/rileyhilliard/bitmeter/internal/logger"
	"github.com/rileyhilliard/bitmeter/internal/monitor"
	"github.com/rileyhilliard/bitmeter/internal/prefs"
	"github.com/rileyhilliard/bitmeter/internal/ui"
)

// debugLogFile receives log output while the graph owns the terminal.
const debugLogFile = "bitmeter-debug.log"

// graphCommand runs the live graph until the user quits, then saves any
// preferences the view staged (scale changes, terminal size).
func graphCommand(ctx context.Context, opts config.LoadOptions) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrDisplay,
			"The graph needs an interactive terminal",
			"Run 'bitmeter status' for a one-shot reading instead")
	}

	sess, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	if logger.DebugEnabled() {
		f, err := tea.LogToFile(debugLogFile, "bitmeter")
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to open "+debugLogFile,
				"Unset BITMETER_DEBUG or run from a writable directory")
		}
		defer f.Close()
	}
	log := logger.New("graph")

	scheduler := monitor.NewScheduler(sess.samples)
	scheduler.SetLogger(log)

	model := monitor.NewModel(scheduler, sess.prefs, monitor.Options{
		Interval:  sess.cfg.Interval,
		MinWidth:  sess.cfg.MinWidth,
		MinHeight: sess.cfg.MinHeight,
		Logger:    log,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrDisplay,
			"Graph view stopped unexpectedly",
			"Check the terminal supports full-screen mode")
	}

	m, ok := final.(monitor.Model)
	if !ok {
		return savePrefs(ctx, os.Stdout, sess.prefs)
	}
	if err := m.LastError(); err != nil {
		log.Warn("last refresh failed: %v", err)
	}
	return savePrefs(ctx, os.Stdout, m.Prefs())
}

// savePrefs writes staged preferences and reports what changed.
func savePrefs(ctx context.Context, out io.Writer, set *prefs.Set) error {
	result, err := set.Save(ctx)
	if err != nil {
		return err
	}
	if result.Writes() > 0 {
		fmt.Fprintf(out, "%s Saved preferences (%d new, %d updated)\n",
			ui.Success(ui.SymbolSuccess), result.Inserted, result.Updated)
	}
	return nil
}
