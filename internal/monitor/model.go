package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/bitmeter/internal/logger"
	"github.com/rileyhilliard/bitmeter/internal/prefs"
	"github.com/rileyhilliard/bitmeter/internal/store"
)

// Options configures the graph view.
type Options struct {
	Interval  time.Duration // tick period, default 1s
	MinWidth  int           // smallest usable terminal, in cells
	MinHeight int
	Logger    logger.Logger
}

// Model is the Bubble Tea model for the live bandwidth graph.
type Model struct {
	scheduler *Scheduler
	prefs     *prefs.Set
	history   *History
	logger    logger.Logger

	interval  time.Duration
	minWidth  int
	minHeight int

	width   int
	height  int
	now     int64
	caption string

	// fetching is set while a query is in flight; ticks arriving meanwhile
	// are dropped.
	fetching bool
	// lastErr is the most recent failed fetch, cleared by the next success.
	lastErr error

	// repaintQueued is set while a repaintMsg is pending so that bursts of
	// resizes and ticks rebuild the graph once.
	repaintQueued bool
	graph         string
	prefsErr      error

	keys     keyMap
	help     help.Model
	quitting bool
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// frameMsg carries the result of a successful fetch.
type frameMsg struct {
	frame Frame
}

// fetchFailedMsg reports a fetch that failed; the previous frame stays up.
type fetchFailedMsg struct {
	err error
}

// repaintMsg asks for the graph to be rebuilt from the current history.
type repaintMsg struct{}

// NewModel creates the graph view. set supplies the scale and colours on
// every repaint and receives the terminal size when the view quits.
func NewModel(scheduler *Scheduler, set *prefs.Set, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.MinWidth < 1 {
		opts.MinWidth = 1
	}
	if opts.MinHeight < 1 {
		opts.MinHeight = 1
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}

	return Model{
		scheduler: scheduler,
		prefs:     set,
		history:   NewHistory(),
		logger:    opts.Logger,
		interval:  opts.Interval,
		minWidth:  opts.MinWidth,
		minHeight: opts.MinHeight,
		caption:   Caption(store.Pair{}),
		keys:      defaultKeyMap(),
		help:      newHelp(),
	}
}

// Init starts the tick timer. The first fetch waits for the terminal size.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		first := m.width == 0
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cmds := []tea.Cmd{m.markDirty()}
		if first {
			cmds = append(cmds, m.fetchCmd())
		}
		return m, tea.Batch(cmds...)

	case tickMsg:
		if m.fetching {
			m.logger.Debug("tick dropped: previous fetch still running")
			return m, m.tickCmd()
		}
		fetch := m.fetchCmd()
		return m, tea.Batch(m.tickCmd(), fetch)

	case frameMsg:
		m.fetching = false
		m.lastErr = nil
		m.now = msg.frame.Now
		m.caption = msg.frame.Caption
		m.history.Replace(msg.frame.Samples)
		cmd := m.markDirty()
		return m, cmd

	case fetchFailedMsg:
		// Keep showing the previous frame.
		m.fetching = false
		m.lastErr = msg.err
		return m, nil

	case repaintMsg:
		m.repaintQueued = false
		m.rebuild()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if m.width > 0 && m.height > 0 {
			m.prefs.Set(prefs.Size, prefs.Pair{A: m.width, B: m.height})
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		if m.fetching {
			return m, nil
		}
		cmd := m.fetchCmd()
		return m, cmd

	case key.Matches(msg, m.keys.ScaleUp):
		m.adjustScale(func(s int) int { return s * 2 })
		cmd := m.markDirty()
		return m, cmd

	case key.Matches(msg, m.keys.ScaleDown):
		m.adjustScale(func(s int) int { return s / 2 })
		cmd := m.markDirty()
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		cmd := m.markDirty()
		return m, cmd
	}
	return m, nil
}

// adjustScale stages a new scale. The result is never below 1 kB/s.
func (m *Model) adjustScale(next func(int) int) {
	scale, err := m.prefs.Number(prefs.Scale)
	if err != nil {
		m.prefsErr = err
		return
	}
	scale = next(scale)
	if scale < 1 {
		scale = 1
	}
	m.prefs.Set(prefs.Scale, scale)
	m.logger.Debug("scale set to %d kB/s", scale)
}

// View renders the graph.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchCmd marks a fetch as in flight and returns the command running it.
// It must only be called from Update, and its result assigned before m is
// returned: the flag lives on the copy Update hands back.
func (m *Model) fetchCmd() tea.Cmd {
	if m.width == 0 {
		return nil
	}
	m.fetching = true
	scheduler := m.scheduler
	width := NewCanvas(m.width, m.graphRows()).Width()
	return func() tea.Msg {
		frame, err := scheduler.Fetch(context.Background(), width)
		if err != nil {
			return fetchFailedMsg{err: err}
		}
		return frameMsg{frame: frame}
	}
}

// markDirty schedules a rebuild unless one is already pending. Like
// fetchCmd, call it before m is returned.
func (m *Model) markDirty() tea.Cmd {
	if m.repaintQueued {
		return nil
	}
	m.repaintQueued = true
	return func() tea.Msg { return repaintMsg{} }
}

// rebuild plans and rasterises the graph. Scale and colours are read from
// preferences each time so edits show up on the next repaint.
func (m *Model) rebuild() {
	m.prefsErr = nil
	if m.TooSmall() {
		m.graph = ""
		return
	}

	palette, err := readPalette(m.prefs)
	if err != nil {
		m.prefsErr = err
		m.graph = ""
		return
	}
	scale, err := m.prefs.Number(prefs.Scale)
	if err != nil {
		m.prefsErr = err
		m.graph = ""
		return
	}

	canvas := NewCanvas(m.width, m.graphRows())
	segments := Plan(PlanInput{
		Samples: m.history.Samples(),
		Now:     m.now,
		Height:  canvas.Height(),
		ScaleKB: scale,
		Palette: palette,
	})
	for _, seg := range segments {
		canvas.Draw(seg)
	}
	m.graph = canvas.Render(palette.Background)
}

// readPalette reads the four graph colours from preferences.
func readPalette(set *prefs.Set) (Palette, error) {
	var p Palette
	for _, c := range []struct {
		name string
		dst  *prefs.RGB
	}{
		{prefs.DownloadColour, &p.Download},
		{prefs.UploadColour, &p.Upload},
		{prefs.OverlapColour, &p.Overlap},
		{prefs.BackgroundColour, &p.Background},
	} {
		rgb, err := set.Color(c.name)
		if err != nil {
			return Palette{}, err
		}
		*c.dst = rgb
	}
	return p, nil
}

// TooSmall reports whether the terminal is below the minimum usable size.
func (m Model) TooSmall() bool {
	return m.width < m.minWidth || m.height < m.minHeight
}

// graphRows is the number of terminal rows left for the graph once the
// caption and footer are laid out.
func (m Model) graphRows() int {
	rows := m.height - 1 - footerHeight(m.renderFooter())
	if rows < 1 {
		rows = 1
	}
	return rows
}

// LastError returns the most recent fetch error, or nil after a success.
func (m Model) LastError() error {
	return m.lastErr
}

// Prefs returns the preference set, including anything staged by the view.
func (m Model) Prefs() *prefs.Set {
	return m.prefs
}
