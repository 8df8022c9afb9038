package tui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tilequest/internal/content"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/lifecycle"
	"github.com/vovakirdan/tilequest/internal/session"
	"github.com/vovakirdan/tilequest/internal/storage"
	"github.com/vovakirdan/tilequest/internal/world"
)

// ErrNotTerminal is returned by Run when stdout is not a terminal.
var ErrNotTerminal = errors.New("tui: stdout is not a terminal")

// WorldReloadedMsg carries a re-read world file.
type WorldReloadedMsg struct {
	Def *world.Definition
	Cat *world.Catalog
	Err error
}

// ModelOptions configure a play model.
type ModelOptions struct {
	Session session.Options
	Store   *storage.Store // Optional; runs are not recorded without it
	Logger  *log.Logger    // Optional
	Runtime core.RuntimeConfig
}

// Model is the Bubble Tea model for one play session.
type Model struct {
	opts     session.Options
	sess     *session.Session
	renderer *Renderer
	store    *storage.Store
	logger   *log.Logger
	clock    core.Clock

	keys      KeyMap
	help      help.Model
	tick      lifecycle.Handle
	frame     lifecycle.Handle
	frameRate int

	width, height int
	status        string
	exitOnBack    bool
	backToMenu    bool
	quitting      bool
}

// NewModel creates a play model and its session.
func NewModel(opts ModelOptions) (*Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := opts.Session.Clock
	if clock == nil {
		clock = core.SystemClock
		opts.Session.Clock = clock
	}
	if opts.Session.Logger == nil {
		opts.Session.Logger = logger
	}
	rate := opts.Runtime.FrameRate
	if rate <= 0 {
		rate = core.DefaultConfig().FrameRate
	}
	if opts.Session.Seed == 0 {
		opts.Session.Seed = opts.Runtime.Seed
	}
	if opts.Runtime.TickInterval > 0 {
		opts.Session.Config.Enemies.TickIntervalMS = int(opts.Runtime.TickInterval.Milliseconds())
	}
	opts.Session.EditorMode = opts.Session.EditorMode || opts.Runtime.EditorMode

	r := NewRenderer(opts.Session.Config.Overlays, clock)
	opts.Session.Renderer = r
	sess, err := session.New(opts.Session)
	if err != nil {
		return nil, fmt.Errorf("tui: start session: %w", err)
	}
	r.Bind(sess)

	return &Model{
		opts:      opts.Session,
		sess:      sess,
		renderer:  r,
		store:     opts.Store,
		logger:    logger,
		clock:     clock,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		frameRate: rate,
	}, nil
}

// Session returns the running session.
func (m *Model) Session() *session.Session {
	return m.sess
}

// BackToMenu reports whether the player asked to leave the world.
func (m *Model) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports whether the player asked to quit.
func (m *Model) IsQuitting() bool {
	return m.quitting
}

// Init starts the enemy tick loop.
func (m *Model) Init() tea.Cmd {
	gen := m.tick.Start()
	return tickCmd(gen, m.sess.TickInterval())
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.tick.Valid(msg.Gen) {
			return m, nil
		}
		m.sess.Tick(msg.Time)
		m.saveFinishedRun()
		return m, tea.Batch(tickCmd(msg.Gen, m.sess.TickInterval()), m.ensureFrames())

	case FrameMsg:
		return m, m.handleFrame(msg)

	case WorldReloadedMsg:
		m.reload(msg)
		return m, m.ensureFrames()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.stopLoops()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}

	action := m.keys.MapKey(msg)
	if action == core.ActionNone {
		return nil
	}
	if action == core.ActionBack && m.sess.Lifecycle().GameOver() {
		m.backToMenu = true
		m.stopLoops()
		if m.exitOnBack {
			return tea.Quit
		}
		return nil
	}

	m.status = ""
	m.sess.HandleAction(action)
	m.saveFinishedRun()
	return m.ensureFrames()
}

func (m *Model) handleFrame(msg FrameMsg) tea.Cmd {
	if !m.frame.Valid(msg.Gen) {
		return nil
	}
	busy := m.sess.Frame(msg.Time)
	if m.renderer.Advance(msg.Time) {
		m.sess.FinishTransition()
	}
	if busy || m.renderer.Animating(msg.Time) {
		return frameCmd(msg.Gen, m.frameRate)
	}
	m.frame.Stop()
	return nil
}

// ensureFrames starts the frame loop when something needs animating.
func (m *Model) ensureFrames() tea.Cmd {
	if m.frame.Active() {
		return nil
	}
	now := m.clock()
	if !m.sess.Transitioning() && !m.sess.Celebration().Active && !m.renderer.Animating(now) {
		return nil
	}
	return frameCmd(m.frame.Start(), m.frameRate)
}

func (m *Model) stopLoops() {
	m.tick.Stop()
	m.frame.Stop()
}

// saveFinishedRun stores the run once after a defeat.
func (m *Model) saveFinishedRun() {
	run, ok := m.sess.TakeFinishedRun()
	if !ok || m.store == nil {
		return
	}
	if err := m.store.SaveRun(runRecord(run)); err != nil {
		m.logger.Warn("could not save run", "run", run.ID, "error", err)
	}
}

func runRecord(run session.RunSummary) storage.RunRecord {
	return storage.RunRecord{
		RunID:        run.ID,
		WorldID:      run.World,
		Level:        run.Level,
		Experience:   run.Experience,
		Kills:        run.Kills,
		RoomsVisited: run.RoomsVisited,
		Duration:     run.Duration,
		Outcome:      run.Outcome,
		Cause:        run.Cause,
		StartedAt:    run.StartedAt,
		EndedAt:      run.EndedAt,
	}
}

// reload swaps in a re-read world. The current run is abandoned.
func (m *Model) reload(msg WorldReloadedMsg) {
	if msg.Err != nil {
		m.logger.Warn("world reload failed", "error", msg.Err)
		m.status = "reload failed: " + msg.Err.Error()
		return
	}
	opts := m.opts
	opts.Definition = msg.Def
	if msg.Cat != nil {
		opts.Catalog = msg.Cat
	}
	sess, err := session.New(opts)
	if err != nil {
		m.logger.Warn("world reload failed", "error", err)
		m.status = "reload failed: " + err.Error()
		return
	}
	m.opts = opts
	m.sess = sess
	m.renderer.Bind(sess)
	m.frame.Stop()
	m.status = "world reloaded"
	m.logger.Info("world reloaded", "world", msg.Def.ID)
}

// RunOptions configure a local play session.
type RunOptions struct {
	Model     ModelOptions
	WatchPath string // World file to hot reload; empty disables watching
}

// Run plays one world in the current terminal until the player quits.
func Run(opts RunOptions) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}
	m, err := NewModel(opts.Model)
	if err != nil {
		return err
	}
	m.exitOnBack = true
	if w, h, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil {
		m.width, m.height = w, h
		m.help.Width = w
	}

	p := tea.NewProgram(m, tea.WithAltScreen())

	if opts.WatchPath != "" {
		w, watchErr := content.NewWatcher(opts.WatchPath, content.DefaultDebounce)
		if watchErr != nil {
			return fmt.Errorf("tui: watch world: %w", watchErr)
		}
		defer w.Close()
		go forwardReloads(p, w, opts.WatchPath)
	}

	_, err = p.Run()
	return err
}

// forwardReloads re-reads the world file on every change and sends it to
// the program.
func forwardReloads(p *tea.Program, w *content.Watcher, path string) {
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return
			}
			def, cat, err := content.LoadWorldFile(path)
			p.Send(WorldReloadedMsg{Def: def, Cat: cat, Err: err})
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			p.Send(WorldReloadedMsg{Err: err})
		}
	}
}
