package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/session"
	"github.com/vovakirdan/tui-flappy/internal/scene"
)

// Options configures a game session.
type Options = session.Options

// Model is the Bubble Tea model for one flappy session.
type Model struct {
	sess     *session.Session
	driver   *flappy.Driver
	scene    *scene.Scene
	screen   *core.Screen
	snap     flappy.Snapshot
	logger   *log.Logger
	clock    core.Clock
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	board    *BoardModel
	quitting bool
}

// NewModel creates a model with a fresh game in the Idle phase.
func NewModel(opts Options) Model {
	sess := session.New(opts)
	cfg := sess.Runtime

	h := help.New()
	h.Width = cfg.ScreenW

	clock := opts.Clock
	if clock == nil {
		clock = core.SystemClock{}
	}

	return Model{
		sess:   sess,
		driver: sess.Driver,
		scene:  scene.New(opts.Game.Presentation),
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0)),
		snap:   sess.Driver.Game().Snapshot(),
		logger: sess.Logger,
		clock:  clock,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.board != nil {
			return m.updateBoard(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.board == nil {
			DeliverMouse(m.driver.Input(), msg, m.clock.Now())
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	if m.board != nil {
		return m.updateBoard(msg)
	}
	return m, nil
}

// handleKey processes keyboard input on the game screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil

	case key.Matches(msg, m.keys.Board):
		if m.sess.CanBrowse() {
			board := NewBoardModel(m.sess.Store, m.sess.Player, m.config.ScreenW, m.config.ScreenH)
			m.board = &board
			m.driver.Input().Reset()
		}
		return m, nil
	}

	action := m.keys.MapKey(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	Deliver(m.driver.Input(), action, m.clock.Now())
	return m, nil
}

// updateBoard forwards a message to the open run board.
func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	board, cmd := m.board.Update(msg)
	switch {
	case board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case board.IsGoingBack():
		m.board = nil
		return m, nil
	}
	m.board = &board
	return m, cmd
}

// handleResize processes window resize events. The simulation runs in field
// units, so a resize never touches game state.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 0))
	m.help.Width = msg.Width

	if m.board != nil {
		return m.updateBoard(msg)
	}
	return m, nil
}

// handleTick advances the simulation one frame. The board pauses nothing:
// it only opens in Idle or Over, where the game is frozen anyway.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.snap = m.driver.Tick(now)
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current frame as plain text under
// ~/.flappy/screenshots and returns the file path.
func (m *Model) saveScreenshot() (string, error) {
	m.scene.Draw(m.screen, m.snap)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".flappy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create %s: %w", dir, err)
	}

	name := fmt.Sprintf("flappy_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}

	m.scene.Draw(m.screen, m.snap)
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render(m.help.View(m.keys))
	return RenderScreen(m.screen) + "\n" + footer
}

// Snapshot returns the last rendered snapshot.
func (m Model) Snapshot() flappy.Snapshot {
	return m.snap
}

// Driver returns the session's frame driver.
func (m Model) Driver() *flappy.Driver {
	return m.driver
}

// BoardOpen reports whether the run board is showing.
func (m Model) BoardOpen() bool {
	return m.board != nil
}

// Run starts the Bubble Tea program for a local session.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Press and release drive the pointer hold
	)

	_, err := p.Run()
	return err
}
