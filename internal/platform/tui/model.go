package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/registry"
	"github.com/vovakirdan/hexpop/internal/storage"
)

var logger = log.New(io.Discard)

// SetLogger sets the logger used by the TUI models and the SSH server.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// resizer is implemented by games that can follow terminal resizes without
// restarting.
type resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState

	best       int
	newBest    bool
	scoreSaved bool // Score recorded for the current game over
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
	if store != nil {
		best, err := store.BestScore(game.ID())
		if err != nil {
			logger.Warn("cannot read best score", "game", game.ID(), "err", err)
		}
		m.best = best
	}
	return m
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			logger.Warn("screenshot failed", "err", err)
		} else {
			logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves the game only when it is not running.
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// A restart gets a fresh seed, so endless boards differ between runs.
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.newBest = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.recordScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordScore stores a finished game. Failures are logged and play goes on.
func (m *Model) recordScore() {
	st := m.gameState
	if m.store == nil || st.Score <= 0 {
		return
	}
	id := m.game.ID()

	if _, err := m.store.SaveScore(id, st.Score, st.Level); err != nil {
		logger.Warn("cannot save score", "game", id, "err", err)
	}
	improved, err := m.store.RecordBest(id, st.Score)
	if err != nil {
		logger.Warn("cannot update best score", "game", id, "err", err)
		return
	}
	if improved {
		m.best = st.Score
		m.newBest = true
	}
	logger.Info("game finished", "game", id, "score", st.Score, "level", st.Level, "best", m.best)
}

// saveScreenshot writes the current screen to ~/.hexpop/screenshots.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".hexpop", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the game, plus the best score once the game is over.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.gameState.GameOver && m.store != nil && m.screen.Height() > 0 {
		line := fmt.Sprintf("Best: %d", m.best)
		if m.newBest {
			line = fmt.Sprintf("New best score: %d!", m.best)
		}
		m.screen.DrawTextCenteredWithColor(m.screen.Height()-1, line, core.ColorBrightYellow)
	}

	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Best returns the best score known for the running game.
func (m Model) Best() int {
	return m.best
}

// Run plays one game in the current terminal. It reports whether the player
// asked to go back to a menu rather than quit.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	p := tea.NewProgram(NewModel(game, store, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
