package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/storage"
)

// stubGame ends after overAt steps with a fixed score.
type stubGame struct {
	overAt  int
	score   int
	level   int
	steps   int
	resets  int
	resized int
	state   core.GameState
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.state = core.GameState{}
}

func (g *stubGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	if g.overAt > 0 && g.steps >= g.overAt {
		g.state = core.GameState{Score: g.score, Level: g.level, GameOver: true}
	}
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState { return g.state }

type resizableStub struct{ stubGame }

func (g *resizableStub) Resize(w, h int) { g.resized++ }

var testConfig = core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return mm, cmd
}

func TestModelRecordsScoreOnce(t *testing.T) {
	store := openStore(t)
	game := &stubGame{overAt: 3, score: 500, level: 2}
	m := NewModel(game, store, testConfig)
	if m.Init() == nil {
		t.Fatal("Init() should start ticking")
	}

	for range 5 {
		m, _ = update(t, m, TickMsg{})
	}

	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 500 || scores[0].Level != 2 {
		t.Errorf("TopScores() = %+v, expected one 500 point game on level 2", scores)
	}
	if best, _ := store.BestScore("stub"); best != 500 || m.Best() != 500 {
		t.Errorf("best = %d, Best() = %d, expected 500", best, m.Best())
	}
	if !strings.Contains(m.View(), "New best score: 500!") {
		t.Errorf("View() = %q", m.View())
	}
}

func TestModelKeepsHigherBest(t *testing.T) {
	store := openStore(t)
	if _, err := store.RecordBest("stub", 900); err != nil {
		t.Fatal(err)
	}

	m := NewModel(&stubGame{overAt: 1, score: 300}, store, testConfig)
	m.Init()
	m, _ = update(t, m, TickMsg{})

	if m.Best() != 900 || !strings.Contains(m.View(), "Best: 900") {
		t.Errorf("Best() = %d, View() = %q", m.Best(), m.View())
	}
}

func TestModelRestartReseeds(t *testing.T) {
	game := &stubGame{overAt: 1, score: 10}
	m := NewModel(game, nil, testConfig)
	m.Init()
	m, _ = update(t, m, TickMsg{})
	seed := m.config.Seed

	m, _ = update(t, m, runeKey("r"))
	m, _ = update(t, m, TickMsg{})

	if game.resets != 2 || m.gameState.GameOver || m.scoreSaved {
		t.Errorf("resets = %d, state = %+v, scoreSaved = %v", game.resets, m.gameState, m.scoreSaved)
	}
	if m.config.Seed == seed {
		t.Error("restart should pick a new seed")
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	m := NewModel(&stubGame{overAt: 3}, nil, testConfig)
	m.Init()

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.BackToMenu() || cmd != nil {
		t.Error("back should be ignored while playing")
	}

	for range 3 {
		m, _ = update(t, m, TickMsg{})
	}
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.BackToMenu() || cmd == nil {
		t.Error("back should leave a finished game")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{}, nil, testConfig)
	m, cmd := update(t, m, runeKey("q"))
	if !m.IsQuitting() || cmd == nil || m.View() != "" {
		t.Error("q should quit")
	}
}

func TestModelResize(t *testing.T) {
	plain := &stubGame{}
	m := NewModel(plain, nil, testConfig)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if plain.resets != 1 || m.screen.Width() != 60 || m.config.ScreenH != 20 {
		t.Errorf("resets = %d, screen %dx%d", plain.resets, m.screen.Width(), m.screen.Height())
	}

	rs := &resizableStub{}
	m = NewModel(rs, nil, testConfig)
	update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if rs.resized != 1 || rs.resets != 0 {
		t.Errorf("resized = %d, resets = %d, expected a resize without reset", rs.resized, rs.resets)
	}
}

func TestScreenshot(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	m := NewModel(&stubGame{}, nil, testConfig)

	path, err := m.saveScreenshot()
	if err != nil {
		t.Fatalf("saveScreenshot() failed: %v", err)
	}
	if filepath.Base(filepath.Dir(path)) != "screenshots" || !strings.HasPrefix(filepath.Base(path), "stub_") {
		t.Errorf("saveScreenshot() = %q", path)
	}
}
