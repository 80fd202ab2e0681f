package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/games/hexpop"
)

// isolate keeps user config files away from games created in tests.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

var menuConfig = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return mm, cmd
}

func TestMenuItems(t *testing.T) {
	m := NewMenuModel(nil, menuConfig)

	var titles []string
	for _, item := range m.items {
		titles = append(titles, item.Title)
	}
	expected := "HexPop|HexPop (Endless)|Select Level|High Scores"
	if got := strings.Join(titles, "|"); got != expected {
		t.Errorf("menu items = %q, expected %q", got, expected)
	}

	view := m.View()
	for _, want := range []string{"H E X P O P", "> HexPop", "Tab: Scores"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestMenuSelectGame(t *testing.T) {
	m := NewMenuModel(nil, menuConfig)
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selected()
	if sel == nil || sel.GameID != "hexpop_endless" || sel.Level != 0 || cmd == nil {
		t.Errorf("Selected() = %+v", sel)
	}
}

func TestMenuLevelPicker(t *testing.T) {
	m := NewMenuModel(nil, menuConfig)
	for range 2 {
		m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.inLevelSelect {
		t.Fatal("expected the level picker")
	}
	if !strings.Contains(m.View(), "Select a level") || !strings.Contains(m.View(), hexpop.LevelNames()[0]) {
		t.Errorf("View() = %q", m.View())
	}

	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.inLevelSelect {
		t.Fatal("esc should leave the level picker")
	}

	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if sel := m.Selected(); sel == nil || sel.GameID != "hexpop" || sel.Level != 2 {
		t.Errorf("Selected() = %+v, expected hexpop level 2", sel)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, menuConfig)
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}

	m = NewMenuModel(nil, menuConfig)
	m, _ = menuUpdate(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.Config().ScreenW != 100 || m.Config().ScreenH != 30 {
		t.Errorf("Config() = %+v", m.Config())
	}
	m, _ = menuUpdate(t, m, runeKey("q"))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit")
	}
}

func TestMenuShowsBest(t *testing.T) {
	store := openStore(t)
	if _, err := store.RecordBest("hexpop", 1234); err != nil {
		t.Fatal(err)
	}

	m := NewMenuModel(store, menuConfig)
	if m.items[0].Best != 1234 || !strings.Contains(m.View(), "best 1234") {
		t.Errorf("best not shown: %+v", m.items[0])
	}
}

func TestCreateGame(t *testing.T) {
	isolate(t)

	game, err := CreateGame("hexpop", 3)
	if err != nil {
		t.Fatalf("CreateGame() failed: %v", err)
	}
	game.Reset(menuConfig)
	if game.State().Level != 3 {
		t.Errorf("Level = %d, expected 3", game.State().Level)
	}

	if _, err := CreateGame("missing", 0); err == nil {
		t.Error("CreateGame() should fail for an unknown game")
	}
}
