package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return sm
}

func TestSessionFlow(t *testing.T) {
	isolate(t)
	m := NewSessionModel(nil, menuConfig)

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.current != screenGame || m.game.game.ID() != "hexpop" {
		t.Fatalf("current = %v, expected a hexpop game", m.current)
	}
	m = sessionUpdate(t, m, TickMsg{})
	if m.View() == "" {
		t.Error("game view is empty")
	}

	// Pause, then back to the menu.
	m = sessionUpdate(t, m, runeKey("p"))
	m = sessionUpdate(t, m, TickMsg{})
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.current != screenMenu {
		t.Fatalf("current = %v, expected the menu", m.current)
	}

	m = sessionUpdate(t, m, TickMsg{})
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.current != screenScores {
		t.Fatalf("current = %v, expected the scoreboard", m.current)
	}
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.current != screenMenu {
		t.Errorf("current = %v, expected the menu", m.current)
	}

	next, cmd := m.Update(runeKey("q"))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q should end the session")
	}
}

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	if cfg.Address != ":23234" || cfg.TickRate != 60 || cfg.IdleTimeout <= 0 {
		t.Errorf("DefaultSSHServerConfig() = %+v", cfg)
	}
}
