package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestScoreboard(t *testing.T) {
	store := openStore(t)
	for _, s := range []struct{ score, level int }{{300, 2}, {700, 4}} {
		if _, err := store.SaveScore("hexpop", s.score, s.level); err != nil {
			t.Fatal(err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	if len(m.scores) != 2 || m.scores[0].Score != 700 {
		t.Fatalf("scores = %+v", m.scores)
	}
	view := m.View()
	for _, want := range []string{"HIGH SCORES - HexPop", "Played 2", "Best 700", "Avg 500"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(ScoreboardModel)
	view = m.View()
	if !strings.Contains(view, "HexPop (Endless)") || !strings.Contains(view, "No scores recorded yet.") {
		t.Errorf("endless view:\n%s", view)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.gameCursor != 0 || len(m.scores) != 2 {
		t.Errorf("gameCursor = %d after going back", m.gameCursor)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() || m.IsQuitting() || cmd == nil {
		t.Error("esc should go back")
	}
}

func TestScoreboardNarrowWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 50, 20)
	if m.showSidebar {
		t.Error("narrow window should hide the sidebar")
	}
	if !strings.Contains(m.View(), "No scores recorded yet.") {
		t.Errorf("View() = %q", m.View())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("HexPop (Endless)", 8); got != "HexPop ." {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("short", 8); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
}
