package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/games/hexpop"
	"github.com/vovakirdan/hexpop/internal/registry"
	"github.com/vovakirdan/hexpop/internal/storage"
)

type menuKind int

const (
	menuGame menuKind = iota
	menuLevels
	menuScores
)

// MenuItem is one line of the main menu.
type MenuItem struct {
	kind   menuKind
	GameID string
	Title  string
	Best   int
}

// MenuSelection is the game picked in the menu.
type MenuSelection struct {
	GameID string
	Level  int // 0 = start from the beginning, otherwise 1-indexed
}

// MenuModel is the Bubble Tea model for the main menu and level picker.
type MenuModel struct {
	items  []MenuItem
	cursor int

	levels        []string
	levelCursor   int
	inLevelSelect bool

	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuSelection
	openScoreboard bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+2)

	for _, g := range games {
		item := MenuItem{kind: menuGame, GameID: g.ID, Title: g.Title}
		if store != nil {
			best, err := store.BestScore(g.ID)
			if err != nil {
				logger.Warn("cannot read best score", "game", g.ID, "err", err)
			}
			item.Best = best
		}
		items = append(items, item)
	}

	levels := hexpop.LevelNames()
	if len(levels) > 0 {
		items = append(items, MenuItem{kind: menuLevels, Title: "Select Level"})
	}
	items = append(items, MenuItem{kind: menuScores, Title: "High Scores"})

	return MenuModel{
		items:     items,
		levels:    levels,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelKey(action)
		}
		return m.handleMenuKey(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleMenuKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		switch item := m.items[m.cursor]; item.kind {
		case menuGame:
			m.selected = &MenuSelection{GameID: item.GameID}
			return m, tea.Quit
		case menuLevels:
			m.inLevelSelect = true
			m.levelCursor = 0
		case menuScores:
			m.openScoreboard = true
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.selected = &MenuSelection{GameID: "hexpop", Level: m.levelCursor + 1}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	t := CurrentTheme()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(t.Title.Render("  H E X P O P  "), m.width))
	b.WriteString("\n\n")

	if m.inLevelSelect {
		b.WriteString(centerText(t.Subtitle.Render("Select a level"), m.width))
		b.WriteString("\n\n")
		for i, name := range m.levels {
			line := fmt.Sprintf("  %2d. %s", i+1, name)
			style := t.ItemNormal
			if i == m.levelCursor {
				line = fmt.Sprintf("> %2d. %s", i+1, name)
				style = t.ItemActive
			}
			b.WriteString(centerText(style.Render(line), m.width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(centerText(t.Help.Render("Up/Down: Navigate  |  Enter: Play  |  Esc: Back"), m.width))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(centerText(t.Subtitle.Render("Pop groups of three, drop the rest"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		style := t.ItemNormal
		if i == m.cursor {
			line = "> " + item.Title
			style = t.ItemActive
		}
		line = style.Render(line)
		if item.kind == menuGame && item.Best > 0 {
			line += t.Best.Render(fmt.Sprintf("  best %d", item.Best))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(t.Help.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected game, or nil if none selected.
func (m MenuModel) Selected() *MenuSelection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// CreateGame creates a registered game. A level above zero makes a campaign
// game start there.
func CreateGame(id string, level int) (registry.Game, error) {
	game, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	if s, ok := game.(interface{ StartAt(int) }); ok && level > 0 {
		s.StartAt(level)
	}
	return game, nil
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Level           int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
		result.Level = m.Selected().Level
	default:
		result.Quit = true
	}

	return result, nil
}
