package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/numbolt/internal/core"
	"github.com/vovakirdan/numbolt/internal/progress"
	"github.com/vovakirdan/numbolt/internal/registry"
)

// MenuItem represents a selectable mode on the home screen.
type MenuItem struct {
	ModeID   string
	Title    string
	Progress progress.Progress
}

// MenuModel is the Bubble Tea model for the home screen.
type MenuModel struct {
	items     []MenuItem
	coins     int
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keys      MenuKeyMap
	help      help.Model
	quitting  bool
	selected  *MenuItem // Set when user selects a mode
	openBoard bool      // True if user asked for the progress board
}

// NewMenuModel creates the home screen, loading each mode's progress.
func NewMenuModel(deps *Deps, cfg core.RuntimeConfig) MenuModel {
	repo := deps.Repository(cfg.Profile)
	modes := registry.List()
	items := make([]MenuItem, 0, len(modes))

	coins := 0
	for _, info := range modes {
		mode, err := registry.Get(info.ID)
		if err != nil {
			continue
		}
		p := repo.Load(context.Background(), mode.StorageName)
		coins = p.Coins
		items = append(items, MenuItem{ModeID: info.ID, Title: info.Title, Progress: p})
	}

	return MenuModel{
		items:  items,
		coins:  coins,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
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
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Board):
		m.openBoard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("B O L T"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("number puzzles from a clever robot"))
	b.WriteString("\n\n")
	b.WriteString(coinStyle.Render(fmt.Sprintf("%d coins", m.coins)))
	if m.config.Profile != "" && m.config.Profile != core.DefaultProfile {
		b.WriteString(mutedStyle.Render("  ·  " + m.config.Profile))
	}
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(colorAccent)
		}

		line := fmt.Sprintf("%s%-20s level %d", cursor, item.Title, item.Progress.Level)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))

	return place(m.width, m.height, lipgloss.NewStyle().Align(lipgloss.Left).Render(b.String()))
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBoard returns true if user requested the progress board.
func (m MenuModel) WantsBoard() bool {
	return m.openBoard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}
