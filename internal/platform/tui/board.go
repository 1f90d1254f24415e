package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/numbolt/internal/core"
	"github.com/vovakirdan/numbolt/internal/progress"
	"github.com/vovakirdan/numbolt/internal/registry"
	"github.com/vovakirdan/numbolt/internal/storage"
)

// Board layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the mode sidebar
	sidebarWidth       = 24
	maxRounds          = 50 // Max history rows to load
)

// BoardKeyMap defines the key bindings for the progress board.
type BoardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Back, k.Quit},
	}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BoardModel is the Bubble Tea model for the progress board: level, XP
// and coins per mode plus the round history when a database is open.
type BoardModel struct {
	modes       []registry.ModeInfo
	modeCursor  int
	deps        *Deps
	profile     string
	progress    progress.Progress
	stats       *storage.ModeStats
	rounds      []storage.RoundRecord
	table       table.Model
	help        help.Model
	keys        BoardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewBoardModel creates a new progress board.
func NewBoardModel(deps *Deps, cfg core.RuntimeConfig) BoardModel {
	h := help.New()
	h.ShowAll = false

	m := BoardModel{
		modes:       registry.List(),
		deps:        deps,
		profile:     cfg.Profile,
		keys:        DefaultBoardKeyMap(),
		help:        h,
		width:       cfg.ScreenW,
		height:      cfg.ScreenH,
		showSidebar: cfg.ScreenW >= minWidthForSidebar,
	}

	m.table = m.createTable()
	if len(m.modes) > 0 {
		m.load(m.modes[0].ID)
	}
	return m
}

// createTable creates a new table with appropriate columns.
func (m *BoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 14},
		{Title: "Level", Width: 6},
		{Title: "Result", Width: 7},
		{Title: "Tries", Width: 6},
		{Title: "Coins", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-14, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorAccent).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads progress, stats and history for a mode.
func (m *BoardModel) load(modeID string) {
	ctx := context.Background()

	m.progress = progress.Default()
	if mode, err := registry.Get(modeID); err == nil {
		m.progress = m.deps.Repository(m.profile).Load(ctx, mode.StorageName)
	}

	m.stats = nil
	m.rounds = nil
	if m.deps.Store != nil {
		if st, err := m.deps.Store.ModeStatsFor(ctx, m.profile, modeID); err == nil {
			m.stats = st
		} else {
			m.deps.Logger.Warn("could not load stats", "mode", modeID, "error", err)
		}
		if rounds, err := m.deps.Store.RecentRounds(ctx, m.profile, modeID, maxRounds); err == nil {
			m.rounds = rounds
		} else {
			m.deps.Logger.Warn("could not load history", "mode", modeID, "error", err)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded rounds.
func (m *BoardModel) updateTableRows() {
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("%d", r.Level),
			r.Outcome,
			fmt.Sprintf("%d", r.Attempts),
			fmt.Sprintf("%d", r.Coins),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the board model.
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMode):
			if len(m.modes) > 0 {
				m.modeCursor = (m.modeCursor + 1) % len(m.modes)
				m.load(m.modes[m.modeCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			if len(m.modes) > 0 {
				m.modeCursor = (m.modeCursor - 1 + len(m.modes)) % len(m.modes)
				m.load(m.modes[m.modeCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the board.
func (m BoardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "PROGRESS"
	if len(m.modes) > 0 {
		title = fmt.Sprintf("PROGRESS - %s", m.modes[m.modeCursor].Title)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	content := lipgloss.JoinVertical(lipgloss.Left, m.renderSummary(), "", m.renderHistory())
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Render(content)

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", panel))
	} else {
		b.WriteString(m.renderTabs())
		b.WriteString("\n\n")
		b.WriteString(panel)
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m BoardModel) renderSidebar() string {
	var sidebar strings.Builder
	sidebar.WriteString("Modes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, mode := range m.modes {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.modeCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(colorAccent)
		}
		sidebar.WriteString(style.Render(cursor + mode.Title))
		sidebar.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(sidebarWidth).
		Padding(0, 1).
		Render(sidebar.String())
}

func (m BoardModel) renderTabs() string {
	activeTab := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorAccent).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.modes))
	for i, mode := range m.modes {
		if i == m.modeCursor {
			tabs[i] = activeTab.Render(mode.Title)
		} else {
			tabs[i] = mutedStyle.Render(" " + mode.Title + " ")
		}
	}
	return centerText(strings.Join(tabs, " "), m.width)
}

func (m BoardModel) renderSummary() string {
	p := m.progress
	lines := []string{
		fmt.Sprintf("Level %d   XP %d/%d   %s",
			p.Level, p.XP, m.deps.Config.Progress.XPThreshold, coinStyle.Render(fmt.Sprintf("%d coins", p.Coins))),
	}
	if m.stats != nil && m.stats.Rounds > 0 {
		lines = append(lines, fmt.Sprintf("%d rounds   %d won (%.0f%%)   %d on the first try",
			m.stats.Rounds, m.stats.Wins, m.stats.WinRate()*100, m.stats.FirstTryWins))
	}
	return strings.Join(lines, "\n")
}

func (m BoardModel) renderHistory() string {
	empty := lipgloss.NewStyle().
		Foreground(colorMuted).
		Italic(true).
		Padding(1, 2)

	if m.deps.Store == nil {
		return empty.Render("Round history needs the progress database.")
	}
	if len(m.rounds) == 0 {
		return empty.Render("No rounds recorded yet.\nPlay a round to start your history!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m BoardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m BoardModel) IsQuitting() bool {
	return m.quitting
}
