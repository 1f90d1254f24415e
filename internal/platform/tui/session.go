package tui

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/numbolt/internal/core"
	"github.com/vovakirdan/numbolt/internal/registry"
)

type sessionScreen int

const (
	sessionMenu sessionScreen = iota
	sessionPlay
	sessionBoard
)

// SessionModel manages the full flow of one player: menu -> play or
// board -> menu. It is the top-level model for local and SSH sessions.
type SessionModel struct {
	deps     *Deps
	config   core.RuntimeConfig
	bell     io.Writer
	screen   sessionScreen
	menu     MenuModel
	play     PlayModel
	board    BoardModel
	quitting bool
}

// NewSessionModel creates a session for the profile in cfg.
func NewSessionModel(deps *Deps, cfg core.RuntimeConfig, bell io.Writer) SessionModel {
	if cfg.Profile == "" {
		cfg.Profile = core.DefaultProfile
	}
	return SessionModel{
		deps:   deps,
		config: cfg,
		bell:   bell,
		menu:   NewMenuModel(deps, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case sessionPlay:
		return m.updatePlay(msg)
	case sessionBoard:
		return m.updateBoard(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsBoard() {
		m.board = NewBoardModel(m.deps, m.config)
		m.screen = sessionBoard
		return m, m.board.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		mode, err := registry.Get(selected.ModeID)
		if err != nil {
			// Menu only lists registered modes
			m.menu = NewMenuModel(m.deps, m.config)
			return m, nil
		}
		m.play = NewPlayModel(m.deps.Engine(context.Background(), mode, m.config), m.config, m.bell)
		m.screen = sessionPlay
		return m, m.play.Init()
	}

	return m, cmd
}

func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPlay, cmd := m.play.Update(msg)
	if playModel, ok := newPlay.(PlayModel); ok {
		m.play = playModel
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.BackToMenu() {
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	if boardModel, ok := newBoard.(BoardModel); ok {
		m.board = boardModel
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.board.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

// backToMenu rebuilds the menu so it shows fresh levels and coins.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = sessionMenu
	m.menu = NewMenuModel(m.deps, m.config)
	return m, m.menu.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case sessionPlay:
		return m.play.View()
	case sessionBoard:
		return m.board.View()
	}
	return m.menu.View()
}

// RunSession runs the menu flow in the local terminal.
func RunSession(deps *Deps, rc core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(deps, rc, os.Stdout),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
