package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/numbolt/internal/core"
	"github.com/vovakirdan/numbolt/internal/engine"
	"github.com/vovakirdan/numbolt/internal/puzzle"
	"github.com/vovakirdan/numbolt/internal/registry"
)

type playScreen int

const (
	screenStory playScreen = iota
	screenRound
	screenResult
)

// PlayModel is the Bubble Tea model for one mode: story, rounds and
// the result modals.
type PlayModel struct {
	eng    *engine.Engine
	keys   *KeyMapper
	help   help.Model
	xpBar  progress.Model
	bell   io.Writer
	width  int
	height int

	screen playScreen
	intro  string       // Bolt's opening line for the round
	last   engine.Event // Latest feedback
	hints  []string

	flashID  int
	flashing bool

	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewPlayModel creates the play screen for an engine.
// bell receives the terminal bell on wins and losses; nil mutes it.
func NewPlayModel(eng *engine.Engine, rc core.RuntimeConfig, bell io.Writer) PlayModel {
	m := PlayModel{
		eng:    eng,
		keys:   NewKeyMapper(),
		help:   help.New(),
		xpBar:  progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		bell:   bell,
		width:  rc.ScreenW,
		height: rc.ScreenH,
	}
	m.resize(rc.ScreenW)

	if eng.Mode().Story == "" {
		m.startRound()
	}
	return m
}

// Init initializes the model.
func (m PlayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleInput(m.keys.MapKey(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize(msg.Width)
		return m, nil

	case flashDoneMsg:
		if int(msg) == m.flashID {
			m.flashing = false
		}
		return m, nil
	}

	return m, nil
}

func (m *PlayModel) resize(width int) {
	m.help.Width = width
	m.xpBar.Width = min(max(width-30, 10), 40)
}

// handleInput applies one decoded key press.
func (m PlayModel) handleInput(in core.Input) (tea.Model, tea.Cmd) {
	switch in.Action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.screen {
	case screenStory, screenResult:
		if in.Is(core.ActionSubmit) || in.Is(core.ActionRestart) {
			m.startRound()
		}
		return m, nil
	}

	switch in.Action {
	case core.ActionDigit, core.ActionMinus:
		m.eng.Type(in.Rune)
	case core.ActionDelete:
		m.eng.Delete()
	case core.ActionHint:
		ev, ok := m.eng.Hint()
		if !ok {
			ev = engine.Event{Message: "Bolt has no more hints for this number.", Cue: engine.CueNone}
		} else {
			m.hints = append(m.hints, ev.Message)
		}
		return m.feedback(ev)
	case core.ActionSubmit:
		ev, err := m.eng.Submit(context.Background())
		if err != nil {
			return m, nil
		}
		if ev.Resolved() {
			m.screen = screenResult
		}
		return m.feedback(ev)
	}
	return m, nil
}

// feedback records an event and starts its flash and bell.
func (m PlayModel) feedback(ev engine.Event) (tea.Model, tea.Cmd) {
	m.last = ev
	m.flashID++
	m.flashing = true
	return m, tea.Batch(flashCmd(m.flashID), bellCmd(m.bell, ev.Cue))
}

func (m *PlayModel) startRound() {
	ev := m.eng.StartRound()
	m.intro = ev.Message
	m.last = engine.Event{}
	m.hints = nil
	m.screen = screenRound
}

// View renders the play screen.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.screen {
	case screenStory:
		body = renderModal(m.eng.Mode().Title, m.eng.Mode().Story, "enter: start  ·  esc: menu", engine.CueNone)
	case screenResult:
		body = m.renderResult()
	default:
		body = m.renderRound()
	}

	return place(m.width, m.height, lipgloss.JoinVertical(lipgloss.Center,
		m.renderHeader(),
		"",
		body,
		"",
		mutedStyle.Render(m.help.View(m.keys.Keys())),
	))
}

func (m PlayModel) renderHeader() string {
	p := m.eng.Progress()
	threshold := m.eng.Threshold()

	ratio := 0.0
	if threshold > 0 {
		ratio = float64(p.XP) / float64(threshold)
	}

	top := fmt.Sprintf("%s  ·  Level %d  ·  %s",
		titleStyle.Render(m.eng.Mode().Title), p.Level, coinStyle.Render(fmt.Sprintf("%d coins", p.Coins)))
	bar := fmt.Sprintf("XP %s %d/%d", m.xpBar.ViewAs(ratio), p.XP, threshold)
	return lipgloss.JoinVertical(lipgloss.Center, top, mutedStyle.Render(bar))
}

func (m PlayModel) renderRound() string {
	r := m.eng.Round()
	if r == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(boltStyle.Render("Bolt: " + m.intro))
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render(renderPrompt(r.Puzzle())))
	b.WriteString("\n\n")

	guess := r.Guess()
	if guess == "" {
		guess = "_"
	}
	b.WriteString(guessStyle.Render(guess))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Attempt %d of %d", r.Attempt(), m.eng.MaxAttempts())))
	if m.eng.Mode().Hints != nil {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  ·  %d hints left", r.HintsLeft())))
	}

	for _, h := range m.hints {
		b.WriteString("\n")
		b.WriteString(cueStyle(engine.CueHint).Render("Hint: " + h))
	}

	if m.last.Message != "" {
		style := cueStyle(m.last.Cue)
		if m.flashing {
			style = style.Bold(true).Reverse(true)
		}
		b.WriteString("\n\n")
		b.WriteString(style.Render(m.last.Message))
	}

	return b.String()
}

// renderPrompt lays out the puzzle text; sequence terms get wider gaps.
func renderPrompt(p puzzle.Puzzle) string {
	if p.Kind == puzzle.KindSequence {
		return strings.ReplaceAll(p.Prompt, ", ", "   ")
	}
	return p.Prompt
}

func (m PlayModel) renderResult() string {
	ev := m.last

	title := "Puzzle solved!"
	switch ev.Cue {
	case engine.CueLevelUp:
		title = fmt.Sprintf("Level up! Welcome to level %d", ev.Level)
	case engine.CueGameOver:
		title = "Game over"
	}

	var body strings.Builder
	body.WriteString(ev.Message)
	if !ev.Reward.IsZero() {
		body.WriteString("\n\n")
		body.WriteString(coinStyle.Render(fmt.Sprintf("+%d coins   +%d XP", ev.Reward.Coins, ev.Reward.XP)))
	}
	if ev.Detail != "" {
		body.WriteString("\n\n")
		body.WriteString(ev.Detail)
	}

	return renderModal(title, body.String(), "enter: next round  ·  esc: menu", ev.Cue)
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// RunPlay plays one mode in the local terminal until the player leaves.
func RunPlay(deps *Deps, rc core.RuntimeConfig, modeID string) error {
	mode, err := registry.Get(modeID)
	if err != nil {
		return err
	}

	model := NewPlayModel(deps.Engine(context.Background(), mode, rc), rc, os.Stdout)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
