package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/numbolt/internal/engine"
)

// Palette
var (
	colorAccent = lipgloss.Color("229")
	colorMuted  = lipgloss.Color("241")
	colorBorder = lipgloss.Color("240")
	colorGood   = lipgloss.Color("10")
	colorBad    = lipgloss.Color("9")
	colorHint   = lipgloss.Color("14")
	colorCoin   = lipgloss.Color("220")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	coinStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCoin)
	promptStyle = lipgloss.NewStyle().Bold(true).Padding(0, 2)
	guessStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Width(7).
			Align(lipgloss.Center)
	boltStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorBorder).
			PaddingLeft(1)
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(1, 3).
			Width(56).
			Align(lipgloss.Center)
)

// cueColors maps engine cues to the accent used for messages and modals.
var cueColors = map[engine.Cue]lipgloss.Color{
	engine.CueNone:     colorMuted,
	engine.CueWrong:    colorBad,
	engine.CueWin:      colorGood,
	engine.CueGameOver: colorBad,
	engine.CueLevelUp:  colorCoin,
	engine.CueHint:     colorHint,
}

// cueStyle returns the foreground style for a cue.
func cueStyle(c engine.Cue) lipgloss.Style {
	color, ok := cueColors[c]
	if !ok {
		color = colorMuted
	}
	return lipgloss.NewStyle().Foreground(color)
}

// renderModal draws a bordered box tinted by the cue.
func renderModal(title, body, footer string, cue engine.Cue) string {
	color := cueColors[cue]

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(color).Render(title))
	b.WriteString("\n\n")
	b.WriteString(body)
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render(footer))
	}
	return modalStyle.BorderForeground(color).Render(b.String())
}

// place centers content in the terminal when its size is known.
func place(width, height int, content string) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
