// Package tui provides the Bubble Tea screens for numbolt: the home menu,
// the play screen, the progress board and the SSH server that serves them.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/numbolt/internal/core"
)

// PlayKeyMap defines the key bindings for the play screen.
type PlayKeyMap struct {
	Digit  key.Binding
	Minus  key.Binding
	Delete key.Binding
	Submit key.Binding
	Hint   key.Binding
	Next   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Digit, k.Submit, k.Delete, k.Hint, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digit, k.Minus, k.Delete, k.Submit},
		{k.Hint, k.Next, k.Back, k.Quit},
	}
}

// DefaultPlayKeyMap returns default key bindings.
func DefaultPlayKeyMap() PlayKeyMap {
	return PlayKeyMap{
		Digit: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "type"),
		),
		Minus: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "minus"),
		),
		Delete: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("bksp", "delete"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "guess"),
		),
		Hint: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h", "hint"),
		),
		Next: key.NewBinding(
			key.WithKeys("r", "n"),
			key.WithHelp("r", "new round"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuKeyMap defines the key bindings for the home screen.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Board  key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Board, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Board: key.NewBinding(
			key.WithKeys("tab", "p"),
			key.WithHelp("tab", "progress"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to play inputs.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys PlayKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultPlayKeyMap()}
}

// Keys returns the bindings used by the mapper.
func (km *KeyMapper) Keys() PlayKeyMap {
	return km.keys
}

// MapKey translates a key message to a play input.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Input {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.Input{Action: core.ActionQuit}
	case key.Matches(msg, km.keys.Digit):
		return core.Input{Action: core.ActionDigit, Rune: []rune(msg.String())[0]}
	case key.Matches(msg, km.keys.Minus):
		return core.Input{Action: core.ActionMinus, Rune: '-'}
	case key.Matches(msg, km.keys.Delete):
		return core.Input{Action: core.ActionDelete}
	case key.Matches(msg, km.keys.Submit):
		return core.Input{Action: core.ActionSubmit}
	case key.Matches(msg, km.keys.Hint):
		return core.Input{Action: core.ActionHint}
	case key.Matches(msg, km.keys.Next):
		return core.Input{Action: core.ActionRestart}
	case key.Matches(msg, km.keys.Back):
		return core.Input{Action: core.ActionBack}
	}
	return core.Input{Action: core.ActionNone}
}
