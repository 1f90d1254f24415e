package core

// Action represents a semantic play action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionDigit          // 0-9 - append a digit to the guess
	ActionMinus          // "-" - leading minus (equation mode only)
	ActionDelete         // Backspace - remove last guess character
	ActionSubmit         // Enter - submit the guess / dismiss a modal
	ActionHint           // H, ? - ask for a hint
	ActionBack           // Esc, B - go back to the menu
	ActionRestart        // R - start a new round after a modal
	ActionQuit           // Ctrl+C - exit the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionDigit:
		return "Digit"
	case ActionMinus:
		return "Minus"
	case ActionDelete:
		return "Delete"
	case ActionSubmit:
		return "Submit"
	case ActionHint:
		return "Hint"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is one decoded key press: the action plus the rune that produced it.
// Rune is only meaningful for ActionDigit and ActionMinus.
type Input struct {
	Action Action
	Rune   rune
}

// Is reports whether the input carries the given action.
func (in Input) Is(a Action) bool {
	return in.Action == a
}
