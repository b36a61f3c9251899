package toolbar

import tea "github.com/charmbracelet/bubbletea"

// Event wraps the input message that activated a command.
//
// A handler calls PreventDefault to keep the message from reaching the
// editor surface, which would otherwise move the caret or insert text.
type Event struct {
	Msg tea.Msg

	prevented bool
}

func (e *Event) PreventDefault() {
	if e != nil {
		e.prevented = true
	}
}

func (e *Event) DefaultPrevented() bool { return e != nil && e.prevented }

// Dispatcher receives every command the toolbar activates. payload is the
// activating *Event.
type Dispatcher func(cmd Command, payload any)
