package controller

import (
	"log/slog"
	"reflect"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/quill/document"
	"github.com/iw2rmb/quill/editor"
	"github.com/iw2rmb/quill/toolbar"
)

// Config configures a Controller.
type Config struct {
	Editor  editor.Config
	Toolbar toolbar.Config
	KeyMap  KeyMap
	Style   Style

	// Content, when set, replaces the empty initial document.
	Content *document.Content

	// Logger receives state exports and transition traces. Nil discards.
	Logger *slog.Logger

	// CopyStateOnLog also writes the raw JSON export to Editor.Clipboard.
	CopyStateOnLog bool

	URLPlaceholder string
}

func DefaultConfig() Config {
	return Config{
		Editor:         editor.Config{Style: editor.DefaultStyle(), Placeholder: "Tell a story..."},
		Toolbar:        toolbar.Config{Style: toolbar.DefaultStyle(), KeyMap: toolbar.DefaultKeyMap()},
		KeyMap:         DefaultKeyMap(),
		Style:          DefaultStyle(),
		URLPlaceholder: "https://",
	}
}

// KeyMap holds the bindings handled by the controller itself.
type KeyMap struct {
	Confirm  key.Binding
	Cancel   key.Binding
	LogState key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm link")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		LogState: key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "log state")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

func normalizeKeyMap(km KeyMap) KeyMap {
	if reflect.DeepEqual(km, KeyMap{}) {
		return DefaultKeyMap()
	}
	return km
}

// Style controls the chrome around the editor.
type Style struct {
	Prompt lipgloss.Style
	Button lipgloss.Style
	Footer lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Button: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")),
		Footer: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}
