package toolbar

import (
	"reflect"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap binds a hotkey to each toolbar command. Hotkeys dispatch exactly
// like a button press.
type KeyMap struct {
	Bold, Italic        key.Binding
	Header, List        key.Binding
	AddLink, RemoveLink key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Bold:       key.NewBinding(key.WithKeys("alt+b"), key.WithHelp("alt+b", "bold")),
		Italic:     key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("alt+i", "italic")),
		Header:     key.NewBinding(key.WithKeys("alt+h"), key.WithHelp("alt+h", "header")),
		List:       key.NewBinding(key.WithKeys("alt+l"), key.WithHelp("alt+l", "list")),
		AddLink:    key.NewBinding(key.WithKeys("alt+k"), key.WithHelp("alt+k", "link")),
		RemoveLink: key.NewBinding(key.WithKeys("alt+K"), key.WithHelp("alt+K", "unlink")),
	}
}

func normalizeKeyMap(km KeyMap) KeyMap {
	if reflect.DeepEqual(km, KeyMap{}) {
		return DefaultKeyMap()
	}
	return km
}

func (km KeyMap) binding(c Command) key.Binding {
	switch c {
	case Bold:
		return km.Bold
	case Italic:
		return km.Italic
	case Header:
		return km.Header
	case List:
		return km.List
	case AddLink:
		return km.AddLink
	case RemoveLink:
		return km.RemoveLink
	default:
		return key.Binding{}
	}
}

// Command resolves msg to the command bound to it.
func (km KeyMap) Command(msg tea.KeyMsg) (Command, bool) {
	for _, c := range buttons {
		if key.Matches(msg, km.binding(c)) {
			return c, true
		}
	}
	return 0, false
}

// ShortHelp lists the hotkeys in toolbar order.
func (km KeyMap) ShortHelp() []key.Binding {
	out := make([]key.Binding, 0, len(buttons))
	for _, c := range buttons {
		out = append(out, km.binding(c))
	}
	return out
}
