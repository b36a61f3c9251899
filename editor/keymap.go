package editor

import (
	"reflect"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/quill/document"
)

// KeyMap defines the editor key bindings.
//
// Bindings in the second group resolve to named key commands, which are
// offered to Config.HandleKeyCommand before the default behavior runs.
// Bindings must be portable across terminals (ctrl/alt fallbacks).
type KeyMap struct {
	Left, Right, Up, Down                     key.Binding
	ShiftLeft, ShiftRight, ShiftUp, ShiftDown key.Binding
	WordLeft, WordRight                       key.Binding
	ShiftWordLeft, ShiftWordRight             key.Binding
	Home, End                                 key.Binding
	ShiftHome, ShiftEnd                       key.Binding
	DocStart, DocEnd                          key.Binding
	SelectAll                                 key.Binding

	Bold, Italic, Underline, Code, Strikethrough key.Binding
	Backspace, BackspaceWord, BackspaceLine      key.Binding
	Delete, DeleteWord, DeleteLine               key.Binding
	Enter                                        key.Binding
	Undo, Redo                                   key.Binding

	Indent, Outdent  key.Binding
	Copy, Cut, Paste key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),
		ShiftUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "select up")),
		ShiftDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "select down")),

		// Terminals vary between alt+arrows and ctrl+arrows.
		WordLeft:       key.NewBinding(key.WithKeys("alt+left", "ctrl+left"), key.WithHelp("alt/ctrl+←", "word left")),
		WordRight:      key.NewBinding(key.WithKeys("alt+right", "ctrl+right"), key.WithHelp("alt/ctrl+→", "word right")),
		ShiftWordLeft:  key.NewBinding(key.WithKeys("alt+shift+left", "ctrl+shift+left"), key.WithHelp("ctrl+shift+←", "select word left")),
		ShiftWordRight: key.NewBinding(key.WithKeys("alt+shift+right", "ctrl+shift+right"), key.WithHelp("ctrl+shift+→", "select word right")),

		Home:      key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "block start")),
		End:       key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "block end")),
		ShiftHome: key.NewBinding(key.WithKeys("shift+home"), key.WithHelp("shift+home", "select to block start")),
		ShiftEnd:  key.NewBinding(key.WithKeys("shift+end"), key.WithHelp("shift+end", "select to block end")),
		DocStart:  key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "document start")),
		DocEnd:    key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("ctrl+end", "document end")),
		SelectAll: key.NewBinding(key.WithKeys("alt+a"), key.WithHelp("alt+a", "select all")),

		Bold:          key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "bold")),
		Italic:        key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "italic")),
		Underline:     key.NewBinding(key.WithKeys("alt+u"), key.WithHelp("alt+u", "underline")),
		Code:          key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "code")),
		Strikethrough: key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "strikethrough")),

		Backspace:     key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		BackspaceWord: key.NewBinding(key.WithKeys("alt+backspace", "ctrl+w"), key.WithHelp("ctrl+w", "delete word left")),
		BackspaceLine: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "delete to block start")),
		Delete:        key.NewBinding(key.WithKeys("delete", "ctrl+d"), key.WithHelp("del", "delete right")),
		DeleteWord:    key.NewBinding(key.WithKeys("alt+delete", "alt+d"), key.WithHelp("alt+d", "delete word right")),
		DeleteLine:    key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "delete to block end")),
		Enter:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "split block")),

		Undo: key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo: key.NewBinding(key.WithKeys("ctrl+y", "ctrl+shift+z"), key.WithHelp("ctrl+y", "redo")),

		Indent:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "indent list item")),
		Outdent: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "outdent list item")),

		Copy:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Cut:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut")),
		Paste: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
	}
}

func normalizeKeyMap(km KeyMap) KeyMap {
	if reflect.DeepEqual(km, KeyMap{}) {
		return DefaultKeyMap()
	}
	return km
}

// Command resolves msg to a named key command.
func (km KeyMap) Command(msg tea.KeyMsg) (string, bool) {
	for _, kc := range []struct {
		b   key.Binding
		cmd string
	}{
		{km.Bold, document.CommandBold},
		{km.Italic, document.CommandItalic},
		{km.Underline, document.CommandUnderline},
		{km.Code, document.CommandCode},
		{km.Strikethrough, document.CommandStrikethrough},
		{km.Backspace, document.CommandBackspace},
		{km.BackspaceWord, document.CommandBackspaceWord},
		{km.BackspaceLine, document.CommandBackspaceToStartOfLine},
		{km.Delete, document.CommandDelete},
		{km.DeleteWord, document.CommandDeleteWord},
		{km.DeleteLine, document.CommandDeleteToEndOfBlock},
		{km.Enter, document.CommandSplitBlock},
		{km.Undo, document.CommandUndo},
		{km.Redo, document.CommandRedo},
	} {
		if key.Matches(msg, kc.b) {
			return kc.cmd, true
		}
	}
	return "", false
}

// ShortHelp lists the bindings shown in a compact help line.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Bold, km.Italic, km.Undo, km.Redo, km.Copy, km.Paste}
}

// motion resolves msg to a caret motion.
func (km KeyMap) motion(msg tea.KeyMsg) (document.Motion, bool) {
	for _, bm := range []struct {
		b key.Binding
		m document.Motion
	}{
		{km.Left, document.Motion{Unit: document.MoveGrapheme, Dir: document.DirLeft}},
		{km.Right, document.Motion{Unit: document.MoveGrapheme, Dir: document.DirRight}},
		{km.Up, document.Motion{Unit: document.MoveBlock, Dir: document.DirUp}},
		{km.Down, document.Motion{Unit: document.MoveBlock, Dir: document.DirDown}},
		{km.ShiftLeft, document.Motion{Unit: document.MoveGrapheme, Dir: document.DirLeft, Extend: true}},
		{km.ShiftRight, document.Motion{Unit: document.MoveGrapheme, Dir: document.DirRight, Extend: true}},
		{km.ShiftUp, document.Motion{Unit: document.MoveBlock, Dir: document.DirUp, Extend: true}},
		{km.ShiftDown, document.Motion{Unit: document.MoveBlock, Dir: document.DirDown, Extend: true}},
		{km.WordLeft, document.Motion{Unit: document.MoveWord, Dir: document.DirLeft}},
		{km.WordRight, document.Motion{Unit: document.MoveWord, Dir: document.DirRight}},
		{km.ShiftWordLeft, document.Motion{Unit: document.MoveWord, Dir: document.DirLeft, Extend: true}},
		{km.ShiftWordRight, document.Motion{Unit: document.MoveWord, Dir: document.DirRight, Extend: true}},
		{km.Home, document.Motion{Unit: document.MoveBlock, Dir: document.DirHome}},
		{km.End, document.Motion{Unit: document.MoveBlock, Dir: document.DirEnd}},
		{km.ShiftHome, document.Motion{Unit: document.MoveBlock, Dir: document.DirHome, Extend: true}},
		{km.ShiftEnd, document.Motion{Unit: document.MoveBlock, Dir: document.DirEnd, Extend: true}},
		{km.DocStart, document.Motion{Unit: document.MoveDoc, Dir: document.DirHome}},
		{km.DocEnd, document.Motion{Unit: document.MoveDoc, Dir: document.DirEnd}},
	} {
		if key.Matches(msg, bm.b) {
			return bm.m, true
		}
	}
	return document.Motion{}, false
}
