package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/quill/document"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	// Paste events always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !m.cfg.ReadOnly {
			m.apply(document.InsertText(m.state, string(msg.Runes)))
		}
		return m, nil
	}

	km := m.cfg.KeyMap
	if cmd, ok := km.Command(msg); ok {
		if m.cfg.ReadOnly {
			return m, nil
		}
		if m.cfg.HandleKeyCommand != nil && m.cfg.HandleKeyCommand(cmd) {
			return m, nil
		}
		m.apply(defaultKeyCommand(m.state, cmd))
		return m, nil
	}

	if mo, ok := km.motion(msg); ok {
		if mo.Unit == document.MoveBlock && (mo.Dir == document.DirUp || mo.Dir == document.DirDown) {
			m.apply(m.moveVertical(mo))
		} else {
			m.apply(document.Move(m.state, mo))
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, km.SelectAll):
		m.apply(document.SelectAll(m.state))

	case key.Matches(msg, km.Indent):
		if m.cfg.ReadOnly {
			return m, nil
		}
		if m.state.CurrentBlockType().IsList() {
			m.apply(document.AdjustBlockDepth(m.state, 1, m.cfg.maxListDepth()))
		} else {
			m.apply(document.InsertText(m.state, "\t"))
		}
	case key.Matches(msg, km.Outdent):
		if !m.cfg.ReadOnly {
			m.apply(document.AdjustBlockDepth(m.state, -1, m.cfg.maxListDepth()))
		}

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		m.copySelection()
		if !m.cfg.ReadOnly {
			m.apply(document.DeleteSelection(m.state))
		}
	case key.Matches(msg, km.Paste):
		if !m.cfg.ReadOnly {
			m.pasteClipboard()
		}

	default:
		if msg.Type == tea.KeySpace && !m.cfg.ReadOnly {
			m.apply(document.InsertText(m.state, " "))
			return m, nil
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt && !m.cfg.ReadOnly {
			m.apply(document.InsertText(m.state, string(msg.Runes)))
		}
	}
	return m, nil
}

// defaultKeyCommand is the editor's own handling of a named key command,
// used when the host does not handle it.
func defaultKeyCommand(s document.State, cmd string) document.State {
	if next, ok := document.HandleKeyCommand(s, cmd); ok {
		return next
	}
	switch cmd {
	case document.CommandBackspace:
		return document.Backspace(s)
	case document.CommandBackspaceWord:
		return document.BackspaceWord(s)
	case document.CommandBackspaceToStartOfLine:
		return document.BackspaceToBlockStart(s)
	case document.CommandDelete:
		return document.DeleteForward(s)
	case document.CommandDeleteWord:
		return document.DeleteWord(s)
	case document.CommandDeleteToEndOfBlock:
		return document.DeleteToBlockEnd(s)
	case document.CommandSplitBlock:
		return document.SplitBlock(s)
	case document.CommandUndo:
		return s.Undo()
	case document.CommandRedo:
		return s.Redo()
	default:
		return s
	}
}

// moveVertical moves the focus one visual row up or down, keeping its x
// cell. It falls back to block motion when there is no layout yet.
func (m Model) moveVertical(mo document.Motion) document.State {
	sel := m.state.Selection()
	row, ok := m.layout.rowForPoint(sel.Focus)
	if !ok || len(m.layout.rows) == 0 {
		return document.Move(m.state, mo)
	}
	x := m.layout.rows[row].cellX(sel.Focus.Offset)
	target := row - 1
	if mo.Dir == document.DirDown {
		target = row + 1
	}

	var focus document.Point
	switch {
	case target < 0:
		focus = document.Point{Key: m.layout.rows[0].key}
	case target >= len(m.layout.rows):
		last := m.layout.rows[len(m.layout.rows)-1]
		focus = document.Point{Key: last.key, Offset: last.end}
	default:
		r := m.layout.rows[target]
		focus = document.Point{Key: r.key, Offset: r.offsetAt(x)}
	}

	c := m.state.Content()
	if mo.Extend {
		return m.state.AcceptSelection(c.NewSelection(sel.Anchor, focus))
	}
	return m.state.AcceptSelection(document.Caret(focus))
}
