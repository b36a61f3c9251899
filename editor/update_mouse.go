package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/quill/document"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.cfg.ScrollPolicy == ScrollAllowManual || !isManualScrollMouse(msg) {
		m.viewport, cmd = m.viewport.Update(msg)
	}

	if !m.focused {
		return m, cmd
	}

	// Only left button interactions move the caret.
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.mouseInBounds(msg.X, msg.Y) {
			return m, cmd
		}
		p := m.screenToPoint(msg.X, msg.Y)
		if msg.Shift {
			m.mouseAnchor = m.state.Selection().Anchor
			m.apply(m.state.AcceptSelection(m.state.Content().NewSelection(m.mouseAnchor, p)))
		} else {
			m.mouseAnchor = p
			m.apply(m.state.AcceptSelection(document.Caret(p)))
		}
		m.mouseDragging = true

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, cmd
		}
		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		p := m.screenToPoint(x, y)
		m.apply(m.state.AcceptSelection(m.state.Content().NewSelection(m.mouseAnchor, p)))

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}
	return m, cmd
}

func isManualScrollMouse(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		x = clampInt(x, 0, m.viewport.Width-1)
	}
	if m.viewport.Height > 0 {
		y = clampInt(y, 0, m.viewport.Height-1)
	}
	return x, y
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
