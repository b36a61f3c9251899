package controller

import tea "github.com/charmbracelet/bubbletea"

// effect is a focus change deferred until the view that shows its target
// has been rendered.
type effect int

const (
	focusEditor effect = iota
	focusURL
)

// effectMsg asks the controller to run its queued effects. It is delivered
// after the current render.
type effectMsg struct{}

func (c *Controller) queue(e effect) {
	c.effects = append(c.effects, e)
}

// effectCmd schedules a flush of the queue, or returns nil when it is empty.
func (c *Controller) effectCmd() tea.Cmd {
	if len(c.effects) == 0 {
		return nil
	}
	return func() tea.Msg { return effectMsg{} }
}

// flushEffects runs queued effects in order. It is a no-op once the
// controller is unmounted.
func (c *Controller) flushEffects() tea.Cmd {
	pending := c.effects
	c.effects = nil
	if !c.mounted {
		return nil
	}
	var cmds []tea.Cmd
	for _, e := range pending {
		switch e {
		case focusEditor:
			c.url.Blur()
			c.editor = c.editor.Focus()
		case focusURL:
			c.editor = c.editor.Blur()
			cmds = append(cmds, c.url.Focus())
		}
	}
	return tea.Batch(cmds...)
}

// Unmount tears the controller down. Pending and later effects become
// no-ops.
func (c *Controller) Unmount() {
	c.mounted = false
	c.effects = nil
}

func (c *Controller) Mounted() bool { return c.mounted }
