package controller

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/iw2rmb/quill/toolbar"
)

const (
	logButtonLabel = " Log State "
	logButtonGap   = "   "
	promptHint     = "  enter ✓  esc ✗"
)

func (c *Controller) Init() tea.Cmd { return nil }

func (c *Controller) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Effects queued by the previous update run before anything else.
	cmds := []tea.Cmd{c.flushEffects()}

	switch msg := msg.(type) {
	case effectMsg:
	case tea.WindowSizeMsg:
		c.width, c.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if key.Matches(msg, c.keys.Quit) {
			c.Unmount()
			return c, tea.Quit
		}
		cmds = append(cmds, c.updateKey(msg))
	case tea.MouseMsg:
		cmds = append(cmds, c.updateMouse(msg))
	default:
		var cmd tea.Cmd
		c.url, cmd = c.url.Update(msg)
		cmds = append(cmds, cmd)
	}

	c.resize()
	cmds = append(cmds, c.effectCmd())
	return c, tea.Batch(cmds...)
}

func (c *Controller) updateKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, c.keys.LogState) {
		c.logStateFromUI()
		return nil
	}
	if ev := c.toolbar.Update(msg, c.Dispatch); ev.DefaultPrevented() {
		return nil
	}

	if c.mode == LinkPrompt {
		switch {
		case key.Matches(msg, c.keys.Confirm):
			c.ConfirmLink(&toolbar.Event{Msg: msg})
			return nil
		case key.Matches(msg, c.keys.Cancel):
			c.CancelLink()
			return nil
		}
		var cmd tea.Cmd
		c.url, cmd = c.url.Update(msg)
		return cmd
	}
	return c.updateEditor(msg)
}

func (c *Controller) updateMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Y == 0 {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && c.onLogButton(msg.X) {
			c.logStateFromUI()
			return nil
		}
		c.toolbar.Update(msg, c.Dispatch)
		return nil
	}
	top := c.editorTop()
	if msg.Y < top {
		return nil
	}
	msg.Y -= top
	return c.updateEditor(msg)
}

// updateEditor forwards msg to the text surface. The surface reports every
// change through Dispatch, so it is resynchronized with the owned state
// afterwards.
func (c *Controller) updateEditor(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.editor, cmd = c.editor.Update(msg)
	c.editor = c.editor.SetState(c.state)
	return cmd
}

func (c *Controller) onLogButton(x int) bool {
	x0 := c.toolbar.Width() + runewidth.StringWidth(logButtonGap)
	return x >= x0 && x < x0+runewidth.StringWidth(logButtonLabel)
}

func (c *Controller) editorTop() int {
	if c.mode == LinkPrompt {
		return 2
	}
	return 1
}

func (c *Controller) resize() {
	if c.width <= 0 || c.height <= 0 {
		return
	}
	h := max(c.height-c.editorTop()-lipgloss.Height(c.footer()), 1)
	if c.editor.Width() != c.width || c.editor.Height() != h {
		c.editor = c.editor.SetSize(c.width, h)
	}
	c.url.Width = max(c.width-runewidth.StringWidth(c.url.Prompt)-runewidth.StringWidth(promptHint)-1, 1)
}

func (c *Controller) View() string {
	st := c.cfg.Style
	rows := []string{c.toolbar.View() + logButtonGap + st.Button.Render(logButtonLabel)}
	if c.mode == LinkPrompt {
		rows = append(rows, c.url.View()+st.Footer.Render(promptHint))
	}
	rows = append(rows, c.editor.View(), c.footer())
	return strings.Join(rows, "\n")
}

func (c *Controller) footer() string {
	bindings := append(c.toolbar.KeyMap().ShortHelp(), c.keys.LogState, c.keys.Quit)
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	text := strings.Join(parts, " · ")
	if c.status != "" {
		text = c.status + " | " + text
	}
	if c.width > 0 {
		text = wordwrap.String(text, c.width)
	}
	return c.cfg.Style.Footer.Render(text)
}
