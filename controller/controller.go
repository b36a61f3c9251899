// Package controller owns the document state of one editing session and
// routes toolbar commands, key commands and link prompt input into state
// transitions.
package controller

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/iw2rmb/quill/document"
	"github.com/iw2rmb/quill/editor"
	"github.com/iw2rmb/quill/toolbar"
)

// Controller is the editor state machine. All mutation goes through
// Dispatch; the editor surface and toolbar only request changes.
//
// Controller is used by pointer: the editor surface calls back into it.
type Controller struct {
	cfg    Config
	keys   KeyMap
	logger *slog.Logger

	state document.State
	mode  Mode

	editor  editor.Model
	toolbar toolbar.Model
	url     textinput.Model

	effects []effect
	mounted bool

	width, height int
	status        string
}

func New(cfg Config) *Controller {
	c := &Controller{
		cfg:     cfg,
		keys:    normalizeKeyMap(cfg.KeyMap),
		logger:  cfg.Logger,
		mode:    Editing,
		mounted: true,
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	ecfg := cfg.Editor
	ecfg.OnChange = func(s document.State) { c.Dispatch(toolbar.Change, s) }
	ecfg.HandleKeyCommand = c.HandleKeyCommand
	c.editor = editor.New(ecfg)
	c.state = c.editor.State()
	if cfg.Content != nil {
		c.state = document.New(*cfg.Content, document.Options{
			Decorator:    c.state.Decorator(),
			HistoryLimit: ecfg.HistoryLimit,
			Keys:         ecfg.Keys,
		})
		c.editor = c.editor.SetState(c.state)
	}

	tcfg := cfg.Toolbar
	tcfg.Active = c.active
	c.toolbar = toolbar.New(tcfg)

	c.url = textinput.New()
	c.url.Prompt = "URL: "
	c.url.Placeholder = cfg.URLPlaceholder
	c.url.PromptStyle = cfg.Style.Prompt
	return c
}

// State returns the current document state.
func (c *Controller) State() document.State { return c.state }

func (c *Controller) Mode() Mode { return c.mode }

// LinkSession reports the URL prompt state.
func (c *Controller) LinkSession() LinkSession {
	if c.mode != LinkPrompt {
		return LinkSession{}
	}
	return LinkSession{Active: true, URL: c.url.Value()}
}

// SetURL replaces the URL field text.
func (c *Controller) SetURL(s string) {
	c.url.SetValue(s)
	c.url.CursorEnd()
}

// Dispatch routes one command. payload is the activating *toolbar.Event for
// toolbar commands and the replacement document.State for toolbar.Change.
//
// Any command other than Change closes an open link prompt before it runs.
// Dispatch panics on a command it cannot route.
func (c *Controller) Dispatch(cmd toolbar.Command, payload any) {
	if cmd != toolbar.Change {
		if ev, ok := payload.(*toolbar.Event); ok {
			ev.PreventDefault()
		}
		if c.mode == LinkPrompt {
			c.closePrompt()
		}
	}

	switch cmd {
	case toolbar.Change:
		s, ok := payload.(document.State)
		if !ok {
			panic(fmt.Sprintf("controller: change dispatched with %T payload", payload))
		}
		c.state = s
		c.editor = c.editor.SetState(s)
	case toolbar.Bold:
		c.Dispatch(toolbar.Change, document.ToggleInlineStyle(c.state, document.Bold))
	case toolbar.Italic:
		c.Dispatch(toolbar.Change, document.ToggleInlineStyle(c.state, document.Italic))
	case toolbar.Header:
		c.Dispatch(toolbar.Change, document.ToggleBlockType(c.state, document.BlockHeaderTwo))
	case toolbar.List:
		c.Dispatch(toolbar.Change, document.ToggleBlockType(c.state, document.BlockUnorderedList))
	case toolbar.AddLink:
		c.addLink()
	case toolbar.RemoveLink:
		c.removeLink()
	default:
		panic(fmt.Sprintf("controller: unroutable command %v", cmd))
	}
	if cmd != toolbar.Change {
		c.logger.Debug("command dispatched", slog.String("command", cmd.String()), slog.String("mode", c.mode.String()))
	}
}

// HandleKeyCommand resolves a named key command from the editor surface. It
// reports true when the command produced a new state, and false when the
// editor should fall back to its default handling.
func (c *Controller) HandleKeyCommand(command string) bool {
	next, ok := document.HandleKeyCommand(c.state, command)
	if !ok {
		return false
	}
	c.Dispatch(toolbar.Change, next)
	return true
}

func (c *Controller) addLink() {
	if c.state.Selection().IsCollapsed() {
		return
	}
	url := ""
	if key := document.CurrentEntity(c.state); key != 0 {
		if e, ok := c.state.Content().Entity(key); ok {
			url = e.URL()
		}
	}
	c.SetURL(url)
	c.mode = LinkPrompt
	c.queue(focusURL)
}

func (c *Controller) removeLink() {
	sel := c.state.Selection()
	if sel.IsCollapsed() {
		return
	}
	c.Dispatch(toolbar.Change, document.ToggleLink(c.state, sel, 0))
}

// ConfirmLink links the selection to a new LINK entity holding the URL
// field text and returns to Editing. An empty URL is stored as is. Outside
// the link prompt it does nothing.
func (c *Controller) ConfirmLink(ev *toolbar.Event) {
	ev.PreventDefault()
	if c.mode != LinkPrompt {
		return
	}

	content := c.state.Content().CreateEntity(document.EntityLink, document.Mutable, map[string]string{
		"url": c.url.Value(),
	})
	key := content.LastCreatedEntityKey()
	s := c.state.SetContent(content)
	next := document.ToggleLink(s, s.Selection(), key)

	c.closePrompt()
	c.Dispatch(toolbar.Change, next)
	c.logger.Debug("link confirmed", slog.Uint64("entity", uint64(key)))
}

// CancelLink leaves the link prompt without touching the document.
func (c *Controller) CancelLink() {
	if c.mode != LinkPrompt {
		return
	}
	c.closePrompt()
}

func (c *Controller) closePrompt() {
	c.mode = Editing
	c.url.SetValue("")
	c.url.Blur()
	c.queue(focusEditor)
}

func (c *Controller) active(cmd toolbar.Command) bool {
	switch cmd {
	case toolbar.Bold:
		return c.state.CurrentInlineStyle().Has(document.Bold)
	case toolbar.Italic:
		return c.state.CurrentInlineStyle().Has(document.Italic)
	case toolbar.Header:
		return c.state.CurrentBlockType() == document.BlockHeaderTwo
	case toolbar.List:
		return c.state.CurrentBlockType() == document.BlockUnorderedList
	case toolbar.AddLink:
		return c.mode == LinkPrompt || document.CurrentEntity(c.state) != 0
	default:
		return false
	}
}
