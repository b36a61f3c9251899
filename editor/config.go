package editor

import "github.com/iw2rmb/quill/document"

// Config configures the editor Model.
type Config struct {
	// Initial text, one block per line. Ignored when the host calls SetState.
	Text string

	// Placeholder is shown while the document has no text.
	Placeholder string

	// Forwarded to document.Options. Decorator defaults to
	// document.LinkDecorator.
	Decorator    document.Decorator
	HistoryLimit int
	Keys         document.KeyGen

	ReadOnly bool

	Style    Style
	KeyMap   KeyMap
	WrapMode WrapMode
	TabWidth int // cells per tab; default 4

	ScrollPolicy ScrollPolicy

	// MaxListDepth bounds tab indentation of list items. Default:
	// document.MaxListDepth.
	MaxListDepth int

	Clipboard Clipboard

	// OnChange is called with every state the editor produces itself
	// (typing, motion, selection, default key commands). It is not called
	// for states installed with SetState.
	OnChange func(document.State)

	// HandleKeyCommand is offered every named key command before the
	// default behavior. Returning true means the host produced the new
	// state and will install it with SetState; the editor then does
	// nothing. Returning false lets the default behavior run.
	HandleKeyCommand func(command string) bool
}

func (c Config) tabWidth() int {
	if c.TabWidth <= 0 {
		return 4
	}
	return c.TabWidth
}

func (c Config) maxListDepth() int {
	if c.MaxListDepth <= 0 {
		return document.MaxListDepth
	}
	return c.MaxListDepth
}
