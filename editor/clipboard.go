package editor

import (
	"github.com/atotto/clipboard"

	"github.com/iw2rmb/quill/document"
)

// Clipboard provides editor-level clipboard integration.
//
// Errors must not crash the UI; failures are ignored.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// SystemClipboard is the Clipboard backed by the operating system.
type SystemClipboard struct{}

func (SystemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }

func (SystemClipboard) WriteText(s string) error { return clipboard.WriteAll(s) }

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	if s := document.SelectedText(m.state); s != "" {
		_ = m.cfg.Clipboard.WriteText(s)
	}
}

func (m *Model) pasteClipboard() {
	if m.cfg.Clipboard == nil {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil || s == "" {
		return
	}
	m.apply(document.InsertText(m.state, s))
}
