package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/quill/document"
)

// Style controls the editor's rendering.
type Style struct {
	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	Header      lipgloss.Style
	Quote       lipgloss.Style
	CodeBlock   lipgloss.Style
	Marker      lipgloss.Style // list bullets, header hashes, quote bars
	Placeholder lipgloss.Style

	Code lipgloss.Style // CODE inline style
	Link lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Text:        lipgloss.NewStyle(),
		Selection:   lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
		Quote:       lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("250")),
		CodeBlock:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Marker:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
		Code:        lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Background(lipgloss.Color("235")),
		Link:        lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("39")),
	}
}

func (st Style) block(t document.BlockType) lipgloss.Style {
	switch {
	case t.HeaderLevel() > 0:
		return st.Header.Inherit(st.Text)
	case t == document.BlockQuote:
		return st.Quote.Inherit(st.Text)
	case t == document.BlockCode:
		return st.CodeBlock.Inherit(st.Text)
	default:
		return st.Text
	}
}

// cellClass is everything that decides how one grapheme is drawn.
type cellClass struct {
	styles   document.StyleSet
	link     bool
	selected bool
	cursor   bool
}

func (st Style) resolve(base lipgloss.Style, k cellClass) lipgloss.Style {
	s := base
	if k.styles.Has(document.Code) {
		s = st.Code.Inherit(s)
	}
	if k.styles.Has(document.Bold) {
		s = s.Bold(true)
	}
	if k.styles.Has(document.Italic) {
		s = s.Italic(true)
	}
	if k.styles.Has(document.Underline) {
		s = s.Underline(true)
	}
	if k.styles.Has(document.Strikethrough) {
		s = s.Strikethrough(true)
	}
	if k.link {
		s = st.Link.Inherit(s)
	}
	switch {
	case k.cursor:
		s = st.Cursor.Inherit(s)
	case k.selected:
		s = st.Selection.Inherit(s)
	}
	return s
}
