package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/quill/document"
)

// Model is a Bubble Tea component that renders a document.State and turns
// keyboard and mouse input into new states.
//
// Model is a value; hosts keep the returned copy from every method.
type Model struct {
	cfg   Config
	state document.State

	focused bool

	viewport viewport.Model
	layout   layout

	mouseDragging bool
	mouseAnchor   document.Point
}

func New(cfg Config) Model {
	cfg.KeyMap = normalizeKeyMap(cfg.KeyMap)
	if cfg.Decorator == nil {
		cfg.Decorator = document.LinkDecorator
	}
	opt := document.Options{
		Decorator:    cfg.Decorator,
		HistoryLimit: cfg.HistoryLimit,
		Keys:         cfg.Keys,
	}
	// cfg.Keys is drawn from only for blocks that are kept.
	var state document.State
	if cfg.Text != "" {
		state = document.New(document.FromText(cfg.Text, cfg.Keys), opt)
	} else {
		state = document.NewEmpty(opt)
	}
	m := Model{
		cfg:      cfg,
		state:    state,
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.rebuildContent()
	return m
}

// State returns the document state currently rendered.
func (m Model) State() document.State { return m.state }

// SetState installs s without calling OnChange.
func (m Model) SetState(s document.State) Model {
	m.state = s
	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	m.viewport.Width = max(width, 0)
	m.viewport.Height = max(height, 0)
	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Width() int { return m.viewport.Width }

func (m Model) Height() int { return m.viewport.Height }

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.mouseDragging = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m Model) View() string { return m.viewport.View() }

func (m *Model) rebuildContent() {
	m.layout = buildLayout(m.state, m.viewport.Width, m.cfg.WrapMode, m.cfg.tabWidth())
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	h := m.visibleRowCount()
	if h <= 0 {
		return
	}
	row, ok := m.layout.rowForPoint(m.state.Selection().Focus)
	if !ok {
		return
	}
	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}
