package toolbar

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Style controls toolbar rendering.
type Style struct {
	Button lipgloss.Style
	Active lipgloss.Style // buttons whose command is in effect at the caret
	Gap    string
}

func DefaultStyle() Style {
	return Style{
		Button: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")),
		Active: lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("39")).Bold(true),
		Gap:    " ",
	}
}

// Config configures a toolbar.
type Config struct {
	Style  Style
	KeyMap KeyMap

	// Active reports whether a command is in effect for the current
	// selection, e.g. bold text under the caret. Optional.
	Active func(Command) bool
}

// Model is the command bar. It holds no interaction state: every press is
// turned into a dispatch immediately and the toolbar never takes focus.
type Model struct {
	cfg Config
}

func New(cfg Config) Model {
	cfg.KeyMap = normalizeKeyMap(cfg.KeyMap)
	return Model{cfg: cfg}
}

func (m Model) KeyMap() KeyMap { return m.cfg.KeyMap }

// span is the [x0, x1) cell range of one button.
type span struct {
	cmd    Command
	x0, x1 int
}

func (m Model) spans() []span {
	gap := runewidth.StringWidth(m.cfg.Style.Gap)
	out := make([]span, 0, len(buttons))
	x := 0
	for i, c := range buttons {
		if i > 0 {
			x += gap
		}
		w := runewidth.StringWidth(c.Label()) + 2
		out = append(out, span{cmd: c, x0: x, x1: x + w})
		x += w
	}
	return out
}

// Width is the number of cells View occupies.
func (m Model) Width() int {
	sp := m.spans()
	return sp[len(sp)-1].x1
}

func (m Model) View() string {
	st := m.cfg.Style
	var sb strings.Builder
	for i, c := range buttons {
		if i > 0 {
			sb.WriteString(st.Gap)
		}
		s := st.Button
		if m.cfg.Active != nil && m.cfg.Active(c) {
			s = st.Active.Inherit(st.Button)
		}
		sb.WriteString(s.Render(" " + c.Label() + " "))
	}
	return sb.String()
}

// HitTest maps toolbar-local cell coordinates to the button under them.
func (m Model) HitTest(x, y int) (Command, bool) {
	if y != 0 {
		return 0, false
	}
	for _, sp := range m.spans() {
		if x >= sp.x0 && x < sp.x1 {
			return sp.cmd, true
		}
	}
	return 0, false
}

// Update dispatches the command activated by msg, if any, and returns the
// event handed to dispatch, or nil when msg activated nothing.
//
// Only a left-button press activates a button; release and motion never do.
// Mouse coordinates are toolbar-local.
func (m Model) Update(msg tea.Msg, dispatch Dispatcher) *Event {
	var (
		cmd Command
		ok  bool
	)
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return nil
		}
		cmd, ok = m.HitTest(msg.X, msg.Y)
	case tea.KeyMsg:
		cmd, ok = m.cfg.KeyMap.Command(msg)
	}
	if !ok || dispatch == nil {
		return nil
	}
	ev := &Event{Msg: msg}
	dispatch(cmd, ev)
	return ev
}
