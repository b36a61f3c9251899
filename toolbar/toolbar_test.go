package toolbar

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type dispatched struct {
	cmd     Command
	payload any
}

func recorder(out *[]dispatched, prevent bool) Dispatcher {
	return func(cmd Command, payload any) {
		*out = append(*out, dispatched{cmd: cmd, payload: payload})
		if ev, ok := payload.(*Event); ok && prevent {
			ev.PreventDefault()
		}
	}
}

func TestView_OneButtonPerCommand(t *testing.T) {
	m := New(Config{Style: DefaultStyle()})
	got := m.View()
	want := " B   I   H2   • List   Link   Unlink "
	if got != want {
		t.Fatalf("view:\n got: %q\nwant: %q", got, want)
	}
	if m.Width() != len([]rune(want)) {
		t.Fatalf("width: got %d, want %d", m.Width(), len([]rune(want)))
	}
}

func TestView_ActiveButtonsUseActiveStyle(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	st := Style{Button: r.NewStyle(), Active: r.NewStyle().Reverse(true), Gap: " "}

	m := New(Config{Style: st, Active: func(c Command) bool { return c == Italic }})
	got := m.View()
	if !strings.Contains(got, st.Active.Inherit(st.Button).Render(" I ")) {
		t.Fatalf("active italic button missing from %q", got)
	}
	if strings.Contains(got, st.Active.Inherit(st.Button).Render(" B ")) {
		t.Fatalf("inactive bold button rendered active in %q", got)
	}
}

func TestHitTest(t *testing.T) {
	m := New(Config{Style: DefaultStyle()})

	cases := []struct {
		x, y int
		want Command
		ok   bool
	}{
		{0, 0, Bold, true},
		{2, 0, Bold, true},
		{3, 0, 0, false},
		{4, 0, Italic, true},
		{8, 0, Header, true},
		{13, 0, List, true},
		{22, 0, AddLink, true},
		{36, 0, RemoveLink, true},
		{37, 0, 0, false},
		{0, 1, 0, false},
		{-1, 0, 0, false},
	}
	for _, tc := range cases {
		got, ok := m.HitTest(tc.x, tc.y)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("HitTest(%d,%d): got (%v,%v), want (%v,%v)", tc.x, tc.y, got, ok, tc.want, tc.ok)
		}
	}
}

func TestUpdate_DispatchesOnPressOnly(t *testing.T) {
	m := New(Config{Style: DefaultStyle()})
	var got []dispatched
	d := recorder(&got, true)

	press := tea.MouseMsg{X: 9, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	ev := m.Update(press, d)
	if ev == nil || !ev.DefaultPrevented() {
		t.Fatalf("press: expected a prevented event, got %+v", ev)
	}
	if ev.Msg != tea.Msg(press) {
		t.Fatalf("event must carry the raw message")
	}

	for _, msg := range []tea.Msg{
		tea.MouseMsg{X: 9, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 9, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 9, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonRight},
		tea.MouseMsg{X: 3, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
	} {
		if ev := m.Update(msg, d); ev != nil {
			t.Fatalf("%+v must not dispatch", msg)
		}
	}

	if len(got) != 1 || got[0].cmd != Header {
		t.Fatalf("dispatches: got %+v, want one header", got)
	}
	if _, ok := got[0].payload.(*Event); !ok {
		t.Fatalf("payload: got %T, want *Event", got[0].payload)
	}
}

func TestUpdate_Hotkeys(t *testing.T) {
	m := New(Config{})
	var got []dispatched
	d := recorder(&got, false)

	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("b"), Alt: true},
		{Type: tea.KeyRunes, Runes: []rune("i"), Alt: true},
		{Type: tea.KeyRunes, Runes: []rune("h"), Alt: true},
		{Type: tea.KeyRunes, Runes: []rune("l"), Alt: true},
		{Type: tea.KeyRunes, Runes: []rune("k"), Alt: true},
		{Type: tea.KeyRunes, Runes: []rune("K"), Alt: true},
		{Type: tea.KeyRunes, Runes: []rune("b")},
	}
	for _, k := range keys {
		m.Update(k, d)
	}

	want := Commands()
	if len(got) != len(want) {
		t.Fatalf("dispatches: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].cmd != want[i] {
			t.Fatalf("dispatch %d: got %v, want %v", i, got[i].cmd, want[i])
		}
	}
}

func TestUpdate_NotPreventedWhenHandlerDoesNot(t *testing.T) {
	m := New(Config{})
	var got []dispatched
	ev := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b"), Alt: true}, recorder(&got, false))
	if ev == nil || ev.DefaultPrevented() {
		t.Fatalf("expected a dispatched, non-prevented event, got %+v", ev)
	}
}

func TestCommandString(t *testing.T) {
	names := []string{"bold", "italic", "header", "list", "addLink", "removeLink", "change"}
	for i, want := range names {
		if got := Command(i).String(); got != want {
			t.Fatalf("Command(%d).String(): got %q, want %q", i, got, want)
		}
	}
	if got := Command(42).String(); got != "Command(42)" {
		t.Fatalf("unknown command: got %q", got)
	}
}
