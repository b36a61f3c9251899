package controller

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tidwall/gjson"

	"github.com/iw2rmb/quill/document"
	"github.com/iw2rmb/quill/editor"
	"github.com/iw2rmb/quill/toolbar"
)

type memClipboard struct {
	s string
}

func (c *memClipboard) ReadText() (string, error) { return c.s, nil }
func (c *memClipboard) WriteText(s string) error  { c.s = s; return nil }

func update(t *testing.T, c *Controller, msgs ...tea.Msg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var m tea.Model
		m, cmd = c.Update(msg)
		if m != tea.Model(c) {
			t.Fatalf("Update returned a different model")
		}
	}
	return cmd
}

func alt(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func typeText(s string) []tea.Msg {
	out := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		out = append(out, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return out
}

func TestUpdate_TypingReachesState(t *testing.T) {
	c := New(Config{})
	update(t, c, typeText("hi")...)
	update(t, c, tea.KeyMsg{Type: tea.KeyEnter})
	update(t, c, typeText("yo")...)

	if got := c.State().Content().PlainText(); got != "hi\nyo" {
		t.Fatalf("text: got %q, want %q", got, "hi\nyo")
	}
	if !c.editor.State().Equal(c.State()) {
		t.Fatalf("editor surface out of sync with controller state")
	}
}

func TestUpdate_ToolbarHotkeyDoesNotReachEditor(t *testing.T) {
	c := newTestController(t, 0, 5)
	update(t, c, alt('b'))

	b, _ := c.State().Content().BlockForKey("b1")
	if !b.StyleAt(0).Has(document.Bold) {
		t.Fatalf("alt+b did not toggle bold")
	}
	if got := c.State().Content().PlainText(); got != sampleText {
		t.Fatalf("hotkey leaked into the text: %q", got)
	}
}

func TestUpdate_EditorKeyCommandGoesThroughController(t *testing.T) {
	c := newTestController(t, 0, 5)
	update(t, c, tea.KeyMsg{Type: tea.KeyCtrlT})

	b, _ := c.State().Content().BlockForKey("b1")
	if !b.StyleAt(0).Has(document.Italic) {
		t.Fatalf("ctrl+t did not toggle italic")
	}
}

func TestUpdate_LinkFlowByKeyboard(t *testing.T) {
	c := newTestController(t, 6, 11)

	update(t, c, alt('k'))
	if c.Mode() != LinkPrompt {
		t.Fatalf("alt+k did not open the prompt")
	}
	update(t, c, typeText("http://a.b")...)
	if got := c.LinkSession().URL; got != "http://a.b" {
		t.Fatalf("URL field: got %q", got)
	}
	if got := c.State().Content().PlainText(); got != sampleText {
		t.Fatalf("prompt input leaked into the document: %q", got)
	}

	update(t, c, tea.KeyMsg{Type: tea.KeyEnter})
	if c.Mode() != Editing {
		t.Fatalf("enter did not confirm")
	}
	key := entityAt(t, c, 6)
	e, ok := c.State().Content().Entity(key)
	if !ok || e.URL() != "http://a.b" {
		t.Fatalf("link entity: got %+v (ok=%v)", e, ok)
	}

	update(t, c, effectMsg{})
	if !c.editor.Focused() || c.url.Focused() {
		t.Fatalf("focus did not return to the editor")
	}
}

func TestUpdate_EscCancelsPrompt(t *testing.T) {
	c := newTestController(t, 6, 11)
	before := c.State()
	update(t, c, alt('k'), tea.KeyMsg{Type: tea.KeyEsc})
	if c.Mode() != Editing {
		t.Fatalf("esc did not cancel")
	}
	if !c.State().Equal(before) {
		t.Fatalf("cancel changed the state")
	}
}

func TestEffects_RunBeforeNextEvent(t *testing.T) {
	c := newTestController(t, 6, 11)
	c.Dispatch(toolbar.AddLink, &toolbar.Event{})
	if c.url.Focused() {
		t.Fatalf("focus must be deferred")
	}

	// The URL field only accepts input when focused, so the first key
	// lands only if the queued focus ran first.
	update(t, c, typeText("x")...)
	if got := c.LinkSession().URL; got != "x" {
		t.Fatalf("URL field: got %q, want %q", got, "x")
	}
	if c.editor.Focused() {
		t.Fatalf("editor still focused while prompting")
	}
}

func TestEffects_ReturnFlushCmd(t *testing.T) {
	c := newTestController(t, 6, 11)
	cmd := update(t, c, alt('k'))
	if cmd == nil {
		t.Fatalf("expected a command scheduling the focus effect")
	}
	if len(c.effects) != 1 {
		t.Fatalf("effects: got %v, want one", c.effects)
	}
	update(t, c, effectMsg{})
	if len(c.effects) != 0 || !c.url.Focused() {
		t.Fatalf("effect not flushed")
	}
}

func TestEffects_NoOpAfterUnmount(t *testing.T) {
	c := newTestController(t, 6, 11)
	c.Dispatch(toolbar.AddLink, &toolbar.Event{})
	c.Unmount()

	update(t, c, effectMsg{})
	if c.url.Focused() {
		t.Fatalf("effect ran after unmount")
	}
	if c.Mounted() {
		t.Fatalf("Mounted after Unmount")
	}
}

func TestUpdate_QuitUnmounts(t *testing.T) {
	c := New(Config{})
	cmd := update(t, c, tea.KeyMsg{Type: tea.KeyCtrlQ})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if c.Mounted() {
		t.Fatalf("controller still mounted after quit")
	}
}

func TestUpdate_MouseOnToolbar(t *testing.T) {
	c := newTestController(t, 0, 5)
	update(t, c, tea.WindowSizeMsg{Width: 80, Height: 12})

	update(t, c, tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	b, _ := c.State().Content().BlockForKey("b1")
	if !b.StyleAt(0).Has(document.Bold) {
		t.Fatalf("press on B did not toggle bold")
	}

	update(t, c, tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	b, _ = c.State().Content().BlockForKey("b1")
	if !b.StyleAt(0).Has(document.Bold) {
		t.Fatalf("release toggled bold again")
	}
}

func TestUpdate_MouseInEditorMovesCaret(t *testing.T) {
	c := newTestController(t, 0, 5)
	update(t, c, tea.WindowSizeMsg{Width: 80, Height: 12})

	update(t, c, tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	sel := c.State().Selection()
	if !sel.IsCollapsed() || sel.Focus.Offset != 3 {
		t.Fatalf("selection after click: got %+v, want caret at 3", sel)
	}
}

func TestLogState(t *testing.T) {
	var buf bytes.Buffer
	cb := &memClipboard{}
	c := New(Config{
		Logger:         slog.New(slog.NewJSONHandler(&buf, nil)),
		CopyStateOnLog: true,
		Editor:         editor.Config{Clipboard: cb},
	})
	content := document.NewContent([]*document.Block{
		document.NewBlock("b1", document.BlockUnstyled, sampleText, nil),
	}, document.SequentialKeys("k"))
	c.Dispatch(toolbar.Change, document.New(content, document.Options{}).AcceptSelection(document.Range(
		document.Point{Key: "b1", Offset: 0},
		document.Point{Key: "b1", Offset: 5},
	)))
	confirmLink(t, c, "http://example.com")
	before := c.State()

	update(t, c, tea.KeyMsg{Type: tea.KeyF2})

	if !c.State().Equal(before) {
		t.Fatalf("LogState changed the state")
	}
	line := buf.String()
	if got := gjson.Get(line, "msg").String(); got != "document state" {
		t.Fatalf("log message: got %q", got)
	}
	raw := gjson.Get(line, "raw").String()
	if got := gjson.Get(raw, "blocks.0.text").String(); got != sampleText {
		t.Fatalf("raw block text: got %q", got)
	}
	if got := gjson.Get(raw, "entityMap.0.data.url").String(); got != "http://example.com" {
		t.Fatalf("raw entity url: got %q", got)
	}
	ast := gjson.Get(line, "ast").String()
	if got := gjson.Get(ast, "0.0").String(); got != "block" {
		t.Fatalf("ast root: got %q", got)
	}
	if gjson.Get(line, "digest").String() == "" {
		t.Fatalf("digest missing")
	}
	if cb.s != raw {
		t.Fatalf("clipboard: got %q, want the raw export", cb.s)
	}
	if !strings.HasPrefix(c.status, "state logged ") {
		t.Fatalf("status: got %q", c.status)
	}
}

func TestView_Layout(t *testing.T) {
	c := newTestController(t, 6, 11)
	update(t, c, tea.WindowSizeMsg{Width: 60, Height: 12})

	lines := strings.Split(c.View(), "\n")
	if !strings.HasPrefix(lines[0], " B ") || !strings.Contains(lines[0], "Log State") {
		t.Fatalf("toolbar row: got %q", lines[0])
	}
	if !strings.Contains(lines[1], "Hello world") {
		t.Fatalf("editor row: got %q", lines[1])
	}

	update(t, c, alt('k'))
	lines = strings.Split(c.View(), "\n")
	if !strings.HasPrefix(lines[1], "URL: ") {
		t.Fatalf("prompt row: got %q", lines[1])
	}
	if !strings.Contains(lines[2], "Hello world") {
		t.Fatalf("editor row under prompt: got %q", lines[2])
	}
}
