package controller

import (
	"testing"

	"github.com/iw2rmb/quill/document"
	"github.com/iw2rmb/quill/toolbar"
)

const sampleText = "Hello world, quill"

func newTestController(t *testing.T, from, to int) *Controller {
	t.Helper()
	c := New(Config{})
	content := document.NewContent([]*document.Block{
		document.NewBlock("b1", document.BlockUnstyled, sampleText, nil),
	}, document.SequentialKeys("k"))
	s := document.New(content, document.Options{Decorator: document.LinkDecorator})
	s = s.AcceptSelection(document.Range(
		document.Point{Key: "b1", Offset: from},
		document.Point{Key: "b1", Offset: to},
	))
	c.Dispatch(toolbar.Change, s)
	return c
}

func selectRange(t *testing.T, c *Controller, from, to int) {
	t.Helper()
	s := c.State().AcceptSelection(document.Range(
		document.Point{Key: "b1", Offset: from},
		document.Point{Key: "b1", Offset: to},
	))
	c.Dispatch(toolbar.Change, s)
}

func entityAt(t *testing.T, c *Controller, offset int) document.EntityKey {
	t.Helper()
	b, ok := c.State().Content().BlockForKey("b1")
	if !ok {
		t.Fatalf("block b1 missing")
	}
	return b.EntityAt(offset)
}

func confirmLink(t *testing.T, c *Controller, url string) document.EntityKey {
	t.Helper()
	c.Dispatch(toolbar.AddLink, &toolbar.Event{})
	if c.Mode() != LinkPrompt {
		t.Fatalf("mode after addLink: got %v, want %v", c.Mode(), LinkPrompt)
	}
	c.SetURL(url)
	c.ConfirmLink(&toolbar.Event{})
	return c.State().Content().LastCreatedEntityKey()
}

func TestInitialState(t *testing.T) {
	c := New(Config{})
	if c.Mode() != Editing {
		t.Fatalf("initial mode: got %v, want %v", c.Mode(), Editing)
	}
	if c.State().Content().HasText() {
		t.Fatalf("initial document must be empty")
	}
	if c.LinkSession().Active {
		t.Fatalf("no link session expected at mount")
	}
}

func TestStyleToggles_RoundTrip(t *testing.T) {
	for _, cmd := range []toolbar.Command{toolbar.Bold, toolbar.Italic, toolbar.Header, toolbar.List} {
		c := newTestController(t, 2, 8)
		before := c.State()

		c.Dispatch(cmd, &toolbar.Event{})
		if c.State().Content().Equal(before.Content()) {
			t.Fatalf("%v: first toggle did not change content", cmd)
		}
		c.Dispatch(cmd, &toolbar.Event{})
		if !c.State().Content().Equal(before.Content()) {
			t.Fatalf("%v: second toggle did not restore content", cmd)
		}
	}
}

func TestDispatch_PreventsDefault(t *testing.T) {
	c := newTestController(t, 0, 5)
	ev := &toolbar.Event{}
	c.Dispatch(toolbar.Bold, ev)
	if !ev.DefaultPrevented() {
		t.Fatalf("toolbar command must prevent default")
	}
}

func TestAddLink_CollapsedSelectionIsNoOp(t *testing.T) {
	c := newTestController(t, 3, 3)
	before := c.State()

	c.Dispatch(toolbar.AddLink, &toolbar.Event{})
	if c.Mode() != Editing || c.LinkSession().Active {
		t.Fatalf("collapsed addLink opened the prompt")
	}
	if !c.State().Equal(before) {
		t.Fatalf("collapsed addLink changed the state")
	}
	if len(c.effects) != 0 {
		t.Fatalf("collapsed addLink queued effects: %v", c.effects)
	}
}

func TestRemoveLink_CollapsedSelectionIsNoOp(t *testing.T) {
	c := newTestController(t, 5, 10)
	confirmLink(t, c, "http://example.com")
	selectRange(t, c, 7, 7)
	before := c.State()

	c.Dispatch(toolbar.RemoveLink, &toolbar.Event{})
	if !c.State().Equal(before) {
		t.Fatalf("collapsed removeLink changed the state")
	}
	if entityAt(t, c, 7) == 0 {
		t.Fatalf("collapsed removeLink stripped the link")
	}
}

func TestConfirmLink_AnnotatesSelection(t *testing.T) {
	c := newTestController(t, 5, 10)
	if n := len(c.State().Content().EntityKeys()); n != 0 {
		t.Fatalf("entities before: got %d, want 0", n)
	}

	c.Dispatch(toolbar.AddLink, &toolbar.Event{})
	if got := c.effects; len(got) != 1 || got[0] != focusURL {
		t.Fatalf("effects after addLink: got %v, want [focusURL]", got)
	}
	c.SetURL("http://example.com")
	ev := &toolbar.Event{}
	c.ConfirmLink(ev)
	if !ev.DefaultPrevented() {
		t.Fatalf("confirm must prevent default")
	}

	keys := c.State().Content().EntityKeys()
	if len(keys) != 1 {
		t.Fatalf("entities after: got %d, want 1", len(keys))
	}
	e, _ := c.State().Content().Entity(keys[0])
	if e.Type != document.EntityLink || e.Mutability != document.Mutable {
		t.Fatalf("entity: got %s/%s, want LINK/MUTABLE", e.Type, e.Mutability)
	}
	if data := e.Data(); len(data) != 1 || data["url"] != "http://example.com" {
		t.Fatalf("entity data: got %v", data)
	}

	for i := range len([]rune(sampleText)) {
		got := entityAt(t, c, i)
		inside := i >= 5 && i < 10
		if inside && got != keys[0] {
			t.Fatalf("offset %d: got entity %d, want %d", i, got, keys[0])
		}
		if !inside && got != 0 {
			t.Fatalf("offset %d outside the range is annotated with %d", i, got)
		}
	}

	if c.Mode() != Editing || c.LinkSession().Active {
		t.Fatalf("prompt still open after confirm")
	}
	if got := c.url.Value(); got != "" {
		t.Fatalf("URL field after confirm: got %q, want empty", got)
	}
	if got := c.effects[len(c.effects)-1]; got != focusEditor {
		t.Fatalf("last effect: got %v, want focusEditor", got)
	}
}

func TestConfirmLink_EmptyURLStoredAsIs(t *testing.T) {
	c := newTestController(t, 0, 5)
	key := confirmLink(t, c, "")
	e, ok := c.State().Content().Entity(key)
	if !ok {
		t.Fatalf("entity %d not registered", key)
	}
	if got, ok := e.Data()["url"]; !ok || got != "" {
		t.Fatalf("url: got %q (present=%v), want empty string", got, ok)
	}
	if entityAt(t, c, 0) != key {
		t.Fatalf("range not annotated")
	}
}

func TestAddLink_PrefillsExistingURL(t *testing.T) {
	c := newTestController(t, 5, 10)
	confirmLink(t, c, "http://example.com")

	c.Dispatch(toolbar.AddLink, &toolbar.Event{})
	if got := c.LinkSession(); !got.Active || got.URL != "http://example.com" {
		t.Fatalf("link session over linked range: got %+v", got)
	}
	c.CancelLink()

	selectRange(t, c, 0, 3)
	c.Dispatch(toolbar.AddLink, &toolbar.Event{})
	if got := c.LinkSession(); !got.Active || got.URL != "" {
		t.Fatalf("link session over plain range: got %+v", got)
	}
}

func TestRemoveLink_StripsAnnotationKeepsText(t *testing.T) {
	c := newTestController(t, 5, 10)
	confirmLink(t, c, "http://example.com")

	c.Dispatch(toolbar.RemoveLink, &toolbar.Event{})
	for i := 5; i < 10; i++ {
		if got := entityAt(t, c, i); got != 0 {
			t.Fatalf("offset %d still annotated with %d", i, got)
		}
	}
	if got := c.State().Content().PlainText(); got != sampleText {
		t.Fatalf("text changed: got %q, want %q", got, sampleText)
	}
}

func TestHandleKeyCommand(t *testing.T) {
	c := newTestController(t, 0, 5)
	before := c.State()

	if c.HandleKeyCommand("no-such-command") {
		t.Fatalf("unknown command reported handled")
	}
	if !c.State().Equal(before) {
		t.Fatalf("unknown command changed the state")
	}

	if !c.HandleKeyCommand(document.CommandBold) {
		t.Fatalf("bold reported not handled")
	}
	b, _ := c.State().Content().BlockForKey("b1")
	if !b.StyleAt(0).Has(document.Bold) || b.StyleAt(5).Has(document.Bold) {
		t.Fatalf("bold applied outside the selection")
	}
}

func TestChange_ReplacesStateExactly(t *testing.T) {
	c := newTestController(t, 0, 5)
	c.Dispatch(toolbar.Bold, &toolbar.Event{})

	next := document.New(document.FromText("other\ntext", document.SequentialKeys("n")), document.Options{})
	c.Dispatch(toolbar.Change, next)

	got := c.State()
	if !got.Equal(next) {
		t.Fatalf("state after change differs from payload")
	}
	if got.CanUndo() != next.CanUndo() {
		t.Fatalf("change merged history into the new state")
	}
	if !c.editor.State().Equal(next) {
		t.Fatalf("editor surface not resynchronized")
	}
}

func TestToolbarCommandBypassesPrompt(t *testing.T) {
	c := newTestController(t, 5, 10)
	c.Dispatch(toolbar.AddLink, &toolbar.Event{})
	c.SetURL("http://half-typed")

	c.Dispatch(toolbar.Bold, &toolbar.Event{})
	if c.Mode() != Editing || c.LinkSession().Active {
		t.Fatalf("bold did not close the prompt")
	}
	if n := len(c.State().Content().EntityKeys()); n != 0 {
		t.Fatalf("bypass created %d entities", n)
	}
	b, _ := c.State().Content().BlockForKey("b1")
	if !b.StyleAt(5).Has(document.Bold) {
		t.Fatalf("bold did not run after bypass")
	}
}

func TestCancelLink(t *testing.T) {
	c := newTestController(t, 5, 10)
	before := c.State()
	c.Dispatch(toolbar.AddLink, &toolbar.Event{})
	c.SetURL("http://nope")
	c.CancelLink()

	if c.Mode() != Editing {
		t.Fatalf("mode after cancel: got %v", c.Mode())
	}
	if !c.State().Equal(before) {
		t.Fatalf("cancel changed the state")
	}
}

func TestDispatch_PanicsOnUnroutableCommand(t *testing.T) {
	for _, tc := range []struct {
		name    string
		cmd     toolbar.Command
		payload any
	}{
		{"unknown command", toolbar.Command(99), nil},
		{"change without state", toolbar.Change, "not a state"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			New(Config{}).Dispatch(tc.cmd, tc.payload)
		})
	}
}

func TestConfirmLink_OutsidePromptIsNoOp(t *testing.T) {
	for _, tc := range []struct {
		name     string
		from, to int
	}{
		{"collapsed", 5, 5},
		{"range", 5, 10},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestController(t, tc.from, tc.to)
			before := c.State()
			c.SetURL("http://example.com")

			ev := &toolbar.Event{}
			c.ConfirmLink(ev)
			if !ev.DefaultPrevented() {
				t.Fatalf("confirm must prevent default")
			}
			if !c.State().Equal(before) {
				t.Fatalf("state changed outside the link prompt")
			}
			if n := len(c.State().Content().EntityKeys()); n != 0 {
				t.Fatalf("entities: got %d, want 0", n)
			}
			if got := c.State().Content().LastCreatedEntityKey(); got != 0 {
				t.Fatalf("last created entity: got %d, want 0", got)
			}
			if c.Mode() != Editing || len(c.effects) != 0 {
				t.Fatalf("mode %v, effects %v: want editing with no effects", c.Mode(), c.effects)
			}
		})
	}
}
