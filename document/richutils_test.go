package document

import "testing"

func newTestState(t *testing.T, lines ...string) State {
	t.Helper()
	keys := SequentialKeys("b")
	blocks := make([]*Block, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, NewBlock(keys(), BlockUnstyled, line, nil))
	}
	return New(NewContent(blocks, keys), Options{Decorator: LinkDecorator})
}

func selectRange(s State, startKey BlockKey, startOff int, endKey BlockKey, endOff int) State {
	return s.AcceptSelection(s.Content().NewSelection(
		Point{Key: startKey, Offset: startOff},
		Point{Key: endKey, Offset: endOff},
	))
}

func TestToggleInlineStyle_RoundTrip(t *testing.T) {
	for _, style := range []InlineStyle{Bold, Italic} {
		s0 := selectRange(newTestState(t, "hello world", "second"), "b0", 2, "b1", 3)

		s1 := ToggleInlineStyle(s0, style)
		b0, _ := s1.Content().BlockForKey("b0")
		for i := 2; i < b0.Len(); i++ {
			if !b0.StyleAt(i).Has(style) {
				t.Fatalf("%s: b0[%d] not styled after first toggle", style, i)
			}
		}
		if b0.StyleAt(1).Has(style) {
			t.Fatalf("%s: b0[1] styled outside selection", style)
		}
		b1, _ := s1.Content().BlockForKey("b1")
		if !b1.StyleAt(2).Has(style) || b1.StyleAt(3).Has(style) {
			t.Fatalf("%s: b1 styling does not match selection end", style)
		}

		s2 := ToggleInlineStyle(s1, style)
		if !s2.Equal(s0) {
			t.Fatalf("%s: toggle twice did not restore state", style)
		}
	}
}

func TestToggleInlineStyle_StylesAreIndependent(t *testing.T) {
	s0 := selectRange(newTestState(t, "abcdef"), "b0", 0, "b0", 6)
	s1 := ToggleInlineStyle(ToggleInlineStyle(s0, Bold), Italic)
	s2 := ToggleInlineStyle(s1, Bold)
	b, _ := s2.Content().BlockForKey("b0")
	for i := 0; i < b.Len(); i++ {
		if got, want := b.StyleAt(i), StyleSet(0).With(Italic); got != want {
			t.Fatalf("style[%d]=%v, want %v", i, got, want)
		}
	}
	if !ToggleInlineStyle(s2, Italic).Equal(s0) {
		t.Fatalf("expected italic toggle to restore the original state")
	}
}

func TestToggleInlineStyle_CollapsedSetsOverride(t *testing.T) {
	s0 := selectRange(newTestState(t, "ab"), "b0", 1, "b0", 1)
	s1 := ToggleInlineStyle(s0, Bold)
	if got, ok := s1.InlineStyleOverride(); !ok || !got.Has(Bold) {
		t.Fatalf("override=%v,%v, want BOLD,true", got, ok)
	}
	if !s1.Content().Equal(s0.Content()) {
		t.Fatalf("collapsed toggle must not change content")
	}

	s2 := InsertText(s1, "X")
	b, _ := s2.Content().BlockForKey("b0")
	if got := b.Text(); got != "aXb" {
		t.Fatalf("text=%q, want %q", got, "aXb")
	}
	if !b.StyleAt(1).Has(Bold) || b.StyleAt(0).Has(Bold) {
		t.Fatalf("only the inserted character should be bold")
	}

	if !ToggleInlineStyle(s1, Bold).Equal(s0) {
		t.Fatalf("toggling the override twice should restore the state")
	}
}

func TestToggleBlockType_RoundTrip(t *testing.T) {
	for _, typ := range []BlockType{BlockHeaderTwo, BlockUnorderedList} {
		s0 := selectRange(newTestState(t, "one", "two", "three"), "b0", 1, "b1", 2)
		s1 := ToggleBlockType(s0, typ)
		for key, want := range map[BlockKey]BlockType{"b0": typ, "b1": typ, "b2": BlockUnstyled} {
			b, _ := s1.Content().BlockForKey(key)
			if b.Type() != want {
				t.Fatalf("%s: %s type=%s, want %s", typ, key, b.Type(), want)
			}
		}
		if !ToggleBlockType(s1, typ).Equal(s0) {
			t.Fatalf("%s: toggle twice did not restore state", typ)
		}
	}
}

func TestToggleBlockType_SkipsBlockWhenSelectionEndsAtItsStart(t *testing.T) {
	s0 := selectRange(newTestState(t, "one", "two"), "b0", 0, "b1", 0)
	s1 := ToggleBlockType(s0, BlockHeaderTwo)
	b1, _ := s1.Content().BlockForKey("b1")
	if b1.Type() != BlockUnstyled {
		t.Fatalf("b1 type=%s, want unstyled", b1.Type())
	}
}

func TestToggleBlockType_SwitchesBetweenTypes(t *testing.T) {
	s0 := selectRange(newTestState(t, "one"), "b0", 0, "b0", 0)
	s1 := ToggleBlockType(ToggleBlockType(s0, BlockUnorderedList), BlockHeaderTwo)
	if got := s1.CurrentBlockType(); got != BlockHeaderTwo {
		t.Fatalf("type=%s, want %s", got, BlockHeaderTwo)
	}
}

func TestToggleLink_AttachAndDetach(t *testing.T) {
	s0 := selectRange(newTestState(t, "0123456789abcdef"), "b0", 5, "b0", 10)

	c := s0.Content().CreateEntity(EntityLink, Mutable, map[string]string{"url": "http://example.com"})
	key := c.LastCreatedEntityKey()
	s1 := ToggleLink(s0.SetContent(c), s0.Selection(), key)

	b, _ := s1.Content().BlockForKey("b0")
	for i := 0; i < b.Len(); i++ {
		want := EntityKey(0)
		if i >= 5 && i < 10 {
			want = key
		}
		if got := b.EntityAt(i); got != want {
			t.Fatalf("entity[%d]=%d, want %d", i, got, want)
		}
	}
	e, ok := s1.Content().Entity(key)
	if !ok || e.Type != EntityLink || e.Mutability != Mutable || e.URL() != "http://example.com" {
		t.Fatalf("entity=%+v ok=%v, want LINK/MUTABLE with url", e, ok)
	}
	if got := CurrentEntity(s1); got != key {
		t.Fatalf("current entity=%d, want %d", got, key)
	}

	s2 := ToggleLink(s1, s1.Selection(), 0)
	b2, _ := s2.Content().BlockForKey("b0")
	if got := b2.Text(); got != "0123456789abcdef" {
		t.Fatalf("text changed: %q", got)
	}
	for i := 0; i < b2.Len(); i++ {
		if b2.EntityAt(i) != 0 {
			t.Fatalf("entity[%d]=%d after removal, want 0", i, b2.EntityAt(i))
		}
	}
}

func TestToggleLink_CollapsedIsNoOp(t *testing.T) {
	s0 := selectRange(newTestState(t, "abc"), "b0", 1, "b0", 1)
	c := s0.Content().CreateEntity(EntityLink, Mutable, map[string]string{"url": "x"})
	s1 := s0.SetContent(c)
	s2 := ToggleLink(s1, s1.Selection(), c.LastCreatedEntityKey())
	if !s2.Equal(s1) || s2.CanUndo() {
		t.Fatalf("collapsed ToggleLink must not change state")
	}
}

func TestToggleLink_UnknownEntityIsNoOp(t *testing.T) {
	s0 := selectRange(newTestState(t, "abc"), "b0", 0, "b0", 2)
	if s1 := ToggleLink(s0, s0.Selection(), 42); !s1.Equal(s0) {
		t.Fatalf("unknown entity key must not be attached")
	}
}

func TestHandleKeyCommand(t *testing.T) {
	s0 := selectRange(newTestState(t, "abc"), "b0", 0, "b0", 3)

	s1, ok := HandleKeyCommand(s0, CommandBold)
	if !ok {
		t.Fatalf("bold must be handled")
	}
	b, _ := s1.Content().BlockForKey("b0")
	if !b.StyleAt(0).Has(Bold) {
		t.Fatalf("expected bold after key command")
	}

	for _, cmd := range []string{"", "split-block", "delete", "no-such-command"} {
		s2, ok := HandleKeyCommand(s0, cmd)
		if ok {
			t.Fatalf("%q must not be handled", cmd)
		}
		if !s2.Equal(s0) {
			t.Fatalf("%q changed state", cmd)
		}
	}
}

func TestHandleKeyCommand_BackspaceResetsBlockType(t *testing.T) {
	s0 := selectRange(newTestState(t, "title"), "b0", 0, "b0", 0)
	s0 = ToggleBlockType(s0, BlockHeaderTwo)

	s1, ok := HandleKeyCommand(s0, CommandBackspace)
	if !ok {
		t.Fatalf("backspace at start of header must be handled")
	}
	if got := s1.CurrentBlockType(); got != BlockUnstyled {
		t.Fatalf("type=%s, want unstyled", got)
	}

	s2 := s1.AcceptSelection(Caret(Point{Key: "b0", Offset: 2}))
	if _, ok := HandleKeyCommand(s2, CommandBackspace); ok {
		t.Fatalf("backspace inside text must fall back to default")
	}
	if _, ok := HandleKeyCommand(s1, CommandBackspace); ok {
		t.Fatalf("backspace at start of unstyled block must fall back to default")
	}
}

func TestAdjustBlockDepth(t *testing.T) {
	s0 := selectRange(newTestState(t, "item"), "b0", 0, "b0", 0)
	if s1 := AdjustBlockDepth(s0, 1, MaxListDepth); !s1.Equal(s0) {
		t.Fatalf("depth must only change for list items")
	}
	s1 := ToggleBlockType(s0, BlockUnorderedList)
	for i := 0; i < MaxListDepth+2; i++ {
		s1 = AdjustBlockDepth(s1, 1, MaxListDepth)
	}
	b, _ := s1.Content().BlockForKey("b0")
	if b.Depth() != MaxListDepth {
		t.Fatalf("depth=%d, want %d", b.Depth(), MaxListDepth)
	}
	s2 := ToggleBlockType(s1, BlockUnorderedList)
	b2, _ := s2.Content().BlockForKey("b0")
	if b2.Depth() != 0 {
		t.Fatalf("leaving a list must reset depth, got %d", b2.Depth())
	}
}

func TestToggleInlineStyle_MixedRangeFollowsSelectionStart(t *testing.T) {
	base := newTestState(t, "abcd")

	// Only "cd" is bold; the start is plain, so the first toggle bolds all.
	s0 := ToggleInlineStyle(selectRange(base, "b0", 2, "b0", 4), Bold)
	s0 = selectRange(s0, "b0", 0, "b0", 4)
	s1 := ToggleInlineStyle(s0, Bold)
	s2 := ToggleInlineStyle(s1, Bold)
	b1, _ := s1.Content().BlockForKey("b0")
	b2, _ := s2.Content().BlockForKey("b0")
	for i := range 4 {
		if !b1.StyleAt(i).Has(Bold) {
			t.Fatalf("first toggle: b0[%d] not bold", i)
		}
		if b2.StyleAt(i).Has(Bold) {
			t.Fatalf("second toggle: b0[%d] still bold", i)
		}
	}
	if s2.Content().Equal(s0.Content()) {
		t.Fatalf("mixed range must not round trip")
	}

	// Only "ab" is bold; the start is bold, so the toggle clears all.
	m0 := ToggleInlineStyle(selectRange(base, "b0", 0, "b0", 2), Bold)
	m1 := ToggleInlineStyle(selectRange(m0, "b0", 0, "b0", 4), Bold)
	b, _ := m1.Content().BlockForKey("b0")
	for i := range 4 {
		if b.StyleAt(i).Has(Bold) {
			t.Fatalf("clear: b0[%d] still bold", i)
		}
	}
}

func TestToggleBlockType_RepeatResetsToUnstyled(t *testing.T) {
	keys := SequentialKeys("b")
	s := New(NewContent([]*Block{
		NewBlock(keys(), BlockUnorderedList, "item", nil),
		NewBlock(keys(), BlockUnstyled, "text", nil),
	}, keys), Options{})
	s = selectRange(s, "b0", 1, "b1", 2)

	s1 := ToggleBlockType(s, BlockHeaderTwo)
	s2 := ToggleBlockType(s1, BlockHeaderTwo)
	for _, k := range []BlockKey{"b0", "b1"} {
		b1, _ := s1.Content().BlockForKey(k)
		if got := b1.Type(); got != BlockHeaderTwo {
			t.Fatalf("first toggle %s: got %s, want %s", k, got, BlockHeaderTwo)
		}
		b2, _ := s2.Content().BlockForKey(k)
		if got := b2.Type(); got != BlockUnstyled {
			t.Fatalf("second toggle %s: got %s, want %s", k, got, BlockUnstyled)
		}
	}
}
