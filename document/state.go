package document

// Options configures a new State.
type Options struct {
	Decorator    Decorator
	HistoryLimit int // default: 1000; negative disables history
	Keys         KeyGen
}

// State is an immutable snapshot of the editor: content, selection, the
// pending inline-style override, the decorator and undo/redo history.
type State struct {
	content   Content
	selection Selection

	override    StyleSet
	hasOverride bool

	decorator Decorator

	hist       history
	lastChange ChangeType
}

// NewEmpty returns a state with a single empty block and a caret at its start.
func NewEmpty(opt Options) State {
	return New(NewContent(nil, opt.Keys), opt)
}

// New returns a state wrapping content with a caret at the start.
func New(content Content, opt Options) State {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	if content.blocks == nil {
		content = NewContent(nil, opt.Keys)
	}
	sel := Caret(Point{Key: content.FirstBlock().Key()})
	return State{
		content:   content.withSelections(sel, sel),
		selection: sel,
		decorator: opt.Decorator,
		hist:      history{limit: opt.HistoryLimit},
	}
}

func (s State) Content() Content { return s.content }

func (s State) Selection() Selection { return s.selection }

func (s State) Decorator() Decorator { return s.decorator }

func (s State) LastChangeType() ChangeType { return s.lastChange }

// InlineStyleOverride returns the style applied to the next insertion, if
// one was set by toggling a style on a collapsed selection.
func (s State) InlineStyleOverride() (StyleSet, bool) { return s.override, s.hasOverride }

// WithDecorator returns s rendered through d.
func (s State) WithDecorator(d Decorator) State {
	s.decorator = d
	return s
}

// SetContent replaces the content without recording history. Use Push for
// undoable changes.
func (s State) SetContent(c Content) State {
	s.content = c
	s.selection = c.Normalize(s.selection)
	return s
}

// AcceptSelection moves the selection. The style override is dropped when
// the caret moves.
func (s State) AcceptSelection(sel Selection) State {
	sel = s.content.Normalize(sel)
	if sel != s.selection {
		s.hasOverride = false
		s.override = 0
	}
	s.selection = sel
	return s
}

// ForceSelection moves the selection and records it as the content's
// resulting selection.
func (s State) ForceSelection(sel Selection) State {
	s = s.AcceptSelection(sel)
	s.content = s.content.withSelections(s.content.selBefore, s.selection)
	return s
}

// SetInlineStyleOverride sets the styles used for the next inserted text.
func (s State) SetInlineStyleOverride(ss StyleSet) State {
	s.override = ss
	s.hasOverride = true
	return s
}

func (s State) withoutOverride() State {
	s.override = 0
	s.hasOverride = false
	return s
}

// Push records content as the result of a change of type ct. The selection
// becomes the content's SelectionAfter, and the previous content is pushed
// to the undo stack unless the change coalesces with the previous one.
func (s State) Push(c Content, ct ChangeType) State {
	if c.Equal(s.content) && c.selAfter == s.selection {
		return s
	}
	c = c.withSelections(s.selection, c.selAfter)

	boundary := !ct.coalesces() || ct != s.lastChange || s.content.selAfter != s.selection
	if boundary {
		s.hist = s.hist.push(s.content)
	} else {
		s.hist = s.hist.clearRedo()
	}

	s.content = c
	s.selection = c.selAfter
	s.override = 0
	s.hasOverride = false
	s.lastChange = ct
	return s
}

// CanUndo reports whether Undo would change the state.
func (s State) CanUndo() bool { return s.hist.undo != nil }

// CanRedo reports whether Redo would change the state.
func (s State) CanRedo() bool { return s.hist.redo != nil }

// Undo restores the content before the last pushed change. The entity
// registry is kept so entity keys are never reused.
func (s State) Undo() State {
	prev, hist, ok := s.hist.popUndo(s.content)
	if !ok {
		return s
	}
	cur := s.content
	s.content = prev.withEntityRegistry(cur)
	s.selection = s.content.Normalize(cur.selBefore)
	s.hist = hist
	s.override = 0
	s.hasOverride = false
	s.lastChange = ChangeUndo
	return s
}

// Redo re-applies the last undone change.
func (s State) Redo() State {
	next, hist, ok := s.hist.popRedo(s.content)
	if !ok {
		return s
	}
	s.content = next.withEntityRegistry(s.content)
	s.selection = s.content.selAfter
	s.hist = hist
	s.override = 0
	s.hasOverride = false
	s.lastChange = ChangeRedo
	return s
}

// Equal reports whether s and o have the same content, selection and style
// override. History and decorator are not compared.
func (s State) Equal(o State) bool {
	return s.content.Equal(o.content) &&
		s.selection == o.selection &&
		s.hasOverride == o.hasOverride &&
		s.override == o.override
}

// CurrentInlineStyle returns the style override if set, otherwise the style
// that text inserted at the selection start would get.
func (s State) CurrentInlineStyle() StyleSet {
	if s.hasOverride {
		return s.override
	}
	start := s.selection.Start()
	b, ok := s.content.BlockForKey(start.Key)
	if !ok {
		return 0
	}
	if s.selection.IsCollapsed() {
		return styleForCaret(s.content, b, start.Offset)
	}
	if start.Offset < b.Len() {
		return b.StyleAt(start.Offset)
	}
	return styleForCaret(s.content, b, start.Offset)
}

// CurrentBlockType returns the type of the block holding the selection start.
func (s State) CurrentBlockType() BlockType {
	b, ok := s.content.BlockForKey(s.selection.Start().Key)
	if !ok {
		return BlockUnstyled
	}
	return b.Type()
}

// styleForCaret returns the style of the character before offset, falling
// back to the nearest non-empty block above.
func styleForCaret(c Content, b *Block, offset int) StyleSet {
	if offset > 0 {
		return b.StyleAt(offset - 1)
	}
	if b.Len() > 0 {
		return b.StyleAt(0)
	}
	for prev, ok := c.BlockBefore(b.Key()); ok; prev, ok = c.BlockBefore(prev.Key()) {
		if prev.Len() > 0 {
			return prev.StyleAt(prev.Len() - 1)
		}
	}
	return 0
}
