package document

// Key command names understood by HandleKeyCommand.
const (
	CommandBold                   = "bold"
	CommandItalic                 = "italic"
	CommandUnderline              = "underline"
	CommandCode                   = "code"
	CommandStrikethrough          = "strikethrough"
	CommandBackspace              = "backspace"
	CommandBackspaceWord          = "backspace-word"
	CommandBackspaceToStartOfLine = "backspace-to-start-of-line"
	CommandDelete                 = "delete"
	CommandDeleteWord             = "delete-word"
	CommandDeleteToEndOfBlock     = "delete-to-end-of-block"
	CommandSplitBlock             = "split-block"
	CommandUndo                   = "undo"
	CommandRedo                   = "redo"
)

// MaxListDepth bounds AdjustBlockDepth.
const MaxListDepth = 4

// ToggleInlineStyle removes style from the selected range when the style at
// the selection start already has it, and applies it to the whole range
// otherwise. On a collapsed selection it toggles the style override used for
// the next insertion instead.
func ToggleInlineStyle(s State, style InlineStyle) State {
	current := s.CurrentInlineStyle()
	if s.selection.IsCollapsed() {
		next := current.With(style)
		if current.Has(style) {
			next = current.Without(style)
		}
		if s.hasOverride && next == s.withoutOverride().CurrentInlineStyle() {
			return s.withoutOverride()
		}
		return s.SetInlineStyleOverride(next)
	}
	c := applyInlineStyle(s.content, s.selection, style, !current.Has(style))
	return s.Push(c, ChangeInlineStyle)
}

// ToggleBlockType sets t on every block touching the selection, or resets
// them to unstyled when the block at the selection start already has t.
func ToggleBlockType(s State, t BlockType) State {
	sel := s.selection
	start, end := sel.Start(), sel.End()
	if end.Offset == 0 && start.Key != end.Key {
		if prev, ok := s.content.BlockBefore(end.Key); ok {
			sel = Range(start, Point{Key: prev.Key(), Offset: prev.Len()})
		}
	}
	target := t
	if s.CurrentBlockType() == t {
		target = BlockUnstyled
	}
	c := setBlockType(s.content, sel, target)
	c = c.withSelections(s.selection, s.selection)
	return s.Push(c, ChangeBlockType)
}

// ToggleLink annotates every character in sel with entity key, or strips the
// annotation when key is 0. Text is untouched. A collapsed sel is a no-op.
func ToggleLink(s State, sel Selection, key EntityKey) State {
	sel = s.content.Normalize(sel)
	if sel.IsCollapsed() {
		return s
	}
	if key != 0 {
		if _, ok := s.content.Entity(key); !ok {
			return s
		}
	}
	c := applyEntity(s.content, sel, key)
	c = c.withSelections(s.selection, s.selection)
	return s.Push(c, ChangeApplyEntity)
}

// CurrentEntity returns the entity annotating the character at the selection
// start, or 0.
func CurrentEntity(s State) EntityKey {
	start := s.selection.Start()
	b, ok := s.content.BlockForKey(start.Key)
	if !ok {
		return 0
	}
	return b.EntityAt(start.Offset)
}

// AdjustBlockDepth indents (delta > 0) or outdents list items touching the
// selection, bounded by [0, maxDepth].
func AdjustBlockDepth(s State, delta, maxDepth int) State {
	if !s.CurrentBlockType().IsList() {
		return s
	}
	c := adjustBlockDepth(s.content, s.selection, delta, maxDepth)
	c = c.withSelections(s.selection, s.selection)
	return s.Push(c, ChangeBlockDepth)
}

// HandleKeyCommand resolves a named key command. ok is false when the command
// has no rich-text meaning and the caller should fall back to its default
// behavior.
func HandleKeyCommand(s State, command string) (State, bool) {
	switch command {
	case CommandBold:
		return ToggleInlineStyle(s, Bold), true
	case CommandItalic:
		return ToggleInlineStyle(s, Italic), true
	case CommandUnderline:
		return ToggleInlineStyle(s, Underline), true
	case CommandCode:
		return ToggleInlineStyle(s, Code), true
	case CommandStrikethrough:
		return ToggleInlineStyle(s, Strikethrough), true
	case CommandBackspace, CommandBackspaceWord, CommandBackspaceToStartOfLine:
		return onBackspace(s)
	case CommandDelete, CommandDeleteWord, CommandDeleteToEndOfBlock:
		return s, false
	default:
		return s, false
	}
}

// onBackspace resets a styled block to unstyled when the caret sits at its
// very start, instead of joining it with the block above.
func onBackspace(s State) (State, bool) {
	sel := s.selection
	if !sel.IsCollapsed() || sel.Anchor.Offset != 0 {
		return s, false
	}
	b, ok := s.content.BlockForKey(sel.Anchor.Key)
	if !ok || b.Type() == BlockUnstyled {
		return s, false
	}
	if b.Type() == BlockCode {
		if prev, ok := s.content.BlockBefore(b.Key()); ok && prev.Type() == BlockCode && prev.Len() != 0 {
			return s, false
		}
	}
	c := setBlockType(s.content, sel, BlockUnstyled)
	return s.Push(c, ChangeBlockType), true
}
