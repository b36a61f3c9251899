package document

import (
	"strings"

	"github.com/iw2rmb/quill/internal/grapheme"
)

// InsertText types text at the selection, replacing any selected range.
// Inserted characters take the current inline style and keep a mutable
// entity when typed inside it. Text containing '\n' is inserted as a
// fragment spanning several blocks.
func InsertText(s State, text string) State {
	if text == "" {
		return s
	}
	if strings.Contains(text, "\n") {
		return InsertFragment(s, text)
	}
	meta := CharMeta{Style: s.CurrentInlineStyle(), Entity: entityForInsertion(s)}
	c, at := clearSelection(s)
	c = insertText(c, at, []rune(text), meta)
	return s.Push(c, ChangeInsertCharacters)
}

// InsertFragment inserts multi-line text: the first line joins the block at
// the caret, each further line starts a new block.
func InsertFragment(s State, text string) State {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	meta := CharMeta{Style: s.CurrentInlineStyle()}
	c, at := clearSelection(s)
	c = c.withSelections(s.selection, Caret(at))
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			c = splitAt(c, c.selAfter.Start())
		}
		if line != "" {
			c = insertText(c, c.selAfter.Start(), []rune(line), meta)
		}
	}
	return s.Push(c, ChangeInsertFragment)
}

// DeleteSelection removes the selected range. A collapsed selection is a
// no-op.
func DeleteSelection(s State) State {
	if s.selection.IsCollapsed() {
		return s
	}
	return s.Push(removeSelected(s.content, s.selection), ChangeRemoveRange)
}

// Backspace removes the selection, or the grapheme before the caret, or joins
// the caret block with the block above when the caret is at its start.
func Backspace(s State) State {
	sel := s.selection
	if !sel.IsCollapsed() {
		return DeleteSelection(s)
	}
	p := sel.Anchor
	b, ok := s.content.BlockForKey(p.Key)
	if !ok {
		return s
	}
	var target Selection
	if p.Offset > 0 {
		target = Range(Point{Key: p.Key, Offset: grapheme.PrevBoundary(b.text, p.Offset)}, p)
	} else {
		prev, ok := s.content.BlockBefore(p.Key)
		if !ok {
			return s
		}
		target = Range(Point{Key: prev.Key(), Offset: prev.Len()}, p)
	}
	return s.Push(removeSelected(s.content, target), ChangeBackspace)
}

// DeleteForward removes the selection, or the grapheme after the caret, or
// joins the next block into the caret block at its end.
func DeleteForward(s State) State {
	sel := s.selection
	if !sel.IsCollapsed() {
		return DeleteSelection(s)
	}
	p := sel.Anchor
	b, ok := s.content.BlockForKey(p.Key)
	if !ok {
		return s
	}
	var target Selection
	if p.Offset < b.Len() {
		target = Range(p, Point{Key: p.Key, Offset: grapheme.NextBoundary(b.text, p.Offset)})
	} else {
		next, ok := s.content.BlockAfter(p.Key)
		if !ok {
			return s
		}
		target = Range(p, Point{Key: next.Key()})
	}
	return s.Push(removeSelected(s.content, target), ChangeDeleteCharacter)
}

// SplitBlock removes the selection and splits the block at the caret. An
// empty list item is turned into an unstyled block instead.
func SplitBlock(s State) State {
	c, p := clearSelection(s)
	if b, ok := c.BlockForKey(p.Key); ok && b.Len() == 0 && b.Type().IsList() {
		c = setBlockType(c, Caret(p), BlockUnstyled)
		return s.Push(c, ChangeBlockType)
	}
	return s.Push(splitAt(c, p), ChangeSplitBlock)
}

// SelectedText returns the plain text of the selection, blocks joined by
// '\n'.
func SelectedText(s State) string {
	sel := s.selection
	if sel.IsCollapsed() {
		return ""
	}
	start, end := sel.Start(), sel.End()
	si, _ := s.content.IndexOf(start.Key)
	ei, _ := s.content.IndexOf(end.Key)
	var sb strings.Builder
	for i := si; i <= ei; i++ {
		b := s.content.blocks[i]
		from, to := 0, b.Len()
		if i == si {
			from = start.Offset
		}
		if i == ei {
			to = end.Offset
		}
		if i > si {
			sb.WriteByte('\n')
		}
		from, to = clampSpan(from, to, b.Len())
		sb.WriteString(string(b.text[from:to]))
	}
	return sb.String()
}

// clearSelection removes the selected range, if any, and returns the point
// where new text goes.
func clearSelection(s State) (Content, Point) {
	sel := s.selection
	if sel.IsCollapsed() {
		return s.content, sel.Anchor
	}
	c := removeSelected(s.content, sel)
	return c, c.selAfter.Start()
}

func removeSelected(c Content, sel Selection) Content {
	sel = expandRemoval(c, sel)
	c = removeEntitiesAtEdges(c, sel)
	return removeRange(c, sel)
}

// entityForInsertion returns the entity that text typed at the selection
// should carry: a mutable entity the caret sits strictly inside, or the
// mutable entity at the start of a replaced range.
func entityForInsertion(s State) EntityKey {
	sel := s.selection
	start := sel.Start()
	b, ok := s.content.BlockForKey(start.Key)
	if !ok {
		return 0
	}
	var key EntityKey
	if sel.IsCollapsed() {
		if start.Offset == 0 {
			return 0
		}
		before := b.EntityAt(start.Offset - 1)
		if before == 0 || before != b.EntityAt(start.Offset) {
			return 0
		}
		key = before
	} else {
		key = b.EntityAt(start.Offset)
	}
	if e, ok := s.content.Entity(key); !ok || e.Mutability != Mutable {
		return 0
	}
	return key
}

// BackspaceWord removes the selection or the word before the caret.
func BackspaceWord(s State) State {
	return deleteByMotion(s, Motion{Unit: MoveWord, Dir: DirLeft}, ChangeBackspace)
}

// BackspaceToBlockStart removes the selection or the text between the block
// start and the caret. At the block start it behaves like Backspace.
func BackspaceToBlockStart(s State) State {
	return deleteByMotion(s, Motion{Unit: MoveBlock, Dir: DirHome}, ChangeBackspace)
}

// DeleteWord removes the selection or the word after the caret.
func DeleteWord(s State) State {
	return deleteByMotion(s, Motion{Unit: MoveWord, Dir: DirRight}, ChangeDeleteCharacter)
}

// DeleteToBlockEnd removes the selection or the text between the caret and
// the block end. At the block end it behaves like DeleteForward.
func DeleteToBlockEnd(s State) State {
	return deleteByMotion(s, Motion{Unit: MoveBlock, Dir: DirEnd}, ChangeDeleteCharacter)
}

func deleteByMotion(s State, m Motion, ct ChangeType) State {
	if !s.selection.IsCollapsed() {
		return DeleteSelection(s)
	}
	p := s.selection.Anchor
	q := s.movePoint(p, m)
	if q == p {
		if m.Dir == DirLeft || m.Dir == DirHome {
			return Backspace(s)
		}
		return DeleteForward(s)
	}
	return s.Push(removeSelected(s.content, s.content.NewSelection(p, q)), ct)
}
