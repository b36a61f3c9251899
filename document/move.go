package document

import "github.com/iw2rmb/quill/internal/grapheme"

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveBlock
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // block start (or doc start for MoveDoc)
	DirEnd  // block end (or doc end for MoveDoc)
)

// Motion describes a caret movement.
type Motion struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // keep the anchor and move only the focus
}

// Move applies m to the selection focus. Without Extend, a non-collapsed
// selection collapses toward the motion direction first for left/right.
func Move(s State, m Motion) State {
	sel := s.selection
	if !m.Extend && !sel.IsCollapsed() && m.Unit == MoveGrapheme {
		switch m.Dir {
		case DirLeft:
			return s.AcceptSelection(sel.Collapse(true))
		case DirRight:
			return s.AcceptSelection(sel.Collapse(false))
		}
	}
	focus := s.movePoint(sel.Focus, m)
	if m.Extend {
		return s.AcceptSelection(s.content.NewSelection(sel.Anchor, focus))
	}
	return s.AcceptSelection(Caret(focus))
}

// SelectAll selects the whole document.
func SelectAll(s State) State {
	first, last := s.content.FirstBlock(), s.content.LastBlock()
	return s.AcceptSelection(Range(Point{Key: first.Key()}, Point{Key: last.Key(), Offset: last.Len()}))
}

func (s State) movePoint(p Point, m Motion) Point {
	c := s.content
	b, ok := c.BlockForKey(p.Key)
	if !ok {
		return p
	}
	switch m.Unit {
	case MoveGrapheme:
		switch m.Dir {
		case DirLeft:
			if p.Offset > 0 {
				return Point{Key: p.Key, Offset: grapheme.PrevBoundary(b.text, p.Offset)}
			}
			if prev, ok := c.BlockBefore(p.Key); ok {
				return Point{Key: prev.Key(), Offset: prev.Len()}
			}
			return p
		case DirRight:
			if p.Offset < b.Len() {
				return Point{Key: p.Key, Offset: grapheme.NextBoundary(b.text, p.Offset)}
			}
			if next, ok := c.BlockAfter(p.Key); ok {
				return Point{Key: next.Key()}
			}
			return p
		}
	case MoveWord:
		switch m.Dir {
		case DirLeft:
			if p.Offset == 0 {
				return s.movePoint(p, Motion{Unit: MoveGrapheme, Dir: DirLeft})
			}
			return Point{Key: p.Key, Offset: grapheme.PrevWord(b.text, p.Offset)}
		case DirRight:
			if p.Offset == b.Len() {
				return s.movePoint(p, Motion{Unit: MoveGrapheme, Dir: DirRight})
			}
			return Point{Key: p.Key, Offset: grapheme.NextWord(b.text, p.Offset)}
		}
	case MoveDoc:
		switch m.Dir {
		case DirHome, DirUp:
			return Point{Key: c.FirstBlock().Key()}
		case DirEnd, DirDown:
			last := c.LastBlock()
			return Point{Key: last.Key(), Offset: last.Len()}
		}
		return p
	}

	switch m.Dir {
	case DirHome:
		return Point{Key: p.Key}
	case DirEnd:
		return Point{Key: p.Key, Offset: b.Len()}
	case DirUp:
		if prev, ok := c.BlockBefore(p.Key); ok {
			return Point{Key: prev.Key(), Offset: min(p.Offset, prev.Len())}
		}
		return Point{Key: p.Key}
	case DirDown:
		if next, ok := c.BlockAfter(p.Key); ok {
			return Point{Key: next.Key(), Offset: min(p.Offset, next.Len())}
		}
		return Point{Key: p.Key, Offset: b.Len()}
	}
	return p
}
