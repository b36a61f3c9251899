package document

// Point addresses a caret position: a rune offset inside a block.
type Point struct {
	Key    BlockKey
	Offset int
}

// Selection is the anchor/focus range of a State.
//
// Backward is true when Focus precedes Anchor in document order. The
// selection is collapsed exactly when Anchor == Focus.
type Selection struct {
	Anchor   Point
	Focus    Point
	Backward bool
}

// Caret returns a collapsed selection at p.
func Caret(p Point) Selection {
	return Selection{Anchor: p, Focus: p}
}

// IsCollapsed reports whether the selection has zero width.
func (s Selection) IsCollapsed() bool { return s.Anchor == s.Focus }

// Start returns the earlier end of the selection in document order.
func (s Selection) Start() Point {
	if s.Backward {
		return s.Focus
	}
	return s.Anchor
}

// End returns the later end of the selection in document order.
func (s Selection) End() Point {
	if s.Backward {
		return s.Anchor
	}
	return s.Focus
}

// Collapse returns a caret at the selection end (toStart=false) or start.
func (s Selection) Collapse(toStart bool) Selection {
	if toStart {
		return Caret(s.Start())
	}
	return Caret(s.End())
}

// Range returns a forward selection from start to end.
func Range(start, end Point) Selection {
	return Selection{Anchor: start, Focus: end}
}
