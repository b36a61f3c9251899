package editor

import "github.com/iw2rmb/quill/document"

// screenToPoint maps viewport-local cell coordinates to a document point.
//
// (0,0) is the top-left of the visible content region. Coordinates are
// clamped into the document: clicks on a marker map to the row start,
// clicks past the row end map to its last position.
func (m *Model) screenToPoint(x, y int) document.Point {
	rows := m.layout.rows
	if len(rows) == 0 {
		return m.state.Selection().Focus
	}
	vr := clampInt(m.viewport.YOffset+y, 0, len(rows)-1)
	r := rows[vr]
	return document.Point{Key: r.key, Offset: r.offsetAt(max(x, 0))}
}

// pointToScreen maps a document point to viewport-local cell coordinates.
// ok is false when the point is outside the visible viewport.
func (m *Model) pointToScreen(p document.Point) (x, y int, ok bool) {
	row, found := m.layout.rowForPoint(p)
	if !found {
		return 0, 0, false
	}
	x = m.layout.rows[row].cellX(p.Offset)
	y = row - m.viewport.YOffset
	if y < 0 || y >= m.visibleRowCount() {
		return x, y, false
	}
	if x < 0 || x >= m.viewport.Width {
		return x, y, false
	}
	return x, y, true
}
