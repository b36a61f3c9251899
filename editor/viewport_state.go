package editor

import "github.com/iw2rmb/quill/document"

// ViewportState is a stable host-facing snapshot of editor camera state.
type ViewportState struct {
	// TopVisualRow is the visual row index rendered at viewport screen row 0.
	TopVisualRow int
	// VisibleRows is the number of content rows available for rendering.
	VisibleRows int
	// TotalRows is the number of visual rows of the whole document.
	TotalRows int
}

// ViewportState returns the current host-facing viewport state.
func (m Model) ViewportState() ViewportState {
	return ViewportState{
		TopVisualRow: max(m.viewport.YOffset, 0),
		VisibleRows:  m.visibleRowCount(),
		TotalRows:    len(m.layout.rows),
	}
}

// ScreenToDoc maps viewport-local screen coordinates to a document point.
func (m Model) ScreenToDoc(x, y int) document.Point {
	return (&m).screenToPoint(x, y)
}

// DocToScreen maps a document point to viewport-local screen coordinates.
//
// ok is false when the point is outside the visible viewport content.
func (m Model) DocToScreen(p document.Point) (x int, y int, ok bool) {
	return (&m).pointToScreen(p)
}

func (m Model) visibleRowCount() int {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h < 0 {
		return 0
	}
	return h
}
