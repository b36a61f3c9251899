package editor

// WrapMode selects where long blocks break into visual rows. Blocks always
// wrap; there is no horizontal scrolling.
type WrapMode int

const (
	// WrapWord breaks after whitespace, falling back to grapheme breaks for
	// words wider than the row.
	WrapWord WrapMode = iota
	// WrapGrapheme breaks at the last grapheme that fits.
	WrapGrapheme
)

// ScrollPolicy decides whether the mouse wheel may move the viewport on its
// own or only caret motion scrolls.
type ScrollPolicy int

const (
	ScrollAllowManual ScrollPolicy = iota
	ScrollFollowCursorOnly
)
