package editor

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/quill/document"
	graphemeutil "github.com/iw2rmb/quill/internal/grapheme"
)

// cell is one grapheme cluster of a block as laid out on screen.
type cell struct {
	start, end int // rune offsets in the block
	text       string
	width      int
}

// visualRow is one screen row of a block.
type visualRow struct {
	block int
	key   document.BlockKey
	typ   document.BlockType

	first, last bool
	start, end  int // rune offsets [start, end)

	cells []cell

	marker string // rendered before the text; blanks on continuation rows
	indent int    // marker width in cells
	avail  int    // cells available for text; <= 0 means unbounded
}

func (r visualRow) textWidth() int {
	w := 0
	for _, c := range r.cells {
		w += c.width
	}
	return w
}

type layout struct {
	rows     []visualRow
	firstRow map[document.BlockKey]int
}

func buildLayout(s document.State, width int, mode WrapMode, tabWidth int) layout {
	blocks := s.Content().Blocks()
	l := layout{
		rows:     make([]visualRow, 0, len(blocks)),
		firstRow: make(map[document.BlockKey]int, len(blocks)),
	}
	markers := blockMarkers(blocks)
	for i, b := range blocks {
		marker := markers[i]
		indent := runewidth.StringWidth(marker)
		avail := 0
		if width > 0 {
			avail = max(width-indent, 1)
		}

		cells := blockCells(b, tabWidth)
		l.firstRow[b.Key()] = len(l.rows)
		segs := wrapCells(cells, mode, avail)
		for si, seg := range segs {
			row := visualRow{
				block:  i,
				key:    b.Key(),
				typ:    b.Type(),
				first:  si == 0,
				last:   si == len(segs)-1,
				cells:  cells[seg[0]:seg[1]],
				marker: marker,
				indent: indent,
				avail:  avail,
			}
			if si > 0 {
				row.marker = strings.Repeat(" ", indent)
			}
			if seg[0] < seg[1] {
				row.start, row.end = cells[seg[0]].start, cells[seg[1]-1].end
			} else {
				row.start, row.end = b.Len(), b.Len()
			}
			l.rows = append(l.rows, row)
		}
	}
	return l
}

func blockCells(b *document.Block, tabWidth int) []cell {
	clusters := graphemeutil.Clusters(b.Runes())
	out := make([]cell, 0, len(clusters))
	for _, c := range clusters {
		out = append(out, cell{start: c.Start, end: c.End, text: c.Text, width: graphemeCellWidth(c.Text, tabWidth)})
	}
	return out
}

func graphemeCellWidth(text string, tabWidth int) int {
	if text == "\t" {
		return tabWidth
	}
	w := runewidth.StringWidth(text)
	if w <= 0 {
		w = max(graphemeutil.Width(text), 0)
	}
	return w
}

// blockMarkers returns the prefix drawn before the first row of each block:
// header hashes, list bullets or numbers, quote bars.
func blockMarkers(blocks []*document.Block) []string {
	out := make([]string, len(blocks))
	var ordinals []int
	for i, b := range blocks {
		t := b.Type()
		depth := b.Depth()
		switch {
		case t == document.BlockOrderedList:
			for len(ordinals) <= depth {
				ordinals = append(ordinals, 0)
			}
			ordinals = ordinals[:depth+1]
			ordinals[depth]++
			out[i] = strings.Repeat("  ", depth) + strconv.Itoa(ordinals[depth]) + ". "
		case t == document.BlockUnorderedList:
			if len(ordinals) > depth {
				ordinals = ordinals[:depth]
			}
			out[i] = strings.Repeat("  ", depth) + bullets[depth%len(bullets)] + " "
		case t.HeaderLevel() > 0:
			ordinals = nil
			out[i] = strings.Repeat("#", t.HeaderLevel()) + " "
		case t == document.BlockQuote:
			ordinals = nil
			out[i] = "│ "
		case t == document.BlockCode:
			ordinals = nil
			out[i] = "  "
		default:
			ordinals = nil
		}
	}
	return out
}

var bullets = []string{"•", "◦", "▪"}

// rowForPoint returns the row index holding p. An offset on a wrap boundary
// belongs to the row it starts.
func (l layout) rowForPoint(p document.Point) (int, bool) {
	first, ok := l.firstRow[p.Key]
	if !ok {
		return 0, false
	}
	for i := first; i < len(l.rows); i++ {
		r := l.rows[i]
		if r.key != p.Key {
			break
		}
		if r.last || p.Offset < r.end {
			return i, true
		}
	}
	return first, true
}

// cellX returns the x cell of offset within row r, counting the marker.
func (r visualRow) cellX(offset int) int {
	x := r.indent
	for _, c := range r.cells {
		if c.start >= offset {
			break
		}
		x += c.width
	}
	return x
}

// offsetAt maps an x cell within row r to a rune offset.
func (r visualRow) offsetAt(x int) int {
	x -= r.indent
	if x <= 0 {
		return r.start
	}
	for _, c := range r.cells {
		if x < c.width {
			return c.start
		}
		x -= c.width
	}
	if !r.last && len(r.cells) > 0 {
		return r.cells[len(r.cells)-1].start
	}
	return r.end
}
