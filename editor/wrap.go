package editor

import graphemeutil "github.com/iw2rmb/quill/internal/grapheme"

// wrapCells splits cells into rows of at most width cells and returns the
// [start, end) cell index range of each row. A block always has at least
// one row.
func wrapCells(cells []cell, mode WrapMode, width int) [][2]int {
	if width <= 0 || len(cells) == 0 {
		return [][2]int{{0, len(cells)}}
	}

	segments := make([][2]int, 0, 1)
	for start := 0; start < len(cells); {
		used := 0
		overflow := start
		for overflow < len(cells) {
			w := max(cells[overflow].width, 1)
			if used > 0 && used+w > width {
				break
			}
			used += w
			overflow++
		}

		end := overflow
		if mode == WrapWord && overflow < len(cells) {
			if br, ok := findWordWrapBreak(cells, start, overflow); ok {
				end = br
			}
		}
		if end <= start {
			end = min(start+1, len(cells))
		}
		segments = append(segments, [2]int{start, end})
		start = end
	}
	return segments
}

// findWordWrapBreak returns the index after the last whitespace run in
// [start, overflow).
func findWordWrapBreak(cells []cell, start, overflow int) (int, bool) {
	lastBreak := -1
	for i := start; i < overflow; {
		if !graphemeutil.IsSpace(cells[i].text) {
			i++
			continue
		}
		j := i + 1
		for j < overflow && graphemeutil.IsSpace(cells[j].text) {
			j++
		}
		lastBreak = j
		i = j
	}
	if lastBreak <= start {
		return 0, false
	}
	return lastBreak, true
}
