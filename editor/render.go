package editor

import (
	"strings"

	"github.com/iw2rmb/quill/document"
)

// blockPaint is the per-character paint data of one block, computed once
// per render.
type blockPaint struct {
	chars    []document.CharMeta
	link     []bool
	selFrom  int
	selTo    int
	selected bool
}

func (m *Model) renderContent() string {
	rows := m.layout.rows
	if len(rows) == 0 {
		return ""
	}
	c := m.state.Content()
	if m.cfg.Placeholder != "" && !c.HasText() {
		return m.renderPlaceholder(rows[0])
	}

	blocks := c.Blocks()
	paints := make(map[int]blockPaint, len(blocks))
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		p, ok := paints[r.block]
		if !ok {
			p = m.paintBlock(c, blocks[r.block], r.block)
			paints[r.block] = p
		}
		out = append(out, m.renderRow(r, p))
	}
	return strings.Join(out, "\n")
}

func (m *Model) paintBlock(c document.Content, b *document.Block, index int) blockPaint {
	p := blockPaint{chars: b.Chars(), link: make([]bool, b.Len())}
	if d := m.state.Decorator(); d != nil {
		decs := d.Decorate(c, b)
		for i, di := range document.DecorationsAt(b, decs) {
			if di >= 0 && decs[di].Kind == document.DecorationLink {
				p.link[i] = true
			}
		}
	}

	sel := m.state.Selection()
	if sel.IsCollapsed() {
		return p
	}
	start, end := sel.Start(), sel.End()
	si, _ := c.IndexOf(start.Key)
	ei, _ := c.IndexOf(end.Key)
	if index < si || index > ei {
		return p
	}
	p.selected = true
	p.selFrom, p.selTo = 0, b.Len()
	if index == si {
		p.selFrom = start.Offset
	}
	if index == ei {
		p.selTo = end.Offset
	}
	return p
}

func (m *Model) renderRow(r visualRow, p blockPaint) string {
	st := m.cfg.Style
	base := st.block(r.typ)

	var sb strings.Builder
	if r.marker != "" {
		markerStyle := st.Marker.Inherit(st.Text)
		if r.typ.HeaderLevel() > 0 {
			markerStyle = base
		}
		sb.WriteString(markerStyle.Render(r.marker))
	}

	focus := m.state.Selection().Focus
	cursorAt := -1
	if m.focused && focus.Key == r.key && focus.Offset >= r.start &&
		(focus.Offset < r.end || (r.last && focus.Offset == r.end)) {
		cursorAt = focus.Offset
	}
	eolCursor := cursorAt == r.end
	if eolCursor && r.avail > 0 && len(r.cells) > 0 && r.textWidth() >= r.avail {
		// No room for the placeholder cell: draw the cursor on the last
		// grapheme instead.
		cursorAt = r.cells[len(r.cells)-1].start
		eolCursor = false
	}

	var (
		run     strings.Builder
		runKind cellClass
		inRun   bool
	)
	flush := func() {
		if inRun {
			sb.WriteString(st.resolve(base, runKind).Render(run.String()))
			run.Reset()
			inRun = false
		}
	}
	for _, c := range r.cells {
		k := cellClass{
			cursor:   c.start == cursorAt,
			selected: p.selected && c.start >= p.selFrom && c.start < p.selTo,
		}
		if c.start < len(p.chars) {
			k.styles = p.chars[c.start].Style
			k.link = p.link[c.start]
		}
		if inRun && k != runKind {
			flush()
		}
		runKind, inRun = k, true
		if c.text == "\t" {
			run.WriteString(strings.Repeat(" ", c.width))
		} else {
			run.WriteString(c.text)
		}
	}
	flush()

	if eolCursor {
		sb.WriteString(st.Cursor.Render(" "))
	}
	return sb.String()
}

func (m *Model) renderPlaceholder(r visualRow) string {
	st := m.cfg.Style
	var sb strings.Builder
	if r.marker != "" {
		sb.WriteString(st.Marker.Inherit(st.Text).Render(r.marker))
	}
	if m.focused {
		sb.WriteString(st.Cursor.Render(" "))
	}
	sb.WriteString(st.Placeholder.Inherit(st.Text).Render(m.cfg.Placeholder))
	return sb.String()
}
