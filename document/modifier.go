package document

import "github.com/iw2rmb/quill/internal/grapheme"

// Content-level transforms. Each returns new content whose SelectionAfter is
// where the caller should put the selection.

func applyInlineStyle(c Content, sel Selection, style InlineStyle, add bool) Content {
	out := c.mapRange(sel, func(b *Block, start, end int) *Block {
		return b.mapChars(start, end, func(m CharMeta) CharMeta {
			if add {
				m.Style = m.Style.With(style)
			} else {
				m.Style = m.Style.Without(style)
			}
			return m
		})
	})
	return out.withSelections(sel, sel)
}

func setBlockType(c Content, sel Selection, t BlockType) Content {
	out := c.mapRange(sel, func(b *Block, _, _ int) *Block { return b.withType(t) })
	return out.withSelections(sel, sel)
}

func adjustBlockDepth(c Content, sel Selection, delta, maxDepth int) Content {
	out := c.mapRange(sel, func(b *Block, _, _ int) *Block {
		if !b.Type().IsList() {
			return b
		}
		return b.withDepth(clampInt(b.Depth()+delta, 0, maxDepth))
	})
	return out.withSelections(sel, sel)
}

func applyEntity(c Content, sel Selection, key EntityKey) Content {
	out := c.mapRange(sel, func(b *Block, start, end int) *Block {
		return b.mapChars(start, end, func(m CharMeta) CharMeta {
			m.Entity = key
			return m
		})
	})
	return out.withSelections(sel, sel)
}

// removeEntitiesAtEdges strips non-mutable entities that an edit at either
// selection edge would cut through.
func removeEntitiesAtEdges(c Content, sel Selection) Content {
	for _, p := range []Point{sel.Start(), sel.End()} {
		i, ok := c.index[p.Key]
		if !ok {
			continue
		}
		b := c.blocks[i]
		if p.Offset <= 0 || p.Offset >= b.Len() {
			continue
		}
		key := b.EntityAt(p.Offset)
		if key == 0 || key != b.EntityAt(p.Offset-1) {
			continue
		}
		if e, ok := c.entities[key]; !ok || e.Mutability == Mutable {
			continue
		}
		start, end := entitySpan(b, key, p.Offset)
		c = c.replaceBlock(i, b.mapChars(start, end, func(m CharMeta) CharMeta {
			m.Entity = 0
			return m
		}))
	}
	return c
}

// entitySpan returns the contiguous run of key around offset.
func entitySpan(b *Block, key EntityKey, offset int) (int, int) {
	start, end := offset, offset
	for start > 0 && b.EntityAt(start-1) == key {
		start--
	}
	for end < b.Len() && b.EntityAt(end) == key {
		end++
	}
	return start, end
}

// expandRemoval grows a removal so it never leaves part of an immutable
// entity behind, and removes whole words of segmented entities.
func expandRemoval(c Content, sel Selection) Selection {
	start, end := sel.Start(), sel.End()
	if sb, ok := c.BlockForKey(start.Key); ok {
		start.Offset = expandEdge(c, sb, start.Offset, true)
	}
	if eb, ok := c.BlockForKey(end.Key); ok {
		end.Offset = expandEdge(c, eb, end.Offset, false)
	}
	return Range(start, end)
}

func expandEdge(c Content, b *Block, offset int, isStart bool) int {
	probe := offset
	if !isStart {
		probe = offset - 1
	}
	key := b.EntityAt(probe)
	if key == 0 || probe < 0 {
		return offset
	}
	e, ok := c.entities[key]
	if !ok {
		return offset
	}
	from, to := entitySpan(b, key, probe)
	switch e.Mutability {
	case Immutable:
		if isStart {
			return from
		}
		return to
	case Segmented:
		runes := b.text[from:to]
		rel := probe - from
		if isStart {
			if rel == 0 {
				return from
			}
			return from + grapheme.PrevWord(runes, rel+1)
		}
		return from + grapheme.NextWord(runes, rel)
	default:
		return offset
	}
}

// removeRange deletes the selected text, joining the edge blocks. The result
// has a caret at the selection start.
func removeRange(c Content, sel Selection) Content {
	start, end := sel.Start(), sel.End()
	si, ok := c.index[start.Key]
	if !ok {
		return c
	}
	ei, ok := c.index[end.Key]
	if !ok {
		return c
	}
	caret := Caret(start)
	if si == ei {
		if start.Offset == end.Offset {
			return c.withSelections(sel, caret)
		}
		b := c.blocks[si].replace(start.Offset, end.Offset, nil, nil)
		return c.replaceBlock(si, b).withSelections(sel, caret)
	}
	first, last := c.blocks[si], c.blocks[ei]
	tail := last.text[end.Offset:]
	tailChars := last.chars[end.Offset:]
	merged := first.replace(start.Offset, first.Len(), tail, tailChars)
	return c.spliceBlocks(si, ei+1, merged).withSelections(sel, caret)
}

// insertText inserts text at the collapsed point p with uniform metadata.
func insertText(c Content, p Point, text []rune, meta CharMeta) Content {
	i, ok := c.index[p.Key]
	if !ok {
		return c
	}
	chars := make([]CharMeta, len(text))
	for j := range chars {
		chars[j] = meta
	}
	b := c.blocks[i].replace(p.Offset, p.Offset, text, chars)
	after := Caret(Point{Key: p.Key, Offset: p.Offset + len(text)})
	return c.replaceBlock(i, b).withSelections(Caret(p), after)
}

// splitAt splits the block holding p. The new block below gets a fresh key
// and keeps the type of the split block.
func splitAt(c Content, p Point) Content {
	i, ok := c.index[p.Key]
	if !ok {
		return c
	}
	above, below := c.blocks[i].split(p.Offset, c.newKey())
	out := c.spliceBlocks(i, i+1, above, below)
	return out.withSelections(Caret(p), Caret(Point{Key: below.key}))
}
