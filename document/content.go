package document

import (
	"maps"
	"slices"
	"strings"
)

// Content is the document text: an ordered list of blocks plus the entity
// registry. Content is a value; modifiers return new Content sharing every
// block they did not touch.
type Content struct {
	blocks     []*Block
	index      map[BlockKey]int
	entities   map[EntityKey]Entity
	lastEntity EntityKey

	selBefore Selection
	selAfter  Selection

	keys KeyGen
}

// NewContent builds content from blocks. An empty list yields a single empty
// unstyled block. Duplicate or empty block keys are replaced with fresh ones.
// keys may be nil, in which case RandomKeys is used.
func NewContent(blocks []*Block, keys KeyGen) Content {
	if keys == nil {
		keys = RandomKeys()
	}
	c := Content{keys: keys}
	c = c.WithBlocks(blocks)
	first := c.blocks[0]
	c.selBefore = Caret(Point{Key: first.key})
	c.selAfter = c.selBefore
	return c
}

// FromText builds unstyled content with one block per line of text.
func FromText(text string, keys KeyGen) Content {
	if keys == nil {
		keys = RandomKeys()
	}
	lines := strings.Split(text, "\n")
	blocks := make([]*Block, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, NewBlock(keys(), BlockUnstyled, line, nil))
	}
	return NewContent(blocks, keys)
}

// WithBlocks replaces the block list. Entity references that are not in the
// registry are dropped.
func (c Content) WithBlocks(blocks []*Block) Content {
	if len(blocks) == 0 {
		blocks = []*Block{NewBlock(c.newKeyAvoiding(nil), BlockUnstyled, "", nil)}
	}
	seen := make(map[BlockKey]bool, len(blocks))
	out := make([]*Block, 0, len(blocks))
	for _, b := range blocks {
		if b == nil {
			continue
		}
		if b.key == "" || seen[b.key] {
			nb := *b
			nb.key = c.newKeyAvoiding(seen)
			b = &nb
		}
		b = b.mapChars(0, b.Len(), func(m CharMeta) CharMeta {
			if m.Entity != 0 {
				if _, ok := c.entities[m.Entity]; !ok {
					m.Entity = 0
				}
			}
			return m
		})
		seen[b.key] = true
		out = append(out, b)
	}
	if len(out) == 0 {
		out = append(out, NewBlock(c.newKeyAvoiding(seen), BlockUnstyled, "", nil))
	}
	c.blocks = out
	c.index = buildIndex(out)
	c.selBefore = c.Normalize(c.selBefore)
	c.selAfter = c.Normalize(c.selAfter)
	return c
}

func buildIndex(blocks []*Block) map[BlockKey]int {
	idx := make(map[BlockKey]int, len(blocks))
	for i, b := range blocks {
		idx[b.key] = i
	}
	return idx
}

// Blocks returns the ordered blocks. The slice is a copy; the blocks are
// shared and immutable.
func (c Content) Blocks() []*Block { return slices.Clone(c.blocks) }

func (c Content) BlockCount() int { return len(c.blocks) }

// BlockForKey returns the block with key.
func (c Content) BlockForKey(key BlockKey) (*Block, bool) {
	i, ok := c.index[key]
	if !ok {
		return nil, false
	}
	return c.blocks[i], true
}

// BlockBefore returns the block preceding key.
func (c Content) BlockBefore(key BlockKey) (*Block, bool) {
	i, ok := c.index[key]
	if !ok || i == 0 {
		return nil, false
	}
	return c.blocks[i-1], true
}

// BlockAfter returns the block following key.
func (c Content) BlockAfter(key BlockKey) (*Block, bool) {
	i, ok := c.index[key]
	if !ok || i+1 >= len(c.blocks) {
		return nil, false
	}
	return c.blocks[i+1], true
}

func (c Content) FirstBlock() *Block { return c.blocks[0] }

func (c Content) LastBlock() *Block { return c.blocks[len(c.blocks)-1] }

// IndexOf returns the position of block key in document order.
func (c Content) IndexOf(key BlockKey) (int, bool) {
	i, ok := c.index[key]
	return i, ok
}

// Entity looks up an entity in the registry.
func (c Content) Entity(key EntityKey) (Entity, bool) {
	e, ok := c.entities[key]
	return e, ok
}

// EntityKeys returns the registered entity keys in ascending order.
func (c Content) EntityKeys() []EntityKey {
	return slices.Sorted(maps.Keys(c.entities))
}

// CreateEntity registers a new entity and returns the updated content. The
// new key is available from LastCreatedEntityKey. Keys are never reused.
func (c Content) CreateEntity(t EntityType, m Mutability, data map[string]string) Content {
	if !m.Valid() {
		m = Mutable
	}
	next := c.lastEntity + 1
	entities := make(map[EntityKey]Entity, len(c.entities)+1)
	maps.Copy(entities, c.entities)
	entities[next] = NewEntity(t, m, data)
	c.entities = entities
	c.lastEntity = next
	return c
}

// LastCreatedEntityKey returns the key of the most recently created entity.
func (c Content) LastCreatedEntityKey() EntityKey { return c.lastEntity }

// SelectionBefore is the selection in effect before the change that produced
// this content.
func (c Content) SelectionBefore() Selection { return c.selBefore }

// SelectionAfter is the selection the change that produced this content left
// behind.
func (c Content) SelectionAfter() Selection { return c.selAfter }

// PlainText joins all block texts with '\n'.
func (c Content) PlainText() string {
	var sb strings.Builder
	for i, b := range c.blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(b.text))
	}
	return sb.String()
}

// HasText reports whether any block contains text.
func (c Content) HasText() bool {
	return len(c.blocks) > 1 || c.blocks[0].Len() > 0
}

// Equal reports whether c and o hold the same blocks and entities. Recorded
// selections are not compared.
func (c Content) Equal(o Content) bool {
	if len(c.blocks) != len(o.blocks) || len(c.entities) != len(o.entities) {
		return false
	}
	for i := range c.blocks {
		if !c.blocks[i].Equal(o.blocks[i]) {
			return false
		}
	}
	for k, e := range c.entities {
		oe, ok := o.entities[k]
		if !ok || !e.equal(oe) {
			return false
		}
	}
	return true
}

// NewSelection builds a selection from anchor to focus, clamped into the
// content, with Backward set from document order.
func (c Content) NewSelection(anchor, focus Point) Selection {
	return c.Normalize(Selection{Anchor: anchor, Focus: focus})
}

// Normalize clamps both selection ends into the content and recomputes the
// backward flag. Unknown block keys map to the first block.
func (c Content) Normalize(s Selection) Selection {
	s.Anchor = c.clampPoint(s.Anchor)
	s.Focus = c.clampPoint(s.Focus)
	s.Backward = c.comparePoints(s.Focus, s.Anchor) < 0
	return s
}

func (c Content) clampPoint(p Point) Point {
	b, ok := c.BlockForKey(p.Key)
	if !ok {
		b = c.blocks[0]
	}
	return Point{Key: b.key, Offset: clampInt(p.Offset, 0, b.Len())}
}

func (c Content) comparePoints(a, b Point) int {
	ai, bi := c.index[a.Key], c.index[b.Key]
	switch {
	case ai < bi:
		return -1
	case ai > bi:
		return 1
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	default:
		return 0
	}
}

func (c Content) withSelections(before, after Selection) Content {
	c.selBefore = c.Normalize(before)
	c.selAfter = c.Normalize(after)
	return c
}

// withEntityRegistry adopts the registry of o. The registry is append-only,
// so a newer registry is always a superset.
func (c Content) withEntityRegistry(o Content) Content {
	if o.lastEntity >= c.lastEntity {
		c.entities = o.entities
		c.lastEntity = o.lastEntity
	}
	return c
}

// replaceBlock swaps the block at i. Block order is unchanged, so the index
// is shared with the receiver.
func (c Content) replaceBlock(i int, b *Block) Content {
	if c.blocks[i] == b {
		return c
	}
	blocks := slices.Clone(c.blocks)
	blocks[i] = b
	c.blocks = blocks
	return c
}

// spliceBlocks replaces blocks [start, end) with repl and rebuilds the index.
func (c Content) spliceBlocks(start, end int, repl ...*Block) Content {
	blocks := make([]*Block, 0, len(c.blocks)-(end-start)+len(repl))
	blocks = append(blocks, c.blocks[:start]...)
	blocks = append(blocks, repl...)
	blocks = append(blocks, c.blocks[end:]...)
	c.blocks = blocks
	c.index = buildIndex(blocks)
	return c
}

// mapRange applies fn to every block touched by sel, with the offsets of the
// selected span inside that block.
func (c Content) mapRange(sel Selection, fn func(b *Block, start, end int) *Block) Content {
	start, end := sel.Start(), sel.End()
	si, ok := c.index[start.Key]
	if !ok {
		return c
	}
	ei, ok := c.index[end.Key]
	if !ok {
		return c
	}
	var blocks []*Block
	for i := si; i <= ei; i++ {
		b := c.blocks[i]
		from, to := 0, b.Len()
		if i == si {
			from = start.Offset
		}
		if i == ei {
			to = end.Offset
		}
		nb := fn(b, from, to)
		if nb == b {
			continue
		}
		if blocks == nil {
			blocks = slices.Clone(c.blocks)
		}
		blocks[i] = nb
	}
	if blocks != nil {
		c.blocks = blocks
	}
	return c
}

func (c Content) newKeyAvoiding(extra map[BlockKey]bool) BlockKey {
	keys := c.keys
	if keys == nil {
		keys = RandomKeys()
	}
	for {
		k := keys()
		if k == "" || extra[k] {
			continue
		}
		if _, taken := c.index[k]; taken {
			continue
		}
		return k
	}
}

func (c Content) newKey() BlockKey { return c.newKeyAvoiding(nil) }
