package document

// CharMeta is the per-character metadata of a block: its inline styles and
// the entity annotating it (0 for none).
type CharMeta struct {
	Style  StyleSet
	Entity EntityKey
}

// Block is one structural unit of content. Blocks are immutable; every
// modifier returns a new *Block.
type Block struct {
	key   BlockKey
	typ   BlockType
	depth int
	text  []rune
	chars []CharMeta
}

// NewBlock builds a block. chars may be nil (plain text) or must have one
// entry per rune of text; extra entries are dropped and missing ones are
// unstyled.
func NewBlock(key BlockKey, typ BlockType, text string, chars []CharMeta) *Block {
	if !typ.Valid() {
		typ = BlockUnstyled
	}
	runes := []rune(text)
	meta := make([]CharMeta, len(runes))
	copy(meta, chars)
	return &Block{key: key, typ: typ, text: runes, chars: meta}
}

func (b *Block) Key() BlockKey { return b.key }

func (b *Block) Type() BlockType { return b.typ }

func (b *Block) Depth() int { return b.depth }

func (b *Block) Text() string { return string(b.text) }

// Runes returns a copy of the block text.
func (b *Block) Runes() []rune { return append([]rune(nil), b.text...) }

// Len returns the block length in runes.
func (b *Block) Len() int { return len(b.text) }

// Chars returns a copy of the per-character metadata.
func (b *Block) Chars() []CharMeta { return append([]CharMeta(nil), b.chars...) }

// CharAt returns the metadata at offset, or the zero value out of range.
func (b *Block) CharAt(offset int) CharMeta {
	if offset < 0 || offset >= len(b.chars) {
		return CharMeta{}
	}
	return b.chars[offset]
}

// StyleAt returns the inline styles of the character at offset.
func (b *Block) StyleAt(offset int) StyleSet { return b.CharAt(offset).Style }

// EntityAt returns the entity annotating the character at offset, or 0.
func (b *Block) EntityAt(offset int) EntityKey { return b.CharAt(offset).Entity }

// FindEntityRanges calls fn for every maximal run of characters sharing the
// same non-zero entity key.
func (b *Block) FindEntityRanges(fn func(start, end int, key EntityKey)) {
	b.findRanges(func(c CharMeta) uint64 { return uint64(c.Entity) }, func(start, end int, v uint64) {
		if v != 0 {
			fn(start, end, EntityKey(v))
		}
	})
}

// FindStyleRanges calls fn for every maximal run of characters that carry
// style.
func (b *Block) FindStyleRanges(style InlineStyle, fn func(start, end int)) {
	b.findRanges(func(c CharMeta) uint64 {
		if c.Style.Has(style) {
			return 1
		}
		return 0
	}, func(start, end int, v uint64) {
		if v != 0 {
			fn(start, end)
		}
	})
}

func (b *Block) findRanges(value func(CharMeta) uint64, fn func(start, end int, v uint64)) {
	if len(b.chars) == 0 {
		return
	}
	start := 0
	cur := value(b.chars[0])
	for i := 1; i <= len(b.chars); i++ {
		if i < len(b.chars) {
			if v := value(b.chars[i]); v == cur {
				continue
			}
		}
		fn(start, i, cur)
		if i < len(b.chars) {
			start = i
			cur = value(b.chars[i])
		}
	}
}

// Equal reports whether b and o have the same key, type, depth, text and
// character metadata.
func (b *Block) Equal(o *Block) bool {
	if b == o {
		return true
	}
	if b == nil || o == nil {
		return false
	}
	if b.key != o.key || b.typ != o.typ || b.depth != o.depth || len(b.text) != len(o.text) {
		return false
	}
	for i := range b.text {
		if b.text[i] != o.text[i] || b.chars[i] != o.chars[i] {
			return false
		}
	}
	return true
}

func (b *Block) withType(t BlockType) *Block {
	if b.typ == t {
		return b
	}
	nb := *b
	nb.typ = t
	if !t.IsList() {
		nb.depth = 0
	}
	return &nb
}

// WithDepth returns b nested at depth d. Negative depths are clamped to 0.
func (b *Block) WithDepth(d int) *Block { return b.withDepth(max(d, 0)) }

func (b *Block) withDepth(d int) *Block {
	if b.depth == d {
		return b
	}
	nb := *b
	nb.depth = d
	return &nb
}

// mapChars returns a block with fn applied to every character in
// [start, end). The receiver is returned when nothing changes.
func (b *Block) mapChars(start, end int, fn func(CharMeta) CharMeta) *Block {
	start, end = clampSpan(start, end, len(b.chars))
	var chars []CharMeta
	for i := start; i < end; i++ {
		next := fn(b.chars[i])
		if next == b.chars[i] {
			continue
		}
		if chars == nil {
			chars = append([]CharMeta(nil), b.chars...)
		}
		chars[i] = next
	}
	if chars == nil {
		return b
	}
	nb := *b
	nb.chars = chars
	return &nb
}

// replace returns a block with [start, end) replaced by text/chars.
func (b *Block) replace(start, end int, text []rune, chars []CharMeta) *Block {
	start, end = clampSpan(start, end, len(b.text))
	nt := make([]rune, 0, len(b.text)-(end-start)+len(text))
	nt = append(nt, b.text[:start]...)
	nt = append(nt, text...)
	nt = append(nt, b.text[end:]...)

	nc := make([]CharMeta, 0, len(nt))
	nc = append(nc, b.chars[:start]...)
	nc = append(nc, chars...)
	nc = append(nc, b.chars[end:]...)

	nb := *b
	nb.text = nt
	nb.chars = nc
	return &nb
}

// split returns the halves of b around offset. The second half gets key.
func (b *Block) split(offset int, key BlockKey) (*Block, *Block) {
	offset, _ = clampSpan(offset, offset, len(b.text))
	above := *b
	above.text = append([]rune(nil), b.text[:offset]...)
	above.chars = append([]CharMeta(nil), b.chars[:offset]...)

	below := *b
	below.key = key
	below.text = append([]rune(nil), b.text[offset:]...)
	below.chars = append([]CharMeta(nil), b.chars[offset:]...)
	return &above, &below
}

func clampSpan(start, end, n int) (int, int) {
	start = clampInt(start, 0, n)
	end = clampInt(end, start, n)
	return start, end
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
