package document

// Decoration marks a span of a block for special rendering.
type Decoration struct {
	Start  int
	End    int
	Kind   string
	Entity EntityKey
}

// Decorator finds decorated spans in a block.
type Decorator interface {
	Decorate(c Content, b *Block) []Decoration
}

// DecoratorFunc adapts a function to Decorator.
type DecoratorFunc func(c Content, b *Block) []Decoration

func (f DecoratorFunc) Decorate(c Content, b *Block) []Decoration { return f(c, b) }

// DecorationLink is the Kind reported by LinkDecorator.
const DecorationLink = "link"

// LinkDecorator decorates every run of characters annotated with a LINK
// entity.
var LinkDecorator Decorator = DecoratorFunc(func(c Content, b *Block) []Decoration {
	var out []Decoration
	b.FindEntityRanges(func(start, end int, key EntityKey) {
		if e, ok := c.Entity(key); ok && e.Type == EntityLink {
			out = append(out, Decoration{Start: start, End: end, Kind: DecorationLink, Entity: key})
		}
	})
	return out
})

// CompositeDecorator runs decorators in order. A span already claimed by an
// earlier decorator is never decorated again.
type CompositeDecorator []Decorator

func (cd CompositeDecorator) Decorate(c Content, b *Block) []Decoration {
	taken := make([]bool, b.Len())
	var out []Decoration
	for _, d := range cd {
		if d == nil {
			continue
		}
	next:
		for _, dec := range d.Decorate(c, b) {
			start, end := clampSpan(dec.Start, dec.End, b.Len())
			if start == end {
				continue
			}
			for i := start; i < end; i++ {
				if taken[i] {
					continue next
				}
			}
			for i := start; i < end; i++ {
				taken[i] = true
			}
			dec.Start, dec.End = start, end
			out = append(out, dec)
		}
	}
	return out
}

// DecorationsAt returns, for each character of b, the index into decs of the
// decoration covering it, or -1.
func DecorationsAt(b *Block, decs []Decoration) []int {
	out := make([]int, b.Len())
	for i := range out {
		out[i] = -1
	}
	for di, d := range decs {
		start, end := clampSpan(d.Start, d.End, b.Len())
		for i := start; i < end; i++ {
			if out[i] == -1 {
				out[i] = di
			}
		}
	}
	return out
}
