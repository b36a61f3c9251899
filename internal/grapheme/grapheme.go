package grapheme

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Cluster is one grapheme cluster of a rune slice: runes [Start, End) and the
// number of terminal cells it occupies.
type Cluster struct {
	Start int
	End   int
	Text  string
	Width int
}

// Clusters segments runes into grapheme clusters with rune offsets.
func Clusters(runes []rune) []Cluster {
	if len(runes) == 0 {
		return nil
	}
	g := uniseg.NewGraphemes(string(runes))
	out := make([]Cluster, 0, len(runes))
	off := 0
	for g.Next() {
		n := len(g.Runes())
		out = append(out, Cluster{
			Start: off,
			End:   off + n,
			Text:  g.Str(),
			Width: g.Width(),
		})
		off += n
	}
	return out
}

// PrevBoundary returns the rune offset of the grapheme boundary strictly
// before off, or 0.
func PrevBoundary(runes []rune, off int) int {
	if off <= 0 {
		return 0
	}
	if off > len(runes) {
		off = len(runes)
	}
	prev := 0
	for _, c := range Clusters(runes) {
		if c.End >= off {
			return c.Start
		}
		prev = c.End
	}
	return prev
}

// NextBoundary returns the rune offset of the grapheme boundary strictly
// after off, or len(runes).
func NextBoundary(runes []rune, off int) int {
	if off < 0 {
		off = 0
	}
	if off >= len(runes) {
		return len(runes)
	}
	for _, c := range Clusters(runes) {
		if c.End > off {
			return c.End
		}
	}
	return len(runes)
}

// Width returns the terminal cell width of s.
func Width(s string) int {
	return uniseg.StringWidth(s)
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// PrevWord returns the offset of the start of the word before off. Leading
// whitespace is skipped first.
func PrevWord(runes []rune, off int) int {
	cs := Clusters(runes)
	i := len(cs)
	for i > 0 && cs[i-1].End > off {
		i--
	}
	for i > 0 && IsSpace(cs[i-1].Text) {
		i--
	}
	for i > 0 && !IsSpace(cs[i-1].Text) {
		i--
	}
	if i == 0 {
		return 0
	}
	return cs[i-1].End
}

// NextWord returns the offset of the end of the word after off. Leading
// whitespace is skipped first.
func NextWord(runes []rune, off int) int {
	cs := Clusters(runes)
	i := 0
	for i < len(cs) && cs[i].Start < off {
		i++
	}
	for i < len(cs) && IsSpace(cs[i].Text) {
		i++
	}
	for i < len(cs) && !IsSpace(cs[i].Text) {
		i++
	}
	if i >= len(cs) {
		return len(runes)
	}
	return cs[i].Start
}
