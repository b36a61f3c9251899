// Package export converts document content into portable forms for
// inspection: a raw structural form close to the block/range layout of the
// document, and a nested AST form grouped by entity and style.
//
// Offsets in the raw form are rune offsets.
package export

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/iw2rmb/quill/document"
)

// ErrInvalidRaw is wrapped by every error FromRaw and DecodeRaw return.
var ErrInvalidRaw = errors.New("invalid raw document")

// Raw is the structural form of document content.
type Raw struct {
	Blocks    []RawBlock           `json:"blocks" yaml:"blocks"`
	EntityMap map[string]RawEntity `json:"entityMap" yaml:"entityMap"`
}

type RawBlock struct {
	Key               string           `json:"key" yaml:"key"`
	Text              string           `json:"text" yaml:"text"`
	Type              string           `json:"type" yaml:"type"`
	Depth             int              `json:"depth" yaml:"depth"`
	InlineStyleRanges []RawStyleRange  `json:"inlineStyleRanges" yaml:"inlineStyleRanges"`
	EntityRanges      []RawEntityRange `json:"entityRanges" yaml:"entityRanges"`
}

type RawStyleRange struct {
	Offset int    `json:"offset" yaml:"offset"`
	Length int    `json:"length" yaml:"length"`
	Style  string `json:"style" yaml:"style"`
}

// RawEntityRange references an entry of Raw.EntityMap by its numeric key.
type RawEntityRange struct {
	Offset int `json:"offset" yaml:"offset"`
	Length int `json:"length" yaml:"length"`
	Key    int `json:"key" yaml:"key"`
}

type RawEntity struct {
	Type       string            `json:"type" yaml:"type"`
	Mutability string            `json:"mutability" yaml:"mutability"`
	Data       map[string]string `json:"data" yaml:"data"`
}

// ToRaw converts content to its raw form. Only entities referenced by some
// block are exported; they are renumbered from 0 in order of first
// appearance.
func ToRaw(c document.Content) Raw {
	raw := Raw{EntityMap: map[string]RawEntity{}}
	renumber := map[document.EntityKey]int{}

	for _, b := range c.Blocks() {
		rb := RawBlock{
			Key:               string(b.Key()),
			Text:              b.Text(),
			Type:              string(b.Type()),
			Depth:             b.Depth(),
			InlineStyleRanges: []RawStyleRange{},
			EntityRanges:      []RawEntityRange{},
		}
		for _, style := range document.InlineStyles() {
			b.FindStyleRanges(style, func(start, end int) {
				rb.InlineStyleRanges = append(rb.InlineStyleRanges, RawStyleRange{
					Offset: start,
					Length: end - start,
					Style:  style.String(),
				})
			})
		}
		b.FindEntityRanges(func(start, end int, key document.EntityKey) {
			n, ok := renumber[key]
			if !ok {
				e, found := c.Entity(key)
				if !found {
					return
				}
				n = len(renumber)
				renumber[key] = n
				raw.EntityMap[strconv.Itoa(n)] = RawEntity{
					Type:       string(e.Type),
					Mutability: string(e.Mutability),
					Data:       e.Data(),
				}
			}
			rb.EntityRanges = append(rb.EntityRanges, RawEntityRange{Offset: start, Length: end - start, Key: n})
		})
		raw.Blocks = append(raw.Blocks, rb)
	}
	return raw
}

// FromRaw rebuilds content from its raw form. Block keys are kept; entities
// are registered in ascending raw key order. keys generates keys for blocks
// whose raw key is empty and may be nil.
func FromRaw(raw Raw, keys document.KeyGen) (document.Content, error) {
	c := document.NewContent(nil, keys)

	rawKeys := make([]int, 0, len(raw.EntityMap))
	for k := range raw.EntityMap {
		n, err := strconv.Atoi(k)
		if err != nil || n < 0 {
			return document.Content{}, fmt.Errorf("%w: entity key %q is not a non-negative integer", ErrInvalidRaw, k)
		}
		rawKeys = append(rawKeys, n)
	}
	slices.Sort(rawKeys)

	entities := make(map[int]document.EntityKey, len(rawKeys))
	for _, n := range rawKeys {
		re := raw.EntityMap[strconv.Itoa(n)]
		m := document.Mutability(re.Mutability)
		if !m.Valid() {
			return document.Content{}, fmt.Errorf("%w: entity %d: unknown mutability %q", ErrInvalidRaw, n, re.Mutability)
		}
		if re.Type == "" {
			return document.Content{}, fmt.Errorf("%w: entity %d: empty type", ErrInvalidRaw, n)
		}
		c = c.CreateEntity(document.EntityType(re.Type), m, re.Data)
		entities[n] = c.LastCreatedEntityKey()
	}

	seen := map[string]bool{}
	blocks := make([]*document.Block, 0, len(raw.Blocks))
	for i, rb := range raw.Blocks {
		b, err := blockFromRaw(rb, entities)
		if err != nil {
			return document.Content{}, fmt.Errorf("%w: block %d: %v", ErrInvalidRaw, i, err)
		}
		if rb.Key != "" {
			if seen[rb.Key] {
				return document.Content{}, fmt.Errorf("%w: block %d: duplicate key %q", ErrInvalidRaw, i, rb.Key)
			}
			seen[rb.Key] = true
		}
		blocks = append(blocks, b)
	}
	return c.WithBlocks(blocks), nil
}

func blockFromRaw(rb RawBlock, entities map[int]document.EntityKey) (*document.Block, error) {
	typ := document.BlockType(rb.Type)
	if rb.Type == "" {
		typ = document.BlockUnstyled
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("unknown block type %q", rb.Type)
	}
	if rb.Depth < 0 {
		return nil, fmt.Errorf("negative depth %d", rb.Depth)
	}

	n := len([]rune(rb.Text))
	chars := make([]document.CharMeta, n)
	inBounds := func(offset, length int) bool {
		return offset >= 0 && length >= 0 && offset+length <= n
	}
	for _, sr := range rb.InlineStyleRanges {
		style, ok := document.ParseInlineStyle(sr.Style)
		if !ok {
			return nil, fmt.Errorf("unknown inline style %q", sr.Style)
		}
		if !inBounds(sr.Offset, sr.Length) {
			return nil, fmt.Errorf("style range %d+%d out of bounds", sr.Offset, sr.Length)
		}
		for i := sr.Offset; i < sr.Offset+sr.Length; i++ {
			chars[i].Style = chars[i].Style.With(style)
		}
	}
	for _, er := range rb.EntityRanges {
		key, ok := entities[er.Key]
		if !ok {
			return nil, fmt.Errorf("entity range references unknown entity %d", er.Key)
		}
		if !inBounds(er.Offset, er.Length) {
			return nil, fmt.Errorf("entity range %d+%d out of bounds", er.Offset, er.Length)
		}
		for i := er.Offset; i < er.Offset+er.Length; i++ {
			chars[i].Entity = key
		}
	}
	return document.NewBlock(document.BlockKey(rb.Key), typ, rb.Text, chars).WithDepth(rb.Depth), nil
}
