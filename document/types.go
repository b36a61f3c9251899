package document

import "strings"

// BlockKey identifies a block. Keys are unique within a Content.
type BlockKey string

// EntityKey identifies an entity in the registry. Zero means "no entity".
type EntityKey uint64

// BlockType is the structural type of a block.
type BlockType string

const (
	BlockUnstyled      BlockType = "unstyled"
	BlockHeaderOne     BlockType = "header-one"
	BlockHeaderTwo     BlockType = "header-two"
	BlockHeaderThree   BlockType = "header-three"
	BlockHeaderFour    BlockType = "header-four"
	BlockHeaderFive    BlockType = "header-five"
	BlockHeaderSix     BlockType = "header-six"
	BlockUnorderedList BlockType = "unordered-list-item"
	BlockOrderedList   BlockType = "ordered-list-item"
	BlockQuote         BlockType = "blockquote"
	BlockCode          BlockType = "code-block"
)

// Valid reports whether t is a known block type.
func (t BlockType) Valid() bool {
	switch t {
	case BlockUnstyled, BlockHeaderOne, BlockHeaderTwo, BlockHeaderThree,
		BlockHeaderFour, BlockHeaderFive, BlockHeaderSix,
		BlockUnorderedList, BlockOrderedList, BlockQuote, BlockCode:
		return true
	default:
		return false
	}
}

// IsList reports whether t is a list item type.
func (t BlockType) IsList() bool {
	return t == BlockUnorderedList || t == BlockOrderedList
}

// HeaderLevel returns 1..6 for header types and 0 otherwise.
func (t BlockType) HeaderLevel() int {
	switch t {
	case BlockHeaderOne:
		return 1
	case BlockHeaderTwo:
		return 2
	case BlockHeaderThree:
		return 3
	case BlockHeaderFour:
		return 4
	case BlockHeaderFive:
		return 5
	case BlockHeaderSix:
		return 6
	default:
		return 0
	}
}

// InlineStyle is a single character style.
type InlineStyle uint8

const (
	Bold InlineStyle = 1 << iota
	Italic
	Underline
	Code
	Strikethrough
)

var inlineStyles = []InlineStyle{Bold, Italic, Underline, Code, Strikethrough}

// InlineStyles returns every known inline style in a stable order.
func InlineStyles() []InlineStyle {
	return append([]InlineStyle(nil), inlineStyles...)
}

func (s InlineStyle) String() string {
	switch s {
	case Bold:
		return "BOLD"
	case Italic:
		return "ITALIC"
	case Underline:
		return "UNDERLINE"
	case Code:
		return "CODE"
	case Strikethrough:
		return "STRIKETHROUGH"
	default:
		return ""
	}
}

// ParseInlineStyle maps a style name such as "BOLD" to its InlineStyle.
func ParseInlineStyle(name string) (InlineStyle, bool) {
	for _, s := range inlineStyles {
		if s.String() == strings.ToUpper(name) {
			return s, true
		}
	}
	return 0, false
}

// StyleSet is a set of inline styles.
type StyleSet uint8

func (ss StyleSet) Has(s InlineStyle) bool { return ss&StyleSet(s) != 0 }

func (ss StyleSet) With(s InlineStyle) StyleSet { return ss | StyleSet(s) }

func (ss StyleSet) Without(s InlineStyle) StyleSet { return ss &^ StyleSet(s) }

func (ss StyleSet) IsEmpty() bool { return ss == 0 }

// Styles lists the styles in ss in stable order.
func (ss StyleSet) Styles() []InlineStyle {
	var out []InlineStyle
	for _, s := range inlineStyles {
		if ss.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

// Names lists the style names in ss in stable order.
func (ss StyleSet) Names() []string {
	styles := ss.Styles()
	out := make([]string, 0, len(styles))
	for _, s := range styles {
		out = append(out, s.String())
	}
	return out
}

// EntityType names the kind of an entity.
type EntityType string

const EntityLink EntityType = "LINK"

// Mutability controls how an entity behaves when its text is edited.
type Mutability string

const (
	// Mutable entities survive edits and extend to text typed inside them.
	Mutable Mutability = "MUTABLE"
	// Immutable entities are dropped from a range as soon as it is edited.
	Immutable Mutability = "IMMUTABLE"
	// Segmented entities are dropped from a range edited at its edges.
	Segmented Mutability = "SEGMENTED"
)

// Valid reports whether m is a known mutability.
func (m Mutability) Valid() bool {
	return m == Mutable || m == Immutable || m == Segmented
}

// ChangeType labels a pushed state for history grouping.
type ChangeType string

const (
	ChangeNone             ChangeType = ""
	ChangeInsertCharacters ChangeType = "insert-characters"
	ChangeInsertFragment   ChangeType = "insert-fragment"
	ChangeBackspace        ChangeType = "backspace-character"
	ChangeDeleteCharacter  ChangeType = "delete-character"
	ChangeRemoveRange      ChangeType = "remove-range"
	ChangeSplitBlock       ChangeType = "split-block"
	ChangeInlineStyle      ChangeType = "change-inline-style"
	ChangeBlockType        ChangeType = "change-block-type"
	ChangeBlockDepth       ChangeType = "adjust-depth"
	ChangeApplyEntity      ChangeType = "apply-entity"
	ChangeUndo             ChangeType = "undo"
	ChangeRedo             ChangeType = "redo"
)

// coalesces reports whether consecutive pushes of t merge into one undo step.
func (t ChangeType) coalesces() bool {
	return t == ChangeInsertCharacters || t == ChangeBackspace || t == ChangeDeleteCharacter
}
