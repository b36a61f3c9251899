package export

import (
	"encoding/json"
	"strconv"

	"github.com/iw2rmb/quill/document"
)

type NodeKind string

const (
	KindBlock  NodeKind = "block"
	KindInline NodeKind = "inline"
	KindEntity NodeKind = "entity"
)

// Node is one element of the AST. Which fields are set depends on Kind:
//
//	block:  Type, Key, Depth, Children (inline or entity nodes)
//	inline: Styles, Text
//	entity: Type, Key, Mutability, Data, Children (inline nodes)
//
// Nodes encode as tuples: ["block", [type, key, children, data]],
// ["inline", [styles, text]] and
// ["entity", [type, key, mutability, data, children]].
type Node struct {
	Kind       NodeKind
	Type       string
	Key        string
	Depth      int
	Mutability string
	Data       map[string]string
	Styles     []string
	Text       string
	Children   []Node
}

// AST is the ordered list of block nodes of a document.
type AST []Node

// ToAST groups every block of s into runs sharing an entity, and each run
// into inline nodes sharing a style set.
func ToAST(s document.State) AST {
	c := s.Content()
	out := make(AST, 0, c.BlockCount())
	for _, b := range c.Blocks() {
		out = append(out, blockNode(c, b))
	}
	return out
}

func blockNode(c document.Content, b *document.Block) Node {
	n := Node{
		Kind:     KindBlock,
		Type:     string(b.Type()),
		Key:      string(b.Key()),
		Depth:    b.Depth(),
		Children: []Node{},
	}
	chars := b.Chars()
	text := b.Runes()
	for start := 0; start < len(chars); {
		key := chars[start].Entity
		end := start + 1
		for end < len(chars) && chars[end].Entity == key {
			end++
		}
		inlines := inlineNodes(text[start:end], chars[start:end])
		if e, ok := c.Entity(key); key != 0 && ok {
			n.Children = append(n.Children, Node{
				Kind:       KindEntity,
				Type:       string(e.Type),
				Key:        strconv.FormatUint(uint64(key), 10),
				Mutability: string(e.Mutability),
				Data:       e.Data(),
				Children:   inlines,
			})
		} else {
			n.Children = append(n.Children, inlines...)
		}
		start = end
	}
	return n
}

func inlineNodes(text []rune, chars []document.CharMeta) []Node {
	var out []Node
	for start := 0; start < len(chars); {
		style := chars[start].Style
		end := start + 1
		for end < len(chars) && chars[end].Style == style {
			end++
		}
		out = append(out, Node{
			Kind:   KindInline,
			Styles: style.Names(),
			Text:   string(text[start:end]),
		})
		start = end
	}
	return out
}

func (n Node) tuple() []any {
	children := make([]any, 0, len(n.Children))
	for _, ch := range n.Children {
		children = append(children, ch.tuple())
	}
	switch n.Kind {
	case KindBlock:
		data := map[string]any{}
		if n.Depth > 0 {
			data["depth"] = n.Depth
		}
		return []any{string(n.Kind), []any{n.Type, n.Key, children, data}}
	case KindEntity:
		data := n.Data
		if data == nil {
			data = map[string]string{}
		}
		return []any{string(n.Kind), []any{n.Type, n.Key, n.Mutability, data, children}}
	default:
		styles := n.Styles
		if styles == nil {
			styles = []string{}
		}
		return []any{string(n.Kind), []any{styles, n.Text}}
	}
}

func (n Node) MarshalJSON() ([]byte, error) { return json.Marshal(n.tuple()) }

func (n Node) MarshalYAML() (any, error) { return n.tuple(), nil }
