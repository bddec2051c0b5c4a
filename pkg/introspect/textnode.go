package introspect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

// TextNode is a nested text tree: either a leaf string or a list of nodes.
// Documentation sections arrive in this shape from R's Rd parser.
type TextNode struct {
	Text     string
	Children []TextNode
	Leaf     bool
}

// Leaf builds a leaf node.
func Leaf(text string) TextNode {
	return TextNode{Text: text, Leaf: true}
}

// Branch builds a node holding children.
func Branch(children ...TextNode) TextNode {
	return TextNode{Children: children}
}

// Flatten walks the tree depth first and joins every leaf followed by a
// single space.
func (n TextNode) Flatten() string {
	var builder strings.Builder

	n.walk(&builder)

	return builder.String()
}

func (n TextNode) walk(builder *strings.Builder) {
	if n.Leaf {
		builder.WriteString(n.Text)
		builder.WriteByte(' ')

		return
	}

	for _, child := range n.Children {
		child.walk(builder)
	}
}

// UnmarshalJSON accepts a string, an array of nodes, or null.
func (n *TextNode) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		*n = TextNode{}

		return nil
	case trimmed[0] == '"':
		var text string

		err := json.Unmarshal(trimmed, &text)
		if err != nil {
			return fmt.Errorf("decode text leaf: %w", err)
		}

		*n = Leaf(text)

		return nil
	case trimmed[0] == '[':
		var children []TextNode

		err := json.Unmarshal(trimmed, &children)
		if err != nil {
			return fmt.Errorf("decode text branch: %w", err)
		}

		*n = Branch(children...)

		return nil
	default:
		// numbers and booleans are kept verbatim
		*n = Leaf(string(trimmed))

		return nil
	}
}

// MarshalJSON writes leaves as strings and branches as arrays.
func (n TextNode) MarshalJSON() ([]byte, error) {
	if n.Leaf {
		data, err := json.Marshal(n.Text)
		if err != nil {
			return nil, fmt.Errorf("encode text leaf: %w", err)
		}

		return data, nil
	}

	children := n.Children
	if children == nil {
		children = []TextNode{}
	}

	data, err := json.Marshal(children)
	if err != nil {
		return nil, fmt.Errorf("encode text branch: %w", err)
	}

	return data, nil
}

// JSONSchema describes the recursive string-or-array shape.
func (TextNode) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: "Documentation text: a string or a nested array of strings.",
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "array", Items: &jsonschema.Schema{Ref: "#/$defs/TextNode"}},
		},
	}
}
