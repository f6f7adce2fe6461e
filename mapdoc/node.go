package mapdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

const (
	keyName     = "__name"
	keyChildren = "__children"
)

// Node is one element of the converter's document tree. Attributes are kept
// as raw JSON so values the editor never interprets are written back exactly
// as they were read.
type Node struct {
	Name     string
	Attrs    map[string]json.RawMessage
	Children []*Node
}

// NewNode creates an element with no attributes or children.
func NewNode(name string) *Node {
	return &Node{Name: name, Attrs: make(map[string]json.RawMessage)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	n.Attrs = make(map[string]json.RawMessage, len(raw))
	n.Name = ""
	n.Children = nil
	for k, v := range raw {
		switch k {
		case keyName:
			if err := json.Unmarshal(v, &n.Name); err != nil {
				return fmt.Errorf("%s: %w", keyName, err)
			}
		case keyChildren:
			if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
				continue
			}
			if err := json.Unmarshal(v, &n.Children); err != nil {
				return fmt.Errorf("%s of %q: %w", keyChildren, n.Name, err)
			}
			if n.Children == nil {
				n.Children = []*Node{}
			}
		default:
			n.Attrs[k] = v
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler. The name comes first, then the
// attributes in key order, then the children. Nothing is HTML-escaped.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	buf.WriteString(`"` + keyName + `":`)
	buf.Write(encodeString(n.Name))

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		buf.WriteByte(',')
		buf.Write(encodeString(k))
		buf.WriteByte(':')
		buf.Write(n.Attrs[k])
	}

	if n.Children != nil {
		buf.WriteString(`,"` + keyChildren + `":[`)
		for i, c := range n.Children {
			if i > 0 {
				buf.WriteByte(',')
			}
			if c == nil {
				buf.WriteString("null")
				continue
			}
			child, err := c.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(child)
		}
		buf.WriteByte(']')
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeString quotes s as JSON without escaping <, > and &.
func encodeString(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return bytes.TrimRight(buf.Bytes(), "\n")
}

// Child returns the first direct child with the given name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c != nil && c.Name == name {
			return c
		}
	}
	return nil
}

// Has reports whether the attribute is present.
func (n *Node) Has(key string) bool {
	_, ok := n.Attrs[key]
	return ok
}

// StringAttr decodes a string attribute.
func (n *Node) StringAttr(key string) (string, bool, error) {
	raw, ok := n.Attrs[key]
	if !ok {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", true, fmt.Errorf("%w: attribute %q is not a string", ErrFormat, key)
	}
	return s, true, nil
}

// NumberAttr decodes a numeric attribute.
func (n *Node) NumberAttr(key string) (float64, bool, error) {
	raw, ok := n.Attrs[key]
	if !ok {
		return 0, false, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, true, fmt.Errorf("%w: attribute %q is not a number", ErrFormat, key)
	}
	return f, true, nil
}

// SetString stores a string attribute.
func (n *Node) SetString(key, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]json.RawMessage)
	}
	n.Attrs[key] = encodeString(value)
}

// Clone returns a deep copy of the subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := NewNode(n.Name)
	for k, v := range n.Attrs {
		c.Attrs[k] = append(json.RawMessage(nil), v...)
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}
