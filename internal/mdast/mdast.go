// Package mdast models a parsed Markdown document as a tree of typed nodes.
//
// The shape follows the mdast conventions (type/value/children) so a tree can
// be dumped as JSON and compared with other Markdown tooling. Raw markup embedded
// in a document (HTML blocks and inline HTML) is carried verbatim in nodes of
// kind KindHTML; every other kind is structural or text.
package mdast

import (
	"bytes"
	"encoding/json"
)

// Kind identifies the category of a node.
type Kind string

// Node kinds produced by FromGoldmark.
const (
	KindRoot          Kind = "root"
	KindParagraph     Kind = "paragraph"
	KindHeading       Kind = "heading"
	KindText          Kind = "text"
	KindEmphasis      Kind = "emphasis"
	KindStrong        Kind = "strong"
	KindLink          Kind = "link"
	KindImage         Kind = "image"
	KindInlineCode    Kind = "inlineCode"
	KindCode          Kind = "code"
	KindList          Kind = "list"
	KindListItem      Kind = "listItem"
	KindBlockquote    Kind = "blockquote"
	KindThematicBreak Kind = "thematicBreak"
	KindBreak         Kind = "break"
	KindHTML          Kind = "html"
)

// Node is one node of a document tree. Each node is owned by exactly one
// parent; trees never share nodes and hold no parent pointers.
type Node struct {
	Kind     Kind    `json:"type"`
	Value    string  `json:"value,omitempty"`
	Depth    int     `json:"depth,omitempty"`
	URL      string  `json:"url,omitempty"`
	Lang     string  `json:"lang,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// IsRaw reports whether the node carries literal markup.
func (n *Node) IsRaw() bool {
	return n != nil && n.Kind == KindHTML
}

// Append adds children to n and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Walk visits n and every descendant depth-first, parents before children.
// A nil node is ignored.
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n *Node) int {
	total := 0
	Walk(n, func(*Node) { total++ })
	return total
}

// Clone returns a deep copy of the tree rooted at n.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	out := *n
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = Clone(c)
		}
	}
	return &out
}

// MarshalIndent encodes the tree rooted at n as indented JSON. Markup in
// values is written verbatim, not escaped to \u003c and friends.
func MarshalIndent(n *Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
