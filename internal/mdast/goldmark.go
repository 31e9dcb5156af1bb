package mdast

import (
	"bytes"
	"strings"
	"unicode"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FromGoldmark converts a goldmark AST into a Node tree.
// source must be the byte slice the AST was parsed from.
// Node kinds without a dedicated mapping (tables, footnotes, strikethrough)
// keep goldmark's kind name with a lowercase first letter.
func FromGoldmark(doc gmast.Node, source []byte) *Node {
	if doc == nil {
		return nil
	}
	return convert(doc, source)
}

func convert(n gmast.Node, source []byte) *Node {
	out := &Node{Kind: kindOf(n)}

	switch v := n.(type) {
	case *gmast.Heading:
		out.Depth = v.Level
	case *gmast.Text:
		value := string(v.Segment.Value(source))
		if v.SoftLineBreak() {
			value += "\n"
		}
		out.Value = value
	case *gmast.String:
		out.Value = string(v.Value)
	case *gmast.Link:
		out.URL = string(v.Destination)
	case *gmast.Image:
		out.URL = string(v.Destination)
	case *gmast.AutoLink:
		out.URL = string(v.URL(source))
		out.Children = []*Node{{Kind: KindText, Value: string(v.Label(source))}}
		return out
	case *gmast.CodeSpan:
		out.Value = inlineText(v, source)
		return out
	case *gmast.FencedCodeBlock:
		out.Lang = string(v.Language(source))
		out.Value = strings.TrimSuffix(linesValue(v.Lines(), source), "\n")
		return out
	case *gmast.CodeBlock:
		out.Value = strings.TrimSuffix(linesValue(v.Lines(), source), "\n")
		return out
	case *gmast.HTMLBlock:
		value := linesValue(v.Lines(), source)
		if v.HasClosure() {
			value += string(v.ClosureLine.Value(source))
		}
		out.Value = strings.TrimSuffix(value, "\n")
		return out
	case *gmast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < v.Segments.Len(); i++ {
			seg := v.Segments.At(i)
			buf.Write(seg.Value(source))
		}
		out.Value = buf.String()
		return out
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out.Children = append(out.Children, convert(c, source))
		if t, ok := c.(*gmast.Text); ok && t.HardLineBreak() {
			out.Children = append(out.Children, &Node{Kind: KindBreak})
		}
	}
	return out
}

func kindOf(n gmast.Node) Kind {
	switch v := n.(type) {
	case *gmast.Document:
		return KindRoot
	case *gmast.Paragraph, *gmast.TextBlock:
		return KindParagraph
	case *gmast.Heading:
		return KindHeading
	case *gmast.Text, *gmast.String:
		return KindText
	case *gmast.Emphasis:
		if v.Level >= 2 {
			return KindStrong
		}
		return KindEmphasis
	case *gmast.Link, *gmast.AutoLink:
		return KindLink
	case *gmast.Image:
		return KindImage
	case *gmast.CodeSpan:
		return KindInlineCode
	case *gmast.FencedCodeBlock, *gmast.CodeBlock:
		return KindCode
	case *gmast.List:
		return KindList
	case *gmast.ListItem:
		return KindListItem
	case *gmast.Blockquote:
		return KindBlockquote
	case *gmast.ThematicBreak:
		return KindThematicBreak
	case *gmast.HTMLBlock, *gmast.RawHTML:
		return KindHTML
	}
	return Kind(lowerFirst(n.Kind().String()))
}

func linesValue(lines *text.Segments, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

// inlineText concatenates the text of all descendants of n.
func inlineText(n gmast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *gmast.Text:
			buf.Write(v.Segment.Value(source))
		case *gmast.String:
			buf.Write(v.Value)
		default:
			buf.WriteString(inlineText(c, source))
		}
	}
	return buf.String()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
