// Package doctree holds the node helpers every transform works through.
//
// Trees are golang.org/x/net/html node trees. A parsed post body is kept under
// a DocumentNode container; elements, text, comments and raw nodes hang off it.
// Only element and document nodes own children.
package doctree

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr returns the value of an element attribute.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets (or replaces) an element attribute.
func SetAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr deletes an attribute if present.
func RemoveAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

// TextContent flattens the text of n and all its descendants.
func TextContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

// Element builds an element node. attrs are key/value pairs and are kept in
// the order given.
func Element(tag string, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
	for _, c := range children {
		if c == nil {
			continue
		}
		Detach(c)
		n.AppendChild(c)
	}
	return n
}

// Text builds a text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Comment builds a comment node. s is the comment body without delimiters.
func Comment(s string) *html.Node {
	return &html.Node{Type: html.CommentNode, Data: s}
}

// Raw builds a node that is rendered verbatim.
func Raw(s string) *html.Node {
	return &html.Node{Type: html.RawNode, Data: s}
}

// Document wraps nodes in a new DocumentNode container.
func Document(children ...*html.Node) *html.Node {
	root := &html.Node{Type: html.DocumentNode}
	for _, c := range children {
		Detach(c)
		root.AppendChild(c)
	}
	return root
}

// Detach removes n from its parent so it can be re-homed.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// ChildNodes returns a snapshot of n's children.
func ChildNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// ParseFragment parses an HTML body fragment into a DocumentNode container.
func ParseFragment(r io.Reader) (*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("parse html fragment: %w", err)
	}
	return Document(nodes...), nil
}

// Render serialises the children of root (or root itself when it is not a
// container).
func Render(w io.Writer, root *html.Node) error {
	if root.Type != html.DocumentNode {
		return html.Render(w, root)
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
	}
	return nil
}

// RenderString is Render into a string. Rendering into memory cannot fail
// except on malformed trees, which yield whatever was written so far.
func RenderString(root *html.Node) string {
	var buf bytes.Buffer
	_ = Render(&buf, root)
	return buf.String()
}
