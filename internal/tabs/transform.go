package tabs

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/contentkit/internal/slugs"
)

// Marker values exactly as they appear in parsed trees.
const (
	RawStart     = "<!-- tabs:start -->"
	RawEnd       = "<!-- tabs:end -->"
	CommentStart = " tabs:start "
	CommentEnd   = " tabs:end "
)

// StructureError reports an unbalanced tab marker in strict mode.
type StructureError struct {
	Marker string
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("tabs: %s: %q", e.Reason, e.Marker)
}

// Recorder receives one observation per emitted tab group.
type Recorder interface {
	ObserveTabGroup(tabs int, small bool)
}

type markerSyntax struct {
	kind       html.NodeType
	start, end string
}

func (m markerSyntax) isStart(n *html.Node) bool { return n.Type == m.kind && n.Data == m.start }
func (m markerSyntax) isEnd(n *html.Node) bool   { return n.Type == m.kind && n.Data == m.end }

var markerSyntaxes = []markerSyntax{
	{kind: html.RawNode, start: RawStart, end: RawEnd},
	{kind: html.CommentNode, start: CommentStart, end: CommentEnd},
}

// Transformer replaces every marker-delimited region in a tree with a
// rendered tab group.
//
// In lenient mode (the default) a start marker without an end runs to the
// end of its sibling list, a stray end marker is left alone and a start
// marker inside an open region is dropped. Strict mode fails on all three.
type Transformer struct {
	Strict  bool
	Metrics Recorder
	Log     *slog.Logger
}

// Apply rewrites root in place and returns the groups it emitted in the
// order they were built. Tab slugs are unique per group; sub-heading ids and
// tab and panel element ids are drawn from doc, the document-wide registry.
// Callers should claim the ids already present in root before calling Apply.
func (t *Transformer) Apply(root *html.Node, doc *slugs.Registry) ([]TabGroup, error) {
	if doc == nil {
		doc = slugs.New()
	}
	reg := idSource{region: slugs.New(), doc: doc}
	var groups []TabGroup
	for _, m := range markerSyntaxes {
		g, err := t.replaceAll(root, m, reg)
		if err != nil {
			return groups, err
		}
		groups = append(groups, g...)
	}
	return groups, nil
}

type idSource struct {
	region, doc *slugs.Registry
}

func (t *Transformer) replaceAll(parent *html.Node, m markerSyntax, reg idSource) ([]TabGroup, error) {
	var groups []TabGroup

	for c := parent.FirstChild; c != nil; {
		if m.isEnd(c) {
			if t.Strict {
				return groups, &StructureError{Marker: c.Data, Reason: "end marker without start"}
			}
			t.logger().Warn("ignoring unmatched tab end marker")
			c = c.NextSibling
			continue
		}

		if !m.isStart(c) {
			if c.FirstChild != nil {
				nested, err := t.replaceAll(c, m, reg)
				groups = append(groups, nested...)
				if err != nil {
					return groups, err
				}
			}
			c = c.NextSibling
			continue
		}

		start := c
		var (
			region []*html.Node
			strays []*html.Node
			end    *html.Node
		)
		for n := start.NextSibling; n != nil; n = n.NextSibling {
			if m.isEnd(n) {
				end = n
				break
			}
			if m.isStart(n) {
				if t.Strict {
					return groups, &StructureError{Marker: n.Data, Reason: "nested start marker"}
				}
				strays = append(strays, n)
				continue
			}
			region = append(region, n)
		}
		if end == nil && t.Strict {
			return groups, &StructureError{Marker: start.Data, Reason: "start marker without end"}
		}

		var next *html.Node
		if end != nil {
			next = end.NextSibling
			parent.RemoveChild(end)
		}
		parent.RemoveChild(start)
		for _, s := range strays {
			parent.RemoveChild(s)
		}

		group, dropped := GroupRegion(region, reg.region, reg.doc)
		if n := countContent(dropped); n > 0 {
			t.logger().Debug("dropped content before first tab heading", "nodes", n)
		}
		parent.InsertBefore(Render(group), next)

		if t.Metrics != nil {
			t.Metrics.ObserveTabGroup(len(group.Tabs), group.IsSmall)
		}
		groups = append(groups, group)
		c = next
	}
	return groups, nil
}

func (t *Transformer) logger() *slog.Logger {
	if t.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return t.Log
}

// countContent ignores whitespace-only text nodes.
func countContent(nodes []*html.Node) int {
	n := 0
	for _, node := range nodes {
		if node.Type == html.TextNode && strings.TrimSpace(node.Data) == "" {
			continue
		}
		n++
	}
	return n
}
