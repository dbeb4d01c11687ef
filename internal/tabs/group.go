// Package tabs turns docsify-style tab regions into tab groups.
//
// A region is the run of sibling nodes between a start and an end marker:
//
//	<!-- tabs:start -->
//	# First
//	...
//	# Second
//	...
//	<!-- tabs:end -->
//
// The largest heading level inside the region splits it into tabs. The
// heading text becomes the tab label and everything up to the next such
// heading becomes the tab panel.
package tabs

import (
	"golang.org/x/net/html"

	"github.com/dgallion1/contentkit/internal/doctree"
	"github.com/dgallion1/contentkit/internal/slugs"
)

// Heuristic limits for fixed-height tab groups, in estimated lines.
const (
	smallMaxLines  = 30
	smallMaxSpread = 15
)

const (
	tabNameAttr   = "data-tabname"
	headingIDAttr = "id"
)

// TabInfo is one tab of a group.
//
// Slug is unique within the group. TabID and PanelID are the element ids of
// the rendered tab and panel and are unique within the document.
type TabInfo struct {
	Slug     string       `json:"slug"`
	Name     string       `json:"name"`
	TabID    string       `json:"tabId"`
	PanelID  string       `json:"panelId"`
	Contents []*html.Node `json:"-"`
	Headers  []string     `json:"headers"`
}

// TabGroup is the result of grouping one region.
type TabGroup struct {
	Tabs    []TabInfo `json:"tabs"`
	IsSmall bool      `json:"isSmall"`
}

// GroupRegion splits the nodes of one region into tabs.
//
// Tab slugs come from region, which is reset before the first tab so the
// same tab names can repeat across groups. Sub-heading ids and the tab and
// panel element ids come from doc, which spans the whole document; a nil doc
// gets a fresh registry. Nodes before the first top-level heading are dropped
// and returned separately so callers can report them. Every node kept ends
// up detached from its old parent and owned by a TabInfo.
func GroupRegion(nodes []*html.Node, region, doc *slugs.Registry) (group TabGroup, dropped []*html.Node) {
	if doc == nil {
		doc = slugs.New()
	}
	largest := LargestHeadingLevel(nodes)
	region.Reset()

	for _, n := range nodes {
		doctree.Detach(n)

		if IsNodeAtLevel(n, largest) {
			group.Tabs = append(group.Tabs, TabInfo{
				Slug: region.HeaderID(n),
				Name: doctree.TextContent(n),
			})
			continue
		}

		if len(group.Tabs) == 0 {
			dropped = append(dropped, n)
			continue
		}
		current := &group.Tabs[len(group.Tabs)-1]

		if IsHeading(n) {
			id, ok := doctree.Attr(n, headingIDAttr)
			if ok && id != "" {
				doc.Claim(id)
			} else {
				id = doc.HeaderID(n)
				doctree.SetAttr(n, headingIDAttr, id)
			}
			doctree.SetAttr(n, tabNameAttr, current.Slug)
			current.Headers = append(current.Headers, id)
		}
		current.Contents = append(current.Contents, n)
	}

	for i := range group.Tabs {
		tab := &group.Tabs[i]
		tab.TabID = doc.Unique("tab-" + tab.Slug)
		tab.PanelID = doc.Unique("panel-" + tab.Slug)
	}

	heights := make([]int, len(group.Tabs))
	for i, tab := range group.Tabs {
		heights[i] = EstimateLines(tab.Contents, false)
	}
	group.IsSmall = IsSmall(heights)
	return group, dropped
}

// IsSmall decides whether a set of tab heights fits a fixed-height layout:
// every tab must be at most 30 lines and no two may differ by more than 15.
// An empty set is small.
func IsSmall(heights []int) bool {
	if len(heights) == 0 {
		return true
	}
	lo, hi := heights[0], heights[0]
	for _, h := range heights[1:] {
		lo = min(lo, h)
		hi = max(hi, h)
	}
	return hi <= smallMaxLines && hi-lo <= smallMaxSpread
}
