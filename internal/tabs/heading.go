package tabs

import (
	"math"

	"golang.org/x/net/html"
)

// NoHeading is what LargestHeadingLevel reports for a list without headings.
const NoHeading = math.MaxInt

// HeadingLevel returns 1-6 for h1-h6 elements and 0 for anything else.
func HeadingLevel(n *html.Node) int {
	if n == nil || n.Type != html.ElementNode {
		return 0
	}
	switch n.Data {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// IsHeading reports whether n is an h1-h6 element.
func IsHeading(n *html.Node) bool {
	return HeadingLevel(n) > 0
}

// LargestHeadingLevel returns the lowest heading number among nodes. Only the
// listed nodes are inspected, not their descendants.
func LargestHeadingLevel(nodes []*html.Node) int {
	largest := NoHeading
	for _, n := range nodes {
		if lvl := HeadingLevel(n); lvl > 0 && lvl < largest {
			largest = lvl
		}
	}
	return largest
}

// IsNodeAtLevel reports whether n is a heading of exactly level.
func IsNodeAtLevel(n *html.Node, level int) bool {
	lvl := HeadingLevel(n)
	return lvl > 0 && lvl == level
}
