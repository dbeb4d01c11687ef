package tabs

import (
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Characters per rendered line when guessing paragraph wraps.
const charsPerLine = 100

// Fixed cost of an image or embed, in lines.
const mediaLines = 10

// EstimateLines guesses how many lines nodes take up once rendered. It is a
// sizing heuristic only: block breaks count one line, media ten, and text
// inside a <p> one line per hundred characters.
func EstimateLines(nodes []*html.Node, insideParagraph bool) int {
	lines := 0
	for _, n := range nodes {
		inP := insideParagraph || (n.Type == html.ElementNode && n.Data == "p")

		if n.FirstChild != nil {
			lines += EstimateLines(children(n), inP)
		}

		if n.Type == html.ElementNode {
			switch n.Data {
			case "div", "p", "br":
				lines++
			case "img", "svg", "iframe":
				lines += mediaLines
			}
		}

		if inP && n.Type == html.TextNode {
			lines += utf8.RuneCountInString(n.Data) / charsPerLine
		}
	}
	return lines
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}
