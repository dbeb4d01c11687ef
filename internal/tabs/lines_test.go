package tabs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"

	"github.com/dgallion1/contentkit/internal/doctree"
)

func TestEstimateLines(t *testing.T) {
	long := strings.Repeat("x", 250)

	tests := []struct {
		name  string
		nodes []*html.Node
		want  int
	}{
		{"empty", nil, 0},
		{"short paragraph", []*html.Node{p("hello")}, 1},
		{"wrapped paragraph", []*html.Node{p(long)}, 3},
		{"text outside paragraph", []*html.Node{doctree.Element("div", nil, doctree.Text(long))}, 1},
		{"bare text", []*html.Node{doctree.Text(long)}, 0},
		{"line break", []*html.Node{doctree.Element("br", nil)}, 1},
		{"image", []*html.Node{doctree.Element("img", nil)}, 10},
		{"svg in div", []*html.Node{doctree.Element("div", nil, doctree.Element("svg", nil))}, 11},
		{"iframe", []*html.Node{doctree.Element("iframe", nil)}, 10},
		{
			"nested span inside paragraph",
			[]*html.Node{doctree.Element("p", nil, doctree.Element("span", nil, doctree.Text(long)))},
			3,
		},
		{
			"list items are free",
			[]*html.Node{doctree.Element("ul", nil, doctree.Element("li", nil, doctree.Text(long)))},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateLines(tt.nodes, false))
		})
	}
}

func TestEstimateLines_InsideParagraphFlag(t *testing.T) {
	text := doctree.Text(strings.Repeat("y", 320))
	assert.Equal(t, 3, EstimateLines([]*html.Node{text}, true))
}

func TestEstimateLines_ParagraphDoesNotLeakToSiblings(t *testing.T) {
	long := strings.Repeat("z", 200)
	nodes := []*html.Node{p("short"), doctree.Text(long)}
	assert.Equal(t, 1, EstimateLines(nodes, false))
}

func TestEstimateLines_OrderIndependent(t *testing.T) {
	long := strings.Repeat("w", 420)
	build := func() []*html.Node {
		return []*html.Node{
			p(long),
			doctree.Element("img", nil),
			doctree.Element("div", nil, doctree.Element("br", nil)),
			h(2, "title"),
		}
	}
	forward := build()
	reversed := build()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	assert.Equal(t, EstimateLines(forward, false), EstimateLines(reversed, false))
	assert.Equal(t, 5+10+2, EstimateLines(forward, false))
}
